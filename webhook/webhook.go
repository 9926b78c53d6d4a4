package webhook

import (
	"context"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"bybit-trade-bot/trading"
)

type Webhook struct {
	server   *http.Server
	listener net.Listener
	handler  *handler
}

func NewWebhook(listener net.Listener, exchange trading.Exchange, log *logrus.Logger) *Webhook {
	return &Webhook{
		server:   &http.Server{},
		handler:  &handler{exchange: exchange, log: log},
		listener: listener,
	}
}

func (f *Webhook) Name() string {
	return "webhook"
}

func (f *Webhook) Serve(_ context.Context) error {
	f.server.Handler = f.handler.router()
	return f.server.Serve(f.listener)
}

func (f *Webhook) Shutdown(ctx context.Context) error {
	return f.server.Shutdown(ctx)
}

func (h *handler) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/order", h.PlaceOrder).Methods(http.MethodPost)
	r.HandleFunc("/webhook", h.PlaceOrder).Methods(http.MethodPost)
	r.HandleFunc("/cancel-order", h.CancelOrder).Methods(http.MethodPost)
	r.HandleFunc("/cancel-all-orders", h.CancelAllOrders).Methods(http.MethodPost)
	r.HandleFunc("/close-position", h.ClosePosition).Methods(http.MethodPost)
	r.HandleFunc("/position/{symbol}", h.GetPosition).Methods(http.MethodGet)
	r.HandleFunc("/balance", h.GetBalance).Methods(http.MethodGet)

	return r
}
