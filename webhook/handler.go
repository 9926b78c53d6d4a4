package webhook

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bybit-trade-bot/trading"
)

type handler struct {
	exchange trading.Exchange
	log      *logrus.Logger
}

// orderPayload mirrors the alert body TradingView posts. Unknown extra
// fields (trigger_time, strategy_id, ...) are ignored by the decoder.
type orderPayload struct {
	Symbol        string   `json:"symbol"`
	Side          string   `json:"side"`
	OrderType     string   `json:"order_type"`
	Quantity      float64  `json:"quantity"`
	Price         *float64 `json:"price"`
	Leverage      int      `json:"leverage"`
	PositionSide  string   `json:"position_side"`
	ReduceOnly    bool     `json:"reduce_only"`
	StopLoss      *float64 `json:"stop_loss"`
	TakeProfit    *float64 `json:"take_profit"`
	StopLossPct   *float64 `json:"stop_loss_pct"`
	TakeProfitPct *float64 `json:"take_profit_pct"`
	IsLeverage    *bool    `json:"is_leverage"`
}

func (p orderPayload) toRequest() (trading.OrderRequest, error) {
	switch trading.Side(p.Side) {
	case trading.SideBuy, trading.SideSell:
	default:
		return trading.OrderRequest{}, trading.Validationf("side must be Buy or Sell, got %q", p.Side)
	}
	switch trading.OrderType(p.OrderType) {
	case trading.OrderTypeMarket, trading.OrderTypeLimit:
	default:
		return trading.OrderRequest{}, trading.Validationf("order_type must be Market or Limit, got %q", p.OrderType)
	}
	if p.Quantity <= 0 {
		return trading.OrderRequest{}, trading.Validationf("quantity must be greater than 0")
	}
	if p.Price != nil && *p.Price <= 0 {
		return trading.OrderRequest{}, trading.Validationf("price must be greater than 0")
	}
	leverage := p.Leverage
	if leverage == 0 {
		leverage = 1
	}
	if leverage < 1 || leverage > 100 {
		return trading.OrderRequest{}, trading.Validationf("leverage must be between 1 and 100")
	}

	req := trading.OrderRequest{
		Symbol:        p.Symbol,
		Side:          trading.Side(p.Side),
		OrderType:     trading.OrderType(p.OrderType),
		Qty:           decimal.NewFromFloat(p.Quantity),
		Leverage:      leverage,
		PositionSide:  trading.PositionSide(p.PositionSide),
		ReduceOnly:    p.ReduceOnly,
		Price:         toDecimal(p.Price),
		StopLoss:      toDecimal(p.StopLoss),
		TakeProfit:    toDecimal(p.TakeProfit),
		StopLossPct:   toDecimal(p.StopLossPct),
		TakeProfitPct: toDecimal(p.TakeProfitPct),
		IsLeverage:    p.IsLeverage,
	}
	return req, nil
}

func toDecimal(v *float64) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}

type cancelOrderPayload struct {
	Symbol  string `json:"symbol"`
	OrderID string `json:"order_id"`
}

type symbolPayload struct {
	Symbol string `json:"symbol"`
}

func (h *handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var payload orderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	log := h.log.WithFields(logrus.Fields{
		"symbol": payload.Symbol,
		"side":   payload.Side,
		"type":   payload.OrderType,
		"qty":    payload.Quantity,
	})
	log.Info("order request received")

	req, err := payload.toRequest()
	if err != nil {
		log.WithError(err).Warn("order request rejected")
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.exchange.PlaceOrder(r.Context(), req)
	if err != nil {
		log.WithError(err).Error("order failed")
		h.writeFailure(w, err)
		return
	}

	log.WithField("orderId", result.OrderID).Info("order placed")
	h.writeSuccess(w, result)
}

func (h *handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	var payload cancelOrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.exchange.CancelOrder(r.Context(), payload.OrderID, payload.Symbol)
	if err != nil {
		h.log.WithError(err).WithField("orderId", payload.OrderID).Error("cancel order failed")
		h.writeFailure(w, err)
		return
	}

	h.log.WithField("orderId", result.OrderID).Info("order cancelled")
	h.writeSuccess(w, result)
}

func (h *handler) CancelAllOrders(w http.ResponseWriter, r *http.Request) {
	var payload symbolPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	cancelled, err := h.exchange.CancelAllOrders(r.Context(), payload.Symbol)
	if err != nil {
		h.log.WithError(err).WithField("symbol", payload.Symbol).Error("cancel all orders failed")
		h.writeFailure(w, err)
		return
	}

	h.log.WithFields(logrus.Fields{"symbol": payload.Symbol, "count": len(cancelled)}).Info("orders cancelled")
	h.writeSuccess(w, cancelled)
}

func (h *handler) ClosePosition(w http.ResponseWriter, r *http.Request) {
	var payload symbolPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.exchange.ClosePosition(r.Context(), payload.Symbol)
	if err != nil {
		h.log.WithError(err).WithField("symbol", payload.Symbol).Error("close position failed")
		h.writeFailure(w, err)
		return
	}

	h.log.WithField("symbol", payload.Symbol).Info("position closed")
	h.writeSuccess(w, result)
}

func (h *handler) GetPosition(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	position, err := h.exchange.GetPosition(r.Context(), symbol)
	if err != nil {
		h.log.WithError(err).WithField("symbol", symbol).Error("get position failed")
		h.writeFailure(w, err)
		return
	}

	h.writeSuccess(w, position)
}

func (h *handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.exchange.GetWalletBalance(r.Context())
	if err != nil {
		h.log.WithError(err).Error("get wallet balance failed")
		h.writeFailure(w, err)
		return
	}

	h.writeSuccess(w, balance)
}

func (h *handler) writeSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "success",
		"data":   data,
	})
}

// writeFailure maps the error kind to a status code: caller mistakes
// are 400, everything else is 500.
func (h *handler) writeFailure(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if trading.IsValidation(err) {
		status = http.StatusBadRequest
	}
	h.writeError(w, status, err)
}

func (h *handler) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "error",
		"detail": err.Error(),
	})
}
