package trading

import (
	"context"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "Buy"
	SideSell Side = "Sell"
)

// Opposite returns the side that closes a position opened on s.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

type OrderType string

const (
	OrderTypeMarket OrderType = "Market"
	OrderTypeLimit  OrderType = "Limit"
)

type PositionSide string

// Linear perpetuals trade in one-way mode, so "Both" is the only
// position side the exchange accepts.
const PositionSideBoth PositionSide = "Both"

// OrderRequest describes a single order. Qty is in base asset units.
// Price is required for limit orders only. StopLoss and TakeProfit are
// absolute trigger prices; StopLossPct and TakeProfitPct derive the
// trigger from the current market price instead. An absolute price
// wins over its percentage counterpart for the same field.
type OrderRequest struct {
	Symbol        string
	Side          Side
	OrderType     OrderType
	Qty           decimal.Decimal
	Price         *decimal.Decimal
	Leverage      int
	PositionSide  PositionSide
	ReduceOnly    bool
	StopLoss      *decimal.Decimal
	TakeProfit    *decimal.Decimal
	StopLossPct   *decimal.Decimal
	TakeProfitPct *decimal.Decimal
	IsLeverage    *bool
}

type OrderResult struct {
	OrderID     string
	OrderLinkID string
}

// SymbolInfo is the instrument metadata the exchange publishes for a
// trading pair. Fetched per call, never cached.
type SymbolInfo struct {
	Symbol       string
	ContractType string
	Status       string
	MinOrderQty  decimal.Decimal
	MaxOrderQty  decimal.Decimal
	QtyStep      decimal.Decimal
	TickSize     decimal.Decimal
}

// Position is the current open position for a symbol. Size is zero
// when the account holds no exposure.
type Position struct {
	Symbol        string
	Side          Side
	Size          decimal.Decimal
	EntryPrice    decimal.Decimal
	MarkPrice     decimal.Decimal
	Leverage      decimal.Decimal
	UnrealisedPnl decimal.Decimal
	PositionIdx   int
}

type CoinBalance struct {
	Coin          string
	Equity        decimal.Decimal
	WalletBalance decimal.Decimal
	UnrealisedPnl decimal.Decimal
}

type WalletBalance struct {
	AccountType           string
	TotalEquity           decimal.Decimal
	TotalAvailableBalance decimal.Decimal
	Coins                 []CoinBalance
}

// Exchange is the trading contract the webhook server depends on.
// Implementations block until the remote call returns; cancellation
// comes from the caller's context.
type Exchange interface {
	SetLeverage(ctx context.Context, symbol string, leverage int) error
	GetSymbolInfo(ctx context.Context, symbol string) (SymbolInfo, error)
	GetCurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	PlaceOrder(ctx context.Context, req OrderRequest) (OrderResult, error)
	CancelOrder(ctx context.Context, orderID, symbol string) (OrderResult, error)
	CancelAllOrders(ctx context.Context, symbol string) ([]OrderResult, error)
	GetPosition(ctx context.Context, symbol string) (*Position, error)
	ClosePosition(ctx context.Context, symbol string) (OrderResult, error)
	GetWalletBalance(ctx context.Context) (WalletBalance, error)
}
