package bybit

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bybit-trade-bot/trading"
)

// PlaceOrder validates the request, applies leverage and submits the
// order. Validation runs before any network call where possible; the
// minimum-quantity check needs the instrument metadata first.
func (c *client) PlaceOrder(ctx context.Context, req trading.OrderRequest) (trading.OrderResult, error) {
	if req.OrderType == trading.OrderTypeLimit && req.Price == nil {
		return trading.OrderResult{}, trading.Validationf("limit order requires a price")
	}
	if req.PositionSide != "" && req.PositionSide != trading.PositionSideBoth {
		return trading.OrderResult{}, trading.Validationf(
			"position side %q is not supported in one-way mode", req.PositionSide)
	}

	info, err := c.GetSymbolInfo(ctx, req.Symbol)
	if err != nil {
		return trading.OrderResult{}, err
	}
	if req.Qty.LessThan(info.MinOrderQty) {
		return trading.OrderResult{}, trading.Validationf(
			"order quantity (%s) is less than minimum allowed quantity (%s) for %s",
			req.Qty, info.MinOrderQty, req.Symbol)
	}

	leverage := req.Leverage
	if leverage <= 0 {
		leverage = 1
	}
	if err := c.SetLeverage(ctx, req.Symbol, leverage); err != nil {
		return trading.OrderResult{}, err
	}

	order := placeOrderRequest{
		Category:    categoryLinear,
		Symbol:      req.Symbol,
		Side:        string(req.Side),
		OrderType:   string(req.OrderType),
		Qty:         req.Qty.String(),
		PositionIdx: positionIdxOneWay,
		ReduceOnly:  req.ReduceOnly,
		OrderLinkID: uuid.NewString(),
	}
	if req.OrderType == trading.OrderTypeLimit {
		order.Price = req.Price.String()
	}
	if req.IsLeverage != nil {
		isLeverage := 0
		if *req.IsLeverage {
			isLeverage = 1
		}
		order.IsLeverage = &isLeverage
	}

	stopLoss, takeProfit, err := c.resolveStops(ctx, req, info.TickSize)
	if err != nil {
		return trading.OrderResult{}, err
	}
	if stopLoss != nil {
		order.StopLoss = stopLoss.String()
	}
	if takeProfit != nil {
		order.TakeProfit = takeProfit.String()
	}

	var res orderData
	if err := c.post(ctx, orderCreatePath, order, &res); err != nil {
		return trading.OrderResult{}, trading.OperationFailed("place order", err)
	}
	return trading.OrderResult{OrderID: res.OrderID, OrderLinkID: res.OrderLinkID}, nil
}

// resolveStops turns the stop-loss and take-profit fields of req into
// trigger prices. Percentages are taken off the current market price:
// a buy stops below and takes profit above, a sell the other way
// round. An explicit price wins over its percentage counterpart.
func (c *client) resolveStops(ctx context.Context, req trading.OrderRequest, tickSize decimal.Decimal) (stopLoss, takeProfit *decimal.Decimal, err error) {
	if req.StopLoss == nil && req.TakeProfit == nil && req.StopLossPct == nil && req.TakeProfitPct == nil {
		return nil, nil, nil
	}

	price, err := c.GetCurrentPrice(ctx, req.Symbol)
	if err != nil {
		return nil, nil, err
	}

	one := decimal.NewFromInt(1)
	if req.StopLossPct != nil {
		factor := one.Sub(*req.StopLossPct)
		if req.Side == trading.SideSell {
			factor = one.Add(*req.StopLossPct)
		}
		v := roundToTick(price.Mul(factor), tickSize)
		stopLoss = &v
	}
	if req.TakeProfitPct != nil {
		factor := one.Add(*req.TakeProfitPct)
		if req.Side == trading.SideSell {
			factor = one.Sub(*req.TakeProfitPct)
		}
		v := roundToTick(price.Mul(factor), tickSize)
		takeProfit = &v
	}

	if req.StopLoss != nil {
		stopLoss = req.StopLoss
	}
	if req.TakeProfit != nil {
		takeProfit = req.TakeProfit
	}
	return stopLoss, takeProfit, nil
}

// roundToTick quantizes a price to the instrument tick size. Prices
// off the tick grid are rejected by the exchange.
func roundToTick(price, tickSize decimal.Decimal) decimal.Decimal {
	if tickSize.IsZero() {
		return price
	}
	return price.Div(tickSize).Round(0).Mul(tickSize)
}

func (c *client) CancelOrder(ctx context.Context, orderID, symbol string) (trading.OrderResult, error) {
	body := cancelOrderRequest{
		Category: categoryLinear,
		Symbol:   symbol,
		OrderID:  orderID,
	}

	var res orderData
	if err := c.post(ctx, orderCancelPath, body, &res); err != nil {
		return trading.OrderResult{}, trading.OperationFailed("cancel order", err)
	}
	return trading.OrderResult{OrderID: res.OrderID, OrderLinkID: res.OrderLinkID}, nil
}

func (c *client) CancelAllOrders(ctx context.Context, symbol string) ([]trading.OrderResult, error) {
	body := cancelAllOrdersRequest{
		Category: categoryLinear,
		Symbol:   symbol,
	}

	var res cancelAllResult
	if err := c.post(ctx, orderCancelAllPath, body, &res); err != nil {
		return nil, trading.OperationFailed("cancel all orders", err)
	}

	cancelled := make([]trading.OrderResult, 0, len(res.List))
	for _, order := range res.List {
		cancelled = append(cancelled, trading.OrderResult{
			OrderID:     order.OrderID,
			OrderLinkID: order.OrderLinkID,
		})
	}
	return cancelled, nil
}
