package bybit

import (
	"context"
	"net/url"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"bybit-trade-bot/trading"
)

func (c *client) GetSymbolInfo(ctx context.Context, symbol string) (trading.SymbolInfo, error) {
	q := url.Values{}
	q.Set("category", categoryLinear)
	q.Set("symbol", symbol)

	var res instrumentsResult
	if err := c.get(ctx, instrumentsInfoPath, q, &res); err != nil {
		return trading.SymbolInfo{}, trading.OperationFailed("get symbol info", err)
	}
	if len(res.List) == 0 {
		return trading.SymbolInfo{}, trading.OperationFailed("get symbol info",
			errors.Wrapf(trading.ErrNotFound, "symbol %s", symbol))
	}

	instrument := res.List[0]
	info := trading.SymbolInfo{
		Symbol:       instrument.Symbol,
		ContractType: instrument.ContractType,
		Status:       instrument.Status,
	}

	fields := []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"minOrderQty", instrument.LotSizeFilter.MinOrderQty, &info.MinOrderQty},
		{"maxOrderQty", instrument.LotSizeFilter.MaxOrderQty, &info.MaxOrderQty},
		{"qtyStep", instrument.LotSizeFilter.QtyStep, &info.QtyStep},
		{"tickSize", instrument.PriceFilter.TickSize, &info.TickSize},
	}
	for _, f := range fields {
		d, err := parseDecimal(f.name, f.value)
		if err != nil {
			return trading.SymbolInfo{}, trading.OperationFailed("get symbol info", err)
		}
		*f.dst = d
	}

	return info, nil
}

func (c *client) GetCurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("category", categoryLinear)
	q.Set("symbol", symbol)

	var res tickersResult
	if err := c.get(ctx, tickersPath, q, &res); err != nil {
		return decimal.Decimal{}, trading.OperationFailed("get current price", err)
	}
	if len(res.List) == 0 {
		return decimal.Decimal{}, trading.OperationFailed("get current price",
			errors.Errorf("no ticker data for %s", symbol))
	}

	price, err := decimal.NewFromString(res.List[0].LastPrice)
	if err != nil {
		return decimal.Decimal{}, trading.OperationFailed("get current price",
			errors.Wrapf(err, "parse lastPrice %q", res.List[0].LastPrice))
	}
	return price, nil
}
