package bybit

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"bybit-trade-bot/trading"
)

const leverageNotModifiedCode = 110043

// SetLeverage sets buy and sell leverage to the same value. The
// exchange rejects a no-op change with a dedicated error code, which
// is treated as success so repeated calls stay idempotent.
func (c *client) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	if leverage <= 0 {
		leverage = 1
	}
	body := setLeverageRequest{
		Category:     categoryLinear,
		Symbol:       symbol,
		BuyLeverage:  strconv.Itoa(leverage),
		SellLeverage: strconv.Itoa(leverage),
	}

	if err := c.post(ctx, setLeveragePath, body, nil); err != nil {
		if isLeverageNotModified(err) {
			return nil
		}
		return trading.OperationFailed("set leverage", err)
	}
	return nil
}

func isLeverageNotModified(err error) bool {
	var apiErr *apiError
	if errors.As(err, &apiErr) && apiErr.Code == leverageNotModifiedCode {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "leverage not modified")
}

// GetPosition returns the open position for symbol, or nil when the
// account has no entry for it. Absence is not an error.
func (c *client) GetPosition(ctx context.Context, symbol string) (*trading.Position, error) {
	q := url.Values{}
	q.Set("category", categoryLinear)
	q.Set("symbol", symbol)

	var res positionsResult
	if err := c.get(ctx, positionListPath, q, &res); err != nil {
		return nil, trading.OperationFailed("get position", err)
	}
	if len(res.List) == 0 {
		return nil, nil
	}

	entry := res.List[0]
	position := trading.Position{
		Symbol:      entry.Symbol,
		Side:        trading.Side(entry.Side),
		PositionIdx: entry.PositionIdx,
	}

	var err error
	if position.Size, err = parseDecimal("size", entry.Size); err != nil {
		return nil, trading.OperationFailed("get position", err)
	}
	if position.EntryPrice, err = parseDecimal("avgPrice", entry.AvgPrice); err != nil {
		return nil, trading.OperationFailed("get position", err)
	}
	if position.MarkPrice, err = parseDecimal("markPrice", entry.MarkPrice); err != nil {
		return nil, trading.OperationFailed("get position", err)
	}
	if position.Leverage, err = parseDecimal("leverage", entry.Leverage); err != nil {
		return nil, trading.OperationFailed("get position", err)
	}
	if position.UnrealisedPnl, err = parseDecimal("unrealisedPnl", entry.UnrealisedPnl); err != nil {
		return nil, trading.OperationFailed("get position", err)
	}

	return &position, nil
}

// ClosePosition issues a reduce-only market order on the opposite side
// for the full position size.
func (c *client) ClosePosition(ctx context.Context, symbol string) (trading.OrderResult, error) {
	position, err := c.GetPosition(ctx, symbol)
	if err != nil {
		return trading.OrderResult{}, err
	}
	if position == nil || position.Size.IsZero() {
		return trading.OrderResult{}, trading.Validationf("no open position for %s", symbol)
	}

	order := placeOrderRequest{
		Category:    categoryLinear,
		Symbol:      symbol,
		Side:        string(position.Side.Opposite()),
		OrderType:   string(trading.OrderTypeMarket),
		Qty:         position.Size.Abs().String(),
		PositionIdx: positionIdxOneWay,
		ReduceOnly:  true,
		OrderLinkID: uuid.NewString(),
	}

	var res orderData
	if err := c.post(ctx, orderCreatePath, order, &res); err != nil {
		return trading.OrderResult{}, trading.OperationFailed("close position", err)
	}
	return trading.OrderResult{OrderID: res.OrderID, OrderLinkID: res.OrderLinkID}, nil
}

func (c *client) GetWalletBalance(ctx context.Context) (trading.WalletBalance, error) {
	q := url.Values{}
	q.Set("accountType", accountTypeUnified)

	var res walletBalanceResult
	if err := c.get(ctx, walletBalancePath, q, &res); err != nil {
		return trading.WalletBalance{}, trading.OperationFailed("get wallet balance", err)
	}
	if len(res.List) == 0 {
		return trading.WalletBalance{}, trading.OperationFailed("get wallet balance",
			errors.New("no balance data returned"))
	}

	account := res.List[0]
	balance := trading.WalletBalance{AccountType: account.AccountType}

	var err error
	if balance.TotalEquity, err = parseDecimal("totalEquity", account.TotalEquity); err != nil {
		return trading.WalletBalance{}, trading.OperationFailed("get wallet balance", err)
	}
	if balance.TotalAvailableBalance, err = parseDecimal("totalAvailableBalance", account.TotalAvailableBalance); err != nil {
		return trading.WalletBalance{}, trading.OperationFailed("get wallet balance", err)
	}

	for _, coin := range account.Coin {
		entry := trading.CoinBalance{Coin: coin.Coin}
		if entry.Equity, err = parseDecimal("equity", coin.Equity); err != nil {
			return trading.WalletBalance{}, trading.OperationFailed("get wallet balance", err)
		}
		if entry.WalletBalance, err = parseDecimal("walletBalance", coin.WalletBalance); err != nil {
			return trading.WalletBalance{}, trading.OperationFailed("get wallet balance", err)
		}
		if entry.UnrealisedPnl, err = parseDecimal("unrealisedPnl", coin.UnrealisedPnl); err != nil {
			return trading.WalletBalance{}, trading.OperationFailed("get wallet balance", err)
		}
		balance.Coins = append(balance.Coins, entry)
	}

	return balance, nil
}
