package bybit

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bybit-trade-bot/trading"
)

func openPosition(side, size string) map[string]interface{} {
	return map[string]interface{}{
		"symbol":        "BTCUSDT",
		"side":          side,
		"size":          size,
		"avgPrice":      "40000",
		"markPrice":     "40100",
		"leverage":      "10",
		"unrealisedPnl": "50",
		"positionIdx":   0,
	}
}

func TestSetLeverage(t *testing.T) {
	fake := newFakeExchange(t)

	err := fake.client().SetLeverage(context.Background(), "BTCUSDT", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, fake.called("POST "+setLeveragePath))
}

func TestSetLeverage_NotModifiedIsIdempotent(t *testing.T) {
	fake := newFakeExchange(t)
	fake.notModified = true

	client := fake.client()
	require.NoError(t, client.SetLeverage(context.Background(), "BTCUSDT", 10))
	require.NoError(t, client.SetLeverage(context.Background(), "BTCUSDT", 10))
	assert.Equal(t, 2, fake.called("POST "+setLeveragePath))
}

func TestSetLeverage_Failure(t *testing.T) {
	fake := newFakeExchange(t)
	fake.failingRetCode = 10001
	fake.failingRetMsg = "params error"

	err := fake.client().SetLeverage(context.Background(), "BTCUSDT", 10)
	require.Error(t, err)
	assert.True(t, trading.IsOperation(err))
	assert.Contains(t, err.Error(), "failed to set leverage")
}

func TestIsLeverageNotModified(t *testing.T) {
	notModified := &apiError{Code: leverageNotModifiedCode, Msg: "set leverage not modified"}

	assert.True(t, isLeverageNotModified(notModified))
	assert.True(t, isLeverageNotModified(errors.Wrap(notModified, "post /v5/position/set-leverage")))
	assert.True(t, isLeverageNotModified(errors.New("Leverage Not Modified")))
	assert.False(t, isLeverageNotModified(&apiError{Code: 10001, Msg: "params error"}))
}

func TestGetPosition(t *testing.T) {
	fake := newFakeExchange(t)
	fake.positions = []map[string]interface{}{openPosition("Buy", "5")}

	position, err := fake.client().GetPosition(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	require.NotNil(t, position)
	assert.Equal(t, "BTCUSDT", position.Symbol)
	assert.Equal(t, trading.SideBuy, position.Side)
	assert.True(t, position.Size.Equal(dec(t, "5")))
	assert.True(t, position.EntryPrice.Equal(dec(t, "40000")))
}

func TestGetPosition_NoEntryIsNotAnError(t *testing.T) {
	fake := newFakeExchange(t)

	position, err := fake.client().GetPosition(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.Nil(t, position)
}

func TestClosePosition(t *testing.T) {
	fake := newFakeExchange(t)
	fake.positions = []map[string]interface{}{openPosition("Buy", "5")}

	result, err := fake.client().ClosePosition(context.Background(), "BTCUSDT")
	require.NoError(t, err)
	assert.NotEmpty(t, result.OrderID)

	orders := fake.placedOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, "Sell", orders[0].Side)
	assert.Equal(t, "Market", orders[0].OrderType)
	assert.Equal(t, "5", orders[0].Qty)
	assert.True(t, orders[0].ReduceOnly)
	assert.Equal(t, 0, orders[0].PositionIdx)
}

func TestClosePosition_ShortClosesWithBuy(t *testing.T) {
	fake := newFakeExchange(t)
	fake.positions = []map[string]interface{}{openPosition("Sell", "2.5")}

	_, err := fake.client().ClosePosition(context.Background(), "BTCUSDT")
	require.NoError(t, err)

	orders := fake.placedOrders()
	require.Len(t, orders, 1)
	assert.Equal(t, "Buy", orders[0].Side)
	assert.Equal(t, "2.5", orders[0].Qty)
}

func TestClosePosition_NoPosition(t *testing.T) {
	fake := newFakeExchange(t)

	_, err := fake.client().ClosePosition(context.Background(), "BTCUSDT")
	require.Error(t, err)
	assert.True(t, trading.IsValidation(err))
	assert.Contains(t, err.Error(), "no open position for BTCUSDT")
	assert.Empty(t, fake.placedOrders())
}

func TestClosePosition_ZeroSize(t *testing.T) {
	fake := newFakeExchange(t)
	fake.positions = []map[string]interface{}{openPosition("", "0")}

	_, err := fake.client().ClosePosition(context.Background(), "BTCUSDT")
	require.Error(t, err)
	assert.True(t, trading.IsValidation(err))
	assert.Empty(t, fake.placedOrders())
}

func TestGetWalletBalance(t *testing.T) {
	fake := newFakeExchange(t)

	balance, err := fake.client().GetWalletBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "UNIFIED", balance.AccountType)
	assert.True(t, balance.TotalEquity.Equal(dec(t, "1024.50")))
	assert.True(t, balance.TotalAvailableBalance.Equal(dec(t, "512.25")))
	require.Len(t, balance.Coins, 1)
	assert.Equal(t, "USDT", balance.Coins[0].Coin)
	assert.True(t, balance.Coins[0].UnrealisedPnl.Equal(dec(t, "24.50")))
}
