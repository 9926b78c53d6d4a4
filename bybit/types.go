package bybit

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type setLeverageRequest struct {
	Category     string `json:"category"`
	Symbol       string `json:"symbol"`
	BuyLeverage  string `json:"buyLeverage"`
	SellLeverage string `json:"sellLeverage"`
}

type placeOrderRequest struct {
	Category    string `json:"category"`
	Symbol      string `json:"symbol"`
	Side        string `json:"side"`
	OrderType   string `json:"orderType"`
	Qty         string `json:"qty"`
	Price       string `json:"price,omitempty"`
	PositionIdx int    `json:"positionIdx"`
	ReduceOnly  bool   `json:"reduceOnly"`
	StopLoss    string `json:"stopLoss,omitempty"`
	TakeProfit  string `json:"takeProfit,omitempty"`
	IsLeverage  *int   `json:"isLeverage,omitempty"`
	OrderLinkID string `json:"orderLinkId,omitempty"`
}

type cancelOrderRequest struct {
	Category string `json:"category"`
	Symbol   string `json:"symbol"`
	OrderID  string `json:"orderId"`
}

type cancelAllOrdersRequest struct {
	Category string `json:"category"`
	Symbol   string `json:"symbol"`
}

type orderData struct {
	OrderID     string `json:"orderId"`
	OrderLinkID string `json:"orderLinkId"`
}

type cancelAllResult struct {
	List []orderData `json:"list"`
}

type instrumentsResult struct {
	Category string `json:"category"`
	List     []struct {
		Symbol        string `json:"symbol"`
		ContractType  string `json:"contractType"`
		Status        string `json:"status"`
		LotSizeFilter struct {
			MinOrderQty string `json:"minOrderQty"`
			MaxOrderQty string `json:"maxOrderQty"`
			QtyStep     string `json:"qtyStep"`
		} `json:"lotSizeFilter"`
		PriceFilter struct {
			TickSize string `json:"tickSize"`
		} `json:"priceFilter"`
	} `json:"list"`
}

type tickersResult struct {
	Category string `json:"category"`
	List     []struct {
		Symbol    string `json:"symbol"`
		LastPrice string `json:"lastPrice"`
	} `json:"list"`
}

type positionsResult struct {
	Category string `json:"category"`
	List     []struct {
		Symbol        string `json:"symbol"`
		Side          string `json:"side"`
		Size          string `json:"size"`
		AvgPrice      string `json:"avgPrice"`
		MarkPrice     string `json:"markPrice"`
		Leverage      string `json:"leverage"`
		UnrealisedPnl string `json:"unrealisedPnl"`
		PositionIdx   int    `json:"positionIdx"`
	} `json:"list"`
}

type walletBalanceResult struct {
	List []struct {
		AccountType           string `json:"accountType"`
		TotalEquity           string `json:"totalEquity"`
		TotalAvailableBalance string `json:"totalAvailableBalance"`
		Coin                  []struct {
			Coin          string `json:"coin"`
			Equity        string `json:"equity"`
			WalletBalance string `json:"walletBalance"`
			UnrealisedPnl string `json:"unrealisedPnl"`
		} `json:"coin"`
	} `json:"list"`
}

// parseDecimal converts an exchange string field, treating the empty
// string as zero. The exchange leaves numeric fields empty when they
// do not apply, e.g. side and pnl on a flat position.
func parseDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Decimal{}, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(err, "parse %s %q", field, value)
	}
	return d, nil
}
