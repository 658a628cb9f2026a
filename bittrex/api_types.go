package bittrex

import "github.com/google/uuid"

// Timestamps below keep the API's bare ISO-8601 strings (no timezone,
// e.g. "2018-04-23T13:09:54.903"); they do not parse as RFC 3339.

// Market describes one tradable market pair.
type Market struct {
	MarketCurrency     string  `json:"MarketCurrency"`
	BaseCurrency       string  `json:"BaseCurrency"`
	MarketCurrencyLong string  `json:"MarketCurrencyLong"`
	BaseCurrencyLong   string  `json:"BaseCurrencyLong"`
	MinTradeSize       float64 `json:"MinTradeSize"`
	MarketName         string  `json:"MarketName"`
	IsActive           bool    `json:"IsActive"`
	Created            string  `json:"Created"`
	Notice             *string `json:"Notice"`
	IsSponsored        *bool   `json:"IsSponsored"`
	LogoURL            *string `json:"LogoUrl"`
}

// Currency describes one supported currency.
type Currency struct {
	Currency        string  `json:"Currency"`
	CurrencyLong    string  `json:"CurrencyLong"`
	MinConfirmation int     `json:"MinConfirmation"`
	TxFee           float64 `json:"TxFee"`
	IsActive        bool    `json:"IsActive"`
	CoinType        string  `json:"CoinType"`
	BaseAddress     *string `json:"BaseAddress"`
	Notice          *string `json:"Notice"`
}

// Ticker is the current tick for one market.
type Ticker struct {
	Bid  float64 `json:"Bid"`
	Ask  float64 `json:"Ask"`
	Last float64 `json:"Last"`
}

// MarketSummary is the 24-hour summary of one market.
type MarketSummary struct {
	MarketName     string  `json:"MarketName"`
	High           float64 `json:"High"`
	Low            float64 `json:"Low"`
	Volume         float64 `json:"Volume"`
	Last           float64 `json:"Last"`
	BaseVolume     float64 `json:"BaseVolume"`
	TimeStamp      string  `json:"TimeStamp"`
	Bid            float64 `json:"Bid"`
	Ask            float64 `json:"Ask"`
	OpenBuyOrders  int     `json:"OpenBuyOrders"`
	OpenSellOrders int     `json:"OpenSellOrders"`
	PrevDay        float64 `json:"PrevDay"`
	Created        string  `json:"Created"`
}

// OrderBookEntry is one price level of an order book side.
type OrderBookEntry struct {
	Quantity float64 `json:"Quantity"`
	Rate     float64 `json:"Rate"`
}

// OrderBook is a full order book snapshot.
type OrderBook struct {
	Buy  []OrderBookEntry `json:"buy"`
	Sell []OrderBookEntry `json:"sell"`
}

// MarketTrade is one historical fill on a market.
type MarketTrade struct {
	ID        int64   `json:"Id"`
	TimeStamp string  `json:"TimeStamp"`
	Quantity  float64 `json:"Quantity"`
	Price     float64 `json:"Price"`
	Total     float64 `json:"Total"`
	FillType  string  `json:"FillType"`
	OrderType string  `json:"OrderType"`
}

// OrderRef identifies a placed order or withdrawal.
type OrderRef struct {
	UUID uuid.UUID `json:"uuid"`
}

// OpenOrder is one currently open order.
type OpenOrder struct {
	UUID              *string  `json:"Uuid"`
	OrderUUID         string   `json:"OrderUuid"`
	Exchange          string   `json:"Exchange"`
	OrderType         string   `json:"OrderType"`
	Quantity          float64  `json:"Quantity"`
	QuantityRemaining float64  `json:"QuantityRemaining"`
	Limit             float64  `json:"Limit"`
	CommissionPaid    float64  `json:"CommissionPaid"`
	Price             float64  `json:"Price"`
	PricePerUnit      *float64 `json:"PricePerUnit"`
	Opened            string   `json:"Opened"`
	Closed            *string  `json:"Closed"`
	CancelInitiated   bool     `json:"CancelInitiated"`
	ImmediateOrCancel bool     `json:"ImmediateOrCancel"`
	IsConditional     bool     `json:"IsConditional"`
	Condition         *string  `json:"Condition"`
	ConditionTarget   *float64 `json:"ConditionTarget"`
}

// Balance is the account balance of one currency.
type Balance struct {
	Currency      string  `json:"Currency"`
	Balance       float64 `json:"Balance"`
	Available     float64 `json:"Available"`
	Pending       float64 `json:"Pending"`
	CryptoAddress *string `json:"CryptoAddress"`
}

// DepositAddress is the deposit address for one currency.
type DepositAddress struct {
	Currency string `json:"Currency"`
	Address  string `json:"Address"`
}

// Order is the full record of a single order.
type Order struct {
	AccountID                  *string  `json:"AccountId"`
	OrderUUID                  string   `json:"OrderUuid"`
	Exchange                   string   `json:"Exchange"`
	Type                       string   `json:"Type"`
	Quantity                   float64  `json:"Quantity"`
	QuantityRemaining          float64  `json:"QuantityRemaining"`
	Limit                      float64  `json:"Limit"`
	Reserved                   float64  `json:"Reserved"`
	ReserveRemaining           float64  `json:"ReserveRemaining"`
	CommissionReserved         float64  `json:"CommissionReserved"`
	CommissionReserveRemaining float64  `json:"CommissionReserveRemaining"`
	CommissionPaid             float64  `json:"CommissionPaid"`
	Price                      float64  `json:"Price"`
	PricePerUnit               *float64 `json:"PricePerUnit"`
	Opened                     string   `json:"Opened"`
	Closed                     *string  `json:"Closed"`
	IsOpen                     bool     `json:"IsOpen"`
	Sentinel                   string   `json:"Sentinel"`
	CancelInitiated            bool     `json:"CancelInitiated"`
	ImmediateOrCancel          bool     `json:"ImmediateOrCancel"`
	IsConditional              bool     `json:"IsConditional"`
	Condition                  *string  `json:"Condition"`
	ConditionTarget            *float64 `json:"ConditionTarget"`
}

// HistoricOrder is one entry of the order history.
type HistoricOrder struct {
	OrderUUID         string   `json:"OrderUuid"`
	Exchange          string   `json:"Exchange"`
	TimeStamp         string   `json:"TimeStamp"`
	OrderType         string   `json:"OrderType"`
	Limit             float64  `json:"Limit"`
	Quantity          float64  `json:"Quantity"`
	QuantityRemaining float64  `json:"QuantityRemaining"`
	Commission        float64  `json:"Commission"`
	Price             float64  `json:"Price"`
	PricePerUnit      *float64 `json:"PricePerUnit"`
	IsConditional     bool     `json:"IsConditional"`
	Condition         *string  `json:"Condition"`
	ConditionTarget   *float64 `json:"ConditionTarget"`
	ImmediateOrCancel bool     `json:"ImmediateOrCancel"`
}

// Withdrawal is one entry of the withdrawal history.
type Withdrawal struct {
	PaymentUUID    string  `json:"PaymentUuid"`
	Currency       string  `json:"Currency"`
	Amount         float64 `json:"Amount"`
	Address        string  `json:"Address"`
	Opened         string  `json:"Opened"`
	Authorized     bool    `json:"Authorized"`
	PendingPayment bool    `json:"PendingPayment"`
	TxCost         float64 `json:"TxCost"`
	TxID           string  `json:"TxId"`
	Canceled       bool    `json:"Canceled"`
	InvalidAddress bool    `json:"InvalidAddress"`
}

// Deposit is one entry of the deposit history.
type Deposit struct {
	ID            int64   `json:"Id"`
	Amount        float64 `json:"Amount"`
	Currency      string  `json:"Currency"`
	Confirmations int     `json:"Confirmations"`
	LastUpdated   string  `json:"LastUpdated"`
	TxID          string  `json:"TxId"`
	CryptoAddress string  `json:"CryptoAddress"`
}

// TickInterval selects a candle resolution.
type TickInterval string

const (
	TickOneMin  TickInterval = "oneMin"
	TickFiveMin TickInterval = "fiveMin"
	TickHour    TickInterval = "hour"
	TickDay     TickInterval = "day"
)

// Candle is one OHLCV tick.
type Candle struct {
	Open       float64 `json:"O"`
	High       float64 `json:"H"`
	Low        float64 `json:"L"`
	Close      float64 `json:"C"`
	Volume     float64 `json:"V"`
	TimeStamp  string  `json:"T"`
	BaseVolume float64 `json:"BV"`
}
