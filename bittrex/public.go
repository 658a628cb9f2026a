package bittrex

import (
	"context"
	"fmt"
	"net/url"
)

// GetMarkets fetches all open and available trading markets.
func (a *API) GetMarkets(ctx context.Context) ([]Market, error) {
	var markets []Market
	if err := a.get(ctx, apiVersion1, "public/getmarkets", nil, false, &markets); err != nil {
		return nil, fmt.Errorf("get markets: %w", err)
	}
	return markets, nil
}

// GetCurrencies fetches all supported currencies.
func (a *API) GetCurrencies(ctx context.Context) ([]Currency, error) {
	var currencies []Currency
	if err := a.get(ctx, apiVersion1, "public/getcurrencies", nil, false, &currencies); err != nil {
		return nil, fmt.Errorf("get currencies: %w", err)
	}
	return currencies, nil
}

// GetTicker fetches the current tick values for a market.
func (a *API) GetTicker(ctx context.Context, market string) (*Ticker, error) {
	query := url.Values{}
	query.Set("market", market)

	var ticker Ticker
	if err := a.get(ctx, apiVersion1, "public/getticker", query, false, &ticker); err != nil {
		return nil, fmt.Errorf("get ticker %s: %w", market, err)
	}
	return &ticker, nil
}

// GetMarketSummaries fetches the 24-hour summary of all active markets.
func (a *API) GetMarketSummaries(ctx context.Context) ([]MarketSummary, error) {
	var summaries []MarketSummary
	if err := a.get(ctx, apiVersion1, "public/getmarketsummaries", nil, false, &summaries); err != nil {
		return nil, fmt.Errorf("get market summaries: %w", err)
	}
	return summaries, nil
}

// GetMarketSummary fetches the 24-hour summary of one market. The API
// answers with a one-element array.
func (a *API) GetMarketSummary(ctx context.Context, market string) (*MarketSummary, error) {
	query := url.Values{}
	query.Set("market", market)

	var summaries []MarketSummary
	if err := a.get(ctx, apiVersion1, "public/getmarketsummary", query, false, &summaries); err != nil {
		return nil, fmt.Errorf("get market summary %s: %w", market, err)
	}
	if len(summaries) == 0 {
		return nil, &APIError{Message: "empty market summary"}
	}
	return &summaries[0], nil
}

// GetOrderBook fetches both sides of the order book for a market.
func (a *API) GetOrderBook(ctx context.Context, market string) (*OrderBook, error) {
	query := url.Values{}
	query.Set("market", market)
	query.Set("type", "both")

	var book OrderBook
	if err := a.get(ctx, apiVersion1, "public/getorderbook", query, false, &book); err != nil {
		return nil, fmt.Errorf("get order book %s: %w", market, err)
	}
	return &book, nil
}

// GetMarketHistory fetches the latest trades for a market.
func (a *API) GetMarketHistory(ctx context.Context, market string) ([]MarketTrade, error) {
	query := url.Values{}
	query.Set("market", market)

	var trades []MarketTrade
	if err := a.get(ctx, apiVersion1, "public/getmarkethistory", query, false, &trades); err != nil {
		return nil, fmt.Errorf("get market history %s: %w", market, err)
	}
	return trades, nil
}

// GetCandles fetches OHLCV ticks for a market at the given resolution.
func (a *API) GetCandles(ctx context.Context, market string, interval TickInterval) ([]Candle, error) {
	query := url.Values{}
	query.Set("marketName", market)
	query.Set("tickInterval", string(interval))

	var candles []Candle
	if err := a.get(ctx, apiVersion2, "pub/market/GetTicks", query, false, &candles); err != nil {
		return nil, fmt.Errorf("get candles %s: %w", market, err)
	}
	return candles, nil
}

// GetLatestCandle fetches the most recent OHLCV tick for a market.
func (a *API) GetLatestCandle(ctx context.Context, market string, interval TickInterval) (*Candle, error) {
	query := url.Values{}
	query.Set("marketName", market)
	query.Set("tickInterval", string(interval))

	var candles []Candle
	if err := a.get(ctx, apiVersion2, "pub/market/GetLatestTick", query, false, &candles); err != nil {
		return nil, fmt.Errorf("get latest candle %s: %w", market, err)
	}
	if len(candles) == 0 {
		return nil, &APIError{Message: "empty candle response"}
	}
	return &candles[0], nil
}
