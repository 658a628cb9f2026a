package bittrex

import (
	"context"
	"fmt"
	"net/url"
)

// BuyLimit places a limit buy order and returns its uuid.
func (a *API) BuyLimit(ctx context.Context, market string, quantity, rateLimit float64) (*OrderRef, error) {
	query := url.Values{}
	query.Set("market", market)
	query.Set("quantity", formatQuantity(quantity))
	query.Set("rate", formatQuantity(rateLimit))

	var ref OrderRef
	if err := a.get(ctx, apiVersion1, "market/buylimit", query, true, &ref); err != nil {
		return nil, fmt.Errorf("buy limit %s: %w", market, err)
	}
	return &ref, nil
}

// SellLimit places a limit sell order and returns its uuid.
func (a *API) SellLimit(ctx context.Context, market string, quantity, rateLimit float64) (*OrderRef, error) {
	query := url.Values{}
	query.Set("market", market)
	query.Set("quantity", formatQuantity(quantity))
	query.Set("rate", formatQuantity(rateLimit))

	var ref OrderRef
	if err := a.get(ctx, apiVersion1, "market/selllimit", query, true, &ref); err != nil {
		return nil, fmt.Errorf("sell limit %s: %w", market, err)
	}
	return &ref, nil
}

// CancelOrder cancels a buy or sell order by uuid.
func (a *API) CancelOrder(ctx context.Context, orderID string) error {
	query := url.Values{}
	query.Set("uuid", orderID)

	if err := a.get(ctx, apiVersion1, "market/cancel", query, true, nil); err != nil {
		return fmt.Errorf("cancel order %s: %w", orderID, err)
	}
	return nil
}

// GetOpenOrders fetches open orders; market may be empty for all markets.
func (a *API) GetOpenOrders(ctx context.Context, market string) ([]OpenOrder, error) {
	query := url.Values{}
	if market != "" {
		query.Set("market", market)
	}

	var orders []OpenOrder
	if err := a.get(ctx, apiVersion1, "market/getopenorders", query, true, &orders); err != nil {
		return nil, fmt.Errorf("get open orders: %w", err)
	}
	return orders, nil
}

// GetBalances fetches all account balances.
func (a *API) GetBalances(ctx context.Context) ([]Balance, error) {
	var balances []Balance
	if err := a.get(ctx, apiVersion1, "account/getbalances", nil, true, &balances); err != nil {
		return nil, fmt.Errorf("get balances: %w", err)
	}
	return balances, nil
}

// GetBalance fetches the balance of one currency.
func (a *API) GetBalance(ctx context.Context, currency string) (*Balance, error) {
	query := url.Values{}
	query.Set("currency", currency)

	var balance Balance
	if err := a.get(ctx, apiVersion1, "account/getbalance", query, true, &balance); err != nil {
		return nil, fmt.Errorf("get balance %s: %w", currency, err)
	}
	return &balance, nil
}

// GetDepositAddress retrieves or generates a deposit address.
func (a *API) GetDepositAddress(ctx context.Context, currency string) (*DepositAddress, error) {
	query := url.Values{}
	query.Set("currency", currency)

	var address DepositAddress
	if err := a.get(ctx, apiVersion1, "account/getdepositaddress", query, true, &address); err != nil {
		return nil, fmt.Errorf("get deposit address %s: %w", currency, err)
	}
	return &address, nil
}

// Withdraw sends funds to an address and returns the withdrawal uuid.
func (a *API) Withdraw(ctx context.Context, currency string, quantity float64, address string) (*OrderRef, error) {
	query := url.Values{}
	query.Set("currency", currency)
	query.Set("quantity", formatQuantity(quantity))
	query.Set("address", address)

	var ref OrderRef
	if err := a.get(ctx, apiVersion1, "account/withdraw", query, true, &ref); err != nil {
		return nil, fmt.Errorf("withdraw %s: %w", currency, err)
	}
	return &ref, nil
}

// GetOrder fetches a single order by uuid.
func (a *API) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	query := url.Values{}
	query.Set("uuid", orderID)

	var order Order
	if err := a.get(ctx, apiVersion1, "account/getorder", query, true, &order); err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return &order, nil
}

// GetOrderHistory fetches the order history; market may be empty.
func (a *API) GetOrderHistory(ctx context.Context, market string) ([]HistoricOrder, error) {
	query := url.Values{}
	if market != "" {
		query.Set("market", market)
	}

	var orders []HistoricOrder
	if err := a.get(ctx, apiVersion1, "account/getorderhistory", query, true, &orders); err != nil {
		return nil, fmt.Errorf("get order history: %w", err)
	}
	return orders, nil
}

// GetWithdrawalHistory fetches the withdrawal history; currency may be
// empty.
func (a *API) GetWithdrawalHistory(ctx context.Context, currency string) ([]Withdrawal, error) {
	query := url.Values{}
	if currency != "" {
		query.Set("currency", currency)
	}

	var withdrawals []Withdrawal
	if err := a.get(ctx, apiVersion1, "account/getwithdrawalhistory", query, true, &withdrawals); err != nil {
		return nil, fmt.Errorf("get withdrawal history: %w", err)
	}
	return withdrawals, nil
}

// GetDepositHistory fetches the deposit history; currency may be empty.
func (a *API) GetDepositHistory(ctx context.Context, currency string) ([]Deposit, error) {
	query := url.Values{}
	if currency != "" {
		query.Set("currency", currency)
	}

	var deposits []Deposit
	if err := a.get(ctx, apiVersion1, "account/getdeposithistory", query, true, &deposits); err != nil {
		return nil, fmt.Errorf("get deposit history: %w", err)
	}
	return deposits, nil
}
