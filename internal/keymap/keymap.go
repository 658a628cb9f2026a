// Package keymap renames the abbreviated field codes used by the Bittrex
// push service to their semantic names.
package keymap

// Keys maps a short wire code to its semantic field name. Codes absent
// from the table pass through untouched.
var Keys = map[string]string{
	"A":  "ask",
	"a":  "available",
	"B":  "bid",
	"b":  "balance",
	"C":  "closed",
	"c":  "currency",
	"CI": "cancel_initiated",
	"D":  "deltas",
	"d":  "delta",
	"DT": "order_delta_type",
	"E":  "exchange",
	"e":  "exchange_delta_type",
	"F":  "fill_type",
	"FI": "fill_id",
	"f":  "fills",
	"G":  "open_buy_orders",
	"g":  "open_sell_orders",
	"H":  "high",
	"h":  "auto_sell",
	"I":  "id",
	"i":  "is_open",
	"J":  "condition",
	"j":  "condition_target",
	"K":  "immediate_or_cancel",
	"k":  "is_conditional",
	"L":  "low",
	"l":  "last",
	"M":  "market_name",
	"m":  "base_volume",
	"N":  "nonce",
	"n":  "commission_paid",
	"O":  "orders",
	"o":  "order",
	"OT": "order_type",
	"OU": "order_uuid",
	"P":  "price",
	"p":  "crypto_address",
	"PD": "prev_day",
	"PU": "price_per_unit",
	"Q":  "quantity",
	"q":  "quantity_remaining",
	"R":  "rate",
	"r":  "requested",
	"S":  "sells",
	"s":  "summaries",
	"T":  "time_stamp",
	"t":  "total",
	"TY": "type",
	"U":  "uuid",
	"u":  "updated",
	"V":  "volume",
	"W":  "account_id",
	"w":  "account_uuid",
	"X":  "limit",
	"x":  "created",
	"Y":  "opened",
	"y":  "state",
	"Z":  "buys",
	"z":  "pending",
}

// Translate walks a decoded JSON value and replaces every object key found
// in Keys with its semantic name. Arrays are translated element-wise with
// order preserved; scalars are returned unchanged. Translating an already
// translated value is a no-op.
func Translate(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if name, ok := Keys[k]; ok {
				k = name
			}
			out[k] = Translate(inner)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = Translate(inner)
		}
		return out
	default:
		return v
	}
}
