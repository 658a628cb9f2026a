package keymap

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTranslateNested(t *testing.T) {
	var in any
	raw := `{"M":"BTC-TRX","N":3,"Z":[{"Q":1.5,"R":0.001}],"S":[{"Q":2.0,"R":0.002}],"f":[{"Q":0.5,"R":0.0015,"OT":"BUY"}]}`
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	got := Translate(in)

	var want any
	expected := `{"market_name":"BTC-TRX","nonce":3,"buys":[{"quantity":1.5,"rate":0.001}],"sells":[{"quantity":2.0,"rate":0.002}],"fills":[{"quantity":0.5,"rate":0.0015,"order_type":"BUY"}]}`
	if err := json.Unmarshal([]byte(expected), &want); err != nil {
		t.Fatalf("unmarshal expected: %v", err)
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Translate mismatch:\n got: %#v\nwant: %#v", got, want)
	}
}

func TestTranslateUnknownKeysPassThrough(t *testing.T) {
	in := map[string]any{
		"M":          "BTC-ETH",
		"unexpected": 42,
	}

	got, ok := Translate(in).(map[string]any)
	if !ok {
		t.Fatalf("Translate returned %T, want map[string]any", Translate(in))
	}
	if got["market_name"] != "BTC-ETH" {
		t.Errorf("market_name = %v, want BTC-ETH", got["market_name"])
	}
	if got["unexpected"] != 42 {
		t.Errorf("unexpected = %v, want 42", got["unexpected"])
	}
}

func TestTranslateIdempotent(t *testing.T) {
	in := map[string]any{
		"M": "BTC-ETH",
		"Z": []any{map[string]any{"Q": 1.0, "R": 2.0}},
	}

	once := Translate(in)
	twice := Translate(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed output:\nonce:  %#v\ntwice: %#v", once, twice)
	}
}

func TestTranslateScalars(t *testing.T) {
	for _, v := range []any{"plain", 3.14, true, nil} {
		if got := Translate(v); !reflect.DeepEqual(got, v) {
			t.Errorf("Translate(%v) = %v, want unchanged", v, got)
		}
	}
}

func TestTranslateTopLevelList(t *testing.T) {
	in := []any{
		map[string]any{"M": "BTC-ETH"},
		map[string]any{"M": "BTC-TRX"},
	}

	got, ok := Translate(in).([]any)
	if !ok {
		t.Fatalf("Translate returned %T, want []any", Translate(in))
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	first := got[0].(map[string]any)
	if first["market_name"] != "BTC-ETH" {
		t.Errorf("first market_name = %v, want BTC-ETH", first["market_name"])
	}
}
