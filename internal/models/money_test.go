package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyUnmarshalAcceptsStringAndNumber(t *testing.T) {
	var payload struct {
		A Money `json:"a"`
		B Money `json:"b"`
		C Money `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":"12.345","b":7.1,"c":null}`), &payload); err != nil {
		t.Fatalf("unmarshal money failed: %v", err)
	}
	if payload.A.String() != "12.35" {
		t.Fatalf("string amount want 12.35 got %s", payload.A.String())
	}
	if payload.B.String() != "7.10" {
		t.Fatalf("number amount want 7.10 got %s", payload.B.String())
	}
	if !payload.C.IsZero() {
		t.Fatalf("null amount should stay zero, got %s", payload.C.String())
	}
}

func TestMoneyMulInt(t *testing.T) {
	price, err := ParseMoney("199.99")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	total := price.MulInt(3)
	if total.String() != "599.97" {
		t.Fatalf("total want 599.97 got %s", total.String())
	}
	raw, err := json.Marshal(total)
	if err != nil {
		t.Fatalf("marshal money failed: %v", err)
	}
	if string(raw) != `"599.97"` {
		t.Fatalf("marshal want \"599.97\" got %s", string(raw))
	}
}

func TestStringArrayScan(t *testing.T) {
	var arr StringArray
	if err := arr.Scan(`["en","ja"]`); err != nil {
		t.Fatalf("scan string failed: %v", err)
	}
	if len(arr) != 2 || arr[1] != "ja" {
		t.Fatalf("unexpected scan result: %#v", arr)
	}
	if err := arr.Scan(nil); err != nil || len(arr) != 0 {
		t.Fatalf("scan nil should produce empty array, got %#v err=%v", arr, err)
	}
	if err := arr.Scan(42); err == nil {
		t.Fatalf("scan int should fail")
	}
}
