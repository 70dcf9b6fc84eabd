package viz_test

import (
	"encoding/json"
	"testing"

	"algoviz/internal/viz"
)

func TestParseScalar(t *testing.T) {
	tests := []struct {
		raw  string
		kind viz.ScalarKind
		text string
	}{
		{"5", viz.ScalarInt, "5"},
		{" -12 ", viz.ScalarInt, "-12"},
		{"2.5", viz.ScalarFloat, "2.5"},
		{"+", viz.ScalarToken, "+"},
		{"a.b", viz.ScalarToken, "a.b"},
		{"x", viz.ScalarToken, "x"},
	}
	for _, tt := range tests {
		got := viz.ParseScalar(tt.raw)
		if got.Kind() != tt.kind {
			t.Fatalf("ParseScalar(%q) kind = %v, want %v", tt.raw, got.Kind(), tt.kind)
		}
		if got.String() != tt.text {
			t.Fatalf("ParseScalar(%q) = %q, want %q", tt.raw, got.String(), tt.text)
		}
	}
}

func TestScalarCompareOrdersNumbersBeforeTokens(t *testing.T) {
	if viz.Int(1).Compare(viz.Float(1.5)) >= 0 {
		t.Fatal("expected 1 < 1.5")
	}
	if viz.Float(2).Compare(viz.Int(2)) != 0 {
		t.Fatal("expected 2.0 == 2")
	}
	if viz.Int(99).Compare(viz.Token("a")) >= 0 {
		t.Fatal("expected numbers to sort before tokens")
	}
	if viz.Token("b").Compare(viz.Token("a")) <= 0 {
		t.Fatal("expected lexical token order")
	}
}

func TestScalarJSON(t *testing.T) {
	values := []viz.Scalar{viz.Int(5), viz.Float(2.5), viz.Token("+")}
	data, err := json.Marshal(values)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `[5,2.5,"+"]` {
		t.Fatalf("unexpected encoding %s", data)
	}

	var decoded []viz.Scalar
	if err := json.Unmarshal([]byte(`[3, 4.0, "*", true, null]`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []viz.ScalarKind{viz.ScalarInt, viz.ScalarFloat, viz.ScalarToken, viz.ScalarToken, viz.ScalarToken}
	for i, kind := range want {
		if decoded[i].Kind() != kind {
			t.Fatalf("value %d kind = %v, want %v", i, decoded[i].Kind(), kind)
		}
	}
	if err := json.Unmarshal([]byte(`[{"a":1}]`), &decoded); err == nil {
		t.Fatal("expected error for object value")
	}
}
