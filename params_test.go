package qsimkit

import (
	"math"
	"testing"
)

func TestParseParamExpr(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1.5707", 1.5707, true},
		{"-0.5", -0.5, true},
		{"3.14e-2", 0.0314, true},
		{"pi", math.Pi, true},
		{"PI", math.Pi, true},
		{"-pi", -math.Pi, true},
		{"pi/2", math.Pi / 2, true},
		{"-pi/2", -math.Pi / 2, true},
		{"2pi", 2 * math.Pi, true},
		{"2*pi", 2 * math.Pi, true},
		{"3pi/4", 3 * math.Pi / 4, true},
		{"3*pi/4", 3 * math.Pi / 4, true},
		{"-2*pi/3", -2 * math.Pi / 3, true},
		{"  pi/4  ", math.Pi / 4, true},
		{"", 0, false},
		{"twopi", 0, false},
		{"pi/0", 0, false},
		{"1..2", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseParamExpr(tt.input)
		if ok != tt.ok {
			t.Errorf("parseParamExpr(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && math.Abs(got-tt.want) > 1e-10 {
			t.Errorf("parseParamExpr(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseParams(t *testing.T) {
	got, err := ParseParams("pi/2, 0.5, -pi")
	if err != nil {
		t.Fatalf("ParseParams: %v", err)
	}
	want := []float64{math.Pi / 2, 0.5, -math.Pi}
	if len(got) != len(want) {
		t.Fatalf("ParseParams length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-10 {
			t.Errorf("ParseParams[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := ParseParams("pi/2, nope"); err == nil {
		t.Error("ParseParams accepted an invalid expression")
	}
}

func TestFormatParam(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{math.Pi, "pi"},
		{-math.Pi, "-pi"},
		{math.Pi / 2, "pi/2"},
		{math.Pi / 4, "pi/4"},
		{3 * math.Pi / 4, "3*pi/4"},
		{2 * math.Pi, "2*pi"},
		{0.5, "0.5"},
		{1.25, "1.25"},
	}
	for _, tt := range tests {
		if got := formatParam(tt.input); got != tt.want {
			t.Errorf("formatParam(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestFormatParamRoundTrip(t *testing.T) {
	values := []float64{math.Pi, math.Pi / 2, -math.Pi / 4, 3 * math.Pi / 4, 0.123, -2.5}
	for _, v := range values {
		got, ok := parseParamExpr(formatParam(v))
		if !ok {
			t.Errorf("formatParam(%v) produced unparseable %q", v, formatParam(v))
			continue
		}
		if math.Abs(got-v) > 1e-9 {
			t.Errorf("round trip of %v gave %v", v, got)
		}
	}
}
