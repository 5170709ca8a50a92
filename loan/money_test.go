package loan_test

import (
	"testing"

	"github.com/warp/loan-engine/loan"
)

func TestMoney_RoundCents_HalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"2.675", "2.68"},
		{"-1.005", "-1.01"},
		{"10327.9715", "10327.97"},
	}
	for _, c := range cases {
		if got := amount(c.in).RoundCents().String(); got != c.want {
			t.Errorf("round %s: expected %s, got %s", c.in, c.want, got)
		}
	}
}

func TestMoney_MinMax(t *testing.T) {
	a, b := amount("100"), amount("250")

	if got := a.Min(b); !got.Equal(a) {
		t.Errorf("expected min %s, got %s", a, got)
	}
	if got := a.Max(b); !got.Equal(b) {
		t.Errorf("expected max %s, got %s", b, got)
	}
	if got := a.Min(a); !got.Equal(a) {
		t.Errorf("min of equal amounts: expected %s, got %s", a, got)
	}
}

func TestMoney_String_AlwaysTwoDecimals(t *testing.T) {
	if got := amount("5").String(); got != "5.00" {
		t.Errorf("expected 5.00, got %s", got)
	}
	if got := loan.ZeroMoney().String(); got != "0.00" {
		t.Errorf("expected 0.00, got %s", got)
	}
}

func TestParseMoney_RejectsGarbage(t *testing.T) {
	if _, err := loan.ParseMoney("12,000"); err == nil {
		t.Error("expected a parse error for a grouped number")
	}
	if _, err := loan.ParseMoney("abc"); err == nil {
		t.Error("expected a parse error for a non number")
	}
	m, err := loan.ParseMoney("-42.50")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.IsNegative() {
		t.Errorf("expected a negative amount, got %s", m)
	}
}
