package fx

import (
	"testing"

	"github.com/Iqbalshah786/inventory/internal/core/types"
)

func TestToAED_Rounding(t *testing.T) {
	c := MustNew("3.675")

	tests := []struct {
		name string
		usd  string
		want string
	}{
		{"whole units", "20", "73.5"},
		{"half fils rounds up", "5", "18.38"}, // 5 * 3.675 = 18.375
		{"one dollar", "1", "3.68"},           // 3.675 rounds half-up
		{"zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.ToAED(types.MustMoney(tt.usd))
			if !got.Equal(types.MustMoney(tt.want)) {
				t.Errorf("ToAED(%s) = %s, want %s", tt.usd, got, tt.want)
			}
		})
	}
}

func TestToUSD_Rounding(t *testing.T) {
	c := MustNew("3.6725")

	got := c.ToUSD(types.MustMoney("100"))
	want := types.MustMoney("27.23") // 100 / 3.6725 = 27.2294...
	if !got.Equal(want) {
		t.Errorf("ToUSD(100) = %s, want %s", got, want)
	}
}

// Round-tripping applies two 2-decimal roundings, so the result may differ
// from the input by a bounded amount but must stay within one cent scaled by
// the rate.
func TestRoundTrip_BoundedError(t *testing.T) {
	c := MustNew("3.6725")
	bound := types.MustMoney("0.01")

	for _, s := range []string{"1.00", "99.99", "0.01"} {
		x := types.MustMoney(s)
		back := c.ToUSD(c.ToAED(x))
		diff := back.Sub(x).Abs()
		if diff.GreaterThan(bound) {
			t.Errorf("round trip of %s drifted by %s (> %s)", s, diff, bound)
		}
	}
}

func TestNew_RejectsNonPositiveRate(t *testing.T) {
	for _, s := range []string{"0", "-1.5"} {
		if _, err := New(types.MustMoney(s)); err == nil {
			t.Errorf("New(%s) accepted a non-positive rate", s)
		}
	}
}
