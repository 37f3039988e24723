package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rate(v float64) *float64 { return &v }

func TestCalculator_Compute(t *testing.T) {
	calc, err := New(0.5)
	require.NoError(t, err)

	tests := []struct {
		name         string
		rates        RoleRates
		counts       AttendeeCounts
		transportFee float64
		want         Quote
		wantErr      error
	}{
		{
			name:         "bridal package with maids and transport",
			rates:        RoleRates{Bride: rate(3000), Maid: rate(1500)},
			counts:       AttendeeCounts{Brides: 1, Maids: 2},
			transportFee: 500,
			want:         Quote{Subtotal: 6000, Transport: 500, Total: 6500, Deposit: 3250.00},
		},
		{
			name:   "absent rates contribute zero",
			rates:  RoleRates{Bride: rate(2500)},
			counts: AttendeeCounts{Brides: 1},
			want:   Quote{Subtotal: 2500, Transport: 0, Total: 2500, Deposit: 1250.00},
		},
		{
			name:         "deposit rounds half up to two decimals",
			rates:        RoleRates{Other: rate(33.33)},
			counts:       AttendeeCounts{Others: 3},
			transportFee: 0.06,
			// total = 100.05, deposit = 50.025 -> 50.03
			want: Quote{Subtotal: 99.99, Transport: 0.06, Total: 100.05, Deposit: 50.03},
		},
		{
			name:   "all counts zero gives zero quote",
			rates:  RoleRates{Bride: rate(3000)},
			counts: AttendeeCounts{},
			want:   Quote{},
		},
		{
			name:    "negative count rejected",
			rates:   RoleRates{Bride: rate(3000)},
			counts:  AttendeeCounts{Maids: -1},
			wantErr: ErrNegativeCount,
		},
		{
			name:         "negative transport rejected",
			rates:        RoleRates{Bride: rate(3000)},
			counts:       AttendeeCounts{Brides: 1},
			transportFee: -10,
			wantErr:      ErrNegativeTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Compute(tt.rates, tt.counts, tt.transportFee)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want.Subtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tt.want.Transport, got.Transport, 1e-9)
			assert.InDelta(t, tt.want.Total, got.Total, 1e-9)
			assert.InDelta(t, tt.want.Deposit, got.Deposit, 1e-9)
		})
	}
}

func TestCalculator_ComputeIsDeterministic(t *testing.T) {
	calc, err := New(0.5)
	require.NoError(t, err)

	rates := RoleRates{Bride: rate(3500), Maid: rate(1200), Mother: rate(800)}
	counts := AttendeeCounts{Brides: 1, Maids: 4, Mothers: 2}

	first, err := calc.Compute(rates, counts, 750)
	require.NoError(t, err)
	second, err := calc.Compute(rates, counts, 750)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculator_DepositInvariant(t *testing.T) {
	calc, err := New(0.5)
	require.NoError(t, err)

	cases := []struct {
		rates        RoleRates
		counts       AttendeeCounts
		transportFee float64
	}{
		{RoleRates{Bride: rate(3000)}, AttendeeCounts{Brides: 1}, 0},
		{RoleRates{Bride: rate(2999.99), Maid: rate(1499.5)}, AttendeeCounts{Brides: 1, Maids: 3}, 333.33},
		{RoleRates{Other: rate(0.01)}, AttendeeCounts{Others: 7}, 0.01},
	}

	for _, tc := range cases {
		quote, err := calc.Compute(tc.rates, tc.counts, tc.transportFee)
		require.NoError(t, err)
		assert.InDelta(t, RoundHalfUp(quote.Total*0.5, 2), quote.Deposit, 1e-9)
	}
}

func TestNew_RejectsInvalidFraction(t *testing.T) {
	_, err := New(-0.1)
	assert.ErrorIs(t, err, ErrInvalidFraction)

	_, err = New(1.5)
	assert.ErrorIs(t, err, ErrInvalidFraction)
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{50.025, 50.03},
		{50.024, 50.02},
		{0.125, 0.13},
		{100, 100},
		{0, 0},
		// Ties go toward positive infinity, not away from zero.
		{-0.125, -0.12},
		{-50.025, -50.02},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundHalfUp(tt.in, 2), 1e-9)
	}
}
