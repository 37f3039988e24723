package pricing

import (
	"errors"
	"math"
)

// RoleRates carries a service package's per-role prices. A nil rate means the
// role is not offered under that package.
type RoleRates struct {
	Bride  *float64
	Maid   *float64
	Mother *float64
	Other  *float64
}

// AttendeeCounts is the number of attendees requested per role.
type AttendeeCounts struct {
	Brides  int
	Maids   int
	Mothers int
	Others  int
}

// Quote is the computed price breakdown for a booking.
type Quote struct {
	Subtotal  float64 `json:"subtotal"`
	Transport float64 `json:"transport_cost"`
	Total     float64 `json:"total_amount"`
	Deposit   float64 `json:"deposit_amount"`
}

var (
	ErrNegativeCount     = errors.New("attendee count cannot be negative")
	ErrNegativeTransport = errors.New("transport fee cannot be negative")
	ErrInvalidFraction   = errors.New("deposit fraction must be between 0 and 1")
)

// Calculator computes booking quotes. The deposit fraction is injected policy
// (default 0.5), not a constant baked into the arithmetic.
type Calculator struct {
	depositFraction float64
}

func New(depositFraction float64) (*Calculator, error) {
	if depositFraction < 0 || depositFraction > 1 {
		return nil, ErrInvalidFraction
	}
	return &Calculator{depositFraction: depositFraction}, nil
}

// Compute builds the quote: subtotal from per-role rates and counts, plus the
// transport fee, with the deposit rounded half-up to 2 decimal places.
// Pure function: deterministic, no I/O.
func (c *Calculator) Compute(rates RoleRates, counts AttendeeCounts, transportFee float64) (Quote, error) {
	if counts.Brides < 0 || counts.Maids < 0 || counts.Mothers < 0 || counts.Others < 0 {
		return Quote{}, ErrNegativeCount
	}
	if transportFee < 0 {
		return Quote{}, ErrNegativeTransport
	}

	subtotal := rateOrZero(rates.Bride)*float64(counts.Brides) +
		rateOrZero(rates.Maid)*float64(counts.Maids) +
		rateOrZero(rates.Mother)*float64(counts.Mothers) +
		rateOrZero(rates.Other)*float64(counts.Others)

	total := subtotal + transportFee

	return Quote{
		Subtotal:  subtotal,
		Transport: transportFee,
		Total:     total,
		Deposit:   RoundHalfUp(total*c.depositFraction, 2),
	}, nil
}

func rateOrZero(rate *float64) float64 {
	if rate == nil {
		return 0
	}
	return *rate
}

// RoundHalfUp rounds v to the given number of decimal places, with ties going
// toward positive infinity (0.125 -> 0.13 at 2 places). Half-up is the
// documented rounding mode for all money amounts in this service; amounts are
// never negative, so the tie direction below zero does not matter here.
func RoundHalfUp(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Floor(v*factor+0.5) / factor
}
