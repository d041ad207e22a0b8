package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagecraft/concierge/backend/internal/domain"
	"github.com/voyagecraft/concierge/backend/internal/pricing"
)

// ---- ComputePrice ----------------------------------------------------------

// TestComputePrice_AllDefaults verifies the breakdown when neither the
// selection nor the draft carries any data: two travelers, five nights, the
// declared default fares, and the flat booking fee.
func TestComputePrice_AllDefaults(t *testing.T) {
	b := pricing.ComputePrice(domain.Selection{}, domain.TripDraft{})

	assert.Equal(t, 2, b.Travelers)
	assert.Equal(t, 5, b.Nights)
	assert.Equal(t, 1850.0, b.FlightBase)
	assert.Equal(t, 420.0, b.HotelNightly)
	assert.Equal(t, 3700.0, b.FlightTotal)
	assert.Equal(t, 2100.0, b.HotelTotal)
	assert.Equal(t, 0.0, b.ActivityTotal)
	assert.Equal(t, 0.0, b.TransferTotal)
	assert.Equal(t, 180.0, b.Fees)
	assert.Equal(t, 5980.0, b.Total)
}

// TestComputePrice_PartialData verifies the breakdown when the selection
// prices flights and hotel and the draft supplies travelers and dates.
func TestComputePrice_PartialData(t *testing.T) {
	sel := domain.Selection{
		Flight: domain.SelectionItem{"price": "USD 500"},
		Hotel:  domain.SelectionItem{"price": "200"},
	}
	draft := domain.TripDraft{
		Adults:   3,
		CheckIn:  "2026-01-01",
		CheckOut: "2026-01-04",
	}

	b := pricing.ComputePrice(sel, draft)

	assert.Equal(t, 3, b.Travelers)
	assert.Equal(t, 3, b.Nights)
	assert.Equal(t, 1500.0, b.FlightTotal)
	assert.Equal(t, 600.0, b.HotelTotal)
	assert.Equal(t, 0.0, b.ActivityTotal)
	assert.Equal(t, 0.0, b.TransferTotal)
	assert.Equal(t, 180.0, b.Fees)
	assert.Equal(t, 2280.0, b.Total)
}

// TestComputePrice_ActivityAndTransferPrices verifies that priced activity
// and transfer selections are added as flat amounts, not multiplied.
func TestComputePrice_ActivityAndTransferPrices(t *testing.T) {
	sel := domain.Selection{
		Activity: domain.SelectionItem{"price": 250.0},
		Transfer: domain.SelectionItem{"price": "EUR 90.50"},
	}

	b := pricing.ComputePrice(sel, domain.TripDraft{})

	assert.Equal(t, 250.0, b.ActivityTotal)
	assert.Equal(t, 90.5, b.TransferTotal)
	assert.Equal(t, 3700.0+2100.0+250.0+90.5+180.0, b.Total)
}

// TestComputePrice_SameDayDates verifies the one-night minimum: a check-out
// on or before the check-in still prices a single night.
func TestComputePrice_SameDayDates(t *testing.T) {
	draft := domain.TripDraft{CheckIn: "2026-03-10", CheckOut: "2026-03-10"}

	b := pricing.ComputePrice(domain.Selection{}, draft)

	assert.Equal(t, 1, b.Nights)
}

// TestComputePrice_UnparseableDates verifies that an invalid date on either
// end falls back to the default night count rather than erroring.
func TestComputePrice_UnparseableDates(t *testing.T) {
	draft := domain.TripDraft{CheckIn: "sometime in spring", CheckOut: "2026-03-10"}

	b := pricing.ComputePrice(domain.Selection{}, draft)

	assert.Equal(t, 5, b.Nights)
}

// TestComputePrice_NegativeAdults verifies that a non-positive traveler count
// is ignored in favour of the default.
func TestComputePrice_NegativeAdults(t *testing.T) {
	b := pricing.ComputePrice(domain.Selection{}, domain.TripDraft{Adults: -4})

	assert.Equal(t, 2, b.Travelers)
}

// TestComputePrice_Deterministic verifies purity: the same inputs produce
// the same breakdown on repeated calls.
func TestComputePrice_Deterministic(t *testing.T) {
	sel := domain.Selection{Flight: domain.SelectionItem{"price": "1200"}}
	draft := domain.TripDraft{Adults: 2, CheckIn: "2026-05-01", CheckOut: "2026-05-08"}

	first := pricing.ComputePrice(sel, draft)
	second := pricing.ComputePrice(sel, draft)

	require.Equal(t, first, second)
}

// ---- ParseMoney ------------------------------------------------------------

func TestParseMoney_DisplayString(t *testing.T) {
	v, ok := pricing.ParseMoney("USD 1,850.50")

	require.True(t, ok)
	assert.Equal(t, 1850.5, v)
}

func TestParseMoney_PlainNumericString(t *testing.T) {
	v, ok := pricing.ParseMoney("1850")

	require.True(t, ok)
	assert.Equal(t, 1850.0, v)
}

func TestParseMoney_RawNumber(t *testing.T) {
	v, ok := pricing.ParseMoney(499.999)

	require.True(t, ok)
	// Rounded to cents at parse time.
	assert.Equal(t, 500.0, v)
}

func TestParseMoney_CurrencySymbol(t *testing.T) {
	v, ok := pricing.ParseMoney("$2,430")

	require.True(t, ok)
	assert.Equal(t, 2430.0, v)
}

func TestParseMoney_Unparseable(t *testing.T) {
	for _, input := range []any{nil, "", "on request", true, []string{"100"}} {
		_, ok := pricing.ParseMoney(input)
		assert.False(t, ok, "input %v should not parse", input)
	}
}
