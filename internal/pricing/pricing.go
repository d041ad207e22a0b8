// Package pricing derives a bookable price estimate from a trip's selection
// and draft. ComputePrice is pure: no I/O, no clock, deterministic for a
// given input, so callers can invoke it on every render.
package pricing

import (
	"math"
	"time"

	"github.com/voyagecraft/concierge/backend/internal/domain"
)

// Defaults applied when partner data or draft fields are absent. Amounts are
// raw magnitudes in the trip's declared currency; the engine is currency-naive
// and sums whatever magnitudes it is given.
const (
	DefaultTravelers    = 2
	DefaultNights       = 5
	DefaultFlightBase   = 1850
	DefaultHotelNightly = 420
	BookingFees         = 180
)

// Breakdown carries every intermediate value of a price computation so
// callers can render partial breakdowns, not just the total.
type Breakdown struct {
	Travelers     int     `json:"travelers"`
	Nights        int     `json:"nights"`
	FlightBase    float64 `json:"flightBase"`
	HotelNightly  float64 `json:"hotelNightly"`
	FlightTotal   float64 `json:"flightTotal"`
	HotelTotal    float64 `json:"hotelTotal"`
	ActivityTotal float64 `json:"activityTotal"`
	TransferTotal float64 `json:"transferTotal"`
	Fees          float64 `json:"fees"`
	Total         float64 `json:"total"`
}

// ComputePrice derives a price breakdown from whichever parts of the
// selection and draft are available, falling back to declared defaults for
// everything else. Unpriced activities and transfers count as zero cost.
func ComputePrice(sel domain.Selection, draft domain.TripDraft) Breakdown {
	b := Breakdown{
		Travelers:    DefaultTravelers,
		Nights:       DefaultNights,
		FlightBase:   DefaultFlightBase,
		HotelNightly: DefaultHotelNightly,
		Fees:         BookingFees,
	}

	if draft.Adults > 0 {
		b.Travelers = draft.Adults
	}
	if n, ok := nightsBetween(draft.CheckIn, draft.CheckOut); ok {
		b.Nights = n
	}
	if v, ok := ParseMoney(sel.Flight.Price()); ok {
		b.FlightBase = v
	}
	if v, ok := ParseMoney(sel.Hotel.Price()); ok {
		b.HotelNightly = v
	}
	if v, ok := ParseMoney(sel.Activity.Price()); ok {
		b.ActivityTotal = v
	}
	if v, ok := ParseMoney(sel.Transfer.Price()); ok {
		b.TransferTotal = v
	}

	b.FlightTotal = b.FlightBase * float64(b.Travelers)
	b.HotelTotal = b.HotelNightly * float64(b.Nights)
	b.Total = b.FlightTotal + b.HotelTotal + b.ActivityTotal + b.TransferTotal + b.Fees
	return b
}

// dateLayouts are the formats accepted for draft check-in/check-out values.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// nightsBetween returns the night count between two date strings, clamped to
// a minimum of one night. Reports ok=false when either date fails to parse.
func nightsBetween(checkIn, checkOut string) (int, bool) {
	in, okIn := parseDate(checkIn)
	out, okOut := parseDate(checkOut)
	if !okIn || !okOut {
		return 0, false
	}
	nights := int(math.Round(out.Sub(in).Hours() / 24))
	if nights < 1 {
		nights = 1
	}
	return nights, true
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
