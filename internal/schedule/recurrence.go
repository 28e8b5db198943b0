package schedule

import (
	"time"

	"github.com/medtransit/transport-backend-go/pkg/apperr"
)

// Cadence of a recurrence rule.
type Cadence string

const (
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
	CadenceMonthly  Cadence = "monthly"
)

// Rule is the date-generating part of a recurring trip template.
//
// Weekly rules occur on every listed weekday of every week. Biweekly rules
// add a week-parity filter relative to the week containing Start. Monthly
// rules occur once per month on Start's day-of-month, clamped to shorter
// months; Weekdays is ignored for monthly rules.
//
// Exactly one of End (inclusive date bound) or Occurrences (total count
// cap) must be set.
type Rule struct {
	Cadence     Cadence
	Weekdays    []int // 1=Monday..7=Sunday
	Start       time.Time
	End         time.Time // zero when bounded by Occurrences
	Occurrences int       // 0 when bounded by End
}

// Validate checks the rule's structural invariants.
func (r Rule) Validate() error {
	switch r.Cadence {
	case CadenceWeekly, CadenceBiweekly, CadenceMonthly:
	default:
		return apperr.Validationf("unknown recurrence pattern %q", r.Cadence)
	}
	if r.Start.IsZero() {
		return apperr.Validationf("start_date is required")
	}
	if r.End.IsZero() == (r.Occurrences == 0) {
		return apperr.Validationf("exactly one of end_date or occurrences must be set")
	}
	if r.Occurrences < 0 {
		return apperr.Validationf("occurrences must be positive")
	}
	if !r.End.IsZero() && r.End.Before(r.Start) {
		return apperr.Validationf("end_date precedes start_date")
	}
	if r.Cadence != CadenceMonthly && len(r.Weekdays) == 0 {
		return apperr.Validationf("weekdays must not be empty for %s recurrence", r.Cadence)
	}
	for _, w := range r.Weekdays {
		if w < 1 || w > 7 {
			return apperr.Validationf("weekday %d out of range 1-7", w)
		}
	}
	return nil
}

// DatesUntil enumerates the rule's occurrence dates up to horizon
// (inclusive), skipping dates for which exists reports true.
//
// Skipped dates still consume the Occurrences budget: the cap counts
// produced-or-existing instances along the rule's date sequence, so
// re-running enumeration after some instances were materialized never
// extends the series. exists may be nil.
func (r Rule) DatesUntil(horizon time.Time, exists func(time.Time) bool) []time.Time {
	limit := horizon
	if !r.End.IsZero() && r.End.Before(limit) {
		limit = r.End
	}

	emit := func(out []time.Time, d time.Time) []time.Time {
		if exists != nil && exists(d) {
			return out
		}
		return append(out, d)
	}

	var out []time.Time
	count := 0

	if r.Cadence == CadenceMonthly {
		for m := 0; ; m++ {
			first := time.Date(r.Start.Year(), r.Start.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, m, 0)
			d := first.AddDate(0, 0, clampDayOfMonth(first, r.Start.Day())-1)
			if d.After(limit) {
				return out
			}
			if r.Occurrences > 0 && count >= r.Occurrences {
				return out
			}
			out = emit(out, d)
			count++
		}
	}

	wanted := make(map[int]bool, len(r.Weekdays))
	for _, w := range r.Weekdays {
		wanted[w] = true
	}
	anchor := startOfWeek(r.Start)

	for d := r.Start; !d.After(limit); d = d.AddDate(0, 0, 1) {
		if !wanted[WeekdayNumber(d)] {
			continue
		}
		if r.Cadence == CadenceBiweekly {
			weeks := int(startOfWeek(d).Sub(anchor).Hours()) / (24 * 7)
			if weeks%2 != 0 {
				continue
			}
		}
		if r.Occurrences > 0 && count >= r.Occurrences {
			return out
		}
		out = emit(out, d)
		count++
	}
	return out
}
