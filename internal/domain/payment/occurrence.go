package payment

import (
	"sort"
	"strings"
	"time"
)

// GenerateOccurrences expands a payment into its planned occurrence dates
// within [start, end], boundary-inclusive. It is pure and deterministic: no
// clock reads, no repository access, no internal state.
//
// Non-recurring payments emit their due date if it falls inside the window.
// Recurring payments without rules fall back to a single implied rule derived
// from the frequency label. Each active rule walks forward independently;
// rules on the same payment are unioned and date-sorted without collapsing
// duplicate dates.
func GenerateOccurrences(p *ScheduledPayment, rules []*RecurringRule, start, end time.Time) []PlannedOccurrence {
	start = dateOnly(start)
	end = dateOnly(end)
	if end.Before(start) {
		return nil
	}

	if !p.IsRecurring {
		due := dateOnly(p.DueDate)
		if inWindow(due, start, end) {
			return []PlannedOccurrence{{Payment: p, Date: due}}
		}
		return nil
	}

	active := make([]*RecurringRule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive {
			active = append(active, r)
		}
	}

	// The frequency-label fallback only applies when no rules exist at all;
	// a payment whose rules are all inactive produces nothing.
	if len(rules) == 0 {
		legacy := legacyRule(p)
		if legacy == nil {
			return nil
		}
		active = append(active, legacy)
	}

	var out []PlannedOccurrence
	for _, r := range active {
		out = append(out, walkRule(p, r, start, end)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// legacyRule maps a frequency label onto an implied single rule anchored at
// the due date. Unknown labels produce no occurrences.
func legacyRule(p *ScheduledPayment) *RecurringRule {
	t := strings.ToUpper(strings.TrimSpace(p.Frequency))
	if !IsValidRecurrenceType(t) {
		return nil
	}
	return &RecurringRule{
		ScheduledPaymentID: p.ID,
		Type:               t,
		Interval:           1,
		IsActive:           true,
	}
}

// walkRule expands a single rule into dates within [start, end].
func walkRule(p *ScheduledPayment, r *RecurringRule, start, end time.Time) []PlannedOccurrence {
	interval := r.Interval
	if interval < 1 {
		// Malformed data must not stall the walk.
		interval = 1
	}

	limit := end
	if r.EndDate != nil && dateOnly(*r.EndDate).Before(limit) {
		limit = dateOnly(*r.EndDate)
	}

	budget := -1 // unlimited
	if r.MaxOccurrences != nil {
		budget = *r.MaxOccurrences - r.CurrentOccurrences
		if budget <= 0 {
			return nil
		}
	}

	anchor := dateOnly(p.DueDate)
	var out []PlannedOccurrence
	emit := func(d time.Time) bool {
		if d.After(limit) {
			return false
		}
		if d.Before(start) || d.Before(anchor) {
			return true
		}
		out = append(out, PlannedOccurrence{Payment: p, Date: d})
		if budget > 0 && len(out) >= budget {
			return false
		}
		return true
	}

	switch r.Type {
	case RecurrenceDaily:
		for d := anchor; ; d = d.AddDate(0, 0, interval) {
			if !emit(d) {
				break
			}
		}

	case RecurrenceWeekly:
		if len(r.DaysOfWeek) > 0 {
			walkWeekdays(anchor, r.DaysOfWeek, interval, emit)
		} else {
			for d := anchor; ; d = d.AddDate(0, 0, 7*interval) {
				if !emit(d) {
					break
				}
			}
		}

	case RecurrenceMonthly:
		day := anchor.Day()
		if r.DayOfMonth != nil {
			day = *r.DayOfMonth
		}
		for k := 0; ; k++ {
			d := clampedDate(anchor.Year(), anchor.Month()+time.Month(k*interval), day, anchor.Location())
			if !emit(d) {
				break
			}
		}

	case RecurrenceYearly:
		day := anchor.Day()
		if r.DayOfMonth != nil {
			day = *r.DayOfMonth
		}
		for k := 0; ; k++ {
			d := clampedDate(anchor.Year()+k*interval, anchor.Month(), day, anchor.Location())
			if !emit(d) {
				break
			}
		}
	}

	return out
}

// walkWeekdays emits one occurrence per matching weekday per interval-week
// block, starting from the week containing the anchor.
func walkWeekdays(anchor time.Time, days []time.Weekday, interval int, emit func(time.Time) bool) {
	match := make(map[time.Weekday]struct{}, len(days))
	for _, d := range days {
		match[d] = struct{}{}
	}

	weekStart := startOfWeek(anchor)
	for block := 0; ; block++ {
		blockStart := weekStart.AddDate(0, 0, 7*interval*block)
		for i := 0; i < 7; i++ {
			d := blockStart.AddDate(0, 0, i)
			if _, ok := match[d.Weekday()]; !ok {
				continue
			}
			if !emit(d) {
				return
			}
		}
	}
}

// clampedDate builds a date clamping the day to the last valid day of a short
// month (day 31 in February becomes the 28th, or 29th in a leap year).
func clampedDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	// Normalize month overflow first so the day count is taken from the
	// intended month.
	base := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	if last := daysInMonth(base.Year(), base.Month(), loc); day > last {
		day = last
	}
	return time.Date(base.Year(), base.Month(), day, 0, 0, 0, 0, loc)
}

func daysInMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// startOfWeek returns the Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	t = dateOnly(t)
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return t.AddDate(0, 0, -offset)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func inWindow(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}
