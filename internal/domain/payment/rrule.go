package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
)

// ParseRRule converts an RFC 5545 RRULE string into rule parameters. Clients
// migrating calendar data can submit an rrule field instead of spelling out
// the rule fields; only the daily/weekly/monthly/yearly subset is accepted.
func ParseRRule(ruleStr string) (RuleParams, error) {
	ruleStr = strings.TrimPrefix(strings.TrimSpace(ruleStr), "RRULE:")

	opt, err := rrule.StrToROption(ruleStr)
	if err != nil {
		return RuleParams{}, fmt.Errorf("failed to parse RRULE: %w", err)
	}

	var params RuleParams

	switch opt.Freq {
	case rrule.DAILY:
		params.Type = RecurrenceDaily
	case rrule.WEEKLY:
		params.Type = RecurrenceWeekly
	case rrule.MONTHLY:
		params.Type = RecurrenceMonthly
	case rrule.YEARLY:
		params.Type = RecurrenceYearly
	default:
		return RuleParams{}, fmt.Errorf("%w: unsupported RRULE frequency", ErrInvalidRecurrence)
	}

	params.Interval = opt.Interval
	if params.Interval < 1 {
		params.Interval = 1
	}

	if len(opt.Bymonthday) > 0 {
		day := opt.Bymonthday[0]
		if day < 1 || day > 31 {
			return RuleParams{}, fmt.Errorf("invalid BYMONTHDAY value: %d", day)
		}
		params.DayOfMonth = &day
	}

	for _, wd := range opt.Byweekday {
		params.DaysOfWeek = append(params.DaysOfWeek, rruleWeekday(wd))
	}

	if opt.Count > 0 {
		count := opt.Count
		params.MaxOccurrences = &count
	}

	if !opt.Until.IsZero() {
		until := opt.Until
		params.EndDate = &until
	}

	return params, nil
}

// FormatRRule renders a rule back into an RRULE string, the inverse of
// ParseRRule for the supported subset. Lets clients carry rules over to
// calendar tooling.
func FormatRRule(r *RecurringRule) string {
	parts := []string{fmt.Sprintf("FREQ=%s", r.Type)}

	if r.Interval > 1 {
		parts = append(parts, fmt.Sprintf("INTERVAL=%d", r.Interval))
	}
	if r.DayOfMonth != nil {
		parts = append(parts, fmt.Sprintf("BYMONTHDAY=%d", *r.DayOfMonth))
	}
	if len(r.DaysOfWeek) > 0 {
		names := make([]string, len(r.DaysOfWeek))
		for i, d := range r.DaysOfWeek {
			names[i] = weekdayNames[d]
		}
		parts = append(parts, fmt.Sprintf("BYDAY=%s", strings.Join(names, ",")))
	}
	if r.MaxOccurrences != nil {
		parts = append(parts, fmt.Sprintf("COUNT=%d", *r.MaxOccurrences))
	}
	if r.EndDate != nil {
		parts = append(parts, fmt.Sprintf("UNTIL=%s", r.EndDate.UTC().Format("20060102T150405Z")))
	}

	return strings.Join(parts, ";")
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
	time.Sunday:    "SU",
}

func rruleWeekday(wd rrule.Weekday) time.Weekday {
	switch wd.Day() {
	case rrule.MO.Day():
		return time.Monday
	case rrule.TU.Day():
		return time.Tuesday
	case rrule.WE.Day():
		return time.Wednesday
	case rrule.TH.Day():
		return time.Thursday
	case rrule.FR.Day():
		return time.Friday
	case rrule.SA.Day():
		return time.Saturday
	default:
		return time.Sunday
	}
}
