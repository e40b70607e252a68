// Package period models discrete calendar periods (years, quarters, months,
// weeks, days, business days) as integer serial numbers on a frequency, along
// with closed ranges of them. The zero Period is the unbounded sentinel used
// by open ranges.
package period

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/rickar/cal/v2"
)

var (
	ErrUnknownPeriodFormat = errors.New("unknown period format")
	ErrPeriodOutOfRange    = errors.New("period part out of range")
)

// BusinessCalendar determines which days count as business periods. The default
// observes a Monday through Friday workweek with no holidays. Callers modeling a
// specific market can add holidays before constructing business periods.
var BusinessCalendar = cal.NewBusinessCalendar()

var (
	dayEpoch   = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	weekEpoch  = time.Date(1970, 1, 5, 0, 0, 0, 0, time.UTC) // a Monday
	secsPerDay = int64(24 * 60 * 60)
)

// Period is a single discrete calendar period on one frequency. The zero value
// has frequency None and acts as the "unbounded" marker in a Range.
type Period struct {
	freq Frequency
	n    int
}

// Annual returns the yearly period covering the given calendar year.
func Annual(year int) Period {
	return Period{freq: Yearly, n: year}
}

// Half returns the half-yearly period for half h (1 or 2) of the given year.
func Half(year, h int) Period {
	return Period{freq: HalfYearly, n: 2*year + h - 1}
}

// Quarter returns the quarterly period for quarter q (1..4) of the given year.
func Quarter(year, q int) Period {
	return Period{freq: Quarterly, n: 4*year + q - 1}
}

// Month returns the monthly period for month m (1..12) of the given year.
func Month(year, m int) Period {
	return Period{freq: Monthly, n: 12*year + m - 1}
}

// Week returns the weekly period containing the given ISO week of a year.
func Week(year, wk int) Period {
	// Jan 4 is always inside ISO week 1.
	t := time.Date(year, 1, 4, 0, 0, 0, 0, time.UTC).AddDate(0, 0, (wk-1)*7)
	return FromTime(Weekly, t)
}

// Day returns the daily period for a calendar date.
func Day(year int, month time.Month, day int) Period {
	return FromTime(Daily, time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Workday returns the business-day period for a calendar date. Dates falling on
// a non-workday per the BusinessCalendar roll forward to the next workday.
func Workday(year int, month time.Month, day int) Period {
	return FromTime(Business, time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime converts an instant to the period containing it at the requested
// frequency.
func FromTime(f Frequency, t time.Time) Period {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch f {
	case Yearly:
		return Annual(t.Year())
	case HalfYearly:
		return Half(t.Year(), (int(t.Month())-1)/6+1)
	case Quarterly:
		return Quarter(t.Year(), (int(t.Month())-1)/3+1)
	case Monthly:
		return Month(t.Year(), int(t.Month()))
	case Weekly:
		return Period{freq: Weekly, n: floorDiv(civilDays(t)-civilDays(weekEpoch), 7)}
	case Daily:
		return Period{freq: Daily, n: civilDays(t)}
	case Business:
		for !BusinessCalendar.IsWorkday(t) {
			t = t.AddDate(0, 0, 1)
		}
		return Period{freq: Business, n: workdaySerial(t)}
	}
	return Period{}
}

// FirstOfYear returns the first period of a calendar year at the given
// frequency.
func FirstOfYear(f Frequency, year int) Period {
	return FromTime(f, time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC))
}

func (p Period) Freq() Frequency { return p.freq }

func (p Period) Serial() int { return p.n }

// IsZero reports whether the period is the unbounded sentinel.
func (p Period) IsZero() bool { return p.freq == None }

func (p Period) Add(n int) Period {
	return Period{freq: p.freq, n: p.n + n}
}

// Sub returns the number of periods from q to p. Both periods must share a
// frequency; the caller is expected to have checked that already.
func (p Period) Sub(q Period) int { return p.n - q.n }

func (p Period) Before(q Period) bool { return p.n < q.n }
func (p Period) After(q Period) bool  { return p.n > q.n }
func (p Period) Equal(q Period) bool  { return p.freq == q.freq && p.n == q.n }

// Year returns the calendar year the period starts in.
func (p Period) Year() int { return p.Time().Year() }

// Time returns the instant the period starts at, in UTC.
func (p Period) Time() time.Time {
	switch p.freq {
	case Yearly:
		return time.Date(p.n, 1, 1, 0, 0, 0, 0, time.UTC)
	case HalfYearly:
		return time.Date(floorDiv(p.n, 2), time.Month(mod(p.n, 2)*6+1), 1, 0, 0, 0, 0, time.UTC)
	case Quarterly:
		return time.Date(floorDiv(p.n, 4), time.Month(mod(p.n, 4)*3+1), 1, 0, 0, 0, 0, time.UTC)
	case Monthly:
		return time.Date(floorDiv(p.n, 12), time.Month(mod(p.n, 12)+1), 1, 0, 0, 0, 0, time.UTC)
	case Weekly:
		return weekEpoch.AddDate(0, 0, p.n*7)
	case Daily:
		return dayEpoch.AddDate(0, 0, p.n)
	case Business:
		return workdayTime(p.n)
	}
	return time.Time{}
}

func (p Period) String() string {
	switch p.freq {
	case Yearly:
		return fmt.Sprintf("%dY", p.n)
	case HalfYearly:
		return fmt.Sprintf("%dH%d", floorDiv(p.n, 2), mod(p.n, 2)+1)
	case Quarterly:
		return fmt.Sprintf("%dQ%d", floorDiv(p.n, 4), mod(p.n, 4)+1)
	case Monthly:
		return fmt.Sprintf("%dM%02d", floorDiv(p.n, 12), mod(p.n, 12)+1)
	case Weekly:
		year, wk := p.Time().ISOWeek()
		return fmt.Sprintf("%dW%02d", year, wk)
	case Daily:
		return p.Time().Format("2006-01-02")
	case Business:
		return p.Time().Format("2006-01-02") + "B"
	}
	return ""
}

var periodPattern = regexp.MustCompile(
	`^(\d{4})(?:(Y)|H([12])|Q([1-4])|M(\d{2})|W(\d{2})|-(\d{2})-(\d{2})(B?))$`,
)

// Parse converts the string form produced by String back into a Period.
func Parse(s string) (Period, error) {
	m := periodPattern.FindStringSubmatch(s)
	if m == nil {
		return Period{}, fmt.Errorf("%q, %w", s, ErrUnknownPeriodFormat)
	}
	year := atoi(m[1])
	switch {
	case m[2] != "":
		return Annual(year), nil
	case m[3] != "":
		return Half(year, atoi(m[3])), nil
	case m[4] != "":
		return Quarter(year, atoi(m[4])), nil
	case m[5] != "":
		mo := atoi(m[5])
		if mo < 1 || mo > 12 {
			return Period{}, fmt.Errorf("month %d in %q, %w", mo, s, ErrPeriodOutOfRange)
		}
		return Month(year, mo), nil
	case m[6] != "":
		wk := atoi(m[6])
		if wk < 1 || wk > 53 {
			return Period{}, fmt.Errorf("week %d in %q, %w", wk, s, ErrPeriodOutOfRange)
		}
		return Week(year, wk), nil
	default:
		mo, day := atoi(m[7]), atoi(m[8])
		if mo < 1 || mo > 12 || day < 1 || day > 31 {
			return Period{}, fmt.Errorf("date in %q, %w", s, ErrPeriodOutOfRange)
		}
		if m[9] == "B" {
			return Workday(year, time.Month(mo), day), nil
		}
		return Day(year, time.Month(mo), day), nil
	}
}

func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Period) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*p = Period{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func civilDays(t time.Time) int {
	return int(floorDiv64(t.Unix(), secsPerDay))
}

func workdaySerial(t time.Time) int {
	if !t.Before(dayEpoch) {
		return BusinessCalendar.WorkdaysInRange(dayEpoch, t) - 1
	}
	return -(BusinessCalendar.WorkdaysInRange(t, dayEpoch) - 1)
}

func workdayTime(n int) time.Time {
	// rough jump by whole weeks, then step to the exact serial
	t := dayEpoch.AddDate(0, 0, n/5*7)
	for !BusinessCalendar.IsWorkday(t) {
		t = t.AddDate(0, 0, 1)
	}
	cur := workdaySerial(t)
	for cur < n {
		t = nextWorkday(t)
		cur++
	}
	for cur > n {
		t = prevWorkday(t)
		cur--
	}
	return t
}

func nextWorkday(t time.Time) time.Time {
	t = t.AddDate(0, 0, 1)
	for !BusinessCalendar.IsWorkday(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

func prevWorkday(t time.Time) time.Time {
	t = t.AddDate(0, 0, -1)
	for !BusinessCalendar.IsWorkday(t) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorDiv64(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
