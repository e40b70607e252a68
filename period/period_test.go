package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodString(t *testing.T) {
	testData := map[string]struct {
		p        Period
		expected string
	}{
		"yearly": {
			p:        Annual(2020),
			expected: "2020Y",
		},
		"half-yearly": {
			p:        Half(2020, 2),
			expected: "2020H2",
		},
		"quarterly": {
			p:        Quarter(2020, 3),
			expected: "2020Q3",
		},
		"monthly": {
			p:        Month(2020, 7),
			expected: "2020M07",
		},
		"daily": {
			p:        Day(2020, time.January, 2),
			expected: "2020-01-02",
		},
		"business": {
			p:        Workday(2020, time.January, 2),
			expected: "2020-01-02B",
		},
		"business rolls weekend forward": {
			p:        Workday(2020, time.January, 4), // a Saturday
			expected: "2020-01-06B",
		},
		"weekly": {
			p:        Week(2020, 5),
			expected: "2020W05",
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, td.p.String())
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	testData := []string{
		"2020Y",
		"2020H1",
		"1997Q4",
		"2020M12",
		"2020W01",
		"2020-02-29",
		"2020-01-06B",
	}

	for _, s := range testData {
		t.Run(s, func(t *testing.T) {
			p, err := Parse(s)
			require.NoError(t, err)
			assert.Equal(t, s, p.String())
		})
	}
}

func TestParseErrors(t *testing.T) {
	testData := map[string]struct {
		input string
		err   error
	}{
		"garbage": {
			input: "banana",
			err:   ErrUnknownPeriodFormat,
		},
		"empty": {
			input: "",
			err:   ErrUnknownPeriodFormat,
		},
		"month out of range": {
			input: "2020M13",
			err:   ErrPeriodOutOfRange,
		},
		"week out of range": {
			input: "2020W54",
			err:   ErrPeriodOutOfRange,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(td.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, td.err)
		})
	}
}

func TestPeriodArithmetic(t *testing.T) {
	p := Quarter(2020, 1)
	assert.Equal(t, Quarter(2020, 4), p.Add(3))
	assert.Equal(t, Quarter(2019, 4), p.Add(-1))
	assert.Equal(t, 4, Quarter(2021, 1).Sub(p))
	assert.True(t, p.Before(Quarter(2020, 2)))
	assert.True(t, Quarter(2020, 2).After(p))
	assert.True(t, p.Equal(Quarter(2020, 1)))
}

func TestPeriodTimeRoundTrip(t *testing.T) {
	testData := map[string]struct {
		p Period
	}{
		"yearly":      {p: Annual(1993)},
		"half-yearly": {p: Half(2001, 2)},
		"quarterly":   {p: Quarter(1984, 3)},
		"monthly":     {p: Month(2020, 11)},
		"weekly":      {p: Week(2021, 17)},
		"daily":       {p: Day(1999, time.December, 31)},
		"business":    {p: Workday(2020, time.March, 13)},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.p, FromTime(td.p.Freq(), td.p.Time()))
		})
	}
}

func TestWorkdaySerialSkipsWeekends(t *testing.T) {
	fri := Workday(2020, time.January, 3)
	mon := Workday(2020, time.January, 6)
	assert.Equal(t, 1, mon.Sub(fri))
	assert.Equal(t, mon, fri.Add(1))
	assert.Equal(t, time.Monday, fri.Add(1).Time().Weekday())
}

func TestMonthlyYearBoundary(t *testing.T) {
	dec := Month(2019, 12)
	jan := Month(2020, 1)
	assert.Equal(t, jan, dec.Add(1))
	assert.Equal(t, 2019, dec.Year())
	assert.Equal(t, 2020, jan.Year())
}

func TestUnboundedSentinel(t *testing.T) {
	var p Period
	assert.True(t, p.IsZero())
	assert.False(t, Annual(2020).IsZero())
	assert.Equal(t, None, p.Freq())
}

func TestMarshalText(t *testing.T) {
	p := Quarter(2020, 2)
	b, err := p.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2020Q2", string(b))

	var q Period
	require.NoError(t, q.UnmarshalText(b))
	assert.Equal(t, p, q)

	var zero Period
	require.NoError(t, zero.UnmarshalText(nil))
	assert.True(t, zero.IsZero())
}

func TestFirstOfYear(t *testing.T) {
	testData := map[string]struct {
		freq     Frequency
		expected Period
	}{
		"yearly":    {freq: Yearly, expected: Annual(2000)},
		"quarterly": {freq: Quarterly, expected: Quarter(2000, 1)},
		"monthly":   {freq: Monthly, expected: Month(2000, 1)},
		"daily":     {freq: Daily, expected: Day(2000, time.January, 1)},
		"business":  {freq: Business, expected: Workday(2000, time.January, 3)}, // Jan 1 2000 is a Saturday
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, FirstOfYear(td.freq, 2000))
		})
	}
}
