package period

// Frequency is the discrete granularity a period or range is defined on.
type Frequency int

const (
	None Frequency = iota
	Yearly
	HalfYearly
	Quarterly
	Monthly
	Weekly
	Daily
	Business
)

func (f Frequency) String() string {
	switch f {
	case Yearly:
		return "yearly"
	case HalfYearly:
		return "half-yearly"
	case Quarterly:
		return "quarterly"
	case Monthly:
		return "monthly"
	case Weekly:
		return "weekly"
	case Daily:
		return "daily"
	case Business:
		return "business"
	}
	return "none"
}

// PeriodsPerYear returns the number of regular periods in a calendar year. Weekly,
// daily, and business frequencies report their nominal counts.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case Yearly:
		return 1
	case HalfYearly:
		return 2
	case Quarterly:
		return 4
	case Monthly:
		return 12
	case Weekly:
		return 52
	case Daily:
		return 365
	case Business:
		return 262
	}
	return 0
}
