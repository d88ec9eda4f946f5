package clock

// DeadlineSeverity weights how hard a deadline leans on the pacing.
type DeadlineSeverity string

const (
	SeverityCritical DeadlineSeverity = "critical"
	SeverityMajor    DeadlineSeverity = "major"
	SeverityMinor    DeadlineSeverity = "minor"
)

// Deadline is a tracked future date that feeds deadline pressure. Deadlines
// never cancel anything on their own; they only raise pressure and slow the
// effective pace.
type Deadline struct {
	ID       string           `json:"id"`
	Label    string           `json:"label"`
	Date     GameDate         `json:"date"`
	Severity DeadlineSeverity `json:"severity"`
}

// AddDeadline registers a deadline for pressure tracking.
func (c *Clock) AddDeadline(d Deadline) {
	c.Deadlines = append(c.Deadlines, d)
}

// RemoveDeadline drops a tracked deadline by id. Unknown ids are ignored.
func (c *Clock) RemoveDeadline(id string) {
	kept := c.Deadlines[:0]
	for _, d := range c.Deadlines {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	c.Deadlines = kept
}

// DaysUntil returns the signed day count from the current date to a deadline.
func (c *Clock) DaysUntil(d Deadline) int {
	days := 0
	cur := c.Now()
	if !cur.Before(d.Date) {
		// Past due (or today): count backwards.
		for d.Date.Before(cur) {
			days--
			d.Date = nextDay(d.Date)
		}
		return days
	}
	for cur.Before(d.Date) {
		days++
		cur = nextDay(cur)
	}
	return days
}

func nextDay(d GameDate) GameDate {
	d.Day++
	if d.Day > DaysInMonth(d.Month, d.Year) {
		d.Day = 1
		d.Month++
		if d.Month > 12 {
			d.Month = 1
			d.Year++
		}
	}
	return d
}

// UpdateDeadlinePressure recomputes the derived pressure scalar [0,100] from
// the nearest tracked deadline, bucketed by remaining days and weighted by
// severity. Past-due deadlines count as maximum pressure.
func (c *Clock) UpdateDeadlinePressure() int {
	if len(c.Deadlines) == 0 {
		c.DeadlinePressure = 0
		return 0
	}

	maxPressure := 0.0
	for _, d := range c.Deadlines {
		days := c.DaysUntil(d)

		var pressure float64
		switch {
		case days <= 0:
			pressure = 100
		case days <= 7:
			pressure = 90
		case days <= 30:
			pressure = 70
		case days <= 90:
			pressure = 40
		default:
			pressure = 10
		}

		switch d.Severity {
		case SeverityCritical:
			// Full weight.
		case SeverityMajor:
			pressure *= 0.8
		default:
			pressure *= 0.5
		}

		if pressure > maxPressure {
			maxPressure = pressure
		}
	}

	if maxPressure > 100 {
		maxPressure = 100
	}
	c.DeadlinePressure = int(maxPressure)
	return c.DeadlinePressure
}
