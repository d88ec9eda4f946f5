package engine

// Foreshadow returns a vague hint about what is coming, or "" when nothing
// warrants one. The hint deliberately never names the event; it only sets
// a mood.
func (e *Engine) Foreshadow() string {
	now := e.Clock.Now()

	for _, se := range e.Events.Scheduled {
		months := monthsAhead(now.Year, now.Month, se.Date.Year, se.Date.Month)
		if months >= 1 && months <= 3 {
			return "Something is about to happen..."
		}
	}

	if e.Clock.DeadlinePressure >= 70 {
		return "A deadline approaches..."
	}

	for _, ev := range e.EligibleEvents() {
		if ev.HasTag("important") && e.rand.Float64() < 0.3 {
			return "This month feels significant..."
		}
	}
	return ""
}

func monthsAhead(fromYear, fromMonth, toYear, toMonth int) int {
	return (toYear-fromYear)*12 + (toMonth - fromMonth)
}
