package clock

import (
	"time"

	"github.com/talgya/pending/internal/rng"
)

// FlowMode is the running/paused state of automatic time flow.
type FlowMode string

const (
	FlowPaused FlowMode = "paused"
	FlowNormal FlowMode = "normal"
	FlowFast   FlowMode = "fast"
	FlowFaster FlowMode = "faster"
)

// Speed is the time-flow multiplier behind the fast modes.
type Speed int

const (
	Speed1x Speed = 1
	Speed2x Speed = 2
	Speed4x Speed = 4
)

// AdvanceMode selects between timer-driven and tap-to-advance play.
type AdvanceMode string

const (
	AdvanceAuto   AdvanceMode = "auto"
	AdvanceManual AdvanceMode = "manual"
)

// TransitionState is the ceremonial state machine wrapped around a manual
// advance. It exists purely as a hook for the presentation layer; nothing in
// the simulation depends on it.
type TransitionState string

const (
	TransitionIdle          TransitionState = "idle"
	TransitionTeasing       TransitionState = "teasing"
	TransitionTransitioning TransitionState = "transitioning"
	TransitionRevealing     TransitionState = "revealing"
)

var teaserMessages = []string{
	"Something stirs...",
	"The calendar turns...",
	"Time moves forward...",
	"A new month awaits...",
	"The days pass by...",
	"Change is coming...",
}

// Clock is the authoritative in-world time source. It is pure data: advancing
// never fails and performs no I/O. The time-flow controller decides when to
// call it.
type Clock struct {
	CurrentDay   int `json:"current_day"`
	CurrentMonth int `json:"current_month"`
	CurrentYear  int `json:"current_year"`

	StartMonth int `json:"start_month"`
	StartYear  int `json:"start_year"`

	TotalDaysElapsed   int `json:"total_days_elapsed"`
	TotalMonthsElapsed int `json:"total_months_elapsed"`
	DaysSinceLastEvent int `json:"days_since_last_event"`

	Mode  FlowMode `json:"flow_mode"`
	Speed Speed    `json:"flow_speed"`

	AdvanceMode AdvanceMode     `json:"advance_mode"`
	Transition  TransitionState `json:"transition_state"`
	Teaser      string          `json:"teaser_message,omitempty"`

	QuietPeriod      bool      `json:"quiet_period"`
	QuietPeriodDays  int       `json:"quiet_period_days"`
	QuietPeriodStart *GameDate `json:"quiet_period_start,omitempty"`

	DeadlinePressure int        `json:"deadline_pressure"`
	Deadlines        []Deadline `json:"deadlines"`
}

// New returns a paused clock positioned at the first day of the given month.
func New(month, year int) *Clock {
	return &Clock{
		CurrentDay:   1,
		CurrentMonth: month,
		CurrentYear:  year,
		StartMonth:   month,
		StartYear:    year,
		Mode:         FlowPaused,
		Speed:        Speed1x,
		AdvanceMode:  AdvanceManual,
		Transition:   TransitionIdle,
	}
}

// Now returns the current in-world date.
func (c *Clock) Now() GameDate {
	return GameDate{Day: c.CurrentDay, Month: c.CurrentMonth, Year: c.CurrentYear}
}

// AdvanceDay moves time forward by one day, rolling month and year boundaries.
// It reports whether a month boundary was crossed.
func (c *Clock) AdvanceDay() bool {
	c.CurrentDay++
	c.TotalDaysElapsed++
	c.DaysSinceLastEvent++

	if c.CurrentDay <= DaysInMonth(c.CurrentMonth, c.CurrentYear) {
		return false
	}

	c.CurrentDay = 1
	c.CurrentMonth++
	c.TotalMonthsElapsed++
	if c.CurrentMonth > 12 {
		c.CurrentMonth = 1
		c.CurrentYear++
	}
	return true
}

// YearsElapsed returns whole in-world years since the game started.
func (c *Clock) YearsElapsed() int {
	return c.CurrentYear - c.StartYear
}

// ResetDaysSinceEvent zeroes the uneventful-day counter after an event fires.
func (c *Clock) ResetDaysSinceEvent() {
	c.DaysSinceLastEvent = 0
}

// Pause stops automatic flow. A no-op when already paused.
func (c *Clock) Pause() {
	c.Mode = FlowPaused
}

// Resume restores the flow mode implied by the current speed. The controller
// is responsible for refusing a resume while an event is on screen; the clock
// itself does not know about events.
func (c *Clock) Resume() {
	switch c.Speed {
	case Speed2x:
		c.Mode = FlowFast
	case Speed4x:
		c.Mode = FlowFaster
	default:
		c.Mode = FlowNormal
	}
}

// TogglePause flips between paused and the speed-implied running mode.
func (c *Clock) TogglePause() {
	if c.Mode == FlowPaused {
		c.Resume()
		return
	}
	c.Pause()
}

// SetSpeed changes the multiplier, keeping the running/paused state.
func (c *Clock) SetSpeed(speed Speed) {
	c.Speed = speed
	if c.Mode != FlowPaused {
		c.Resume()
	}
}

// Paused reports whether automatic flow is stopped.
func (c *Clock) Paused() bool {
	return c.Mode == FlowPaused
}

// EffectiveTickInterval computes the auto-advance delay: base duration divided
// by speed, stretched when deadline pressure is high so tense stretches play
// slower.
func (c *Clock) EffectiveTickInterval(base time.Duration) time.Duration {
	d := base / time.Duration(c.Speed)
	if c.DeadlinePressure > 50 {
		d = d * 3 / 2
	}
	if c.DeadlinePressure > 80 {
		d *= 2
	}
	return d
}

// StartQuietPeriod flags the next span of days as skippable in bulk.
func (c *Clock) StartQuietPeriod(days int) {
	start := c.Now()
	c.QuietPeriod = true
	c.QuietPeriodDays = days
	c.QuietPeriodStart = &start
}

// EndQuietPeriod clears the quiet-period flag.
func (c *Clock) EndQuietPeriod() {
	c.QuietPeriod = false
	c.QuietPeriodDays = 0
	c.QuietPeriodStart = nil
}

// StartTransition begins the ceremonial advance sequence and picks a teaser
// message for the UI.
func (c *Clock) StartTransition(src rng.Source) {
	c.Transition = TransitionTeasing
	c.Teaser = teaserMessages[src.Intn(len(teaserMessages))]
}

// CompleteTransition finishes the ceremony and re-enables advancing.
func (c *Clock) CompleteTransition() {
	c.Transition = TransitionIdle
	c.Teaser = ""
}

// CancelTransition aborts the ceremony, e.g. when an interrupt lands mid-tease.
func (c *Clock) CancelTransition() {
	c.Transition = TransitionIdle
	c.Teaser = ""
}
