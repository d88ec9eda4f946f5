package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/talgya/pending/internal/application"
	"github.com/talgya/pending/internal/catalog"
	"github.com/talgya/pending/internal/clock"
)

// Callbacks let an outer layer observe the controller without the
// controller knowing anything about presentation. All fields are optional.
type Callbacks struct {
	OnDayAdvance     func(date clock.GameDate)
	OnMonthEnd       func(date clock.GameDate)
	OnEventTriggered func(eventID string)
	OnForeshadow     func(message string)
	OnPressureChange func(pressure int)
}

// Controller is the time-flow controller: the only component allowed to
// advance the clock. It runs the per-day pipeline, schedules automatic
// ticks, and serializes all entry points so ticks never interleave.
type Controller struct {
	Engine *Engine

	cb        Callbacks
	scheduler Scheduler
	cancel    func()

	mu         sync.Mutex
	processing bool

	log *slog.Logger
}

// NewController wires a controller around an engine.
func NewController(eng *Engine, sched Scheduler, cb Callbacks, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{Engine: eng, scheduler: sched, cb: cb, log: log}
}

// Start resumes automatic flow and schedules the first tick.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Engine.Ended || c.Engine.Events.EventShowing() {
		return
	}
	c.Engine.Clock.Resume()
	c.scheduleNextLocked()
}

// Pause stops automatic flow and cancels any pending tick.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pauseLocked()
}

func (c *Controller) pauseLocked() {
	c.Engine.Clock.Pause()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Resume restarts automatic flow. Refused while an event is waiting on the
// player or the game has ended.
func (c *Controller) Resume() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Engine.Ended || c.Engine.Events.EventShowing() {
		return false
	}
	c.Engine.Clock.Resume()
	c.scheduleNextLocked()
	return true
}

// SetSpeed changes the flow multiplier and reschedules the pending tick at
// the new cadence.
func (c *Controller) SetSpeed(speed clock.Speed) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Engine.Clock.SetSpeed(speed)
	if !c.Engine.Clock.Paused() {
		c.scheduleNextLocked()
	}
}

// SetAdvanceMode switches between timer-driven and tap-to-advance play.
// Entering manual mode force-pauses the timer.
func (c *Controller) SetAdvanceMode(mode clock.AdvanceMode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Engine.Clock.AdvanceMode = mode
	if mode == clock.AdvanceManual {
		c.pauseLocked()
	}
}

// ManualAdvance processes one day in tap-to-advance play. A no-op while an
// event is on screen, a tick is in flight, or the game has ended.
func (c *Controller) ManualAdvance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.processing || c.Engine.Ended || c.Engine.Events.EventShowing() {
		return false
	}
	c.processTickLocked()
	return true
}

func (c *Controller) scheduleNextLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.scheduler == nil || c.Engine.Clock.AdvanceMode != clock.AdvanceAuto {
		return
	}
	interval := c.Engine.Clock.EffectiveTickInterval(c.Engine.cfg.TickInterval)
	c.cancel = c.scheduler.Schedule(interval, c.tick)
}

// tick is the timer callback for one automatic day.
func (c *Controller) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.processing || c.Engine.Ended || c.Engine.Clock.Paused() {
		return
	}
	c.processTickLocked()
	if !c.Engine.Clock.Paused() && !c.Engine.Events.EventShowing() && !c.Engine.Ended {
		c.scheduleNextLocked()
	}
}

// processTickLocked runs the per-day pipeline. Callers hold c.mu; the
// processing flag guards against reentry through callbacks.
func (c *Controller) processTickLocked() {
	if c.processing {
		return
	}
	c.processing = true
	defer func() { c.processing = false }()

	eng := c.Engine
	clk := eng.Clock

	if clk.QuietPeriod && eng.cfg.QuietAutoSkip {
		c.skipQuietPeriod()
		return
	}

	closing := clk.Now()
	monthEnded := clk.AdvanceDay()
	if c.cb.OnDayAdvance != nil {
		c.cb.OnDayAdvance(clk.Now())
	}

	if eng.Character.Status.AccruesUnlawfulPresence() {
		eng.Character.AddUnlawfulPresenceDays(1)
	}

	if monthEnded {
		c.processMonthEnd(closing)
	}

	previous := clk.DeadlinePressure
	if clk.UpdateDeadlinePressure() != previous && c.cb.OnPressureChange != nil {
		c.cb.OnPressureChange(clk.DeadlinePressure)
	}

	eng.CheckTraps()
	eng.CheckEndings()
	c.raiseDueDeadlines()

	if eng.Events.ShouldPause(eng.cfg.AutoPauseOnImportant) {
		c.pauseLocked()
		c.surfaceInterruptEvent()
		return
	}

	if eng.Ended || eng.Events.EventShowing() {
		return
	}

	c.maybeTriggerEvent()
}

// raiseDueDeadlines converts deadline events whose date has arrived into
// critical interrupts carrying the event, bypassing the daily chance roll.
func (c *Controller) raiseDueDeadlines() {
	eng := c.Engine
	now := eng.Clock.Now()
	for _, id := range eng.Events.DueScheduled(now) {
		ev := eng.Catalog.Event(id)
		if ev == nil || ev.Timing.Type != catalog.TimingDeadline {
			continue
		}
		eng.Events.RemoveScheduled(id)
		eng.Clock.RemoveDeadline("event:" + id)
		eng.Events.AddInterrupt(Interrupt{
			ID:       uuid.NewString(),
			EventID:  id,
			Message:  ev.Title,
			Priority: PriorityCritical,
			Date:     now,
		})
	}
}

// surfaceInterruptEvent puts the event attached to the pausing interrupt
// on screen and consumes the interrupt. Message-only interrupts stay in
// the list for the player to acknowledge.
func (c *Controller) surfaceInterruptEvent() {
	eng := c.Engine
	if eng.Events.EventShowing() {
		return
	}
	in := eng.Events.NextInterrupt()
	if in == nil || in.EventID == "" {
		return
	}
	ev := eng.Catalog.Event(in.EventID)
	if ev == nil {
		return
	}
	eng.Events.RemoveInterrupt(in.ID)
	eng.ShowEvent(ev)
	if c.cb.OnEventTriggered != nil {
		c.cb.OnEventTriggered(ev.ID)
	}
}

// processMonthEnd runs the month-boundary pipeline exactly once per crossed
// boundary. The date is the last day of the month being closed.
func (c *Controller) processMonthEnd(closing clock.GameDate) {
	eng := c.Engine
	now := eng.Clock.Now()

	summary := eng.Finances.ProcessMonthEnd(closing)
	c.log.Debug("month closed",
		"month", summary.Month,
		"year", summary.Year,
		"balance", summary.EndingBalance)

	decisions := eng.Applications.SweepMonthly(now, eng.decisionPolicy())
	for _, d := range decisions {
		verdict := "denied"
		if d.Approved {
			verdict = "approved"
		}
		eng.Events.AddInterrupt(Interrupt{
			ID:       uuid.NewString(),
			Message:  fmt.Sprintf("Your %s has been %s", d.FormID, verdict),
			Priority: PriorityImportant,
			Date:     now,
		})
	}

	if msg := eng.Foreshadow(); msg != "" && c.cb.OnForeshadow != nil {
		c.cb.OnForeshadow(msg)
	}

	if c.cb.OnMonthEnd != nil {
		c.cb.OnMonthEnd(now)
	}
}

// maybeTriggerEvent rolls the daily event chance and fires at most one
// event. The chance grows with days since the last event and an event is
// guaranteed once the drought reaches the configured ceiling.
func (c *Controller) maybeTriggerEvent() {
	eng := c.Engine
	clk := eng.Clock

	days := clk.DaysSinceLastEvent
	chance := eng.cfg.BaseEventChance +
		float64(days)/float64(eng.cfg.EventGuaranteeDays)*(1-eng.cfg.BaseEventChance)
	if chance > 1 {
		chance = 1
	}

	forced := days >= eng.cfg.EventGuaranteeDays
	if !forced && eng.rand.Float64() >= chance {
		return
	}

	ev := eng.SelectNext()
	if ev == nil && forced {
		ev = eng.TriggerRandom()
	}
	if ev == nil {
		return
	}

	eng.ShowEvent(ev)
	c.pauseLocked()
	if c.cb.OnEventTriggered != nil {
		c.cb.OnEventTriggered(ev.ID)
	}
}

// skipQuietPeriod batch-advances through a quiet stretch, still closing
// every crossed month boundary exactly once, then lands on the first day
// after the stretch.
func (c *Controller) skipQuietPeriod() {
	eng := c.Engine
	clk := eng.Clock
	days := clk.QuietPeriodDays
	clk.EndQuietPeriod()

	for i := 0; i < days; i++ {
		closing := clk.Now()
		monthEnded := clk.AdvanceDay()
		if eng.Character.Status.AccruesUnlawfulPresence() {
			eng.Character.AddUnlawfulPresenceDays(1)
		}
		if monthEnded {
			c.processMonthEnd(closing)
		}
	}
	clk.UpdateDeadlinePressure()
	if c.cb.OnDayAdvance != nil {
		c.cb.OnDayAdvance(clk.Now())
	}
	c.log.Info("quiet period skipped", "days", days, "date", clk.Now().String())
}

func (e *Engine) decisionPolicy() application.DecisionPolicy {
	return application.DecisionPolicy{
		BaseChance:     e.cfg.DecisionBaseChance,
		ChancePerMonth: e.cfg.DecisionChancePerMonth,
		ChanceCap:      e.cfg.DecisionChanceCap,
		ApprovalRate:   e.cfg.BaseApprovalRate,
		RFEPenalty:     e.cfg.RFEPenalty,
	}
}
