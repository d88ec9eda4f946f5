package engine

import (
	"log/slog"

	"github.com/talgya/pending/internal/application"
	"github.com/talgya/pending/internal/catalog"
	"github.com/talgya/pending/internal/character"
	"github.com/talgya/pending/internal/clock"
	"github.com/talgya/pending/internal/config"
	"github.com/talgya/pending/internal/finance"
	"github.com/talgya/pending/internal/relationship"
	"github.com/talgya/pending/internal/rng"
)

// Engine evaluates eligibility, selects events, and applies outcomes
// against the live game state.
type Engine struct {
	Catalog       *catalog.Catalog
	Clock         *clock.Clock
	Character     *character.Store
	Finances      *finance.Ledger
	Relationships *relationship.Graph
	Applications  *application.Tracker
	Events        *EventState

	Ended    bool   `json:"ended"`
	EndingID string `json:"ending_id,omitempty"`

	cfg  config.Config
	rand rng.Source
	log  *slog.Logger
}

// New wires an engine around the shared state stores.
func New(cat *catalog.Catalog, clk *clock.Clock, ch *character.Store,
	fin *finance.Ledger, rel *relationship.Graph, apps *application.Tracker,
	cfg config.Config, src rng.Source, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		Catalog:       cat,
		Clock:         clk,
		Character:     ch,
		Finances:      fin,
		Relationships: rel,
		Applications:  apps,
		Events:        NewEventState(),
		cfg:           cfg,
		rand:          src,
		log:           log,
	}
}

// SetRand swaps the randomness source, used when restoring a save.
func (e *Engine) SetRand(src rng.Source) {
	e.rand = src
}

// Bootstrap registers calendar-scheduled and deadline events from the
// catalog. Called once at the start of a fresh playthrough; restored saves
// carry this state already.
func (e *Engine) Bootstrap() {
	for i := range e.Catalog.Events {
		ev := &e.Catalog.Events[i]
		switch ev.Timing.Type {
		case catalog.TimingScheduled:
			if ev.Timing.Month >= 1 && ev.Timing.Year > 0 {
				e.Events.Schedule(ev.ID, clock.GameDate{Day: 1, Month: ev.Timing.Month, Year: ev.Timing.Year})
			}
		case catalog.TimingDeadline:
			if ev.Timing.DeadlineDate != nil {
				e.Events.Schedule(ev.ID, *ev.Timing.DeadlineDate)
				e.Clock.AddDeadline(clock.Deadline{
					ID:       "event:" + ev.ID,
					Label:    ev.Title,
					Date:     *ev.Timing.DeadlineDate,
					Severity: clock.SeverityMajor,
				})
			}
		}
	}
}

// EvaluateCondition resolves one predicate against live state. Unknown
// condition types or operators evaluate to false so malformed content can
// never halt the simulation.
func (e *Engine) EvaluateCondition(c catalog.EventCondition) bool {
	switch c.Type {
	case catalog.CondStatus:
		return compareString(string(e.Character.Status.Type), c.Operator, c.Value)

	case catalog.CondFlag:
		val, ok := e.Character.Flag(c.Target)
		switch c.Operator {
		case catalog.OpExists:
			return ok
		case catalog.OpNotExists:
			return !ok
		}
		if !ok {
			return false
		}
		return compareAny(val, c.Operator, c.Value)

	case catalog.CondFinance:
		var num float64
		switch c.Target {
		case "balance", "bankBalance":
			num = float64(e.Finances.Balance)
		case "debt":
			num = float64(e.Finances.Debt)
		case "monthlyIncome":
			num = float64(e.Finances.MonthlyIncome)
		case "monthlyNet":
			num = float64(e.Finances.MonthlyNet())
		default:
			return false
		}
		return compareNumber(num, c.Operator, c.Value)

	case catalog.CondRelationship:
		r := e.Relationships.Get(c.Target)
		if r == nil {
			return c.Operator == catalog.OpNotExists
		}
		if c.Operator == catalog.OpExists {
			return true
		}
		return compareNumber(float64(r.Level), c.Operator, c.Value)

	case catalog.CondStat:
		v, ok := e.Character.Stat(c.Target)
		if !ok {
			return false
		}
		return compareNumber(float64(v), c.Operator, c.Value)

	case catalog.CondDate:
		var num float64
		switch c.Target {
		case "month":
			num = float64(e.Clock.CurrentMonth)
		case "year":
			num = float64(e.Clock.CurrentYear)
		case "monthsElapsed":
			num = float64(e.Clock.TotalMonthsElapsed)
		case "yearsElapsed":
			num = float64(e.Clock.YearsElapsed())
		default:
			return false
		}
		return compareNumber(num, c.Operator, c.Value)

	case catalog.CondApplication:
		app := e.Applications.ActiveForForm(c.Target)
		switch c.Operator {
		case catalog.OpExists:
			return app != nil
		case catalog.OpNotExists:
			return app == nil
		}
		if app == nil {
			return false
		}
		return compareString(string(app.Status), c.Operator, c.Value)

	case catalog.CondCharacter:
		if e.Character.Profile == nil {
			return false
		}
		switch c.Target {
		case "age":
			return compareNumber(float64(e.Character.Profile.Age), c.Operator, c.Value)
		case "countryOfOrigin":
			return compareString(e.Character.Profile.CountryOfOrigin, c.Operator, c.Value)
		}
		return false
	}
	return false
}

// AllConditions reports whether every predicate holds.
func (e *Engine) AllConditions(conds []catalog.EventCondition) bool {
	for _, c := range conds {
		if !e.EvaluateCondition(c) {
			return false
		}
	}
	return true
}

// IsEligible applies the full eligibility gauntlet to one event.
func (e *Engine) IsEligible(ev *catalog.GameEvent) bool {
	if e.Events.HasCompleted(ev.ID) && !ev.IsRepeatable {
		return false
	}

	if len(ev.CharacterIDs) > 0 {
		found := false
		for _, id := range ev.CharacterIDs {
			if id == e.Character.ProfileID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	status := string(e.Character.Status.Type)
	if len(ev.RequiredStatuses) > 0 {
		found := false
		for _, s := range ev.RequiredStatuses {
			if s == status {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, s := range ev.ExcludedStatuses {
		if s == status {
			return false
		}
	}

	if ev.Timing.Type == catalog.TimingRandom {
		elapsed := e.Clock.TotalMonthsElapsed
		if elapsed < ev.Timing.EarliestMonth {
			return false
		}
		if ev.Timing.LatestMonth > 0 && elapsed > ev.Timing.LatestMonth {
			return false
		}
	}

	return e.AllConditions(ev.Conditions)
}

// EligibleEvents returns every random-timing event that could fire now.
func (e *Engine) EligibleEvents() []*catalog.GameEvent {
	var out []*catalog.GameEvent
	for _, ev := range e.Catalog.Events {
		if ev.Timing.Type != catalog.TimingRandom {
			continue
		}
		ev := ev
		if e.IsEligible(&ev) {
			out = append(out, e.Catalog.Event(ev.ID))
		}
	}
	return out
}

// weightedPick selects one event from the pool by weight. A pool whose
// weights sum to zero falls back to a uniform pick.
func (e *Engine) weightedPick(pool []*catalog.GameEvent) *catalog.GameEvent {
	if len(pool) == 0 {
		return nil
	}
	total := 0.0
	for _, ev := range pool {
		total += ev.Weight
	}
	if total <= 0 {
		return pool[e.rand.Intn(len(pool))]
	}
	draw := e.rand.Float64() * total
	for _, ev := range pool {
		draw -= ev.Weight
		if draw <= 0 {
			return ev
		}
	}
	return pool[len(pool)-1]
}

// SelectNext picks the event to fire now: due scheduled events win, then
// the priority queue, then a weighted random draw over the eligible pool.
// Returns nil when nothing should fire.
func (e *Engine) SelectNext() *catalog.GameEvent {
	now := e.Clock.Now()
	for _, id := range e.Events.DueScheduled(now) {
		ev := e.Catalog.Event(id)
		if ev == nil {
			e.log.Warn("scheduled event missing from catalog", "event", id)
			e.Events.RemoveScheduled(id)
			continue
		}
		if e.Events.HasCompleted(id) && !ev.IsRepeatable {
			e.Events.RemoveScheduled(id)
			continue
		}
		if !e.IsEligible(ev) {
			// Not eligible yet; stays scheduled and is rechecked next tick.
			continue
		}
		e.Events.RemoveScheduled(id)
		return ev
	}
	for {
		id := e.Events.Dequeue()
		if id == "" {
			break
		}
		if ev := e.Catalog.Event(id); ev != nil && e.IsEligible(ev) {
			return ev
		}
	}
	return e.weightedPick(e.EligibleEvents())
}

// TriggerRandom draws from the eligible random pool only, bypassing the
// queue. Used by the guaranteed-event path.
func (e *Engine) TriggerRandom() *catalog.GameEvent {
	return e.weightedPick(e.EligibleEvents())
}

// ShowEvent puts an event on screen and resets the uneventful-day counter.
func (e *Engine) ShowEvent(ev *catalog.GameEvent) {
	e.Events.CurrentEventID = ev.ID
	e.Events.OutcomeText = ""
	e.Clock.ResetDaysSinceEvent()
	e.log.Info("event triggered", "event", ev.ID, "title", ev.Title)
}

// ChoiceAvailable reports whether a choice can be picked: its requirements
// hold and any money cost is affordable.
func (e *Engine) ChoiceAvailable(choice *catalog.EventChoice) bool {
	if !e.AllConditions(choice.Requirements) {
		return false
	}
	for _, cost := range choice.Costs {
		if cost.Type == catalog.CostMoney && !e.Finances.CanAfford(cost.Amount) {
			return false
		}
	}
	return true
}

// SelectChoice resolves the current event with the given choice: charges
// costs, applies outcomes in declared order, records completion, and queues
// any follow-up event. Returns false when no event is showing, the choice
// id is unknown, or the choice is unavailable.
func (e *Engine) SelectChoice(choiceID string) bool {
	ev := e.Catalog.Event(e.Events.CurrentEventID)
	if ev == nil {
		return false
	}
	var choice *catalog.EventChoice
	for i := range ev.Choices {
		if ev.Choices[i].ID == choiceID {
			choice = &ev.Choices[i]
			break
		}
	}
	if choice == nil || !e.ChoiceAvailable(choice) {
		return false
	}

	now := e.Clock.Now()
	for _, cost := range choice.Costs {
		switch cost.Type {
		case catalog.CostMoney:
			desc := cost.Description
			if desc == "" {
				desc = "Choice cost"
			}
			e.Finances.AddExpense(cost.Amount, desc, "other", now)
		case catalog.CostStress:
			e.Character.ModifyStat(character.StatStress, cost.Amount)
		case catalog.CostStat:
			e.Character.ModifyStat(cost.Target, -cost.Amount)
		}
	}

	for _, outcome := range choice.Outcomes {
		e.ProcessOutcome(outcome)
	}

	e.Events.Complete(ev.ID, choice.ID, now, choice.OutcomeText)
	e.Events.CurrentEventID = ""
	e.Events.OutcomeText = choice.OutcomeText

	if choice.NextEventID != "" {
		e.Events.Enqueue(choice.NextEventID, 10)
	}

	// Completing an event arms any events triggered by it.
	for i := range e.Catalog.Events {
		follow := &e.Catalog.Events[i]
		if follow.Timing.Type == catalog.TimingTriggered && follow.Timing.TriggerID == ev.ID {
			e.Events.Enqueue(follow.ID, PriorityNormal)
		}
	}

	e.advanceChain(ev)
	e.log.Info("choice selected", "event", ev.ID, "choice", choice.ID)
	return true
}

// DismissOutcome clears the outcome text after the player reads it.
func (e *Engine) DismissOutcome() {
	e.Events.OutcomeText = ""
}

func (e *Engine) advanceChain(ev *catalog.GameEvent) {
	if ev.ChainID == "" {
		return
	}
	chain, ok := e.Events.Chains[ev.ChainID]
	if !ok {
		return
	}
	if chain.CurrentPosition < len(chain.EventIDs) {
		chain.CurrentPosition++
	}
}

// CheckEndings looks for a satisfied ending and ends the game on the first
// match. An ending fires when its conditions all hold; a trigger year is an
// additional years-elapsed floor.
func (e *Engine) CheckEndings() {
	if e.Ended {
		return
	}
	for i := range e.Catalog.Endings {
		end := &e.Catalog.Endings[i]
		if len(end.TriggerConditions) == 0 && end.TriggerYear == 0 {
			continue
		}
		if end.TriggerYear > 0 && e.Clock.YearsElapsed() < end.TriggerYear {
			continue
		}
		if !e.AllConditions(end.TriggerConditions) {
			continue
		}
		e.EndGame(end.ID)
		return
	}
}

// EndGame marks the playthrough over.
func (e *Engine) EndGame(endingID string) {
	if e.Ended {
		return
	}
	e.Ended = true
	e.EndingID = endingID
	e.Clock.Pause()
	e.log.Info("game ended", "ending", endingID)
}
