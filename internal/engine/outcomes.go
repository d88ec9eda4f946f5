package engine

import (
	"github.com/google/uuid"

	"github.com/talgya/pending/internal/application"
	"github.com/talgya/pending/internal/catalog"
	"github.com/talgya/pending/internal/character"
	"github.com/talgya/pending/internal/clock"
	"github.com/talgya/pending/internal/finance"
)

// ProcessOutcome applies one typed effect. An outcome with a probability in
// (0,1) first rolls for whether it lands at all. Outcomes targeting
// entities that do not exist are logged and skipped; content mistakes must
// not halt play.
func (e *Engine) ProcessOutcome(o catalog.EventOutcome) {
	if o.Probability > 0 && o.Probability < 1 {
		if e.rand.Float64() > o.Probability {
			return
		}
	}

	now := e.Clock.Now()

	switch o.Type {
	case catalog.OutcomeStatusChange:
		target := character.StatusType(o.Target)
		reason, _ := o.Value.(string)
		if reason == "" {
			reason = "Event outcome"
		}
		e.Character.ChangeStatusTo(target, reason, now, e.Events.CurrentEventID)

	case catalog.OutcomeFlagSet:
		e.Character.SetFlag(o.Target, o.Value)

	case catalog.OutcomeFlagIncrement:
		amount, ok := toFloat(o.Value)
		if !ok {
			amount = 1
		}
		e.Character.IncrementFlag(o.Target, amount)

	case catalog.OutcomeFinanceAdd:
		amount, ok := toFloat(o.Value)
		if !ok {
			return
		}
		desc := o.Target
		if desc == "" {
			desc = "Event income"
		}
		e.Finances.AddIncome(int(amount), desc, now)

	case catalog.OutcomeFinanceSubtract:
		amount, ok := toFloat(o.Value)
		if !ok {
			return
		}
		desc := o.Target
		if desc == "" {
			desc = "Event expense"
		}
		e.Finances.AddExpense(int(amount), desc, "other", now)

	case catalog.OutcomeRelationshipChange:
		delta, ok := toFloat(o.Value)
		if !ok {
			return
		}
		e.Relationships.Modify(o.Target, int(delta), "Event outcome", now)

	case catalog.OutcomeStatChange:
		delta, ok := toFloat(o.Value)
		if !ok {
			return
		}
		e.Character.ModifyStat(o.Target, int(delta))

	case catalog.OutcomeTriggerEvent:
		if ev := e.Catalog.Event(o.Target); ev != nil {
			e.Events.Enqueue(ev.ID, PriorityNormal)
		} else {
			e.log.Warn("outcome references unknown event", "event", o.Target)
		}

	case catalog.OutcomeQueueEvent:
		if e.Catalog.Event(o.Target) == nil {
			e.log.Warn("outcome references unknown event", "event", o.Target)
			return
		}
		if o.DelayMonths > 0 {
			e.Events.Schedule(o.Target, now.AddMonths(o.DelayMonths))
		} else {
			e.Events.Enqueue(o.Target, PriorityNormal)
		}

	case catalog.OutcomeFileApplication:
		app := e.Applications.File(o.Target, now)
		if app == nil {
			return
		}
		fee := application.TotalFee(o.Target)
		if fee > 0 {
			e.Finances.AddTransaction(finance.Transaction{
				Date:        now,
				Type:        finance.TxImmigrationFee,
				Amount:      -fee,
				Description: app.FormName + " filing",
				Category:    "immigration",
			})
			e.Finances.TotalImmigrationSpending += fee
		}
		e.Clock.AddDeadline(clock.Deadline{
			ID:       uuid.NewString(),
			Label:    app.FormID + " decision expected",
			Date:     app.EstimatedDecision,
			Severity: clock.SeverityMinor,
		})

	case catalog.OutcomeApplicationDecision:
		app := e.Applications.ActiveForForm(o.Target)
		if app == nil {
			return
		}
		approved := false
		if b, ok := o.Value.(bool); ok {
			approved = b
		} else if s, ok := o.Value.(string); ok {
			approved = s == "approved"
		}
		e.Applications.Decide(app.ID, approved, now)

	case catalog.OutcomeTriggerTrap:
		if trap := e.Catalog.Trap(o.Target); trap != nil {
			e.applyTrap(trap)
		} else {
			e.log.Warn("outcome references unknown trap", "trap", o.Target)
		}

	case catalog.OutcomeAddDocument:
		name, _ := o.Value.(string)
		if name == "" {
			name = o.Target
		}
		e.Character.AddDocument(character.Document{
			ID:      o.Target,
			Name:    name,
			IsValid: true,
		})

	case catalog.OutcomeRemoveDocument:
		e.Character.RemoveDocument(o.Target)

	case catalog.OutcomeEndGame:
		e.EndGame(o.Target)

	default:
		e.log.Warn("unknown outcome type", "type", string(o.Type))
	}
}
