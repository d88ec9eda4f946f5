package engine

import (
	"github.com/google/uuid"

	"github.com/talgya/pending/internal/catalog"
)

// CheckTraps evaluates every policy trap against live state. A trap fires
// when all of its triggers hold and none of its avoidance conditions do,
// and each trap fires at most once per playthrough.
func (e *Engine) CheckTraps() []*catalog.PolicyTrap {
	var fired []*catalog.PolicyTrap
	for i := range e.Catalog.Traps {
		trap := &e.Catalog.Traps[i]
		if e.Events.TriggeredTraps[trap.ID] {
			continue
		}
		if !e.AllConditions(trap.Triggers) {
			continue
		}
		if len(trap.AvoidanceConditions) > 0 && e.AllConditions(trap.AvoidanceConditions) {
			continue
		}
		e.applyTrap(trap)
		fired = append(fired, trap)
	}
	return fired
}

// applyTrap marks a trap triggered, applies its consequences, and raises
// an interrupt scaled to its severity.
func (e *Engine) applyTrap(trap *catalog.PolicyTrap) {
	if e.Events.TriggeredTraps[trap.ID] {
		return
	}
	e.Events.TriggeredTraps[trap.ID] = true
	e.log.Warn("policy trap triggered", "trap", trap.ID, "severity", string(trap.Severity))

	for _, c := range trap.Consequences {
		e.ProcessOutcome(c)
	}

	e.Events.AddInterrupt(Interrupt{
		ID:       uuid.NewString(),
		TrapID:   trap.ID,
		Message:  trap.Name,
		Priority: trapPriority(trap.Severity),
		Date:     e.Clock.Now(),
	})
}

func trapPriority(s catalog.TrapSeverity) int {
	switch s {
	case catalog.TrapTerminal, catalog.TrapCatastrophic:
		return PriorityCritical
	case catalog.TrapSevere:
		return PriorityImportant
	case catalog.TrapModerate:
		return PriorityNormal
	default:
		return PriorityAmbient
	}
}
