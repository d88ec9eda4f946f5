// Package engine drives the narrative: it decides which events are
// eligible, picks the next one, applies choice outcomes, evaluates policy
// traps, and runs the time-flow controller that ties the clock to all of it.
package engine

import (
	"sort"

	"github.com/talgya/pending/internal/catalog"
	"github.com/talgya/pending/internal/clock"
)

// Interrupt priorities. Higher preempts lower; critical and important
// interrupts pause automatic time flow.
const (
	PriorityCritical  = 100
	PriorityImportant = 75
	PriorityNormal    = 50
	PriorityAmbient   = 25
)

// QueuedEvent is an event waiting in the priority queue.
type QueuedEvent struct {
	EventID  string `json:"event_id"`
	Priority int    `json:"priority"`
}

// Interrupt is an out-of-band demand for the player's attention.
type Interrupt struct {
	ID       string         `json:"id"`
	EventID  string         `json:"event_id,omitempty"`
	TrapID   string         `json:"trap_id,omitempty"`
	Message  string         `json:"message"`
	Priority int            `json:"priority"`
	Date     clock.GameDate `json:"date"`
}

// ScheduledEvent fires on or after a specific in-world date.
type ScheduledEvent struct {
	EventID string         `json:"event_id"`
	Date    clock.GameDate `json:"date"`
}

// CompletedEvent records one resolved event for the history log.
type CompletedEvent struct {
	EventID     string         `json:"event_id"`
	ChoiceID    string         `json:"choice_id"`
	Date        clock.GameDate `json:"date"`
	OutcomeText string         `json:"outcome_text,omitempty"`
}

// EventState is the mutable event bookkeeping: what is on screen, what is
// queued, what already happened.
type EventState struct {
	CurrentEventID string `json:"current_event_id,omitempty"`
	OutcomeText    string `json:"outcome_text,omitempty"`

	Queue      []QueuedEvent    `json:"queue"`
	Interrupts []Interrupt      `json:"interrupts"`
	Scheduled  []ScheduledEvent `json:"scheduled"`

	History   []CompletedEvent `json:"history"`
	Completed map[string]bool  `json:"completed"`

	TriggeredTraps map[string]bool `json:"triggered_traps"`

	Chains map[string]*catalog.EventChain `json:"chains,omitempty"`
}

// NewEventState returns empty event bookkeeping.
func NewEventState() *EventState {
	return &EventState{
		Completed:      make(map[string]bool),
		TriggeredTraps: make(map[string]bool),
		Chains:         make(map[string]*catalog.EventChain),
	}
}

// Enqueue adds an event to the priority queue, keeping it sorted by
// priority, highest first. Duplicate event ids are ignored.
func (s *EventState) Enqueue(eventID string, priority int) {
	for _, q := range s.Queue {
		if q.EventID == eventID {
			return
		}
	}
	s.Queue = append(s.Queue, QueuedEvent{EventID: eventID, Priority: priority})
	sort.SliceStable(s.Queue, func(i, j int) bool {
		return s.Queue[i].Priority > s.Queue[j].Priority
	})
}

// Dequeue pops the highest-priority queued event id, or "".
func (s *EventState) Dequeue() string {
	if len(s.Queue) == 0 {
		return ""
	}
	id := s.Queue[0].EventID
	s.Queue = s.Queue[1:]
	return id
}

// HasCompleted reports whether an event already resolved this playthrough.
func (s *EventState) HasCompleted(eventID string) bool {
	return s.Completed[eventID]
}

// Complete records an event as resolved and appends it to the history.
func (s *EventState) Complete(eventID, choiceID string, date clock.GameDate, outcomeText string) {
	s.Completed[eventID] = true
	s.History = append(s.History, CompletedEvent{
		EventID:     eventID,
		ChoiceID:    choiceID,
		Date:        date,
		OutcomeText: outcomeText,
	})
}

// Schedule registers an event to fire on a future date.
func (s *EventState) Schedule(eventID string, date clock.GameDate) {
	s.Scheduled = append(s.Scheduled, ScheduledEvent{EventID: eventID, Date: date})
}

// DueScheduled returns every scheduled event whose date has arrived. The
// schedule itself is untouched: only the entry that actually fires is
// removed, so several events due on the same date each get their turn.
func (s *EventState) DueScheduled(now clock.GameDate) []string {
	var due []string
	for _, se := range s.Scheduled {
		if !now.Before(se.Date) {
			due = append(due, se.EventID)
		}
	}
	return due
}

// RemoveScheduled drops the first scheduled entry for an event id.
func (s *EventState) RemoveScheduled(eventID string) {
	for i, se := range s.Scheduled {
		if se.EventID == eventID {
			s.Scheduled = append(s.Scheduled[:i], s.Scheduled[i+1:]...)
			return
		}
	}
}

// AddInterrupt inserts an interrupt, keeping the list sorted by priority.
func (s *EventState) AddInterrupt(in Interrupt) {
	s.Interrupts = append(s.Interrupts, in)
	sort.SliceStable(s.Interrupts, func(i, j int) bool {
		return s.Interrupts[i].Priority > s.Interrupts[j].Priority
	})
}

// NextInterrupt returns the highest-priority pending interrupt, or nil.
func (s *EventState) NextInterrupt() *Interrupt {
	if len(s.Interrupts) == 0 {
		return nil
	}
	return &s.Interrupts[0]
}

// RemoveInterrupt drops an interrupt by id.
func (s *EventState) RemoveInterrupt(id string) {
	kept := s.Interrupts[:0]
	for _, in := range s.Interrupts {
		if in.ID != id {
			kept = append(kept, in)
		}
	}
	s.Interrupts = kept
}

// ShouldPause reports whether the pending interrupts demand stopping
// automatic time flow. Critical interrupts always pause; important ones
// pause when auto-pause is configured on.
func (s *EventState) ShouldPause(autoPauseImportant bool) bool {
	in := s.NextInterrupt()
	if in == nil {
		return false
	}
	if in.Priority >= PriorityCritical {
		return true
	}
	return autoPauseImportant && in.Priority >= PriorityImportant
}

// EventShowing reports whether an event is waiting on a player choice.
func (s *EventState) EventShowing() bool {
	return s.CurrentEventID != ""
}
