// Package save captures and restores complete playthrough state. A
// snapshot is a single JSON document with an integrity checksum; slots live
// in SQLite.
package save

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/talgya/pending/internal/application"
	"github.com/talgya/pending/internal/character"
	"github.com/talgya/pending/internal/clock"
	"github.com/talgya/pending/internal/engine"
	"github.com/talgya/pending/internal/finance"
	"github.com/talgya/pending/internal/relationship"
)

// FormatVersion is bumped whenever the snapshot layout changes shape.
const FormatVersion = 3

// Statistics aggregates playthrough totals for the end screen.
type Statistics struct {
	TotalDaysPlayed     int `json:"total_days_played"`
	TotalMonthsPlayed   int `json:"total_months_played"`
	EventsExperienced   int `json:"events_experienced"`
	ApplicationsFiled   int `json:"applications_filed"`
	ApplicationsDecided int `json:"applications_decided"`
	TrapsTriggered      int `json:"traps_triggered"`
	ImmigrationSpending int `json:"immigration_spending"`
	RemittancesSent     int `json:"remittances_sent"`
	PeakBalance         int `json:"peak_balance"`
	LowestBalance       int `json:"lowest_balance"`
}

// Snapshot is the full serialized playthrough.
type Snapshot struct {
	Version  int    `json:"version"`
	Checksum string `json:"checksum,omitempty"`

	Clock         *clock.Clock               `json:"clock"`
	Character     *character.Store           `json:"character"`
	Finances      *finance.Ledger            `json:"finances"`
	Relationships *relationship.Graph        `json:"relationships"`
	Applications  []*application.Application `json:"applications"`
	Events        *engine.EventState         `json:"events"`

	Ended    bool   `json:"ended"`
	EndingID string `json:"ending_id,omitempty"`

	Statistics Statistics `json:"statistics"`
}

// Capture builds a snapshot of the current engine state. Long histories
// are trimmed to the most recent historyLimit entries to bound save size;
// the trimming happens on copies, the live engine keeps its full history.
func Capture(eng *engine.Engine, historyLimit int) *Snapshot {
	fin := *eng.Finances
	fin.History = tail(eng.Finances.History, historyLimit)
	events := *eng.Events
	events.History = tail(eng.Events.History, historyLimit)
	rel := *eng.Relationships
	rel.Changes = tail(eng.Relationships.Changes, historyLimit)

	return &Snapshot{
		Version:       FormatVersion,
		Clock:         eng.Clock,
		Character:     eng.Character,
		Finances:      &fin,
		Relationships: &rel,
		Applications:  eng.Applications.Applications,
		Events:        &events,
		Ended:         eng.Ended,
		EndingID:      eng.EndingID,
		Statistics:    computeStatistics(eng),
	}
}

// tail returns a copy of the last limit entries, detached from the live
// slice so later appends cannot bleed into a sealed snapshot.
func tail[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		s = s[len(s)-limit:]
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func computeStatistics(eng *engine.Engine) Statistics {
	decided := 0
	for _, a := range eng.Applications.Applications {
		if a.Status == application.StatusApproved || a.Status == application.StatusDenied {
			decided++
		}
	}
	return Statistics{
		TotalDaysPlayed:     eng.Clock.TotalDaysElapsed,
		TotalMonthsPlayed:   eng.Clock.TotalMonthsElapsed,
		EventsExperienced:   len(eng.Events.History),
		ApplicationsFiled:   len(eng.Applications.Applications),
		ApplicationsDecided: decided,
		TrapsTriggered:      len(eng.Events.TriggeredTraps),
		ImmigrationSpending: eng.Finances.TotalImmigrationSpending,
		RemittancesSent:     eng.Finances.TotalRemittancesSent,
		PeakBalance:         eng.Finances.PeakBalance,
		LowestBalance:       eng.Finances.LowestBalance,
	}
}

// checksum hashes the snapshot serialized without its checksum field.
func checksum(snap *Snapshot) (string, error) {
	clone := *snap
	clone.Checksum = ""
	data, err := json.Marshal(&clone)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Marshal seals the snapshot with its checksum and serializes it.
func Marshal(snap *Snapshot) ([]byte, error) {
	sum, err := checksum(snap)
	if err != nil {
		return nil, err
	}
	snap.Checksum = sum
	return json.Marshal(snap)
}

// Unmarshal parses a snapshot and verifies its checksum. A corrupt or
// tampered snapshot fails loudly; no partial state is returned.
func Unmarshal(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if snap.Version > FormatVersion {
		return nil, fmt.Errorf("snapshot version %d newer than supported %d", snap.Version, FormatVersion)
	}
	expected := snap.Checksum
	if expected == "" {
		return nil, fmt.Errorf("snapshot missing checksum")
	}
	actual, err := checksum(&snap)
	if err != nil {
		return nil, err
	}
	if actual != expected {
		return nil, fmt.Errorf("snapshot checksum mismatch")
	}
	return &snap, nil
}

// Restore replaces the engine's state with the snapshot's. Catalog data
// and configuration are not part of the snapshot and stay as loaded.
func Restore(eng *engine.Engine, snap *Snapshot) {
	*eng.Clock = *snap.Clock
	*eng.Character = *snap.Character
	*eng.Finances = *snap.Finances
	*eng.Relationships = *snap.Relationships
	eng.Applications.Applications = snap.Applications
	*eng.Events = *snap.Events
	eng.Ended = snap.Ended
	eng.EndingID = snap.EndingID

	if eng.Character.ProfileID != "" {
		eng.Character.Profile = eng.Catalog.Profile(eng.Character.ProfileID)
	}
	if eng.Events.Completed == nil {
		eng.Events.Completed = make(map[string]bool)
	}
	if eng.Events.TriggeredTraps == nil {
		eng.Events.TriggeredTraps = make(map[string]bool)
	}
	// Loading always lands paused; the player resumes deliberately.
	eng.Clock.Pause()
}
