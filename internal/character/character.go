package character

import (
	"log/slog"

	"github.com/talgya/pending/internal/catalog"
	"github.com/talgya/pending/internal/clock"
)

// Stats is the four-axis bounded stat block. All values are clamped to
// [0,100] by every mutation path.
type Stats struct {
	Health              int `json:"health"`
	Stress              int `json:"stress"`
	EnglishProficiency  int `json:"english_proficiency"`
	CommunityConnection int `json:"community_connection"`
}

// Stat names accepted by ModifyStat / SetStat / Stat.
const (
	StatHealth              = "health"
	StatStress              = "stress"
	StatEnglishProficiency  = "englishProficiency"
	StatCommunityConnection = "communityConnection"
)

// Document is one item in the character's paperwork set.
type Document struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	ExpirationDate *clock.GameDate `json:"expiration_date,omitempty"`
	IsValid        bool            `json:"is_valid"`
}

// Store owns all character state. Mutations go through its operation set;
// nothing else writes these fields.
type Store struct {
	ProfileID string                    `json:"profile_id"`
	Profile   *catalog.CharacterProfile `json:"-"`

	Status        *ImmigrationStatus `json:"status"`
	StatusHistory []StatusChange     `json:"status_history"`

	Stats     Stats      `json:"stats"`
	Documents []Document `json:"documents"`

	// Flags are schema-less scratch state for narrative branching. Values
	// are string, float64, or bool; a missing key reads as not-exists.
	Flags map[string]any `json:"flags"`
}

// NewStore returns an empty character store.
func NewStore() *Store {
	return &Store{Flags: make(map[string]any)}
}

// Initialize seeds the store from a character profile at game start.
func (s *Store) Initialize(profile *catalog.CharacterProfile, startDate clock.GameDate) {
	status := NewStatus(StatusType(profile.InitialStatus), startDate)
	s.ProfileID = profile.ID
	s.Profile = profile
	s.Status = &status
	s.StatusHistory = nil
	s.Stats = Stats{
		Health:              clampStat(profile.InitialStats.Health),
		Stress:              clampStat(profile.InitialStats.Stress),
		EnglishProficiency:  clampStat(profile.InitialStats.EnglishProficiency),
		CommunityConnection: clampStat(profile.InitialStats.CommunityConnection),
	}
	s.Documents = nil
	s.Flags = make(map[string]any)
}

// UpdateStatus supersedes the current status and appends a history entry.
// Transitions outside the valid set are applied anyway; the valid set is a
// soft constraint that events may override.
func (s *Store) UpdateStatus(newStatus ImmigrationStatus, reason string, date clock.GameDate, eventID string) {
	if s.Status == nil {
		return
	}
	if !s.Status.AllowsTransition(newStatus.Type) {
		slog.Debug("status transition outside valid set",
			"from", s.Status.Type,
			"to", newStatus.Type,
			"reason", reason,
		)
	}
	s.StatusHistory = append(s.StatusHistory, StatusChange{
		FromStatus: s.Status.Type,
		ToStatus:   newStatus.Type,
		Date:       date,
		Reason:     reason,
		EventID:    eventID,
	})
	s.Status = &newStatus
}

// ChangeStatusTo transitions to a status type, building the new legal record
// from the status tables.
func (s *Store) ChangeStatusTo(statusType StatusType, reason string, date clock.GameDate, eventID string) {
	s.UpdateStatus(NewStatus(statusType, date), reason, date, eventID)
}

func clampStat(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func (s *Store) statPtr(name string) *int {
	switch name {
	case StatHealth:
		return &s.Stats.Health
	case StatStress:
		return &s.Stats.Stress
	case StatEnglishProficiency:
		return &s.Stats.EnglishProficiency
	case StatCommunityConnection:
		return &s.Stats.CommunityConnection
	default:
		return nil
	}
}

// ModifyStat applies a clamped delta. Unknown stat names are ignored.
func (s *Store) ModifyStat(name string, delta int) {
	if p := s.statPtr(name); p != nil {
		*p = clampStat(*p + delta)
	}
}

// SetStat sets an absolute clamped value. Unknown stat names are ignored.
func (s *Store) SetStat(name string, value int) {
	if p := s.statPtr(name); p != nil {
		*p = clampStat(value)
	}
}

// Stat reads a stat by name; ok is false for unknown names.
func (s *Store) Stat(name string) (int, bool) {
	if p := s.statPtr(name); p != nil {
		return *p, true
	}
	return 0, false
}

// AddDocument appends a document to the set.
func (s *Store) AddDocument(doc Document) {
	s.Documents = append(s.Documents, doc)
}

// RemoveDocument drops a document by id. Unknown ids are ignored.
func (s *Store) RemoveDocument(id string) {
	kept := s.Documents[:0]
	for _, d := range s.Documents {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.Documents = kept
}

// InvalidateDocument marks a document invalid without removing it.
func (s *Store) InvalidateDocument(id string) {
	for i := range s.Documents {
		if s.Documents[i].ID == id {
			s.Documents[i].IsValid = false
		}
	}
}

// SetFlag writes a flag value.
func (s *Store) SetFlag(key string, value any) {
	s.Flags[key] = value
}

// Flag reads a raw flag value; ok is false when the key is absent.
func (s *Store) Flag(key string) (any, bool) {
	v, ok := s.Flags[key]
	return v, ok
}

// BoolFlag reads a flag as a bool, false when absent or mistyped.
func (s *Store) BoolFlag(key string) bool {
	v, _ := s.Flags[key].(bool)
	return v
}

// NumberFlag reads a flag as a number, 0 when absent or mistyped.
func (s *Store) NumberFlag(key string) float64 {
	switch v := s.Flags[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

// StringFlag reads a flag as a string, "" when absent or mistyped.
func (s *Store) StringFlag(key string) string {
	v, _ := s.Flags[key].(string)
	return v
}

// IncrementFlag adds to a numeric flag, treating non-numeric or missing
// values as zero.
func (s *Store) IncrementFlag(key string, amount float64) {
	s.Flags[key] = s.NumberFlag(key) + amount
}

// AddUnlawfulPresenceDays bumps the unlawful-presence counter on the current
// status record.
func (s *Store) AddUnlawfulPresenceDays(days int) {
	if s.Status == nil {
		return
	}
	s.Status.UnlawfulPresenceDays += days
}
