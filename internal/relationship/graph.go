// Package relationship tracks the people in the character's life and how
// each connection strengthens or frays over time.
package relationship

import (
	"github.com/talgya/pending/internal/catalog"
	"github.com/talgya/pending/internal/clock"
)

// Type classifies how an NPC relates to the character.
type Type string

const (
	TypeSpouse      Type = "spouse"
	TypeChild       Type = "child"
	TypeParent      Type = "parent"
	TypeSibling     Type = "sibling"
	TypeEmployer    Type = "employer"
	TypeAttorney    Type = "attorney"
	TypeFriend      Type = "friend"
	TypeCommunity   Type = "community"
	TypeCaseOfficer Type = "case-officer"
)

// Data is one edge in the relationship graph. Level stays in [-100, 100].
type Data struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Type              Type   `json:"type"`
	CitizenshipStatus string `json:"citizenship_status,omitempty"`
	Location          string `json:"location,omitempty"`
	Level             int    `json:"level"`
	IsSponsor         bool   `json:"is_sponsor,omitempty"`
	IsPetitioner      bool   `json:"is_petitioner,omitempty"`
	IsDependent       bool   `json:"is_dependent,omitempty"`
	IsDerivative      bool   `json:"is_derivative,omitempty"`
}

// Change records one relationship-level adjustment for the audit trail.
type Change struct {
	NPCID    string         `json:"npc_id"`
	Previous int            `json:"previous"`
	New      int            `json:"new"`
	Date     clock.GameDate `json:"date"`
	Reason   string         `json:"reason"`
}

// Graph holds every relationship the character has.
type Graph struct {
	Relationships map[string]*Data `json:"relationships"`
	Changes       []Change         `json:"changes"`
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{Relationships: make(map[string]*Data)}
}

// Initialize seeds the graph from a character profile.
func (g *Graph) Initialize(seeds []catalog.RelationshipSeed) {
	g.Relationships = make(map[string]*Data, len(seeds))
	g.Changes = nil
	for _, s := range seeds {
		g.Relationships[s.ID] = &Data{
			ID:                s.ID,
			Name:              s.Name,
			Type:              Type(s.Type),
			CitizenshipStatus: s.CitizenshipStatus,
			Location:          s.Location,
			Level:             clampLevel(s.Level),
			IsSponsor:         s.IsSponsor,
			IsPetitioner:      s.IsPetitioner,
			IsDependent:       s.IsDependent,
			IsDerivative:      s.IsDerivative,
		}
	}
}

func clampLevel(v int) int {
	if v > 100 {
		return 100
	}
	if v < -100 {
		return -100
	}
	return v
}

// Add inserts or replaces a relationship.
func (g *Graph) Add(d Data) {
	d.Level = clampLevel(d.Level)
	g.Relationships[d.ID] = &d
}

// Remove drops a relationship. Unknown ids are a no-op.
func (g *Graph) Remove(id string) {
	delete(g.Relationships, id)
}

// Get returns a relationship by id, or nil.
func (g *Graph) Get(id string) *Data {
	return g.Relationships[id]
}

// Modify adjusts a relationship level by delta, clamps it, and records
// exactly one audit entry. Unknown ids are a no-op.
func (g *Graph) Modify(id string, delta int, reason string, date clock.GameDate) {
	r, ok := g.Relationships[id]
	if !ok {
		return
	}
	previous := r.Level
	r.Level = clampLevel(r.Level + delta)
	g.Changes = append(g.Changes, Change{
		NPCID:    id,
		Previous: previous,
		New:      r.Level,
		Date:     date,
		Reason:   reason,
	})
}

// SetLevel forces a relationship to a specific level with an audit entry.
func (g *Graph) SetLevel(id string, level int, reason string, date clock.GameDate) {
	r, ok := g.Relationships[id]
	if !ok {
		return
	}
	previous := r.Level
	r.Level = clampLevel(level)
	g.Changes = append(g.Changes, Change{
		NPCID:    id,
		Previous: previous,
		New:      r.Level,
		Date:     date,
		Reason:   reason,
	})
}

// ByType returns every relationship of the given type.
func (g *Graph) ByType(t Type) []*Data {
	var out []*Data
	for _, r := range g.Relationships {
		if r.Type == t {
			out = append(out, r)
		}
	}
	return out
}

// Spouse returns the spouse relationship, or nil.
func (g *Graph) Spouse() *Data {
	for _, r := range g.Relationships {
		if r.Type == TypeSpouse {
			return r
		}
	}
	return nil
}

// Sponsor returns the first relationship flagged as sponsor, or nil.
func (g *Graph) Sponsor() *Data {
	for _, r := range g.Relationships {
		if r.IsSponsor {
			return r
		}
	}
	return nil
}

// Petitioner returns the first relationship flagged as petitioner, or nil.
func (g *Graph) Petitioner() *Data {
	for _, r := range g.Relationships {
		if r.IsPetitioner {
			return r
		}
	}
	return nil
}

// HasCitizenSpouse reports whether the character has a US-citizen spouse.
func (g *Graph) HasCitizenSpouse() bool {
	s := g.Spouse()
	return s != nil && s.CitizenshipStatus == "citizen"
}

// LevelLabel maps a numeric level onto the descriptive scale.
func LevelLabel(level int) string {
	switch {
	case level >= 90:
		return "devoted"
	case level >= 60:
		return "close"
	case level >= 30:
		return "warm"
	case level >= -29:
		return "neutral"
	case level >= -59:
		return "strained"
	default:
		return "hostile"
	}
}
