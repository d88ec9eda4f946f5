package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the full static content pack consumed by the engine.
type Catalog struct {
	Events   []GameEvent        `yaml:"events"`
	Traps    []PolicyTrap       `yaml:"traps"`
	Profiles []CharacterProfile `yaml:"profiles"`
	Endings  []Ending           `yaml:"endings"`

	eventsByID   map[string]*GameEvent
	trapsByID    map[string]*PolicyTrap
	profilesByID map[string]*CharacterProfile
	endingsByID  map[string]*Ending
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog YAML and builds lookup indexes.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c.buildIndexes()
	return &c, nil
}

// New builds an in-memory catalog, used by tests and embedded content.
func New(events []GameEvent, traps []PolicyTrap) *Catalog {
	c := &Catalog{Events: events, Traps: traps}
	c.buildIndexes()
	return c
}

// Reindex rebuilds the id lookups after programmatic mutation of the
// content slices.
func (c *Catalog) Reindex() {
	c.buildIndexes()
}

func (c *Catalog) buildIndexes() {
	c.eventsByID = make(map[string]*GameEvent, len(c.Events))
	for i := range c.Events {
		c.eventsByID[c.Events[i].ID] = &c.Events[i]
	}
	c.trapsByID = make(map[string]*PolicyTrap, len(c.Traps))
	for i := range c.Traps {
		c.trapsByID[c.Traps[i].ID] = &c.Traps[i]
	}
	c.profilesByID = make(map[string]*CharacterProfile, len(c.Profiles))
	for i := range c.Profiles {
		c.profilesByID[c.Profiles[i].ID] = &c.Profiles[i]
	}
	c.endingsByID = make(map[string]*Ending, len(c.Endings))
	for i := range c.Endings {
		c.endingsByID[c.Endings[i].ID] = &c.Endings[i]
	}
}

// Event looks up an event by id; nil when absent.
func (c *Catalog) Event(id string) *GameEvent {
	return c.eventsByID[id]
}

// Trap looks up a policy trap by id; nil when absent.
func (c *Catalog) Trap(id string) *PolicyTrap {
	return c.trapsByID[id]
}

// Profile looks up a character profile by id; nil when absent.
func (c *Catalog) Profile(id string) *CharacterProfile {
	return c.profilesByID[id]
}

// Ending looks up an ending by id; nil when absent.
func (c *Catalog) Ending(id string) *Ending {
	return c.endingsByID[id]
}

// Validate checks catalog integrity: unique ids, resolvable references, and
// sane timing windows. Content problems that the engine tolerates at runtime
// (unknown condition types, missing targets) are still worth flagging here
// so authors catch them before shipping a pack.
func (c *Catalog) Validate() []error {
	var errs []error

	seen := make(map[string]bool, len(c.Events))
	for i := range c.Events {
		e := &c.Events[i]
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("event %d: missing id", i))
			continue
		}
		if seen[e.ID] {
			errs = append(errs, fmt.Errorf("event %s: duplicate id", e.ID))
		}
		seen[e.ID] = true

		if len(e.Choices) == 0 {
			errs = append(errs, fmt.Errorf("event %s: no choices", e.ID))
		}
		if e.Weight < 0 {
			errs = append(errs, fmt.Errorf("event %s: negative weight", e.ID))
		}
		if e.Timing.Type == TimingRandom && e.Timing.LatestMonth > 0 &&
			e.Timing.LatestMonth < e.Timing.EarliestMonth {
			errs = append(errs, fmt.Errorf("event %s: random window ends before it starts", e.ID))
		}

		for _, ch := range e.Choices {
			for _, out := range ch.Outcomes {
				if out.Probability < 0 || out.Probability > 1 {
					errs = append(errs, fmt.Errorf("event %s choice %s: probability out of range", e.ID, ch.ID))
				}
			}
			if ch.NextEventID != "" && c.Event(ch.NextEventID) == nil {
				errs = append(errs, fmt.Errorf("event %s choice %s: next event %s not in catalog", e.ID, ch.ID, ch.NextEventID))
			}
		}
	}

	seenTraps := make(map[string]bool, len(c.Traps))
	for i := range c.Traps {
		t := &c.Traps[i]
		if t.ID == "" {
			errs = append(errs, fmt.Errorf("trap %d: missing id", i))
			continue
		}
		if seenTraps[t.ID] {
			errs = append(errs, fmt.Errorf("trap %s: duplicate id", t.ID))
		}
		seenTraps[t.ID] = true
		if len(t.Triggers) == 0 {
			errs = append(errs, fmt.Errorf("trap %s: no trigger conditions", t.ID))
		}
	}

	for i := range c.Profiles {
		p := &c.Profiles[i]
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("profile %d: missing id", i))
		}
		if p.InitialStatus == "" {
			errs = append(errs, fmt.Errorf("profile %s: missing initial status", p.ID))
		}
	}

	return errs
}
