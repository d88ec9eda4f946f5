// Package catalog defines the content data model: narrative events, policy
// traps, character profiles, and endings. Catalog entries are immutable
// input data; the engine matches on declared fields and never mutates them.
package catalog

import "github.com/talgya/pending/internal/clock"

// TimingType classifies when an event may fire.
type TimingType string

const (
	TimingImmediate TimingType = "immediate"
	TimingScheduled TimingType = "scheduled"
	TimingRandom    TimingType = "random"
	TimingTriggered TimingType = "triggered"
	TimingDeadline  TimingType = "deadline"
)

// EventTiming describes an event's firing window.
type EventTiming struct {
	Type TimingType `json:"type" yaml:"type"`

	// Scheduled events.
	Month int `json:"month,omitempty" yaml:"month,omitempty"`
	Year  int `json:"year,omitempty" yaml:"year,omitempty"`

	// Random events: window in months from game start. Zero latest means
	// no upper bound.
	EarliestMonth int `json:"earliest_month,omitempty" yaml:"earliest_month,omitempty"`
	LatestMonth   int `json:"latest_month,omitempty" yaml:"latest_month,omitempty"`

	// Triggered events.
	TriggerID string `json:"trigger_id,omitempty" yaml:"trigger_id,omitempty"`

	// Deadline events.
	DeadlineDate *clock.GameDate `json:"deadline_date,omitempty" yaml:"deadline_date,omitempty"`
}

// ConditionOperator is the comparison applied by an EventCondition.
type ConditionOperator string

const (
	OpEqual        ConditionOperator = "=="
	OpNotEqual     ConditionOperator = "!="
	OpGreater      ConditionOperator = ">"
	OpLess         ConditionOperator = "<"
	OpGreaterEqual ConditionOperator = ">="
	OpLessEqual    ConditionOperator = "<="
	OpIn           ConditionOperator = "in"
	OpNotIn        ConditionOperator = "not-in"
	OpExists       ConditionOperator = "exists"
	OpNotExists    ConditionOperator = "not-exists"
)

// ConditionType selects which slice of live state a condition reads.
type ConditionType string

const (
	CondStatus       ConditionType = "status"
	CondFlag         ConditionType = "flag"
	CondFinance      ConditionType = "finance"
	CondRelationship ConditionType = "relationship"
	CondStat         ConditionType = "stat"
	CondDate         ConditionType = "date"
	CondApplication  ConditionType = "application"
	CondCharacter    ConditionType = "character"
)

// EventCondition is one eligibility predicate. Unknown types or operators
// evaluate to false, never to an error; a malformed content entry must not
// halt the simulation.
type EventCondition struct {
	Type     ConditionType     `json:"type" yaml:"type"`
	Target   string            `json:"target" yaml:"target"`
	Operator ConditionOperator `json:"operator" yaml:"operator"`
	Value    any               `json:"value,omitempty" yaml:"value,omitempty"`
}

// OutcomeType is the closed set of typed effects a choice can apply.
type OutcomeType string

const (
	OutcomeStatusChange        OutcomeType = "status-change"
	OutcomeFlagSet             OutcomeType = "flag-set"
	OutcomeFlagIncrement       OutcomeType = "flag-increment"
	OutcomeFinanceAdd          OutcomeType = "finance-add"
	OutcomeFinanceSubtract     OutcomeType = "finance-subtract"
	OutcomeRelationshipChange  OutcomeType = "relationship-change"
	OutcomeStatChange          OutcomeType = "stat-change"
	OutcomeTriggerEvent        OutcomeType = "trigger-event"
	OutcomeQueueEvent          OutcomeType = "queue-event"
	OutcomeFileApplication     OutcomeType = "file-application"
	OutcomeApplicationDecision OutcomeType = "application-decision"
	OutcomeTriggerTrap         OutcomeType = "trigger-trap"
	OutcomeAddDocument         OutcomeType = "add-document"
	OutcomeRemoveDocument      OutcomeType = "remove-document"
	OutcomeEndGame             OutcomeType = "end-game"
)

// EventOutcome is a single typed effect attached to a choice, optionally
// gated by probability and deferred by a month delay.
type EventOutcome struct {
	Type   OutcomeType `json:"type" yaml:"type"`
	Target string      `json:"target" yaml:"target"`
	Value  any         `json:"value,omitempty" yaml:"value,omitempty"`

	// Probability in (0,1]; zero means unconditional.
	Probability float64 `json:"probability,omitempty" yaml:"probability,omitempty"`

	DelayMonths int `json:"delay_months,omitempty" yaml:"delay_months,omitempty"`
}

// CostType classifies a choice cost.
type CostType string

const (
	CostMoney  CostType = "money"
	CostStat   CostType = "stat"
	CostStress CostType = "stress"
	CostTime   CostType = "time"
)

// ChoiceCost is charged when a choice is selected. A money cost the player
// cannot cover makes the choice unavailable.
type ChoiceCost struct {
	Type        CostType `json:"type" yaml:"type"`
	Target      string   `json:"target,omitempty" yaml:"target,omitempty"`
	Amount      int      `json:"amount" yaml:"amount"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// EventChoice is one player option within an event.
type EventChoice struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`

	Requirements []EventCondition `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	Costs        []ChoiceCost     `json:"costs,omitempty" yaml:"costs,omitempty"`
	Outcomes     []EventOutcome   `json:"outcomes" yaml:"outcomes"`
	OutcomeText  string           `json:"outcome_text" yaml:"outcome_text"`
	NextEventID  string           `json:"next_event_id,omitempty" yaml:"next_event_id,omitempty"`

	IsRecommended bool `json:"is_recommended,omitempty" yaml:"is_recommended,omitempty"`
	IsDangerous   bool `json:"is_dangerous,omitempty" yaml:"is_dangerous,omitempty"`
}

// GameEvent is one narrative event in the content pool.
type GameEvent struct {
	ID          string `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`

	Timing     EventTiming      `json:"timing" yaml:"timing"`
	Conditions []EventCondition `json:"conditions,omitempty" yaml:"conditions,omitempty"`

	// Weight for random selection; higher fires more often.
	Weight float64 `json:"weight" yaml:"weight"`

	// Restrictions; empty slices mean unrestricted.
	CharacterIDs     []string `json:"character_ids,omitempty" yaml:"character_ids,omitempty"`
	RequiredStatuses []string `json:"required_statuses,omitempty" yaml:"required_statuses,omitempty"`
	ExcludedStatuses []string `json:"excluded_statuses,omitempty" yaml:"excluded_statuses,omitempty"`

	Choices []EventChoice `json:"choices" yaml:"choices"`

	ChainID       string `json:"chain_id,omitempty" yaml:"chain_id,omitempty"`
	ChainPosition int    `json:"chain_position,omitempty" yaml:"chain_position,omitempty"`
	IsChainStart  bool   `json:"is_chain_start,omitempty" yaml:"is_chain_start,omitempty"`

	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	IsRepeatable bool `json:"is_repeatable,omitempty" yaml:"is_repeatable,omitempty"`
	IsMandatory  bool `json:"is_mandatory,omitempty" yaml:"is_mandatory,omitempty"`
	Priority     int  `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// HasTag reports whether an event carries a tag.
func (e *GameEvent) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// EventChain groups a sequence of events.
type EventChain struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	EventIDs        []string `json:"event_ids" yaml:"event_ids"`
	CurrentPosition int      `json:"current_position" yaml:"current_position"`
	IsInterruptible bool     `json:"is_interruptible,omitempty" yaml:"is_interruptible,omitempty"`
}

// TrapSeverity grades how badly a policy trap derails the journey.
type TrapSeverity string

const (
	TrapMinor        TrapSeverity = "minor"
	TrapModerate     TrapSeverity = "moderate"
	TrapSevere       TrapSeverity = "severe"
	TrapCatastrophic TrapSeverity = "catastrophic"
	TrapTerminal     TrapSeverity = "terminal"
)

// PolicyTrap is a systemic hazard with the same condition/outcome shape as
// an event, evaluated automatically rather than surfaced as a choice.
type PolicyTrap struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`

	Explanation      string `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	RealWorldExample string `json:"real_world_example,omitempty" yaml:"real_world_example,omitempty"`

	Triggers     []EventCondition `json:"triggers" yaml:"triggers"`
	Consequences []EventOutcome   `json:"consequences" yaml:"consequences"`

	AvoidanceConditions []EventCondition `json:"avoidance_conditions,omitempty" yaml:"avoidance_conditions,omitempty"`
	AvoidanceHint       string           `json:"avoidance_hint,omitempty" yaml:"avoidance_hint,omitempty"`

	Severity      TrapSeverity `json:"severity" yaml:"severity"`
	IsRecoverable bool         `json:"is_recoverable,omitempty" yaml:"is_recoverable,omitempty"`
	RecoveryPath  string       `json:"recovery_path,omitempty" yaml:"recovery_path,omitempty"`
}

// InitialFinances seeds the ledger at game start.
type InitialFinances struct {
	BankBalance        int  `json:"bank_balance" yaml:"bank_balance"`
	MonthlyIncome      int  `json:"monthly_income" yaml:"monthly_income"`
	MonthlyExpenses    int  `json:"monthly_expenses" yaml:"monthly_expenses"`
	Debt               int  `json:"debt" yaml:"debt"`
	HasHealthInsurance bool `json:"has_health_insurance" yaml:"has_health_insurance"`
}

// RelationshipSeed seeds one relationship at game start.
type RelationshipSeed struct {
	ID                string `json:"id" yaml:"id"`
	Name              string `json:"name" yaml:"name"`
	Type              string `json:"type" yaml:"type"`
	CitizenshipStatus string `json:"citizenship_status" yaml:"citizenship_status"`
	Location          string `json:"location" yaml:"location"`
	Level             int    `json:"level" yaml:"level"`
	IsSponsor         bool   `json:"is_sponsor,omitempty" yaml:"is_sponsor,omitempty"`
	IsPetitioner      bool   `json:"is_petitioner,omitempty" yaml:"is_petitioner,omitempty"`
	IsDependent       bool   `json:"is_dependent,omitempty" yaml:"is_dependent,omitempty"`
	IsDerivative      bool   `json:"is_derivative,omitempty" yaml:"is_derivative,omitempty"`
}

// CharacterProfile supplies starting state for one playable character.
type CharacterProfile struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Age             int    `json:"age" yaml:"age"`
	CountryOfOrigin string `json:"country_of_origin" yaml:"country_of_origin"`
	Tagline         string `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Backstory       string `json:"backstory,omitempty" yaml:"backstory,omitempty"`

	InitialStatus string `json:"initial_status" yaml:"initial_status"`
	GameStartYear int    `json:"game_start_year" yaml:"game_start_year"`

	InitialStats struct {
		Health              int `json:"health" yaml:"health"`
		Stress              int `json:"stress" yaml:"stress"`
		EnglishProficiency  int `json:"english_proficiency" yaml:"english_proficiency"`
		CommunityConnection int `json:"community_connection" yaml:"community_connection"`
	} `json:"initial_stats" yaml:"initial_stats"`

	InitialFinances      InitialFinances    `json:"initial_finances" yaml:"initial_finances"`
	InitialRelationships []RelationshipSeed `json:"initial_relationships,omitempty" yaml:"initial_relationships,omitempty"`

	ProfileEventIDs   []string `json:"profile_event_ids,omitempty" yaml:"profile_event_ids,omitempty"`
	PossibleEndingIDs []string `json:"possible_ending_ids,omitempty" yaml:"possible_ending_ids,omitempty"`
	Difficulty        string   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// Ending describes one terminal screen.
type Ending struct {
	ID                string           `json:"id" yaml:"id"`
	Name              string           `json:"name" yaml:"name"`
	Type              string           `json:"type" yaml:"type"`
	TriggerConditions []EventCondition `json:"trigger_conditions,omitempty" yaml:"trigger_conditions,omitempty"`
	TriggerYear       int              `json:"trigger_year,omitempty" yaml:"trigger_year,omitempty"`
	Title             string           `json:"title" yaml:"title"`
	Description       string           `json:"description,omitempty" yaml:"description,omitempty"`
	Epilogue          string           `json:"epilogue,omitempty" yaml:"epilogue,omitempty"`
	IsPositive        bool             `json:"is_positive,omitempty" yaml:"is_positive,omitempty"`
}
