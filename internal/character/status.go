// Package character owns the player's immigration status, stat block,
// document set, and engine-accessible flag bag.
package character

import "github.com/talgya/pending/internal/clock"

// StatusType is the formal immigration standing.
type StatusType string

const (
	// Undocumented / at-risk.
	StatusUndocumented         StatusType = "undocumented"
	StatusUndocumentedOverstay StatusType = "undocumented-overstay"
	StatusDACA                 StatusType = "daca"
	StatusTPS                  StatusType = "tps"

	// Temporary statuses.
	StatusTouristB1B2      StatusType = "tourist-b1b2"
	StatusStudentF1        StatusType = "student-f1"
	StatusStudentF1OPT     StatusType = "student-f1-opt"
	StatusStudentF1STEMOPT StatusType = "student-f1-stem-opt"
	StatusH1BPending       StatusType = "h1b-pending"
	StatusH1BActive        StatusType = "h1b-active"
	StatusH4Dependent      StatusType = "h4-dependent"
	StatusL1AExecutive     StatusType = "l1a-executive"
	StatusL1BSpecialized   StatusType = "l1b-specialized"
	StatusO1Extraordinary  StatusType = "o1-extraordinary"
	StatusJ1Exchange       StatusType = "j1-exchange"
	StatusK1Fiance         StatusType = "k1-fiance"
	StatusE2Investor       StatusType = "e2-investor"

	// Asylum / refugee.
	StatusAsylumPending        StatusType = "asylum-pending"
	StatusAsylumGranted        StatusType = "asylum-granted"
	StatusRefugee              StatusType = "refugee"
	StatusWithholdingOfRemoval StatusType = "withholding-of-removal"

	// Family-based pending.
	StatusI130Pending        StatusType = "i130-pending"
	StatusI485Pending        StatusType = "i485-pending"
	StatusConsularProcessing StatusType = "consular-processing"

	// Permanent.
	StatusGreenCardConditional StatusType = "green-card-conditional"
	StatusGreenCardPermanent   StatusType = "green-card-permanent"
	StatusNaturalizedCitizen   StatusType = "naturalized-citizen"

	// Negative outcomes.
	StatusRemovalProceedings StatusType = "removal-proceedings"
	StatusDeportationOrder   StatusType = "deportation-order"
	StatusVoluntaryDeparture StatusType = "voluntary-departure"
	StatusDeported           StatusType = "deported"

	// Special.
	StatusVAWAPending StatusType = "vawa-pending"
	StatusSIJSPending StatusType = "sijs-pending"
)

// WorkAuthType classifies the kind of work authorization a status carries.
type WorkAuthType string

const (
	WorkAuthUnrestricted     WorkAuthType = "unrestricted"
	WorkAuthEmployerSpecific WorkAuthType = "employer-specific"
	WorkAuthEAD              WorkAuthType = "ead"
	WorkAuthLimited          WorkAuthType = "limited"
	WorkAuthNone             WorkAuthType = "none"
)

// ReentryRisk grades the danger of leaving the country under a status.
type ReentryRisk string

const (
	RiskNone    ReentryRisk = "none"
	RiskLow     ReentryRisk = "low"
	RiskMedium  ReentryRisk = "medium"
	RiskHigh    ReentryRisk = "high"
	RiskExtreme ReentryRisk = "extreme"
)

// ImmigrationStatus is the full legal-standing record. It is created at game
// start from the profile and superseded (never deleted) by status changes.
type ImmigrationStatus struct {
	Type           StatusType      `json:"type"`
	StartDate      clock.GameDate  `json:"start_date"`
	ExpirationDate *clock.GameDate `json:"expiration_date,omitempty"`

	WorkAuthorized bool         `json:"work_authorized"`
	WorkAuthType   WorkAuthType `json:"work_auth_type"`
	EmployerName   string       `json:"employer_name,omitempty"`

	CanTravel             bool        `json:"can_travel"`
	AdvanceParoleRequired bool        `json:"advance_parole_required"`
	ReentryRisk           ReentryRisk `json:"reentry_risk"`

	ValidTransitions []StatusType `json:"valid_transitions"`

	InRemovalProceedings bool `json:"in_removal_proceedings"`
	HasEAD               bool `json:"has_ead"`
	HasAdvanceParole     bool `json:"has_advance_parole"`
	UnlawfulPresenceDays int  `json:"unlawful_presence_days"`
}

// StatusChange is one entry in the status history.
type StatusChange struct {
	FromStatus StatusType     `json:"from_status"`
	ToStatus   StatusType     `json:"to_status"`
	Date       clock.GameDate `json:"date"`
	Reason     string         `json:"reason"`
	EventID    string         `json:"event_id,omitempty"`
}

var workAuthorizedStatuses = map[StatusType]bool{
	StatusDACA: true, StatusH1BActive: true, StatusL1AExecutive: true,
	StatusL1BSpecialized: true, StatusO1Extraordinary: true,
	StatusGreenCardConditional: true, StatusGreenCardPermanent: true,
	StatusNaturalizedCitizen: true, StatusAsylumGranted: true,
	StatusRefugee: true, StatusStudentF1OPT: true,
	StatusStudentF1STEMOPT: true, StatusE2Investor: true,
}

var noTravelStatuses = map[StatusType]bool{
	StatusUndocumented: true, StatusUndocumentedOverstay: true,
	StatusDACA: true, StatusAsylumPending: true,
	StatusRemovalProceedings: true, StatusDeportationOrder: true,
}

// unlawfulPresenceStatuses accrue unlawful-presence days while active.
var unlawfulPresenceStatuses = map[StatusType]bool{
	StatusUndocumented:         true,
	StatusUndocumentedOverstay: true,
}

var validTransitions = map[StatusType][]StatusType{
	StatusDACA:                 {StatusDACA, StatusUndocumented, StatusRemovalProceedings},
	StatusH1BActive:            {StatusH1BActive, StatusI485Pending, StatusUndocumentedOverstay},
	StatusH1BPending:           {StatusH1BActive, StatusStudentF1OPT, StatusUndocumentedOverstay},
	StatusAsylumPending:        {StatusAsylumGranted, StatusRemovalProceedings},
	StatusUndocumented:         {StatusRemovalProceedings, StatusVAWAPending, StatusI485Pending},
	StatusGreenCardConditional: {StatusGreenCardPermanent, StatusRemovalProceedings},
	StatusGreenCardPermanent:   {StatusNaturalizedCitizen},
}

func workAuthTypeFor(status StatusType) WorkAuthType {
	switch status {
	case StatusNaturalizedCitizen, StatusGreenCardPermanent, StatusGreenCardConditional:
		return WorkAuthUnrestricted
	case StatusH1BActive, StatusL1AExecutive, StatusL1BSpecialized:
		return WorkAuthEmployerSpecific
	case StatusDACA, StatusAsylumGranted, StatusRefugee:
		return WorkAuthEAD
	case StatusStudentF1OPT, StatusStudentF1STEMOPT:
		return WorkAuthLimited
	default:
		return WorkAuthNone
	}
}

func reentryRiskFor(status StatusType) ReentryRisk {
	switch status {
	case StatusUndocumented, StatusUndocumentedOverstay, StatusAsylumPending:
		return RiskExtreme
	case StatusDACA:
		return RiskHigh
	default:
		return RiskNone
	}
}

// NewStatus builds the full legal record for a status type starting on the
// given date, from the static status-attribute tables.
func NewStatus(statusType StatusType, startDate clock.GameDate) ImmigrationStatus {
	return ImmigrationStatus{
		Type:                  statusType,
		StartDate:             startDate,
		WorkAuthorized:        workAuthorizedStatuses[statusType],
		WorkAuthType:          workAuthTypeFor(statusType),
		CanTravel:             !noTravelStatuses[statusType],
		AdvanceParoleRequired: statusType == StatusDACA,
		ReentryRisk:           reentryRiskFor(statusType),
		ValidTransitions:      validTransitions[statusType],
		InRemovalProceedings:  statusType == StatusRemovalProceedings,
		HasEAD:                statusType == StatusDACA,
	}
}

// AccruesUnlawfulPresence reports whether this status adds unlawful-presence
// days as time passes.
func (s *ImmigrationStatus) AccruesUnlawfulPresence() bool {
	return unlawfulPresenceStatuses[s.Type]
}

// AllowsTransition reports whether a target status is in the valid set.
// This is a soft constraint; events may override it.
func (s *ImmigrationStatus) AllowsTransition(to StatusType) bool {
	for _, t := range s.ValidTransitions {
		if t == to {
			return true
		}
	}
	return false
}
