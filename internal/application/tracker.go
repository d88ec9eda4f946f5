// Package application models filings before the immigration agency: receipt
// numbers, processing estimates, requests for evidence, interviews, and the
// monthly adjudication sweep.
package application

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talgya/pending/internal/clock"
	"github.com/talgya/pending/internal/rng"
)

// Status is the lifecycle state of one filing.
type Status string

const (
	StatusPreparing          Status = "preparing"
	StatusFiled              Status = "filed"
	StatusReceiptReceived    Status = "receipt-received"
	StatusBiometrics         Status = "biometrics-scheduled"
	StatusRFEIssued          Status = "rfe-issued"
	StatusRFEResponded       Status = "rfe-responded"
	StatusInterviewScheduled Status = "interview-scheduled"
	StatusApproved           Status = "approved"
	StatusDenied             Status = "denied"
	StatusWithdrawn          Status = "withdrawn"
)

// Terminal reports whether a status admits no further movement.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusDenied || s == StatusWithdrawn
}

// RFE is a request for evidence attached to an application.
type RFE struct {
	ID          string          `json:"id"`
	IssuedOn    clock.GameDate  `json:"issued_on"`
	Deadline    clock.GameDate  `json:"deadline"`
	Subject     string          `json:"subject"`
	Responded   bool            `json:"responded"`
	RespondedOn *clock.GameDate `json:"responded_on,omitempty"`
}

// Application is one filing and everything that happened to it.
type Application struct {
	ID            string         `json:"id"`
	FormID        string         `json:"form_id"`
	FormName      string         `json:"form_name"`
	Status        Status         `json:"status"`
	FiledOn       clock.GameDate `json:"filed_on"`
	ReceiptNumber string         `json:"receipt_number"`

	EstimatedDecision clock.GameDate  `json:"estimated_decision"`
	DecidedOn         *clock.GameDate `json:"decided_on,omitempty"`
	InterviewDate     *clock.GameDate `json:"interview_date,omitempty"`

	RFEs []RFE `json:"rfes,omitempty"`

	FeesPaid int `json:"fees_paid"`
}

// HasUnansweredRFE reports whether any request for evidence is still open.
func (a *Application) HasUnansweredRFE() bool {
	for i := range a.RFEs {
		if !a.RFEs[i].Responded {
			return true
		}
	}
	return false
}

// DecisionPolicy tunes the monthly adjudication sweep.
type DecisionPolicy struct {
	BaseChance     float64 // chance a decision lands once the estimate passes
	ChancePerMonth float64 // added per month past the estimate
	ChanceCap      float64
	ApprovalRate   float64
	RFEPenalty     float64 // approval multiplier while an RFE is unanswered
}

// Decision is one resolved application from a sweep.
type Decision struct {
	ApplicationID string
	FormID        string
	Approved      bool
}

// Tracker owns every filing in the playthrough.
type Tracker struct {
	Applications []*Application `json:"applications"`

	rand rng.Source
	log  *slog.Logger
}

// NewTracker builds a tracker around a randomness source.
func NewTracker(src rng.Source, log *slog.Logger) *Tracker {
	if log == nil {
		log = slog.Default()
	}
	return &Tracker{rand: src, log: log}
}

var receiptPrefixes = []string{"MSC", "LIN", "SRC", "WAC", "EAC"}

func (t *Tracker) receiptNumber() string {
	prefix := receiptPrefixes[t.rand.Intn(len(receiptPrefixes))]
	digits := make([]byte, 10)
	for i := range digits {
		digits[i] = byte('0' + t.rand.Intn(10))
	}
	return prefix + string(digits)
}

// File opens an application for a form on the given date and returns it.
// The decision estimate is the filing date plus the form's average
// processing time, jittered within the form's processing range. Unknown
// forms return nil.
func (t *Tracker) File(formID string, date clock.GameDate) *Application {
	form, ok := Forms[formID]
	if !ok {
		t.log.Warn("unknown form", "form_id", formID)
		return nil
	}

	offset := 0
	if form.ProcessingRange > 0 {
		offset = t.rand.Intn(2*form.ProcessingRange+1) - form.ProcessingRange
	}
	months := form.AvgMonths + offset
	if months < 1 {
		months = 1
	}

	app := &Application{
		ID:                uuid.NewString(),
		FormID:            form.ID,
		FormName:          form.Name,
		Status:            StatusFiled,
		FiledOn:           date,
		ReceiptNumber:     t.receiptNumber(),
		EstimatedDecision: date.AddMonths(months),
		FeesPaid:          form.FilingFee + form.BiometricsFee,
	}
	t.Applications = append(t.Applications, app)
	t.log.Info("application filed",
		"form", form.ID,
		"receipt", app.ReceiptNumber,
		"estimated_decision", app.EstimatedDecision.String())
	return app
}

// Get returns an application by id, or nil.
func (t *Tracker) Get(id string) *Application {
	for _, a := range t.Applications {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// ActiveForForm returns the first non-terminal application for a form, or
// nil.
func (t *Tracker) ActiveForForm(formID string) *Application {
	for _, a := range t.Applications {
		if a.FormID == formID && !a.Status.Terminal() {
			return a
		}
	}
	return nil
}

// IssueRFE attaches a request for evidence with a three-month response
// window.
func (t *Tracker) IssueRFE(appID, subject string, date clock.GameDate) *RFE {
	app := t.Get(appID)
	if app == nil || app.Status.Terminal() {
		return nil
	}
	deadline := date.AddMonths(3)
	rfe := RFE{
		ID:       uuid.NewString(),
		IssuedOn: date,
		Deadline: deadline,
		Subject:  subject,
	}
	app.RFEs = append(app.RFEs, rfe)
	app.Status = StatusRFEIssued
	return &app.RFEs[len(app.RFEs)-1]
}

// RespondToRFE marks the oldest open request for evidence answered.
func (t *Tracker) RespondToRFE(appID string, date clock.GameDate) bool {
	app := t.Get(appID)
	if app == nil {
		return false
	}
	for i := range app.RFEs {
		if !app.RFEs[i].Responded {
			app.RFEs[i].Responded = true
			d := date
			app.RFEs[i].RespondedOn = &d
			app.Status = StatusRFEResponded
			return true
		}
	}
	return false
}

// ScheduleInterview sets the interview date for an application.
func (t *Tracker) ScheduleInterview(appID string, date clock.GameDate) bool {
	app := t.Get(appID)
	if app == nil || app.Status.Terminal() {
		return false
	}
	d := date
	app.InterviewDate = &d
	app.Status = StatusInterviewScheduled
	return true
}

// Decide resolves an application. No-op on terminal applications.
func (t *Tracker) Decide(appID string, approved bool, date clock.GameDate) bool {
	app := t.Get(appID)
	if app == nil || app.Status.Terminal() {
		return false
	}
	if approved {
		app.Status = StatusApproved
	} else {
		app.Status = StatusDenied
	}
	d := date
	app.DecidedOn = &d
	t.log.Info("application decided",
		"form", app.FormID,
		"receipt", app.ReceiptNumber,
		"approved", approved)
	return true
}

// Withdraw cancels an application.
func (t *Tracker) Withdraw(appID string, date clock.GameDate) bool {
	app := t.Get(appID)
	if app == nil || app.Status.Terminal() {
		return false
	}
	app.Status = StatusWithdrawn
	d := date
	app.DecidedOn = &d
	return true
}

// SweepMonthly rolls for decisions on every pending application whose
// estimated decision date has passed. The chance of a decision grows the
// further past the estimate the month is, and an unanswered request for
// evidence halves the approval odds.
func (t *Tracker) SweepMonthly(date clock.GameDate, policy DecisionPolicy) []Decision {
	var decided []Decision
	for _, app := range t.Applications {
		if app.Status.Terminal() {
			continue
		}
		if date.Before(app.EstimatedDecision) {
			continue
		}

		monthsOverdue := clock.MonthsBetween(app.EstimatedDecision, date)
		chance := policy.BaseChance + policy.ChancePerMonth*float64(monthsOverdue)
		if chance > policy.ChanceCap {
			chance = policy.ChanceCap
		}
		if t.rand.Float64() >= chance {
			continue
		}

		approval := policy.ApprovalRate
		if app.HasUnansweredRFE() {
			approval *= policy.RFEPenalty
		}
		approved := t.rand.Float64() < approval
		t.Decide(app.ID, approved, date)
		decided = append(decided, Decision{
			ApplicationID: app.ID,
			FormID:        app.FormID,
			Approved:      approved,
		})
	}
	return decided
}

// TotalFeesPaid sums fees across every application ever filed.
func (t *Tracker) TotalFeesPaid() int {
	total := 0
	for _, a := range t.Applications {
		total += a.FeesPaid
	}
	return total
}

// SetRand swaps the randomness source, used when restoring a save.
func (t *Tracker) SetRand(src rng.Source) {
	t.rand = src
}

// Summary is a short human-readable line for one application.
func (a *Application) Summary() string {
	return fmt.Sprintf("%s (%s) %s", a.FormID, a.ReceiptNumber, a.Status)
}
