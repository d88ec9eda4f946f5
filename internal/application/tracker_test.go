package application

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/pending/internal/clock"
	"github.com/talgya/pending/internal/rng"
)

var filed = clock.GameDate{Day: 10, Month: 2, Year: 2024}

func testPolicy() DecisionPolicy {
	return DecisionPolicy{
		BaseChance:     0.3,
		ChancePerMonth: 0.1,
		ChanceCap:      0.8,
		ApprovalRate:   0.75,
		RFEPenalty:     0.5,
	}
}

func TestFileSetsEstimateWithinRange(t *testing.T) {
	tr := NewTracker(rng.NewSeeded(1), nil)
	app := tr.File("I-485", filed)
	require.NotNil(t, app)

	assert.Equal(t, StatusFiled, app.Status)
	assert.Equal(t, "Application to Adjust Status", app.FormName)
	assert.Equal(t, 1140+85, app.FeesPaid)

	form := Forms["I-485"]
	months := clock.MonthsBetween(filed, app.EstimatedDecision)
	assert.GreaterOrEqual(t, months, form.AvgMonths-form.ProcessingRange)
	assert.LessOrEqual(t, months, form.AvgMonths+form.ProcessingRange)
}

func TestReceiptNumberFormat(t *testing.T) {
	tr := NewTracker(rng.NewSeeded(7), nil)
	pattern := regexp.MustCompile(`^(MSC|LIN|SRC|WAC|EAC)\d{10}$`)
	for i := 0; i < 20; i++ {
		app := tr.File("I-765", filed)
		require.NotNil(t, app)
		assert.Regexp(t, pattern, app.ReceiptNumber)
	}
}

func TestFileUnknownForm(t *testing.T) {
	tr := NewTracker(rng.NewSeeded(1), nil)
	assert.Nil(t, tr.File("I-999", filed))
	assert.Empty(t, tr.Applications)
}

func TestSweepRespectsEstimate(t *testing.T) {
	tr := NewTracker(rng.NewSeeded(3), nil)
	app := tr.File("I-140", filed)
	require.NotNil(t, app)

	// Sweep well before the estimate: nothing can decide, regardless of
	// how the dice land.
	early := filed.AddMonths(1)
	for i := 0; i < 50; i++ {
		assert.Empty(t, tr.SweepMonthly(early, testPolicy()))
	}
	assert.Equal(t, StatusFiled, app.Status)
}

func TestSweepEventuallyDecides(t *testing.T) {
	tr := NewTracker(rng.NewSeeded(42), nil)
	app := tr.File("I-765", filed)
	require.NotNil(t, app)

	// Sweep month by month past the estimate; with a growing chance the
	// decision must land within a few years of sweeps.
	date := app.EstimatedDecision
	for i := 0; i < 48 && !app.Status.Terminal(); i++ {
		tr.SweepMonthly(date, testPolicy())
		date = date.AddMonths(1)
	}
	require.True(t, app.Status.Terminal(), "application never decided")
	require.NotNil(t, app.DecidedOn)
}

func TestSweepSkipsTerminal(t *testing.T) {
	tr := NewTracker(rng.NewSeeded(5), nil)
	app := tr.File("I-130", filed)
	require.NotNil(t, app)
	require.True(t, tr.Withdraw(app.ID, filed))

	decided := tr.SweepMonthly(app.EstimatedDecision.AddMonths(24), testPolicy())
	assert.Empty(t, decided)
	assert.Equal(t, StatusWithdrawn, app.Status)
}

func TestRFELifecycle(t *testing.T) {
	tr := NewTracker(rng.NewSeeded(9), nil)
	app := tr.File("I-485", filed)
	require.NotNil(t, app)

	rfe := tr.IssueRFE(app.ID, "Proof of bona fide marriage", filed.AddMonths(4))
	require.NotNil(t, rfe)
	assert.Equal(t, StatusRFEIssued, app.Status)
	assert.True(t, app.HasUnansweredRFE())

	require.True(t, tr.RespondToRFE(app.ID, filed.AddMonths(5)))
	assert.Equal(t, StatusRFEResponded, app.Status)
	assert.False(t, app.HasUnansweredRFE())

	// No open RFE left to respond to.
	assert.False(t, tr.RespondToRFE(app.ID, filed.AddMonths(6)))
}

func TestDecideIsTerminal(t *testing.T) {
	tr := NewTracker(rng.NewSeeded(11), nil)
	app := tr.File("N-400", filed)
	require.NotNil(t, app)

	require.True(t, tr.Decide(app.ID, true, filed.AddMonths(14)))
	assert.Equal(t, StatusApproved, app.Status)

	// A decided application cannot be decided again or withdrawn.
	assert.False(t, tr.Decide(app.ID, false, filed.AddMonths(15)))
	assert.False(t, tr.Withdraw(app.ID, filed.AddMonths(15)))
	assert.Equal(t, StatusApproved, app.Status)
}

func TestActiveForForm(t *testing.T) {
	tr := NewTracker(rng.NewSeeded(13), nil)
	first := tr.File("I-765", filed)
	require.NotNil(t, first)
	require.True(t, tr.Decide(first.ID, false, filed.AddMonths(6)))

	second := tr.File("I-765", filed.AddMonths(7))
	require.NotNil(t, second)

	active := tr.ActiveForForm("I-765")
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)
	assert.Nil(t, tr.ActiveForForm("I-131"))
}

func TestTotalFeesPaid(t *testing.T) {
	tr := NewTracker(rng.NewSeeded(17), nil)
	tr.File("I-130", filed)
	tr.File("I-485", filed)
	assert.Equal(t, 535+1140+85, tr.TotalFeesPaid())
}
