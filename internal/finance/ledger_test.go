package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/pending/internal/clock"
)

var testDate = clock.GameDate{Day: 31, Month: 1, Year: 2024}

func newTestLedger(balance, income, expenses, debt int) *Ledger {
	l := NewLedger()
	var recurring []RecurringExpense
	if expenses > 0 {
		recurring = []RecurringExpense{
			{ID: "rent", Name: "Rent and utilities", Amount: expenses, Category: "housing", IsRequired: true},
		}
	}
	l.Initialize(balance, income, recurring, debt)
	return l
}

func TestMonthEndNetChange(t *testing.T) {
	l := newTestLedger(3200, 4000, 2800, 0)

	summary := l.ProcessMonthEnd(testDate)

	assert.Equal(t, 4400, l.Balance)
	assert.Equal(t, 4000, summary.TotalIncome)
	assert.Equal(t, 2800, summary.TotalExpenses)
	assert.Equal(t, 1200, summary.NetChange)
	assert.Equal(t, 4400, summary.EndingBalance)

	// Income and each recurring expense land as individual transactions.
	require.Len(t, l.History, 2)
	assert.Equal(t, TxIncome, l.History[0].Type)
	assert.Equal(t, 4000, l.History[0].Amount)
	assert.Equal(t, TxExpense, l.History[1].Type)
	assert.Equal(t, -2800, l.History[1].Amount)
}

func TestDebtInstallment(t *testing.T) {
	// 2% of 5000 is 100, below the 200 flat cap.
	l := newTestLedger(1000, 0, 0, 5000)
	assert.Equal(t, 100, l.MonthlyDebtPayment)

	// 2% of 50000 is 1000; the flat cap wins.
	l = newTestLedger(1000, 0, 0, 50000)
	assert.Equal(t, 200, l.MonthlyDebtPayment)

	l.ProcessMonthEnd(testDate)
	assert.Equal(t, 49800, l.Debt)
	assert.Equal(t, 800, l.Balance)

	last := l.History[len(l.History)-1]
	assert.Equal(t, TxDebtPayment, last.Type)
	assert.Equal(t, -200, last.Amount)
}

func TestDebtNeverGoesNegative(t *testing.T) {
	l := newTestLedger(1000, 0, 0, 5000)
	l.Debt = 40 // below one installment
	l.ProcessMonthEnd(testDate)
	assert.Equal(t, 0, l.Debt)
	assert.Equal(t, 960, l.Balance, "only the remaining debt is charged")
}

func TestPayFeeAtomicity(t *testing.T) {
	l := newTestLedger(500, 0, 0, 0)
	feeID := l.AddPendingFee(PendingFee{
		Type: FeeFiling, Amount: 700, Description: "I-485 filing fee",
	})

	// Cannot afford: everything stays untouched.
	require.False(t, l.PayFee(feeID, testDate))
	assert.Equal(t, 500, l.Balance)
	assert.Len(t, l.PendingFees, 1)
	assert.Empty(t, l.PaidFees)
	assert.Empty(t, l.History)
	assert.Equal(t, 0, l.TotalImmigrationSpending)

	// Top up and pay.
	l.AddIncome(300, "Side gig", testDate)
	require.True(t, l.PayFee(feeID, testDate))
	assert.Equal(t, 100, l.Balance)
	assert.Empty(t, l.PendingFees)
	require.Len(t, l.PaidFees, 1)
	assert.True(t, l.PaidFees[0].IsPaid)
	assert.Equal(t, 700, l.TotalImmigrationSpending)

	// Exactly one fee transaction was recorded.
	feeTxs := 0
	for _, tx := range l.History {
		if tx.Type == TxImmigrationFee {
			feeTxs++
		}
	}
	assert.Equal(t, 1, feeTxs)

	// Paying the same fee again fails; it is gone from pending.
	assert.False(t, l.PayFee(feeID, testDate))
}

func TestPayFeeUnknownID(t *testing.T) {
	l := newTestLedger(5000, 0, 0, 0)
	assert.False(t, l.PayFee("nope", testDate))
	assert.Equal(t, 5000, l.Balance)
}

func TestLegalFeeCategorized(t *testing.T) {
	l := newTestLedger(5000, 0, 0, 0)
	feeID := l.AddPendingFee(PendingFee{Type: FeeLegal, Amount: 1500, Description: "Retainer"})
	require.True(t, l.PayFee(feeID, testDate))
	last := l.History[len(l.History)-1]
	assert.Equal(t, TxLegalFee, last.Type)
	assert.Equal(t, "legal", last.Category)
}

func TestRemittanceGatedOnBalance(t *testing.T) {
	l := newTestLedger(300, 0, 0, 0)
	assert.False(t, l.SendRemittance(500, testDate))
	assert.Equal(t, 300, l.Balance)

	require.True(t, l.SendRemittance(200, testDate))
	assert.Equal(t, 100, l.Balance)
	assert.Equal(t, 200, l.TotalRemittancesSent)
}

func TestPeakAndLowestTrackEveryChange(t *testing.T) {
	l := newTestLedger(1000, 0, 0, 0)
	l.AddIncome(2000, "Bonus", testDate)
	assert.Equal(t, 3000, l.PeakBalance)

	l.AddExpense(3500, "Emergency", "medical", testDate)
	assert.Equal(t, -500, l.Balance, "balance may go negative through events")
	assert.Equal(t, -500, l.LowestBalance)
	assert.Equal(t, 3000, l.PeakBalance)
}

func TestRecurringExpenses(t *testing.T) {
	l := newTestLedger(1000, 3000, 0, 0)
	l.AddRecurring(RecurringExpense{Name: "Rent", Amount: 1500, Category: "housing"})
	l.AddRecurring(RecurringExpense{Name: "Phone", Amount: 60, Category: "utilities"})
	assert.Equal(t, 1440, l.MonthlyNet())

	var phoneID string
	for _, e := range l.Recurring {
		if e.Name == "Phone" {
			phoneID = e.ID
		}
	}
	require.NotEmpty(t, phoneID)
	l.RemoveRecurring(phoneID)
	assert.Equal(t, 1500, l.MonthlyNet())
}
