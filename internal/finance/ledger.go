// Package finance owns the money side of the simulation: balance, recurring
// expenses, immigration fees, debt amortization, and the transaction log.
package finance

import (
	"github.com/google/uuid"

	"github.com/talgya/pending/internal/clock"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TxIncome         TransactionType = "income"
	TxExpense        TransactionType = "expense"
	TxImmigrationFee TransactionType = "immigration-fee"
	TxLegalFee       TransactionType = "legal-fee"
	TxRemittance     TransactionType = "remittance"
	TxDebtPayment    TransactionType = "debt-payment"
)

// Transaction is an append-only ledger entry. Amount is signed: positive for
// income, negative for anything that leaves the account.
type Transaction struct {
	ID          string          `json:"id"`
	Date        clock.GameDate  `json:"date"`
	Type        TransactionType `json:"type"`
	Amount      int             `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
}

// RecurringExpense applies every month-end until removed.
type RecurringExpense struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Amount     int    `json:"amount"`
	Category   string `json:"category"`
	IsRequired bool   `json:"is_required"`
}

// FeeType classifies a pending fee.
type FeeType string

const (
	FeeFiling      FeeType = "filing"
	FeeBiometrics  FeeType = "biometrics"
	FeeLegal       FeeType = "legal"
	FeeExpedite    FeeType = "expedite"
	FeeDocument    FeeType = "document"
	FeeTranslation FeeType = "translation"
)

// PendingFee transitions pending -> paid exactly once. Paying fails when the
// balance cannot cover it; that refusal is simulation feedback, not an error.
type PendingFee struct {
	ID          string          `json:"id"`
	FormID      string          `json:"form_id,omitempty"`
	Type        FeeType         `json:"type"`
	Amount      int             `json:"amount"`
	Description string          `json:"description"`
	DueDate     *clock.GameDate `json:"due_date,omitempty"`
	IsPaid      bool            `json:"is_paid"`
}

// MonthlySummary is the record emitted by month-end processing.
type MonthlySummary struct {
	Month            int `json:"month"`
	Year             int `json:"year"`
	TotalIncome      int `json:"total_income"`
	TotalExpenses    int `json:"total_expenses"`
	ImmigrationCosts int `json:"immigration_costs"`
	Remittances      int `json:"remittances"`
	NetChange        int `json:"net_change"`
	EndingBalance    int `json:"ending_balance"`
}

// Ledger owns all financial state. Balance may legitimately go negative
// through event outcomes; only explicit fee payments and remittances are
// gated on the balance.
type Ledger struct {
	Balance       int    `json:"balance"`
	MonthlyIncome int    `json:"monthly_income"`
	IncomeSource  string `json:"income_source"`

	Recurring []RecurringExpense `json:"recurring_expenses"`

	PendingFees []PendingFee `json:"pending_fees"`
	PaidFees    []PendingFee `json:"paid_fees"`

	Debt               int `json:"debt"`
	MonthlyDebtPayment int `json:"monthly_debt_payment"`

	History   []Transaction    `json:"transactions"`
	Summaries []MonthlySummary `json:"monthly_summaries"`

	TotalImmigrationSpending int `json:"total_immigration_spending"`
	TotalRemittancesSent     int `json:"total_remittances_sent"`
	PeakBalance              int `json:"peak_balance"`
	LowestBalance            int `json:"lowest_balance"`

	// Debt amortization knobs; the monthly installment is the smaller of
	// rate x original debt and the flat amount.
	DebtInstallmentRate float64 `json:"-"`
	DebtInstallmentFlat int     `json:"-"`
}

// NewLedger returns an empty ledger with default amortization settings.
func NewLedger() *Ledger {
	return &Ledger{
		DebtInstallmentRate: 0.02,
		DebtInstallmentFlat: 200,
	}
}

// Initialize seeds the ledger at game start and fixes the monthly debt
// installment from the starting debt.
func (l *Ledger) Initialize(balance, income int, expenses []RecurringExpense, debt int) {
	l.Balance = balance
	l.MonthlyIncome = income
	l.Recurring = append([]RecurringExpense(nil), expenses...)
	l.Debt = debt
	l.MonthlyDebtPayment = 0
	if debt > 0 {
		installment := int(float64(debt) * l.DebtInstallmentRate)
		if installment > l.DebtInstallmentFlat {
			installment = l.DebtInstallmentFlat
		}
		l.MonthlyDebtPayment = installment
	}
	l.PeakBalance = balance
	l.LowestBalance = balance
}

// SetIncome updates the monthly income and its source label.
func (l *Ledger) SetIncome(amount int, source string) {
	l.MonthlyIncome = amount
	l.IncomeSource = source
}

// AddRecurring registers a monthly expense.
func (l *Ledger) AddRecurring(e RecurringExpense) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	l.Recurring = append(l.Recurring, e)
}

// RemoveRecurring drops a monthly expense by id.
func (l *Ledger) RemoveRecurring(id string) {
	kept := l.Recurring[:0]
	for _, e := range l.Recurring {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	l.Recurring = kept
}

// AddPendingFee registers a fee awaiting payment and returns its id.
func (l *Ledger) AddPendingFee(fee PendingFee) string {
	fee.ID = uuid.NewString()
	fee.IsPaid = false
	l.PendingFees = append(l.PendingFees, fee)
	return fee.ID
}

// trackBalance updates the running min/max after any balance change.
func (l *Ledger) trackBalance() {
	if l.Balance > l.PeakBalance {
		l.PeakBalance = l.Balance
	}
	if l.Balance < l.LowestBalance {
		l.LowestBalance = l.Balance
	}
}

// PayFee pays a pending fee. Returns false, leaving all state untouched,
// when the fee is unknown or the balance cannot cover it.
func (l *Ledger) PayFee(feeID string, date clock.GameDate) bool {
	idx := -1
	for i := range l.PendingFees {
		if l.PendingFees[i].ID == feeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	fee := l.PendingFees[idx]
	if l.Balance < fee.Amount {
		return false
	}

	txType := TxImmigrationFee
	category := "immigration"
	if fee.Type == FeeLegal {
		txType = TxLegalFee
		category = "legal"
	}

	l.Balance -= fee.Amount
	l.PendingFees = append(l.PendingFees[:idx], l.PendingFees[idx+1:]...)
	fee.IsPaid = true
	l.PaidFees = append(l.PaidFees, fee)
	l.History = append(l.History, Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Type:        txType,
		Amount:      -fee.Amount,
		Description: fee.Description,
		Category:    category,
	})
	l.TotalImmigrationSpending += fee.Amount
	l.trackBalance()
	return true
}

// AddTransaction appends a signed transaction and moves the balance.
func (l *Ledger) AddTransaction(tx Transaction) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	l.Balance += tx.Amount
	l.History = append(l.History, tx)
	l.trackBalance()
}

// AddIncome records a positive one-off transaction.
func (l *Ledger) AddIncome(amount int, description string, date clock.GameDate) {
	l.AddTransaction(Transaction{
		Date:        date,
		Type:        TxIncome,
		Amount:      amount,
		Description: description,
		Category:    "other",
	})
}

// AddExpense records a negative one-off transaction. The amount's sign is
// normalized; callers pass magnitudes.
func (l *Ledger) AddExpense(amount int, description, category string, date clock.GameDate) {
	if amount < 0 {
		amount = -amount
	}
	l.AddTransaction(Transaction{
		Date:        date,
		Type:        TxExpense,
		Amount:      -amount,
		Description: description,
		Category:    category,
	})
}

// SendRemittance transfers money home. Refused when the balance cannot
// cover it.
func (l *Ledger) SendRemittance(amount int, date clock.GameDate) bool {
	if l.Balance < amount {
		return false
	}
	l.Balance -= amount
	l.History = append(l.History, Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Type:        TxRemittance,
		Amount:      -amount,
		Description: "Remittance to family",
		Category:    "remittance",
	})
	l.TotalRemittancesSent += amount
	l.trackBalance()
	return true
}

// CanAfford reports whether the balance covers an amount.
func (l *Ledger) CanAfford(amount int) bool {
	return l.Balance >= amount
}

// MonthlyNet is income minus recurring expenses and the debt installment.
func (l *Ledger) MonthlyNet() int {
	total := 0
	for _, e := range l.Recurring {
		total += e.Amount
	}
	return l.MonthlyIncome - total - l.MonthlyDebtPayment
}

// ProcessMonthEnd applies monthly income, every recurring expense, and the
// debt installment as individual transactions, then emits a summary for the
// month that just closed. The controller calls this exactly once per crossed
// month boundary, including during quiet-period batch skips.
func (l *Ledger) ProcessMonthEnd(date clock.GameDate) MonthlySummary {
	totalExpenses := 0
	for _, e := range l.Recurring {
		totalExpenses += e.Amount
	}

	immigrationCosts := 0
	for _, f := range l.PendingFees {
		if f.DueDate != nil && f.DueDate.SameMonth(date) {
			immigrationCosts += f.Amount
		}
	}

	remittances := 0
	for _, tx := range l.History {
		if tx.Type == TxRemittance && tx.Date.SameMonth(date) {
			remittances += -tx.Amount
		}
	}

	source := l.IncomeSource
	if source == "" {
		source = "Employment"
	}
	l.AddTransaction(Transaction{
		Date:        date,
		Type:        TxIncome,
		Amount:      l.MonthlyIncome,
		Description: "Monthly income - " + source,
		Category:    "other",
	})
	for _, e := range l.Recurring {
		l.AddTransaction(Transaction{
			Date:        date,
			Type:        TxExpense,
			Amount:      -e.Amount,
			Description: e.Name,
			Category:    e.Category,
		})
	}

	installment := l.MonthlyDebtPayment
	if installment > l.Debt {
		installment = l.Debt
	}
	if installment > 0 {
		l.AddTransaction(Transaction{
			Date:        date,
			Type:        TxDebtPayment,
			Amount:      -installment,
			Description: "Debt payment",
			Category:    "debt",
		})
		l.Debt -= installment
	}

	summary := MonthlySummary{
		Month:            date.Month,
		Year:             date.Year,
		TotalIncome:      l.MonthlyIncome,
		TotalExpenses:    totalExpenses,
		ImmigrationCosts: immigrationCosts,
		Remittances:      remittances,
		NetChange:        l.MonthlyIncome - totalExpenses - installment,
		EndingBalance:    l.Balance,
	}
	l.Summaries = append(l.Summaries, summary)
	return summary
}
