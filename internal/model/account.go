package model

import (
	"errors"
	"fmt"
	"strings"
)

// Account errors.
var (
	ErrInvalidAccount = errors.New("invalid account")
	ErrUnknownStatus  = errors.New("unknown account status")
	ErrPhaseOverlap   = errors.New("ppf phase overlaps an existing phase")
)

// AccountStatus is the lifecycle state of a deposit, PPF or insurance account.
type AccountStatus string

// Account status constants.
const (
	StatusActive    AccountStatus = "Active"
	StatusMatured   AccountStatus = "Matured"
	StatusPremature AccountStatus = "Premature"
	StatusClosed    AccountStatus = "Closed"
	StatusExpired   AccountStatus = "Expired"
	StatusCancelled AccountStatus = "Cancelled"
)

// AccountStatuses lists every valid status in display order.
var AccountStatuses = []AccountStatus{
	StatusActive, StatusMatured, StatusPremature, StatusClosed, StatusExpired, StatusCancelled,
}

// ParseAccountStatus matches s case-insensitively against the known statuses.
func ParseAccountStatus(s string) (AccountStatus, error) {
	for _, status := range AccountStatuses {
		if strings.EqualFold(strings.TrimSpace(s), string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// IsOpen reports whether the account still accrues.
func (s AccountStatus) IsOpen() bool {
	return s == StatusActive || s == ""
}

// FixedDeposit is a lump-sum deposit with optional periodic interest payout.
// PayoutMonths of 0 means cumulative (interest compounds quarterly, paid at maturity).
type FixedDeposit struct {
	StartDate    Date          `json:"start_date"`
	ID           string        `json:"id,omitempty"`
	Bank         string        `json:"bank_name"`
	Status       AccountStatus `json:"status"`
	Principal    float64       `json:"principal"`
	Rate         float64       `json:"interest_rate"`
	TenureMonths int           `json:"tenure_months"`
	PayoutMonths int           `json:"payout_months,omitempty"`
}

// MaturityDate is StartDate plus the tenure.
func (f FixedDeposit) MaturityDate() Date {
	return f.StartDate.AddMonths(f.TenureMonths)
}

// Validate checks required fields.
func (f FixedDeposit) Validate() error {
	switch {
	case f.Bank == "":
		return fmt.Errorf("%w: bank name is required", ErrInvalidAccount)
	case f.Principal <= 0:
		return fmt.Errorf("%w: principal must be positive", ErrInvalidAccount)
	case f.Rate <= 0:
		return fmt.Errorf("%w: interest rate must be positive", ErrInvalidAccount)
	case f.TenureMonths <= 0:
		return fmt.Errorf("%w: tenure must be positive", ErrInvalidAccount)
	case f.PayoutMonths < 0 || (f.PayoutMonths > 0 && 12%f.PayoutMonths != 0):
		return fmt.Errorf("%w: payout months must divide 12, got %d", ErrInvalidAccount, f.PayoutMonths)
	case f.StartDate.IsZero():
		return fmt.Errorf("%w: start date is required", ErrInvalidAccount)
	}
	return nil
}

// Installment is one recorded RD deposit.
type Installment struct {
	Date   Date    `json:"date"`
	Amount float64 `json:"amount"`
}

// RecurringDeposit is a monthly deposit account.
type RecurringDeposit struct {
	StartDate         Date          `json:"start_date"`
	ID                string        `json:"id,omitempty"`
	Bank              string        `json:"bank_name"`
	Status            AccountStatus `json:"status"`
	Installments      []Installment `json:"installments,omitempty"`
	MonthlyAmount     float64       `json:"monthly_amount"`
	Rate              float64       `json:"interest_rate"`
	TenureMonths      int           `json:"tenure_months"`
	CompoundingMonths int           `json:"compounding_months,omitempty"`
}

// Validate checks required fields.
func (r RecurringDeposit) Validate() error {
	switch {
	case r.Bank == "":
		return fmt.Errorf("%w: bank name is required", ErrInvalidAccount)
	case r.MonthlyAmount <= 0:
		return fmt.Errorf("%w: monthly amount must be positive", ErrInvalidAccount)
	case r.Rate <= 0:
		return fmt.Errorf("%w: interest rate must be positive", ErrInvalidAccount)
	case r.TenureMonths <= 0:
		return fmt.Errorf("%w: tenure must be positive", ErrInvalidAccount)
	case r.StartDate.IsZero():
		return fmt.Errorf("%w: start date is required", ErrInvalidAccount)
	}
	return nil
}

// Deposited sums the recorded installments.
func (r RecurringDeposit) Deposited() float64 {
	total := 0.0
	for _, inst := range r.Installments {
		total += inst.Amount
	}
	return total
}

// Contribution is one recorded PPF deposit.
type Contribution struct {
	Date   Date    `json:"date"`
	Remark string  `json:"remark,omitempty"`
	Amount float64 `json:"amount"`
}

// PPFPhase is a time-bounded recurring contribution plan. End is nil while open.
type PPFPhase struct {
	Start     Date      `json:"start_date"`
	End       *Date     `json:"end_date,omitempty"`
	Frequency Frequency `json:"frequency"`
	Amount    float64   `json:"amount"`
}

// Covers reports whether d falls inside the phase.
func (p PPFPhase) Covers(d Date) bool {
	if d.Before(p.Start) {
		return false
	}
	return p.End == nil || d.Before(*p.End)
}

// PPFAccount is a Public Provident Fund account.
type PPFAccount struct {
	StartDate     Date           `json:"start_date"`
	ID            string         `json:"id,omitempty"`
	Holder        string         `json:"account_holder"`
	Bank          string         `json:"bank_name,omitempty"`
	Status        AccountStatus  `json:"status"`
	Contributions []Contribution `json:"contributions,omitempty"`
	Phases        []PPFPhase     `json:"sip_phases,omitempty"`
	Rate          float64        `json:"interest_rate"`
	TenureYears   int            `json:"tenure_years"`
}

// Validate checks required fields.
func (a PPFAccount) Validate() error {
	switch {
	case a.Holder == "":
		return fmt.Errorf("%w: account holder is required", ErrInvalidAccount)
	case a.Rate <= 0:
		return fmt.Errorf("%w: interest rate must be positive", ErrInvalidAccount)
	case a.TenureYears <= 0:
		return fmt.Errorf("%w: tenure must be positive", ErrInvalidAccount)
	case a.StartDate.IsZero():
		return fmt.Errorf("%w: start date is required", ErrInvalidAccount)
	}
	return nil
}

// AddPhase appends a contribution phase. An open prior phase is closed at the
// new phase's start date so that phases never overlap.
func (a *PPFAccount) AddPhase(phase PPFPhase) error {
	if phase.Amount <= 0 {
		return fmt.Errorf("%w: phase amount must be positive", ErrInvalidAccount)
	}
	if phase.Start.IsZero() {
		return fmt.Errorf("%w: phase start date is required", ErrInvalidAccount)
	}
	if phase.End != nil && !phase.End.After(phase.Start) {
		return fmt.Errorf("%w: phase must end after it starts", ErrInvalidAccount)
	}

	for _, existing := range a.Phases {
		if !phase.Start.After(existing.Start) {
			return fmt.Errorf("%w: new phase starts %s, existing phase starts %s", ErrPhaseOverlap, phase.Start, existing.Start)
		}
		if existing.End != nil && phase.Start.Before(*existing.End) {
			return fmt.Errorf("%w: existing phase runs until %s", ErrPhaseOverlap, *existing.End)
		}
	}

	for i := range a.Phases {
		if a.Phases[i].End == nil {
			end := phase.Start
			a.Phases[i].End = &end
		}
	}
	a.Phases = append(a.Phases, phase)
	return nil
}

// ActivePhase returns the phase covering d, if any.
func (a PPFAccount) ActivePhase(d Date) (PPFPhase, bool) {
	for _, p := range a.Phases {
		if p.Covers(d) {
			return p, true
		}
	}
	return PPFPhase{}, false
}

// Contributed sums recorded contributions.
func (a PPFAccount) Contributed() float64 {
	total := 0.0
	for _, c := range a.Contributions {
		total += c.Amount
	}
	return total
}

// InsurancePolicy is a life or health policy.
type InsurancePolicy struct {
	StartDate        Date          `json:"start_date"`
	EndDate          Date          `json:"end_date"`
	ID               string        `json:"id,omitempty"`
	Provider         string        `json:"provider"`
	PolicyName       string        `json:"policy_name"`
	PolicyNumber     string        `json:"policy_number,omitempty"`
	PolicyType       string        `json:"policy_type"`
	PremiumFrequency Frequency     `json:"premium_frequency"`
	Status           AccountStatus `json:"status"`
	Premium          float64       `json:"premium"`
	SumAssured       float64       `json:"sum_assured"`
}

// Validate checks required fields.
func (p InsurancePolicy) Validate() error {
	switch {
	case p.Provider == "":
		return fmt.Errorf("%w: provider is required", ErrInvalidAccount)
	case p.PolicyName == "":
		return fmt.Errorf("%w: policy name is required", ErrInvalidAccount)
	case p.Premium <= 0:
		return fmt.Errorf("%w: premium must be positive", ErrInvalidAccount)
	case p.SumAssured <= 0:
		return fmt.Errorf("%w: sum assured must be positive", ErrInvalidAccount)
	case p.StartDate.IsZero():
		return fmt.Errorf("%w: start date is required", ErrInvalidAccount)
	case !p.EndDate.IsZero() && !p.EndDate.After(p.StartDate):
		return fmt.Errorf("%w: end date must be after start date", ErrInvalidAccount)
	}
	return nil
}
