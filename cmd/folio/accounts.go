package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/folio/internal/api"
	"github.com/Veraticus/folio/internal/common"
	"github.com/Veraticus/folio/internal/model"
)

// accountForm binds the flags of one account type and copies them onto a
// record. With all unset, only flags given on the command line are copied,
// which is how update edits an existing record.
type accountForm[T any] interface {
	bind(cmd *cobra.Command)
	apply(cmd *cobra.Command, rec *T, all bool) error
}

// accountKind describes the CRUD surface of one account type.
type accountKind[T any] struct {
	newForm  func() accountForm[T]
	validate func(T) error
	list     func(context.Context, *api.Client) ([]T, error)
	id       func(T) string
	add      func(*api.Client, context.Context, T) error
	update   func(*api.Client, context.Context, string, T) error
	remove   func(*api.Client, context.Context, string) error
	use      string
	noun     string
}

func (k accountKind[T]) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   k.use,
		Short: fmt.Sprintf("Manage %ss", k.noun),
	}
	cmd.AddCommand(k.addCmd())
	cmd.AddCommand(k.updateCmd())
	cmd.AddCommand(k.deleteCmd())
	return cmd
}

func (k accountKind[T]) addCmd() *cobra.Command {
	form := k.newForm()
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a " + k.noun,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rec T
			if err := form.apply(cmd, &rec, true); err != nil {
				return err
			}
			if err := invalid(k.validate(rec)); err != nil {
				return err
			}
			return withSession(cmd.Context(), func(s *session) error {
				return s.mutate(cmd.Context(), "Add "+k.noun, func(ctx context.Context) error {
					return k.add(s.client, ctx, rec)
				})
			})
		},
	}
	form.bind(cmd)
	return cmd
}

func (k accountKind[T]) updateCmd() *cobra.Command {
	form := k.newForm()
	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a " + k.noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withSession(cmd.Context(), func(s *session) error {
				rec, err := k.find(cmd.Context(), s.client, id)
				if err != nil {
					return err
				}
				if err := form.apply(cmd, &rec, false); err != nil {
					return err
				}
				if err := invalid(k.validate(rec)); err != nil {
					return err
				}
				return s.mutate(cmd.Context(), "Update "+k.noun, func(ctx context.Context) error {
					return k.update(s.client, ctx, id, rec)
				})
			})
		},
	}
	form.bind(cmd)
	return cmd
}

func (k accountKind[T]) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + k.noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withSession(cmd.Context(), func(s *session) error {
				return s.mutate(cmd.Context(), "Delete "+k.noun, func(ctx context.Context) error {
					return k.remove(s.client, ctx, id)
				})
			})
		},
	}
}

func (k accountKind[T]) find(ctx context.Context, client *api.Client, id string) (T, error) {
	var zero T
	records, err := k.list(ctx, client)
	if err != nil {
		return zero, common.NewUserError(fmt.Sprintf("Could not load %ss", k.noun), err)
	}
	for _, rec := range records {
		if k.id(rec) == id {
			return rec, nil
		}
	}
	return zero, common.NewUserError(fmt.Sprintf("No %s with id %s", k.noun, id), common.ErrNotFound)
}

// changed reports whether name should be copied onto the record.
func changed(cmd *cobra.Command, name string, all bool) bool {
	return all || cmd.Flags().Changed(name)
}

func applyDate(cmd *cobra.Command, name, value string, all bool, dst *model.Date) error {
	if !changed(cmd, name, all) {
		return nil
	}
	if value == "" {
		*dst = model.Date{}
		return nil
	}
	d, err := parseDateFlag(name, value)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func applyStatus(cmd *cobra.Command, value string, all bool, dst *model.AccountStatus) error {
	if !changed(cmd, "status", all) {
		return nil
	}
	status, err := model.ParseAccountStatus(value)
	if err != nil {
		return common.Validationf("%v", err)
	}
	*dst = status
	return nil
}

type fdForm struct {
	bank, start, status string
	principal, rate     float64
	tenure, payout      int
}

func (f *fdForm) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.bank, "bank", "", "bank name")
	cmd.Flags().StringVar(&f.start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.status, "status", string(model.StatusActive), "account status")
	cmd.Flags().Float64Var(&f.principal, "principal", 0, "amount deposited")
	cmd.Flags().Float64Var(&f.rate, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&f.tenure, "tenure-months", 12, "tenure in months")
	cmd.Flags().IntVar(&f.payout, "payout-months", 0, "interest payout interval in months (0 for cumulative)")
}

func (f *fdForm) apply(cmd *cobra.Command, fd *model.FixedDeposit, all bool) error {
	if changed(cmd, "bank", all) {
		fd.Bank = f.bank
	}
	if changed(cmd, "principal", all) {
		fd.Principal = f.principal
	}
	if changed(cmd, "rate", all) {
		fd.Rate = f.rate
	}
	if changed(cmd, "tenure-months", all) {
		fd.TenureMonths = f.tenure
	}
	if changed(cmd, "payout-months", all) {
		fd.PayoutMonths = f.payout
	}
	if err := applyStatus(cmd, f.status, all, &fd.Status); err != nil {
		return err
	}
	return applyDate(cmd, "start", f.start, all, &fd.StartDate)
}

type rdForm struct {
	bank, start, status string
	monthly, rate       float64
	tenure, compounding int
}

func (f *rdForm) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.bank, "bank", "", "bank name")
	cmd.Flags().StringVar(&f.start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.status, "status", string(model.StatusActive), "account status")
	cmd.Flags().Float64Var(&f.monthly, "monthly", 0, "monthly installment")
	cmd.Flags().Float64Var(&f.rate, "rate", 0, "annual interest rate in percent")
	cmd.Flags().IntVar(&f.tenure, "tenure-months", 12, "tenure in months")
	cmd.Flags().IntVar(&f.compounding, "compounding-months", 3, "compounding interval in months")
}

func (f *rdForm) apply(cmd *cobra.Command, rd *model.RecurringDeposit, all bool) error {
	if changed(cmd, "bank", all) {
		rd.Bank = f.bank
	}
	if changed(cmd, "monthly", all) {
		rd.MonthlyAmount = f.monthly
	}
	if changed(cmd, "rate", all) {
		rd.Rate = f.rate
	}
	if changed(cmd, "tenure-months", all) {
		rd.TenureMonths = f.tenure
	}
	if changed(cmd, "compounding-months", all) {
		rd.CompoundingMonths = f.compounding
	}
	if err := applyStatus(cmd, f.status, all, &rd.Status); err != nil {
		return err
	}
	return applyDate(cmd, "start", f.start, all, &rd.StartDate)
}

type ppfForm struct {
	holder, bank, start, status string
	rate                        float64
	years                       int
}

func (f *ppfForm) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.holder, "holder", "", "account holder")
	cmd.Flags().StringVar(&f.bank, "bank", "", "bank or post office")
	cmd.Flags().StringVar(&f.start, "start", "", "opening date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.status, "status", string(model.StatusActive), "account status")
	cmd.Flags().Float64Var(&f.rate, "rate", 7.1, "annual interest rate in percent")
	cmd.Flags().IntVar(&f.years, "tenure-years", 15, "tenure in years")
}

func (f *ppfForm) apply(cmd *cobra.Command, a *model.PPFAccount, all bool) error {
	if changed(cmd, "holder", all) {
		a.Holder = f.holder
	}
	if changed(cmd, "bank", all) {
		a.Bank = f.bank
	}
	if changed(cmd, "rate", all) {
		a.Rate = f.rate
	}
	if changed(cmd, "tenure-years", all) {
		a.TenureYears = f.years
	}
	if err := applyStatus(cmd, f.status, all, &a.Status); err != nil {
		return err
	}
	return applyDate(cmd, "start", f.start, all, &a.StartDate)
}

type insuranceForm struct {
	provider, name, number, kind string
	frequency, status            string
	start, end                   string
	premium, sumAssured          float64
}

func (f *insuranceForm) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.provider, "provider", "", "insurer")
	cmd.Flags().StringVar(&f.name, "name", "", "policy name")
	cmd.Flags().StringVar(&f.number, "number", "", "policy number")
	cmd.Flags().StringVar(&f.kind, "type", "Term", "policy type")
	cmd.Flags().StringVar(&f.frequency, "frequency", string(model.FrequencyYearly), "premium frequency")
	cmd.Flags().StringVar(&f.status, "status", string(model.StatusActive), "policy status")
	cmd.Flags().StringVar(&f.start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&f.premium, "premium", 0, "premium per payment")
	cmd.Flags().Float64Var(&f.sumAssured, "sum-assured", 0, "sum assured")
}

func (f *insuranceForm) apply(cmd *cobra.Command, p *model.InsurancePolicy, all bool) error {
	if changed(cmd, "provider", all) {
		p.Provider = f.provider
	}
	if changed(cmd, "name", all) {
		p.PolicyName = f.name
	}
	if changed(cmd, "number", all) {
		p.PolicyNumber = f.number
	}
	if changed(cmd, "type", all) {
		p.PolicyType = f.kind
	}
	if changed(cmd, "premium", all) {
		p.Premium = f.premium
	}
	if changed(cmd, "sum-assured", all) {
		p.SumAssured = f.sumAssured
	}
	if changed(cmd, "frequency", all) {
		freq, err := model.ParseFrequency(f.frequency)
		if err != nil {
			return common.Validationf("%v", err)
		}
		p.PremiumFrequency = freq
	}
	if err := applyStatus(cmd, f.status, all, &p.Status); err != nil {
		return err
	}
	if err := applyDate(cmd, "start", f.start, all, &p.StartDate); err != nil {
		return err
	}
	return applyDate(cmd, "end", f.end, all, &p.EndDate)
}

func fdCmd() *cobra.Command {
	return accountKind[model.FixedDeposit]{
		use:      "fd",
		noun:     "fixed deposit",
		newForm:  func() accountForm[model.FixedDeposit] { return &fdForm{} },
		validate: model.FixedDeposit.Validate,
		id:       func(fd model.FixedDeposit) string { return fd.ID },
		list: func(ctx context.Context, c *api.Client) ([]model.FixedDeposit, error) {
			sum, err := c.FDSummary(ctx)
			if err != nil {
				return nil, err
			}
			return sum.Deposits, nil
		},
		add:    (*api.Client).AddFD,
		update: (*api.Client).UpdateFD,
		remove: (*api.Client).DeleteFD,
	}.command()
}

func rdCmd() *cobra.Command {
	kind := accountKind[model.RecurringDeposit]{
		use:      "rd",
		noun:     "recurring deposit",
		newForm:  func() accountForm[model.RecurringDeposit] { return &rdForm{} },
		validate: model.RecurringDeposit.Validate,
		id:       func(rd model.RecurringDeposit) string { return rd.ID },
		list: func(ctx context.Context, c *api.Client) ([]model.RecurringDeposit, error) {
			sum, err := c.RDSummary(ctx)
			if err != nil {
				return nil, err
			}
			return sum.Deposits, nil
		},
		add:    (*api.Client).AddRD,
		update: (*api.Client).UpdateRD,
		remove: (*api.Client).DeleteRD,
	}
	cmd := kind.command()
	cmd.AddCommand(rdInstallmentCmd())
	return cmd
}

func ppfCmd() *cobra.Command {
	kind := accountKind[model.PPFAccount]{
		use:      "ppf",
		noun:     "PPF account",
		newForm:  func() accountForm[model.PPFAccount] { return &ppfForm{} },
		validate: model.PPFAccount.Validate,
		id:       func(a model.PPFAccount) string { return a.ID },
		list:     listPPF,
		add:      (*api.Client).AddPPF,
		update:   (*api.Client).UpdatePPF,
		remove:   (*api.Client).DeletePPF,
	}
	cmd := kind.command()
	cmd.AddCommand(ppfContributeCmd())
	cmd.AddCommand(ppfPhaseCmd(kind))
	return cmd
}

func insuranceCmd() *cobra.Command {
	return accountKind[model.InsurancePolicy]{
		use:      "insurance",
		noun:     "insurance policy",
		newForm:  func() accountForm[model.InsurancePolicy] { return &insuranceForm{} },
		validate: model.InsurancePolicy.Validate,
		id:       func(p model.InsurancePolicy) string { return p.ID },
		list: func(ctx context.Context, c *api.Client) ([]model.InsurancePolicy, error) {
			sum, err := c.InsuranceSummary(ctx)
			if err != nil {
				return nil, err
			}
			return sum.Policies, nil
		},
		add:    (*api.Client).AddInsurance,
		update: (*api.Client).UpdateInsurance,
		remove: (*api.Client).DeleteInsurance,
	}.command()
}

func listPPF(ctx context.Context, c *api.Client) ([]model.PPFAccount, error) {
	sum, err := c.PPFSummary(ctx)
	if err != nil {
		return nil, err
	}
	return sum.Accounts, nil
}

func rdInstallmentCmd() *cobra.Command {
	var inst model.Installment
	var date string

	cmd := &cobra.Command{
		Use:   "installment ID",
		Short: "Record an RD installment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if inst.Date, err = parseDateFlag("date", date); err != nil {
				return err
			}
			if inst.Amount <= 0 {
				return common.Validationf("installment amount must be positive")
			}
			id := args[0]
			return withSession(cmd.Context(), func(s *session) error {
				return s.mutate(cmd.Context(), "RD installment", func(ctx context.Context) error {
					return s.client.AddRDInstallment(ctx, id, inst)
				})
			})
		},
	}

	cmd.Flags().Float64Var(&inst.Amount, "amount", 0, "amount deposited")
	cmd.Flags().StringVar(&date, "date", "", "deposit date (YYYY-MM-DD, default today)")
	return cmd
}

func ppfContributeCmd() *cobra.Command {
	var c model.Contribution
	var date string

	cmd := &cobra.Command{
		Use:   "contribute ID",
		Short: "Record a PPF contribution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if c.Date, err = parseDateFlag("date", date); err != nil {
				return err
			}
			if c.Amount <= 0 {
				return common.Validationf("contribution amount must be positive")
			}
			id := args[0]
			return withSession(cmd.Context(), func(s *session) error {
				return s.mutate(cmd.Context(), "PPF contribution", func(ctx context.Context) error {
					return s.client.AddPPFContribution(ctx, id, c)
				})
			})
		},
	}

	cmd.Flags().Float64Var(&c.Amount, "amount", 0, "amount deposited")
	cmd.Flags().StringVar(&c.Remark, "remark", "", "note stored with the contribution")
	cmd.Flags().StringVar(&date, "date", "", "deposit date (YYYY-MM-DD, default today)")
	return cmd
}

func ppfPhaseCmd(kind accountKind[model.PPFAccount]) *cobra.Command {
	var start, frequency string
	var amount float64

	cmd := &cobra.Command{
		Use:   "phase ID",
		Short: "Start a new recurring contribution phase",
		Long: `Start a new recurring contribution phase. The open phase, if any, ends
on the new phase's start date; phases never overlap.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDateFlag("start", start)
			if err != nil {
				return err
			}
			freq, err := model.ParseFrequency(frequency)
			if err != nil {
				return common.Validationf("%v", err)
			}
			id := args[0]

			return withSession(cmd.Context(), func(s *session) error {
				account, err := kind.find(cmd.Context(), s.client, id)
				if err != nil {
					return err
				}
				if err := invalid(account.AddPhase(model.PPFPhase{Start: startDate, Frequency: freq, Amount: amount})); err != nil {
					return err
				}
				return s.mutate(cmd.Context(), "PPF phase", func(ctx context.Context) error {
					return s.client.UpdatePPF(ctx, id, account)
				})
			})
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "phase start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&frequency, "frequency", string(model.FrequencyMonthly), "contribution frequency")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount per contribution")
	return cmd
}
