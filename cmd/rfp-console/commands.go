package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "rfp-console/internal/common/errors"
	"rfp-console/internal/common/viewstate"
	proposalcomparison "rfp-console/internal/views/proposal-comparison"
	rfpdashboard "rfp-console/internal/views/rfp-dashboard"
	rfpform "rfp-console/internal/views/rfp-form"
	vendormanager "rfp-console/internal/views/vendor-manager"
)

// failure turns a failed view action into the error the command reports:
// field messages for rejected input, otherwise the view's alert.
func failure(b *viewstate.Base, err error) error {
	if fields := apperrors.FieldErrors(err); len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		msgs := make([]string, 0, len(keys))
		for _, k := range keys {
			msgs = append(msgs, fields[k])
		}
		return errors.New(strings.Join(msgs, " "))
	}
	if alert := b.TakeAlert(); alert != "" {
		return fmt.Errorf("%s: %w", alert, err)
	}
	return err
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}

// ==========================
// vendors
// ==========================

func vendorsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "List and register vendors",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered vendors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}
			defer a.close()

			h := vendormanager.NewHandler(vendormanager.LoadConfig(), a.client, a.log, nil)
			st := vendormanager.NewState()
			if err := h.Load(cmd.Context(), st); err != nil {
				return fmt.Errorf("fetch vendors: %w", err)
			}
			printVendors(cmd.OutOrStdout(), st)
			return nil
		},
	})

	var form vendormanager.Form
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a vendor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}
			defer a.close()

			h := vendormanager.NewHandler(vendormanager.LoadConfig(), a.client, a.log, nil)
			st := vendormanager.NewState()
			if err := h.Create(cmd.Context(), st, form); err != nil {
				return failure(&st.Base, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Vendor %q registered.\n", form.Name)
			printVendors(cmd.OutOrStdout(), st)
			return nil
		},
	}
	add.Flags().StringVar(&form.Name, "name", "", "Vendor name")
	add.Flags().StringVar(&form.Email, "email", "", "Vendor email")
	add.Flags().StringVar(&form.ContactPerson, "contact", "", "Contact person")
	cmd.AddCommand(add)

	return cmd
}

func printVendors(w io.Writer, st *vendormanager.State) {
	fmt.Fprintln(w, st.Heading())
	if len(st.Vendors) == 0 {
		fmt.Fprintln(w, vendormanager.EmptyListText)
		return
	}
	rows := make([][]string, 0, len(st.Vendors))
	for _, v := range st.Vendors {
		rows = append(rows, []string{strconv.FormatInt(v.ID, 10), v.Name, v.Email, v.ContactPerson})
	}
	renderTable(w, []string{"ID", "Name", "Email", "Contact"}, rows)
}

// ==========================
// rfps
// ==========================

func rfpsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rfps",
		Short: "Generate, list and send RFPs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List RFPs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}
			defer a.close()

			h := rfpdashboard.NewHandler(rfpdashboard.LoadConfig(), a.client, a.log, nil)
			st := rfpdashboard.NewState()
			if err := h.Load(cmd.Context(), st); err != nil {
				return fmt.Errorf("fetch RFPs: %w", err)
			}
			printRFPs(cmd.OutOrStdout(), st)
			return nil
		},
	})

	cmd.AddCommand(rfpsGenerateCmd(opts), rfpsSendCmd(opts))
	return cmd
}

func printRFPs(w io.Writer, st *rfpdashboard.State) {
	if len(st.RFPs) == 0 {
		fmt.Fprintln(w, "No RFPs yet.")
		return
	}
	rows := make([][]string, 0, len(st.RFPs))
	for _, card := range st.Cards() {
		rows = append(rows, []string{
			strconv.FormatInt(card.ID, 10),
			truncateCell(card.Title, 40),
			strings.TrimPrefix(card.Status, "Status: "),
			strings.TrimPrefix(card.Budget, "Budget: "),
		})
	}
	renderTable(w, []string{"ID", "Title", "Status", "Budget"}, rows)
}

func rfpsGenerateCmd(opts *globalOptions) *cobra.Command {
	var (
		title, description, budget, currency string
		save                                 bool
	)

	cmd := &cobra.Command{
		Use:   "generate <request>",
		Short: "Structure a plain-language request into an RFP draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}
			defer a.close()

			h := rfpform.NewHandler(rfpform.LoadConfig(), a.client, a.log, nil)
			st := rfpform.NewState()
			if err := h.Generate(cmd.Context(), st, args[0]); err != nil {
				if apperrors.IsValidation(err) {
					return failure(&st.Base, err)
				}
				return fmt.Errorf("generate RFP: %w", err)
			}

			edit := rfpform.Edit{}
			flags := cmd.Flags()
			if flags.Changed("title") {
				edit.Title = &title
			}
			if flags.Changed("description") {
				edit.Description = &description
			}
			if flags.Changed("budget") {
				edit.Budget = &budget
			}
			if flags.Changed("currency") {
				edit.Currency = &currency
			}
			h.ApplyEdit(st, edit)

			out := cmd.OutOrStdout()
			printDraft(out, st.Draft)
			if !save {
				return nil
			}
			if err := h.Save(cmd.Context(), st); err != nil {
				return failure(&st.Base, err)
			}
			fmt.Fprintln(out, st.TakeAlert())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Override the generated title")
	cmd.Flags().StringVar(&description, "description", "", "Override the generated description")
	cmd.Flags().StringVar(&budget, "budget", "", "Override the generated budget")
	cmd.Flags().StringVar(&currency, "currency", "", "Override the generated currency")
	cmd.Flags().BoolVar(&save, "save", false, "Save the draft as a new RFP")
	return cmd
}

func printDraft(w io.Writer, d *rfpform.Draft) {
	if d.Degraded() {
		fmt.Fprintf(w, "[%s] %s\n", rfpform.DegradedBadge, d.ErrorText())
	}
	budget := d.Budget
	if budget == "" {
		budget = rfpform.BudgetPlaceholder
	}
	rows := [][]string{
		{"Title", d.Title},
		{"Description", truncateCell(d.Description, 60)},
		{"Budget", budget},
		{"Currency", d.CurrencyText()},
	}
	for i, req := range d.Requirements {
		rows = append(rows, []string{fmt.Sprintf("Requirement %d", i+1), truncateCell(req, 60)})
	}
	renderTable(w, []string{"Field", "Value"}, rows)
}

func rfpsSendCmd(opts *globalOptions) *cobra.Command {
	var vendorIDs []int64

	cmd := &cobra.Command{
		Use:   "send <rfp-id>",
		Short: "Send an RFP to vendors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rfpID, err := parseID(args[0], "rfp")
			if err != nil {
				return err
			}

			a, err := opts.app()
			if err != nil {
				return err
			}
			defer a.close()

			h := rfpdashboard.NewHandler(rfpdashboard.LoadConfig(), a.client, a.log, nil)
			st := rfpdashboard.NewState()
			if err := h.Load(cmd.Context(), st); err != nil {
				return fmt.Errorf("fetch RFPs: %w", err)
			}
			if err := h.OpenSend(st, rfpID); err != nil {
				return err
			}
			h.Select(st, vendorIDs)
			if err := h.Confirm(cmd.Context(), st); err != nil {
				return failure(&st.Base, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, st.TakeAlert())
			printRFPs(out, st)
			return nil
		},
	}

	cmd.Flags().Int64SliceVar(&vendorIDs, "vendor", nil, "Vendor id to send to (repeatable)")
	return cmd
}

// ==========================
// proposals
// ==========================

func proposalsCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposals",
		Short: "Submit, list and compare vendor proposals",
	}

	// load prepares the comparison view for one RFP.
	load := func(cmd *cobra.Command, a *app, arg string) (*proposalcomparison.Handler, *proposalcomparison.State, error) {
		rfpID, err := parseID(arg, "rfp")
		if err != nil {
			return nil, nil, err
		}
		h := proposalcomparison.NewHandler(proposalcomparison.LoadConfig(), a.client, a.log, nil)
		st := proposalcomparison.NewState()
		st.SelectedRFPID = rfpID
		if err := h.Load(cmd.Context(), st); err != nil {
			return nil, nil, fmt.Errorf("load proposals: %w", err)
		}
		return h, st, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <rfp-id>",
		Short: "List the analyzed proposals of an RFP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}
			defer a.close()

			_, st, err := load(cmd, a, args[0])
			if err != nil {
				return err
			}
			printProposals(cmd.OutOrStdout(), st)
			return nil
		},
	})

	var (
		vendorID int64
		text     string
	)
	submit := &cobra.Command{
		Use:   "submit <rfp-id>",
		Short: "Submit a vendor's reply for analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}
			defer a.close()

			h, st, err := load(cmd, a, args[0])
			if err != nil {
				return err
			}
			if err := h.Submit(cmd.Context(), st, vendorID, text); err != nil {
				return failure(&st.Base, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, st.TakeAlert())
			printProposals(out, st)
			return nil
		},
	}
	submit.Flags().Int64Var(&vendorID, "vendor", 0, "Vendor id")
	submit.Flags().StringVar(&text, "text", "", "Proposal text as received from the vendor")
	cmd.AddCommand(submit)

	cmd.AddCommand(&cobra.Command{
		Use:   "compare <rfp-id>",
		Short: "Compare all proposals of an RFP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}
			defer a.close()

			h, st, err := load(cmd, a, args[0])
			if err != nil {
				return err
			}
			if err := h.Compare(cmd.Context(), st); err != nil {
				return failure(&st.Base, err)
			}
			printComparison(cmd.OutOrStdout(), st)
			return nil
		},
	})

	return cmd
}

func printProposals(w io.Writer, st *proposalcomparison.State) {
	fmt.Fprintln(w, st.ProposalsHeading())
	cards := st.Cards()
	if len(cards) == 0 {
		fmt.Fprintln(w, proposalcomparison.NoProposalsText)
		return
	}
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{
			c.Vendor,
			strings.TrimPrefix(c.Score, "AI Score: "),
			c.Price,
			strings.TrimPrefix(c.Timeline, "Timeline: "),
			truncateCell(c.Pros, 30),
			truncateCell(c.Cons, 30),
		})
	}
	renderTable(w, []string{"Vendor", "AI Score", "Price", "Timeline", "Pros", "Cons"}, rows)
}

func printComparison(w io.Writer, st *proposalcomparison.State) {
	c := st.Comparison
	fmt.Fprintf(w, "Recommendation: %s\n", c.Recommendation)
	if c.BestVendorName != "" {
		fmt.Fprintf(w, "Best vendor: %s\n", c.BestVendorName)
	}
	rows := make([][]string, 0, len(c.ComparisonMatrix))
	for _, r := range st.Matrix() {
		mark := ""
		if r.Best {
			mark = "*"
		}
		rows = append(rows, []string{mark, r.Vendor, r.Score, r.PriceRanking, truncateCell(r.Strengths, 30), truncateCell(r.Weaknesses, 30)})
	}
	renderTable(w, []string{"", "Vendor", "Score", "Price Rank", "Strengths", "Weaknesses"}, rows)
}
