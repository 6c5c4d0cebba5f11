package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/packcal/internal/cli"
	"github.com/Veraticus/packcal/internal/common"
	"github.com/Veraticus/packcal/internal/dataset"
	"github.com/Veraticus/packcal/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Edit the local dataset override",
		Long: `Local edits are stored as an override dataset. Packs and rules in the override
replace base dataset entries with the same ID; everything else is added.`,
	}

	packs := &cobra.Command{
		Use:   "packs",
		Short: "List and edit packs",
	}
	packs.AddCommand(adminPacksListCmd())
	packs.AddCommand(adminPacksSetCmd())

	rules := &cobra.Command{
		Use:   "rules",
		Short: "List and edit schedule rules",
	}
	rules.AddCommand(adminRulesListCmd())
	rules.AddCommand(adminRulesSetCmd())

	override := &cobra.Command{
		Use:   "override",
		Short: "Manage the override itself",
	}
	override.AddCommand(adminOverrideClearCmd())

	cmd.AddCommand(packs)
	cmd.AddCommand(rules)
	cmd.AddCommand(override)
	cmd.AddCommand(adminExportCmd())
	cmd.AddCommand(adminSummaryCmd())

	return cmd
}

func adminPacksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List packs of the merged dataset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if len(s.merged.PackDefs) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No packs found. Use 'packcal admin packs set' to add one."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Name"),
				headerStyle.Render("Reset"),
				headerStyle.Render("Limit"),
				headerStyle.Render("Price"))
			for _, p := range s.merged.PackDefs {
				price := cli.FormatPrice(p.Price)
				if price == "" {
					price = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", p.ID, p.Name, p.ResetPolicy().Type, p.Limit(), price)
			}
			return nil
		},
	}
}

func adminPacksSetCmd() *cobra.Command {
	var (
		in    dataset.PackInput
		price string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Add or replace a pack in the override",
		Example: `  packcal admin packs set --id gems-small --name "Small Gems" --price 4.99 \
    --reset weekly --buy-limit 2 --gives '[{"item":"gems","qty":500}]'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(price) != "" {
				v, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
				if err != nil {
					return common.NewUserError(fmt.Sprintf("Price must be a number, got %q.", price), common.ErrInvalidInput)
				}
				in.Price = &v
			}

			pack, err := dataset.BuildPack(in)
			if err != nil {
				return err
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ov := dataset.WithPack(dataset.EditableOverride(s.override, s.merged), pack)
			if err := s.store.SaveOverride(cmd.Context(), ov); err != nil {
				return fmt.Errorf("failed to save override: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Saved pack "+pack.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.ID, "id", "", "pack ID (required)")
	cmd.Flags().StringVar(&in.Name, "name", "", "display name (required)")
	cmd.Flags().StringVar(&in.Description, "desc", "", "description")
	cmd.Flags().StringVar(&price, "price", "", "price, e.g. 4.99")
	cmd.Flags().StringVar(&in.ResetType, "reset", "daily", "reset window (daily, weekly, monthly)")
	cmd.Flags().IntVar(&in.BuyLimit, "buy-limit", 1, "purchases allowed per reset window")
	cmd.Flags().StringVar(&in.GivesJSON, "gives", "[]", `fixed contents as a JSON array of {"item","qty"}`)
	cmd.Flags().StringVar(&in.ChooseJSON, "choose", "", `choose-from-pool contents as {"count":N,"pool":[...]}`)

	return cmd
}

func adminRulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rules of the first state range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			var rules []model.ScheduleRule
			if len(s.merged.StateRanges) > 0 {
				rules = s.merged.StateRanges[0].Rules
			}
			if len(rules) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No rules found. Use 'packcal admin rules set' to add one."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Title"),
				headerStyle.Render("Category"),
				headerStyle.Render("Days"),
				headerStyle.Render("Repeat"),
				headerStyle.Render("Packs"))
			for _, r := range rules {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d-%d\t%s\t%s\n",
					r.ID, r.DisplayTitle(), r.CategoryName(), r.StartDay, r.EndDay, repeatLabel(r.Repeat), strings.Join(r.Packs, ","))
			}
			return nil
		},
	}
}

func repeatLabel(rep *model.RepeatSpec) string {
	if rep == nil {
		return "every day"
	}
	switch rep.Freq {
	case model.RepeatWeekly:
		days := make([]string, 0, len(rep.On))
		for _, d := range rep.On {
			days = append(days, string(d))
		}
		return "weekly " + strings.Join(days, ",")
	case model.RepeatMonthly:
		return fmt.Sprintf("monthly day %d", rep.DayOfMonth())
	default:
		return string(rep.Freq)
	}
}

func adminRulesSetCmd() *cobra.Command {
	var in dataset.RuleInput

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Add or replace a weekly rule in the override",
		Example: `  packcal admin rules set --id monday-gems --title "Monday Gems" --category Shop \
    --weekday Mon --packs gems-small,gems-large --start-day 1 --end-day 30`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rule, err := dataset.BuildRule(in)
			if err != nil {
				return err
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			ov := dataset.WithRule(dataset.EditableOverride(s.override, s.merged), rule)
			if err := s.store.SaveOverride(cmd.Context(), ov); err != nil {
				return fmt.Errorf("failed to save override: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Saved rule "+rule.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.ID, "id", "", "rule ID (required)")
	cmd.Flags().StringVar(&in.Title, "title", "", "title (required)")
	cmd.Flags().StringVar(&in.Category, "category", "", "category (default "+model.DefaultCategory+")")
	cmd.Flags().StringVar(&in.Weekday, "weekday", "Mon", "weekday the rule repeats on (Mon..Sun)")
	cmd.Flags().StringVar(&in.PackIDs, "packs", "", "comma-separated pack IDs (required)")
	cmd.Flags().IntVar(&in.StartDay, "start-day", 1, "first state day of the window")
	cmd.Flags().IntVar(&in.EndDay, "end-day", 9999, "last state day of the window")

	return cmd
}

func adminOverrideClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Discard all local dataset edits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if !yes {
				ok, err := cli.NewPrompter(cmd.InOrStdin(), out).Confirm(ctx, "Discard the local dataset override?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Clear canceled.")
					return nil
				}
			}

			if err := store.ClearOverride(ctx); err != nil {
				return fmt.Errorf("failed to clear override: %w", err)
			}
			fmt.Fprintln(out, cli.FormatSuccess("Override cleared"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")

	return cmd
}

func adminExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the merged dataset as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			data, err := dataset.Encode(s.merged)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

func adminSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Count packs and rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox("Dataset", dataset.Summarize(s.merged, s.override != nil).String()))
			return nil
		},
	}
}
