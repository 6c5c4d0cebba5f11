package main

import (
	"fmt"

	"github.com/Veraticus/packcal/internal/cli"
	"github.com/Veraticus/packcal/internal/common"
	"github.com/Veraticus/packcal/internal/view"
	"github.com/spf13/cobra"
)

func calendarCmd() *cobra.Command {
	var (
		viewName string
		date     string
		category string
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the pack calendar",
		Long: `Draw a month or week grid. Each day shows its state day and up to three
categories of the rules active that day.`,
		Aliases: []string{"cal"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, ok := view.ParseMode(viewName)
			if !ok {
				return common.NewUserError(fmt.Sprintf("Unknown view %q (expected month or week).", viewName), common.ErrInvalidInput)
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			selected, err := parseLocalDate(date, s.now)
			if err != nil {
				return err
			}
			if category == "" {
				category = defaultCategory()
			}

			st := viewState(s, selected, mode, category)
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderCalendar(view.BuildCalendar(st, s.merged, s.now)))
			if !s.anchor.IsSet() {
				fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render(view.MsgNoStateDay))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&viewName, "view", "month", "calendar layout (month, week)")
	cmd.Flags().StringVar(&date, "date", "", "date to show and select (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&category, "category", "", "only show rules in this category (default all)")

	return cmd
}

func dayCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Show the packs offered on a day",
		Long: `List every rule active on the given day (default today) with its packs,
their contents, and how many purchases remain in the current reset window.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			var date string
			if len(args) == 1 {
				date = args[0]
			}
			selected, err := parseLocalDate(date, s.now)
			if err != nil {
				return err
			}
			if category == "" {
				category = defaultCategory()
			}

			st := viewState(s, selected, view.ModeMonth, category)
			fmt.Fprint(cmd.OutOrStdout(), cli.RenderDetail(view.BuildDetail(st, s.merged, s.purchases, s.now)))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only show rules in this category (default all)")

	return cmd
}
