package main

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/packcal/internal/calendar"
	"github.com/Veraticus/packcal/internal/cli"
	"github.com/Veraticus/packcal/internal/common"
	"github.com/Veraticus/packcal/internal/stateday"
	"github.com/spf13/cobra"
)

func anchorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anchor",
		Short: "Set how state days map to dates",
		Long: `The state day counter starts at 1. Anchor it either to a start date or by
telling packcal which state day today is. "anchor none" leaves every state day
undefined; "anchor clear" goes back to the default anchor.`,
	}

	cmd.AddCommand(anchorStartCmd())
	cmd.AddCommand(anchorTodayCmd())
	cmd.AddCommand(anchorNoneCmd())
	cmd.AddCommand(anchorShowCmd())
	cmd.AddCommand(anchorClearCmd())

	return cmd
}

func anchorStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <YYYY-MM-DD>",
		Short: "Make a UTC date state day 1",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := calendar.ParseDate(args[0])
			if err != nil {
				return common.NewUserError(fmt.Sprintf("Invalid date %q (expected YYYY-MM-DD).", args[0]), common.ErrInvalidInput)
			}
			return saveAnchor(cmd, stateday.StartDate(date))
		},
	}
}

func anchorTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today <state-day>",
		Short: "Say which state day today is",
		Long: `Record that today (UTC) is the given state day. The counter keeps advancing
one per UTC day from here.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return common.NewUserError(fmt.Sprintf("State day must be a positive integer, got %q.", args[0]), common.ErrInvalidInput)
			}
			return saveAnchor(cmd, stateday.TodayIs(n))
		},
	}
}

func anchorNoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "none",
		Short: "Leave state days undefined",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return saveAnchor(cmd, stateday.Anchor{})
		},
	}
}

func saveAnchor(cmd *cobra.Command, anchor stateday.Anchor) error {
	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	now := nowFunc()
	if err := store.SaveAnchor(ctx, anchor, now); err != nil {
		return fmt.Errorf("failed to save anchor: %w", err)
	}

	if !anchor.IsSet() {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Anchor saved: none (state days are undefined)"))
		return nil
	}

	msg := "Anchor saved: " + anchor.String()
	if sd, ok := stateday.Resolve(calendar.Midnight(now), anchor, now); ok {
		msg += fmt.Sprintf(" (today is State Day %d)", sd)
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg))
	return nil
}

func anchorShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current anchor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			now := nowFunc()
			anchor, stored, err := store.GetAnchor(ctx, now)
			if err != nil {
				return fmt.Errorf("failed to load anchor: %w", err)
			}

			out := cmd.OutOrStdout()
			if !stored {
				anchor = stateday.DefaultAnchor(now)
				fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("No anchor saved; defaulting to state day 1 = %d UTC days ago.", stateday.DefaultLookbackDays)))
			}
			fmt.Fprintf(out, "Anchor: %s\n", anchor)
			if sd, ok := stateday.Resolve(calendar.Midnight(now), anchor, now); ok {
				fmt.Fprintf(out, "Today:  State Day %d\n", sd)
			} else {
				fmt.Fprintln(out, "Today:  —")
			}
			return nil
		},
	}
}

func anchorClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the saved anchor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.ClearAnchor(ctx); err != nil {
				return fmt.Errorf("failed to clear anchor: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Anchor cleared"))
			return nil
		},
	}
}
