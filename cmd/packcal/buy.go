package main

import (
	"fmt"

	"github.com/Veraticus/packcal/internal/calendar"
	"github.com/Veraticus/packcal/internal/cli"
	"github.com/Veraticus/packcal/internal/common"
	"github.com/Veraticus/packcal/internal/cooldown"
	"github.com/Veraticus/packcal/internal/model"
	"github.com/spf13/cobra"
)

func buyCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "buy <pack-id>",
		Short: "Mark a pack as bought",
		Long: `Record a purchase of the pack now. The purchase is refused when the pack's
buy limit for the current reset window is already used up.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			pack, ok := s.merged.PackByID(args[0])
			if !ok {
				return fmt.Errorf("%w: %q", common.ErrUnknownPack, args[0])
			}

			st := cooldown.PurchaseStatus(pack, s.now, s.purchases)
			if !st.Available && !force {
				return lockedError(pack, st)
			}

			if err := s.store.RecordPurchase(cmd.Context(), model.NewPurchaseRecord(pack.ID, s.now)); err != nil {
				return fmt.Errorf("failed to record purchase: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Bought %s (%d/%d this period)", pack.Name, st.Used+1, st.Limit)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "record the purchase even if the pack is locked")

	return cmd
}

func lockedError(pack model.PackDefinition, st cooldown.Status) error {
	msg := fmt.Sprintf("%s is locked: %d/%d purchases this period", pack.Name, st.Used, st.Limit)
	if st.NextReset != nil {
		msg += fmt.Sprintf(", resets %s UTC", calendar.FormatBoundary(*st.NextReset))
	}
	return common.NewUserError(msg, common.ErrPackLocked)
}
