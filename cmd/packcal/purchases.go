package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Veraticus/packcal/internal/cli"
	"github.com/Veraticus/packcal/internal/common"
	"github.com/Veraticus/packcal/internal/storage"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func purchasesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purchases",
		Short: "Manage the purchase log",
		Long:  `List, clear, import and export the local log of pack purchases.`,
	}

	cmd.AddCommand(purchasesListCmd())
	cmd.AddCommand(purchasesClearCmd())
	cmd.AddCommand(purchasesImportCmd())
	cmd.AddCommand(purchasesExportCmd())

	return cmd
}

func purchasesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded purchases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			if len(s.purchases) == 0 {
				fmt.Fprintln(out, cli.InfoStyle.Render("No purchases recorded. Use 'packcal buy <pack-id>' to record one."))
				return nil
			}

			// Create table writer
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			defer w.Flush()

			// Header
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				headerStyle.Render("Time (UTC)"),
				headerStyle.Render("Pack"),
				headerStyle.Render("Name"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 16),
				strings.Repeat("-", 12),
				strings.Repeat("-", 20))

			for _, p := range s.purchases {
				name := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("(not in dataset)")
				if pack, ok := s.merged.PackByID(p.PackID); ok {
					name = pack.Name
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Time().Format("2006-01-02 15:04"), p.PackID, name)
			}

			return nil
		},
	}
}

func purchasesClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded purchase",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.CountPurchases(ctx)
			if err != nil {
				return fmt.Errorf("failed to count purchases: %w", err)
			}

			out := cmd.OutOrStdout()
			if count == 0 {
				fmt.Fprintln(out, "No purchases found. Nothing to clear.")
				return nil
			}

			if !yes {
				prompter := cli.NewPrompter(cmd.InOrStdin(), out)
				ok, err := prompter.Confirm(ctx, fmt.Sprintf("Delete %d recorded purchases?", count))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Clear canceled.")
					return nil
				}
			}

			if err := store.ClearPurchases(ctx); err != nil {
				return fmt.Errorf("failed to clear purchases: %w", err)
			}
			common.LogInfo("purchase log cleared", common.Fields{"count": count})
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Cleared %d purchases", count)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")

	return cmd
}

func purchasesImportCmd() *cobra.Command {
	var noProgress bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Append purchases from a JSON export",
		Long: `Import a purchase log in the [{"packId": "...", "ts": 1700000000000}] format.
Malformed entries are skipped. The import is all-or-nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			records, skipped, err := storage.DecodePurchaseLog(raw)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if skipped > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(fmt.Sprintf("Skipped %d malformed entries", skipped)))
			}
			if len(records) == 0 {
				fmt.Fprintln(out, "No purchases to import.")
				return nil
			}

			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			handler := cli.NewInterruptHandler(out)
			ctx := handler.HandleInterrupts(cmd.Context(), true)
			defer handler.Stop()

			tx, err := store.BeginTx(ctx)
			if err != nil {
				return fmt.Errorf("failed to begin transaction: %w", err)
			}
			defer func() {
				_ = tx.Rollback()
			}()

			var bar interface{ Add(int) error }
			if !noProgress {
				bar = cli.NewProgressBar(cmd.ErrOrStderr(), len(records), "Importing purchases")
			}

			for _, rec := range records {
				if handler.WasInterrupted() {
					return errors.New("import interrupted; nothing was recorded")
				}
				if err := tx.RecordPurchase(ctx, rec); err != nil {
					common.LogError(err, "purchase import failed", common.Fields{"file": args[0], "pack_id": rec.PackID})
					return fmt.Errorf("failed to import purchase of %s: %w", rec.PackID, err)
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}

			if err := tx.Commit(); err != nil {
				return fmt.Errorf("failed to commit import: %w", err)
			}

			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d purchases", len(records))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "do not draw a progress bar")

	return cmd
}

func purchasesExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the purchase log as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.ListPurchases(ctx)
			if err != nil {
				return fmt.Errorf("failed to load purchases: %w", err)
			}

			data, err := storage.EncodePurchaseLog(records)
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, data)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")

	return cmd
}

// writeOutput writes data to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatSuccess("Wrote "+path))
	return nil
}
