package main

import (
	"fmt"

	"github.com/Veraticus/packcal/internal/common"
	"github.com/Veraticus/packcal/internal/tui"
	"github.com/Veraticus/packcal/internal/tui/themes"
	"github.com/Veraticus/packcal/internal/view"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func tuiCmd() *cobra.Command {
	var (
		viewName string
		theme    string
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the calendar interactively",
		Long: `Open a full-screen calendar. Move between days, switch between month and week,
filter by category and mark packs as bought.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, ok := view.ParseMode(viewName)
			if !ok {
				return common.NewUserError(fmt.Sprintf("Unknown view %q (expected month or week).", viewName), common.ErrInvalidInput)
			}
			if theme == "" {
				theme = viper.GetString("tui.theme")
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return tui.Run(cmd.Context(),
				tui.WithStorage(s.store),
				tui.WithDataset(s.merged),
				tui.WithAnchor(s.anchor),
				tui.WithCategory(defaultCategory()),
				tui.WithMode(mode),
				tui.WithTheme(themes.GetTheme(theme)),
				tui.WithClock(nowFunc),
			)
		},
	}

	cmd.Flags().StringVar(&viewName, "view", "month", "initial calendar layout (month, week)")
	cmd.Flags().StringVar(&theme, "theme", "", "color theme (default, catppuccin-mocha)")

	return cmd
}
