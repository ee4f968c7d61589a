package cli

import (
	"context"
	"fmt"

	"github.com/icanacademy/eduspace/internal/domain"
	"github.com/icanacademy/eduspace/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds everything the CLI commands need.
type App struct {
	Session     *session.Session
	Store       *session.Store
	Interactive bool // stdin/stdout are a TTY
}

// NewRootCmd creates the top-level "eduspace" command. Running it with no
// subcommand launches the interactive mission console.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "eduspace",
		Short: "Space orienteering missions with an AI mentor",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.Interactive {
				return fmt.Errorf("eduspace needs an interactive terminal; try `eduspace mission` for one-shot use")
			}
			p := tea.NewProgram(newStageModel(app), tea.WithAltScreen())
			_, err := p.Run()
			app.Session.Wait()
			return err
		},
	}

	root.AddCommand(
		newMissionCmd(app),
		newResetCmd(app),
	)

	return root
}

// newMissionCmd generates and prints a single mission card without
// entering the TUI.
func newMissionCmd(app *App) *cobra.Command {
	var levelFlag string

	cmd := &cobra.Command{
		Use:   "mission",
		Short: "Generate a mission card and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := app.Session.Level()
			if levelFlag != "" {
				parsed, err := domain.ParseGradeLevel(levelFlag)
				if err != nil {
					return err
				}
				level = parsed
			}
			if err := app.Session.SetLevel(cmd.Context(), level); err != nil {
				return err
			}
			m := app.Session.GenerateMission(cmd.Context())
			fmt.Fprint(cmd.OutOrStdout(), renderMissionCard(m))
			return nil
		},
	}

	cmd.Flags().StringVarP(&levelFlag, "level", "l", "",
		"grade level (elementary-lower, elementary-upper, middle, high)")
	return cmd
}

// newResetCmd clears all persisted state.
func newResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the saved mission, grade level and tour flag",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Store.Clear(context.Background()); err != nil {
				return fmt.Errorf("clearing saved state: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Saved state cleared.")
			return nil
		},
	}
}
