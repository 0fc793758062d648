package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/vista/internal/logging"
	"github.com/aretw0/vista/internal/presentation/tui"
	"github.com/aretw0/vista/pkg/domain"
	"github.com/aretw0/vista/pkg/observability"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Walk through the tour in the terminal",
	Long: `Starts the interactive terminal viewer on the tour's entry scene.
Pass --session to resume a saved session. When the tour is a directory of
scene files, edits are picked up while playing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("play needs an interactive terminal; use 'vista serve' or 'vista mcp' for programmatic access")
		}

		// The terminal belongs to the viewer, logs go to a file when debugging.
		playLogger := logging.NewNop()
		if cfg.Log.Level == "debug" {
			f, err := tea.LogToFile("vista-debug.log", "vista")
			if err != nil {
				return fmt.Errorf("failed to open debug log: %w", err)
			}
			defer f.Close()
			playLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}

		viewer, err := newViewer(cfg, playLogger, observability.LogHooks(playLogger))
		if err != nil {
			return err
		}
		sessions, closeStore, err := newSessions(cfg, playLogger)
		if err != nil {
			return err
		}
		defer closeStore()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		sessionID, _ := cmd.Flags().GetString("session")
		state, err := resume(ctx, sessionID, sessions, viewer)
		if err != nil {
			return err
		}

		opts := []tui.ModelOption{
			tui.WithMarkdown(tui.NewRenderer(80)),
			tui.WithOnChange(func(s *domain.State) error {
				return sessions.Save(ctx, s.SessionID, s)
			}),
		}
		if changes, err := viewer.Watch(ctx); err == nil {
			opts = append(opts, tui.WithWatch(changes))
		}

		model, err := tui.NewModel(ctx, viewer, state, opts...)
		if err != nil {
			return err
		}

		tui.PrintBanner(os.Stdout)
		final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
		if err != nil {
			return fmt.Errorf("viewer failed: %w", err)
		}
		if m, ok := final.(tui.Model); ok && m.State() != nil {
			fmt.Printf("Session %s saved. Resume with: vista play --session %s\n", m.State().SessionID, m.State().SessionID)
		}
		return nil
	},
}

// resume loads a saved session and re-observes it against the current tour,
// or starts a new one.
func resume(ctx context.Context, sessionID string, sessions sessionStore, viewer tourViewer) (*domain.State, error) {
	if sessionID != "" {
		state, err := sessions.Load(ctx, sessionID)
		switch {
		case err == nil && state.Viewing():
			return viewer.Observe(ctx, state)
		case err != nil && !errors.Is(err, domain.ErrSessionNotFound):
			return nil, fmt.Errorf("failed to load session %s: %w", sessionID, err)
		}
	} else {
		sessionID = uuid.NewString()
	}

	state, err := viewer.Start(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sessions.Save(ctx, sessionID, state); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return state, nil
}

type sessionStore interface {
	Load(ctx context.Context, sessionID string) (*domain.State, error)
	Save(ctx context.Context, sessionID string, state *domain.State) error
}

type tourViewer interface {
	Start(ctx context.Context, sessionID string) (*domain.State, error)
	Observe(ctx context.Context, state *domain.State) (*domain.State, error)
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringP("session", "s", "", "Session ID to resume")
}
