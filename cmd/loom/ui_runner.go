package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"loom/internal/program"
	"loom/internal/session"
	"loom/internal/ui"
)

type sessionOutcome struct {
	outcome *session.Outcome
	err     error
}

// runSessionWithUI drives the expansion under a progress TUI: the session
// runs in a goroutine and streams events into the model, which owns the
// terminal until the event channel closes.
func runSessionWithUI(ctx context.Context, title string, snap *program.Snapshot, opts session.Options) (*session.Outcome, error) {
	events := make(chan session.Event, 256)
	outcomeCh := make(chan sessionOutcome, 1)

	go func() {
		opts.Events = session.ChannelSink{Ch: events}
		res, err := session.Run(ctx, snap.Program, snap.Applications, opts)
		outcomeCh <- sessionOutcome{outcome: res, err: err}
		close(events)
	}()

	items := make([]ui.Item, 0, len(snap.Applications))
	for _, app := range snap.Applications {
		items = append(items, ui.Item{
			Macro:  app.MacroName,
			Target: session.TargetLabel(snap.Program, app.Target),
		})
	}

	model := ui.NewProgressModel(title, items, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.outcome, uiErr
	}
	return outcome.outcome, outcome.err
}
