package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"bigcalc/internal/batch"
	"bigcalc/internal/ui"
)

type batchOutcome struct {
	result batch.Result
	err    error
}

// runBatchWithUI runs req while a Bubble Tea program renders its progress
// on out.
func runBatchWithUI(ctx context.Context, title string, out io.Writer, req batch.Request) (batch.Result, error) {
	events := make(chan batch.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		req.Progress = batch.ChannelSink{Ch: events}
		res, err := batch.Run(ctx, req)
		outcomeCh <- batchOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, req.Exprs, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// the batch keeps sending until Run returns
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
