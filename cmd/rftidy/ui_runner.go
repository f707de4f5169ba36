package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rftidy/internal/driver"
	"rftidy/internal/ui"
)

type formatOutcome struct {
	results []driver.FormatResult
	err     error
}

func runFormatWithUI(ctx context.Context, title string, files, paths []string, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.FormatPaths(ctx, paths, optsCopy)
		outcomeCh <- formatOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// workers must not block on a channel nobody reads
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
