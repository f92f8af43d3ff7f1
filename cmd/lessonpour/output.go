// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/lessonpour/internal/pour"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// printBatchSummary renders the batch totals, coloring failures red.
func printBatchSummary(batch pour.BatchResult) {
	line := fmt.Sprintf("Batch summary: %d poured, %d failed (total: %d)",
		batch.Poured, batch.Failed, batch.Total())
	if batch.HasFailures() {
		fmt.Println(errorStyle.Render(line))
		return
	}
	fmt.Println(successStyle.Render(line))
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("error: "+err.Error()))
}

func printNote(msg string) {
	fmt.Println(dimStyle.Render(msg))
}
