package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestStatusStyles_KnownValuesColored(t *testing.T) {
	tests := []struct {
		name  string
		style lipgloss.Style
		want  lipgloss.TerminalColor
	}{
		{"ship operational", ShipStatusStyle("operational"), ColorGreen},
		{"ship overdue", ShipStatusStyle("overdue"), ColorRed},
		{"task completed", TaskStatusStyle("completed"), ColorGreen},
		{"task in-progress", TaskStatusStyle("in-progress"), ColorYellow},
		{"priority high", PriorityStyle("high"), ColorRed},
		{"priority low", PriorityStyle("low"), ColorBlue},
		{"notification urgent", NotificationStyle("urgent"), ColorRed},
		{"notification success", NotificationStyle("success"), ColorGreen},
		{"unknown", TaskStatusStyle("bogus"), ColorGray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.style.GetForeground(); got != tt.want {
				t.Errorf("foreground = %v, want %v", got, tt.want)
			}
		})
	}
}
