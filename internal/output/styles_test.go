package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.Color
		wantDim  bool
	}{
		{name: "created returns green", status: StatusCreated, wantFG: ColorGreen},
		{name: "updated returns yellow", status: StatusUpdated, wantFG: ColorYellow},
		{name: "unchanged returns faint", status: StatusUnchanged, wantDim: true},
		{name: "skipped returns faint", status: StatusSkipped, wantDim: true},
		{name: "removed returns red", status: StatusRemoved, wantFG: ColorRed},
		{name: "failed returns bold red", status: StatusFailed, wantBold: true, wantFG: ColorBoldRed},
		{name: "unknown returns default unstyled", status: "unknown-value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			if tt.wantBold {
				assert.True(t, style.GetBold(), "expected bold")
			}
			if tt.wantFG != "" {
				assert.Equal(t, tt.wantFG, style.GetForeground(), "foreground color mismatch")
			}
			if tt.wantDim {
				assert.True(t, style.GetFaint(), "expected faint")
			}
		})
	}
}

func TestFormatFileLine(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status string
	}{
		{"workflow created", ".github/workflows/build-release-svc.yaml", StatusCreated},
		{"seed skipped", "playbooks/vars/custom/all.yaml", StatusSkipped},
		{"very long path still padded", strings.Repeat("a", 80), StatusRemoved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := FormatFileLine(tt.path, tt.status)
			assert.Contains(t, line, "f:")
			assert.Contains(t, line, tt.path)
			assert.Contains(t, line, tt.status)
			assert.True(t, strings.Index(line, tt.path) < strings.LastIndex(line, tt.status))
		})
	}
}
