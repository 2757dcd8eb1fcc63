package main

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dmars8047/DSMZip/internal/progress"
)

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		report  string
		buffer  string
		wantErr bool
	}{
		{"Defaults", "", "", "", false},
		{"Valid level", "fastest", "", "", false},
		{"Level case", "NONE", "", "", false},
		{"Invalid level", "turbo", "", "", true},
		{"Valid report", "", "yaml", "", false},
		{"Invalid report", "", "html", "", true},
		{"Valid buffer", "", "", "64KB", false},
		{"Oversized buffer", "", "", "1000000G", true},
		{"Unknown buffer unit", "", "", "4X", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFlags(tt.level, tt.report, tt.buffer)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFlags(%q, %q, %q) error = %v, wantErr %v", tt.level, tt.report, tt.buffer, err, tt.wantErr)
			}
		})
	}
}

func TestRenderBar(t *testing.T) {
	bar := renderBar(progress.Event{Label: "a.txt", Percent: 50}, colorGreen)

	if strings.Count(bar, "█") != barWidth/2 || strings.Count(bar, "░") != barWidth/2 {
		t.Errorf("renderBar() at 50%% = %q", bar)
	}
	if !strings.Contains(bar, " 50%") || !strings.Contains(bar, "a.txt") {
		t.Errorf("renderBar() missing percent or label: %q", bar)
	}

	long := renderBar(progress.Event{Label: strings.Repeat("x", 100), Percent: 100}, colorGreen)
	if !strings.Contains(long, strings.Repeat("x", maxLabelWidth-3)+"...") {
		t.Errorf("renderBar() did not truncate long label: %q", long)
	}
}

func TestRenderBar_MultiByteLabel(t *testing.T) {
	label := strings.Repeat("é", 30) + strings.Repeat("日", 30)
	bar := renderBar(progress.Event{Label: label, Percent: 10}, colorGreen)

	if !utf8.ValidString(bar) {
		t.Errorf("renderBar() produced invalid UTF-8: %q", bar)
	}

	runes := []rune(label)
	if !strings.Contains(bar, string(runes[:maxLabelWidth-3])+"...") {
		t.Errorf("renderBar() did not truncate by characters: %q", bar)
	}

	short := "données.txt"
	if !strings.Contains(renderBar(progress.Event{Label: short}, colorGreen), short) {
		t.Errorf("renderBar() truncated a short multi-byte label")
	}
}

func TestProgressRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := newProgressRenderer(&buf)

	r.Handle(progress.Event{Scope: progress.ScopeOverall, Label: "out.zip", Percent: 1})
	r.Handle(progress.Event{Scope: progress.ScopeItem, Label: "a.txt", Percent: 100, Done: true})
	r.Handle(progress.Event{Scope: progress.ScopeOverall, Label: "out.zip", Percent: 100, Done: true})
	r.Close()

	out := buf.String()
	if !strings.Contains(out, "out.zip") || !strings.Contains(out, "a.txt") {
		t.Errorf("renderer output missing labels: %q", out)
	}
	// Every redraw after the first moves the cursor back up two lines
	if got := strings.Count(out, "\033[2A"); got != 3 {
		t.Errorf("redraws = %d, want 3", got)
	}
}
