// File: format_test.go
// Title: Formatter Tests
// Description: Tests for the four output formats.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial formatter tests

package log

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/etds/foundation/core/error"
)

func testEntry() *Entry {
	entry := NewEntry(LevelInfo, "compiled")
	entry.Timestamp = time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC)
	entry.Logger = "etds"
	entry.Fields["symbols"] = 2
	entry.Fields["input"] = "a + b"
	return entry
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"TEXT", FormatText, false},
		{" console ", FormatConsole, false},
		{"logfmt", FormatLogfmt, false},
		{"xml", FormatJSON, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	entry := testEntry()
	entry.Error = mdwerror.New("disk full").WithCode(mdwerror.CodeStorageError)

	out, err := NewJSONFormatter().Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(out, &data); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if data["level"] != "info" || data["logger"] != "etds" || data["input"] != "a + b" {
		t.Errorf("unexpected JSON fields: %v", data)
	}
	details, ok := data["error_details"].(map[string]interface{})
	if !ok {
		t.Fatalf("error_details missing: %v", data)
	}
	if details["code"] != "STORAGE_ERROR" {
		t.Errorf("error_details.code = %v, want STORAGE_ERROR", details["code"])
	}
}

func TestTextFormatter_Format(t *testing.T) {
	out, _ := NewTextFormatter().Format(testEntry())
	want := "12:30:00 [INF] {etds} compiled [input=a + b symbols=2]\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestTextFormatter_DisableTimestamp(t *testing.T) {
	f := NewTextFormatter()
	f.DisableTimestamp = true
	entry := testEntry()
	entry.Error = errors.New("boom")

	out, _ := f.Format(entry)
	if !strings.HasPrefix(string(out), "[INF]") {
		t.Errorf("Format() = %q, want prefix [INF]", out)
	}
	if !strings.Contains(string(out), `error="boom"`) {
		t.Errorf("Format() = %q, want error field", out)
	}
}

func TestConsoleFormatter_DisableColors(t *testing.T) {
	f := NewConsoleFormatter()
	f.DisableColors = true

	got, _ := f.Format(testEntry())
	want, _ := NewTextFormatter().Format(testEntry())
	if string(got) != string(want) {
		t.Errorf("console without colours = %q, want %q", got, want)
	}
}

func TestConsoleFormatter_Format(t *testing.T) {
	out, _ := NewConsoleFormatter().Format(testEntry())
	if !strings.Contains(string(out), "INF") || !strings.Contains(string(out), "compiled") {
		t.Errorf("Format() = %q", out)
	}
}

func TestLogfmtFormatter_Format(t *testing.T) {
	out, _ := NewLogfmtFormatter().Format(testEntry())
	want := `timestamp=2026-10-19T12:30:00Z level=info message="compiled" logger=etds input="a + b" symbols=2` + "\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestGetFormatter(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{FormatJSON, "*log.JSONFormatter"},
		{FormatText, "*log.TextFormatter"},
		{FormatConsole, "*log.ConsoleFormatter"},
		{FormatLogfmt, "*log.LogfmtFormatter"},
		{Format(99), "*log.JSONFormatter"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			got := typeName(GetFormatter(tt.format))
			if got != tt.want {
				t.Errorf("GetFormatter(%v) = %s, want %s", tt.format, got, tt.want)
			}
		})
	}
}

func typeName(f Formatter) string {
	switch f.(type) {
	case *JSONFormatter:
		return "*log.JSONFormatter"
	case *TextFormatter:
		return "*log.TextFormatter"
	case *ConsoleFormatter:
		return "*log.ConsoleFormatter"
	case *LogfmtFormatter:
		return "*log.LogfmtFormatter"
	default:
		return "unknown"
	}
}
