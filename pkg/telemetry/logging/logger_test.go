package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"mercator-hq/sweeper/pkg/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "valid JSON config",
			config:  Config{Level: "info", Format: "json"},
			wantErr: false,
		},
		{
			name:    "valid text config",
			config:  Config{Level: "debug", Format: "text"},
			wantErr: false,
		},
		{
			name:    "empty config uses defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name:    "invalid log level",
			config:  Config{Level: "invalid", Format: "json"},
			wantErr: true,
		},
		{
			name:    "invalid format",
			config:  Config{Level: "info", Format: "xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.config.Writer = &bytes.Buffer{}
			logger, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && logger == nil {
				t.Error("New() returned nil logger")
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "warn", Format: "text", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record should be filtered: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn record missing: %s", out)
	}
}

func TestLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Level: "debug", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithPattern(WithCycleID(context.Background(), "cycle-1"), "/tmp/*.tmp")
	logger.With("component", "test").InfoContext(ctx, "scan pass completed", "deleted", 2)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("invalid JSON output %q: %v", buf.String(), err)
	}

	want := map[string]any{
		"msg":       "scan pass completed",
		"cycle_id":  "cycle-1",
		"pattern":   "/tmp/*.tmp",
		"component": "test",
	}
	for k, v := range want {
		if record[k] != v {
			t.Errorf("record[%q] = %v, want %v", k, record[k], v)
		}
	}
	if record["deleted"] != float64(2) {
		t.Errorf("record[deleted] = %v, want 2", record["deleted"])
	}
}

func TestLogger_NoContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Format: "text", Writer: &buf})
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("plain")
	if strings.Contains(buf.String(), "cycle_id") {
		t.Errorf("unexpected cycle_id: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromSettings(t *testing.T) {
	cfg := FromSettings(config.LoggingConfig{Level: "debug", Format: "json", Output: "stdout", AddSource: true})
	if cfg.Level != "debug" || cfg.Format != "json" || !cfg.AddSource {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Writer == nil {
		t.Error("expected writer to be set")
	}
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()
	if GetCycleID(ctx) != "" || GetPattern(ctx) != "" {
		t.Error("empty context should have no fields")
	}

	ctx = WithCycleID(ctx, "abc")
	if GetCycleID(ctx) != "abc" {
		t.Errorf("GetCycleID() = %q", GetCycleID(ctx))
	}
}
