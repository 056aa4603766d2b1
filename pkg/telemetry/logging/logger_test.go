package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid JSON config",
			config: Config{
				Level:          "info",
				Format:         "json",
				HashEntityKeys: true,
			},
			wantErr: false,
		},
		{
			name: "valid text config",
			config: Config{
				Level:  "debug",
				Format: "text",
			},
			wantErr: false,
		},
		{
			name: "valid console config",
			config: Config{
				Level:  "warn",
				Format: "console",
			},
			wantErr: false,
		},
		{
			name: "invalid log level",
			config: Config{
				Level:  "invalid",
				Format: "json",
			},
			wantErr: true,
		},
		{
			name: "invalid format",
			config: Config{
				Level:  "info",
				Format: "invalid",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.config.Writer = buf

			_, err := New(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		logLevel  string
		logMethod func(*Logger, string)
		wantLog   bool
	}{
		{
			name:      "debug suppressed at info level",
			logLevel:  "info",
			logMethod: func(l *Logger, msg string) { l.Debug(msg) },
			wantLog:   false,
		},
		{
			name:      "info emitted at info level",
			logLevel:  "info",
			logMethod: func(l *Logger, msg string) { l.Info(msg) },
			wantLog:   true,
		},
		{
			name:      "warn emitted at info level",
			logLevel:  "info",
			logMethod: func(l *Logger, msg string) { l.Warn(msg) },
			wantLog:   true,
		},
		{
			name:      "info suppressed at error level",
			logLevel:  "error",
			logMethod: func(l *Logger, msg string) { l.Info(msg) },
			wantLog:   false,
		},
		{
			name:      "error emitted at error level",
			logLevel:  "error",
			logMethod: func(l *Logger, msg string) { l.Error(msg) },
			wantLog:   true,
		},
		{
			name:      "debug emitted at debug level",
			logLevel:  "debug",
			logMethod: func(l *Logger, msg string) { l.Debug(msg) },
			wantLog:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger, err := New(Config{Level: tt.logLevel, Format: "json", Writer: buf})
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			tt.logMethod(logger, "probe message")

			got := strings.Contains(buf.String(), "probe message")
			if got != tt.wantLog {
				t.Errorf("logged = %v, want %v (output: %q)", got, tt.wantLog, buf.String())
			}
		})
	}
}

func TestLogger_StructuredFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("decision committed", "decision", "ALLOW", "omega", 0.92)

	out := buf.String()
	for _, want := range []string{`"decision":"ALLOW"`, `"omega":0.92`, "decision committed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestLogger_With(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	child := logger.With("component", "decision.engine")
	child.Info("started")

	if !strings.Contains(buf.String(), `"component":"decision.engine"`) {
		t.Errorf("With field not propagated: %s", buf.String())
	}
}

func TestLogger_EntityKeyHashing(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", HashEntityKeys: true, Writer: buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("evaluated", "entity_key", "agent-42", "decision", "DENY")

	out := buf.String()
	if strings.Contains(out, "agent-42") {
		t.Errorf("raw entity key leaked into log output: %s", out)
	}
	if !strings.Contains(out, HashKey("agent-42")) {
		t.Errorf("hashed entity key missing from output: %s", out)
	}
	if !strings.Contains(out, `"decision":"DENY"`) {
		t.Errorf("non-sensitive field altered: %s", out)
	}
}

func TestLogger_HashingDisabledKeepsRawKey(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("evaluated", "entity_key", "agent-42")

	if !strings.Contains(buf.String(), "agent-42") {
		t.Errorf("entity key should pass through unhashed: %s", buf.String())
	}
}

func TestLogger_Slog(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Config{Level: "info", Format: "json", Writer: buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var sl *slog.Logger = logger.Slog()
	sl.Info("via slog")

	if !strings.Contains(buf.String(), "via slog") {
		t.Errorf("Slog() logger not wired to the same writer: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"ERROR", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    LogFormat
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"", FormatJSON, false},
		{"text", FormatText, false},
		{"console", FormatConsole, false},
		{"xml", FormatJSON, true},
	}

	for _, tt := range tests {
		got, err := parseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
