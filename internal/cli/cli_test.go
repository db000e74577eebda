package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/orizon-lang/csfront/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LanguageVersion != "2.0" || cfg.MaxErrors != 100 || cfg.Color != "auto" {
		t.Fatalf("defaults got=%+v", cfg)
	}
	if cfg.Watch.Debounce.Duration != 200*time.Millisecond {
		t.Fatalf("debounce got=%s", cfg.Watch.Debounce)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
language_version = "1.2"
max_errors = 5
color = "never"

[watch]
debounce = "1s"
extensions = [".cs", ".csx"]
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LanguageVersion != "1.2" || cfg.MaxErrors != 5 || cfg.Color != "never" {
		t.Fatalf("values got=%+v", cfg)
	}
	if cfg.Watch.Debounce.Duration != time.Second {
		t.Fatalf("debounce got=%s want=1s", cfg.Watch.Debounce)
	}
	if !cfg.Matches("dir/a.CSX") || cfg.Matches("a.go") {
		t.Fatalf("extension matching wrong for %v", cfg.Watch.Extensions)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `language_version = `},
		{"unknown key", `colour = "never"`},
		{"bad color", `color = "sometimes"`},
		{"bad extension", "[watch]\nextensions = [\"cs\"]"},
		{"bad duration", "[watch]\ndebounce = \"soon\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if !stderrors.Is(err, errors.ErrInvalidConfig) {
				t.Fatalf("err got=%v want invalid config", err)
			}
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxErrors = 7
	cfg.Watch.Debounce.Duration = 3 * time.Second
	path := filepath.Join(t.TempDir(), "out.toml")
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatal(err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.MaxErrors != 7 || got.Watch.Debounce.Duration != 3*time.Second {
		t.Fatalf("round trip got=%+v", got)
	}
}

func TestUseColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Color = "always"
	if !cfg.UseColor(os.Stdout) {
		t.Fatalf("always did not enable color")
	}
	cfg.Color = "never"
	if cfg.UseColor(os.Stdout) {
		t.Fatalf("never enabled color")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f.Fd()) {
		t.Fatalf("regular file reported as terminal")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerTo(&buf, false, false)
	l.now = func() time.Time { return time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC) }

	l.Info("hidden")
	l.Debug("hidden")
	l.Warn("parsed %d files", 3)
	l.Verbose = true
	l.Info("shown")

	want := "[WARN] 13:04:05: parsed 3 files\n[INFO] 13:04:05: shown\n"
	if got := buf.String(); got != want {
		t.Fatalf("got=%q want=%q", got, want)
	}
}

func TestPrintVersion(t *testing.T) {
	info := GetVersionInfo("2.0")

	var text bytes.Buffer
	if err := PrintVersion(&text, "csfront", info, false); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(text.String(), "csfront v"+Version+"\n") || !strings.Contains(text.String(), "C# Language: 2.0") {
		t.Fatalf("text output got=%q", text.String())
	}

	var js bytes.Buffer
	if err := PrintVersion(&js, "csfront", info, true); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Tool        string      `json:"tool"`
		VersionInfo VersionInfo `json:"version_info"`
	}
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Tool != "csfront" || decoded.VersionInfo.LanguageVersion != "2.0" {
		t.Fatalf("json got=%+v", decoded)
	}
}
