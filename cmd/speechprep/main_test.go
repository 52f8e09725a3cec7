package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_Flags(t *testing.T) {
	fs := newFlagSet()
	err := fs.Parse([]string{
		"--audio=talk.mp3", "--xml=talk.xml", "--validate-locale=fr",
		"--workers=3", "--tool-timeout=30s", "--log-level=debug", "--normalize",
	})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(fs)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Audio != "talk.mp3" || cfg.XML != "talk.xml" || cfg.ValidateLocale != "fr" {
		t.Errorf("unexpected inputs %+v", cfg)
	}
	if cfg.Workers != 3 || cfg.ToolTimeout != 30*time.Second || !cfg.Normalize {
		t.Errorf("unexpected tuning %+v", cfg)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level from flag, got %q", cfg.Logging.Level)
	}
}

func TestLoadConfig_FileThenFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "speechprep.yml")
	yml := "audio: a.wav\nxml: a.xml\nworkers: 2\nffmpeg_path: /opt/ffmpeg\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	fs := newFlagSet()
	if err := fs.Parse([]string{"--config=" + path, "--workers=5"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(fs)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Audio != "a.wav" || cfg.FFmpegPath != "/opt/ffmpeg" || cfg.Workers != 5 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	if code := run([]string{"--version"}, &out, &bytes.Buffer{}); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.HasPrefix(out.String(), "speechprep ") {
		t.Errorf("unexpected version line %q", out.String())
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	var stderr bytes.Buffer
	if code := run([]string{"--xml=a.xml", "--validate-locale=de"}, &bytes.Buffer{}, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "audio") {
		t.Errorf("expected the missing audio to be reported, got %q", stderr.String())
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	if code := run([]string{"--nope"}, &bytes.Buffer{}, &bytes.Buffer{}); code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
}
