package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/tanq16/xdcc/internal/utils"
)

// isolate keeps Load from picking up a developer's own config file.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IRC.Server != utils.DefaultServer || cfg.IRC.Channel != utils.DefaultChannel {
		t.Fatalf("unexpected irc config %+v", cfg.IRC)
	}
	if cfg.IRC.NickLength != utils.DefaultNickLength || cfg.IRC.WelcomeTimeout != 0 {
		t.Fatalf("unexpected irc config %+v", cfg.IRC)
	}
	if cfg.Transfer.ChunkSize != utils.DefaultChunkSize || cfg.Transfer.Dir != "." {
		t.Fatalf("unexpected transfer config %+v", cfg.Transfer)
	}
	if cfg.Search.API != utils.DefaultSearchAPI || cfg.Workers != 1 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.Bots) != len(utils.DefaultBots()) {
		t.Fatalf("expected default bots, got %d", len(cfg.Bots))
	}
}

func TestLoadEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("XDCC_IRC_SERVER", "irc.example.net:6697")
	t.Setenv("XDCC_IRC_WELCOMETIMEOUT", "5s")
	t.Setenv("XDCC_WORKERS", "3")
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IRC.Server != "irc.example.net:6697" || cfg.IRC.WelcomeTimeout != 5*time.Second || cfg.Workers != 3 {
		t.Fatalf("environment not applied: %+v", cfg)
	}
}

func TestLoadFileAndFlags(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "irc:\n  channel: \"#other\"\ntransfer:\n  dir: /srv/downloads\nsearch:\n  api: https://index.example/api/\nbots:\n  - OnlyBot\n  - SecondBot\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("dir", ".", "")
	flags.String("server", utils.DefaultServer, "")
	if err := flags.Parse([]string{"--server", "127.0.0.1:6667"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IRC.Channel != "#other" || cfg.Transfer.Dir != "/srv/downloads" {
		t.Fatalf("config file not applied: %+v", cfg)
	}
	if cfg.IRC.Server != "127.0.0.1:6667" {
		t.Fatalf("explicit flag should win, got %q", cfg.IRC.Server)
	}
	if cfg.Search.API != "https://index.example/api" {
		t.Fatalf("trailing slash not trimmed: %q", cfg.Search.API)
	}
	if len(cfg.Bots) != 2 || cfg.Bots[0] != "OnlyBot" {
		t.Fatalf("unexpected bots %v", cfg.Bots)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadValidation(t *testing.T) {
	isolate(t)
	cases := map[string]string{
		"XDCC_IRC_CHANNEL":        "nibl",
		"XDCC_TRANSFER_CHUNKSIZE": "0",
		"XDCC_WORKERS":            "0",
		"XDCC_IRC_NICKLENGTH":     "-1",
	}
	for key, value := range cases {
		t.Run(strings.ToLower(key), func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load("", nil); err == nil {
				t.Fatalf("expected validation error for %s=%s", key, value)
			}
		})
	}
}
