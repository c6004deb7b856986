package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ".styleguard.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
		wantErr string
	}{
		{
			name: "full config",
			content: `rules:
  - bem-naming
  - no-var
exclude:
  - "drafts/*"
max_nesting: 2
`,
			want: Config{
				Rules:      []string{"bem-naming", "no-var"},
				Exclude:    []string{"drafts/*"},
				MaxNesting: 2,
			},
		},
		{
			name:    "empty file",
			content: "",
			want:    Config{},
		},
		{
			name:    "unknown key rejected by schema",
			content: "rulez:\n  - bem-naming\n",
			wantErr: "invalid config file",
		},
		{
			name:    "wrong type rejected by schema",
			content: "max_nesting: deep\n",
			wantErr: "invalid config file",
		},
		{
			name:    "uppercase rule id rejected by schema",
			content: "rules:\n  - BemNaming\n",
			wantErr: "invalid config file",
		},
		{
			name:    "not yaml at all",
			content: "{{{{",
			wantErr: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)

			cfg, err := Load(path)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Load() expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Load() error = %q, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}

			if len(cfg.Rules) != len(tt.want.Rules) {
				t.Errorf("Rules = %v, want %v", cfg.Rules, tt.want.Rules)
			}
			if len(cfg.Exclude) != len(tt.want.Exclude) {
				t.Errorf("Exclude = %v, want %v", cfg.Exclude, tt.want.Exclude)
			}
			if cfg.MaxNesting != tt.want.MaxNesting {
				t.Errorf("MaxNesting = %d, want %d", cfg.MaxNesting, tt.want.MaxNesting)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("Load() expected error for missing file")
	}
}

func TestDiscover(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "max_nesting: 5\n")

		cfg, err := Discover(dir)
		if err != nil {
			t.Fatalf("Discover() unexpected error: %v", err)
		}
		if cfg.MaxNesting != 5 {
			t.Errorf("MaxNesting = %d, want 5", cfg.MaxNesting)
		}
	})

	t.Run("absent falls back to defaults", func(t *testing.T) {
		cfg, err := Discover(t.TempDir())
		if err != nil {
			t.Fatalf("Discover() unexpected error: %v", err)
		}
		if len(cfg.Rules) != 0 || len(cfg.Exclude) != 0 || cfg.MaxNesting != 0 {
			t.Errorf("Discover() = %+v, want zero config", cfg)
		}
	})

	t.Run("file path uses containing directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "max_nesting: 4\n")
		guide := filepath.Join(dir, "guide.md")
		if err := os.WriteFile(guide, []byte("# G\n"), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Discover(guide)
		if err != nil {
			t.Fatalf("Discover() unexpected error: %v", err)
		}
		if cfg.MaxNesting != 4 {
			t.Errorf("MaxNesting = %d, want 4", cfg.MaxNesting)
		}
	})
}
