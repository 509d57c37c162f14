package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ghnotify/ghnotify/internal/model"
	"github.com/ghnotify/ghnotify/internal/output"
	"github.com/ghnotify/ghnotify/internal/store"
)

func TestNewRegistersSubcommands(t *testing.T) {
	root := New()

	want := []string{"list", "watch", "done", "read", "config", "cache", "version"}
	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			for _, c := range root.Commands() {
				if c.Name() == name {
					return
				}
			}
			t.Errorf("subcommand %q not registered", name)
		})
	}
}

func TestRootFlags(t *testing.T) {
	root := New()

	for _, name := range []string{"output", "since", "limit", "tui", "cached"} {
		if root.Flags().Lookup(name) == nil {
			t.Errorf("root flag --%s not registered", name)
		}
	}
}

func TestRenderCached(t *testing.T) {
	st, err := store.NewStoreAt(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("empty store", func(t *testing.T) {
		var buf bytes.Buffer
		if err := renderCached(st, output.FormatTable, &buf); err != nil {
			t.Fatalf("renderCached() error: %v", err)
		}
		if !strings.Contains(buf.String(), "No cached notifications") {
			t.Errorf("output = %q", buf.String())
		}
	})

	fetchedAt := time.Now().Add(-10 * time.Minute)
	items := []model.Notification{
		{ID: "1", Repo: "own/repo", Title: "Fix retry logic", Reason: model.ReasonMention, UpdatedAt: fetchedAt},
	}
	if err := st.SetNotifications(items, fetchedAt); err != nil {
		t.Fatal(err)
	}

	t.Run("persisted list is painted", func(t *testing.T) {
		var buf bytes.Buffer
		if err := renderCached(st, output.FormatTable, &buf); err != nil {
			t.Fatalf("renderCached() error: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"own/repo", "Fix retry logic", "1 notifications as of"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})
}

func TestTUIFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"true", "true", false},
		{"false", "false", false},
		{"auto", "auto", false},
		{"maybe", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			opts := NewOptions()
			f := newTUIFlag(opts)
			err := f.Set(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && f.String() != tt.want {
				t.Errorf("String() = %q, want %q", f.String(), tt.want)
			}
		})
	}
}

func TestShouldUseTUI(t *testing.T) {
	yes, no := true, false

	t.Run("verbosity wins", func(t *testing.T) {
		opts := NewOptions()
		opts.Verbosity = 1
		opts.TUI = &yes
		if shouldUseTUI(opts) {
			t.Error("verbose runs should never use the TUI")
		}
	})

	t.Run("explicit false", func(t *testing.T) {
		opts := NewOptions()
		opts.TUI = &no
		if shouldUseTUI(opts) {
			t.Error("explicit --tui=false should disable the TUI")
		}
	})

	t.Run("explicit true", func(t *testing.T) {
		opts := NewOptions()
		opts.TUI = &yes
		if !shouldUseTUI(opts) {
			t.Error("explicit --tui should enable the TUI")
		}
	})
}
