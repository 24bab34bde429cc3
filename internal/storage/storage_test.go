package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pfrederiksen/monoid-roster/internal/roster"
)

func TestSaveAndLoad(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	tbl := roster.NewTable(
		roster.Headers{"Name", "Summe"},
		[]roster.Row{{"Anna", "7,5"}, {"Jörg", "-"}},
	)
	tbl.Checked = []int{1}

	if err := store.SaveTable(tbl, "website"); err != nil {
		t.Fatalf("SaveTable() error: %v", err)
	}

	session, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if session.Source != "website" {
		t.Errorf("Source = %q, want website", session.Source)
	}
	if session.SavedAt == "" {
		t.Error("SavedAt not set")
	}
	if len(session.Table.Rows) != 2 || session.Table.Rows[1][0] != "Jörg" {
		t.Errorf("Rows = %v, want the saved rows", session.Table.Rows)
	}
	if len(session.Table.Checked) != 1 || session.Table.Checked[0] != 1 {
		t.Errorf("Checked = %v, want [1]", session.Table.Checked)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		wantErr error
	}{
		{
			name:    "no session",
			wantErr: ErrNoSession,
		},
		{
			name:    "invalid JSON",
			content: strPtr("{not json"),
		},
		{
			name:    "missing table",
			content: strPtr(`{"source":"file"}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			store, err := New(dir)
			if err != nil {
				t.Fatalf("Failed to create storage: %v", err)
			}

			if tt.content != nil {
				if err := os.WriteFile(filepath.Join(dir, StateFile), []byte(*tt.content), 0644); err != nil {
					t.Fatalf("writing fixture: %v", err)
				}
			}

			_, err = store.Load()
			if err == nil {
				t.Fatal("Load() expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_EmptyRows(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	content := `{"table":{"headers":["Name"],"rows":null},"source":"template"}`
	if err := os.WriteFile(store.Path(), []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	session, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if session.Table.Rows == nil {
		t.Error("Rows is nil, want empty slice")
	}
}

func TestDelete(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	// Deleting before anything was saved is fine
	if err := store.Delete(); err != nil {
		t.Fatalf("Delete() on empty store error: %v", err)
	}

	if err := store.SaveTable(roster.NewTable(roster.Headers{"Name"}, nil), "file"); err != nil {
		t.Fatalf("SaveTable() error: %v", err)
	}
	if err := store.Delete(); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load() after Delete() error = %v, want ErrNoSession", err)
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("data directory not created: %v", err)
	}
	if store.Path() != filepath.Join(dir, StateFile) {
		t.Errorf("Path() = %q", store.Path())
	}
}

func strPtr(s string) *string {
	return &s
}
