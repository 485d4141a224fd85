package normalize

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	domainerror "github.com/trackd-analytics/byod/internal/domain/error"
	"github.com/trackd-analytics/byod/internal/integration/csvio"
	"github.com/trackd-analytics/byod/internal/integration/project"
)

func writeProjectFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
}

func newProjectUseCase() *NormalizeProjectUseCase {
	registry := NewRegistry()
	return NewNormalizeProjectUseCase(
		csvio.NewStore(),
		project.NewLoader(registry.Names()),
		registry,
	)
}

func setupPassthroughProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeProjectFile(t, dir, "byod.yaml", "adapter: passthrough\n")
	writeProjectFile(t, dir, "chart_of_accounts.csv",
		"account_id,account_name,account_type,normal_side\n"+
			"1000,Cash,asset,debit\n"+
			"4000,Sales,revenue,credit\n")
	writeProjectFile(t, dir, "gl_journal.csv",
		"txn_id,date,doc_id,description,account_id,debit,credit\n"+
			"t1,2024-01-05,inv-1,Sale,1000,100,\n"+
			"t1,2024-01-05,inv-1,Sale,4000,,100\n")
	return dir
}

func TestNormalizeProject(t *testing.T) {
	uc := newProjectUseCase()

	t.Run("writes canonical tables to the normalized directory", func(t *testing.T) {
		dir := setupPassthroughProject(t)

		output, err := uc.Execute(NormalizeProjectInput{ProjectDir: dir})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.OK {
			t.Fatalf("expected OK run, got %+v", output.Tables)
		}
		if output.Adapter != AdapterPassthrough {
			t.Errorf("expected passthrough, got %s", output.Adapter)
		}
		for _, name := range []string{"chart_of_accounts.csv", "gl_journal.csv"} {
			if _, err := os.Stat(filepath.Join(dir, "normalized", name)); err != nil {
				t.Errorf("expected %s in normalized/: %v", name, err)
			}
		}
	})

	t.Run("re-running produces byte-identical output", func(t *testing.T) {
		dir := setupPassthroughProject(t)

		if _, err := uc.Execute(NormalizeProjectInput{ProjectDir: dir}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first, err := os.ReadFile(filepath.Join(dir, "normalized", "gl_journal.csv"))
		if err != nil {
			t.Fatalf("read output: %v", err)
		}

		if _, err := uc.Execute(NormalizeProjectInput{ProjectDir: dir}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := os.ReadFile(filepath.Join(dir, "normalized", "gl_journal.csv"))
		if err != nil {
			t.Fatalf("read output: %v", err)
		}

		if string(first) != string(second) {
			t.Error("expected byte-identical output across runs")
		}
	})

	t.Run("unknown adapter aborts before any write", func(t *testing.T) {
		dir := setupPassthroughProject(t)
		writeProjectFile(t, dir, "byod.yaml", "adapter: quickbooks\n")

		_, err := uc.Execute(NormalizeProjectInput{ProjectDir: dir})
		if !errors.Is(err, domainerror.ErrUnknownAdapter) {
			t.Fatalf("expected ErrUnknownAdapter, got %v", err)
		}
		if _, statErr := os.Stat(filepath.Join(dir, "normalized")); !os.IsNotExist(statErr) {
			t.Error("expected no normalized directory after a fatal config error")
		}
	})

	t.Run("missing byod.yaml is a missing-adapter error", func(t *testing.T) {
		dir := t.TempDir()
		writeProjectFile(t, dir, "chart_of_accounts.csv", "account_id\n")

		_, err := uc.Execute(NormalizeProjectInput{ProjectDir: dir})
		if !errors.Is(err, domainerror.ErrMissingAdapterConfig) {
			t.Errorf("expected ErrMissingAdapterConfig, got %v", err)
		}
	})

	t.Run("missing table is reported per table, rest still normalize", func(t *testing.T) {
		dir := setupPassthroughProject(t)
		if err := os.Remove(filepath.Join(dir, "gl_journal.csv")); err != nil {
			t.Fatalf("remove fixture: %v", err)
		}

		output, err := uc.Execute(NormalizeProjectInput{ProjectDir: dir})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.OK {
			t.Error("expected run to be marked failed")
		}

		byTable := make(map[string]TableResult)
		for _, r := range output.Tables {
			byTable[r.Table] = r
		}
		if !byTable["chart_of_accounts"].OK {
			t.Error("expected chart_of_accounts to normalize despite the missing journal")
		}
		if byTable["gl_journal"].OK || byTable["gl_journal"].Error == "" {
			t.Errorf("expected gl_journal failure with an error, got %+v", byTable["gl_journal"])
		}
	})

	t.Run("table file overrides are honored", func(t *testing.T) {
		dir := setupPassthroughProject(t)
		if err := os.Rename(filepath.Join(dir, "gl_journal.csv"), filepath.Join(dir, "journal_export.csv")); err != nil {
			t.Fatalf("rename fixture: %v", err)
		}
		writeProjectFile(t, dir, "byod.yaml",
			"adapter: passthrough\ntables:\n  gl_journal: journal_export.csv\n")

		output, err := uc.Execute(NormalizeProjectInput{ProjectDir: dir})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.OK {
			t.Fatalf("expected OK run, got %+v", output.Tables)
		}
		// Output name stays canonical regardless of the source file name.
		if _, err := os.Stat(filepath.Join(dir, "normalized", "gl_journal.csv")); err != nil {
			t.Errorf("expected canonical output name: %v", err)
		}
	})
}
