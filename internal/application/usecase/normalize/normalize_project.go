package normalize

import (
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/trackd-analytics/byod/internal/application/adapter"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

// NormalizeProjectInput identifies the BYOD project to normalize.
type NormalizeProjectInput struct {
	ProjectDir string

	// NormalizedDirName is the output subdirectory; defaults to "normalized".
	NormalizedDirName string

	// Dataset is the dataset contract; defaults to "core_gl".
	Dataset string
}

// TableResult is the per-table outcome of a normalization run.
type TableResult struct {
	Table      string
	SourceFile string
	OutputFile string
	RowCount   int
	OK         bool
	Error      string
}

// NormalizeProjectOutput reports a whole normalization run.
type NormalizeProjectOutput struct {
	RunID         uuid.UUID
	Adapter       string
	NormalizedDir string
	Tables        []TableResult
	OK            bool
}

// NormalizeProjectUseCase is the end-to-end "normalize a BYOD project"
// operation: read the project configuration, resolve the adapter, apply it
// to each declared table, and write canonical CSVs to the normalized
// output directory.
type NormalizeProjectUseCase struct {
	store    adapter.TableStore
	loader   adapter.ProjectConfigLoader
	registry *Registry
}

// NewNormalizeProjectUseCase creates a new NormalizeProjectUseCase instance.
func NewNormalizeProjectUseCase(
	store adapter.TableStore,
	loader adapter.ProjectConfigLoader,
	registry *Registry,
) *NormalizeProjectUseCase {
	return &NormalizeProjectUseCase{
		store:    store,
		loader:   loader,
		registry: registry,
	}
}

// Execute normalizes every table in the project's dataset. Configuration
// problems (missing or unknown adapter) abort the whole run before any
// file is written; a missing input table is reported per table while the
// remaining tables still normalize. Re-running on unchanged inputs
// produces byte-identical output.
func (uc *NormalizeProjectUseCase) Execute(input NormalizeProjectInput) (*NormalizeProjectOutput, error) {
	if input.NormalizedDirName == "" {
		input.NormalizedDirName = "normalized"
	}
	if input.Dataset == "" {
		input.Dataset = valueobject.DatasetCoreGL
	}

	dir, err := uc.store.ResolveDirectory(input.ProjectDir)
	if err != nil {
		return nil, err
	}

	cfg, err := uc.loader.Load(dir)
	if err != nil {
		return nil, err
	}

	tableAdapter, err := uc.registry.Resolve(cfg.Adapter)
	if err != nil {
		return nil, err
	}

	spec, err := valueobject.LookupDatasetSpec(input.Dataset)
	if err != nil {
		return nil, err
	}

	out := &NormalizeProjectOutput{
		RunID:         uuid.New(),
		Adapter:       tableAdapter.Name(),
		NormalizedDir: filepath.Join(dir, input.NormalizedDirName),
		OK:            true,
	}

	slog.Info("Starting normalization run",
		"run_id", out.RunID,
		"project_dir", dir,
		"adapter", out.Adapter,
		"dataset", spec.Name,
	)

	for _, tableSpec := range spec.Tables {
		result := uc.normalizeTable(dir, out.NormalizedDir, cfg, tableAdapter, tableSpec)
		if !result.OK {
			out.OK = false
			slog.Warn("Table normalization failed",
				"run_id", out.RunID,
				"table", tableSpec.Name,
				"error", result.Error,
			)
		} else {
			slog.Info("Table normalized",
				"run_id", out.RunID,
				"table", tableSpec.Name,
				"rows", result.RowCount,
				"output", result.OutputFile,
			)
		}
		out.Tables = append(out.Tables, result)
	}

	return out, nil
}

func (uc *NormalizeProjectUseCase) normalizeTable(
	dir, normalizedDir string,
	cfg valueobject.ProjectConfig,
	tableAdapter adapter.TableAdapter,
	tableSpec valueobject.TableSpec,
) TableResult {
	result := TableResult{
		Table:      tableSpec.Name,
		SourceFile: filepath.Join(dir, cfg.TableFile(tableSpec)),
		OutputFile: filepath.Join(normalizedDir, tableSpec.FileName),
	}

	raw, err := uc.store.Read(result.SourceFile)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	canonical, err := tableAdapter.Apply(tableSpec.Name, raw)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	if err := uc.store.Write(result.OutputFile, canonical); err != nil {
		result.Error = err.Error()
		return result
	}

	result.RowCount = canonical.Len()
	result.OK = true
	return result
}
