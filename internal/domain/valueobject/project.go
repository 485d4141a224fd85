package valueobject

// ProjectConfig is the parsed per-project configuration (byod.yaml).
// It names the adapter used to normalize the project's raw exports and,
// optionally, the file each canonical table lives in.
type ProjectConfig struct {
	// Adapter is the registered adapter name, e.g. "passthrough" or
	// "core_gl". Required.
	Adapter string

	// Tables maps canonical table names to file names inside the project
	// directory. Missing entries default to "<table>.csv".
	Tables map[string]string
}

// TableFile returns the configured file name for a canonical table,
// falling back to the table spec's default.
func (c ProjectConfig) TableFile(spec TableSpec) string {
	if name, ok := c.Tables[spec.Name]; ok && name != "" {
		return name
	}
	return spec.FileName
}
