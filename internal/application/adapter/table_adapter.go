package adapter

import (
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

// TableAdapter maps a raw input table — whatever headers and value
// formatting the user's export used — to the canonical schema of a named
// table. Adapters are registered by name and looked up from project
// configuration; new input formats are new implementations, not new
// branches in the orchestrator.
type TableAdapter interface {
	// Name is the registry key, e.g. "passthrough" or "core_gl".
	Name() string

	// Apply transforms the input into the canonical shape for the given
	// canonical table name (valueobject.TableChartOfAccounts or
	// valueobject.TableGLJournal). Unrecognized columns pass through
	// after the canonical ones, in their original relative order.
	Apply(table string, input valueobject.Table) (valueobject.Table, error)
}
