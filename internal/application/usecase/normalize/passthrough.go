package normalize

import (
	"fmt"
	"strings"

	"github.com/trackd-analytics/byod/internal/application/adapter"
	domainerror "github.com/trackd-analytics/byod/internal/domain/error"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

// AdapterPassthrough is the registry name of the passthrough adapter.
const AdapterPassthrough = "passthrough"

// passthroughAdapter assumes the export already uses canonical headers.
// It only reorders columns to the canonical order; values are not touched
// and extra columns are kept at the end, unmodified.
type passthroughAdapter struct{}

// NewPassthroughAdapter creates the passthrough adapter.
func NewPassthroughAdapter() adapter.TableAdapter {
	return passthroughAdapter{}
}

func (passthroughAdapter) Name() string {
	return AdapterPassthrough
}

// Apply verifies every canonical column is present (order-independent) and
// reorders the table into canonical column order.
func (passthroughAdapter) Apply(table string, input valueobject.Table) (valueobject.Table, error) {
	spec, err := valueobject.LookupTableSpec(table)
	if err != nil {
		return valueobject.Table{}, err
	}

	if missing := input.MissingColumns(spec.RequiredColumns); len(missing) > 0 {
		return valueobject.Table{}, domainerror.NewAdapterInputError(
			AdapterPassthrough,
			table,
			fmt.Sprintf("input headers are not canonical; missing: %s; found: %s",
				strings.Join(missing, ", "),
				strings.Join(input.Columns, ", ")),
		)
	}

	return input.Reorder(spec.RequiredColumns), nil
}
