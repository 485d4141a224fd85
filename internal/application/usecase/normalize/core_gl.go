package normalize

import (
	"fmt"
	"strings"

	"github.com/trackd-analytics/byod/internal/application/adapter"
	domainerror "github.com/trackd-analytics/byod/internal/domain/error"
	"github.com/trackd-analytics/byod/internal/domain/valueobject"
)

// AdapterCoreGL is the registry name of the tolerant adapter.
const AdapterCoreGL = "core_gl"

// Pseudo-canonical columns core_gl recognizes on journal input and folds
// into the canonical debit/credit pair.
const (
	columnDC     = "dc"
	columnAmount = "amount"
)

// Header synonyms, per canonical table. Keys are normalized with
// normalizeHeader. Adding a synonym is a data change here, not a code
// change anywhere else.
var coaSynonyms = map[string]string{
	"account id":     "account_id",
	"acct id":        "account_id",
	"account no":     "account_id",
	"account number": "account_id",
	"account code":   "account_id",
	"account name":   "account_name",
	"account title":  "account_name",
	"name":           "account_name",
	"account type":   "account_type",
	"type":           "account_type",
	"acct type":      "account_type",
	"normal side":    "normal_side",
	"normal balance": "normal_side",
	"balance side":   "normal_side",
}

var journalSynonyms = map[string]string{
	"txn id":           "txn_id",
	"transaction id":   "txn_id",
	"tran id":          "txn_id",
	"entry id":         "txn_id",
	"journal id":       "txn_id",
	"date":             "date",
	"txn date":         "date",
	"transaction date": "date",
	"posting date":     "date",
	"post date":        "date",
	"doc id":           "doc_id",
	"document id":      "doc_id",
	"doc no":           "doc_id",
	"document no":      "doc_id",
	"reference":        "doc_id",
	"ref":              "doc_id",
	"description":      "description",
	"memo":             "description",
	"narration":        "description",
	"details":          "description",
	"particulars":      "description",
	"account id":       "account_id",
	"acct id":          "account_id",
	"account no":       "account_id",
	"account number":   "account_id",
	"account":          "account_id",
	"debit":            "debit",
	"dr":               "debit",
	"debit amount":     "debit",
	"credit":           "credit",
	"cr":               "credit",
	"credit amount":    "credit",
	"dc":               columnDC,
	"d c":              columnDC,
	"dr cr":            columnDC,
	"side":             columnDC,
	"amount":           columnAmount,
	"value":            columnAmount,
	"amt":              columnAmount,
}

// Canonical columns whose values are money and need cleaning.
var moneyColumns = map[string]bool{
	"debit":      true,
	"credit":     true,
	columnAmount: true,
}

// normalizeHeader lowercases a header and collapses underscores, hyphens
// and runs of whitespace into single spaces, so "Account_ID", "account-id"
// and " ACCOUNT  ID " all match the same synonym.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer("_", " ", "-", " ").Replace(h)
	return strings.Join(strings.Fields(h), " ")
}

// coreGLAdapter maps heterogeneous accounting exports to the canonical
// schema: tolerant header matching against the synonym tables, money
// cleaning on debit/credit columns, and folding of a dc/amount pair into
// the canonical debit/credit shape.
type coreGLAdapter struct{}

// NewCoreGLAdapter creates the tolerant adapter.
func NewCoreGLAdapter() adapter.TableAdapter {
	return coreGLAdapter{}
}

func (coreGLAdapter) Name() string {
	return AdapterCoreGL
}

func (coreGLAdapter) Apply(table string, input valueobject.Table) (valueobject.Table, error) {
	spec, err := valueobject.LookupTableSpec(table)
	if err != nil {
		return valueobject.Table{}, err
	}

	synonyms := coaSynonyms
	if table == valueobject.TableGLJournal {
		synonyms = journalSynonyms
	}

	// Match input headers to canonical names. First match wins; columns
	// matching an already-claimed canonical name fall through as extras.
	matched := make(map[string]int) // canonical name -> input column index
	var extras []int
	for i, col := range input.Columns {
		canonical, ok := synonyms[normalizeHeader(col)]
		if !ok {
			extras = append(extras, i)
			continue
		}
		if _, taken := matched[canonical]; taken {
			extras = append(extras, i)
			continue
		}
		matched[canonical] = i
	}

	out, err := buildCanonical(table, spec, input, matched)
	if err != nil {
		return valueobject.Table{}, err
	}

	// Unmatched columns pass through after the canonical ones, in their
	// original relative order, values whitespace-trimmed only.
	for _, idx := range extras {
		out.Columns = append(out.Columns, input.Columns[idx])
		for r := range out.Rows {
			val := ""
			if idx < len(input.Rows[r]) {
				val = strings.TrimSpace(input.Rows[r][idx])
			}
			out.Rows[r] = append(out.Rows[r], val)
		}
	}

	return out, nil
}

// buildCanonical assembles the canonical columns in canonical order,
// cleaning money values and folding dc/amount when the export used that
// shape instead of separate debit/credit columns.
func buildCanonical(table string, spec valueobject.TableSpec, input valueobject.Table, matched map[string]int) (valueobject.Table, error) {
	_, hasDebit := matched["debit"]
	_, hasCredit := matched["credit"]
	dcIdx, hasDC := matched[columnDC]
	amountIdx, hasAmount := matched[columnAmount]
	foldDC := table == valueobject.TableGLJournal && !hasDebit && !hasCredit && hasDC && hasAmount

	// Columns core_gl can synthesize when the export omits them: blank
	// normal_side is inferred later from account_type, blank doc_id
	// defaults to txn_id in the tidy transform, blank description is
	// simply blank.
	synthesizable := map[string]bool{"normal_side": true, "doc_id": true, "description": true}

	var missing []string
	for _, canonical := range spec.RequiredColumns {
		if _, ok := matched[canonical]; ok {
			continue
		}
		if synthesizable[canonical] {
			continue
		}
		if foldDC && (canonical == "debit" || canonical == "credit") {
			continue
		}
		missing = append(missing, canonical)
	}
	if len(missing) > 0 {
		return valueobject.Table{}, domainerror.NewAdapterInputError(
			AdapterCoreGL,
			table,
			fmt.Sprintf("no header matched canonical column(s): %s; found: %s",
				strings.Join(missing, ", "),
				strings.Join(input.Columns, ", ")),
		)
	}

	out := valueobject.NewTable(spec.RequiredColumns)
	for r := range input.Rows {
		row := make([]string, 0, len(spec.RequiredColumns))
		for _, canonical := range spec.RequiredColumns {
			if foldDC && (canonical == "debit" || canonical == "credit") {
				val, err := foldedValue(canonical, input, r, dcIdx, amountIdx)
				if err != nil {
					return valueobject.Table{}, err
				}
				row = append(row, val)
				continue
			}

			idx, ok := matched[canonical]
			if !ok {
				row = append(row, "") // synthesized blank column
				continue
			}
			raw := ""
			if idx < len(input.Rows[r]) {
				raw = input.Rows[r][idx]
			}
			if moneyColumns[canonical] {
				if strings.TrimSpace(raw) == "" {
					row = append(row, "")
					continue
				}
				d, err := valueobject.ParseMoney(raw)
				if err != nil {
					return valueobject.Table{}, domainerror.NewValueCoercionError(table, canonical, r+1, raw, err)
				}
				row = append(row, d.String())
				continue
			}
			row = append(row, strings.TrimSpace(raw))
		}
		out.Rows = append(out.Rows, row)
	}
	return out, nil
}

// foldedValue derives the debit or credit cell of row r from a dc flag and
// a single amount column.
func foldedValue(canonical string, input valueobject.Table, r, dcIdx, amountIdx int) (string, error) {
	dcRaw := ""
	if dcIdx < len(input.Rows[r]) {
		dcRaw = input.Rows[r][dcIdx]
	}
	amountRaw := ""
	if amountIdx < len(input.Rows[r]) {
		amountRaw = input.Rows[r][amountIdx]
	}

	var side string
	switch strings.ToLower(strings.TrimSpace(dcRaw)) {
	case "d", "dr", "debit":
		side = "debit"
	case "c", "cr", "credit":
		side = "credit"
	default:
		return "", domainerror.NewValueCoercionError(valueobject.TableGLJournal, columnDC, r+1, dcRaw, nil)
	}

	if canonical != side {
		return "0", nil
	}
	d, err := valueobject.ParseMoney(amountRaw)
	if err != nil {
		return "", domainerror.NewValueCoercionError(valueobject.TableGLJournal, columnAmount, r+1, amountRaw, err)
	}
	return d.String(), nil
}
