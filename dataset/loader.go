package dataset

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/errors"
)

// Loader reads survey respondents from an .xlsx workbook.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a workbook loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads the named sheet and validates it against the schema. It fails
// fast: a missing sheet, a missing required column, or missing values in a
// RejectMissing column abort the load with a descriptive invalid-class
// error and no partial table.
func (l *Loader) Load(path, sheet string, schema Schema) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Loader", "Load", "open workbook")
	}
	defer func() {
		_ = f.Close()
	}()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: %q", errors.ErrSheetNotFound, sheet),
			"Loader", "Load", "locate sheet")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WrapInvalid(err, "Loader", "Load", "read sheet rows")
	}
	if len(rows) < 2 {
		return nil, errors.WrapInvalid(errors.ErrEmptyDataset, "Loader", "Load", "check row count")
	}

	colIndex, err := mapColumns(rows[0], schema)
	if err != nil {
		return nil, err
	}

	respondents, missingByCol, err := l.parseRows(rows[1:], schema, colIndex)
	if err != nil {
		return nil, err
	}
	if len(missingByCol) > 0 {
		return nil, missingValuesError(missingByCol)
	}
	if len(respondents) == 0 {
		return nil, errors.WrapInvalid(errors.ErrEmptyDataset, "Loader", "Load", "check respondent count")
	}

	l.logger.Info("Loaded survey sheet",
		"path", path,
		"sheet", sheet,
		"respondents", len(respondents),
		"columns", len(schema.Columns))

	return &Table{Schema: schema, Respondents: respondents}, nil
}

// mapColumns resolves each schema column to a cell index by folded header.
// The first matching header wins.
func mapColumns(header []string, schema Schema) (map[string]int, error) {
	byName := make(map[string]int, len(header))
	for i, h := range header {
		folded := Fold(h)
		if _, seen := byName[folded]; !seen {
			byName[folded] = i
		}
	}

	colIndex := make(map[string]int, len(schema.Columns))
	for _, col := range schema.Columns {
		idx, ok := byName[col.Name]
		if !ok {
			return nil, errors.WrapInvalid(
				fmt.Errorf("%w: %q", errors.ErrMissingColumn, col.Name),
				"Loader", "Load", "check required columns")
		}
		colIndex[col.Name] = idx
	}
	return colIndex, nil
}

func (l *Loader) parseRows(
	dataRows [][]string,
	schema Schema,
	colIndex map[string]int,
) ([]Respondent, map[string][]int, error) {
	respondents := make([]Respondent, 0, len(dataRows))
	missingByCol := make(map[string][]int)

	for i, row := range dataRows {
		sheetRow := i + 2 // 1-based, after the header
		if rowEmpty(row) {
			continue
		}

		r := Respondent{
			Row:         sheetRow,
			numeric:     make(map[string]float64),
			categorical: make(map[string]string),
		}

		for _, col := range schema.Columns {
			cell := cellAt(row, colIndex[col.Name])

			if col.Kind == Categorical {
				r.categorical[col.Name] = strings.TrimSpace(cell)
				continue
			}

			v, ok := parseNumber(cell)
			switch {
			case ok:
				r.numeric[col.Name] = v
			case col.Missing == ZeroMissing:
				r.numeric[col.Name] = 0
			case col.Missing == RejectMissing:
				missingByCol[col.Name] = append(missingByCol[col.Name], sheetRow)
			}
			// KeepMissing: leave the value absent
		}

		if idCol := schema.identifier(); idCol != "" && r.categorical[idCol] != "" {
			r.ID = r.categorical[idCol]
		} else {
			r.ID = strconv.Itoa(sheetRow)
		}

		respondents = append(respondents, r)
	}

	return respondents, missingByCol, nil
}

// identifier returns the folded name of the schema's ID column, if any.
func (s Schema) identifier() string {
	for _, col := range s.Columns {
		if col.Identifier {
			return col.Name
		}
	}
	return ""
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// parseNumber accepts both dot and Brazilian comma decimal notation
// ("1234.56", "1.234,56", "1234,56").
func parseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// missingValuesError builds one invalid-class error listing every offending
// column with its sorted sheet rows.
func missingValuesError(missingByCol map[string][]int) error {
	cols := make([]string, 0, len(missingByCol))
	for col := range missingByCol {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	var b strings.Builder
	for i, col := range cols {
		rows := missingByCol[col]
		sort.Ints(rows)
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%q rows %v", col, rows)
	}

	return errors.WrapInvalid(
		fmt.Errorf("%w: %s", errors.ErrMissingValues, b.String()),
		"Loader", "Load", "check critical columns")
}
