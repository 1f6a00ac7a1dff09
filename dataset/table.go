// Package dataset loads survey respondents from xlsx workbooks into an
// immutable table, resolving columns by accent-folded header name and
// enforcing per-column missing-value policies.
package dataset

// AttributeKind distinguishes how a column participates in scoring and in
// the Gower dissimilarity computation.
type AttributeKind int

const (
	// Numeric attributes are range-scaled in the Gower measure
	Numeric AttributeKind = iota
	// Categorical attributes compare by equality
	Categorical
)

// MissingPolicy controls how empty or unparseable numeric cells are handled.
type MissingPolicy int

const (
	// RejectMissing aborts the load, listing the offending rows
	RejectMissing MissingPolicy = iota
	// ZeroMissing coerces missing values to zero
	ZeroMissing
	// KeepMissing records the value as absent; scoring and Gower skip it
	KeepMissing
)

// Column describes one required column of the input sheet. Name is the
// folded header (see Fold).
type Column struct {
	Name    string
	Kind    AttributeKind
	Missing MissingPolicy

	// Identifier marks the column holding the respondent ID; it is
	// excluded from similarity computation
	Identifier bool
}

// Schema lists the columns a ruleset requires, in a fixed order that the
// Gower computation also iterates in.
type Schema struct {
	Columns []Column
}

// Folded column names shared by the rulesets.
const (
	ColFamilyHousing  = "qual a situacao da moradia do grupo familiar?"
	ColStudentHousing = "qual a situacao da moradia do aluno?"
	ColTransport      = "qual o principal meio de transporte que voce utiliza para vir ate a universidade?"
	ColSchoolOrigin   = "qual sua procedencia escolar?"
	ColIncome         = "renda per capita"
	ColExpenses       = "despesas per capita"
	ColAssets         = "valor total dos bens familiares"
	ColChildren       = "quantos filhos o solicitante possui?"
	ColIllMembers     = "quantidade de individuos com doenca grave no grupo familiar"
	ColHigherEd       = "familiares com superior completo ou pos"
	ColStudentID      = "id_discente"
)

// Survey2018Schema returns the five-column schema of the 2018 analysis.
// Missing values in the numeric columns are a hard input error.
func Survey2018Schema() Schema {
	return Schema{Columns: []Column{
		{Name: ColFamilyHousing, Kind: Categorical},
		{Name: ColTransport, Kind: Categorical},
		{Name: ColIncome, Kind: Numeric, Missing: RejectMissing},
		{Name: ColExpenses, Kind: Numeric, Missing: RejectMissing},
		{Name: ColAssets, Kind: Numeric, Missing: RejectMissing},
	}}
}

// CappedSchema returns the extended schema used by the capped ruleset.
// Numeric columns are coerced with missing values treated as zero.
func CappedSchema() Schema {
	return Schema{Columns: []Column{
		{Name: ColStudentID, Kind: Categorical, Identifier: true},
		{Name: ColSchoolOrigin, Kind: Categorical},
		{Name: ColStudentHousing, Kind: Categorical},
		{Name: ColFamilyHousing, Kind: Categorical},
		{Name: ColChildren, Kind: Numeric, Missing: ZeroMissing},
		{Name: ColIncome, Kind: Numeric, Missing: ZeroMissing},
		{Name: ColAssets, Kind: Numeric, Missing: ZeroMissing},
		{Name: ColIllMembers, Kind: Numeric, Missing: ZeroMissing},
		{Name: ColHigherEd, Kind: Numeric, Missing: ZeroMissing},
		{Name: ColTransport, Kind: Categorical},
	}}
}

// Respondent is one loaded survey row. Values are immutable after loading;
// derived results (index, community label) live alongside the table, not
// inside it.
type Respondent struct {
	// ID identifies the respondent in reports; the sheet row number when
	// the schema has no identifier column
	ID string

	// Row is the 1-based sheet row the respondent was read from
	Row int

	numeric     map[string]float64
	categorical map[string]string
}

// NewRespondent builds a respondent from explicit attribute maps. The maps
// are copied so the respondent stays immutable.
func NewRespondent(id string, row int, numeric map[string]float64, categorical map[string]string) Respondent {
	r := Respondent{
		ID:          id,
		Row:         row,
		numeric:     make(map[string]float64, len(numeric)),
		categorical: make(map[string]string, len(categorical)),
	}
	for k, v := range numeric {
		r.numeric[k] = v
	}
	for k, v := range categorical {
		r.categorical[k] = v
	}
	return r
}

// Number returns the value of a numeric column and whether it was present.
func (r Respondent) Number(col string) (float64, bool) {
	v, ok := r.numeric[col]
	return v, ok
}

// Text returns the trimmed value of a categorical column; empty when absent.
func (r Respondent) Text(col string) string {
	return r.categorical[col]
}

// Table is the immutable output of the loader.
type Table struct {
	Schema      Schema
	Respondents []Respondent
}

// Len returns the respondent count.
func (t *Table) Len() int {
	return len(t.Respondents)
}

// FilterIncome returns a new table keeping only respondents whose
// per-capita income is at most limit. Respondents without an income value
// are kept.
func (t *Table) FilterIncome(limit float64) *Table {
	kept := make([]Respondent, 0, len(t.Respondents))
	for _, r := range t.Respondents {
		if income, ok := r.Number(ColIncome); ok && income > limit {
			continue
		}
		kept = append(kept, r)
	}
	return &Table{Schema: t.Schema, Respondents: kept}
}
