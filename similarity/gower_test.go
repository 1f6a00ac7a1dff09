package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/dataset"
)

func tableOf(t *testing.T, respondents ...dataset.Respondent) *dataset.Table {
	t.Helper()
	return &dataset.Table{
		Schema:      dataset.Survey2018Schema(),
		Respondents: respondents,
	}
}

func resp(row int, housing, transport string, income, expenses, assets float64) dataset.Respondent {
	return dataset.NewRespondent("", row,
		map[string]float64{
			dataset.ColIncome:   income,
			dataset.ColExpenses: expenses,
			dataset.ColAssets:   assets,
		},
		map[string]string{
			dataset.ColFamilyHousing: housing,
			dataset.ColTransport:     transport,
		},
	)
}

func TestGowerIdenticalRespondents(t *testing.T) {
	table := tableOf(t,
		resp(2, "Alugada", "Ônibus", 500, 700, 0),
		resp(3, "Alugada", "Ônibus", 500, 700, 0),
		resp(4, "Quitada", "Carro", 2000, 500, 90000),
	)

	m := Gower(table)
	require.Equal(t, 3, m.Len())
	// Identical rows: every field contributes zero dissimilarity
	assert.InDelta(t, 1.0, m.At(0, 1), 1e-9)
	// Diagonal is unit
	assert.InDelta(t, 1.0, m.At(0, 0), 1e-9)
}

func TestGowerSymmetry(t *testing.T) {
	table := tableOf(t,
		resp(2, "Alugada", "Ônibus", 500, 700, 0),
		resp(3, "Quitada", "Carro", 2000, 500, 90000),
		resp(4, "Cedida", "A pé", 1000, 900, 10000),
	)

	m := Gower(table)
	for i := 0; i < m.Len(); i++ {
		for j := 0; j < m.Len(); j++ {
			assert.InDelta(t, m.At(i, j), m.At(j, i), 1e-12)
		}
	}
}

func TestGowerFullyDissimilarPair(t *testing.T) {
	// Opposite categoricals and range-extreme numerics: dissimilarity 1
	table := tableOf(t,
		resp(2, "Alugada", "Ônibus", 0, 0, 0),
		resp(3, "Quitada", "Carro", 1000, 2000, 50000),
	)

	m := Gower(table)
	assert.InDelta(t, 0.0, m.At(0, 1), 1e-9)
}

func TestGowerMixedContributions(t *testing.T) {
	// Categoricals equal (contribute 0 each), numerics at range extremes
	// (contribute 1 each): dissimilarity 3/5, similarity 2/5
	table := tableOf(t,
		resp(2, "Alugada", "Ônibus", 0, 0, 0),
		resp(3, "Alugada", "Ônibus", 1000, 2000, 50000),
	)

	m := Gower(table)
	assert.InDelta(t, 0.4, m.At(0, 1), 1e-9)
}

func TestGowerConstantNumericColumn(t *testing.T) {
	// A constant column has zero range and contributes no dissimilarity
	table := tableOf(t,
		resp(2, "Alugada", "Ônibus", 500, 700, 0),
		resp(3, "Alugada", "Ônibus", 500, 700, 0),
	)

	m := Gower(table)
	assert.InDelta(t, 1.0, m.At(0, 1), 1e-9)
}

func TestGowerMissingNumericSkipsField(t *testing.T) {
	a := dataset.NewRespondent("", 2,
		map[string]float64{dataset.ColIncome: 500},
		map[string]string{dataset.ColFamilyHousing: "Alugada", dataset.ColTransport: "Ônibus"},
	)
	b := dataset.NewRespondent("", 3,
		map[string]float64{dataset.ColIncome: 500, dataset.ColExpenses: 700, dataset.ColAssets: 100},
		map[string]string{dataset.ColFamilyHousing: "Alugada", dataset.ColTransport: "Ônibus"},
	)
	table := tableOf(t, a, b)

	m := Gower(table)
	// Expenses and assets are missing on one side: only three fields
	// compared, all equal
	assert.InDelta(t, 1.0, m.At(0, 1), 1e-9)
}

func TestGowerNoComparableFields(t *testing.T) {
	// Schema with only numeric columns, each missing on one side
	schema := dataset.Schema{Columns: []dataset.Column{
		{Name: dataset.ColIncome, Kind: dataset.Numeric, Missing: dataset.KeepMissing},
		{Name: dataset.ColExpenses, Kind: dataset.Numeric, Missing: dataset.KeepMissing},
	}}
	table := &dataset.Table{
		Schema: schema,
		Respondents: []dataset.Respondent{
			dataset.NewRespondent("", 2, map[string]float64{dataset.ColIncome: 500}, nil),
			dataset.NewRespondent("", 3, map[string]float64{dataset.ColExpenses: 700}, nil),
		},
	}

	m := Gower(table)
	assert.InDelta(t, 0.0, m.At(0, 1), 1e-9)
}
