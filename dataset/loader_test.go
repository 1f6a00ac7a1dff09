package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/errors"
)

// survey2018Header uses the original accented headers to exercise folding.
var survey2018Header = []any{
	"Qual a situação da MORADIA DO GRUPO FAMILIAR?",
	"Qual o principal meio de transporte que você utiliza para vir até a Universidade?",
	"Renda per capita",
	"Despesas per capita",
	"Valor Total dos bens familiares",
}

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "survey.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestLoadSurvey2018(t *testing.T) {
	path := writeWorkbook(t, "2018", [][]any{
		survey2018Header,
		{"Alugada", "Ônibus", 500.0, 700.0, 0.0},
		{"Própria quitada", "Carro próprio", 2000.0, 1000.0, 150000.0},
	})

	table, err := NewLoader(nil).Load(path, "2018", Survey2018Schema())
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	first := table.Respondents[0]
	assert.Equal(t, 2, first.Row)
	assert.Equal(t, "2", first.ID, "row number stands in for a missing ID column")
	assert.Equal(t, "Alugada", first.Text(ColFamilyHousing))

	income, ok := first.Number(ColIncome)
	require.True(t, ok)
	assert.Equal(t, 500.0, income)

	second := table.Respondents[1]
	assets, ok := second.Number(ColAssets)
	require.True(t, ok)
	assert.Equal(t, 150000.0, assets)
}

func TestLoadMissingSheet(t *testing.T) {
	path := writeWorkbook(t, "2018", [][]any{survey2018Header})

	_, err := NewLoader(nil).Load(path, "2019", Survey2018Schema())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSheetNotFound)
	assert.True(t, errors.IsInvalid(err))
}

func TestLoadMissingWorkbook(t *testing.T) {
	_, err := NewLoader(nil).Load(filepath.Join(t.TempDir(), "absent.xlsx"), "2018", Survey2018Schema())
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestLoadMissingColumn(t *testing.T) {
	path := writeWorkbook(t, "2018", [][]any{
		{"Renda per capita", "Despesas per capita"},
		{500.0, 700.0},
	})

	_, err := NewLoader(nil).Load(path, "2018", Survey2018Schema())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMissingColumn)
	assert.Contains(t, err.Error(), ColFamilyHousing)
}

func TestLoadMissingCriticalValues(t *testing.T) {
	path := writeWorkbook(t, "2018", [][]any{
		survey2018Header,
		{"Alugada", "Ônibus", nil, 700.0, 0.0},
		{"Cedida", "A pé", 300.0, 400.0, 1000.0},
		{"Alugada", "Ônibus", nil, nil, 500.0},
	})

	_, err := NewLoader(nil).Load(path, "2018", Survey2018Schema())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrMissingValues)
	// Offending sheet rows are listed per column
	assert.Contains(t, err.Error(), "renda per capita")
	assert.Contains(t, err.Error(), "[2 4]")
	assert.Contains(t, err.Error(), "despesas per capita")
	assert.Contains(t, err.Error(), "[4]")
}

func TestLoadEmptySheet(t *testing.T) {
	path := writeWorkbook(t, "2018", [][]any{survey2018Header})

	_, err := NewLoader(nil).Load(path, "2018", Survey2018Schema())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyDataset)
}

func TestLoadCappedSchemaCoercesMissing(t *testing.T) {
	header := []any{
		"ID_DISCENTE",
		"Qual sua PROCEDÊNCIA escolar?",
		"Qual a situação da moradia do aluno?",
		"Qual a situação da MORADIA DO GRUPO FAMILIAR?",
		"Quantos filhos o solicitante possui?",
		"Renda per capita",
		"Valor Total dos bens familiares",
		"Quantidade de indivíduos com doença grave no grupo familiar",
		"Familiares com superior completo ou pós",
		"Qual o principal meio de transporte que você utiliza para vir até a Universidade?",
	}
	path := writeWorkbook(t, "alunos", [][]any{
		header,
		{"A123", "Escola pública", "Aluguel", "Financiada", nil, 700.0, nil, 0, 0, "Ônibus intermunicipal"},
	})

	table, err := NewLoader(nil).Load(path, "alunos", CappedSchema())
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	r := table.Respondents[0]
	assert.Equal(t, "A123", r.ID)

	children, ok := r.Number(ColChildren)
	require.True(t, ok, "ZeroMissing coerces blanks to zero")
	assert.Zero(t, children)

	assets, ok := r.Number(ColAssets)
	require.True(t, ok)
	assert.Zero(t, assets)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1234.56", 1234.56, true},
		{"1234,56", 1234.56, true},
		{"1.234,56", 1234.56, true},
		{" 500 ", 500, true},
		{"0", 0, true},
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "renda per capita", Fold("  Renda  per Cápita "))
	assert.Equal(t, "qual sua procedencia escolar?", Fold("Qual sua PROCEDÊNCIA escolar?"))
	assert.Equal(t, "heranca", Fold("Herança"))
}

func TestFilterIncome(t *testing.T) {
	path := writeWorkbook(t, "2018", [][]any{
		survey2018Header,
		{"Alugada", "Ônibus", 500.0, 700.0, 0.0},
		{"Quitada", "Carro", 5000.0, 1000.0, 200000.0},
		{"Cedida", "A pé", 2277.0, 900.0, 0.0},
	})

	table, err := NewLoader(nil).Load(path, "2018", Survey2018Schema())
	require.NoError(t, err)

	filtered := table.FilterIncome(1.5 * 1518.0)
	require.Equal(t, 2, filtered.Len())
	assert.Equal(t, 2, filtered.Respondents[0].Row)
	assert.Equal(t, 4, filtered.Respondents[1].Row)
	// Original table untouched
	assert.Equal(t, 3, table.Len())
}
