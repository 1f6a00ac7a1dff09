// Package scoring computes the vulnerability index: a deterministic sum of
// banded contributions from a respondent's socioeconomic attributes.
//
// Two rulesets are provided. The survey2018 ruleset reproduces the original
// 2018 analysis (income, family housing, expense ratio, assets; uncapped).
// The capped ruleset extends it with school origin, the student's own
// dwelling, and social aggravating factors, clipping the total at a
// configured maximum.
//
// Rules never error: a missing or unparseable attribute contributes zero
// points, except the expense-ratio rule, which treats unusable data as the
// highest band.
package scoring

import (
	"fmt"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/config"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/dataset"
	"github.com/hansblade/CMAC03-Auxilio-Estudantil/errors"
)

// Scorer maps respondents to their vulnerability index.
type Scorer struct {
	ruleset     string
	minimumWage float64
	cap         int
}

// NewScorer builds a scorer for the configured ruleset.
func NewScorer(cfg config.Config) (*Scorer, error) {
	switch cfg.Ruleset {
	case config.RulesetSurvey2018, config.RulesetCapped:
	default:
		return nil, errors.WrapInvalid(
			fmt.Errorf("%w: unknown ruleset %q", errors.ErrInvalidConfig, cfg.Ruleset),
			"Scorer", "NewScorer", "select ruleset")
	}
	return &Scorer{
		ruleset:     cfg.Ruleset,
		minimumWage: cfg.MinimumWage,
		cap:         cfg.IndexCap,
	}, nil
}

// Schema returns the dataset schema the ruleset requires.
func (s *Scorer) Schema() dataset.Schema {
	if s.ruleset == config.RulesetCapped {
		return dataset.CappedSchema()
	}
	return dataset.Survey2018Schema()
}

// Score computes the vulnerability index for one respondent.
func (s *Scorer) Score(r dataset.Respondent) int {
	if s.ruleset == config.RulesetCapped {
		return s.scoreCapped(r)
	}
	return s.scoreSurvey2018(r)
}

// ScoreAll computes the index for every respondent, in table order.
func (s *Scorer) ScoreAll(t *dataset.Table) []int {
	indices := make([]int, t.Len())
	for i, r := range t.Respondents {
		indices[i] = s.Score(r)
	}
	return indices
}

func (s *Scorer) scoreSurvey2018(r dataset.Respondent) int {
	income, incomeOK := r.Number(dataset.ColIncome)
	expenses, expensesOK := r.Number(dataset.ColExpenses)
	assets, assetsOK := r.Number(dataset.ColAssets)

	return incomePoints(income, incomeOK, s.minimumWage) +
		housingPoints(r.Text(dataset.ColFamilyHousing)) +
		expensePoints(expenses, income, expensesOK, incomeOK) +
		assetPoints(assets, assetsOK)
}

func (s *Scorer) scoreCapped(r dataset.Respondent) int {
	income, incomeOK := r.Number(dataset.ColIncome)
	assets, assetsOK := r.Number(dataset.ColAssets)
	ill, _ := r.Number(dataset.ColIllMembers)
	children, _ := r.Number(dataset.ColChildren)
	higherEd, _ := r.Number(dataset.ColHigherEd)

	total := cappedIncomePoints(income, incomeOK, s.minimumWage) +
		dwellingPoints(r.Text(dataset.ColStudentHousing), r.Text(dataset.ColFamilyHousing)) +
		schoolOriginPoints(r.Text(dataset.ColSchoolOrigin)) +
		cappedAssetPoints(assets, assetsOK) +
		socialFactorPoints(ill, children, r.Text(dataset.ColTransport), higherEd)

	return min(total, s.cap)
}
