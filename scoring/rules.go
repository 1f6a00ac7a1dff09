package scoring

import (
	"strings"

	"github.com/hansblade/CMAC03-Auxilio-Estudantil/dataset"
)

// Point values of the survey2018 ruleset.
const (
	incomeBelowHalfWage   = 40
	incomeBelowFullWage   = 30
	incomeUpToOneAndHalf  = 20
	housingRented         = 15
	housingBeingPaid      = 12
	housingPaidOff        = 5
	housingInherited      = 2
	expensesUnknownIncome = 10
	assetsNone            = 15
	assetsLow             = 10
	assetsMedium          = 5
)

// incomePoints scores per-capita income against minimum-wage bands.
// An absent value contributes zero.
func incomePoints(income float64, present bool, minimumWage float64) int {
	if !present {
		return 0
	}
	switch {
	case income < 0.5*minimumWage:
		return incomeBelowHalfWage
	case income < 1.0*minimumWage:
		return incomeBelowFullWage
	case income <= 1.5*minimumWage:
		return incomeUpToOneAndHalf
	}
	return 0
}

// housingPoints scores the family housing description by substring match on
// the folded text.
func housingPoints(housing string) int {
	h := dataset.Fold(housing)
	switch {
	case strings.Contains(h, "alugada"):
		return housingRented
	case strings.Contains(h, "pagamento"):
		return housingBeingPaid
	case strings.Contains(h, "quitada"):
		return housingPaidOff
	case strings.Contains(h, "heranca"):
		return housingInherited
	}
	return 0
}

// expensePoints scores the expenses/income ratio. Unusable data (either
// value absent, or zero income) scores the maximum band: a respondent whose
// expenses cannot be related to income is treated as stretched.
func expensePoints(expenses, income float64, expensesOK, incomeOK bool) int {
	if !expensesOK || !incomeOK || income == 0 {
		return 10
	}
	ratio := expenses / income
	switch {
	case ratio > 2.0:
		return 10
	case ratio > 1.5:
		return 7
	case ratio > 1.0:
		return 4
	}
	return 0
}

// assetPoints scores total family assets; points decrease as value grows.
func assetPoints(assets float64, present bool) int {
	if !present {
		return 0
	}
	switch {
	case assets == 0:
		return assetsNone
	case assets < 10000:
		return assetsLow
	case assets < 100000:
		return assetsMedium
	}
	return 0
}

// Capped-ruleset bands.

func cappedIncomePoints(income float64, present bool, minimumWage float64) int {
	if !present {
		return 0
	}
	switch {
	case income <= 0.5*minimumWage:
		return 40
	case income <= 1.0*minimumWage:
		return 30
	case income <= 1.5*minimumWage:
		return 20
	}
	return 0
}

// precariousDwellings are the folded housing answers that indicate rent or
// an ongoing mortgage.
var precariousDwellings = map[string]bool{
	"aluguel":       true,
	"financiado":    true,
	"financiamento": true,
}

// dwellingPoints scores the student's own dwelling (8) and the family
// dwelling (7), capped at 15.
func dwellingPoints(studentHousing, familyHousing string) int {
	points := 0
	if precariousDwellings[dataset.Fold(studentHousing)] {
		points += 8
	}
	if precariousDwellings[dataset.Fold(familyHousing)] {
		points += 7
	}
	return min(points, 15)
}

func schoolOriginPoints(origin string) int {
	o := dataset.Fold(origin)
	switch {
	case strings.Contains(o, "publica"):
		return 10
	case strings.Contains(o, "bolsa"), strings.Contains(o, "filantropica"):
		return 5
	}
	return 0
}

func cappedAssetPoints(assets float64, present bool) int {
	if !present {
		return 0
	}
	switch {
	case assets == 0:
		return 15
	case assets <= 20000:
		return 10
	case assets <= 50000:
		return 5
	}
	return 0
}

// ruralTransportMarkers flag commutes from outside the campus town.
var ruralTransportMarkers = []string{"zona rural", "cidade vizinha", "intermunicipal"}

// socialFactorPoints scores household aggravating factors, capped at 20:
// a gravely ill family member, dependent children, a long commute, and no
// relative with completed higher education.
func socialFactorPoints(illMembers, children float64, transport string, higherEdRelatives float64) int {
	points := 0
	if illMembers > 0 {
		points += 5
	}
	if children > 0 {
		points += 5
	}
	t := dataset.Fold(transport)
	for _, marker := range ruralTransportMarkers {
		if strings.Contains(t, marker) {
			points += 5
			break
		}
	}
	if higherEdRelatives == 0 {
		points += 5
	}
	return min(points, 20)
}
