package nutrition

import "strings"

var gramFactors = map[string]float64{
	"G":  1,
	"KG": 1000,
	"LB": 453.592,
	"OZ": 28.3495,
	"MG": 0.001,
}

// GramFactor returns how many grams one unit of code weighs. The lookup is
// case-insensitive; ok is false for codes that are not weight units.
func GramFactor(code string) (factor float64, ok bool) {
	factor, ok = gramFactors[strings.ToUpper(strings.TrimSpace(code))]
	return factor, ok
}

// unitIndex maps unit ids to their code and gram factor.
type unitIndex map[uint]indexedUnit

type indexedUnit struct {
	code   string
	factor float64
	known  bool
}

func buildUnitIndex(units []Unit) unitIndex {
	index := make(unitIndex, len(units))
	for _, unit := range units {
		factor, ok := GramFactor(unit.Code)
		index[unit.ID] = indexedUnit{code: unit.Code, factor: factor, known: ok}
	}
	return index
}
