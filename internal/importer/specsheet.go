package importer

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"nutricalc/models"
)

// ExtractPDFText returns the plain text of every page in a PDF document.
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// ParseSpecSheet reads "Label value [unit]" lines from supplier spec sheet text,
// such as "Total Fat 36 g" or "Sodium: 27mg". A label must be followed directly
// by its value, so "Calories from Fat 320" and "Fatty acids, total trans 1.2 g"
// match nothing. Values are converted to the column's unit; a missing unit means
// the column's own, and an unknown or incompatible unit skips the line. Values are
// assumed to be per 100 g. The first accepted occurrence of a nutrient wins;
// found reports how many nutrients were read.
func ParseSpecSheet(text string) (facts models.MaterialNutrition, found int) {
	seen := make(map[*nutrientColumn]bool)
	for _, line := range strings.Split(text, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		for _, matcher := range labelMatchers {
			if !strings.HasPrefix(line, matcher.label) {
				continue
			}
			value, ok := specSheetValue(line[len(matcher.label):], matcher.column.unit)
			if !ok {
				continue
			}
			if !seen[matcher.column] {
				matcher.column.set(&facts, &value)
				seen[matcher.column] = true
				found++
			}
			break
		}
	}
	return facts, found
}

// specSheetValue parses the value that follows a label and converts it to unit.
func specSheetValue(rest, unit string) (float64, bool) {
	match := valuePattern.FindStringSubmatchIndex(rest)
	if match == nil {
		return 0, false
	}
	if next := rest[match[1]:]; next != "" && unicode.IsLetter([]rune(next)[0]) {
		return 0, false
	}

	value, err := strconv.ParseFloat(rest[match[2]:match[3]], 64)
	if err != nil || value < 0 {
		return 0, false
	}
	if match[4] < 0 {
		return value, true
	}

	from, to := unitScale[rest[match[4]:match[5]]], unitScale[unit]
	if from.energy != to.energy {
		return 0, false
	}
	converted := value * from.scale / to.scale
	return math.Round(converted*1e6) / 1e6, true
}
