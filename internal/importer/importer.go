// Package importer loads per-100 g material nutrition facts from supplier CSV
// exports and spec sheet PDFs.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"

	applog "nutricalc/internal/log"
	"nutricalc/models"
)

var (
	// ErrMaterialNotFound is returned when no material carries the given code.
	ErrMaterialNotFound = errors.New("material not found")
	// ErrNoNutrients is returned when a spec sheet yields no recognised nutrient lines.
	ErrNoNutrients = errors.New("no nutrients found")
)

// Importer writes nutrition facts against materials looked up by code.
type Importer struct {
	db *gorm.DB
}

// Summary reports the outcome of a CSV import. Skipped rows carry the reason.
type Summary struct {
	Created int
	Updated int
	Skipped []string
}

func New(db *gorm.DB) *Importer {
	return &Importer{db: db}
}

// Upsert replaces the nutrition record of the material with the given code. It
// reports whether a new record was created.
func (i *Importer) Upsert(ctx context.Context, materialCode string, facts models.MaterialNutrition) (bool, error) {
	if i.db == nil {
		return false, gorm.ErrInvalidDB
	}
	code := strings.TrimSpace(materialCode)
	if code == "" {
		return false, fmt.Errorf("material code must not be empty")
	}

	created := false
	err := i.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var material models.Material
		if err := tx.Where("code = ?", code).First(&material).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %s", ErrMaterialNotFound, code)
			}
			return fmt.Errorf("find material %q: %w", code, err)
		}

		var existing models.MaterialNutrition
		err := tx.Where("material_id = ?", material.ID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			facts.ID = 0
			facts.MaterialID = material.ID
			if err := tx.Create(&facts).Error; err != nil {
				return fmt.Errorf("create nutrition for %q: %w", code, err)
			}
			created = true
		case err != nil:
			return fmt.Errorf("find nutrition for %q: %w", code, err)
		default:
			facts.Model = existing.Model
			facts.MaterialID = material.ID
			if err := tx.Save(&facts).Error; err != nil {
				return fmt.Errorf("update nutrition for %q: %w", code, err)
			}
		}
		return nil
	})
	return created, err
}

// ImportCSV upserts one nutrition record per CSV row. Rows with an unknown
// material, a missing code or a malformed value are skipped; store failures abort.
func (i *Importer) ImportCSV(ctx context.Context, r io.Reader, source string) (Summary, error) {
	var summary Summary
	rows, err := ReadCSV(r)
	if err != nil {
		return summary, fmt.Errorf("read csv: %w", err)
	}

	for _, row := range rows {
		code := row.MaterialCode()
		if code == "" {
			summary.Skipped = append(summary.Skipped, fmt.Sprintf("line %d: missing material code", row.Line))
			continue
		}
		facts, err := row.Nutrition()
		if err != nil {
			summary.Skipped = append(summary.Skipped, err.Error())
			continue
		}
		facts.Source = rowSource(row, source)

		created, err := i.Upsert(ctx, code, facts)
		if errors.Is(err, ErrMaterialNotFound) {
			summary.Skipped = append(summary.Skipped, fmt.Sprintf("line %d: %v", row.Line, err))
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("line %d: %w", row.Line, err)
		}
		if created {
			summary.Created++
		} else {
			summary.Updated++
		}
	}

	applog.Info(ctx, "nutrition csv imported",
		"source", source,
		"created", summary.Created,
		"updated", summary.Updated,
		"skipped", len(summary.Skipped),
	)
	return summary, nil
}

// ImportSpecSheet extracts the text of a PDF spec sheet and upserts the parsed
// facts for one material.
func (i *Importer) ImportSpecSheet(ctx context.Context, materialCode string, data []byte, source string) (int, error) {
	text, err := ExtractPDFText(data)
	if err != nil {
		return 0, fmt.Errorf("extract pdf text: %w", err)
	}
	return i.ImportSpecSheetText(ctx, materialCode, text, source)
}

// ImportSpecSheetText upserts facts parsed from already extracted spec sheet text.
func (i *Importer) ImportSpecSheetText(ctx context.Context, materialCode, text, source string) (int, error) {
	facts, found := ParseSpecSheet(text)
	if found == 0 {
		return 0, ErrNoNutrients
	}
	facts.Source = source
	if _, err := i.Upsert(ctx, materialCode, facts); err != nil {
		return 0, err
	}
	applog.Info(ctx, "spec sheet imported", "material", materialCode, "nutrients", found, "source", source)
	return found, nil
}

func rowSource(row Row, fallback string) string {
	if value := strings.TrimSpace(row.Values["source"]); value != "" {
		return value
	}
	return fallback
}
