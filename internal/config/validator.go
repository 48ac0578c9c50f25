package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/PetalGarden_Go/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints, then the cross-references between
// plants, rarities and soils
func (c *GameConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf(ErrFmtValidation, domain.ErrInvalidConfiguration, formatValidationError(err))
	}

	var problems []string
	seen := make(map[string]bool, len(c.Plants))
	for _, p := range c.Plants {
		if seen[p.ID] {
			problems = append(problems, fmt.Sprintf(ErrFmtDuplicatePlantID, p.ID))
		}
		seen[p.ID] = true
		if !p.Rarity.IsValid() {
			problems = append(problems, fmt.Sprintf(ErrFmtUnknownRarity, p.ID, p.Rarity))
		}
	}
	for r := range c.RarityWeights {
		if !r.IsValid() {
			problems = append(problems, fmt.Sprintf(ErrFmtUnknownWeight, r))
		}
	}

	soils := make(map[string]bool)
	for _, s := range c.Soils {
		if soils[s.Name] {
			problems = append(problems, fmt.Sprintf(ErrFmtDuplicateSoil, s.Name))
		}
		soils[s.Name] = true
	}
	for _, s := range domain.BuiltinSoils() {
		soils[s.Name] = true
	}
	for name := range c.SoilWeights {
		if !soils[name] {
			problems = append(problems, fmt.Sprintf(ErrFmtUnknownSoil, name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf(ErrFmtValidation, domain.ErrInvalidConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

// formatValidationError flattens validator errors into "field: tag" pairs
func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	parts := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		part := e.Namespace() + ": " + e.Tag()
		if e.Param() != "" {
			part += "=" + e.Param()
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}
