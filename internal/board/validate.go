package board

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrUnknownTier is returned when a tier name is not registered.
var ErrUnknownTier = errors.New("unknown tier")

// ConfigError describes a tier that cannot be registered.
type ConfigError struct {
	Tier     string
	Problems []string
}

func (e *ConfigError) Error() string {
	name := e.Tier
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("tier %s: %s", name, strings.Join(e.Problems, "; "))
}

var (
	validateOnce sync.Once
	structRules  *validator.Validate
)

func rules() *validator.Validate {
	validateOnce.Do(func() {
		structRules = validator.New(validator.WithRequiredStructEnabled())
	})
	return structRules
}

// Validate checks a tier before it may be registered.
func Validate(t Tier) error {
	var problems []string

	if err := rules().Struct(t); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &ConfigError{Tier: t.Name, Problems: []string{err.Error()}}
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	if len(t.Multipliers) != ColumnCount {
		problems = append(problems, fmt.Sprintf("multipliers must have %d entries, got %d", ColumnCount, len(t.Multipliers)))
	}
	for i, m := range t.Multipliers {
		if math.IsInf(m, 0) {
			problems = append(problems, fmt.Sprintf("multipliers[%d] must be finite", i))
		}
	}

	if len(problems) > 0 {
		return &ConfigError{Tier: t.Name, Problems: problems}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", strings.ToLower(fe.Field()))
	case "min":
		return fmt.Sprintf("%s must be >= %s", strings.ToLower(fe.Field()), fe.Param())
	case "gt":
		// dive errors carry the index in the namespace, e.g. Tier.Multipliers[3]
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		return fmt.Sprintf("%s must be > %s", strings.ToLower(ns), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", strings.ToLower(fe.Field()), fe.Tag())
	}
}

// validateSet checks every tier and rejects duplicate names.
func validateSet(tiers []Tier) error {
	var errs []error
	seen := make(map[string]bool, len(tiers))
	for _, t := range tiers {
		if err := Validate(t); err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[t.Name] {
			errs = append(errs, &ConfigError{Tier: t.Name, Problems: []string{"duplicate tier name"}})
			continue
		}
		seen[t.Name] = true
	}
	return errors.Join(errs...)
}
