package validation

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/moviehub/movies-api/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	// Register custom validators for movie fields
	if err := Validate.RegisterValidation("category", validateCategory); err != nil {
		panic(fmt.Sprintf("failed to register category validator: %v", err))
	}
	if err := Validate.RegisterValidation("rating_step", validateRatingStep); err != nil {
		panic(fmt.Sprintf("failed to register rating_step validator: %v", err))
	}
}

// validateCategory validates that a string is a valid Category enum value
func validateCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).Valid()
}

// validateRatingStep validates that a rating lands on a 0.5 increment
func validateRatingStep(fl validator.FieldLevel) bool {
	value := fl.Field().Float()
	scaled := value * 2
	return math.Abs(scaled-math.Round(scaled)) < 1e-9
}

// SanitizeText sanitizes text input by trimming whitespace and removing control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateCategory validates a Category string value
func ValidateCategory(value string) error {
	if models.Category(value).Valid() {
		return nil
	}
	return fmt.Errorf("invalid category: %s", value)
}
