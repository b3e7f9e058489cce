package validation

import (
	"errors"
	"strings"
	"unicode"

	"github.com/kjstillabower/vehicle-fleet-service/internal/models"
)

// ErrKindEmpty is returned when the kind is empty or whitespace-only after trim.
var ErrKindEmpty = errors.New("vehicle kind is required")

// ErrKindUnknown is returned when the kind names no registered variant.
var ErrKindUnknown = errors.New("vehicle kind must be car or motorcycle")

// ErrNameTooLong is returned when brand or model exceeds the maximum length.
var ErrNameTooLong = errors.New("name too long")

// ErrNameInvalidChars is returned when brand or model contains control characters.
var ErrNameInvalidChars = errors.New("name contains invalid characters")

// ValidateKind trims and lowercases the input and checks it names a known
// variant. Returns the normalized kind or an error suitable for 400
// INVALID_KIND responses.
func ValidateKind(input string) (string, error) {
	kind := strings.ToLower(strings.TrimSpace(input))
	if kind == "" {
		return "", ErrKindEmpty
	}
	switch kind {
	case models.KindCar, models.KindMotorcycle:
		return kind, nil
	default:
		return "", ErrKindUnknown
	}
}

// ValidateName bounds brand/model input at the API boundary: at most maxLen
// runes, no control characters. Empty names are allowed; the vehicle
// constructors accept any text and the transport only guards against abuse.
func ValidateName(input string, maxLen int) (string, error) {
	if maxLen > 0 && len([]rune(input)) > maxLen {
		return "", ErrNameTooLong
	}
	for _, r := range input {
		if unicode.IsControl(r) {
			return "", ErrNameInvalidChars
		}
	}
	return input, nil
}
