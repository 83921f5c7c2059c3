package service

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	apperrors "github.com/spec-kit/pet-service/pkg/util/errorutil"
)

// phonePattern is the accepted phone layout, e.g. "+7 999 123 45 67".
var phonePattern = regexp.MustCompile(`^\+7 \d{3} \d{3} \d{2} \d{2}$`)

// fieldErrors collects per-field validation messages.
type fieldErrors map[string]any

func (f fieldErrors) require(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "is required"
	}
}

func (f fieldErrors) length(field, value string, min, max int) {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	if n < min || (max > 0 && n > max) {
		if _, exists := f[field]; !exists {
			f[field] = lengthMessage(min, max)
		}
	}
}

func (f fieldErrors) email(field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		f.require(field, value)
		return
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		f[field] = "must be a valid email address"
	}
}

// phone checks an optional phone number against phonePattern.
func (f fieldErrors) phone(field, value string) {
	if value = strings.TrimSpace(value); value != "" && !phonePattern.MatchString(value) {
		f[field] = "must match +7 XXX XXX XX XX"
	}
}

func (f fieldErrors) add(field, message string) {
	f[field] = message
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.NewValidationError("validation failed", map[string]any(f))
}

func lengthMessage(min, max int) string {
	switch {
	case max <= 0:
		return fmt.Sprintf("must be at least %d characters", min)
	case min <= 0:
		return fmt.Sprintf("must be at most %d characters", max)
	default:
		return fmt.Sprintf("must be between %d and %d characters", min, max)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// parseID returns the canonical form of a resource id, or false when it is not a UUID.
func parseID(id string) (string, bool) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}
