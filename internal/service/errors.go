package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProfileNotFound means the user has not created a profile yet.
	ErrProfileNotFound = errors.New("user profile not found")

	// ErrInvalidBirthDate means the birth date could not be parsed.
	ErrInvalidBirthDate = errors.New("invalid birth_date, expected YYYY-MM-DD")

	// ErrFoodNotFound means a referenced food id does not exist.
	ErrFoodNotFound = errors.New("food not found")
)

// ProfileIncompleteError lists the required profile fields that are unset.
// Height is deliberately not required: without it the BMI adjustment is
// skipped, not failed.
type ProfileIncompleteError struct {
	Missing []string
}

func (e *ProfileIncompleteError) Error() string {
	return fmt.Sprintf("profile is incomplete, missing: %s", strings.Join(e.Missing, ", "))
}

// NoDemographicMatchError means no reference group satisfied the filters.
// Age is the value used for matching, kept for diagnostics.
type NoDemographicMatchError struct {
	Age float64
}

func (e *NoDemographicMatchError) Error() string {
	return fmt.Sprintf("could not match profile to a demographic group (age %.2f)", e.Age)
}
