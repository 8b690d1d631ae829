// Package identity handles campus email validation and the local
// signed profile session consumed by the submission gateway.
package identity

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/uwtype/uwtype/internal/model"
)

// CampusDomain is the only email domain allowed to submit scores.
const CampusDomain = "@uwaterloo.ca"

// ErrNotCampusEmail indicates the email is not an institutional address.
var ErrNotCampusEmail = errors.New("only " + CampusDomain + " emails are allowed")

// ValidateEmail normalizes an email and enforces the campus restriction.
func ValidateEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == CampusDomain || !strings.HasSuffix(email, CampusDomain) {
		return "", ErrNotCampusEmail
	}
	return email, nil
}

// NewProfile builds a profile with a fresh user id. Program and faculty
// are optional and trimmed; the empty string means absent.
func NewProfile(email, program, faculty string) (model.Profile, error) {
	email, err := ValidateEmail(email)
	if err != nil {
		return model.Profile{}, err
	}
	return model.Profile{
		UserID:  uuid.NewString(),
		Email:   email,
		Program: strings.TrimSpace(program),
		Faculty: strings.TrimSpace(faculty),
	}, nil
}
