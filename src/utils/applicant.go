package utils

import (
	"regexp"
	"unicode/utf8"

	"nextglide-backend/src/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// DefaultApplicantName is used when no answer looks like a name.
const DefaultApplicantName = "Applicant"

// ExtractApplicant guesses the applicant email and name from free form
// answers. The email is the first text answer shaped like an address.
// The name is the first text answer longer than two characters that is
// not that email. A text answer is a string or a list holding exactly one
// string. Either result may be empty. The guess can pick the wrong answer.
func ExtractApplicant(values []models.Value) (email, name string) {
	for _, v := range values {
		if s, ok := answerText(v); ok && emailPattern.MatchString(s) {
			email = s
			break
		}
	}
	for _, v := range values {
		s, ok := answerText(v)
		if !ok || s == email {
			continue
		}
		if utf8.RuneCountInString(s) > 2 {
			name = s
			break
		}
	}
	return email, name
}

func answerText(v models.Value) (string, bool) {
	if s, ok := v.Str(); ok {
		return s, true
	}
	if list, ok := v.List(); ok && len(list) == 1 {
		return list[0], true
	}
	return "", false
}

// IsEmail reports whether s looks like an email address.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}
