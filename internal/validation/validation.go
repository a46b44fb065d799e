// Package validation provides input normalization and validation utilities.
//
// The *Violations helpers accumulate every broken rule instead of stopping at
// the first one, so callers can report the complete set in a single response.
package validation

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Violation messages. Services translate store-level constraint violations
// into the same strings the pre-checks produce, so a lost race reads the same
// as an ordinary duplicate.
const (
	ErrUsernameRequired = "You must provide a username"
	ErrUsernameCharset  = "Username can only contain letters and numbers"
	ErrUsernameTooShort = "Username must be at least 3 characters long"
	ErrUsernameTooLong  = "Username must not exceed 30 characters"
	ErrUsernameTaken    = "That username is already taken"
	ErrEmailInvalid     = "You must provide a valid email address"
	ErrEmailTaken       = "That email is already taken"
	ErrPasswordRequired = "You must provide a password"
	ErrPasswordTooShort = "Password must be at least 7 characters long"
	ErrPasswordTooLong  = "Password must not exceed 100 characters"
	ErrTitleRequired    = "You must provide a title"
	ErrBodyRequired     = "You must provide post content"
	ErrFollowMissing    = "You cannot follow a user that does not exist"
	ErrFollowDuplicate  = "You are already following this user"
	ErrFollowSelf       = "You cannot follow yourself"
	ErrUnfollowMissing  = "You cannot unfollow someone you do not follow"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 30
	minPasswordLen = 7
	maxPasswordLen = 100
)

var (
	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailRegex        = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// strictPolicy strips every tag and attribute, leaving plain text.
	strictPolicy = bluemonday.StrictPolicy()
)

// NormalizeUsername trims surrounding whitespace and lower-cases the username.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NormalizeEmail trims surrounding whitespace and lower-cases the email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SanitizeText strips all HTML markup and trims the result.
func SanitizeText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// UsernameSyntaxOK reports whether a normalized username passes every
// syntactic rule. Uniqueness lookups are gated on this so already-invalid
// input never costs a store round trip.
func UsernameSyntaxOK(username string) bool {
	return len(username) >= minUsernameLen &&
		len(username) <= maxUsernameLen &&
		alphanumericRegex.MatchString(username)
}

// EmailSyntaxOK reports whether a normalized email has valid address syntax.
func EmailSyntaxOK(email string) bool {
	return emailRegex.MatchString(email)
}

// UsernameViolations returns every username rule the value breaks, in a fixed
// order: required, charset, minimum length, maximum length.
func UsernameViolations(username string) []string {
	var violations []string
	if username == "" {
		violations = append(violations, ErrUsernameRequired)
	}
	if username != "" && !alphanumericRegex.MatchString(username) {
		violations = append(violations, ErrUsernameCharset)
	}
	if len(username) > 0 && len(username) < minUsernameLen {
		violations = append(violations, ErrUsernameTooShort)
	}
	if len(username) > maxUsernameLen {
		violations = append(violations, ErrUsernameTooLong)
	}
	return violations
}

// EmailViolations returns the email syntax violation, if any.
func EmailViolations(email string) []string {
	if !EmailSyntaxOK(email) {
		return []string{ErrEmailInvalid}
	}
	return nil
}

// PasswordViolations returns every password rule the value breaks, in a fixed
// order: required, minimum length, maximum length.
func PasswordViolations(password string) []string {
	var violations []string
	if password == "" {
		violations = append(violations, ErrPasswordRequired)
	}
	if len(password) > 0 && len(password) < minPasswordLen {
		violations = append(violations, ErrPasswordTooShort)
	}
	if len(password) > maxPasswordLen {
		violations = append(violations, ErrPasswordTooLong)
	}
	return violations
}
