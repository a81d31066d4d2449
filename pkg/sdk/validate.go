package sdk

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MinLogoutReasonLen is the shortest accepted operator logout reason.
const MinLogoutReasonLen = 30

// minPasswordLen matches the backend's registration rule.
const minPasswordLen = 6

// knownRoles lists the roles the backend accepts at registration.
var knownRoles = map[string]struct{}{
	RoleAdmin:    {},
	RoleOperator: {},
}

// ValidationError reports an invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateRegisterInput checks a registration request before it is sent.
// Email and role are expected to be normalized already.
func ValidateRegisterInput(input RegisterInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if !emailRE.MatchString(input.Email) {
		return &ValidationError{Field: "email", Message: fmt.Sprintf("'%s' is not a valid address", input.Email)}
	}
	if len(input.Password) < minPasswordLen {
		return &ValidationError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", minPasswordLen)}
	}
	if _, ok := knownRoles[input.Role]; !ok {
		return &ValidationError{Field: "role", Message: fmt.Sprintf("'%s' is not one of admin, operator", input.Role)}
	}
	return nil
}

// ValidateLogoutReason enforces the reason operators must give when signing
// out. Other roles may log out without one.
func ValidateLogoutReason(role, reason string) error {
	if NormalizeRole(role) != RoleOperator {
		return nil
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(reason)); n < MinLogoutReasonLen {
		return &ValidationError{
			Field:   "reason",
			Message: fmt.Sprintf("please enter at least %d characters before logging out (got %d)", MinLogoutReasonLen, n),
		}
	}
	return nil
}
