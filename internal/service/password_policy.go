package service

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/ebookstore-next/internal/config"
)

// PasswordError 未满足的密码规则，errors.Is(err, ErrWeakPassword) 为真
type PasswordError struct {
	Rule      string
	MinLength int
}

func (e *PasswordError) Error() string {
	if e.Rule == "min_length" {
		return fmt.Sprintf("password shorter than %d characters", e.MinLength)
	}
	return "password violates rule " + e.Rule
}

func (e *PasswordError) Is(target error) bool { return target == ErrWeakPassword }

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength > 0 && utf8.RuneCountInString(password) < policy.MinLength {
		return &PasswordError{Rule: "min_length", MinLength: policy.MinLength}
	}
	if !policy.RequireLetter && !policy.RequireNumber {
		return nil
	}
	letter, number := false, false
	for _, r := range password {
		letter = letter || unicode.IsLetter(r)
		number = number || unicode.IsDigit(r)
	}
	if policy.RequireLetter && !letter {
		return &PasswordError{Rule: "require_letter"}
	}
	if policy.RequireNumber && !number {
		return &PasswordError{Rule: "require_number"}
	}
	return nil
}
