package account

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(NormalizeEmail(email))
}

// PasswordIssues returns the list of strength rules the password fails:
// minimum 8 characters with at least one uppercase letter, one lowercase
// letter and one digit.
func PasswordIssues(password string) []string {
	var issues []string
	if len(password) < 8 {
		issues = append(issues, "must be at least 8 characters long")
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper {
		issues = append(issues, "must contain at least one uppercase letter")
	}
	if !lower {
		issues = append(issues, "must contain at least one lowercase letter")
	}
	if !digit {
		issues = append(issues, "must contain at least one number")
	}
	return issues
}
