package handlers

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// validateRegistration applies the registration form rules and returns the
// user-facing messages for everything that failed.
func validateRegistration(p authPayload, passwordMin, usernameMin int) []string {
	var errs []string

	required := []struct {
		value string
		label string
	}{
		{p.Fullname, "Fullname"},
		{p.Email, "Email"},
		{p.Username, "Username"},
		{p.Password, "Password"},
		{p.ConfirmPassword, "Confirm password"},
		{p.Gender, "Gender"},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, f.label+" is required")
		}
	}

	if p.Email != "" && !emailPattern.MatchString(p.Email) {
		errs = append(errs, "Please enter a valid email address")
	}

	if p.Password != "" {
		if len(p.Password) < passwordMin {
			errs = append(errs, fmt.Sprintf("Password must be at least %d characters long", passwordMin))
		}
		if p.Password != p.ConfirmPassword {
			errs = append(errs, "Passwords do not match")
		}
	}

	if p.Username != "" {
		if len(p.Username) < usernameMin {
			errs = append(errs, fmt.Sprintf("Username must be at least %d characters long", usernameMin))
		}
		if !usernamePattern.MatchString(p.Username) {
			errs = append(errs, "Username can only contain letters, numbers, and underscores")
		}
	}

	if p.Fullname != "" && len(strings.TrimSpace(p.Fullname)) < 2 {
		errs = append(errs, "Full name must be at least 2 characters long")
	}

	return errs
}

// validateLogin checks the login form shape. Format failures get a single
// vague message so the endpoint leaks nothing about existing accounts.
func validateLogin(p authPayload, usernameMin int) []string {
	var errs []string

	if p.Username == "" || p.Password == "" {
		errs = append(errs, "Username and password are required")
	}

	if p.Username != "" && (len(p.Username) < usernameMin || !usernamePattern.MatchString(p.Username)) {
		errs = append(errs, "Invalid username format")
	}

	return errs
}
