// Package validator holds the input checks applied to everything the user types
// into a briefli session.
package validator

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// MaxProjectNameLength is the longest accepted project name, in characters.
	MaxProjectNameLength = 100
	// MaxDescriptionLength is the longest accepted project description, in characters.
	MaxDescriptionLength = 500
	// MinAPIKeyLength is the shortest string accepted as an API key.
	MinAPIKeyLength = 20
)

var (
	ErrEmptyProjectName   = errors.New("project name cannot be empty")
	ErrProjectNameTooLong = errors.New("project name must be at most 100 characters")
	ErrEmptyDescription   = errors.New("project description cannot be empty")
	ErrDescriptionTooLong = errors.New("project description must be at most 500 characters")
	ErrEmptyLicense       = errors.New("license cannot be empty")
	ErrEmptyAPIKey        = errors.New("API key cannot be empty")
	ErrAPIKeyTooShort     = errors.New("API key appears to be too short (minimum 20 characters)")
)

// KnownLicenses is the advisory list offered by the license prompt.
var KnownLicenses = []string{
	"MIT",
	"Apache-2.0",
	"GPL-3.0",
	"BSD-3-Clause",
	"ISC",
	"Unlicense",
	"LGPL-3.0",
	"MPL-2.0",
	"AGPL-3.0",
}

// ValidateProjectName rejects blank names and names longer than MaxProjectNameLength.
func ValidateProjectName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyProjectName
	}
	if utf8.RuneCountInString(name) > MaxProjectNameLength {
		return ErrProjectNameTooLong
	}
	return nil
}

// ValidateDescription rejects blank descriptions and descriptions longer than MaxDescriptionLength.
func ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// ValidateLicense only rejects blank input. Licenses outside KnownLicenses are
// allowed; callers use IsKnownLicense to decide whether to warn.
func ValidateLicense(license string) error {
	if strings.TrimSpace(license) == "" {
		return ErrEmptyLicense
	}
	return nil
}

// IsKnownLicense reports whether license is one of KnownLicenses.
func IsKnownLicense(license string) bool {
	license = strings.TrimSpace(license)
	for _, known := range KnownLicenses {
		if known == license {
			return true
		}
	}
	return false
}

// ValidateAPIKey checks the key format only; whether the key is accepted is up
// to the provider.
func ValidateAPIKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ErrEmptyAPIKey
	}
	if len(trimmed) < MinAPIKeyLength {
		return ErrAPIKeyTooShort
	}
	return nil
}
