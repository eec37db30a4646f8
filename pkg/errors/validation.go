package errors

import (
	"strings"
	"unicode"
)

// MaxLabelLength bounds slice labels read from data files.
const MaxLabelLength = 256

// ValidateLabel validates a slice label read from external input.
//
// Labels end up in SVG attributes and URL paths, so the rules are
// conservative:
//   - No empty or whitespace-only labels
//   - No control characters or null bytes
//   - Maximum length of MaxLabelLength bytes
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidLabel, "label cannot be empty")
	}

	if len(label) > MaxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", MaxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label %q contains invalid control characters", label)
		}
	}

	return nil
}

// ValidateRedirect validates a selection redirect target.
// It accepts site-relative paths ("/counter") and http(s) URLs.
func ValidateRedirect(target string) error {
	if target == "" {
		return New(ErrCodeInvalidURL, "redirect target cannot be empty")
	}

	for _, r := range target {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidURL, "redirect target contains invalid characters")
		}
	}

	if strings.HasPrefix(target, "//") {
		return New(ErrCodeInvalidURL, "redirect target cannot be protocol-relative")
	}
	if strings.HasPrefix(target, "/") {
		return nil
	}

	return ValidateURL(target)
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidURL, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidURL, "URL must use http or https scheme")
	}

	return nil
}
