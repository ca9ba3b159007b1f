package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateColor checks that a color string is safe to embed in SVG
// attributes and styles. Any CSS notation is accepted; only empty values,
// control characters and markup or style delimiters are rejected.
func ValidateColor(c string) error {
	if strings.TrimSpace(c) == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	const maxColorLength = 64
	if len(c) > maxColorLength {
		return New(ErrCodeInvalidColor, "color too long (max %d characters)", maxColorLength)
	}
	for _, r := range c {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidColor, "color contains control characters")
		}
	}
	if strings.ContainsAny(c, `<>"'&;{}`) {
		return New(ErrCodeInvalidColor, "color contains invalid characters: %q", c)
	}
	return nil
}

// ValidateDimension checks that a pixel value is finite and not negative.
// When positive is set, zero is rejected too.
func ValidateDimension(name string, v float64, positive bool) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidDimension, "%s must be a finite number", name)
	}
	if v < 0 || (positive && v == 0) {
		return New(ErrCodeInvalidDimension, "%s must be positive, got %g", name, v)
	}
	return nil
}

// ValidateURL validates a cache backend URL. Only the scheme is checked;
// connecting reports everything else.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes %s", strings.Join(schemes, ", "))
}
