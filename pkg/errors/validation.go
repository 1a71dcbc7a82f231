package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateImagePath validates an input image path for safety.
// Absolute and relative paths are both accepted; the path only has to name
// something the process could open.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateImagePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "image path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "image path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "image path contains invalid characters")
		}
	}

	return nil
}

// ValidateSigma checks that a smoothing scale is a positive finite number.
func ValidateSigma(sigma float64) error {
	if math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return New(ErrCodeInvalidInput, "sigma must be finite, got %v", sigma)
	}
	if sigma <= 0 {
		return New(ErrCodeInvalidInput, "sigma must be positive, got %v", sigma)
	}
	return nil
}

// ValidateSigmas checks a scale set: non-empty, every entry valid.
func ValidateSigmas(sigmas []float64) error {
	if len(sigmas) == 0 {
		return New(ErrCodeInvalidInput, "at least one sigma is required")
	}
	for _, s := range sigmas {
		if err := ValidateSigma(s); err != nil {
			return err
		}
	}
	return nil
}

// ValidateThresholds checks a hysteresis threshold pair.
// In relative mode both values are fractions and must not exceed 1.
func ValidateThresholds(low, high float64, relative bool) error {
	for _, v := range []float64{low, high} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidInput, "thresholds must be finite")
		}
		if v < 0 {
			return New(ErrCodeInvalidInput, "thresholds must be non-negative, got %v", v)
		}
	}
	if low > high {
		return New(ErrCodeInvalidInput, "low threshold %v exceeds high threshold %v", low, high)
	}
	if relative && high > 1 {
		return New(ErrCodeInvalidInput, "relative thresholds must be in [0, 1], got high=%v", high)
	}
	return nil
}

// ValidateColor accepts a conservative subset of SVG paint values: a named
// colour or a #rgb/#rrggbb hex literal. Anything else could break the markup.
func ValidateColor(c string) error {
	if c == "" {
		return New(ErrCodeInvalidInput, "colour cannot be empty")
	}
	if strings.HasPrefix(c, "#") {
		hex := c[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return New(ErrCodeInvalidInput, "invalid hex colour: %q", c)
		}
		for _, r := range hex {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return New(ErrCodeInvalidInput, "invalid hex colour: %q", c)
			}
		}
		return nil
	}
	for _, r := range c {
		if !unicode.IsLetter(r) || r > unicode.MaxASCII {
			return New(ErrCodeInvalidInput, "invalid colour name: %q", c)
		}
	}
	return nil
}
