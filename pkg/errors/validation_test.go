package errors

import (
	"math"
	"testing"
)

func TestValidateImagePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "temp/test.png", false},
		{"absolute", "/tmp/upload/test.jpg", false},
		{"parent dir", "../images/test.png", false},

		{"empty", "", true},
		{"blank", "   ", true},
		{"too long", string(make([]byte, 5000)), true},
		{"null byte", "foo\x00.png", true},
		{"newline", "foo\n.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateImagePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateSigma(t *testing.T) {
	tests := []struct {
		sigma   float64
		wantErr bool
	}{
		{1, false},
		{2, false},
		{0.5, false},
		{0, true},
		{-1, true},
		{math.NaN(), true},
		{math.Inf(1), true},
	}

	for _, tt := range tests {
		err := ValidateSigma(tt.sigma)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSigma(%v) error = %v, wantErr %v", tt.sigma, err, tt.wantErr)
		}
	}
}

func TestValidateSigmas(t *testing.T) {
	if err := ValidateSigmas([]float64{1, 2}); err != nil {
		t.Errorf("ValidateSigmas(1,2) error = %v", err)
	}
	if err := ValidateSigmas(nil); err == nil {
		t.Error("ValidateSigmas(nil) should fail")
	}
	if err := ValidateSigmas([]float64{1, 0}); err == nil {
		t.Error("ValidateSigmas with zero entry should fail")
	}
}

func TestValidateThresholds(t *testing.T) {
	tests := []struct {
		name      string
		low, high float64
		relative  bool
		wantErr   bool
	}{
		{"defaults", 0.1, 0.2, false, false},
		{"equal", 0.2, 0.2, false, false},
		{"absolute above one", 1.5, 3, false, false},
		{"relative", 0.1, 0.3, true, false},

		{"low above high", 0.3, 0.2, false, true},
		{"negative", -0.1, 0.2, false, true},
		{"relative above one", 0.5, 1.5, true, true},
		{"nan", math.NaN(), 0.2, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThresholds(tt.low, tt.high, tt.relative)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateThresholds(%v, %v, %v) error = %v, wantErr %v", tt.low, tt.high, tt.relative, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"black", false},
		{"#000", false},
		{"#1a2B3c", false},

		{"", true},
		{"#12", true},
		{"#gggggg", true},
		{`red" onload="x`, true},
		{"rgb(0,0,0)", true},
	}

	for _, tt := range tests {
		err := ValidateColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
