// Package validation converts untrusted form input into typed, bounded,
// HTML-safe values. Every field is checked against an allow-list or bounded
// pattern; sanitized output is what gets persisted and echoed into emails, so
// markup never survives past this layer.
package validation

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	MinNameLength    = 2
	MaxNameLength    = 100
	MaxEmailLength   = 254
	MinPhoneLength   = 10
	MaxPhoneLength   = 20
	MinPhoneDigits   = 10
	MaxPhoneDigits   = 15
	MinMessageLength = 10
	MaxMessageLength = 5000
	MaxPrice         = 100000
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	phoneRe = regexp.MustCompile(`^[+0-9\s\-()]+$`)
	digitRe = regexp.MustCompile(`[0-9]`)
	timeRe  = regexp.MustCompile(`(?i)^(0?[1-9]|1[0-2]):([0-5][0-9])\s*(AM|PM)$`)

	validate = validator.New()
)

// SanitizeString HTML-escapes a trimmed string so it is safe to store and to
// interpolate into email markup.
func SanitizeString(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

func Name(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("Name is required")
	}
	if len(trimmed) < MinNameLength {
		return "", fmt.Errorf("Name is too short")
	}
	if len(trimmed) > MaxNameLength {
		return "", fmt.Errorf("Name is too long")
	}
	if !nameRe.MatchString(trimmed) {
		return "", fmt.Errorf("Name contains invalid characters")
	}
	return SanitizeString(trimmed), nil
}

func Email(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("Email is required")
	}
	if len(trimmed) > MaxEmailLength {
		return "", fmt.Errorf("Email is too long")
	}
	if err := validate.Var(trimmed, "email"); err != nil {
		return "", fmt.Errorf("Invalid email format")
	}
	return strings.ToLower(trimmed), nil
}

func Phone(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("Phone number is required")
	}
	if len(trimmed) < MinPhoneLength || len(trimmed) > MaxPhoneLength {
		return "", fmt.Errorf("Phone number length invalid")
	}
	if !phoneRe.MatchString(trimmed) {
		return "", fmt.Errorf("Phone number contains invalid characters")
	}
	digits := len(digitRe.FindAllString(trimmed, -1))
	if digits < MinPhoneDigits || digits > MaxPhoneDigits {
		return "", fmt.Errorf("Phone number must have %d-%d digits", MinPhoneDigits, MaxPhoneDigits)
	}
	return trimmed, nil
}

func Message(s string, minLen, maxLen int) (string, error) {
	if minLen <= 0 {
		minLen = MinMessageLength
	}
	if maxLen <= 0 {
		maxLen = MaxMessageLength
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("Message is required")
	}
	if len(trimmed) < minLen {
		return "", fmt.Errorf("Message must be at least %d characters", minLen)
	}
	if len(trimmed) > maxLen {
		return "", fmt.Errorf("Message must be less than %d characters", maxLen)
	}
	return SanitizeString(trimmed), nil
}

// Price accepts any JSON number and rounds to two decimals.
func Price(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("Price must be a number")
	}
	if v < 0 {
		return 0, fmt.Errorf("Price cannot be negative")
	}
	if v > MaxPrice {
		return 0, fmt.Errorf("Price exceeds maximum allowed")
	}
	return math.Round(v*100) / 100, nil
}

// Date validates a calendar date, today through one year out, and returns the
// date-only form regardless of any time component in the input.
func Date(s string, now time.Time) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("Date is required")
	}

	day, err := time.ParseInLocation("2006-01-02", trimmed, now.Location())
	if err != nil {
		if full, fullErr := time.Parse(time.RFC3339, trimmed); fullErr == nil {
			day = time.Date(full.Year(), full.Month(), full.Day(), 0, 0, 0, 0, now.Location())
		} else {
			return "", fmt.Errorf("Invalid date format (use YYYY-MM-DD)")
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return "", fmt.Errorf("Date cannot be in the past")
	}
	if day.After(today.AddDate(1, 0, 0)) {
		return "", fmt.Errorf("Date cannot be more than 1 year in the future")
	}
	return day.Format("2006-01-02"), nil
}

// Time12h validates a 12-hour clock time and normalizes it to "HH:MM AM".
func Time12h(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("Time is required")
	}
	m := timeRe.FindStringSubmatch(trimmed)
	if m == nil {
		return "", fmt.Errorf("Invalid time format (use HH:MM AM/PM)")
	}
	hour := m[1]
	if len(hour) == 1 {
		hour = "0" + hour
	}
	return fmt.Sprintf("%s:%s %s", hour, m[2], strings.ToUpper(m[3])), nil
}

func ServiceCategory(s string) (string, error) {
	return enum(s, []string{"auto", "jet"}, "Service category is required", "Invalid service category")
}

func VehicleSize(s string) (string, error) {
	return enum(s, []string{"small", "medium", "large", "xlarge"}, "Vehicle size is required", "Invalid vehicle size")
}

func enum(s string, allowed []string, requiredMsg, invalidMsg string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return "", fmt.Errorf("%s", requiredMsg)
	}
	for _, a := range allowed {
		if lower == a {
			return lower, nil
		}
	}
	return "", fmt.Errorf("%s", invalidMsg)
}

// OptionalText trims, truncates and escapes a free-text field, returning nil
// for empty or absent input.
func OptionalText(s string, maxLen int) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	if runes := []rune(trimmed); len(runes) > maxLen {
		trimmed = string(runes[:maxLen])
	}
	out := html.EscapeString(trimmed)
	return &out
}
