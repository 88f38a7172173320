package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FieldErrors maps an error-map key ("email", "phone") to a user-facing
// reason. All invalid fields are reported together rather than failing fast,
// so multi-field forms cost one round-trip to correct.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}

// Checker validates one raw body value and returns its sanitized form.
type Checker func(v any, now time.Time) (any, error)

// Field declares one request body field: where it lives, whether it is
// required, and how it is validated.
type Field struct {
	Key      string // body key, e.g. "customer_email"
	Name     string // error-map key, e.g. "email"
	Required bool
	Check    Checker
}

// Schema is the per-endpoint field table consumed by Missing and Validate.
type Schema []Field

// Missing returns the body keys of required fields that are absent or empty.
// Run before Validate so the client gets one "missing fields" response
// instead of a per-field error for each omission.
func (s Schema) Missing(body map[string]any) []string {
	var missing []string
	for _, f := range s {
		if f.Required && !present(body[f.Key]) {
			missing = append(missing, f.Key)
		}
	}
	return missing
}

// Validate runs every field's checker, aggregating all failures. On success
// the returned map holds sanitized values keyed by body key.
func (s Schema) Validate(body map[string]any, now time.Time) (map[string]any, FieldErrors) {
	sanitized := make(map[string]any, len(s))
	errs := FieldErrors{}
	for _, f := range s {
		raw, ok := body[f.Key]
		if !ok || !present(raw) {
			if !f.Required {
				continue
			}
			raw = nil
		}
		clean, err := f.Check(raw, now)
		if err != nil {
			errs[f.Name] = err.Error()
			continue
		}
		sanitized[f.Key] = clean
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return sanitized, nil
}

// present mirrors the truthiness check the form clients rely on: empty
// strings and zero numbers count as absent.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(t) != ""
	case float64:
		return t != 0
	case bool:
		return t
	default:
		return true
	}
}

// StringField adapts a string validator into a Checker.
func StringField(fn func(string) (string, error)) Checker {
	return func(v any, _ time.Time) (any, error) {
		s, ok := v.(string)
		if !ok {
			// Non-string input gets the validator's own "required" message.
			s = ""
		}
		return fn(s)
	}
}

// NumberField adapts a numeric validator into a Checker.
func NumberField(fn func(float64) (float64, error)) Checker {
	return func(v any, _ time.Time) (any, error) {
		switch t := v.(type) {
		case float64:
			return fn(t)
		case int:
			return fn(float64(t))
		case nil:
			return nil, fmt.Errorf("Price is required")
		default:
			return nil, fmt.Errorf("Price must be a number")
		}
	}
}

// DateField adapts the clock-dependent date validator into a Checker.
func DateField() Checker {
	return func(v any, now time.Time) (any, error) {
		s, _ := v.(string)
		return Date(s, now)
	}
}

// MessageField adapts the bounded message validator into a Checker.
func MessageField(minLen, maxLen int) Checker {
	return func(v any, _ time.Time) (any, error) {
		s, _ := v.(string)
		return Message(s, minLen, maxLen)
	}
}
