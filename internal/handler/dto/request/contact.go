package request

import (
	"time"

	"detailing-api/internal/domain/contact"
	"detailing-api/internal/validation"
)

var ContactSchema = validation.Schema{
	{Key: "name", Name: "name", Required: true, Check: validation.StringField(validation.Name)},
	{Key: "email", Name: "email", Required: true, Check: validation.StringField(validation.Email)},
	{Key: "message", Name: "message", Required: true, Check: validation.MessageField(validation.MinMessageLength, validation.MaxMessageLength)},
	{Key: "phone", Name: "phone", Required: false, Check: optionalPhone},
}

// optionalPhone validates the phone only when one was supplied.
func optionalPhone(v any, _ time.Time) (any, error) {
	s, _ := v.(string)
	return validation.Phone(s)
}

func ContactFromSanitized(vals map[string]any, sourceIP string) *contact.Submission {
	sub := &contact.Submission{
		Name:     str(vals, "name"),
		Email:    str(vals, "email"),
		Message:  str(vals, "message"),
		SourceIP: sourceIP,
	}
	if phone, ok := vals["phone"].(string); ok && phone != "" {
		sub.Phone = &phone
	}
	return sub
}
