package request

import (
	"time"

	"detailing-api/internal/domain/booking"
	"detailing-api/internal/validation"
)

// BookingSchema is the declarative field table for booking creation and
// confirmation emails. The package-name whitelist is a separate step after
// field validation, so its checker only passes the raw value through.
var BookingSchema = validation.Schema{
	{Key: "customer_name", Name: "name", Required: true, Check: validation.StringField(validation.Name)},
	{Key: "customer_email", Name: "email", Required: true, Check: validation.StringField(validation.Email)},
	{Key: "customer_phone", Name: "phone", Required: true, Check: validation.StringField(validation.Phone)},
	{Key: "package_name", Name: "package", Required: true, Check: passthrough},
	{Key: "service_category", Name: "category", Required: true, Check: validation.StringField(validation.ServiceCategory)},
	{Key: "vehicle_size", Name: "size", Required: true, Check: validation.StringField(validation.VehicleSize)},
	{Key: "appointment_date", Name: "date", Required: true, Check: validation.DateField()},
	{Key: "appointment_time", Name: "time", Required: true, Check: validation.StringField(validation.Time12h)},
	{Key: "total_price", Name: "price", Required: true, Check: validation.NumberField(validation.Price)},
}

// EmailSchema is BookingSchema minus the phone: the email endpoint receives
// the booking back from the client and phone is not rendered in the mail.
var EmailSchema = func() validation.Schema {
	s := make(validation.Schema, 0, len(BookingSchema)-1)
	for _, f := range BookingSchema {
		if f.Key == "customer_phone" {
			continue
		}
		s = append(s, f)
	}
	return s
}()

func passthrough(v any, _ time.Time) (any, error) {
	s, _ := v.(string)
	return s, nil
}

// BookingFromSanitized assembles a Submission from the schema's sanitized
// values plus the optional fields (vehicle_info, addons) taken from the raw
// body and sanitized here.
func BookingFromSanitized(vals map[string]any, body map[string]any) *booking.Submission {
	sub := &booking.Submission{
		CustomerName:    str(vals, "customer_name"),
		CustomerEmail:   str(vals, "customer_email"),
		CustomerPhone:   str(vals, "customer_phone"),
		PackageName:     str(vals, "package_name"),
		ServiceCategory: str(vals, "service_category"),
		VehicleSize:     str(vals, "vehicle_size"),
		AppointmentDate: str(vals, "appointment_date"),
		AppointmentTime: str(vals, "appointment_time"),
	}
	if p, ok := vals["total_price"].(float64); ok {
		sub.TotalPrice = p
	}

	if info, ok := body["vehicle_info"].(string); ok {
		sub.VehicleInfo = validation.OptionalText(info, booking.MaxVehicleInfoLen)
	}
	sub.Addons = booking.SanitizeAddons(addonMaps(body["addons"]))

	return sub
}

func str(vals map[string]any, key string) string {
	s, _ := vals[key].(string)
	return s
}

func addonMaps(raw any) []map[string]any {
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
