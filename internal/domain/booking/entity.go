package booking

import (
	"time"

	"detailing-api/internal/validation"
)

// Packages is the fixed whitelist of bookable service packages, three per
// category. The package name is persisted and echoed into confirmation
// emails, so only these exact strings are accepted.
var Packages = []string{
	// Auto packages
	"Essential Detail",
	"Executive Detail",
	"Concierge Detail",
	// Jet packages
	"Light Aircraft Detail",
	"Executive Jet Detail",
	"Fleet & Large Aircraft",
}

func ValidPackage(name string) bool {
	for _, p := range Packages {
		if name == p {
			return true
		}
	}
	return false
}

const (
	MaxAddons         = 10
	MaxAddonNameLen   = 100
	MaxVehicleInfoLen = 500

	StatusPending = "pending"
)

type Addon struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Submission is a fully sanitized booking ready for insertion. Every string
// field has passed through the validation layer; nothing here is raw client
// input.
type Submission struct {
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone"`
	PackageName     string    `json:"package_name"`
	ServiceCategory string    `json:"service_category"`
	VehicleSize     string    `json:"vehicle_size"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	TotalPrice      float64   `json:"total_price"`
	VehicleInfo     *string   `json:"vehicle_info"`
	Addons          []Addon   `json:"addons"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// Record is a Submission as returned by the data store, which assigns the ID.
type Record struct {
	ID string `json:"id"`
	Submission
}

// SanitizeAddons filters out non-object entries, sanitizes each addon's name
// and price, and truncates the list to MaxAddons.
func SanitizeAddons(raw []map[string]any) []Addon {
	addons := make([]Addon, 0, len(raw))
	for _, entry := range raw {
		if entry == nil {
			continue
		}
		if len(addons) == MaxAddons {
			break
		}

		name := "Unknown"
		if s, ok := entry["name"].(string); ok {
			if clean := validation.OptionalText(s, MaxAddonNameLen); clean != nil {
				name = *clean
			}
		}

		price := 0.0
		if n, ok := entry["price"].(float64); ok {
			if clean, err := validation.Price(n); err == nil {
				price = clean
			}
		}

		addons = append(addons, Addon{Name: name, Price: price})
	}
	return addons
}

// CategoryDisplayName maps a service category onto the marketing label used
// in customer-facing copy.
func CategoryDisplayName(category string) string {
	if category == "jet" {
		return "Private Jet Detailing"
	}
	return "Luxury Auto Detailing"
}
