package response

import (
	"github.com/jinzhu/copier"

	"detailing-api/internal/domain/booking"
	"detailing-api/internal/domain/contact"
)

// BookingData is the minimal slice of a created booking echoed back to the
// client; the full record stays server-side.
type BookingData struct {
	ID              string  `json:"id"`
	CustomerName    string  `json:"customer_name"`
	AppointmentDate string  `json:"appointment_date"`
	AppointmentTime string  `json:"appointment_time"`
	TotalPrice      float64 `json:"total_price"`
}

func FromBookingRecord(rec *booking.Record) BookingData {
	var data BookingData
	_ = copier.Copy(&data, rec)
	return data
}

type ContactData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func FromContactRecord(rec *contact.Record) ContactData {
	var data ContactData
	_ = copier.Copy(&data, rec)
	return data
}

type EmailData struct {
	EmailID string `json:"emailId"`
}
