package resend

import (
	"strings"
	"text/template"

	"detailing-api/internal/domain/booking"
)

// The booking fields interpolated here are HTML-escaped by the validation
// layer before they ever reach a Submission, so the template renders them
// verbatim; re-escaping would mangle names like O&#39;Brien.
var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: 'Inter', -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #0A0A0A 0%, #1A1A1A 100%); color: #D4AF37; padding: 30px; text-align: center; border-radius: 8px 8px 0 0; }
    .header h1 { margin: 0; font-size: 28px; font-weight: 700; }
    .content { background: #ffffff; padding: 30px; border: 1px solid #e0e0e0; }
    .booking-details { background: #f9f9f9; padding: 20px; border-radius: 8px; margin: 20px 0; }
    .detail-row { display: flex; justify-content: space-between; padding: 8px 0; }
    .label { font-weight: 600; color: #555; }
    .value { color: #333; }
    .price { color: #D4AF37; font-weight: 700; font-size: 18px; }
    .footer { background: #0A0A0A; color: #999; padding: 20px; text-align: center; border-radius: 0 0 8px 8px; font-size: 14px; }
  </style>
</head>
<body>
  <div class="header">
    <h1>Booking Confirmed</h1>
  </div>
  <div class="content">
    <p>Dear {{.Booking.CustomerName}},</p>
    <p>Your detailing appointment has been successfully scheduled. We're excited to provide you with exceptional service.</p>

    <div class="booking-details">
      <h3 style="margin-top: 0; color: #333;">Appointment Details</h3>
      <div class="detail-row"><span class="label">Date:</span> <span class="value">{{.LongDate}}</span></div>
      <div class="detail-row"><span class="label">Time:</span> <span class="value">{{.Booking.AppointmentTime}}</span></div>
      <div class="detail-row"><span class="label">Service:</span> <span class="value">{{.Booking.PackageName}}</span></div>
      <div class="detail-row"><span class="label">Category:</span> <span class="value">{{.CategoryLabel}}</span></div>
      <div class="detail-row"><span class="label">Size:</span> <span class="value">{{.Booking.VehicleSize}}</span></div>
      {{if .AddonNames}}<div class="detail-row"><span class="label">Add-ons:</span> <span class="value">{{.AddonNames}}</span></div>{{end}}
      {{if .VehicleInfo}}<div class="detail-row"><span class="label">Vehicle Details:</span> <span class="value">{{.VehicleInfo}}</span></div>{{end}}
      <div class="detail-row" style="margin-top: 15px; padding-top: 15px; border-top: 2px solid #D4AF37;">
        <span class="label" style="font-size: 18px;">Estimated Total:</span>
        <span class="value price">${{printf "%.2f" .Booking.TotalPrice}}</span>
      </div>
    </div>

    <h3 style="color: #333;">What's Next?</h3>
    <ul style="color: #666;">
      <li>We'll send you a reminder 24 hours before your appointment</li>
      <li>Please arrive 5-10 minutes early</li>
      <li>Our team will inspect your {{.CraftLabel}} and confirm the final price</li>
      <li>Feel free to contact us if you have any questions or need to reschedule</li>
    </ul>

    <p style="margin-top: 30px; color: #666;">
      <strong>Contact Us:</strong><br>
      Phone: 603-275-7513<br>
      Hours: Monday - Saturday, 8:00 AM - 6:00 PM
    </p>
  </div>
  <div class="footer">
    <p style="margin: 0;">Elite Detailing - Precision Detailing for Elite Vehicles</p>
    <p style="margin: 5px 0 0 0; font-size: 12px;">This is an automated confirmation email. Please do not reply directly to this message.</p>
  </div>
</body>
</html>
`))

type confirmationData struct {
	Booking       *booking.Submission
	LongDate      string
	CategoryLabel string
	CraftLabel    string
	AddonNames    string
	VehicleInfo   string
}

func renderConfirmation(sub *booking.Submission, longDate string) (string, error) {
	craft := "vehicle"
	if sub.ServiceCategory == "jet" {
		craft = "aircraft"
	}

	names := make([]string, 0, len(sub.Addons))
	for _, a := range sub.Addons {
		names = append(names, a.Name)
	}

	info := ""
	if sub.VehicleInfo != nil {
		info = *sub.VehicleInfo
	}

	var buf strings.Builder
	err := confirmationTmpl.Execute(&buf, confirmationData{
		Booking:       sub,
		LongDate:      longDate,
		CategoryLabel: booking.CategoryDisplayName(sub.ServiceCategory),
		CraftLabel:    craft,
		AddonNames:    strings.Join(names, ", "),
		VehicleInfo:   info,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
