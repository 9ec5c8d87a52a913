package mailer

import "html/template"

const baseStyle = `
<style>
    body { font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; line-height: 1.6; color: #2d2d2d; background-color: #f2f6f2; margin: 0; }
    .container { max-width: 600px; margin: 20px auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; }
    .header { background: linear-gradient(135deg, #2e7d5b 0%, #1f5c42 100%); color: #ffffff; padding: 32px; text-align: center; }
    .content { padding: 32px; }
    .reference { background-color: #eef6f0; border-left: 4px solid #2e7d5b; padding: 16px; margin: 20px 0; font-family: monospace; font-size: 18px; }
    table { width: 100%; border-collapse: collapse; }
    td { padding: 6px 0; }
    .label { color: #5c6b5f; width: 45%; }
    .footer { padding: 20px 32px; font-size: 13px; color: #7d8a80; }
</style>`

const bookingDetails = `
<table>
    <tr><td class="label">Accommodation</td><td>{{.AccommodationType}}</td></tr>
    <tr><td class="label">Check-in</td><td>{{.CheckInDate}}</td></tr>
    <tr><td class="label">Check-out</td><td>{{.CheckOutDate}}</td></tr>
    <tr><td class="label">Nights</td><td>{{.NumberOfNights}}</td></tr>
    <tr><td class="label">Guests</td><td>{{.NumberOfGuests}}</td></tr>
    <tr><td class="label">Price per night</td><td>₹{{.AccommodationPrice}}</td></tr>
    <tr><td class="label">Total amount</td><td><strong>₹{{.TotalAmount}}</strong></td></tr>
    {{if .SpecialRequests}}<tr><td class="label">Special requests</td><td>{{.SpecialRequests}}</td></tr>{{end}}
</table>`

var bookingReceivedTemplate = template.Must(template.New("booking_received").Parse(baseStyle + `
<div class="container">
    <div class="header"><h1>Booking Received</h1></div>
    <div class="content">
        <p>Dear {{.FullName}},</p>
        <p>Thank you for your booking request. We have received it and will confirm availability shortly.</p>
        <div class="reference">{{.BookingReference}}</div>
        <p>Please keep this reference for any enquiries.</p>
        ` + bookingDetails + `
    </div>
    <div class="footer">You will receive a confirmation email once your booking is approved.</div>
</div>`))

var bookingConfirmationTemplate = template.Must(template.New("booking_confirmation").Parse(baseStyle + `
<div class="container">
    <div class="header"><h1>Booking Confirmed</h1></div>
    <div class="content">
        <p>Dear {{.FullName}},</p>
        <p>Great news: your stay is confirmed. We look forward to welcoming you.</p>
        <div class="reference">{{.BookingReference}}</div>
        ` + bookingDetails + `
    </div>
    <div class="footer">If you need to change your booking, reply to this email quoting your reference.</div>
</div>`))

var adminBookingAlertTemplate = template.Must(template.New("admin_booking_alert").Parse(baseStyle + `
<div class="container">
    <div class="header"><h1>New Booking</h1></div>
    <div class="content">
        <p>A new booking was just created and is awaiting confirmation.</p>
        <div class="reference">{{.BookingReference}}</div>
        <table>
            <tr><td class="label">Guest</td><td>{{.FullName}}</td></tr>
            <tr><td class="label">Email</td><td>{{.Email}}</td></tr>
            <tr><td class="label">Phone</td><td>{{.PhoneNumber}}</td></tr>
        </table>
        ` + bookingDetails + `
    </div>
</div>`))

var contactConfirmationTemplate = template.Must(template.New("contact_confirmation").Parse(baseStyle + `
<div class="container">
    <div class="header"><h1>Message Received</h1></div>
    <div class="content">
        <p>Dear {{.FullName}},</p>
        <p>We received your message and will get back to you as soon as possible.</p>
        <table>
            <tr><td class="label">Subject</td><td>{{.Subject}}</td></tr>
            <tr><td class="label">Message</td><td>{{.Message}}</td></tr>
        </table>
    </div>
</div>`))
