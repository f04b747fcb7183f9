package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// BookingConfirmedEmailData holds data for the booking confirmation email.
type BookingConfirmedEmailData struct {
	CustomerName  string
	VenueName     string
	SlotLabel     string
	Date          string
	Amount        int
	PaymentMethod string
	BookingID     string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendBookingConfirmed(ctx context.Context, to string, data *BookingConfirmedEmailData) error
}
