package services

import (
	"context"
	"fmt"

	"cricturf/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns a service that renders and sends domain emails.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

func (s *emailService) SendBookingConfirmed(ctx context.Context, to string, data *domain.BookingConfirmedEmailData) error {
	subject, html, text, err := s.renderer.Render("booking_confirmed", data)
	if err != nil {
		return fmt.Errorf("render booking_confirmed: %w", err)
	}
	if err := s.mailer.Send(to, subject, html, text); err != nil {
		return fmt.Errorf("send booking_confirmed: %w", err)
	}
	return nil
}
