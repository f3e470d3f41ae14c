package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"text/template"
	"time"

	"slotify/internal/caching"
	"slotify/internal/config"
	"slotify/internal/models"
)

const notificationRetryQueue = "notifications:retry"

// NotificationService sends transactional email through an HTTP email
// provider API. Failed sends are pushed onto a redis queue and retried by
// the background scheduler.
type NotificationService interface {
	SendEmail(ctx context.Context, recipient, subject, body string) error
	SendPartnerApprovalEmail(ctx context.Context, recipient, businessName string) error
	SendBookingConfirmationEmail(ctx context.Context, recipient string, booking *models.Booking, serviceName string) error
	RetryFailedNotifications(ctx context.Context) error
}

type notificationService struct {
	cfg        *config.EmailConfig
	cacheSvc   caching.CacheService
	httpClient *http.Client
	templates  map[string]*template.Template
}

func NewNotificationService(cfg *config.EmailConfig, cacheSvc caching.CacheService) NotificationService {
	return &notificationService{
		cfg:      cfg,
		cacheSvc: cacheSvc,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		templates: make(map[string]*template.Template),
	}
}

type queuedEmail struct {
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Attempts  int       `json:"attempts"`
	QueuedAt  time.Time `json:"queued_at"`
}

func (s *notificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	if err := s.deliver(ctx, recipient, subject, body); err != nil {
		log.Printf("WARN: email delivery to %s failed, queueing for retry: %v", recipient, err)
		s.enqueue(ctx, &queuedEmail{
			Recipient: recipient,
			Subject:   subject,
			Body:      body,
			Attempts:  1,
			QueuedAt:  time.Now(),
		})
		return err
	}
	return nil
}

func (s *notificationService) SendPartnerApprovalEmail(ctx context.Context, recipient, businessName string) error {
	body, err := s.render("partner_approval", partnerApprovalTemplate, map[string]interface{}{
		"BusinessName": businessName,
	})
	if err != nil {
		return err
	}
	return s.SendEmail(ctx, recipient, "Your business has been approved", body)
}

func (s *notificationService) SendBookingConfirmationEmail(ctx context.Context, recipient string, booking *models.Booking, serviceName string) error {
	body, err := s.render("booking_confirmation", bookingConfirmationTemplate, map[string]interface{}{
		"ServiceName": serviceName,
		"BookingDate": booking.BookingDate.Format("Mon, 02 Jan 2006 15:04"),
		"BookingID":   booking.ID.String(),
	})
	if err != nil {
		return err
	}
	return s.SendEmail(ctx, recipient, "Booking received", body)
}

// RetryFailedNotifications drains the retry queue once. Emails that fail
// again go back onto the queue until they exhaust their attempts.
func (s *notificationService) RetryFailedNotifications(ctx context.Context) error {
	const maxAttempts = 5

	for {
		raw, err := s.cacheSvc.PopQueue(ctx, notificationRetryQueue)
		if err != nil {
			return fmt.Errorf("failed to pop notification queue: %v", err)
		}
		if raw == "" {
			return nil
		}

		var email queuedEmail
		if err := json.Unmarshal([]byte(raw), &email); err != nil {
			log.Printf("ERROR: dropping malformed queued email: %v", err)
			continue
		}

		if err := s.deliver(ctx, email.Recipient, email.Subject, email.Body); err != nil {
			email.Attempts++
			if email.Attempts >= maxAttempts {
				log.Printf("ERROR: dropping email to %s after %d attempts: %v", email.Recipient, email.Attempts, err)
				continue
			}
			s.enqueue(ctx, &email)
		}
	}
}

func (s *notificationService) deliver(ctx context.Context, recipient, subject, body string) error {
	if !s.cfg.Enabled() {
		log.Printf("[EMAIL] To=%s, Subject=%s, Body=%s", recipient, subject, body)
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"from":    fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail),
		"to":      []string{recipient},
		"subject": subject,
		"text":    body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create email request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *notificationService) enqueue(ctx context.Context, email *queuedEmail) {
	data, err := json.Marshal(email)
	if err != nil {
		log.Printf("ERROR: failed to marshal queued email: %v", err)
		return
	}
	if err := s.cacheSvc.PushQueue(ctx, notificationRetryQueue, string(data)); err != nil {
		log.Printf("ERROR: failed to queue email for retry: %v", err)
	}
}

func (s *notificationService) render(name, text string, data map[string]interface{}) (string, error) {
	tmpl, exists := s.templates[name]
	if !exists {
		parsed, err := template.New(name).Parse(text)
		if err != nil {
			return "", fmt.Errorf("failed to parse template %s: %v", name, err)
		}
		s.templates[name] = parsed
		tmpl = parsed
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %v", name, err)
	}
	return buf.String(), nil
}

const partnerApprovalTemplate = `Hi,

Good news: {{.BusinessName}} has been reviewed and approved. You can now
publish your services and start taking bookings.

The Slotify team`

const bookingConfirmationTemplate = `Hi,

We received your booking for {{.ServiceName}} on {{.BookingDate}}.
Your reference is {{.BookingID}}. You will get another email once the
business confirms the appointment.

The Slotify team`
