package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"schoolfees-backend/internal/domain"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendPaymentReceipt(ctx context.Context, email, studentName string, col *domain.Collection) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Payment Receipt %s", col.ReceiptRef))

	body := fmt.Sprintf(
		"Dear %s,\n\nWe received your payment of %.2f on %s for: %s.\n\nTotal payable: %.2f\nRemaining due: %.2f\n\nReceipt reference: %s\n\nThank you,\nSchool Accounts Office",
		studentName, col.PaidAmount, col.PayDate, col.FeeTypesLabel(),
		col.TotalPayable, col.TotalDue, col.ReceiptRef)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send payment receipt: %w", err)
	}

	return nil
}

func (s *emailService) SendDueReminder(ctx context.Context, email, studentName string, feesDue float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Outstanding Fees Reminder")

	body := fmt.Sprintf(
		"Dear %s,\n\nOur records show an outstanding balance of %.2f on your account.\nPlease settle it at the school accounts office at your earliest convenience.\n\nThank you,\nSchool Accounts Office",
		studentName, feesDue)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send due reminder: %w", err)
	}

	return nil
}
