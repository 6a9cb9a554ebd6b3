package services

import (
	"fmt"
	"log"
	"net/smtp"
)

type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Mailer struct {
	config MailConfig
}

func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{
		config: cfg,
	}
}

func (m *Mailer) Send(to, subject, body string) error {

	headers := map[string]string{
		"From":         m.config.From,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/plain; charset=\"UTF-8\"",
	}

	var msg string
	for k, v := range headers {
		msg += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	msg += "\r\n" + body

	auth := smtp.PlainAuth(m.config.From, m.config.Username, m.config.Password, m.config.Host)

	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg)); err != nil {
		log.Printf("Mailer: failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (m *Mailer) SendOTPEmail(to, otpCode string, expiryMinutes int) error {
	subject := "Your Manovastra Login OTP"
	body := fmt.Sprintf(`Hello,

Your OTP for Manovastra login is: %s

This OTP is valid for %d minutes.

Please do not share this OTP with anyone.

Thank you,
Manovastra Team
`, otpCode, expiryMinutes)

	return m.Send(to, subject, body)
}

func (m *Mailer) SendWelcomeEmail(to, name string) error {
	subject := "Welcome to Manovastra!"
	body := fmt.Sprintf(`Dear %s,

Welcome to Manovastra - Your destination for premium Indian ethnic wear!

Your account has been created successfully. You can now:
- Browse our exclusive collection
- Track your orders
- Manage your wishlist
- Get exclusive offers

Thank you for choosing Manovastra!

Best regards,
Manovastra Team
`, name)

	return m.Send(to, subject, body)
}

func (m *Mailer) SendOrderConfirmationEmail(to, name, orderCode, totalFormatted string) error {
	subject := fmt.Sprintf("Order %s confirmed", orderCode)
	body := fmt.Sprintf(`Dear %s,

Your order %s has been confirmed. Amount paid: %s.

You can track it any time from the My Orders page.

Thank you for shopping with Manovastra!
`, name, orderCode, totalFormatted)

	return m.Send(to, subject, body)
}
