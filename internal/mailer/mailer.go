package mailer

import (
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"

	"connections/internal/config"
)

// Mailer delivers OTP emails. Implementations must be safe to call
// from request handlers.
type Mailer interface {
	SendVerificationEmail(email, otp string) error
	SendPasswordResetEmail(email, otp string) error
}

type resendMailer struct {
	client *resend.Client
	cfg    *config.Config
}

func NewMailer(cfg *config.Config) Mailer {
	if cfg.Mail.ResendAPIKey == "" {
		log.Println("Warning: RESEND_API_KEY не установлен, письма будут выводиться в консоль")
	}

	return &resendMailer{
		client: resend.NewClient(cfg.Mail.ResendAPIKey),
		cfg:    cfg,
	}
}

func (m *resendMailer) SendVerificationEmail(email, otp string) error {
	subject := "Подтверждение email — Connections"
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Подтвердите ваш email</h2>
			<p>Добро пожаловать в Connections! Введите код ниже для подтверждения адреса.</p>
			<div style="background-color: #f5f5f5; padding: 20px; text-align: center; margin: 20px 0;">
				<h1 style="letter-spacing: 8px; margin: 0;">%s</h1>
			</div>
			<p>Код действителен <strong>10 минут</strong>.</p>
			<p>Если вы не создавали аккаунт, просто проигнорируйте это письмо.</p>
		</div>`, otp)

	return m.deliver(email, subject, otp, html)
}

func (m *resendMailer) SendPasswordResetEmail(email, otp string) error {
	subject := "Сброс пароля — Connections"
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2>Запрос на сброс пароля</h2>
			<p>Вы запросили сброс пароля для вашего аккаунта Connections.</p>
			<p>Ваш одноразовый код:</p>
			<div style="background-color: #f5f5f5; padding: 20px; text-align: center; margin: 20px 0;">
				<h1 style="letter-spacing: 8px; margin: 0;">%s</h1>
			</div>
			<p>Код действителен <strong>5 минут</strong>.</p>
			<p>Если вы не запрашивали сброс пароля, проигнорируйте это письмо.</p>
		</div>`, otp)

	return m.deliver(email, subject, otp, html)
}

func (m *resendMailer) deliver(email, subject, otp, html string) error {
	// in development the code is printed so the flow can be tested
	// without a delivery provider
	if !m.cfg.IsProduction() {
		log.Printf("===== EMAIL PREVIEW =====\nTo: %s\nSubject: %s\nOTP: %s\n=========================", email, subject, otp)
	}

	params := &resend.SendEmailRequest{
		From:    m.cfg.Mail.Sender,
		To:      []string{email},
		Subject: subject,
		Html:    html,
	}

	response, err := m.client.Emails.Send(params)
	if err != nil {
		log.Printf("Ошибка отправки письма на %s: %v", email, err)
		if m.cfg.IsProduction() {
			return fmt.Errorf("не удалось отправить письмо: %w", err)
		}
		// development keeps going on the console preview alone
		return nil
	}

	log.Printf("Письмо отправлено, id: %s", response.Id)
	return nil
}
