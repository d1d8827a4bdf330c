package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/tuanvumaihuynh/inventory-service/internal/config"
	"github.com/tuanvumaihuynh/inventory-service/internal/model"
)

var _ Notifier = (*Mailer)(nil)

// Mailer sends notifications over SMTP. Sends are detached from the
// caller and bounded by the configured send timeout.
type Mailer struct {
	cfg    config.Mail
	logger *slog.Logger
	client *mail.Client
}

func NewMailer(cfg config.Mail, logger *slog.Logger) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("new mail client: %w", err)
	}

	return &Mailer{
		cfg:    cfg,
		logger: logger.With(slog.String("service", "notifier")),
		client: client,
	}, nil
}

func (m *Mailer) NotifyLowStock(ctx context.Context, product model.Product, threshold int) {
	subject := fmt.Sprintf("Low Stock Alert: %s", product.ProductName)
	body, err := renderLowStock(m.cfg.AppName, m.cfg.AppURL, product, threshold)
	if err != nil {
		m.logger.ErrorContext(ctx, "error rendering low stock email", slog.Any("error", err))
		return
	}

	m.send(ctx, m.cfg.AdminEmail, subject, body)
}

func (m *Mailer) NotifyNewProduct(ctx context.Context, product model.Product) {
	subject := fmt.Sprintf("New Product Added: %s", product.ProductName)
	body, err := renderNewProduct(m.cfg.AppName, m.cfg.AppURL, product)
	if err != nil {
		m.logger.ErrorContext(ctx, "error rendering new product email", slog.Any("error", err))
		return
	}

	m.send(ctx, m.cfg.AdminEmail, subject, body)
}

func (m *Mailer) NotifyReplenished(ctx context.Context, product model.Product, quantityAdded int) {
	subject := fmt.Sprintf("Stock Replenished: %s", product.ProductName)
	body, err := renderReplenished(m.cfg.AppName, product, quantityAdded)
	if err != nil {
		m.logger.ErrorContext(ctx, "error rendering replenishment email", slog.Any("error", err))
		return
	}

	m.send(ctx, m.cfg.AdminEmail, subject, body)
}

func (m *Mailer) NotifyOrderConfirmed(ctx context.Context, customer Customer, summary OrderSummary) {
	subject := "Order Confirmed - Thank You for Your Purchase"
	body, err := renderOrderConfirmation(m.cfg.AppName, customer, summary)
	if err != nil {
		m.logger.ErrorContext(ctx, "error rendering order confirmation email", slog.Any("error", err))
		return
	}

	m.send(ctx, customer.Email, subject, body)
}

// send delivers one message in a detached goroutine with its own
// timeout, so the caller's request is never blocked on SMTP.
func (m *Mailer) send(ctx context.Context, to, subject, htmlBody string) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		m.logger.ErrorContext(ctx, "error setting mail from", slog.Any("error", err))
		return
	}
	if err := msg.To(to); err != nil {
		m.logger.ErrorContext(ctx, "error setting mail recipient",
			slog.String("to", to), slog.Any("error", err))
		return
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.cfg.SendTimeout)
		defer cancel()

		if err := m.client.DialAndSendWithContext(sendCtx, msg); err != nil {
			m.logger.ErrorContext(sendCtx, "error sending mail",
				slog.String("to", to),
				slog.String("subject", subject),
				slog.Any("error", err))
			return
		}

		m.logger.InfoContext(sendCtx, "mail sent",
			slog.String("to", to),
			slog.String("subject", subject))
	}()
}

func formatSentAt() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
