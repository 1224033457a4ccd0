package mail

import (
	"context"
	"fmt"

	"samansetu/internal/config"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// InquiryNotification carries everything the product owner needs to
// follow up with the buyer
type InquiryNotification struct {
	OwnerEmail  string
	BuyerEmail  string
	ProductName string
	Message     string
	Quantity    int
}

// Notifier sends inquiry notifications to product owners. Sends are
// best-effort: callers log failures and never fail the request.
type Notifier interface {
	SendInquiryNotification(ctx context.Context, n InquiryNotification) error
}

type smtpNotifier struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

// NewNotifier creates an SMTP notifier from config. When no mail server
// is configured it returns a no-op notifier so inquiry creation still
// works in environments without outbound mail.
func NewNotifier(cfg config.MailConfig, logger *zap.Logger) Notifier {
	if cfg.Host == "" {
		logger.Warn("Mail server not configured, inquiry notifications disabled")
		return &noopNotifier{}
	}

	return &smtpNotifier{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

// SendInquiryNotification emails the product owner about a new inquiry
func (n *smtpNotifier) SendInquiryNotification(_ context.Context, notification InquiryNotification) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.from, n.fromName)
	m.SetHeader("To", notification.OwnerEmail)
	m.SetHeader("Subject", fmt.Sprintf("Product Inquiry: %s", notification.ProductName))
	m.SetBody("text/html", inquiryBody(notification))

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send inquiry notification: %w", err)
	}

	return nil
}

func inquiryBody(n InquiryNotification) string {
	return fmt.Sprintf(`
	<html>
		<body>
			<h2>New Product Inquiry</h2>
			<p><strong>Product:</strong> %s</p>
			<p><strong>Buyer Email:</strong> %s</p>
			<p><strong>Requested Quantity:</strong> %d</p>
			<p><strong>Message:</strong></p>
			<p>%s</p>
			<hr>
			<p>Please respond directly to the buyer's email address.</p>
		</body>
	</html>
	`, n.ProductName, n.BuyerEmail, n.Quantity, n.Message)
}

type noopNotifier struct{}

func (n *noopNotifier) SendInquiryNotification(context.Context, InquiryNotification) error {
	return nil
}
