package email

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"net/url"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	AdminEmail   string
	FrontendURL  string
	CompanyName  string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// InvoiceEmail carries the data rendered into the invoice notification email.
// Total is pre-formatted by the caller so the email and the PDF always agree.
type InvoiceEmail struct {
	To           string
	InvoiceNo    string
	CustomerName string
	SaleDate     string
	Total        string
	IssuerName   string
	PDF          []byte
	Filename     string
}

// SendInvoiceEmail sends an invoice copy with the rendered PDF attached.
// When msg.To is empty the configured admin address receives the copy.
func (s *EmailService) SendInvoiceEmail(msg *InvoiceEmail) error {
	to := msg.To
	if to == "" {
		to = s.config.AdminEmail
	}
	if to == "" {
		return fmt.Errorf("no recipient address for invoice %s", msg.InvoiceNo)
	}

	htmlContent, err := s.renderInvoiceEmail(msg)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Invoice %s - %s", msg.InvoiceNo, s.config.CompanyName)
	message, err := s.buildEmailWithAttachment(to, subject, htmlContent, msg.Filename, msg.PDF)
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}

	return s.sendEmail(to, message)
}

// SendPasswordResetEmail sends a password reset email
func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	htmlContent, err := s.renderPasswordResetEmail(resetURL)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Reset Your Password - " + s.config.CompanyName
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds a plain HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

// buildEmailWithAttachment builds a multipart/mixed message with an HTML body
// and one base64-encoded PDF attachment.
func (s *EmailService) buildEmailWithAttachment(to, subject, htmlBody, filename string, attachment []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: multipart/mixed; boundary=%q\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
		writer.Boundary(),
	)

	bodyHeader := textproto.MIMEHeader{}
	bodyHeader.Set("Content-Type", `text/html; charset="UTF-8"`)
	bodyPart, err := writer.CreatePart(bodyHeader)
	if err != nil {
		return nil, err
	}
	if _, err := bodyPart.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	attHeader := textproto.MIMEHeader{}
	attHeader.Set("Content-Type", "application/pdf")
	attHeader.Set("Content-Transfer-Encoding", "base64")
	attHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	attPart, err := writer.CreatePart(attHeader)
	if err != nil {
		return nil, err
	}

	encoded := make([]byte, base64.StdEncoding.EncodedLen(len(attachment)))
	base64.StdEncoding.Encode(encoded, attachment)
	// RFC 2045: base64 lines limited to 76 characters
	for i := 0; i < len(encoded); i += 76 {
		end := i + 76
		if end > len(encoded) {
			end = len(encoded)
		}
		if _, err := attPart.Write(encoded[i:end]); err != nil {
			return nil, err
		}
		if _, err := attPart.Write([]byte("\r\n")); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return append([]byte(headers), buf.Bytes()...), nil
}

// renderInvoiceEmail renders the invoice notification email template
func (s *EmailService) renderInvoiceEmail(msg *InvoiceEmail) (string, error) {
	tmpl, err := template.New("invoice").Parse(invoiceEmailTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		*InvoiceEmail
		CompanyName string
	}{msg, s.config.CompanyName}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// renderPasswordResetEmail renders the password reset email template
func (s *EmailService) renderPasswordResetEmail(resetURL string) (string, error) {
	tmpl, err := template.New("password_reset").Parse(passwordResetTemplate)
	if err != nil {
		return "", err
	}

	data := struct {
		ResetURL    string
		CompanyName string
	}{resetURL, s.config.CompanyName}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

const invoiceEmailTemplate = `
<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #2196F3; color: white; padding: 20px; text-align: center; }
      .content { background-color: #f8f9fa; padding: 20px; margin: 20px 0; }
      .footer { text-align: center; color: #666; font-size: 12px; padding: 20px; }
      .invoice-details { background: white; padding: 15px; border-left: 4px solid #2196F3; margin: 15px 0; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>{{.CompanyName}}</h1>
        <p>Invoice Copy</p>
      </div>

      <div class="content">
        <h2>Invoice Generated Successfully</h2>
        <p>A new invoice has been generated. Please find the details below:</p>

        <div class="invoice-details">
          <strong>Invoice ID:</strong> {{.InvoiceNo}}<br>
          <strong>Customer:</strong> {{.CustomerName}}<br>
          <strong>Date:</strong> {{.SaleDate}}<br>
          <strong>Total Amount:</strong> {{.Total}}<br>
          <strong>Issued By:</strong> {{.IssuerName}}
        </div>

        <p>The invoice PDF is attached to this email.</p>
      </div>

      <div class="footer">
        <p>{{.CompanyName}}</p>
        <p>This is an automated message. Please do not reply to this email.</p>
      </div>
    </div>
  </body>
</html>
`

const passwordResetTemplate = `
<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #2196F3; color: white; padding: 20px; text-align: center; }
      .button { display: inline-block; background-color: #2196F3; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; margin: 15px 0; }
      .footer { text-align: center; color: #666; font-size: 12px; padding: 20px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>{{.CompanyName}}</h1>
      </div>
      <p>We received a request to reset your password. Click the button below to choose a new one:</p>
      <p><a class="button" href="{{.ResetURL}}">Reset Password</a></p>
      <p>If you did not request a password reset, you can safely ignore this email. The link expires in one hour.</p>
      <div class="footer">
        <p>This is an automated message. Please do not reply to this email.</p>
      </div>
    </div>
  </body>
</html>
`
