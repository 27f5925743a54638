package shop

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/smtp"
	"net/url"
	"strings"

	"github.com/gofiber/template/django/v3"
	"github.com/goliatone/go-errors"
)

// SMTPMailer delivers mail over a plain SMTP endpoint. Auth is optional so
// local relays (mailhog, postfix on localhost) keep working.
type SMTPMailer struct {
	addr     string
	from     string
	username string
	password string
	host     string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		addr:     fmt.Sprintf("%s:%d", host, port),
		host:     host,
		from:     from,
		username: username,
		password: password,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), errors.CategoryOperation, "context cancelled during mail dispatch")
	default:
	}

	var msg bytes.Buffer
	msg.WriteString("From: " + m.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(m.addr, auth, m.from, []string{to}, msg.Bytes()); err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "smtp dispatch failed").
			WithMetadata(map[string]any{
				"to":      to,
				"subject": subject,
			})
	}

	return nil
}

// LogMailer writes messages to the logger instead of the wire. Used in
// development and tests.
type LogMailer struct {
	logger Logger
}

func NewLogMailer(logger Logger) *LogMailer {
	if logger == nil {
		logger = defLogger{}
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.logger.Info("mail dispatch", "to", to, "subject", subject, "body", htmlBody)
	return nil
}

// MailRenderer renders mail bodies from the embedded templates
type MailRenderer struct {
	engine *django.Engine
}

func NewMailRenderer() (*MailRenderer, error) {
	templates, err := GetTemplatesFS()
	if err != nil {
		return nil, err
	}

	engine := django.NewFileSystem(http.FS(templates), ".html")
	if err := engine.Load(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load mail templates")
	}

	return &MailRenderer{engine: engine}, nil
}

func (r *MailRenderer) Render(name string, bind map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Render(&buf, name, bind); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to render mail template").
			WithMetadata(map[string]any{
				"template": name,
			})
	}
	return buf.String(), nil
}

// ConfirmationMailer builds and dispatches the confirmation email
type ConfirmationMailer struct {
	mailer   Mailer
	renderer *MailRenderer
	baseURL  string
	subject  string
}

func NewConfirmationMailer(mailer Mailer, renderer *MailRenderer, baseURL string) *ConfirmationMailer {
	return &ConfirmationMailer{
		mailer:   mailer,
		renderer: renderer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		subject:  "Confirm your email address",
	}
}

func (m *ConfirmationMailer) SendConfirmation(ctx context.Context, user *User, encodedCode string) error {
	link := ConfirmationLink(m.baseURL, user.ID.String(), encodedCode)

	body, err := m.renderer.Render("confirmation_email", map[string]any{
		"email": user.Email,
		"link":  link,
	})
	if err != nil {
		return err
	}

	return m.mailer.Send(ctx, user.Email, m.subject, body)
}

// ConfirmationLink embeds the user id and the URL-safe encoded code in the
// callback URL.
func ConfirmationLink(baseURL, userID, encodedCode string) string {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("code", encodedCode)
	return fmt.Sprintf("%s/ConfirmEmail?%s", strings.TrimRight(baseURL, "/"), q.Encode())
}
