package mail

import (
	"bytes"
	"io"

	gomail "gopkg.in/gomail.v2"

	"github.com/shopsphere/fulfillment/internal/usecase"
)

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(m usecase.Mail) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)

	for _, att := range m.Attachments {
		content := att.Content
		msg.Attach(att.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(content))
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {att.MIME}}),
		)
	}

	return s.dialer.DialAndSend(msg)
}

var _ usecase.MailSender = (*SMTPSender)(nil)
