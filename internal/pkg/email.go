package pkg

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled 未配置 SMTP 时跳过发信
func (cfg SMTPConfig) Enabled() bool {
	return cfg.Host != ""
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

// AssignmentHTML 指派通知正文
func AssignmentHTML(projectTitle, issueTitle, priority string) string {
	return fmt.Sprintf(`<p>An issue in project <b>%s</b> has been assigned to you.</p><p>Issue: <b>%s</b> (priority: %s)</p>`, projectTitle, issueTitle, priority)
}
