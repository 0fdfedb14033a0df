package infra

import (
	"github.com/DS-LIT/hrba-forms/internal/app/appconfig"
	"github.com/DS-LIT/hrba-forms/internal/mail"
)

func MailConfig(conf *appconfig.Config) mail.Config {
	return mail.Config{
		Host:     conf.SMTPHost,
		Port:     conf.SMTPPort,
		Username: conf.EmailUser,
		Password: conf.EmailPass,
		Auth:     conf.SMTPAuth,
		TLS:      mail.TLSMode(conf.SMTPTLS),
		From:     conf.EmailUser,
		Timeout:  conf.SMTPTimeout,
	}
}

func Mailer(conf *appconfig.Config) (*mail.Dispatcher, error) {
	return mail.NewDispatcher(MailConfig(conf))
}
