package config

import "time"

// Mail configures the SMTP notifier. When Host is empty the notifier
// runs in noop mode and only logs what it would have sent.
type Mail struct {
	Host     string `env:"MAIL_HOST"`
	Port     int    `env:"MAIL_PORT" envDefault:"587"`
	Username string `env:"MAIL_USERNAME"`
	Password string `env:"MAIL_PASSWORD"`

	From       string `env:"MAIL_FROM" envDefault:"inventory@company.com"`
	AdminEmail string `env:"MAIL_ADMIN_EMAIL" envDefault:"admin@company.com"`

	AppName string `env:"APP_NAME" envDefault:"Inventory Management System"`
	AppURL  string `env:"APP_URL" envDefault:"http://localhost:3000"`

	SendTimeout time.Duration `env:"MAIL_SEND_TIMEOUT" envDefault:"10s"`
}

// Enabled reports whether an SMTP backend is configured.
func (m Mail) Enabled() bool {
	return m.Host != ""
}
