package templates

import (
	"fmt"
	"time"

	"github.com/oksasatya/go-forum-auth/config"
)

// Option pattern
type Option func(*EmailData)

func WithCode(code string) Option { return func(d *EmailData) { d.Code = code } }

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithExpiresIn(dur time.Duration) Option {
	return func(d *EmailData) {
		utc := time.Now().Add(dur).UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04")
		d.ExpiresIn = formatMinutes(dur)
	}
}

func formatMinutes(d time.Duration) string {
	m := int(d.Round(time.Minute) / time.Minute)
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}

// NewBaseEmailData fills the common fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, email string, opts ...Option) EmailData {
	d := EmailData{
		Email: email,
		Type:  typ,

		AppName:        cfg.AppName,
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewVerificationCodeData builds the data for a code mail of template typ.
func NewVerificationCodeData(cfg *config.Config, typ, email, code string, opts ...Option) EmailData {
	opts = append([]Option{WithCode(code)}, opts...)
	return NewBaseEmailData(cfg, typ, email, opts...)
}
