package config

import "os"

// EmailConfig carries the settings for the outbound email provider API.
// Sending is disabled when no API key is configured; emails are logged
// instead so local development needs no provider account.
type EmailConfig struct {
	APIURL    string
	APIKey    string
	FromEmail string
	FromName  string
}

func LoadEmailConfig() *EmailConfig {
	cfg := &EmailConfig{
		APIURL:    os.Getenv("EMAIL_API_URL"),
		APIKey:    os.Getenv("EMAIL_API_KEY"),
		FromEmail: os.Getenv("EMAIL_FROM_ADDRESS"),
		FromName:  os.Getenv("EMAIL_FROM_NAME"),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.resend.com/emails"
	}
	if cfg.FromEmail == "" {
		cfg.FromEmail = "no-reply@slotify.app"
	}
	if cfg.FromName == "" {
		cfg.FromName = "Slotify"
	}
	return cfg
}

func (c *EmailConfig) Enabled() bool {
	return c.APIKey != ""
}
