package config

import (
	"github.com/Skotchmaster/storefront/pkg/config"
)

type ServiceConfig struct {
	config.Config

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	S3Bucket   string
	S3Region   string
	S3Endpoint string
	S3KeyID    string
	S3Secret   string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailSender   string

	ImgProfileSize int
	ImgPrefix      string
}

func Load() ServiceConfig {
	cfg := config.Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTAccessSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.JWTRefreshSecret, "JWT_REFRESH_SECRET")
	config.MustOneOf(cfg.Profile, "APP_PROFILE", "dev", "test", "prod")
	config.MustOneOf(cfg.DBDriver, "DB_DRIVER", "postgres", "sqlite")

	return ServiceConfig{
		Config: cfg,

		ESURL:      config.EnvDefault("ES_URL", ""),
		ESUser:     config.EnvDefault("ES_USER", ""),
		ESPassword: config.EnvDefault("ES_PASSWORD", ""),
		ESIndex:    config.EnvDefault("ES_INDEX", "products"),

		S3Bucket:   config.EnvDefault("S3_BUCKET", ""),
		S3Region:   config.EnvDefault("S3_REGION", "sa-east-1"),
		S3Endpoint: config.EnvDefault("S3_ENDPOINT", ""),
		S3KeyID:    config.EnvDefault("AWS_ACCESS_KEY_ID", ""),
		S3Secret:   config.EnvDefault("AWS_SECRET_ACCESS_KEY", ""),

		SMTPHost:     config.EnvDefault("SMTP_HOST", ""),
		SMTPPort:     config.EnvIntDefault("SMTP_PORT", 587),
		SMTPUser:     config.EnvDefault("SMTP_USER", ""),
		SMTPPassword: config.EnvDefault("SMTP_PASSWORD", ""),
		MailSender:   config.EnvDefault("MAIL_SENDER", "no-reply@storefront.local"),

		ImgProfileSize: config.EnvIntDefault("IMG_PROFILE_SIZE", 200),
		ImgPrefix:      config.EnvDefault("IMG_PREFIX_CLIENT_PROFILE", "cp"),
	}
}

// UsesMockMail reports whether outgoing mail should only be logged.
func (c ServiceConfig) UsesMockMail() bool {
	return c.Profile != "prod" || c.SMTPHost == ""
}
