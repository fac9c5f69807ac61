package bootstrap

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/wolfman30/leadgen-site/internal/archive"
	appconfig "github.com/wolfman30/leadgen-site/internal/config"
	"github.com/wolfman30/leadgen-site/internal/notify"
	"github.com/wolfman30/leadgen-site/pkg/logging"
)

// NeedsAWS reports whether any configured component talks to AWS.
func NeedsAWS(cfg *appconfig.Config) bool {
	return cfg.EmailProvider == "ses" || strings.TrimSpace(cfg.LeadsArchiveBucket) != ""
}

// BuildEmailSender picks the email transport from EMAIL_PROVIDER.
// "auto" uses SendGrid when a key is configured and the logging stub otherwise.
func BuildEmailSender(cfg *appconfig.Config, awsCfg aws.Config, logger *logging.Logger) notify.EmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	sendgridCfg := notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.EmailFromAddress,
		FromName:  cfg.EmailFromName,
	}

	switch cfg.EmailProvider {
	case "ses":
		logger.Info("email provider: ses", "region", awsCfg.Region)
		return notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.EmailFromAddress,
			FromName:  cfg.EmailFromName,
		}, logger)
	case "stub":
		logger.Info("email provider: stub")
		return notify.NewStubEmailSender(logger)
	case "sendgrid", "auto", "":
		if sender := notify.NewSendGridSender(sendgridCfg, logger); sender != nil {
			logger.Info("email provider: sendgrid")
			return sender
		}
		if cfg.EmailProvider == "sendgrid" {
			logger.Warn("EMAIL_PROVIDER=sendgrid but SENDGRID_API_KEY is empty; using stub")
		}
		return notify.NewStubEmailSender(logger)
	default:
		logger.Warn("unknown EMAIL_PROVIDER; using stub", "provider", cfg.EmailProvider)
		return notify.NewStubEmailSender(logger)
	}
}

// BuildArchiveStore returns the S3 lead archive, disabled without a bucket.
func BuildArchiveStore(cfg *appconfig.Config, awsCfg aws.Config, logger *logging.Logger) *archive.Store {
	bucket := strings.TrimSpace(cfg.LeadsArchiveBucket)
	if bucket == "" {
		return archive.NewStore(nil, "", logger)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// LocalStack and MinIO need path-style addressing.
		o.UsePathStyle = cfg.AWSEndpointOverride != ""
	})
	return archive.NewStore(client, bucket, logger)
}
