package mainconfig

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	appconfig "github.com/wolfman30/leadgen-site/internal/config"
)

var (
	// ErrMissingRegion is returned when SES or the archive is enabled without AWS_REGION.
	ErrMissingRegion = errors.New("mainconfig: AWS_REGION is required for SES and the lead archive")
	// ErrPartialCredentials is returned when only one half of a static key pair is set.
	ErrPartialCredentials = errors.New("mainconfig: AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set together")
)

// LoadAWSConfig builds the SDK config shared by the SES sender and the S3 lead
// archive. Static keys are used when both are set, otherwise the default chain.
// AWS_ENDPOINT_OVERRIDE (LocalStack, MinIO) becomes the base endpoint for every
// client built from the result.
func LoadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	region := strings.TrimSpace(cfg.AWSRegion)
	if region == "" {
		return aws.Config{}, ErrMissingRegion
	}

	loaders := []func(*config.LoadOptions) error{config.WithRegion(region)}
	keyID := strings.TrimSpace(cfg.AWSAccessKeyID)
	secret := strings.TrimSpace(cfg.AWSSecretAccessKey)
	switch {
	case keyID != "" && secret != "":
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(keyID, secret, ""),
		))
	case keyID != "" || secret != "":
		return aws.Config{}, ErrPartialCredentials
	}

	endpoint, err := endpointOverride(cfg.AWSEndpointOverride)
	if err != nil {
		return aws.Config{}, err
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("mainconfig: load aws config: %w", err)
	}
	if endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(endpoint)
	}
	return awsCfg, nil
}

// endpointOverride validates AWS_ENDPOINT_OVERRIDE. Empty means real AWS.
func endpointOverride(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("mainconfig: AWS_ENDPOINT_OVERRIDE must be an http(s) URL, got %q", raw)
	}
	return strings.TrimSuffix(raw, "/"), nil
}
