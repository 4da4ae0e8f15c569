package config

import (
	log "github.com/sirupsen/logrus"
)

const DefaultAnchorKey = "shortcal/anchor"

// AnchorConfiguration locates the store for the last known good time. Either
// Path (local file) or Bucket (S3 compatible object storage) is set.
type AnchorConfiguration struct {
	Path              string
	Bucket            string
	Key               string
	Region            string
	AccessKey         string
	SecretKey         string
	Endpoint          string
	ForcePathStyle    bool
	Token             string
	VerifyCredentials bool
}

func (c *AnchorConfiguration) IsLocal() bool {
	return c.Path != ""
}

func parseAnchor(cfg Raw) *AnchorConfiguration {
	if cfg == nil {
		return nil
	}

	const paramRegion = "region"
	const paramForcePathStyle = "force_path_style"
	const paramAccessKeyId = "access_key_id"
	const paramSecretAccessKey = "secret_access_key"
	const paramEndpoint = "endpoint"
	const paramToken = "token"

	// check if local file or S3 object
	if cfg.Has("path") {
		path := cfg.String("path")
		if path == "" {
			log.Errorf("Parameter 'path' has been set for the anchor, but is empty")
			return nil
		}

		return &AnchorConfiguration{Path: path}
	}

	bucket := cfg.String("bucket")
	if bucket == "" {
		log.Errorf("Anchor section requires either 'path' or 'bucket'")
		return nil
	}

	key := DefaultAnchorKey
	if cfg.Has("key") {
		key = cfg.String("key")
	}

	region := "eu-central-1"
	if cfg.Has(paramRegion) {
		region = cfg.String(paramRegion)
	}

	forcePathStyle := false
	if cfg.Has(paramForcePathStyle) {
		forcePathStyle = cfg.Bool(paramForcePathStyle)
	}

	return &AnchorConfiguration{
		Bucket:            bucket,
		Key:               key,
		Region:            region,
		ForcePathStyle:    forcePathStyle,
		AccessKey:         cfg.String(paramAccessKeyId),
		SecretKey:         cfg.String(paramSecretAccessKey),
		Endpoint:          cfg.String(paramEndpoint),
		Token:             cfg.String(paramToken),
		VerifyCredentials: cfg.Bool("verify_credentials"),
	}
}
