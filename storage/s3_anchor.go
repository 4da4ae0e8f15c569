package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/dreitier/shortcal/calendar"
	log "github.com/sirupsen/logrus"
)

// S3Store keeps the anchor as a single object on S3 compatible storage.
type S3Store struct {
	Bucket            string
	Key               string
	Region            string
	AccessKey         string
	SecretKey         string
	Token             string
	Endpoint          string
	ForcePathStyle    bool
	VerifyCredentials bool

	mutex     sync.Mutex
	awsConfig aws.Config
	s3Client  *s3.Client
}

func (c *S3Store) client(ctx context.Context) (*s3.Client, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.s3Client != nil {
		return c.s3Client, nil
	}

	region := c.Region
	if region == "" {
		region = "eu-central-1"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if c.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, c.Token)))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build S3 client: %w", err)
	}

	c.awsConfig = cfg
	c.s3Client = s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = c.ForcePathStyle
		// S3 compatible stores frequently reject the default checksums
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	})

	return c.s3Client, nil
}

// Verify checks the configured credentials with STS. It is a no-op unless
// VerifyCredentials is set.
func (c *S3Store) Verify(ctx context.Context) error {
	if !c.VerifyCredentials {
		return nil
	}

	if _, err := c.client(ctx); err != nil {
		return err
	}

	svc := sts.NewFromConfig(c.awsConfig, func(o *sts.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
	})

	identity, err := svc.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return fmt.Errorf("could not verify S3 credentials: %w", err)
	}

	log.Infof("Anchor store uses identity %s", aws.ToString(identity.Arn))
	return nil
}

func (c *S3Store) Load(ctx context.Context) (calendar.DateTime, error) {
	svc, err := c.client(ctx)
	if err != nil {
		return 0, fmt.Errorf("could not acquire S3 client instance: %w", err)
	}

	out, err := svc.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.Bucket),
		Key:    aws.String(c.Key),
	})
	if err != nil {
		if isNotFound(err) {
			return 0, ErrNoAnchor
		}
		return 0, fmt.Errorf("failed to get anchor %#q from bucket %#q: %w", c.Key, c.Bucket, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, anchorSize+1))
	if err != nil {
		return 0, fmt.Errorf("failed to read anchor %#q from bucket %#q: %w", c.Key, c.Bucket, err)
	}

	return Decode(data)
}

func (c *S3Store) Save(ctx context.Context, dt calendar.DateTime) error {
	svc, err := c.client(ctx)
	if err != nil {
		return fmt.Errorf("could not acquire S3 client instance: %w", err)
	}

	_, err = svc.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.Bucket),
		Key:         aws.String(c.Key),
		Body:        bytes.NewReader(Encode(dt)),
		ContentType: aws.String("application/octet-stream"),
	})
	if err != nil {
		return fmt.Errorf("failed to put anchor %#q to bucket %#q: %w", c.Key, c.Bucket, err)
	}

	log.Debugf("Saved anchor %s to s3://%s/%s", dt, c.Bucket, c.Key)
	return nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
