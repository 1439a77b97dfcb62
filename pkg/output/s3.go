package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/df07/go-pixel-tracer/pkg/core"
)

// UploadTimeout bounds a single upload
const UploadTimeout = 30 * time.Second

// S3Config holds connection settings for S3-compatible storage
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // Empty for AWS, set for MinIO and similar
	Region    string
}

// S3ConfigFromEnv reads S3_ACCESS_KEY, S3_SECRET_KEY, S3_ENDPOINT and S3_REGION
func S3ConfigFromEnv() S3Config {
	return S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    os.Getenv("S3_REGION"),
	}
}

// NewS3Client creates an S3 client. Without static keys the SDK's default
// credential chain is used.
func NewS3Client(cfg S3Config) (s3iface.S3API, error) {
	awsConfig := &aws.Config{}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Region != "" {
		awsConfig.Region = aws.String(cfg.Region)
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("creating S3 session: %w", err)
	}
	return s3.New(sess), nil
}

// S3Location is a bucket and object key
type S3Location struct {
	Bucket string
	Key    string
}

func (l S3Location) String() string {
	return "s3://" + l.Bucket + "/" + l.Key
}

// ParseS3URL parses s3://bucket/key
func ParseS3URL(raw string) (S3Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return S3Location{}, fmt.Errorf("parsing upload URL: %w", err)
	}
	if u.Scheme != "s3" {
		return S3Location{}, fmt.Errorf("upload URL %q must use the s3 scheme", raw)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return S3Location{}, fmt.Errorf("upload URL %q needs both a bucket and a key", raw)
	}
	return S3Location{Bucket: u.Host, Key: key}, nil
}

// Publisher uploads encoded images to object storage
type Publisher struct {
	client  s3iface.S3API
	timeout time.Duration
	logger  core.Logger
}

// NewPublisher creates a publisher on top of an S3 client
func NewPublisher(client s3iface.S3API, logger core.Logger) *Publisher {
	return &Publisher{
		client:  client,
		timeout: UploadTimeout,
		logger:  logger,
	}
}

// Publish uploads data to location with the given content type
func (p *Publisher) Publish(ctx context.Context, location S3Location, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(location.Bucket),
		Key:           aws.String(location.Key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", location, err)
	}

	p.logger.Printf("Uploaded %s (%d bytes)\n", location, size)
	return nil
}

// PublishImage encodes img and uploads it
func (p *Publisher) PublishImage(ctx context.Context, location S3Location, img image.Image, format Format) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format); err != nil {
		return err
	}
	return p.Publish(ctx, location, buf.Bytes(), format.ContentType())
}
