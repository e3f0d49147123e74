package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/scalixity-dev/Pms-backend-sub001/internal/utils"
)

// URLMarker is the fixed domain marker object keys are parsed out of
// public URLs with.
const URLMarker = ".amazonaws.com/"

// S3API is the subset of the AWS S3 client the service uses. Tests
// substitute a fake.
type S3API interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	GetBucketLocation(ctx context.Context, in *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error)
	ListBuckets(ctx context.Context, in *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// PresignAPI wraps s3.PresignClient for tests.
type PresignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (string, error)
}

type presignClient struct {
	inner *s3.PresignClient
}

func (p *presignClient) PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (string, error) {
	req, err := p.inner.PresignGetObject(ctx, in, optFns...)
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// ConnectFunc builds (or rebuilds) the low-level clients for a region.
// The client calls it again when bucket bootstrap detects the bucket
// actually lives in a different region.
type ConnectFunc func(region string) (S3API, PresignAPI, error)

/*
Client is the object-store gateway. Bucket initialization happens once,
blocking, behind a mutex shared across request handlers; a failed
startup init is retried lazily on first use.
*/
type Client struct {
	bucket        string
	region        string
	publicURLBase string // optional override for S3-compatible stores
	connect       ConnectFunc

	mu          sync.Mutex
	api         S3API
	presign     PresignAPI
	initialized bool
}

// Config carries what the client needs to talk to the store.
type Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // optional, for S3-compatible backends
	PublicURLBase   string // optional, overrides the AWS URL shape
	UsePathStyle    bool
}

// NewClient wires a Client against the real AWS SDK.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, errors.New("storage credentials are required")
	}

	connect := func(region string) (S3API, PresignAPI, error) {
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(region),
			awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
			),
		)
		if err != nil {
			return nil, nil, err
		}
		api := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			if cfg.UsePathStyle || cfg.Endpoint != "" {
				o.UsePathStyle = true
			}
		})
		return api, &presignClient{inner: s3.NewPresignClient(api)}, nil
	}

	return NewClientWithConnect(cfg, connect)
}

// NewClientWithConnect is the test seam.
func NewClientWithConnect(cfg Config, connect ConnectFunc) (*Client, error) {
	api, presign, err := connect(cfg.Region)
	if err != nil {
		return nil, err
	}
	return &Client{
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		publicURLBase: cfg.PublicURLBase,
		connect:       connect,
		api:           api,
		presign:       presign,
	}, nil
}

func (c *Client) Bucket() string { return c.bucket }

// Region returns the region the client currently talks to. Bootstrap
// may have moved it off the configured one.
func (c *Client) Region() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.region
}

/*
EnsureBucket guarantees the destination bucket exists before any write.

State transitions: assume configured region → on a redirect-class error
query the bucket's actual region, reconnect there, retry once → on
definitive absence create the bucket (races with another creator are
ignored) → success or error.
*/
func (c *Client) EnsureBucket(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	_, err := c.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucket)})
	if err == nil {
		c.initialized = true
		return nil
	}

	switch {
	case isRegionRedirect(err):
		actual, locErr := c.lookupBucketRegion(ctx)
		if locErr != nil {
			return fmt.Errorf("bucket %q is in another region and region lookup failed: %w", c.bucket, locErr)
		}
		utils.Logger.Warnf("Bucket %q lives in region %q, reconnecting (was %q)", c.bucket, actual, c.region)

		api, presign, connErr := c.connect(actual)
		if connErr != nil {
			return connErr
		}
		c.api = api
		c.presign = presign
		c.region = actual

		if _, retryErr := c.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(c.bucket)}); retryErr != nil {
			return fmt.Errorf("bucket %q unreachable after region reconnect: %w", c.bucket, retryErr)
		}
		c.initialized = true
		return nil

	case isBucketAbsent(err):
		if createErr := c.createBucket(ctx); createErr != nil {
			return createErr
		}
		c.initialized = true
		return nil

	default:
		return fmt.Errorf("head bucket %q: %w", c.bucket, err)
	}
}

func (c *Client) createBucket(ctx context.Context) error {
	in := &s3.CreateBucketInput{Bucket: aws.String(c.bucket)}
	// us-east-1 rejects an explicit LocationConstraint
	if c.region != "us-east-1" {
		in.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(c.region),
		}
	}

	_, err := c.api.CreateBucket(ctx, in)
	if err != nil {
		// another process won the race, that's fine
		var owned *types.BucketAlreadyOwnedByYou
		var exists *types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			utils.Logger.Infof("Bucket %q already created concurrently", c.bucket)
			return nil
		}
		return fmt.Errorf("create bucket %q: %w", c.bucket, err)
	}
	utils.Logger.Infof("Created bucket %q in region %q", c.bucket, c.region)
	return nil
}

func (c *Client) lookupBucketRegion(ctx context.Context) (string, error) {
	out, err := c.api.GetBucketLocation(ctx, &s3.GetBucketLocationInput{Bucket: aws.String(c.bucket)})
	if err != nil {
		return "", err
	}
	// an empty LocationConstraint means us-east-1
	if out.LocationConstraint == "" {
		return "us-east-1", nil
	}
	return string(out.LocationConstraint), nil
}

/* ------------------------------------------------------------------
   Object operations
------------------------------------------------------------------ */

func (c *Client) PutObject(ctx context.Context, key, contentType string, body io.Reader) error {
	if err := c.EnsureBucket(ctx); err != nil {
		return err
	}
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	return err
}

func (c *Client) DeleteObject(ctx context.Context, key string) error {
	if err := c.EnsureBucket(ctx); err != nil {
		return err
	}
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (c *Client) PresignGet(ctx context.Context, key string, duration time.Duration) (string, error) {
	if err := c.EnsureBucket(ctx); err != nil {
		return "", err
	}
	return c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = duration
	})
}

// CountBuckets is the connection-test diagnostic.
func (c *Client) CountBuckets(ctx context.Context) (int, error) {
	out, err := c.api.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return 0, err
	}
	return len(out.Buckets), nil
}

/* ------------------------------------------------------------------
   URL <-> key mapping
------------------------------------------------------------------ */

// PublicURL renders the canonical public URL for a stored key.
func (c *Client) PublicURL(key string) string {
	if c.publicURLBase != "" {
		return strings.TrimRight(c.publicURLBase, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s%s%s", c.bucket, c.Region(), URLMarker, key)
}

// KeyFromURL parses the object key back out of a public URL. Returns
// an error when the URL does not match the expected shape.
func (c *Client) KeyFromURL(url string) (string, error) {
	if c.publicURLBase != "" {
		base := strings.TrimRight(c.publicURLBase, "/") + "/"
		if strings.HasPrefix(url, base) && len(url) > len(base) {
			return url[len(base):], nil
		}
		return "", fmt.Errorf("url %q does not match storage base %q", url, c.publicURLBase)
	}
	idx := strings.Index(url, URLMarker)
	if idx < 0 || idx+len(URLMarker) >= len(url) {
		return "", fmt.Errorf("url %q does not look like a stored object", url)
	}
	return url[idx+len(URLMarker):], nil
}

/* ------------------------------------------------------------------
   Error classification
------------------------------------------------------------------ */

func isRegionRedirect(err error) bool {
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 301 {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "PermanentRedirect" || code == "301"
	}
	return false
}

func isBucketAbsent(err error) bool {
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var noBucket *types.NoSuchBucket
	if errors.As(err, &noBucket) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchBucket"
	}
	return false
}
