package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"
)

// fakeS3 scripts HeadBucket responses per region and records calls.
type fakeS3 struct {
	mu sync.Mutex

	region string

	// headErrs maps region -> error returned by HeadBucket (nil = ok)
	headErrs map[string]error
	// location returned by GetBucketLocation
	location types.BucketLocationConstraint
	locErr   error

	createErr   error
	createCalls int
	headCalls   int
	putCalls    []string
	deleteCalls []string
	bucketCount int
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.headCalls++
	if err, ok := f.headErrs[f.region]; ok && err != nil {
		return nil, err
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(context.Context, *s3.CreateBucketInput, ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	delete(f.headErrs, f.region)
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3) GetBucketLocation(context.Context, *s3.GetBucketLocationInput, ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error) {
	if f.locErr != nil {
		return nil, f.locErr
	}
	return &s3.GetBucketLocationOutput{LocationConstraint: f.location}, nil
}

func (f *fakeS3) ListBuckets(context.Context, *s3.ListBucketsInput, ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	buckets := make([]types.Bucket, f.bucketCount)
	return &s3.ListBucketsOutput{Buckets: buckets}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putCalls = append(f.putCalls, *in.Key)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

type fakePresign struct{}

func (fakePresign) PresignGetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (string, error) {
	return "https://signed.example/" + *in.Key, nil
}

func newTestClient(t *testing.T, fake *fakeS3, region string) (*Client, *[]string) {
	t.Helper()
	var connectedRegions []string
	connect := func(r string) (S3API, PresignAPI, error) {
		connectedRegions = append(connectedRegions, r)
		fake.region = r
		return fake, fakePresign{}, nil
	}
	c, err := NewClientWithConnect(Config{
		Region: region,
		Bucket: "test-bucket",
	}, connect)
	require.NoError(t, err)
	return c, &connectedRegions
}

func redirectErr() error {
	return &smithy.GenericAPIError{Code: "PermanentRedirect", Message: "bucket is elsewhere"}
}

/* ------------------------------------------------------------------
   Bucket bootstrap
------------------------------------------------------------------ */

func TestEnsureBucketExisting(t *testing.T) {
	fake := &fakeS3{headErrs: map[string]error{}}
	c, _ := newTestClient(t, fake, "us-east-1")

	require.NoError(t, c.EnsureBucket(context.Background()))
	require.Equal(t, 1, fake.headCalls)
	require.Zero(t, fake.createCalls)

	// second call is a no-op
	require.NoError(t, c.EnsureBucket(context.Background()))
	require.Equal(t, 1, fake.headCalls)
}

func TestEnsureBucketRedirectReconnects(t *testing.T) {
	fake := &fakeS3{
		headErrs: map[string]error{"us-east-1": redirectErr()},
		location: types.BucketLocationConstraint("eu-west-2"),
	}
	c, regions := newTestClient(t, fake, "us-east-1")

	require.NoError(t, c.EnsureBucket(context.Background()))
	require.Equal(t, []string{"us-east-1", "eu-west-2"}, *regions)
	require.Equal(t, "eu-west-2", c.Region())
	require.Zero(t, fake.createCalls)
}

func TestEnsureBucketRedirectToUSEast1(t *testing.T) {
	// an empty LocationConstraint means us-east-1
	fake := &fakeS3{
		headErrs: map[string]error{"eu-west-2": redirectErr()},
		location: "",
	}
	c, _ := newTestClient(t, fake, "eu-west-2")

	require.NoError(t, c.EnsureBucket(context.Background()))
	require.Equal(t, "us-east-1", c.Region())
}

func TestEnsureBucketRedirectLookupFailure(t *testing.T) {
	fake := &fakeS3{
		headErrs: map[string]error{"us-east-1": redirectErr()},
		locErr:   errors.New("location lookup denied"),
	}
	c, _ := newTestClient(t, fake, "us-east-1")

	err := c.EnsureBucket(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "region lookup failed")
}

func TestEnsureBucketCreatesMissing(t *testing.T) {
	fake := &fakeS3{headErrs: map[string]error{"us-west-2": &types.NotFound{}}}
	c, _ := newTestClient(t, fake, "us-west-2")

	require.NoError(t, c.EnsureBucket(context.Background()))
	require.Equal(t, 1, fake.createCalls)
}

func TestEnsureBucketCreateRaceIgnored(t *testing.T) {
	fake := &fakeS3{
		headErrs:  map[string]error{"us-east-1": &types.NotFound{}},
		createErr: &types.BucketAlreadyOwnedByYou{},
	}
	c, _ := newTestClient(t, fake, "us-east-1")

	require.NoError(t, c.EnsureBucket(context.Background()))
}

func TestEnsureBucketUnknownErrorSurfaces(t *testing.T) {
	fake := &fakeS3{headErrs: map[string]error{"us-east-1": errors.New("access denied")}}
	c, _ := newTestClient(t, fake, "us-east-1")

	require.Error(t, c.EnsureBucket(context.Background()))
}

/* ------------------------------------------------------------------
   Object operations run bootstrap first
------------------------------------------------------------------ */

func TestPutObjectEnsuresBucket(t *testing.T) {
	fake := &fakeS3{headErrs: map[string]error{"us-east-1": &types.NotFound{}}}
	c, _ := newTestClient(t, fake, "us-east-1")

	err := c.PutObject(context.Background(), "image/a.png", "image/png", nil)
	require.NoError(t, err)
	require.Equal(t, 1, fake.createCalls)
	require.Equal(t, []string{"image/a.png"}, fake.putCalls)
}

func TestPresignGet(t *testing.T) {
	fake := &fakeS3{headErrs: map[string]error{}}
	c, _ := newTestClient(t, fake, "us-east-1")

	url, err := c.PresignGet(context.Background(), "doc/lease.pdf", 5*time.Minute)
	require.NoError(t, err)
	require.Equal(t, "https://signed.example/doc/lease.pdf", url)
}

func TestCountBuckets(t *testing.T) {
	fake := &fakeS3{headErrs: map[string]error{}, bucketCount: 3}
	c, _ := newTestClient(t, fake, "us-east-1")

	n, err := c.CountBuckets(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

/* ------------------------------------------------------------------
   URL <-> key mapping
------------------------------------------------------------------ */

func TestPublicURLAndKeyRoundTrip(t *testing.T) {
	fake := &fakeS3{headErrs: map[string]error{}}
	c, _ := newTestClient(t, fake, "eu-central-1")

	url := c.PublicURL("image/users/u1/a.png")
	require.Equal(t, "https://test-bucket.s3.eu-central-1.amazonaws.com/image/users/u1/a.png", url)

	key, err := c.KeyFromURL(url)
	require.NoError(t, err)
	require.Equal(t, "image/users/u1/a.png", key)
}

func TestKeyFromURLMalformed(t *testing.T) {
	fake := &fakeS3{headErrs: map[string]error{}}
	c, _ := newTestClient(t, fake, "us-east-1")

	_, err := c.KeyFromURL("https://example.com/not-a-bucket/file.png")
	require.Error(t, err)

	// marker present but no key after it
	_, err = c.KeyFromURL("https://b.s3.us-east-1.amazonaws.com/")
	require.Error(t, err)
}

func TestKeyFromURLWithBaseOverride(t *testing.T) {
	connect := func(string) (S3API, PresignAPI, error) {
		return &fakeS3{headErrs: map[string]error{}}, fakePresign{}, nil
	}
	c, err := NewClientWithConnect(Config{
		Region:        "us-east-1",
		Bucket:        "b",
		PublicURLBase: "https://cdn.example.com/files/",
	}, connect)
	require.NoError(t, err)

	url := c.PublicURL("doc/a.pdf")
	require.Equal(t, "https://cdn.example.com/files/doc/a.pdf", url)

	key, err := c.KeyFromURL(url)
	require.NoError(t, err)
	require.Equal(t, "doc/a.pdf", key)

	_, err = c.KeyFromURL("https://other.example.com/doc/a.pdf")
	require.Error(t, err)
}
