package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

// S3Remote stores record documents in an S3 bucket, one object per record
// under <prefix>/records/<id>.json. Credentials can be given explicitly or
// resolved through the default AWS credential chain.
type S3Remote struct {
	name     string
	bucket   string
	prefix   string
	client   *s3.Client
	uploader *manager.Uploader
	codec    *Codec
}

// S3Options holds the connection parameters for an S3 remote.
type S3Options struct {
	Bucket          string
	Prefix          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Remote creates a new S3-backed remote.
func NewS3Remote(ctx context.Context, name string, opts S3Options, codec *Codec) (*S3Remote, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 remote requires a bucket")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Remote{
		name:     name,
		bucket:   opts.Bucket,
		prefix:   opts.Prefix,
		client:   client,
		uploader: manager.NewUploader(client),
		codec:    codec,
	}, nil
}

// Push upserts a record document. S3 PutObject is already atomic per key.
func (r *S3Remote) Push(ctx context.Context, record *tracker.DailyRecord) error {
	data, err := r.codec.Encode(record)
	if err != nil {
		return err
	}

	key := r.docKey(record.ID)
	_, err = r.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: &r.bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("uploading document %s: %w", key, err)
	}
	return nil
}

// PullAll lists and reads every document under the records prefix, skips any
// that fail validation, and returns the rest ordered by Date ascending.
func (r *S3Remote) PullAll(ctx context.Context) ([]*tracker.DailyRecord, error) {
	listPrefix := r.recordsPrefix()
	paginator := s3.NewListObjectsV2Paginator(r.client, &s3.ListObjectsV2Input{
		Bucket: &r.bucket,
		Prefix: &listPrefix,
	})

	var records []*tracker.DailyRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing documents: %w", err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil || strings.HasSuffix(*obj.Key, "/") {
				continue
			}
			data, err := r.getObject(ctx, *obj.Key)
			if err != nil {
				return nil, err
			}

			record, err := r.codec.Decode(data)
			if err != nil {
				var verr *tracker.ValidationError
				if errors.As(err, &verr) {
					continue
				}
				return nil, err
			}
			records = append(records, record)
		}
	}

	sortByDate(records)
	return records, nil
}

// ValidateSetup verifies that the bucket exists and is readable.
func (r *S3Remote) ValidateSetup(ctx context.Context) error {
	_, err := r.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: &r.bucket})
	if err != nil {
		return fmt.Errorf("bucket %s not accessible: %w", r.bucket, err)
	}
	return nil
}

func (r *S3Remote) getObject(ctx context.Context, key string) ([]byte, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &r.bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading document body %s: %w", key, err)
	}
	return data, nil
}

func (r *S3Remote) docKey(id string) string {
	return path.Join(r.prefix, "records", id+".json")
}

func (r *S3Remote) recordsPrefix() string {
	return path.Join(r.prefix, "records") + "/"
}

// Compile-time check that S3Remote implements tracker.RemoteStore
var _ tracker.RemoteStore = (*S3Remote)(nil)
