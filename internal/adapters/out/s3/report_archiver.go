package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"

	"logistics/internal/core/application/allocation"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var ErrBucketIsRequired = errors.New("s3: bucket required")

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// ReportArchiver stores each run summary as a JSON object at
//
//	s3://<bucket>/<prefix>/allocations/YYYY/MM/DD/<run_id>.json
//
// using the run's start date in UTC.
type ReportArchiver struct {
	bucket   string
	prefix   string
	uploader uploader
}

// NewReportArchiver loads AWS credentials and region from the default chain
// (AWS_REGION, AWS_PROFILE, AWS_ACCESS_KEY_ID, ...).
func NewReportArchiver(ctx context.Context, bucket, prefix string) (*ReportArchiver, error) {
	if bucket == "" {
		return nil, ErrBucketIsRequired
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newReportArchiver(bucket, prefix, manager.NewUploader(s3.NewFromConfig(cfg))), nil
}

func newReportArchiver(bucket, prefix string, up uploader) *ReportArchiver {
	return &ReportArchiver{bucket: bucket, prefix: prefix, uploader: up}
}

func (a *ReportArchiver) Publish(ctx context.Context, summary allocation.Summary) error {
	body, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal allocation summary: %w", err)
	}

	key := a.ObjectKey(summary)
	_, err = a.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(a.bucket),
		Key:                  aws.String(key),
		Body:                 bytes.NewReader(body),
		ContentType:          aws.String("application/json"),
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return fmt.Errorf("upload allocation summary to s3://%s/%s: %w", a.bucket, key, err)
	}
	return nil
}

func (a *ReportArchiver) ObjectKey(summary allocation.Summary) string {
	year, month, day := summary.StartedAt.UTC().Date()
	return path.Join(a.prefix, "allocations",
		fmt.Sprintf("%04d", year),
		fmt.Sprintf("%02d", int(month)),
		fmt.Sprintf("%02d", day),
		summary.RunID+".json",
	)
}
