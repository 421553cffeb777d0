package storage

import (
	"testing"

	"go.uber.org/zap"

	"github.com/proforma/backend/internal/infrastructure/config"
)

func newS3ForTest(t *testing.T, bucket, accessKey, secretKey string) (*S3ObjectStorage, error) {
	t.Helper()
	return NewS3ObjectStorage(config.StorageConfig{
		Bucket:          bucket,
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     accessKey,
		SecretAccessKey: secretKey,
		ForcePathStyle:  true,
	}, zap.NewNop())
}
