package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3StoreRequiresRegionAndBucket(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{Bucket: "avatars"})
	assert.Error(t, err)

	_, err = NewS3Store(context.Background(), S3Config{Region: "eu-west-1"})
	assert.Error(t, err)
}

func TestNewS3StoreRejectsMalformedEndpoint(t *testing.T) {
	_, err := NewS3Store(context.Background(), S3Config{
		Region:   "eu-west-1",
		Bucket:   "avatars",
		Endpoint: ":",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid s3 endpoint")
}

func TestS3StorePublicPath(t *testing.T) {
	bare := &S3Store{cfg: S3Config{Bucket: "avatars"}}
	assert.Equal(t, "avatars/u1.jpg", bare.PublicPath("u1.jpg"))

	based := &S3Store{cfg: S3Config{Bucket: "avatars", PublicBase: "https://cdn.example.com"}}
	assert.Equal(t, "https://cdn.example.com/avatars/u1.jpg", based.PublicPath("u1.jpg"))
}
