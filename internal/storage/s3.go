package storage

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	PublicBase string
}

// S3Store commits avatars to an S3 bucket instead of the local avatar
// directory. Commit uploads the staged file under the public prefix and
// removes the local source, matching the Store contract.
type S3Store struct {
	cfg S3Config
	s3  *s3.Client
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Region == "" || cfg.Bucket == "" {
		return nil, errors.New("s3 region and bucket are required")
	}

	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	if cfg.Endpoint != "" {
		if _, err := url.Parse(cfg.Endpoint); err != nil {
			return nil, fmt.Errorf("invalid s3 endpoint %q: %w", cfg.Endpoint, err)
		}
		opts = append(opts, config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				if service == s3.ServiceID {
					return aws.Endpoint{URL: cfg.Endpoint, SigningRegion: cfg.Region}, nil
				}
				return aws.Endpoint{}, &aws.EndpointNotFoundError{}
			}),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.UsePathStyle = true
		}
	})

	return &S3Store{cfg: cfg, s3: client}, nil
}

func (s *S3Store) Commit(ctx context.Context, srcPath, name string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(path.Join(PublicPrefix, name)),
		Body:   src,
	}
	if contentType := mime.TypeByExtension(filepath.Ext(name)); contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	_, err = s.s3.PutObject(ctx, input)
	src.Close()
	if err != nil {
		return err
	}

	return os.Remove(srcPath)
}

func (s *S3Store) PublicPath(name string) string {
	key := path.Join(PublicPrefix, name)
	if s.cfg.PublicBase != "" {
		return s.cfg.PublicBase + "/" + key
	}
	return key
}
