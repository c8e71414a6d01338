package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// R2Archive mirrors uploaded PDFs to an S3-compatible bucket
// (Cloudflare R2). It is optional; the local archive is the source
// of truth and mirror failures are non-fatal.
type R2Archive struct {
	client *s3.Client
	bucket string
}

type R2Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

func NewR2Archive(ctx context.Context, rc R2Config) (*R2Archive, error) {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion("auto"),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(rc.AccessKey, rc.SecretKey, ""),
		),
		config.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(
				func(service, region string, options ...interface{}) (aws.Endpoint, error) {
					if service == s3.ServiceID {
						return aws.Endpoint{
							URL:           rc.Endpoint,
							SigningRegion: "auto",
						}, nil
					}
					return aws.Endpoint{}, &aws.EndpointNotFoundError{}
				},
			),
		),
	)
	if err != nil {
		return nil, err
	}

	return &R2Archive{
		client: s3.NewFromConfig(cfg),
		bucket: rc.Bucket,
	}, nil
}

func (a *R2Archive) Store(ctx context.Context, restaurantName string, data []byte) (string, error) {
	key := fmt.Sprintf("menus/%s/%s.pdf", restaurantName, uuid.New().String())
	contentType := "application/pdf"

	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &a.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}
