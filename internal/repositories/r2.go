package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"github.com/rohits-web03/chainvault/internal/blobstore"
)

// R2Store serves blobs pinned into a Cloudflare R2 bucket under their content hash.
type R2Store struct {
	client  *s3.Client
	bucket  string
	expires time.Duration
}

var _ blobstore.Resolver = (*R2Store)(nil)

// NewR2Store initializes the R2 client using static credentials and custom endpoint.
func NewR2Store(accessKey, secretKey, accountID, bucketName, region string, expires time.Duration) *R2Store {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)

	cfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		Region:      region,
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	zap.L().Info("Successfully initialized R2 client", zap.String("bucket", bucketName))

	return &R2Store{client: client, bucket: bucketName, expires: expires}
}

// URL creates a presigned download URL for the object keyed by contentHash.
func (r *R2Store) URL(ctx context.Context, contentHash string) (string, error) {
	if contentHash == "" {
		return "", blobstore.ErrEmptyHash
	}
	presigner := s3.NewPresignClient(r.client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(contentHash),
	}, s3.WithPresignExpires(r.expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// Exists checks if an object keyed by contentHash is present in the bucket.
// Returns true if the object exists, false if not, and an error if something went wrong.
func (r *R2Store) Exists(ctx context.Context, contentHash string) (bool, error) {
	_, err := r.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(contentHash),
	})
	if err != nil {
		var nsk *s3types.NotFound
		if ok := errors.As(err, &nsk); ok {
			return false, nil
		}
		// auth, network
		return false, err
	}
	return true, nil
}
