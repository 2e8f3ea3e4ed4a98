package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store keeps uploaded images in Amazon S3 (or compatible APIs).
type S3Store struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	keyPrefix string
}

func NewS3Store(client *s3.Client, bucket, keyPrefix string) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	return &S3Store{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}, nil
}

func (s *S3Store) key(name string) string {
	name = path.Base(name)
	if s.keyPrefix == "" {
		return name
	}
	return s.keyPrefix + "/" + name
}

func (s *S3Store) Save(ctx context.Context, name string, body io.Reader) error {
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(name)),
		Body:        body,
		ContentType: aws.String(contentTypeFor(name)),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	return nil
}

func (s *S3Store) Remove(ctx context.Context, name string) error {
	// HeadObject first: DeleteObject succeeds on missing keys, but callers
	// need to distinguish "already gone" from a real removal.
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("head object %s: %w", name, err)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", name, err)
	}
	return nil
}

func (s *S3Store) Open(ctx context.Context, name string) (*Object, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isS3NotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get object %s: %w", name, err)
	}

	obj := &Object{
		Body:        out.Body,
		Size:        aws.ToInt64(out.ContentLength),
		ContentType: aws.ToString(out.ContentType),
	}
	if obj.ContentType == "" {
		obj.ContentType = contentTypeFor(name)
	}
	return obj, nil
}

func isS3NotFound(err error) bool {
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return true
	}
	var notFound *types.NotFound
	return errors.As(err, &notFound)
}

var _ Store = (*S3Store)(nil)
