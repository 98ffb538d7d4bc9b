package documents

import (
	"context"
	"fmt"
	"time"

	sc "github.com/aureapp/aure/internal/server/config"
	"github.com/oklog/ulid/v2"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = 15 * time.Minute

// Test seams around the AWS SDK, so presign flows can be exercised without
// object storage.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
	deleteObject = func(c *s3.Client, ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
		return c.DeleteObject(ctx, in, optFns...)
	}
)

type Service struct {
	repo   Repository
	config *sc.Config
}

func NewService(repo Repository, config *sc.Config) *Service {
	return &Service{repo: repo, config: config}
}

// newStorageKey builds a date-partitioned object key:
// users/<yyyy>/<mm>/<dd>/<ulid>.
func newStorageKey(id string) string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%02d/%02d/%s", d.Year(), d.Month(), d.Day(), id)
}

func (s *Service) getS3Client() (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return client, nil
}

// RequestUpload creates the metadata row in "pending" state and returns a
// presigned PUT URL the client uploads the file bytes to.
func (s *Service) RequestUpload(ctx context.Context, userID, fileName, contentType string, sizeBytes int64, year int) (*Document, string, error) {

	client, err := s.getS3Client()
	if err != nil {
		return nil, "", fmt.Errorf("s3 init error: %w", err)
	}

	id := ulid.Make().String()
	key := newStorageKey(id)
	bucket := s.config.S3Bucket

	req, err := presignPutObject(newS3PresignClient(client), ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return nil, "", fmt.Errorf("presign error: %w", err)
	}

	doc := &Document{
		ID:           id,
		UserID:       userID,
		FileName:     fileName,
		ContentType:  contentType,
		SizeBytes:    sizeBytes,
		StorageKey:   key,
		UploadStatus: UploadPending,
		Year:         year,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, "", fmt.Errorf("error creating document: %w", err)
	}

	return doc, req.URL, nil
}

// MarkUploaded flips a pending document to uploaded once the client's PUT
// has completed.
func (s *Service) MarkUploaded(ctx context.Context, userID, id string) error {
	if err := s.repo.MarkUploaded(ctx, userID, id); err != nil {
		return fmt.Errorf("error updating document: %w", err)
	}
	return nil
}

// List returns the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]*Document, error) {
	return s.repo.ListByUser(ctx, userID)
}

// DownloadURL returns a presigned GET URL for one of the user's documents.
func (s *Service) DownloadURL(ctx context.Context, userID, id string) (string, error) {

	doc, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return "", err
	}

	client, err := s.getS3Client()
	if err != nil {
		return "", fmt.Errorf("s3 init error: %w", err)
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &doc.StorageKey,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("presign error: %w", err)
	}

	return req.URL, nil
}

// Delete removes the stored object first and the metadata row after, so a
// failed object delete never leaves an orphaned row pointing at nothing.
func (s *Service) Delete(ctx context.Context, userID, id string) error {

	doc, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return err
	}

	client, err := s.getS3Client()
	if err != nil {
		return fmt.Errorf("s3 init error: %w", err)
	}

	bucket := s.config.S3Bucket

	if _, err := deleteObject(client, ctx, &s3.DeleteObjectInput{
		Bucket: &bucket,
		Key:    &doc.StorageKey,
	}); err != nil {
		return fmt.Errorf("error deleting object: %w", err)
	}

	return s.repo.Delete(ctx, userID, id)
}
