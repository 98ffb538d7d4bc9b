// Package documents manages tax-document metadata and the presigned S3
// upload/download flow. Document bytes never pass through the API server;
// clients PUT and GET directly against object storage with short-lived URLs.
package documents

import "time"

type UploadStatus string

const (
	UploadPending UploadStatus = "pending"
	Uploaded      UploadStatus = "uploaded"
)

// Document is a tax-document metadata row. IDs are ULIDs so listings sort
// by upload time without a secondary index.
type Document struct {
	ID           string
	UserID       string
	FileName     string
	ContentType  string
	SizeBytes    int64
	StorageKey   string
	UploadStatus UploadStatus
	Year         int
	CreatedAt    time.Time
}
