package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/docextract/docextract/internal/model"
)

// Client is the global MinIO client used to archive canonical Record
// JSON. Nil when no object store is configured.
var Client *minio.Client

// BucketName is the bucket Client archives into.
var BucketName string

// InitArchive connects to the object store named by MINIO_ENDPOINT and
// verifies BucketName exists.
func InitArchive() error {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "minio:9000"
	}
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	if accessKey == "" || secretKey == "" {
		return fmt.Errorf("MINIO_ACCESS_KEY / MINIO_SECRET_KEY not set")
	}

	BucketName = os.Getenv("MINIO_BUCKET")
	if BucketName == "" {
		BucketName = "extracted-records"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create object store client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, BucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", BucketName)
	}

	Client = client
	return nil
}

// ArchiveRecord writes record's canonical JSON to the object store under
// a YYYY/MM/id.json path, returning the bucket-qualified object path.
func ArchiveRecord(ctx context.Context, id uuid.UUID, record model.Record) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("object store not configured")
	}

	body, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to marshal record: %w", err)
	}

	now := time.Now()
	objectName := fmt.Sprintf("%d/%02d/%s.json", now.Year(), now.Month(), id.String())

	_, err = Client.PutObject(ctx, BucketName, objectName, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to archive record: %w", err)
	}

	return fmt.Sprintf("%s/%s", BucketName, objectName), nil
}

// FetchArchivedRecord reads back a Record previously written by
// ArchiveRecord, given the full bucket-qualified object path.
func FetchArchivedRecord(ctx context.Context, objectPath string) (model.Record, error) {
	var record model.Record
	if Client == nil {
		return record, fmt.Errorf("object store not configured")
	}

	objectName := objectPath
	prefix := BucketName + "/"
	if len(objectPath) > len(prefix) && objectPath[:len(prefix)] == prefix {
		objectName = objectPath[len(prefix):]
	}

	obj, err := Client.GetObject(ctx, BucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return record, fmt.Errorf("failed to fetch archived record: %w", err)
	}
	defer obj.Close()

	if err := json.NewDecoder(obj).Decode(&record); err != nil {
		return record, fmt.Errorf("failed to decode archived record: %w", err)
	}
	return record, nil
}
