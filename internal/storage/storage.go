package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/rs/zerolog/log"
)

// ErrNotExist is returned by Open when the named object is missing.
var ErrNotExist = errors.New("object does not exist")

// Storage holds the boundary datasets the spatial resolver is built from.
type Storage interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

type LocalStorage struct {
	dir string
}

type SpacesStorage struct {
	client s3iface.S3API
	bucket string
	prefix string
}

func NewLocalStorage(dir string) *LocalStorage {
	return &LocalStorage{dir: dir}
}

func NewSpacesStorage(endpoint, region, bucket, prefix, accessKey, secretKey string) (*SpacesStorage, error) {
	config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return NewSpacesStorageWithClient(s3.New(sess), bucket, prefix), nil
}

// NewSpacesStorageWithClient wraps an existing S3 client.
func NewSpacesStorageWithClient(client s3iface.S3API, bucket, prefix string) *SpacesStorage {
	return &SpacesStorage{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// cleanName rejects names that would escape the storage root.
func cleanName(name string) (string, error) {
	cleaned := filepath.ToSlash(filepath.Clean("/" + name))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	return cleaned, nil
}

func (ls *LocalStorage) Open(_ context.Context, name string) (io.ReadCloser, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(ls.dir, filepath.FromSlash(cleaned)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", cleaned, ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cleaned, err)
	}
	return f, nil
}

func (ls *LocalStorage) Save(_ context.Context, name string, r io.Reader) (string, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return "", err
	}
	path := filepath.Join(ls.dir, filepath.FromSlash(cleaned))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	log.Debug().Str("path", path).Msg("Boundary file saved")
	return path, nil
}

func (ss *SpacesStorage) key(name string) (string, error) {
	cleaned, err := cleanName(name)
	if err != nil {
		return "", err
	}
	if ss.prefix == "" {
		return cleaned, nil
	}
	return ss.prefix + "/" + cleaned, nil
}

func (ss *SpacesStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key, err := ss.key(name)
	if err != nil {
		return nil, err
	}

	out, err := ss.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(ss.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, fmt.Errorf("%s: %w", key, ErrNotExist)
		}
		log.Error().Err(err).Str("key", key).Msg("Failed to fetch object from Spaces")
		return nil, fmt.Errorf("failed to fetch from Spaces: %w", err)
	}
	return out.Body, nil
}

func (ss *SpacesStorage) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	key, err := ss.key(name)
	if err != nil {
		return "", err
	}

	// PutObject needs a seekable body.
	body, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("failed to read upload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	_, err = ss.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(ss.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(getContentType(key)),
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to upload file to Spaces")
		return "", fmt.Errorf("failed to upload to Spaces: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", ss.bucket, key), nil
}

func getContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".geojson":
		return "application/geo+json"
	case ".json":
		return "application/json"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
