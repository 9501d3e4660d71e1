package service

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"mercado_api_v1/pkg/utils"
)

// ==================== Interfaces ====================

// StorageProvider blob storage for shop, product and avatar images.
// Upload returns the stored path/URL; a failed upload must abort the
// owning entity's write, so callers upload before touching the database.
type StorageProvider interface {
	Upload(ctx context.Context, data []byte, key string, contentType string) (url string, err error)
	Delete(ctx context.Context, url string) error
}

// ==================== Configuration ====================

type StorageConfig struct {
	Provider  string // "s3" | "local"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	CDNDomain string // optional
	LocalDir  string // root directory for the local provider
}

// NewStorageProvider provider factory
func NewStorageProvider(cfg *StorageConfig) (StorageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(cfg)
	case "local", "":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}

// ==================== Object keys ====================

// ShopImageKey builds "shops/<slug>_<uid>.<ext>". The random suffix
// keeps keys unique across shops sharing a name.
func ShopImageKey(shopName, filename string) string {
	return fmt.Sprintf("shops/%s_%s%s",
		utils.Slugify(shopName), uid8(), extOf(filename))
}

// ProductImageKey builds "products/<shop-slug>/<product-slug>_<uid>.<ext>"
func ProductImageKey(shopName, productName, filename string) string {
	return fmt.Sprintf("products/%s/%s_%s%s",
		utils.Slugify(shopName), utils.Slugify(productName), uid8(), extOf(filename))
}

// AvatarKey builds "avatars/<uid>.<ext>"
func AvatarKey(filename string) string {
	return fmt.Sprintf("avatars/%s%s", uid8(), extOf(filename))
}

func uid8() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

func extOf(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return ext
}

// ==================== S3 implementation ====================

type S3Storage struct {
	client    *s3.Client
	bucket    string
	region    string
	cdnDomain string
}

func NewS3Storage(cfg *StorageConfig) (*S3Storage, error) {
	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %v", err)
	}

	return &S3Storage{
		client:    s3.NewFromConfig(awsCfg),
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		cdnDomain: cfg.CDNDomain,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, data []byte, key string, contentType string) (string, error) {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload: %v", err)
	}

	return s.publicURL(key), nil
}

func (s *S3Storage) Delete(ctx context.Context, url string) error {
	key := s.extractKey(url)
	if key == "" {
		return fmt.Errorf("cannot resolve object key from %q", url)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (s *S3Storage) publicURL(key string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func (s *S3Storage) extractKey(url string) string {
	if s.cdnDomain != "" && strings.Contains(url, s.cdnDomain) {
		return strings.TrimPrefix(url, fmt.Sprintf("https://%s/", s.cdnDomain))
	}
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	return strings.TrimPrefix(url, prefix)
}

// ==================== Local implementation ====================

// LocalStorage writes under a root directory; the stored value is the
// relative key, served by whatever fronts the media directory.
type LocalStorage struct {
	root string
}

func NewLocalStorage(cfg *StorageConfig) (*LocalStorage, error) {
	root := cfg.LocalDir
	if root == "" {
		root = "media"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %v", err)
	}
	return &LocalStorage{root: root}, nil
}

func (l *LocalStorage) Upload(_ context.Context, data []byte, key string, _ string) (string, error) {
	path := filepath.Join(l.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %v", err)
	}
	return key, nil
}

func (l *LocalStorage) Delete(_ context.Context, url string) error {
	return os.Remove(filepath.Join(l.root, filepath.FromSlash(url)))
}
