// Package storage manages the asset bucket: generated icon images, audio
// clips, and their bucket-level configuration (CORS, lifecycle).
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/segmentio/ksuid"
)

const metadataFile = ".bucket.json"

// CORSRule is the bucket's cross-origin access rule.
type CORSRule struct {
	Origins       []string `json:"origins"`
	Methods       []string `json:"methods"`
	MaxAgeSeconds int      `json:"maxAgeSeconds"`
}

// LifecycleRule deletes objects older than the retention window.
type LifecycleRule struct {
	DeleteAfterDays int `json:"deleteAfterDays"`
}

// BucketConfig is the fixed configuration applied when a bucket is created.
type BucketConfig struct {
	Name         string        `json:"name"`
	Location     string        `json:"location"`
	StorageClass string        `json:"storageClass"`
	CORS         CORSRule      `json:"cors"`
	Lifecycle    LifecycleRule `json:"lifecycle"`
}

// BucketInfo reports a bucket's stored attributes.
type BucketInfo struct {
	BucketConfig
	Created time.Time `json:"created"`
}

// Service stores buckets as directories under a local root, with the bucket
// configuration persisted next to the objects.
type Service struct {
	root string
}

func NewService(root string) *Service {
	return &Service{root: root}
}

func (s *Service) bucketDir(name string) string {
	return filepath.Join(s.root, name)
}

// Describe returns the bucket's attributes, or nil when it does not exist.
func (s *Service) Describe(name string) (*BucketInfo, error) {
	data, err := os.ReadFile(filepath.Join(s.bucketDir(name), metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading bucket metadata: %w", err)
	}

	var info BucketInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("bucket metadata for %q is corrupt: %w", name, err)
	}
	return &info, nil
}

// Ensure creates the bucket with the given configuration if it does not
// already exist. The returned flag reports whether a creation happened;
// an existing bucket is returned as-is with no side effects.
func (s *Service) Ensure(cfg BucketConfig) (*BucketInfo, bool, error) {
	existing, err := s.Describe(cfg.Name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	if err := os.MkdirAll(s.bucketDir(cfg.Name), 0o755); err != nil {
		return nil, false, fmt.Errorf("creating bucket %q: %w", cfg.Name, err)
	}

	info := &BucketInfo{BucketConfig: cfg, Created: time.Now().UTC()}
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, false, err
	}
	if err := os.WriteFile(filepath.Join(s.bucketDir(cfg.Name), metadataFile), data, 0o644); err != nil {
		return nil, false, fmt.Errorf("writing bucket metadata: %w", err)
	}
	return info, true, nil
}

// VerifyReadWrite confirms the bucket is usable with a marker object
// round-trip: write, read back, delete.
func (s *Service) VerifyReadWrite(name string) error {
	marker := "verify-" + ksuid.New().String() + ".txt"
	payload := []byte("bootstrap verification marker")

	if err := s.Put(name, marker, payload); err != nil {
		return fmt.Errorf("marker write failed: %w", err)
	}
	read, err := s.Get(name, marker)
	if err != nil {
		return fmt.Errorf("marker read failed: %w", err)
	}
	if string(read) != string(payload) {
		return fmt.Errorf("marker round-trip mismatch")
	}
	if err := s.Delete(name, marker); err != nil {
		return fmt.Errorf("marker delete failed: %w", err)
	}
	return nil
}

// Put stores an object in the bucket.
func (s *Service) Put(bucket, object string, data []byte) error {
	path := filepath.Join(s.bucketDir(bucket), object)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Get reads an object from the bucket.
func (s *Service) Get(bucket, object string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.bucketDir(bucket), object))
}

// Delete removes an object from the bucket.
func (s *Service) Delete(bucket, object string) error {
	return os.Remove(filepath.Join(s.bucketDir(bucket), object))
}

// NewObjectName returns a time-sortable object name with the given prefix
// and extension, e.g. icons/2a5K....png.
func NewObjectName(prefix, ext string) string {
	return fmt.Sprintf("%s/%s%s", prefix, ksuid.New().String(), ext)
}

// ObjectURL is the stable URL recorded on documents referencing an object.
func ObjectURL(bucket, object string) string {
	return fmt.Sprintf("storage://%s/%s", bucket, object)
}
