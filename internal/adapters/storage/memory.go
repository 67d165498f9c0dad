package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryService is an in-process StorageService for tests and local runs
// without MinIO.
type MemoryService struct {
	mu          sync.RWMutex
	buckets     map[string]map[string]memoryObject
	maxFileSize int64
}

type memoryObject struct {
	contentType string
	data        []byte
}

var _ StorageService = (*MemoryService)(nil)

// NewMemoryService creates an empty in-memory store.
func NewMemoryService(maxFileSize int64) *MemoryService {
	return &MemoryService{
		buckets:     make(map[string]map[string]memoryObject),
		maxFileSize: maxFileSize,
	}
}

func (s *MemoryService) EnsureBucketExists(_ context.Context, bucket string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.buckets[bucket]; !ok {
		s.buckets[bucket] = make(map[string]memoryObject)
	}
	return nil
}

func (s *MemoryService) UploadFile(_ context.Context, bucket, folder, fileName, contentType string, reader io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	objects, ok := s.buckets[bucket]
	if !ok {
		return "", fmt.Errorf("bucket %s does not exist", bucket)
	}
	fileKey := uniqueFileKey(folder, fileName)
	objects[fileKey] = memoryObject{contentType: contentType, data: data}
	return fileKey, nil
}

func (s *MemoryService) DownloadFile(_ context.Context, bucket, fileKey string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.buckets[bucket][fileKey]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, fileKey)
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (s *MemoryService) DeleteObject(_ context.Context, bucket, fileKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.buckets[bucket], fileKey)
	return nil
}

func (s *MemoryService) ValidateContentType(contentType string) error {
	return validateContentType(contentType)
}

func (s *MemoryService) ValidateFileSize(sizeBytes int64) error {
	return validateFileSize(sizeBytes, s.maxFileSize)
}

// Len returns the number of objects in bucket.
func (s *MemoryService) Len(bucket string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.buckets[bucket])
}
