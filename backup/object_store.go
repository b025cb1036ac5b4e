package backup

import (
	"context"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// ObjectInfo describes one exported backup object.
type ObjectInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

//go:generate mockery --name ObjectStore --output ./mocks
type ObjectStore interface {
	ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error)
	WriteObject(ctx context.Context, bucket, name string, data []byte) error
}

var _ ObjectStore = (*GCSObjectStore)(nil)

type GCSObjectStore struct {
	Client *storage.Client
}

func NewGCSObjectStore(ctx context.Context) (*GCSObjectStore, error) {
	gcs, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}

	return &GCSObjectStore{Client: gcs}, nil
}

func (s *GCSObjectStore) Close() error {
	return s.Client.Close()
}

func (s *GCSObjectStore) ListObjects(ctx context.Context, bucket, prefix string) ([]ObjectInfo, error) {
	it := s.Client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	var objects []ObjectInfo

	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}

		if err != nil {
			return nil, err
		}

		objects = append(objects, ObjectInfo{Name: attrs.Name, Size: attrs.Size})
	}

	return objects, nil
}

func (s *GCSObjectStore) WriteObject(ctx context.Context, bucket, name string, data []byte) error {
	w := s.Client.Bucket(bucket).Object(name).NewWriter(ctx)

	if _, err := w.Write(data); err != nil {
		return err
	}

	return w.Close()
}
