package storage

import "context"

type Storage interface {
	Upload(ctx context.Context, object *UploadObject) (*UploadResponse, error)
	URL(key string) string
}

type UploadObject struct {
	Key  string
	Mime string
	Data []byte
}

type UploadResponse struct {
	Url string
	Key string
}
