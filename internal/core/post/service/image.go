package postapp

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"socialfeed/internal/core/apperror"
	postPort "socialfeed/internal/ports/post"
	storagePort "socialfeed/internal/ports/storage"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"
)

const uploadPrefix = "uploads/posts/"

// پسوند فایل ذخیره‌شده بر اساس نوع تشخیص‌داده‌شده
var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// UploadImage تصویر پست را در storage ذخیره و مسیر آن را روی پست ثبت می‌کند
func (s *PostService) UploadImage(ctx context.Context, actorID, id string, upload postPort.ImageUpload) (*postPort.PostImageDTO, error) {
	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(uuid.FromStringOrNil(actorID), p); err != nil {
		return nil, err
	}

	if len(upload.Content) == 0 {
		return nil, apperror.FieldValidation("image", "no file was submitted")
	}
	if s.maxUploadBytes > 0 && int64(len(upload.Content)) > s.maxUploadBytes {
		return nil, apperror.FieldValidation("image", fmt.Sprintf("file is larger than %d bytes", s.maxUploadBytes))
	}

	mime := http.DetectContentType(upload.Content)
	ext, ok := imageExtensions[mime]
	if !ok {
		return nil, apperror.FieldValidation("image", "upload a valid image")
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(upload.Content)); err != nil {
		return nil, apperror.FieldValidation("image", "upload a valid image")
	}

	key := fmt.Sprintf("%s%s.%s", uploadPrefix, uuid.Must(uuid.NewV4()), ext)
	res, err := s.Storage.Upload(ctx, &storagePort.UploadObject{
		Key:  key,
		Mime: mime,
		Data: upload.Content,
	})
	if err != nil {
		s.logger.Error("❌ Image upload failed", zap.String("postID", id), zap.Error(err))
		return nil, apperror.Internal(err)
	}

	if err := s.PostRepository.Update(ctx, p, map[string]any{"image": res.Key}); err != nil {
		return nil, apperror.Internal(err)
	}

	s.logger.Info("Post image uploaded", zap.String("postID", id), zap.String("key", res.Key), zap.String("filename", upload.Filename))
	return &postPort.PostImageDTO{
		ID:    p.ID.String(),
		Image: res.Url,
	}, nil
}
