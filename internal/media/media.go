// Package media выдача ссылок на видео уроков.
package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/live_lessons/internal/model"
)

// ErrStorageDisabled бакет не настроен, а урок ссылается на s3:// объект
var ErrStorageDisabled = errors.New("video storage is not configured")

// Presigner выдаёт временную ссылку на объект хранилища
type Presigner interface {
	Presign(ctx context.Context, key string) (string, error)
}

// Resolver подставляет подписанные ссылки для видео из собственного бакета
type Resolver struct {
	presigner Presigner
}

// NewResolver presigner может быть nil, тогда s3:// видео не выдаются
func NewResolver(presigner Presigner) *Resolver {
	return &Resolver{presigner: presigner}
}

// Playback возвращает источник видео, готовый для плеера
func (r *Resolver) Playback(ctx context.Context, v model.VideoSource) (model.VideoSource, error) {
	if !v.IsStorageObject() {
		return v, nil
	}
	if r.presigner == nil {
		return v, ErrStorageDisabled
	}

	signed, err := r.presigner.Presign(ctx, v.StorageKey())
	if err != nil {
		return v, fmt.Errorf("presign video: %w", err)
	}
	v.PlaybackURL = signed
	return v, nil
}
