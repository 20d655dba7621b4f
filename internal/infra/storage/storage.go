package storage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/totegamma/foodgram/internal/config"
	"github.com/totegamma/foodgram/internal/domain"
)

// ImageStorage persists image bytes under a content-addressed key.
type ImageStorage interface {
	Save(ctx context.Context, key string, img domain.Image) error
}

// New returns the backend selected by conf.Driver.
func New(ctx context.Context, conf config.Media) (ImageStorage, error) {
	switch conf.Driver {
	case "local":
		return NewLocal(conf.Root), nil
	case "s3":
		return NewS3(ctx, conf.S3)
	default:
		return nil, errors.Errorf("unknown media driver %q", conf.Driver)
	}
}
