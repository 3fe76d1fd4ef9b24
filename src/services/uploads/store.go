package uploads

import (
	"context"
	"fmt"
	"path"
	"regexp"

	"nextglide-backend/src/config"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStore keeps uploaded files and returns the URL they are served
// from.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// New picks the backend named by cfg.Storage.Provider.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (ObjectStore, error) {
	switch cfg.Storage.Provider {
	case "s3":
		return NewS3Store(ctx, cfg.AWS.Region, cfg.Storage.Bucket, cfg.Storage.PublicBaseURL)
	case "local":
		log.Info("storing uploads on local disk", zap.String("dir", cfg.Storage.LocalDir))
		return NewLocalStore(cfg.Storage.LocalDir, cfg.Storage.PublicBaseURL), nil
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Storage.Provider)
	}
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectKey builds a collision free key under folder for an uploaded
// file name, e.g. social-posts/social_post_<uuid>_photo.png.
func ObjectKey(folder, prefix, filename string) string {
	name := unsafeName.ReplaceAllString(path.Base(filename), "_")
	return path.Join(folder, fmt.Sprintf("%s_%s_%s", prefix, uuid.NewString(), name))
}
