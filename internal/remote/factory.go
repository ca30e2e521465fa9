package remote

import (
	"context"
	"fmt"

	"github.com/vbagdi/Mood-Tracker-291/internal/config"
	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

// NewRemoteFromConfig creates the remote store backend described by the
// configuration.
func NewRemoteFromConfig(ctx context.Context, cfg config.RemoteConfig, codec *Codec) (tracker.RemoteStore, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryRemote(cfg.Name, codec), nil
	case "filesystem":
		if cfg.FSRoot == "" {
			return nil, fmt.Errorf("filesystem remote requires a root directory")
		}
		return NewFileSystemRemote(cfg.Name, cfg.FSRoot, codec)
	case "s3":
		return NewS3Remote(ctx, cfg.Name, S3Options{
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		}, codec)
	default:
		return nil, fmt.Errorf("unknown remote type: %s", cfg.Type)
	}
}
