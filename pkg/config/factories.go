package config

import (
	"context"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/chineduCoded/alx-files-manager/internal/logger"
	"github.com/chineduCoded/alx-files-manager/pkg/store/content"
	contentFs "github.com/chineduCoded/alx-files-manager/pkg/store/content/fs"
	contentMemory "github.com/chineduCoded/alx-files-manager/pkg/store/content/memory"
	contentS3 "github.com/chineduCoded/alx-files-manager/pkg/store/content/s3"
	"github.com/chineduCoded/alx-files-manager/pkg/store/metadata"
	metadataBadger "github.com/chineduCoded/alx-files-manager/pkg/store/metadata/badger"
	metadataMemory "github.com/chineduCoded/alx-files-manager/pkg/store/metadata/memory"
	"github.com/chineduCoded/alx-files-manager/pkg/store/session"
	sessionBadger "github.com/chineduCoded/alx-files-manager/pkg/store/session/badger"
	sessionMemory "github.com/chineduCoded/alx-files-manager/pkg/store/session/memory"
)

// badgerStoreOptions is the decoded form of the "badger" configuration
// section shared by the session and metadata stores.
type badgerStoreOptions struct {
	Path     string `mapstructure:"path"`
	InMemory bool   `mapstructure:"in_memory"`
}

// CreateSessionStore creates a session store based on configuration.
//
// This factory function uses the Type field to determine which store
// implementation to create, then decodes the type-specific configuration
// from the corresponding map and passes it to the store's constructor.
//
// Supported types:
//   - "memory": Uses pkg/store/session/memory (ephemeral, single process)
//   - "badger": Uses pkg/store/session/badger (persistent, entry TTLs)
func CreateSessionStore(ctx context.Context, cfg *SessionsConfig) (session.SessionStore, error) {
	switch cfg.Type {
	case "memory":
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return sessionMemory.New(), nil

	case "badger":
		var opts badgerStoreOptions
		if err := mapstructure.Decode(cfg.Badger, &opts); err != nil {
			return nil, fmt.Errorf("failed to decode badger session store options: %w", err)
		}

		store, err := sessionBadger.New(ctx, sessionBadger.Config{
			Path:     opts.Path,
			InMemory: opts.InMemory,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create badger session store: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown session store type: %q (supported: memory, badger)", cfg.Type)
	}
}

// CreateMetadataStore creates a metadata store based on configuration.
//
// Supported types:
//   - "memory": Uses pkg/store/metadata/memory (in-memory storage, ephemeral)
//   - "badger": Uses pkg/store/metadata/badger (BadgerDB storage, persistent)
func CreateMetadataStore(ctx context.Context, cfg *MetadataConfig) (metadata.MetadataStore, error) {
	switch cfg.Type {
	case "memory":
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return metadataMemory.New(), nil

	case "badger":
		var opts badgerStoreOptions
		if err := mapstructure.Decode(cfg.Badger, &opts); err != nil {
			return nil, fmt.Errorf("failed to decode badger metadata store options: %w", err)
		}

		store, err := metadataBadger.New(ctx, metadataBadger.Config{
			Path:     opts.Path,
			InMemory: opts.InMemory,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create badger metadata store: %w", err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown metadata store type: %q (supported: memory, badger)", cfg.Type)
	}
}

// CreateContentStore creates a content store based on configuration.
//
// Supported types:
//   - "filesystem": Uses pkg/store/content/fs (local filesystem storage)
//   - "memory": Uses pkg/store/content/memory (ephemeral, single process)
//   - "s3": Uses pkg/store/content/s3 (Amazon S3 or compatible storage)
func CreateContentStore(ctx context.Context, cfg *ContentConfig) (content.ContentStore, error) {
	switch cfg.Type {
	case "filesystem":
		return createFilesystemContentStore(ctx, cfg.Filesystem)
	case "memory":
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return contentMemory.New(), nil
	case "s3":
		return createS3ContentStore(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown content store type: %q (supported: filesystem, memory, s3)", cfg.Type)
	}
}

// createFilesystemContentStore creates a filesystem-based content store.
func createFilesystemContentStore(ctx context.Context, options map[string]any) (content.ContentStore, error) {
	type FilesystemContentStoreConfig struct {
		Path string `mapstructure:"path"`
	}

	var storeCfg FilesystemContentStoreConfig
	if err := mapstructure.Decode(options, &storeCfg); err != nil {
		return nil, fmt.Errorf("failed to decode filesystem content store config: %w", err)
	}

	if storeCfg.Path == "" {
		return nil, fmt.Errorf("filesystem content store: path is required")
	}

	store, err := contentFs.New(ctx, storeCfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem content store: %w", err)
	}

	return store, nil
}

// createS3ContentStore creates an S3-based content store.
func createS3ContentStore(ctx context.Context, options map[string]any) (content.ContentStore, error) {
	type S3ContentStoreConfig struct {
		Region          string `mapstructure:"region"`
		Bucket          string `mapstructure:"bucket"`
		KeyPrefix       string `mapstructure:"key_prefix"`
		Endpoint        string `mapstructure:"endpoint"`
		AccessKeyID     string `mapstructure:"access_key_id"`
		SecretAccessKey string `mapstructure:"secret_access_key"`
	}

	var storeCfg S3ContentStoreConfig
	if err := mapstructure.Decode(options, &storeCfg); err != nil {
		return nil, fmt.Errorf("failed to decode S3 content store config: %w", err)
	}

	if storeCfg.Bucket == "" {
		return nil, fmt.Errorf("S3 content store: bucket is required")
	}
	if storeCfg.Region == "" {
		return nil, fmt.Errorf("S3 content store: region is required")
	}

	store, err := contentS3.New(ctx, contentS3.Config{
		Region:          storeCfg.Region,
		Bucket:          storeCfg.Bucket,
		KeyPrefix:       storeCfg.KeyPrefix,
		Endpoint:        storeCfg.Endpoint,
		AccessKeyID:     storeCfg.AccessKeyID,
		SecretAccessKey: storeCfg.SecretAccessKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 content store: %w", err)
	}

	logger.Info("S3 content store initialized: bucket=%s, region=%s, prefix=%s",
		storeCfg.Bucket, storeCfg.Region, storeCfg.KeyPrefix)

	return store, nil
}
