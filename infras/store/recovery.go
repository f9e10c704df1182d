package store

import (
	"context"
	"errors"
	"fmt"
	"frontdesk/infras/s3"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	archiveDirectory   = "corrupted"
	archiveContentType = "application/vnd.sqlite3"
)

var sidecarSuffixes = []string{"-journal", "-wal", "-shm"}

// RecoveryPolicy prepares the store file to be recreated. cause tells why the
// store was considered unusable.
type RecoveryPolicy func(ctx context.Context, path string, cause error) error

// Recreate removes the store file and its sidecars so the next open starts
// empty. When archiver is set a corrupted file is uploaded before removal.
func Recreate(archiver s3.S3) RecoveryPolicy {
	return func(ctx context.Context, path string, cause error) error {
		if archiver != nil && errors.Is(cause, ErrCorrupted) {
			archive(ctx, archiver, path)
		}

		for _, name := range append([]string{path}, sidecars(path)...) {
			if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("failed to remove %s: %w", name, err)
			}
		}

		return nil
	}
}

func sidecars(path string) []string {
	names := make([]string, 0, len(sidecarSuffixes))
	for _, suffix := range sidecarSuffixes {
		names = append(names, path+suffix)
	}

	return names
}

// archive is best effort, a failed upload never blocks recovery.
func archive(ctx context.Context, archiver s3.S3, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to read corrupted store for archiving")

		return
	}

	base := filepath.Base(path)
	name := fmt.Sprintf("%s-%d.db", base[:len(base)-len(filepath.Ext(base))], time.Now().Unix())

	url, err := archiver.UploadFileBytes(ctx, "", archiveDirectory, name, archiveContentType, data)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to archive corrupted store")

		return
	}

	log.Info().Str("url", url).Msg("corrupted store archived")
}
