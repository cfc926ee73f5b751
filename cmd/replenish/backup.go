// cmd/replenish/backup.go
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/andresuchdata/reposia/internal/config"
	"github.com/andresuchdata/reposia/internal/storage"
	"github.com/urfave/cli/v2"
)

// backupPrefix is where dated snapshot copies live inside the bucket.
const backupPrefix = "snapshots/"

func newStorageClient() (*storage.MinioClient, error) {
	cfg := config.Load()
	if !cfg.Storage.Enabled {
		return nil, fmt.Errorf("storage backup is disabled (set STORAGE_ENABLED=true)")
	}
	return storage.NewMinioClient(cfg.Storage)
}

// backupKey builds the object key for a snapshot upload, dated so older
// snapshots stay retrievable.
func backupKey(now time.Time, path string) string {
	return fmt.Sprintf("%s%s/%s", backupPrefix, now.Format("20060102"), filepath.Base(path))
}

// backupAction pushes the snapshot file to the configured S3-compatible
// bucket.
func backupAction(c *cli.Context) error {
	path := c.String("snapshot")
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("snapshot %s not readable: %w", path, err)
	}

	client, err := newStorageClient()
	if err != nil {
		return err
	}

	key := backupKey(time.Now(), path)
	if err := client.UploadFile(c.Context, key, path); err != nil {
		return err
	}

	log.Printf("snapshot uploaded to %s", key)
	return nil
}

// listBackupsAction prints every stored snapshot copy with its size.
func listBackupsAction(c *cli.Context) error {
	client, err := newStorageClient()
	if err != nil {
		return err
	}

	objects, err := client.ListObjects(c.Context, backupPrefix)
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		log.Printf("no snapshot backups under %s", backupPrefix)
		return nil
	}
	for _, obj := range objects {
		fmt.Printf("%s\t%d\n", obj.Key, obj.Size)
	}
	return nil
}

// restoreAction downloads a stored snapshot copy over the local snapshot
// file, e.g. to roll back a bad rebuild.
func restoreAction(c *cli.Context) error {
	client, err := newStorageClient()
	if err != nil {
		return err
	}

	key := c.String("key")
	dest := c.String("snapshot")
	if err := client.DownloadFile(c.Context, key, dest); err != nil {
		return err
	}

	log.Printf("snapshot %s restored to %s", key, dest)
	return nil
}
