package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"

	"github.com/gridsight/gridsight/pkg/lifecycle"
)

type disk struct {
	root   string
	logger *slog.Logger
}

func newDisk(cfg *Config, logger *slog.Logger) System {
	return &disk{
		root:   cfg.Root,
		logger: logger.With("system", "storage"),
	}
}

func (d *disk) Start(lc *lifecycle.Coordinator) error {
	d.logger.Info("starting storage system", "driver", DriverDisk, "root", d.root)

	lc.OnStartup(func() {
		if err := os.MkdirAll(d.root, 0o755); err != nil {
			d.logger.Error("storage root initialization failed", "error", err)
			return
		}
		d.logger.Info("storage root ready", "root", d.root)
	})

	return nil
}

func (d *disk) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	path := d.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("prepare directory for %s: %w", key, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file %s: %w", key, err)
	}

	// A failed write must not leave a partial file for Download to serve.
	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write file %s: %w", key, err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("write file %s: %w", key, err)
	}

	return nil
}

func (d *disk) Download(ctx context.Context, key string) (*Object, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	f, err := os.Open(d.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open file %s: %w", key, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file %s: %w", key, err)
	}

	return &Object{
		Body:          f,
		ContentType:   contentTypeForKey(key),
		ContentLength: info.Size(),
	}, nil
}

func (d *disk) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := os.Remove(d.path(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete file %s: %w", key, err)
	}

	return nil
}

func (d *disk) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	_, err := os.Stat(d.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat file %s: %w", key, err)
	}

	return true, nil
}

func (d *disk) path(key string) string {
	return filepath.Join(d.root, filepath.FromSlash(key))
}

func contentTypeForKey(key string) string {
	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
