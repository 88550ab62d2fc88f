package resource

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, r Resource) error

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, r Resource) error {
	return f(ctx, r)
}

// FileLoader checks that the resource file exists and hands it to the engine.
// The engine hand-off itself is a log line; engines plug in their own Loader.
type FileLoader struct {
	logger *zap.Logger
}

// NewFileLoader creates a FileLoader.
func NewFileLoader(logger *zap.Logger) *FileLoader {
	return &FileLoader{logger: logger}
}

// Load implements Loader.
func (l *FileLoader) Load(ctx context.Context, r Resource) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	info, err := os.Stat(r.Path)
	if err != nil {
		return fmt.Errorf("stat resource file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("resource path %s is a directory", r.Path)
	}
	l.logger.Info("loading resource",
		zap.String("id", r.ID),
		zap.String("path", r.Path),
		zap.Int64("bytes", info.Size()),
	)
	return nil
}
