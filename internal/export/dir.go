package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirSink writes artifacts below a local directory.
type DirSink struct {
	root string
}

// NewDirSink returns a sink rooted at dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{root: dir}
}

// Root returns the sink directory.
func (d *DirSink) Root() string {
	return d.root
}

// Put writes body to root/name and returns the file path.
func (d *DirSink) Put(ctx context.Context, name, _ string, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if d.root == "" {
		return "", fmt.Errorf("no export directory configured")
	}

	p := filepath.Join(d.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(p, body, 0o644); err != nil {
		return "", fmt.Errorf("failed to write export %q: %w", p, err)
	}

	return p, nil
}
