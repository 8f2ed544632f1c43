package export

import (
	"context"
	"fmt"
	"path"
	"time"
)

// Sink stores exported artifacts and reports where they landed.
type Sink interface {
	Put(ctx context.Context, name, contentType string, body []byte) (string, error)
}

// Name returns a unique artifact name for a view export.
func Name(view, file string, at time.Time) string {
	return path.Join(sanitize(view), fmt.Sprintf("%s-%s", at.Format("20060102T150405"), file))
}

func sanitize(s string) string {
	out := []rune(s)
	for i, r := range out {
		switch r {
		case '/', '\\', ':', ' ':
			out[i] = '-'
		}
	}
	if len(out) == 0 {
		return "export"
	}

	return string(out)
}
