package datasource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

const (
	DashboardResource = "inventory-data.json"
	ItemsResource     = "inventory-items.json"
)

// ErrBadStatus is returned by HTTPSource for any non-2xx response.
var ErrBadStatus = errors.New("unexpected status")

// Source fetches a named JSON resource.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// FileSource reads resources from a directory.
type FileSource struct {
	Root string
}

func NewFileSource(root string) *FileSource {
	return &FileSource{Root: root}
}

func (s *FileSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// Only plain file names are served; nothing outside Root.
	if name != filepath.Base(name) {
		return nil, errors.Errorf("invalid resource name %q", name)
	}
	data, err := os.ReadFile(filepath.Join(s.Root, name))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	return data, nil
}

// HTTPSource GETs resources from BaseURL with fiber's client agent.
type HTTPSource struct {
	BaseURL string
	Timeout time.Duration
}

func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{BaseURL: strings.TrimRight(baseURL, "/"), Timeout: timeout}
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := s.BaseURL + "/" + name

	timeout := s.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); timeout <= 0 || left < timeout {
			timeout = left
		}
	}

	agent := fiber.Get(url)
	if timeout > 0 {
		agent.Timeout(timeout)
	}
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, errors.Wrapf(errs[0], "GET %s", url)
	}
	if code < 200 || code > 299 {
		return nil, errors.Wrapf(ErrBadStatus, "GET %s: %d", url, code)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return body, nil
}
