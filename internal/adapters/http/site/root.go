// Package site serves the browser front end from a directory on disk.
package site

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
)

// ErrServe is returned when the static directory cannot be served.
var ErrServe = errors.New("static site serve failed")

// Register serves the files under dir at the root of r. A missing dir is
// not an error; it reports false and registers nothing.
func Register(_ context.Context, r chi.Router, dir string) (bool, error) {
	if r == nil {
		panic("router is nil")
	}
	if dir == "" {
		return false, nil
	}

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("%w: %w", ErrServe, err)
	case !info.IsDir():
		return false, fmt.Errorf("%w: %s is not a directory", ErrServe, dir)
	}

	r.Handle("/*", http.FileServer(http.Dir(dir)))
	return true, nil
}
