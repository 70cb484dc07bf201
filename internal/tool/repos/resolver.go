package repos

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"
)

// RootSource is the caller's session as seen by the resolver.
type RootSource interface {
	// SupportsRoots reports whether the caller advertised root listing.
	SupportsRoots() bool
	// ListRoots asks the caller for its roots as URIs.
	ListRoots(ctx context.Context) ([]string, error)
}

// Resolver lists the repositories a caller may operate on.
type Resolver struct {
	staticRoot   string
	isRepository func(path string) bool
}

// NewResolver creates a resolver. staticRoot may be empty; isRepository
// decides whether a caller root is kept.
func NewResolver(staticRoot string, isRepository func(path string) bool) *Resolver {
	if isRepository == nil {
		panic("isRepository is required")
	}
	return &Resolver{staticRoot: staticRoot, isRepository: isRepository}
}

// List returns the caller's roots that are git repositories, in the order
// the caller gave them, followed by the configured root. Entries are not
// deduplicated. A caller without root support contributes nothing.
func (r *Resolver) List(ctx context.Context, source RootSource) ([]string, error) {
	var discovered []string
	if source != nil && source.SupportsRoots() {
		uris, err := source.ListRoots(ctx)
		if err != nil {
			return nil, fmt.Errorf("list roots: %w", err)
		}
		discovered = r.filter(ctx, uris)
	}

	if r.staticRoot != "" {
		discovered = append(discovered, r.staticRoot)
	}
	return discovered, nil
}

// filter checks candidates concurrently and keeps the ones that open as
// repositories, preserving input order.
func (r *Resolver) filter(ctx context.Context, uris []string) []string {
	keep := make([]string, len(uris))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, uri := range uris {
		g.Go(func() error {
			path, ok := filePath(uri)
			if ok && r.isRepository(path) {
				keep[i] = path
			}
			return nil
		})
	}
	_ = g.Wait()

	var out []string
	for _, path := range keep {
		if path != "" {
			out = append(out, path)
		}
	}
	return out
}

// filePath extracts the local path from a file:// URI.
func filePath(uri string) (string, bool) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return "", false
	}
	return u.Path, true
}
