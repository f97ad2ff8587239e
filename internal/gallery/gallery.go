// ABOUTME: Image upload and the list of uploaded images
// ABOUTME: Uploads files with bounded concurrency, keeping results in input order

package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Sikan777/AtlanticPhoto/internal/client"
)

// ImageUploader is the subset of the API client used for uploads
type ImageUploader interface {
	UploadImage(ctx context.Context, in *client.ImageUpload) (*client.UploadedImage, error)
}

// TokenSource supplies the current bearer, or "" when logged out
type TokenSource interface {
	AccessToken() string
}

// Result is the outcome of one file upload
type Result struct {
	Path string
	URL  string
	Err  error
}

// Gallery uploads images and remembers where they landed
type Gallery struct {
	api     ImageUploader
	tokens  TokenSource
	workers int
	log     *slog.Logger

	mu   sync.Mutex
	urls []string
}

// New creates a Gallery. tokens may be nil for anonymous uploads.
func New(api ImageUploader, tokens TokenSource, workers int, log *slog.Logger) *Gallery {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = slog.Default()
	}
	return &Gallery{
		api:     api,
		tokens:  tokens,
		workers: workers,
		log:     log.With("component", "gallery"),
	}
}

// Upload sends a single file and appends its URL to the gallery
func (g *Gallery) Upload(ctx context.Context, path, description string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	in := &client.ImageUpload{
		Filename:    filepath.Base(path),
		Content:     f,
		Description: description,
	}
	if g.tokens != nil {
		in.AccessToken = g.tokens.AccessToken()
	}

	img, err := g.api.UploadImage(ctx, in)
	if err != nil {
		g.log.Error("error uploading image", "path", path, "error", err)
		return "", err
	}

	url := img.Location()
	g.mu.Lock()
	g.urls = append(g.urls, url)
	g.mu.Unlock()

	g.log.Info("image uploaded", "path", path, "url", url)
	return url, nil
}

// UploadAll uploads every path with at most `workers` in flight.
// One failing file does not stop the others; results keep input order.
func (g *Gallery) UploadAll(ctx context.Context, paths []string, description string) []Result {
	results := make([]Result, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for i, p := range paths {
		eg.Go(func() error {
			url, err := g.Upload(ctx, p, description)
			results[i] = Result{Path: p, URL: url, Err: err}
			return nil
		})
	}
	eg.Wait()

	return results
}

// URLs returns uploaded image URLs in upload-completion order
func (g *Gallery) URLs() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.urls...)
}

// Failed counts results with an error
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
