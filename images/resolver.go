// Package images resolves an image request into image bytes through an
// ordered fallback chain: remote search, local file, fallback asset. A
// request that exhausts the chain degrades to a textual stand-in at the
// placeholder, which is the caller's job; this package only reports that
// no bytes could be produced.
package images

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"time"

	"github.com/disintegration/imaging"

	"deckgen/schema"
)

// ErrNoImage is returned when every byte-producing tier failed.
var ErrNoImage = errors.New("no image could be resolved")

// maxImageDim bounds the longest edge of an embedded raster. Remote photos
// routinely exceed 4K and would bloat the deck.
const maxImageDim = 1920

const jpegQuality = 85

// Resolved is the outcome of a successful resolution.
type Resolved struct {
	Bytes []byte
	MIME  string
	Tier  string // which tier produced the bytes
}

// Logs is the logging surface the resolver needs.
type Logs interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Config carries the resolver's explicit configuration; the resolver never
// reads the environment.
type Config struct {
	UnsplashAccessKey string
	FallbackAsset     string
	SearchTimeout     time.Duration
	FetchTimeout      time.Duration

	// SearchBaseURL overrides the Unsplash endpoint. Empty means production.
	SearchBaseURL string
}

// Resolver runs the fallback chain. Tiers are an ordered list of attempt
// functions so new tiers can be inserted without touching existing ones.
type Resolver struct {
	cfg      Config
	log      Logs
	unsplash *unsplashClient
}

type tier struct {
	name    string
	attempt func(ctx context.Context, spec schema.ImageSpec) (*Resolved, error)
}

// NewResolver builds a resolver from explicit configuration.
func NewResolver(cfg Config, log Logs) *Resolver {
	searchURL := cfg.SearchBaseURL
	if searchURL == "" {
		searchURL = unsplashSearchURL
	}
	searchTimeout := cfg.SearchTimeout
	if searchTimeout <= 0 {
		searchTimeout = 10 * time.Second
	}
	fetchTimeout := cfg.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = 15 * time.Second
	}
	return &Resolver{
		cfg: cfg,
		log: log,
		unsplash: &unsplashClient{
			accessKey:     cfg.UnsplashAccessKey,
			searchURL:     searchURL,
			searchTimeout: searchTimeout,
			fetchTimeout:  fetchTimeout,
			client:        &http.Client{},
		},
	}
}

// Resolve tries each tier in order and returns the first success. On
// ErrNoImage the caller should place the textual stand-in instead. Tier
// failures are logged at warning level and never surface.
func (r *Resolver) Resolve(ctx context.Context, spec schema.ImageSpec) (*Resolved, error) {
	for _, t := range r.tiers() {
		res, err := t.attempt(ctx, spec)
		if err != nil {
			r.log.Warnf("image tier %s failed for %q: %v", t.name, spec.Path, err)
			continue
		}
		res.Tier = t.name
		return res, nil
	}
	return nil, ErrNoImage
}

func (r *Resolver) tiers() []tier {
	return []tier{
		{name: "unsplash", attempt: r.resolveRemote},
		{name: "local", attempt: r.resolveLocal},
		{name: "fallback", attempt: r.resolveFallback},
	}
}

func (r *Resolver) resolveRemote(ctx context.Context, spec schema.ImageSpec) (*Resolved, error) {
	if r.cfg.UnsplashAccessKey == "" {
		return nil, errors.New("no access key configured")
	}
	photoURL, err := r.unsplash.search(ctx, spec.Path)
	if err != nil {
		return nil, err
	}
	raw, err := r.unsplash.fetch(ctx, photoURL)
	if err != nil {
		return nil, err
	}
	return normalize(raw)
}

func (r *Resolver) resolveLocal(_ context.Context, spec schema.ImageSpec) (*Resolved, error) {
	raw, err := os.ReadFile(spec.Path)
	if err != nil {
		return nil, err
	}
	return normalize(raw)
}

func (r *Resolver) resolveFallback(_ context.Context, _ schema.ImageSpec) (*Resolved, error) {
	if r.cfg.FallbackAsset == "" {
		return nil, errors.New("no fallback asset configured")
	}
	raw, err := os.ReadFile(r.cfg.FallbackAsset)
	if err != nil {
		return nil, err
	}
	return normalize(raw)
}

// normalize validates that raw decodes as an image and downscales anything
// whose longest edge exceeds maxImageDim, re-encoding as JPEG. Undecodable
// bytes fail the tier so the chain can fall through.
func normalize(raw []byte) (*Resolved, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxImageDim && height <= maxImageDim {
		return &Resolved{Bytes: raw, MIME: mimeForFormat(format)}, nil
	}

	var newWidth, newHeight int
	if width > height {
		newWidth = maxImageDim
		newHeight = int(float64(height) * float64(maxImageDim) / float64(width))
	} else {
		newHeight = maxImageDim
		newWidth = int(float64(width) * float64(maxImageDim) / float64(height))
	}
	resized := imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to re-encode image: %w", err)
	}
	return &Resolved{Bytes: buf.Bytes(), MIME: "image/jpeg"}, nil
}

func mimeForFormat(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
