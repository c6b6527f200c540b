package brandbook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"
	"time"

	"brandkit/internal/assets"
	"brandkit/internal/domain"
	"brandkit/pkg/zip"
)

// Fetcher loads the bytes behind a logo variant URL, local or remote.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// WithFetcher enables archive export.
func WithFetcher(f Fetcher) Option {
	return func(a *Assembler) { a.fetcher = f }
}

// Archive loads a recorded brandbook and bundles it with its logo files.
func (a *Assembler) Archive(ctx context.Context, id string) ([]byte, error) {
	if a.fetcher == nil {
		return nil, errors.New("brandbook: archive export is not configured")
	}
	book, err := a.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return BuildArchive(ctx, *book, a.fetcher)
}

// BuildArchive writes brandbook.json followed by one file per logo variant
// under logos/. Any variant that cannot be fetched fails the export.
func BuildArchive(ctx context.Context, book domain.Brandbook, fetch Fetcher) ([]byte, error) {
	book.Normalize()
	modified := time.Now()
	if book.CreatedAt != nil {
		modified = *book.CreatedAt
	}

	manifest, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("brandbook: encode manifest: %w", err)
	}
	files := []zip.Asset{{Filename: "brandbook.json", Data: manifest, Modified: modified}}

	slug := assets.Slugify(book.Name)
	for i, v := range book.LogoVariants {
		data, err := fetch.Fetch(ctx, v.URL)
		if err != nil {
			return nil, fmt.Errorf("brandbook: fetch %s: %w", v.Name, err)
		}
		files = append(files, zip.Asset{
			Filename: fmt.Sprintf("logos/%s-%d%s", slug, i+1, extension(v.URL)),
			Data:     data,
			Modified: modified,
		})
	}
	return zip.ArchiveAssets(files)
}

func extension(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ".png"
	}
	switch ext := path.Ext(u.Path); ext {
	case ".png", ".jpg", ".jpeg", ".webp", ".gif", ".bmp", ".svg":
		return ext
	default:
		return ".png"
	}
}
