package brandbook

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandkit/internal/domain"
)

type mapFetcher map[string]string

func (m mapFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	data, ok := m[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return []byte(data), nil
}

func zipNames(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := map[string]string{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		_ = rc.Close()
		out[f.Name] = string(b)
	}
	return out
}

func TestAssemblerArchive(t *testing.T) {
	book := domain.NewBrandbook("Кофе Зерно", "Свежий кофе", []domain.LogoVariant{
		{Name: "original", URL: "https://cdn.example.com/logo.webp?sig=1"},
		{Name: "mono", URL: "/generated/logos/kofe-zerno-1-monochrome.png"},
	})
	book.ID = "abc"
	repo := &memoryRepo{records: map[string]*domain.Brandbook{"abc": &book}}
	fetch := mapFetcher{
		"https://cdn.example.com/logo.webp?sig=1":      "webp",
		"/generated/logos/kofe-zerno-1-monochrome.png": "mono",
	}
	a := NewAssembler(&recordingSlogans{}, nil, WithRepository(repo), WithFetcher(fetch))

	data, err := a.Archive(context.Background(), "abc")
	require.NoError(t, err)

	files := zipNames(t, data)
	require.Len(t, files, 3)
	assert.Contains(t, files["brandbook.json"], `"slogan": "Свежий кофе"`)
	assert.Equal(t, "webp", files["logos/kofe-zerno-1.webp"])
	assert.Equal(t, "mono", files["logos/kofe-zerno-2.png"])
}

func TestArchiveFailsOnMissingVariant(t *testing.T) {
	book := domain.NewBrandbook("Acme", "", []domain.LogoVariant{{Name: "original", URL: "https://gone.example.com/x.png"}})
	_, err := BuildArchive(context.Background(), book, mapFetcher{})
	assert.Error(t, err)
}

func TestArchiveRequiresFetcherAndRepository(t *testing.T) {
	_, err := NewAssembler(&recordingSlogans{}, nil).Archive(context.Background(), "abc")
	assert.Error(t, err)

	_, err = NewAssembler(&recordingSlogans{}, nil, WithFetcher(mapFetcher{})).Archive(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrPersistenceDisabled)
}
