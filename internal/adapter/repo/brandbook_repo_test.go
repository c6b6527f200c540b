package repo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brandkit/internal/domain"
	"brandkit/internal/sqlinline"
)

type scanRow struct {
	scan func(dest ...any) error
}

func (r scanRow) Scan(dest ...any) error {
	if r.scan == nil {
		return pgx.ErrNoRows
	}
	return r.scan(dest...)
}

type stubSQL struct {
	query string
	args  []any
	row   scanRow
}

func (s *stubSQL) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.query, s.args = query, args
	return pgconn.CommandTag{}, nil
}

func (s *stubSQL) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	s.query, s.args = query, args
	return s.row
}

func (s *stubSQL) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

var fixedID = uuid.MustParse("6f1c2b9a-0d4e-4a57-9c31-2e8b7f5d1a20")

func TestCreateAssignsIDAndEncodesCollections(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sql := &stubSQL{row: scanRow{scan: func(dest ...any) error {
		*(dest[0].(*time.Time)) = created
		return nil
	}}}
	r := NewBrandbookRepository(sql)
	r.newID = func() uuid.UUID { return fixedID }

	book := domain.NewBrandbook("Acme", "Лучшее от Acme", []domain.LogoVariant{{Name: "Основной логотип", URL: "https://cdn.example.com/a.png"}})
	require.NoError(t, r.Create(context.Background(), &book, " rockets ", "https://cdn.example.com/a.png"))

	assert.Equal(t, sqlinline.QInsertBrandbook, sql.query)
	assert.Equal(t, fixedID.String(), book.ID)
	require.NotNil(t, book.CreatedAt)
	assert.Equal(t, created, *book.CreatedAt)

	require.Len(t, sql.args, 9)
	assert.Equal(t, "rockets", sql.args[2])
	assert.Equal(t, "[]", string(sql.args[5].([]byte)))
	var variants []domain.LogoVariant
	require.NoError(t, json.Unmarshal(sql.args[8].([]byte), &variants))
	assert.Equal(t, book.LogoVariants, variants)
}

func TestCreatePropagatesInsertError(t *testing.T) {
	sql := &stubSQL{row: scanRow{scan: func(dest ...any) error { return errors.New("relation does not exist") }}}
	book := domain.NewBrandbook("Acme", "s", nil)

	err := NewBrandbookRepository(sql).Create(context.Background(), &book, "", "u")
	require.Error(t, err)
	assert.Empty(t, book.ID)
}

func TestGetByIDDecodesColumns(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sql := &stubSQL{row: scanRow{scan: func(dest ...any) error {
		*(dest[0].(*string)) = fixedID.String()
		*(dest[1].(*string)) = "Acme"
		*(dest[2].(*string)) = "slogan"
		*(dest[3].(*[]byte)) = []byte(`[]`)
		*(dest[4].(*[]byte)) = nil
		*(dest[5].(*[]byte)) = []byte(`[]`)
		*(dest[6].(*[]byte)) = []byte(`[{"name":"Основной логотип","url":"https://cdn.example.com/a.png","description":"","usage":""}]`)
		*(dest[7].(*time.Time)) = created
		return nil
	}}}

	book, err := NewBrandbookRepository(sql).GetByID(context.Background(), fixedID.String())
	require.NoError(t, err)
	assert.Equal(t, sqlinline.QSelectBrandbookByID, sql.query)
	assert.Equal(t, "Acme", book.Name)
	assert.NotNil(t, book.Fonts)
	require.Len(t, book.LogoVariants, 1)
	assert.Equal(t, "https://cdn.example.com/a.png", book.LogoVariants[0].URL)
	assert.Equal(t, created, *book.CreatedAt)
}

func TestGetByIDNotFound(t *testing.T) {
	r := NewBrandbookRepository(&stubSQL{})

	_, err := r.GetByID(context.Background(), fixedID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnsureSchemaRunsDDL(t *testing.T) {
	sql := &stubSQL{}
	require.NoError(t, NewBrandbookRepository(sql).EnsureSchema(context.Background()))
	assert.Equal(t, sqlinline.QEnsureSchema, sql.query)
}
