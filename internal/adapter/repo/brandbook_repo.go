package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"brandkit/internal/domain"
	"brandkit/internal/infra"
	"brandkit/internal/sqlinline"
)

// BrandbookRepositoryPG implements domain.BrandbookRepository on PostgreSQL.
// Collections are stored as jsonb columns.
type BrandbookRepositoryPG struct {
	sql   infra.SQLExecutor
	newID func() uuid.UUID
}

// NewBrandbookRepository wraps a marker-checking SQL executor.
func NewBrandbookRepository(sql infra.SQLExecutor) *BrandbookRepositoryPG {
	return &BrandbookRepositoryPG{sql: sql, newID: uuid.New}
}

// EnsureSchema creates the brandbook and token tables when missing.
func (r *BrandbookRepositoryPG) EnsureSchema(ctx context.Context) error {
	_, err := r.sql.Exec(ctx, sqlinline.QEnsureSchema)
	return err
}

// Create inserts book, assigning its ID and CreatedAt.
func (r *BrandbookRepositoryPG) Create(ctx context.Context, book *domain.Brandbook, keywords, sourceLogoURL string) error {
	if book == nil {
		return fmt.Errorf("brandbook repo: nil brandbook")
	}
	book.Normalize()
	cols, err := marshalAll(book.Colors, book.Fonts, book.Icons, book.LogoVariants)
	if err != nil {
		return fmt.Errorf("brandbook repo: encode: %w", err)
	}
	id := r.newID()
	var createdAt time.Time
	err = r.sql.QueryRow(ctx, sqlinline.QInsertBrandbook,
		id,
		book.Name,
		strings.TrimSpace(keywords),
		sourceLogoURL,
		book.Slogan,
		cols[0],
		cols[1],
		cols[2],
		cols[3],
	).Scan(&createdAt)
	if err != nil {
		return fmt.Errorf("brandbook repo: insert: %w", err)
	}
	book.ID = id.String()
	book.CreatedAt = &createdAt
	return nil
}

// GetByID loads a brandbook. Unknown or malformed ids yield domain.ErrNotFound.
func (r *BrandbookRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Brandbook, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var (
		book                           domain.Brandbook
		colors, fonts, icons, variants []byte
		createdAt                      time.Time
	)
	err = r.sql.QueryRow(ctx, sqlinline.QSelectBrandbookByID, parsed).Scan(
		&book.ID,
		&book.Name,
		&book.Slogan,
		&colors,
		&fonts,
		&icons,
		&variants,
		&createdAt,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("brandbook repo: select: %w", err)
	}
	for _, col := range []struct {
		raw []byte
		dst any
	}{
		{colors, &book.Colors},
		{fonts, &book.Fonts},
		{icons, &book.Icons},
		{variants, &book.LogoVariants},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, fmt.Errorf("brandbook repo: decode: %w", err)
		}
	}
	book.CreatedAt = &createdAt
	book.Normalize()
	return &book, nil
}

func marshalAll(values ...any) ([][]byte, error) {
	out := make([][]byte, 0, len(values))
	for _, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

var _ domain.BrandbookRepository = (*BrandbookRepositoryPG)(nil)
