package domain

import "context"

// BrandbookRepository stores assembled brandbooks.
type BrandbookRepository interface {
	Create(ctx context.Context, book *Brandbook, keywords, sourceLogoURL string) error
	GetByID(ctx context.Context, id string) (*Brandbook, error)
}
