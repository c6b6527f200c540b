package brandbook

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"brandkit/internal/assets"
	"brandkit/internal/domain"
	"brandkit/internal/generation"
	"brandkit/internal/infra"
)

// SloganGenerator produces a slogan and never fails.
type SloganGenerator interface {
	GenerateSlogan(ctx context.Context, req generation.SloganRequest) string
}

// VariantDeriver turns a logo URL into its ordered variants, original first.
type VariantDeriver interface {
	Derive(ctx context.Context, logoURL, brandName string) []domain.LogoVariant
}

// Assembler composes a brandbook from a slogan and logo variants. Colours,
// fonts and icons are not generated yet and stay empty.
type Assembler struct {
	slogans  SloganGenerator
	variants VariantDeriver
	repo     domain.BrandbookRepository
	fetcher  Fetcher
	logger   *infra.Logger
}

// Option customises an Assembler.
type Option func(*Assembler)

// WithRepository records every assembled brandbook. Storage failures are logged
// and never fail assembly.
func WithRepository(repo domain.BrandbookRepository) Option {
	return func(a *Assembler) { a.repo = repo }
}

// WithLogger sets the assembler logger.
func WithLogger(logger *infra.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAssembler wires the slogan and variant collaborators.
func NewAssembler(slogans SloganGenerator, variants VariantDeriver, opts ...Option) *Assembler {
	discard := zerolog.New(io.Discard)
	l := infra.Logger(discard)
	a := &Assembler{slogans: slogans, variants: variants, logger: &l}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble runs slogan generation, then variant derivation. It does not fail:
// both steps degrade on their own.
func (a *Assembler) Assemble(ctx context.Context, name, keywords, logoURL string) domain.Brandbook {
	name = strings.TrimSpace(name)
	slogan := a.slogans.GenerateSlogan(ctx, generation.SloganRequest{Name: name, Keywords: keywords})

	var variants []domain.LogoVariant
	if a.variants != nil {
		variants = a.variants.Derive(ctx, logoURL, name)
	}
	if len(variants) == 0 {
		variants = []domain.LogoVariant{assets.OriginalVariant(logoURL)}
	}
	book := domain.NewBrandbook(name, slogan, variants)

	if a.repo != nil {
		if err := a.repo.Create(ctx, &book, keywords, logoURL); err != nil {
			a.logger.Warn().
				Err(err).
				Str("brand", name).
				Msg("brandbook: persist failed")
			book.ID = ""
			book.CreatedAt = nil
		}
	}
	return book
}

// Get loads a previously recorded brandbook.
func (a *Assembler) Get(ctx context.Context, id string) (*domain.Brandbook, error) {
	if a.repo == nil {
		return nil, domain.ErrPersistenceDisabled
	}
	book, err := a.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	book.Normalize()
	return book, nil
}
