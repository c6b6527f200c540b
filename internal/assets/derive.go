package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"brandkit/internal/domain"
	"brandkit/internal/infra"
	"brandkit/internal/metrics"
)

// LogoDir is the storage prefix for derived logo files.
const LogoDir = "generated/logos"

const (
	styleMonochrome = "grayscale(100%)"
	styleInverted   = "invert(100%)"
)

// Downloader fetches remote binary content.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, string, error)
}

// Store persists a file under a relative key and returns the cleaned key.
type Store interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
	PublicURL(key string) string
}

// Deriver produces monochrome and inverted renditions of a generated logo.
type Deriver struct {
	downloader Downloader
	store      Store
	logger     *infra.Logger
	now        func() time.Time
	nonce      func() string
}

// NewDeriver wires the download and storage collaborators.
func NewDeriver(downloader Downloader, store Store, logger *infra.Logger) *Deriver {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Deriver{downloader: downloader, store: store, logger: logger, now: time.Now, nonce: shortID}
}

// OriginalVariant describes the logo as returned by the provider.
func OriginalVariant(logoURL string) domain.LogoVariant {
	return domain.LogoVariant{
		Name:        "Основной логотип",
		URL:         logoURL,
		Description: "Оригинальная цветная версия логотипа",
		Usage:       "Сайт, соцсети, печатные материалы на светлом фоне",
	}
}

// Derive returns the original logo followed by its monochrome and inverted
// variants. It never fails: on any error only the original entry is returned.
func (d *Deriver) Derive(ctx context.Context, logoURL, brandName string) []domain.LogoVariant {
	original := OriginalVariant(logoURL)
	if d == nil {
		metrics.LogoVariants.WithLabelValues("degraded").Inc()
		return []domain.LogoVariant{original}
	}
	derived, err := d.derive(ctx, logoURL, brandName)
	if err != nil {
		metrics.LogoVariants.WithLabelValues("degraded").Inc()
		d.logger.Warn().
			Err(err).
			Str("logo_url", logoURL).
			Str("brand", brandName).
			Msg("assets: logo variants unavailable, returning original only")
		return []domain.LogoVariant{original}
	}
	metrics.LogoVariants.WithLabelValues("derived").Inc()
	return append([]domain.LogoVariant{original}, derived...)
}

func (d *Deriver) derive(ctx context.Context, logoURL, brandName string) (variants []domain.LogoVariant, err error) {
	// Image decoders may panic on hostile input.
	defer func() {
		if r := recover(); r != nil {
			variants, err = nil, fmt.Errorf("assets: derive panicked: %v", r)
		}
	}()
	if d.downloader == nil || d.store == nil {
		return nil, errors.New("assets: deriver is not configured")
	}
	data, _, err := d.downloader.Download(ctx, logoURL)
	if err != nil {
		return nil, fmt.Errorf("assets: download logo: %w", err)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("assets: decode logo: %w", err)
	}
	d.logger.Debug().
		Str("format", format).
		Int("width", img.Bounds().Dx()).
		Int("height", img.Bounds().Dy()).
		Msg("assets: logo decoded")

	// The nonce keeps concurrent derivations of one brand from sharing files.
	base := fmt.Sprintf("%s-%d-%s", Slugify(brandName), d.now().UnixMilli(), d.nonce())

	monoURL, err := d.save(ctx, base+"-monochrome.png", Grayscale(img))
	if err != nil {
		return nil, err
	}
	invURL, err := d.save(ctx, base+"-inverted.png", Invert(img))
	if err != nil {
		return nil, err
	}
	return []domain.LogoVariant{
		{
			Name:        "Монохромный логотип",
			URL:         monoURL,
			Description: "Черно-белая версия логотипа",
			Usage:       "Документы, печать в один цвет, тиснение",
			Style:       styleMonochrome,
		},
		{
			Name:        "Инвертированный логотип",
			URL:         invURL,
			Description: "Версия логотипа с инвертированными цветами",
			Usage:       "Размещение на темном фоне",
			Style:       styleInverted,
		},
	}, nil
}

func shortID() string {
	return uuid.NewString()[:8]
}

func (d *Deriver) save(ctx context.Context, fileName string, img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("assets: encode %s: %w", fileName, err)
	}
	key, err := d.store.Write(ctx, LogoDir+"/"+fileName, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("assets: save %s: %w", fileName, err)
	}
	return d.store.PublicURL(key), nil
}
