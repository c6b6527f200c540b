package domain

import "time"

// ColorPalette is one named brand colour.
type ColorPalette struct {
	Name  string `json:"name"`
	Hex   string `json:"hex"`
	Usage string `json:"usage"`
}

// Font describes a typeface recommendation.
type Font struct {
	Name   string `json:"name"`
	Family string `json:"family"`
	Usage  string `json:"usage"`
}

// BrandElement is a supporting graphic such as an icon.
type BrandElement struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// LogoVariant is one rendition of the logo. Style is a CSS filter hint for
// clients that cannot fetch the raster file.
type LogoVariant struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Usage       string `json:"usage"`
	Style       string `json:"style,omitempty"`
}

// Brandbook is the assembled brand kit. The original logo is always the first
// variant.
type Brandbook struct {
	ID           string         `json:"id,omitempty"`
	Name         string         `json:"name"`
	Slogan       string         `json:"slogan"`
	Colors       []ColorPalette `json:"colors"`
	Fonts        []Font         `json:"fonts"`
	Icons        []BrandElement `json:"icons"`
	LogoVariants []LogoVariant  `json:"logoVariants"`
	CreatedAt    *time.Time     `json:"createdAt,omitempty"`
}

// NewBrandbook returns a brandbook whose collections encode as [] rather than null.
func NewBrandbook(name, slogan string, variants []LogoVariant) Brandbook {
	if variants == nil {
		variants = []LogoVariant{}
	}
	return Brandbook{
		Name:         name,
		Slogan:       slogan,
		Colors:       []ColorPalette{},
		Fonts:        []Font{},
		Icons:        []BrandElement{},
		LogoVariants: variants,
	}
}

// Normalize replaces nil collections with empty ones, e.g. after a database read.
func (b *Brandbook) Normalize() {
	if b.Colors == nil {
		b.Colors = []ColorPalette{}
	}
	if b.Fonts == nil {
		b.Fonts = []Font{}
	}
	if b.Icons == nil {
		b.Icons = []BrandElement{}
	}
	if b.LogoVariants == nil {
		b.LogoVariants = []LogoVariant{}
	}
}
