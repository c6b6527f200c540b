package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"brandkit/internal/domain"
	"brandkit/internal/generation"
)

const maxFieldRunes = 500

type namesRequest struct {
	Industry    string `json:"industry"`
	Keywords    string `json:"keywords"`
	Style       string `json:"style"`
	Preferences string `json:"preferences"`
}

type brandRequest struct {
	Name     string `json:"name"`
	Keywords string `json:"keywords"`
}

type brandbookRequest struct {
	Name     string `json:"name"`
	Keywords string `json:"keywords"`
	LogoURL  string `json:"logo_url"`
}

// GenerateNames handles POST /api/generate/names.
func (a *App) GenerateNames(w http.ResponseWriter, r *http.Request) {
	var req namesRequest
	if err := decode(w, r, &req); err != nil {
		a.error(w, r, http.StatusBadRequest, codeBadRequest)
		return
	}
	if err := validateFields(map[string]string{"industry": req.Industry}, req.Keywords, req.Style, req.Preferences); err != nil {
		a.fail(w, r, "names", err)
		return
	}
	names, err := a.Generator.GenerateNames(r.Context(), generation.NameRequest{
		Industry:    strings.TrimSpace(req.Industry),
		Keywords:    strings.TrimSpace(req.Keywords),
		Style:       strings.TrimSpace(req.Style),
		Preferences: strings.TrimSpace(req.Preferences),
	})
	if err != nil {
		a.fail(w, r, "names", err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"names": names})
}

// GenerateLogo handles POST /api/generate/logo.
func (a *App) GenerateLogo(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if err := decode(w, r, &req); err != nil {
		a.error(w, r, http.StatusBadRequest, codeBadRequest)
		return
	}
	if err := validateFields(map[string]string{"name": req.Name}, req.Keywords); err != nil {
		a.fail(w, r, "logo", err)
		return
	}
	logoURL, err := a.Generator.GenerateLogo(r.Context(), generation.LogoRequest{
		Name:     strings.TrimSpace(req.Name),
		Keywords: strings.TrimSpace(req.Keywords),
	})
	if err != nil {
		a.fail(w, r, "logo", err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"url": logoURL})
}

// GenerateSlogan handles POST /api/generate/slogan. It always answers 200.
func (a *App) GenerateSlogan(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if err := decode(w, r, &req); err != nil {
		a.error(w, r, http.StatusBadRequest, codeBadRequest)
		return
	}
	if err := validateFields(map[string]string{"name": req.Name}, req.Keywords); err != nil {
		a.fail(w, r, "slogan", err)
		return
	}
	slogan := a.Generator.GenerateSlogan(r.Context(), generation.SloganRequest{
		Name:     strings.TrimSpace(req.Name),
		Keywords: strings.TrimSpace(req.Keywords),
	})
	a.json(w, http.StatusOK, map[string]string{"slogan": slogan})
}

// GenerateBrandbook handles POST /api/generate/brandbook.
func (a *App) GenerateBrandbook(w http.ResponseWriter, r *http.Request) {
	var req brandbookRequest
	if err := decode(w, r, &req); err != nil {
		a.error(w, r, http.StatusBadRequest, codeBadRequest)
		return
	}
	if err := validateFields(map[string]string{"name": req.Name, "logo_url": req.LogoURL}, req.Keywords); err != nil {
		a.fail(w, r, "brandbook", err)
		return
	}
	if !validLogoURL(req.LogoURL) {
		a.fail(w, r, "brandbook", fmt.Errorf("logo_url must be an absolute http(s) url: %w", domain.ErrInvalidInput))
		return
	}
	book := a.Brandbooks.Assemble(r.Context(), req.Name, strings.TrimSpace(req.Keywords), strings.TrimSpace(req.LogoURL))
	a.json(w, http.StatusOK, book)
}

// validateFields checks that every named field is non-blank and that no field,
// required or optional, is overly long.
func validateFields(required map[string]string, optional ...string) error {
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required: %w", name, domain.ErrInvalidInput)
		}
		if utf8.RuneCountInString(value) > maxFieldRunes {
			return fmt.Errorf("%s is too long: %w", name, domain.ErrInvalidInput)
		}
	}
	for _, value := range optional {
		if utf8.RuneCountInString(value) > maxFieldRunes {
			return fmt.Errorf("field is too long: %w", domain.ErrInvalidInput)
		}
	}
	return nil
}

func validLogoURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
