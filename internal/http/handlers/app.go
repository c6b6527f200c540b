package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"brandkit/internal/domain"
	"brandkit/internal/generation"
	"brandkit/internal/infra"
	"brandkit/internal/middleware"
)

const maxBodyBytes = 64 << 10

// Generator runs the name, logo and slogan requesters.
type Generator interface {
	GenerateNames(ctx context.Context, req generation.NameRequest) ([]string, error)
	GenerateLogo(ctx context.Context, req generation.LogoRequest) (string, error)
	GenerateSlogan(ctx context.Context, req generation.SloganRequest) string
}

// Brandbooks assembles, looks up and exports brandbooks.
type Brandbooks interface {
	Assemble(ctx context.Context, name, keywords, logoURL string) domain.Brandbook
	Get(ctx context.Context, id string) (*domain.Brandbook, error)
	Archive(ctx context.Context, id string) ([]byte, error)
}

// App carries the collaborators shared by all handlers.
type App struct {
	Generator      Generator
	Brandbooks     Brandbooks
	Logger         infra.Logger
	HasCredentials bool
}

func NewApp(gen Generator, books Brandbooks, logger *infra.Logger) *App {
	l := zerolog.New(io.Discard)
	if logger != nil {
		l = *logger
	}
	return &App{Generator: gen, Brandbooks: books, Logger: l}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (a *App) error(w http.ResponseWriter, r *http.Request, status int, code string) {
	a.json(w, status, map[string]errorBody{
		"error": {
			Code:      code,
			Message:   message(code, middleware.LocaleFromContext(r.Context())),
			RequestID: middleware.RequestIDFromContext(r.Context()),
		},
	})
}

// decode reads a bounded JSON body into dst.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
