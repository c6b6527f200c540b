package generation

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"brandkit/internal/infra"
	"brandkit/internal/metrics"
	"brandkit/internal/providers/genapi"
)

const (
	defaultTextModel  = "gpt-4o-mini"
	defaultImageModel = "dalle-3"

	kindNames  = "names"
	kindLogo   = "logo"
	kindSlogan = "slogan"
)

// Provider is the subset of the generation API used by the requesters.
type Provider interface {
	StatusFetcher
	Submit(ctx context.Context, model string, payload any) (*genapi.Submission, error)
}

// Options configures a Service. Zero values fall back to package defaults.
type Options struct {
	TextModel  string
	ImageModel string
	TextPoll   PollOptions
	ImagePoll  PollOptions
	Prompts    *Prompts
	Logger     *infra.Logger
}

// Service turns business inputs into provider jobs and decodes their results.
type Service struct {
	provider   Provider
	poller     *Poller
	textModel  string
	imageModel string
	textPoll   PollOptions
	imagePoll  PollOptions
	prompts    *Prompts
	logger     *infra.Logger
}

// NameRequest describes a business-name generation call.
type NameRequest struct {
	Industry    string
	Keywords    string
	Style       string
	Preferences string
	// Poll overrides the service's text budget when MaxAttempts > 0.
	Poll PollOptions
}

// LogoRequest describes a logo generation call.
type LogoRequest struct {
	Name     string
	Keywords string
	Poll     PollOptions
}

// SloganRequest describes a slogan generation call.
type SloganRequest struct {
	Name     string
	Keywords string
	Poll     PollOptions
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type textPayload struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type imagePayload struct {
	Prompt  string `json:"prompt"`
	Size    string `json:"size,omitempty"`
	Quality string `json:"quality,omitempty"`
}

// NewService wires the requesters around a provider.
func NewService(provider Provider, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	prompts := opts.Prompts
	if prompts == nil {
		prompts = DefaultPrompts()
	}
	return &Service{
		provider:   provider,
		poller:     NewPoller(provider, logger),
		textModel:  coalesce(opts.TextModel, defaultTextModel),
		imageModel: coalesce(opts.ImageModel, defaultImageModel),
		textPoll:   pollOrDefault(opts.TextPoll, DefaultTextPoll),
		imagePoll:  pollOrDefault(opts.ImagePoll, DefaultImagePoll),
		prompts:    prompts,
		logger:     logger,
	}
}

// GenerateNames asks for six business names and returns the non-empty lines.
func (s *Service) GenerateNames(ctx context.Context, req NameRequest) (names []string, err error) {
	defer s.observe(kindNames, time.Now(), &err)
	prompt, err := render(s.prompts.names, req)
	if err != nil {
		return nil, err
	}
	res, err := s.run(ctx, s.textModel, s.textBody(prompt, s.prompts.Names), pollOrDefault(req.Poll, s.textPoll), ResultText)
	if err != nil {
		return nil, err
	}
	names = ParseNames(res.Value)
	if len(names) == 0 {
		return nil, ErrEmptyResult
	}
	return names, nil
}

// GenerateLogo requests a text-free square logo and returns its URL.
func (s *Service) GenerateLogo(ctx context.Context, req LogoRequest) (logoURL string, err error) {
	defer s.observe(kindLogo, time.Now(), &err)
	prompt, err := render(s.prompts.logo, req)
	if err != nil {
		return "", err
	}
	payload := imagePayload{
		Prompt:  prompt,
		Size:    s.prompts.Logo.Size,
		Quality: s.prompts.Logo.Quality,
	}
	res, err := s.run(ctx, s.imageModel, payload, pollOrDefault(req.Poll, s.imagePoll), ResultImageURL)
	if err != nil {
		return "", err
	}
	return res.Value, nil
}

// GenerateSlogan never fails: any error yields DefaultSlogan(name).
func (s *Service) GenerateSlogan(ctx context.Context, req SloganRequest) string {
	slogan, err := s.trySlogan(ctx, req)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("brand", req.Name).
			Msg("generation: slogan generation failed, using default")
		return DefaultSlogan(req.Name)
	}
	return slogan
}

func (s *Service) trySlogan(ctx context.Context, req SloganRequest) (slogan string, err error) {
	defer s.observe(kindSlogan, time.Now(), &err)
	prompt, err := render(s.prompts.slogan, req)
	if err != nil {
		return "", err
	}
	res, err := s.run(ctx, s.textModel, s.textBody(prompt, s.prompts.Slogan), pollOrDefault(req.Poll, s.textPoll), ResultText)
	if err != nil {
		return "", err
	}
	slogan = CleanSlogan(res.Value)
	if slogan == "" {
		return "", ErrEmptyResult
	}
	return slogan, nil
}

// DefaultSlogan is the deterministic fallback for a brand name.
func DefaultSlogan(name string) string {
	return "Инновационные решения от " + strings.TrimSpace(name)
}

// ParseNames splits decoded text into trimmed, non-empty lines in order.
func ParseNames(text string) []string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names
}

const quoteChars = "\"'«»“”„`"

// CleanSlogan trims whitespace and strips one leading and one trailing quote.
func CleanSlogan(text string) string {
	text = strings.TrimSpace(text)
	if r, size := utf8.DecodeRuneInString(text); size > 0 && strings.ContainsRune(quoteChars, r) {
		text = text[size:]
	}
	if r, size := utf8.DecodeLastRuneInString(text); size > 0 && strings.ContainsRune(quoteChars, r) {
		text = text[:len(text)-size]
	}
	return strings.TrimSpace(text)
}

// run submits one job, waits for it and decodes the finished payload as kind.
func (s *Service) run(ctx context.Context, model string, payload any, poll PollOptions, kind ResultKind) (Result, error) {
	sub, err := s.provider.Submit(ctx, model, payload)
	if err != nil {
		return Result{}, err
	}
	if sub == nil || strings.TrimSpace(sub.RequestID) == "" {
		return Result{}, fmt.Errorf("model %s: %w", model, ErrSubmissionFailure)
	}
	s.logger.Debug().
		Str("model", model).
		Str("request_id", sub.RequestID).
		Int("max_attempts", poll.MaxAttempts).
		Dur("interval", poll.Interval).
		Msg("generation: awaiting job")
	raw, err := s.poller.Await(ctx, sub.RequestID, poll)
	if err != nil {
		return Result{}, err
	}
	return Decode(kind, raw)
}

func (s *Service) textBody(prompt string, cfg textPrompt) textPayload {
	return textPayload{
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
}

func (s *Service) observe(kind string, start time.Time, errp *error) {
	outcome := "ok"
	if errp != nil && *errp != nil {
		outcome = "error"
	}
	metrics.GenerationRequests.WithLabelValues(kind, outcome).Inc()
	metrics.GenerationDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func pollOrDefault(opts, fallback PollOptions) PollOptions {
	if opts.MaxAttempts <= 0 {
		return fallback
	}
	if opts.Interval < 0 {
		opts.Interval = 0
	}
	return opts
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
