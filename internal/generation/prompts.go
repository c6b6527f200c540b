package generation

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPromptsYAML []byte

type textPrompt struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	Template    string  `yaml:"template"`
}

type imagePrompt struct {
	Size     string `yaml:"size"`
	Quality  string `yaml:"quality"`
	Template string `yaml:"template"`
}

// Prompts holds the templates used by the requesters.
type Prompts struct {
	Names  textPrompt  `yaml:"names"`
	Logo   imagePrompt `yaml:"logo"`
	Slogan textPrompt  `yaml:"slogan"`

	names  *template.Template
	logo   *template.Template
	slogan *template.Template
}

// ParsePrompts decodes a YAML prompt set and compiles its templates.
func ParsePrompts(data []byte) (*Prompts, error) {
	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("prompts: decode yaml: %w", err)
	}
	var err error
	if p.names, err = compile("names", p.Names.Template); err != nil {
		return nil, err
	}
	if p.logo, err = compile("logo", p.Logo.Template); err != nil {
		return nil, err
	}
	if p.slogan, err = compile("slogan", p.Slogan.Template); err != nil {
		return nil, err
	}
	return &p, nil
}

// DefaultPrompts returns the embedded prompt set.
func DefaultPrompts() *Prompts {
	p, err := ParsePrompts(defaultPromptsYAML)
	if err != nil {
		panic(err)
	}
	return p
}

func compile(name, text string) (*template.Template, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("prompts: %s template is empty", name)
	}
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("prompts: parse %s template: %w", name, err)
	}
	return tmpl, nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("prompts: render %s: %w", tmpl.Name(), err)
	}
	return strings.TrimSpace(b.String()), nil
}
