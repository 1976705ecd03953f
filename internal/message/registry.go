// Package message renders diagnostic messages in the reader's language.
//
// Templates live in messages.yaml, keyed by a stable message id and a
// language code. The pipeline reports diagnostics as (id, args, position)
// and defers rendering to this package, so the same diagnostic can be shown
// in any supported language. English is the fallback for untranslated keys.
package message

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var messagesYAML []byte

// FallbackLanguage is used when a key has no template in the requested
// language.
const FallbackLanguage = "en"

// Args carries the placeholder values of one diagnostic.
type Args map[string]any

// Registry holds the loaded message templates. Immutable after Load,
// safe for concurrent use.
type Registry struct {
	templates map[string]map[string]string
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry loaded from the embedded
// messages.yaml.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Load(messagesYAML)
		if err != nil {
			panic(fmt.Sprintf("message: embedded messages.yaml: %v", err))
		}
		defaultReg = r
	})
	return defaultReg
}

// Load parses a message catalogue from YAML. Every key must carry an
// English template, because English is the rendering fallback.
func Load(data []byte) (*Registry, error) {
	var raw struct {
		Messages map[string]map[string]string `yaml:"messages"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid message catalogue: %w", err)
	}
	for key, byLang := range raw.Messages {
		if _, ok := byLang[FallbackLanguage]; !ok {
			return nil, fmt.Errorf("invalid message catalogue: key %s has no %s template", key, FallbackLanguage)
		}
	}
	return &Registry{templates: raw.Messages}, nil
}

// Has reports whether key exists in the catalogue.
func (r *Registry) Has(key string) bool {
	_, ok := r.templates[key]
	return ok
}

// Format renders the template for key in lang, substituting {placeholder}
// occurrences from args. Unknown languages and untranslated keys fall back
// to English; an unknown key renders as the key itself so the diagnostic is
// never silently lost.
func (r *Registry) Format(key, lang string, args Args) string {
	byLang, ok := r.templates[key]
	if !ok {
		return key
	}
	tmpl, ok := byLang[lang]
	if !ok {
		tmpl = byLang[FallbackLanguage]
	}
	if len(args) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(args))
	for name, value := range args {
		pairs = append(pairs, "{"+name+"}", fmt.Sprint(value))
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
