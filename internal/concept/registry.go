package concept

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var keywordsYAML []byte

// Registry holds the loaded keyword ontology: the supported languages in
// declaration order, the concept -> language -> spellings table, and the
// reverse spelling -> concepts index per language.
//
// A Registry is immutable after Load returns and safe for concurrent use.
type Registry struct {
	languages  []string
	langSet    map[string]bool
	order      []ID
	concepts   map[ID]map[string][]string
	categories map[ID]string
	reverse    map[string]map[string][]ID
	maxWords   map[string]int
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry loaded from the embedded
// keywords.yaml. The load happens once; a malformed embedded resource is a
// build defect and panics.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Load(keywordsYAML)
		if err != nil {
			panic(fmt.Sprintf("concept: embedded keywords.yaml: %v", err))
		}
		defaultReg = r
	})
	return defaultReg
}

// Load parses a keyword ontology from YAML and builds the lookup indexes.
// The document must declare a non-empty languages list; every spelling entry
// must name a declared language. Violations return a *ConfigError.
func Load(data []byte) (*Registry, error) {
	var raw struct {
		Languages []string  `yaml:"languages"`
		Concepts  yaml.Node `yaml:"concepts"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Resource: "keywords", Msg: err.Error()}
	}
	if len(raw.Languages) == 0 {
		return nil, &ConfigError{Resource: "keywords", Msg: "missing languages list"}
	}

	r := &Registry{
		languages:  raw.Languages,
		langSet:    make(map[string]bool, len(raw.Languages)),
		concepts:   make(map[ID]map[string][]string),
		categories: make(map[ID]string),
		reverse:    make(map[string]map[string][]ID),
		maxWords:   make(map[string]int),
	}
	for _, lang := range raw.Languages {
		if r.langSet[lang] {
			return nil, &ConfigError{Resource: "keywords", Msg: "duplicate language: " + lang}
		}
		r.langSet[lang] = true
		r.reverse[lang] = make(map[string][]ID)
		r.maxWords[lang] = 1
	}

	if raw.Concepts.Kind != yaml.MappingNode {
		return nil, &ConfigError{Resource: "keywords", Msg: "concepts must be a mapping of categories"}
	}
	// Walk the document in declaration order so Concepts() is stable.
	for i := 0; i < len(raw.Concepts.Content); i += 2 {
		category := raw.Concepts.Content[i].Value
		catNode := raw.Concepts.Content[i+1]
		if catNode.Kind != yaml.MappingNode {
			return nil, &ConfigError{Resource: "keywords", Msg: "category " + category + " must be a mapping"}
		}
		for j := 0; j < len(catNode.Content); j += 2 {
			id := ID(catNode.Content[j].Value)
			if _, dup := r.concepts[id]; dup {
				return nil, &ConfigError{Resource: "keywords", Msg: "duplicate concept: " + string(id)}
			}
			byLang, err := r.decodeSpellings(id, catNode.Content[j+1])
			if err != nil {
				return nil, err
			}
			r.order = append(r.order, id)
			r.concepts[id] = byLang
			r.categories[id] = category
		}
	}
	return r, nil
}

func (r *Registry) decodeSpellings(id ID, node *yaml.Node) (map[string][]string, error) {
	if node.Kind != yaml.MappingNode {
		return nil, &ConfigError{Resource: "keywords", Msg: "concept " + string(id) + " must map languages to spellings"}
	}
	byLang := make(map[string][]string, len(node.Content)/2)
	for i := 0; i < len(node.Content); i += 2 {
		lang := node.Content[i].Value
		if !r.langSet[lang] {
			return nil, &ConfigError{
				Resource: "keywords",
				Msg:      fmt.Sprintf("concept %s: undeclared language %q", id, lang),
			}
		}
		var forms []string
		val := node.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			forms = []string{val.Value}
		case yaml.SequenceNode:
			if err := val.Decode(&forms); err != nil {
				return nil, &ConfigError{Resource: "keywords", Msg: err.Error()}
			}
		default:
			return nil, &ConfigError{
				Resource: "keywords",
				Msg:      fmt.Sprintf("concept %s, language %s: spelling must be a string or list", id, lang),
			}
		}
		if len(forms) == 0 {
			return nil, &ConfigError{
				Resource: "keywords",
				Msg:      fmt.Sprintf("concept %s, language %s: empty spelling list", id, lang),
			}
		}
		for _, form := range forms {
			r.reverse[lang][form] = append(r.reverse[lang][form], id)
			if n := 1 + strings.Count(form, " "); n > r.maxWords[lang] {
				r.maxWords[lang] = n
			}
		}
		byLang[lang] = forms
	}
	return byLang, nil
}

// SupportedLanguages returns the language codes in declaration order.
func (r *Registry) SupportedLanguages() []string {
	out := make([]string, len(r.languages))
	copy(out, r.languages)
	return out
}

// IsSupported reports whether lang is a declared language code.
func (r *Registry) IsSupported(lang string) bool {
	return r.langSet[lang]
}

// Concepts returns every concept ID in declaration order.
func (r *Registry) Concepts() []ID {
	out := make([]ID, len(r.order))
	copy(out, r.order)
	return out
}

// KeywordFor returns the canonical spelling of a concept in the given
// language. Aliases are never returned; they only resolve in reverse.
func (r *Registry) KeywordFor(id ID, lang string) (string, error) {
	if !r.langSet[lang] {
		return "", &UnsupportedLanguageError{Language: lang}
	}
	byLang, ok := r.concepts[id]
	if !ok {
		return "", &UnknownConceptError{Concept: id}
	}
	forms, ok := byLang[lang]
	if !ok {
		return "", &UnknownKeywordError{Word: string(id), Language: lang}
	}
	return forms[0], nil
}

// ConceptFor resolves a spelling (canonical or alias) to its concept in the
// given language. When a spelling is bound to more than one concept, the
// first binding in declaration order wins; ambiguity is reported by
// ValidateAmbiguity, not by lookup.
func (r *Registry) ConceptFor(word, lang string) (ID, error) {
	if !r.langSet[lang] {
		return "", &UnsupportedLanguageError{Language: lang}
	}
	if ids := r.reverse[lang][word]; len(ids) > 0 {
		return ids[0], nil
	}
	return "", &UnknownKeywordError{Word: word, Language: lang}
}

// IsKeyword reports whether word is a reserved spelling in lang.
func (r *Registry) IsKeyword(word, lang string) bool {
	return len(r.reverse[lang][word]) > 0
}

// AllKeywords returns the concept -> canonical spelling table for one
// language.
func (r *Registry) AllKeywords(lang string) (map[ID]string, error) {
	if !r.langSet[lang] {
		return nil, &UnsupportedLanguageError{Language: lang}
	}
	out := make(map[ID]string, len(r.order))
	for id, byLang := range r.concepts {
		if forms, ok := byLang[lang]; ok {
			out[id] = forms[0]
		}
	}
	return out, nil
}

// MaxPhraseWords returns the longest spelling of the language measured in
// space-separated words. The lexer uses it to bound phrase extension.
func (r *Registry) MaxPhraseWords(lang string) int {
	if n, ok := r.maxWords[lang]; ok {
		return n
	}
	return 1
}

// DetectLanguage scores each supported language by how many of the given
// words are reserved spellings in it and returns the best-scoring language.
// Ties break toward earlier declaration order. ok is false when no word is
// a keyword anywhere.
func (r *Registry) DetectLanguage(words []string) (lang string, ok bool) {
	best := 0
	for _, candidate := range r.languages {
		score := 0
		for _, w := range words {
			if r.IsKeyword(w, candidate) {
				score++
			}
		}
		if score > best {
			best, lang = score, candidate
		}
	}
	return lang, best > 0
}
