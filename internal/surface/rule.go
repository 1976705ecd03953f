// Package surface rewrites token streams whose word order follows the
// source language's grammar into the canonical statement order the parser
// expects. Rules are declarative data, validated at load time; languages
// without rules pass through untouched.
package surface

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/usmlang/usm/internal/concept"
)

//go:embed patterns.yaml
var patternsYAML []byte

type matcherKind int

const (
	// matchLiteral matches one word token by its exact spelling.
	matchLiteral matcherKind = iota
	// matchDelimiter matches one delimiter by canonical value.
	matchDelimiter
	// matchKeyword matches one keyword token by concept.
	matchKeyword
	// matchIdentifier matches one identifier and captures it into a slot.
	matchIdentifier
	// matchExpr captures a balanced token run into a slot, up to the point
	// where the next matcher applies (or the statement ends).
	matchExpr
)

type outputKind int

const (
	emitKeyword outputKind = iota
	emitDelimiter
	emitIdentifierSlot
	emitExprSlot
)

type matcher struct {
	kind    matcherKind
	value   string
	concept concept.ID
	slot    string
}

type output struct {
	kind    outputKind
	value   string
	concept concept.ID
	slot    string
}

// rule is one compiled surface pattern: every reference it carries
// (concepts, slots, template names) was resolved during Load.
type rule struct {
	name    string
	lang    string
	pattern []matcher
	out     []output
}

// Normalizer applies the compiled rules of one configuration. Immutable
// after Load, safe for concurrent use.
type Normalizer struct {
	registry *concept.Registry
	byLang   map[string][]rule
}

var (
	defaultOnce sync.Once
	defaultNorm *Normalizer
)

// Default returns the process-wide normalizer loaded from the embedded
// patterns.yaml.
func Default() *Normalizer {
	defaultOnce.Do(func() {
		n, err := Load(patternsYAML)
		if err != nil {
			panic(fmt.Sprintf("surface: embedded patterns.yaml: %v", err))
		}
		defaultNorm = n
	})
	return defaultNorm
}

type rawStep struct {
	Kind    string `yaml:"kind"`
	Value   string `yaml:"value"`
	Concept string `yaml:"concept"`
	Slot    string `yaml:"slot"`
}

type rawPattern struct {
	Name              string    `yaml:"name"`
	Language          string    `yaml:"language"`
	Pattern           []rawStep `yaml:"pattern"`
	NormalizeTo       []rawStep `yaml:"normalize_to"`
	NormalizeTemplate string    `yaml:"normalize_template"`
}

// Load parses and validates a surface pattern configuration. Every schema
// violation is a *concept.ConfigError naming the offending rule, so a bad
// pack fails before any source is processed.
func Load(data []byte) (*Normalizer, error) {
	var raw struct {
		Templates map[string][]rawStep `yaml:"templates"`
		Patterns  []rawPattern         `yaml:"patterns"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, cfgErr(err.Error())
	}
	if raw.Patterns == nil {
		return nil, cfgErr("missing patterns list")
	}

	reg := concept.Default()
	n := &Normalizer{registry: reg, byLang: make(map[string][]rule)}
	for _, rp := range raw.Patterns {
		r, err := compileRule(reg, rp, raw.Templates)
		if err != nil {
			return nil, err
		}
		n.byLang[r.lang] = append(n.byLang[r.lang], r)
	}
	return n, nil
}

func compileRule(reg *concept.Registry, rp rawPattern, templates map[string][]rawStep) (rule, error) {
	if rp.Name == "" {
		return rule{}, cfgErr("pattern without a name")
	}
	if !reg.IsSupported(rp.Language) {
		return rule{}, cfgErr(fmt.Sprintf("pattern %s: unsupported language %q", rp.Name, rp.Language))
	}
	if len(rp.Pattern) == 0 {
		return rule{}, cfgErr(fmt.Sprintf("pattern %s: empty pattern", rp.Name))
	}

	r := rule{name: rp.Name, lang: rp.Language}
	slots := make(map[string]matcherKind)
	for i, step := range rp.Pattern {
		m, err := compileMatcher(rp.Name, step)
		if err != nil {
			return rule{}, err
		}
		if m.slot != "" {
			if _, dup := slots[m.slot]; dup {
				return rule{}, cfgErr(fmt.Sprintf("pattern %s: duplicate slot %q", rp.Name, m.slot))
			}
			slots[m.slot] = m.kind
		}
		if m.kind == matchExpr && i > 0 && r.pattern[i-1].kind == matchExpr {
			return rule{}, cfgErr(fmt.Sprintf("pattern %s: adjacent expr captures are ambiguous", rp.Name))
		}
		r.pattern = append(r.pattern, m)
	}

	outSteps := rp.NormalizeTo
	switch {
	case rp.NormalizeTemplate != "" && len(rp.NormalizeTo) > 0:
		return rule{}, cfgErr(fmt.Sprintf("pattern %s: both normalize_template and normalize_to", rp.Name))
	case rp.NormalizeTemplate != "":
		tmpl, ok := templates[rp.NormalizeTemplate]
		if !ok {
			return rule{}, cfgErr(fmt.Sprintf("pattern %s: unknown template %q", rp.Name, rp.NormalizeTemplate))
		}
		outSteps = tmpl
	case len(rp.NormalizeTo) == 0:
		return rule{}, cfgErr(fmt.Sprintf("pattern %s: no normalized output", rp.Name))
	}

	for _, step := range outSteps {
		o, err := compileOutput(rp.Name, step, slots)
		if err != nil {
			return rule{}, err
		}
		r.out = append(r.out, o)
	}
	return r, nil
}

func compileMatcher(name string, step rawStep) (matcher, error) {
	switch step.Kind {
	case "literal":
		if step.Value == "" {
			return matcher{}, cfgErr(fmt.Sprintf("pattern %s: literal matcher needs a value", name))
		}
		return matcher{kind: matchLiteral, value: step.Value}, nil
	case "delimiter":
		if step.Value == "" {
			return matcher{}, cfgErr(fmt.Sprintf("pattern %s: delimiter matcher needs a value", name))
		}
		return matcher{kind: matchDelimiter, value: step.Value}, nil
	case "keyword":
		id := concept.ID(step.Concept)
		if !id.IsValid() {
			return matcher{}, cfgErr(fmt.Sprintf("pattern %s: unknown concept %q", name, step.Concept))
		}
		return matcher{kind: matchKeyword, concept: id}, nil
	case "identifier":
		if step.Slot == "" {
			return matcher{}, cfgErr(fmt.Sprintf("pattern %s: identifier matcher needs a slot", name))
		}
		return matcher{kind: matchIdentifier, slot: step.Slot}, nil
	case "expr":
		if step.Slot == "" {
			return matcher{}, cfgErr(fmt.Sprintf("pattern %s: expr matcher needs a slot", name))
		}
		return matcher{kind: matchExpr, slot: step.Slot}, nil
	default:
		return matcher{}, cfgErr(fmt.Sprintf("pattern %s: unknown matcher kind %q", name, step.Kind))
	}
}

func compileOutput(name string, step rawStep, slots map[string]matcherKind) (output, error) {
	switch step.Kind {
	case "keyword":
		id := concept.ID(step.Concept)
		if !id.IsValid() {
			return output{}, cfgErr(fmt.Sprintf("pattern %s: unknown output concept %q", name, step.Concept))
		}
		return output{kind: emitKeyword, concept: id}, nil
	case "delimiter":
		if step.Value == "" {
			return output{}, cfgErr(fmt.Sprintf("pattern %s: delimiter output needs a value", name))
		}
		return output{kind: emitDelimiter, value: step.Value}, nil
	case "identifier_slot":
		if slots[step.Slot] != matchIdentifier {
			return output{}, cfgErr(fmt.Sprintf("pattern %s: identifier_slot %q has no identifier capture", name, step.Slot))
		}
		return output{kind: emitIdentifierSlot, slot: step.Slot}, nil
	case "expr_slot":
		if slots[step.Slot] != matchExpr {
			return output{}, cfgErr(fmt.Sprintf("pattern %s: expr_slot %q has no expr capture", name, step.Slot))
		}
		return output{kind: emitExprSlot, slot: step.Slot}, nil
	default:
		return output{}, cfgErr(fmt.Sprintf("pattern %s: unknown output kind %q", name, step.Kind))
	}
}

func cfgErr(msg string) error {
	return &concept.ConfigError{Resource: "surface patterns", Msg: msg}
}
