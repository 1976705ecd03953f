package lexer

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/usmlang/usm/internal/concept"
)

//go:embed operators.yaml
var operatorsYAML []byte

// opTable is the compiled operator/delimiter inventory: multi-rune
// operators sorted longest-first, single-rune sets, and the Unicode
// alternate -> canonical ASCII folds.
type opTable struct {
	multi         []string
	singleOps     map[rune]bool
	opAlternates  map[rune]string
	delims        map[rune]bool
	dlmAlternates map[rune]string
}

var (
	opsOnce sync.Once
	ops     *opTable
)

func operatorTable() *opTable {
	opsOnce.Do(func() {
		t, err := loadOperatorTable(operatorsYAML)
		if err != nil {
			panic(fmt.Sprintf("lexer: embedded operators.yaml: %v", err))
		}
		ops = t
	})
	return ops
}

func loadOperatorTable(data []byte) (*opTable, error) {
	var raw struct {
		Operators struct {
			Multi      []string          `yaml:"multi"`
			Single     string            `yaml:"single"`
			Alternates map[string]string `yaml:"alternates"`
		} `yaml:"operators"`
		Delimiters struct {
			Single     string            `yaml:"single"`
			Alternates map[string]string `yaml:"alternates"`
		} `yaml:"delimiters"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &concept.ConfigError{Resource: "operators", Msg: err.Error()}
	}
	if len(raw.Operators.Single) == 0 || len(raw.Delimiters.Single) == 0 {
		return nil, &concept.ConfigError{Resource: "operators", Msg: "missing operator or delimiter inventory"}
	}

	t := &opTable{
		multi:         append([]string(nil), raw.Operators.Multi...),
		singleOps:     make(map[rune]bool),
		opAlternates:  make(map[rune]string),
		delims:        make(map[rune]bool),
		dlmAlternates: make(map[rune]string),
	}
	sort.SliceStable(t.multi, func(i, j int) bool { return len(t.multi[i]) > len(t.multi[j]) })
	for _, ch := range raw.Operators.Single {
		t.singleOps[ch] = true
	}
	for _, ch := range raw.Delimiters.Single {
		t.delims[ch] = true
	}
	if err := foldAlternates(raw.Operators.Alternates, t.opAlternates); err != nil {
		return nil, err
	}
	if err := foldAlternates(raw.Delimiters.Alternates, t.dlmAlternates); err != nil {
		return nil, err
	}
	return t, nil
}

func foldAlternates(raw map[string]string, into map[rune]string) error {
	for alt, canonical := range raw {
		runes := []rune(alt)
		if len(runes) != 1 {
			return &concept.ConfigError{
				Resource: "operators",
				Msg:      fmt.Sprintf("alternate %q must be a single rune", alt),
			}
		}
		into[runes[0]] = canonical
	}
	return nil
}

// stringPairs maps each opening quote to its closing counterpart. ASCII
// quotes also come in triple-quoted form; the smart and CJK pairs close on
// their distinct counterpart only.
var stringPairs = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'「':  '」',
	'«':  '»',
	'“':  '”',
	'‘':  '’',
}

// Date literals are bracketed by lenticular marks.
const (
	dateOpen  = '〔'
	dateClose = '〕'
)
