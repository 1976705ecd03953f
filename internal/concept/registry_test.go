package concept

import (
	"errors"
	"testing"
)

func TestDefaultLanguages(t *testing.T) {
	langs := Default().SupportedLanguages()
	if len(langs) != 12 {
		t.Fatalf("expected 12 supported languages, got %d: %v", len(langs), langs)
	}
	for _, want := range []string{"en", "fr", "es", "de", "it", "pt", "hi", "bn", "ta", "ar", "zh", "ja"} {
		if !Default().IsSupported(want) {
			t.Errorf("language %q not supported", want)
		}
	}
}

func TestKeywordFor(t *testing.T) {
	tests := []struct {
		id   ID
		lang string
		want string
	}{
		{CondIf, "en", "if"},
		{CondElse, "en", "else"},
		{FuncDef, "en", "def"},
		{Return, "en", "return"},
		{Print, "en", "print"},
		{CondIf, "fr", "si"},
		{CondElse, "fr", "sinon"},
		{LoopWhile, "fr", "tantque"},
		{FuncDef, "fr", "déf"},
		{Print, "fr", "afficher"},
		{CondIf, "hi", "अगर"},
		{CondElse, "hi", "वरना"},
		{LoopWhile, "hi", "जबतक"},
		{Return, "hi", "वापसी"},
		{CondIf, "ar", "إذا"},
		{FuncDef, "ar", "دالة"},
		{Return, "ar", "إرجاع"},
		{CondIf, "zh", "如果"},
		{FuncDef, "zh", "函数"},
		{Return, "zh", "返回"},
		{CondIf, "ja", "もし"},
		{FuncDef, "ja", "関数"},
		{ClassDef, "ja", "クラス"},
		{CondIf, "it", "se"},
		{LoopFor, "it", "per"},
		{Print, "it", "stampa"},
		{CondIf, "pt", "se"},
		{LoopWhile, "pt", "enquanto"},
		{Print, "pt", "imprimir"},
	}
	for _, tt := range tests {
		got, err := Default().KeywordFor(tt.id, tt.lang)
		if err != nil {
			t.Errorf("KeywordFor(%s, %s): %v", tt.id, tt.lang, err)
			continue
		}
		if got != tt.want {
			t.Errorf("KeywordFor(%s, %s) = %q, want %q", tt.id, tt.lang, got, tt.want)
		}
	}
}

func TestConceptFor(t *testing.T) {
	tests := []struct {
		word string
		lang string
		want ID
	}{
		{"if", "en", CondIf},
		{"while", "en", LoopWhile},
		{"def", "en", FuncDef},
		{"si", "fr", CondIf},
		{"tantque", "fr", LoopWhile},
		{"afficher", "fr", Print},
		{"sinon si", "fr", CondElif},
		{"अगर", "hi", CondIf},
		{"जबतक", "hi", LoopWhile},
	}
	for _, tt := range tests {
		got, err := Default().ConceptFor(tt.word, tt.lang)
		if err != nil {
			t.Errorf("ConceptFor(%q, %s): %v", tt.word, tt.lang, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ConceptFor(%q, %s) = %s, want %s", tt.word, tt.lang, got, tt.want)
		}
	}
}

func TestAliasesResolveToCanonicalConcept(t *testing.T) {
	for _, word := range []string{"chaine", "chaîne"} {
		id, err := Default().ConceptFor(word, "fr")
		if err != nil {
			t.Fatalf("ConceptFor(%q, fr): %v", word, err)
		}
		if id != TypeStr {
			t.Errorf("ConceptFor(%q, fr) = %s, want %s", word, id, TypeStr)
		}
	}
	canonical, err := Default().KeywordFor(TypeStr, "fr")
	if err != nil {
		t.Fatalf("KeywordFor(TYPE_STR, fr): %v", err)
	}
	if canonical != "chaine" {
		t.Errorf("canonical spelling = %q, want %q", canonical, "chaine")
	}
}

func TestIsKeyword(t *testing.T) {
	reg := Default()
	if !reg.IsKeyword("if", "en") || !reg.IsKeyword("si", "fr") || !reg.IsKeyword("अगर", "hi") {
		t.Error("expected reserved spellings to be recognized")
	}
	if reg.IsKeyword("hello", "en") || reg.IsKeyword("bonjour", "fr") {
		t.Error("expected ordinary words to not be keywords")
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  string
		ok    bool
	}{
		{"english", []string{"if", "else", "while", "def"}, "en", true},
		{"french", []string{"si", "sinon", "tantque", "déf"}, "fr", true},
		{"hindi", []string{"अगर", "वरना", "जबतक"}, "hi", true},
		{"no match", []string{"foo", "bar", "baz"}, "", false},
		{"tie breaks to declaration order", []string{"si"}, "fr", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Default().DetectLanguage(tt.words)
			if ok != tt.ok || got != tt.want {
				t.Errorf("DetectLanguage(%v) = (%q, %v), want (%q, %v)",
					tt.words, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAllKeywords(t *testing.T) {
	kws, err := Default().AllKeywords("en")
	if err != nil {
		t.Fatal(err)
	}
	if kws[CondIf] != "if" {
		t.Errorf("AllKeywords(en)[COND_IF] = %q, want %q", kws[CondIf], "if")
	}
	if kws[Print] != "print" {
		t.Errorf("AllKeywords(en)[PRINT] = %q, want %q", kws[Print], "print")
	}
}

func TestConceptInventory(t *testing.T) {
	ids := Default().Concepts()
	if len(ids) != 47 {
		t.Fatalf("expected 47 concepts, got %d", len(ids))
	}
	seen := make(map[ID]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	for _, want := range []ID{CondIf, FuncDef, Print, Return, TypeDict, Await} {
		if !seen[want] {
			t.Errorf("concept %s missing from inventory", want)
		}
	}
	if got := CondIf.Category(); got != "control_flow" {
		t.Errorf("COND_IF category = %q, want %q", got, "control_flow")
	}
}

func TestLookupErrors(t *testing.T) {
	reg := Default()

	_, err := reg.KeywordFor("NONEXISTENT", "en")
	var unknownConcept *UnknownConceptError
	if !errors.As(err, &unknownConcept) {
		t.Errorf("KeywordFor(NONEXISTENT, en) = %v, want UnknownConceptError", err)
	}

	_, err = reg.ConceptFor("nonexistent_keyword", "en")
	var unknownKeyword *UnknownKeywordError
	if !errors.As(err, &unknownKeyword) {
		t.Errorf("ConceptFor(nonexistent_keyword, en) = %v, want UnknownKeywordError", err)
	}

	var unsupported *UnsupportedLanguageError
	if _, err = reg.KeywordFor(CondIf, "xx"); !errors.As(err, &unsupported) {
		t.Errorf("KeywordFor(COND_IF, xx) = %v, want UnsupportedLanguageError", err)
	}
	if _, err = reg.AllKeywords("xx"); !errors.As(err, &unsupported) {
		t.Errorf("AllKeywords(xx) = %v, want UnsupportedLanguageError", err)
	}
}

func TestValidateCompletenessAllLanguages(t *testing.T) {
	reg := Default()
	for _, lang := range reg.SupportedLanguages() {
		missing, err := reg.ValidateCompleteness(lang)
		if err != nil {
			t.Fatalf("ValidateCompleteness(%s): %v", lang, err)
		}
		if len(missing) != 0 {
			t.Errorf("language %q is missing concepts: %v", lang, missing)
		}
	}
}

func TestValidateAmbiguity(t *testing.T) {
	reg := Default()
	for _, lang := range reg.SupportedLanguages() {
		ambiguous, err := reg.ValidateAmbiguity(lang)
		if err != nil {
			t.Fatalf("ValidateAmbiguity(%s): %v", lang, err)
		}
		for word, ids := range ambiguous {
			if len(ids) < 2 {
				t.Errorf("language %q: %q reported ambiguous with %d concept", lang, word, len(ids))
			}
		}
	}
}

func TestMaxPhraseWords(t *testing.T) {
	reg := Default()
	if got := reg.MaxPhraseWords("en"); got != 1 {
		t.Errorf("MaxPhraseWords(en) = %d, want 1", got)
	}
	if got := reg.MaxPhraseWords("fr"); got < 2 {
		t.Errorf("MaxPhraseWords(fr) = %d, want at least 2", got)
	}
}

func TestLoadRejectsMalformedConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", ":\n -"},
		{"missing languages", "concepts:\n  control_flow:\n    COND_IF:\n      en: if\n"},
		{"undeclared language", "languages: [en]\nconcepts:\n  control_flow:\n    COND_IF:\n      fr: si\n"},
		{"duplicate language", "languages: [en, en]\nconcepts: {}\n"},
		{"empty spelling list", "languages: [en]\nconcepts:\n  control_flow:\n    COND_IF:\n      en: []\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.yaml))
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("Load = %v, want ConfigError", err)
			}
		})
	}
}
