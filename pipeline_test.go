package usm

import (
	"strings"
	"testing"

	"github.com/usmlang/usm/internal/parser/ast"
)

// The same loop in subject-first English, keyword-translated Chinese, and
// postpositional Japanese must compile to one tree. The Japanese form
// exercises the surface normalizer, not just keyword translation.
func TestCompileEquivalenceAcrossLanguages(t *testing.T) {
	en := strings.Join([]string{
		"for i in data:",
		"    if i > 2:",
		"        print(i)",
		"",
	}, "\n")
	zh := strings.Join([]string{
		"对于 i 在 data:",
		"    如果 i > 2:",
		"        打印(i)",
		"",
	}, "\n")
	ja := strings.Join([]string{
		"data 内の 各 i に対して:",
		"    もし i > 2:",
		"        表示(i)",
		"",
	}, "\n")

	enResult, err := Compile(en, "en")
	if err != nil {
		t.Fatalf("Compile(en): %v", err)
	}
	want := ast.Sprint(enResult.Program)

	for _, tc := range []struct {
		lang   string
		source string
	}{
		{"zh", zh},
		{"ja", ja},
	} {
		result, err := Compile(tc.source, tc.lang)
		if err != nil {
			t.Fatalf("Compile(%s): %v", tc.lang, err)
		}
		if got := ast.Sprint(result.Program); got != want {
			t.Errorf("%s tree differs:\ngot:\n%s\nwant:\n%s", tc.lang, got, want)
		}
		if result.Language != tc.lang {
			t.Errorf("resolved language = %s, want %s", result.Language, tc.lang)
		}
	}
}

func TestCompileDetectsLanguage(t *testing.T) {
	result, err := Compile("soit x = 1\nsi x > 0:\n    afficher(x)\n", "")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if result.Language != "fr" {
		t.Errorf("detected language = %s, want fr", result.Language)
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics, got %v", result.Diagnostics)
	}
}

func TestCompileRecognizesKeywordsFromAnyLanguage(t *testing.T) {
	// Keyword recognition is per word, not per stream: a French afficher
	// call compiles even when the surrounding keywords are English.
	result, err := Compile("x = 1\nif x > 5:\n    afficher(x)\n", "")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(result.Diagnostics) != 0 {
		t.Errorf("expected no diagnostics, got %v", result.Diagnostics)
	}
}

func TestCompileReportsSemanticFindings(t *testing.T) {
	result, err := Compile("break\n", "en")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Key != "BREAK_OUTSIDE_LOOP" {
		t.Errorf("diagnostics = %v, want one BREAK_OUTSIDE_LOOP", result.Diagnostics)
	}

	ok, err := Check("break\n", "en")
	if err != nil || ok {
		t.Errorf("Check = (%t, %v), want (false, nil)", ok, err)
	}
	ok, err = Check("x = 1\nprint(x)\n", "en")
	if err != nil || !ok {
		t.Errorf("Check = (%t, %v), want (true, nil)", ok, err)
	}
}

func TestCompileSurfacesSyntaxErrors(t *testing.T) {
	if _, err := Compile("if x\n    pass\n", "en"); err == nil {
		t.Error("expected a syntax error for a missing colon")
	}
	if _, err := Compile("\"unterminated\n", "en"); err == nil {
		t.Error("expected a lexical error for an unterminated string")
	}
}
