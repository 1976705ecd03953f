package semantic

import (
	"strings"
	"testing"

	"github.com/usmlang/usm/internal/concept"
	"github.com/usmlang/usm/internal/lexer"
	"github.com/usmlang/usm/internal/parser"
)

func analyze(t *testing.T, source string) []Diagnostic {
	t.Helper()
	tokens, lang, err := lexer.Tokenize(source, "en")
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", source, err)
	}
	program, err := parser.Parse(tokens, lang)
	if err != nil {
		t.Fatalf("Parse(%q): %v", source, err)
	}
	return Analyze(program)
}

func keys(diags []Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Key
	}
	return out
}

func TestValidProgramIsClean(t *testing.T) {
	source := strings.Join([]string{
		"let total = 0",
		"const limit = 10",
		"def add(a, b=1):",
		"    return a + b",
		"",
		"for x in range(limit):",
		"    if x > 5:",
		"        break",
		"    total += add(x)",
		"print(total)",
		"",
	}, "\n")
	if diags := analyze(t, source); len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", diags)
	}
}

func TestControlFlowPlacement(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"break at top level", "break\n", []string{"BREAK_OUTSIDE_LOOP"}},
		{"continue at top level", "continue\n", []string{"CONTINUE_OUTSIDE_LOOP"}},
		{"return at top level", "return 1\n", []string{"RETURN_OUTSIDE_FUNCTION"}},
		{"yield at top level", "yield 1\n", []string{"YIELD_OUTSIDE_FUNCTION"}},
		{
			"await in sync function",
			"def f(x):\n    return await x\n",
			[]string{"AWAIT_OUTSIDE_ASYNC"},
		},
		{
			"await in async function",
			"async def f(x):\n    return await x\n",
			nil,
		},
		{
			"break does not escape a function",
			"while True:\n    def f():\n        break\n",
			[]string{"BREAK_OUTSIDE_LOOP"},
		},
		{
			"break inside nested loop",
			"while True:\n    for x in range(3):\n        break\n",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keys(analyze(t, tt.source))
			if len(got) != len(tt.want) {
				t.Fatalf("diagnostics = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("diagnostic %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNameResolution(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"undefined read", "print(missing)\n", []string{"UNDEFINED_NAME"}},
		{"plain assignment binds", "x = 1\nprint(x)\n", nil},
		{
			"augmented assignment needs a binding",
			"x += 1\n",
			[]string{"UNDEFINED_NAME"},
		},
		{
			"const reassignment",
			"const limit = 10\nlimit = 20\n",
			[]string{"CONST_REASSIGNMENT"},
		},
		{
			"duplicate declaration in one scope",
			"let x = 1\nlet x = 2\n",
			[]string{"DUPLICATE_DEFINITION"},
		},
		{
			"shadowing in a nested scope is fine",
			"let x = 1\ndef f(x):\n    return x\n",
			nil,
		},
		{
			"duplicate parameter",
			"def f(a, a):\n    return a\n",
			[]string{"DUPLICATE_DEFINITION"},
		},
		{
			"function locals stay local",
			"def f():\n    inner = 1\n    return inner\nprint(inner)\n",
			[]string{"UNDEFINED_NAME"},
		},
		{
			"comprehension target does not leak",
			"ys = [x * x for x in range(3)]\nprint(x)\n",
			[]string{"UNDEFINED_NAME"},
		},
		{
			"except binding is scoped to the handler",
			"try:\n    pass\nexcept ValueError as e:\n    print(e)\nprint(e)\n",
			[]string{"UNDEFINED_NAME", "UNDEFINED_NAME"},
		},
		{
			"walrus binds in place",
			"if (n := 10) > 5:\n    print(n)\n",
			nil,
		},
		{
			"global statement reaches module scope",
			"counter = 0\ndef bump():\n    global counter\n    counter += 1\nbump()\n",
			nil,
		},
		{
			"builtins may be shadowed",
			"def print(x):\n    pass\nprint(1)\n",
			nil,
		},
		{
			"tuple unpacking binds every name",
			"a, b = 1, 2\nprint(a + b)\n",
			nil,
		},
		{
			"with binding",
			"with open(\"f\") as fh:\n    fh.read()\n",
			nil,
		},
		{
			"with binding is scoped to the block",
			"let a = 1\nwith a as f:\n    pass\nprint(f)\n",
			[]string{"UNDEFINED_NAME"},
		},
		{
			"import binds the alias",
			"import collections.abc as abc\nprint(abc)\n",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keys(analyze(t, tt.source))
			if len(got) != len(tt.want) {
				t.Fatalf("diagnostics = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("diagnostic %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestUnusedVariables(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{
			"unused function local",
			"def f():\n    waste = 1\n    return 2\n",
			[]string{"UNUSED_VARIABLE"},
		},
		{
			"used local is fine",
			"def f():\n    kept = 1\n    return kept\n",
			nil,
		},
		{
			"unused parameter is not reported",
			"def f(x):\n    return 1\n",
			nil,
		},
		{
			"module-level names are not reported",
			"x = 1\n",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keys(analyze(t, tt.source))
			if len(got) != len(tt.want) {
				t.Fatalf("diagnostics = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("diagnostic %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestUnusedVariablesReportedInSourceOrder(t *testing.T) {
	diags := analyze(t, "def f():\n    a = 1\n    b = 2\n    return 0\n")
	if len(diags) != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", diags)
	}
	if diags[0].Args["name"] != "a" || diags[1].Args["name"] != "b" {
		t.Errorf("reported names = %v, %v, want a then b",
			diags[0].Args["name"], diags[1].Args["name"])
	}
	if diags[0].Line != 2 || diags[1].Line != 3 {
		t.Errorf("lines = %d, %d, want 2 and 3", diags[0].Line, diags[1].Line)
	}
}

func TestAnalysisCollectsAllFindings(t *testing.T) {
	source := "break\nprint(missing)\ncontinue\n"
	got := keys(analyze(t, source))
	want := []string{"BREAK_OUTSIDE_LOOP", "UNDEFINED_NAME", "CONTINUE_OUTSIDE_LOOP"}
	if len(got) != len(want) {
		t.Fatalf("diagnostics = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("diagnostic %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDiagnosticPositions(t *testing.T) {
	diags := analyze(t, "x = 1\nprint(missing)\n")
	if len(diags) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", diags)
	}
	if diags[0].Line != 2 || diags[0].Column != 7 {
		t.Errorf("position = %d:%d, want 2:7", diags[0].Line, diags[0].Column)
	}
}

// Every supported language must render every control-flow diagnostic.
func TestDiagnosticLocalization(t *testing.T) {
	diags := analyze(t, "break\n")
	if len(diags) != 1 || diags[0].Key != "BREAK_OUTSIDE_LOOP" {
		t.Fatalf("expected one BREAK_OUTSIDE_LOOP, got %v", diags)
	}
	en := diags[0].Localize("en")
	if en == "" || en == diags[0].Key {
		t.Fatalf("English rendering missing: %q", en)
	}
	for _, lang := range concept.Default().SupportedLanguages() {
		text := diags[0].Localize(lang)
		if text == "" || text == diags[0].Key {
			t.Errorf("language %s has no rendering", lang)
		}
		if lang != "en" && text == en {
			t.Errorf("language %s falls back to English: %q", lang, text)
		}
	}
}
