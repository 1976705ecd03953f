package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/usmlang/usm/internal/lexer"
	"github.com/usmlang/usm/internal/parser/ast"
)

func mustParse(t *testing.T, source, hint string) *ast.Program {
	t.Helper()
	tokens, lang, err := lexer.Tokenize(source, hint)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", source, err)
	}
	program, err := Parse(tokens, lang)
	if err != nil {
		t.Fatalf("Parse(%q): %v", source, err)
	}
	return program
}

// firstStmt renders the outline of the first statement of source.
func firstStmt(t *testing.T, source string) string {
	t.Helper()
	program := mustParse(t, source, "en")
	if len(program.Statements) == 0 {
		t.Fatalf("no statements parsed from %q", source)
	}
	return ast.Sprint(program.Statements[0])
}

func parseError(t *testing.T, source string) *Error {
	t.Helper()
	tokens, lang, err := lexer.Tokenize(source, "en")
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", source, err)
	}
	_, err = Parse(tokens, lang)
	if err == nil {
		t.Fatalf("Parse(%q): expected error", source)
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("Parse(%q): error %v is not a parser.Error", source, err)
	}
	return perr
}

func TestIfStatementStructure(t *testing.T) {
	source := "if x > 5:\n    print(x)\n"
	got := ast.Sprint(mustParse(t, source, "en"))
	want := strings.Join([]string{
		"Program",
		"  IfStatement",
		"    cond:",
		"      Compare[>]",
		"        Identifier(x)",
		"        Numeral(5)",
		"    body:",
		"      ExpressionStatement",
		"        Call",
		"          Identifier(print)",
		"          Identifier(x)",
		"",
	}, "\n")
	if got != want {
		t.Errorf("outline mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// Translations of one program must produce identical trees, including the
// built-in names, which are canonicalized to their English spellings.
func TestCrossLanguageEquivalence(t *testing.T) {
	en := strings.Join([]string{
		"def classify(n):",
		"    if n > 10:",
		"        return \"big\"",
		"    elif n > 5:",
		"        return \"mid\"",
		"    else:",
		"        return \"small\"",
		"",
		"let total = 0",
		"for x in data:",
		"    total += x",
		"print(total)",
		"",
	}, "\n")
	fr := strings.Join([]string{
		"déf classify(n):",
		"    si n > 10:",
		"        retourner \"big\"",
		"    sinon si n > 5:",
		"        retourner \"mid\"",
		"    sinon:",
		"        retourner \"small\"",
		"",
		"soit total = 0",
		"pour x dans data:",
		"    total += x",
		"afficher(total)",
		"",
	}, "\n")
	hi := strings.Join([]string{
		"परिभाषा classify(n):",
		"    अगर n > 10:",
		"        वापसी \"big\"",
		"    वरना अगर n > 5:",
		"        वापसी \"mid\"",
		"    वरना:",
		"        वापसी \"small\"",
		"",
		"मानलो total = 0",
		"प्रत्येक x में data:",
		"    total += x",
		"छापो(total)",
		"",
	}, "\n")

	enTree := ast.Sprint(mustParse(t, en, "en"))
	for _, tc := range []struct {
		lang   string
		source string
	}{
		{"fr", fr},
		{"hi", hi},
	} {
		got := ast.Sprint(mustParse(t, tc.source, tc.lang))
		if got != enTree {
			t.Errorf("%s tree differs from en:\ngot:\n%s\nwant:\n%s", tc.lang, got, enTree)
		}
		// Detection must reach the same tree without the hint.
		auto := ast.Sprint(mustParse(t, tc.source, ""))
		if auto != enTree {
			t.Errorf("%s auto-detected tree differs from en:\ngot:\n%s", tc.lang, auto)
		}
	}

	if !strings.Contains(enTree, "Identifier(print)") {
		t.Errorf("expected canonical built-in name in tree:\n%s", enTree)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		source string
		want   []string
	}{
		{"1 + 2 * 3\n", []string{
			"ExpressionStatement",
			"  Binary[+]",
			"    Numeral(1)",
			"    Binary[*]",
			"      Numeral(2)",
			"      Numeral(3)",
		}},
		{"-2 ** 2\n", []string{
			"ExpressionStatement",
			"  Unary[-]",
			"    Binary[**]",
			"      Numeral(2)",
			"      Numeral(2)",
		}},
		{"2 ** -3\n", []string{
			"ExpressionStatement",
			"  Binary[**]",
			"    Numeral(2)",
			"    Unary[-]",
			"      Numeral(3)",
		}},
		{"a or b and not c\n", []string{
			"ExpressionStatement",
			"  Bool[or]",
			"    Identifier(a)",
			"    Bool[and]",
			"      Identifier(b)",
			"      Unary[not]",
			"        Identifier(c)",
		}},
		{"1 < x <= 10\n", []string{
			"ExpressionStatement",
			"  Compare[< <=]",
			"    Numeral(1)",
			"    Identifier(x)",
			"    Numeral(10)",
		}},
		{"x not in xs\n", []string{
			"ExpressionStatement",
			"  Compare[not in]",
			"    Identifier(x)",
			"    Identifier(xs)",
		}},
		{"a is not b\n", []string{
			"ExpressionStatement",
			"  Compare[is not]",
			"    Identifier(a)",
			"    Identifier(b)",
		}},
		{"a | b ^ c & d << 1\n", []string{
			"ExpressionStatement",
			"  Binary[|]",
			"    Identifier(a)",
			"    Binary[^]",
			"      Identifier(b)",
			"      Binary[&]",
			"        Identifier(c)",
			"        Binary[<<]",
			"          Identifier(d)",
			"          Numeral(1)",
		}},
		{"a if cond else b\n", []string{
			"ExpressionStatement",
			"  Conditional",
			"    then:",
			"      Identifier(a)",
			"    cond:",
			"      Identifier(cond)",
			"    else:",
			"      Identifier(b)",
		}},
		{"(n := 10)\n", []string{
			"ExpressionStatement",
			"  Named(n)",
			"    Numeral(10)",
		}},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.source), func(t *testing.T) {
			got := firstStmt(t, tt.source)
			want := strings.Join(tt.want, "\n") + "\n"
			if got != want {
				t.Errorf("outline mismatch:\ngot:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestAssignmentForms(t *testing.T) {
	tests := []struct {
		source string
		want   []string
	}{
		{"x = 1\n", []string{
			"Assign[=]",
			"  Identifier(x)",
			"  Numeral(1)",
		}},
		{"x **= 2\n", []string{
			"Assign[**=]",
			"  Identifier(x)",
			"  Numeral(2)",
		}},
		{"a = b = 0\n", []string{
			"ChainedAssign",
			"  Identifier(a)",
			"  Identifier(b)",
			"  value:",
			"    Numeral(0)",
		}},
		{"a, b = b, a\n", []string{
			"Assign[=]",
			"  Tuple",
			"    Identifier(a)",
			"    Identifier(b)",
			"  Tuple",
			"    Identifier(b)",
			"    Identifier(a)",
		}},
		{"obj.field[0] = 1\n", []string{
			"Assign[=]",
			"  Index",
			"    Attribute(field)",
			"      Identifier(obj)",
			"    Numeral(0)",
			"  Numeral(1)",
		}},
		{"const limit = 100\n", []string{
			"Declare[const](limit)",
			"  Numeral(100)",
		}},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.source), func(t *testing.T) {
			got := firstStmt(t, tt.source)
			want := strings.Join(tt.want, "\n") + "\n"
			if got != want {
				t.Errorf("outline mismatch:\ngot:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestCompoundStatements(t *testing.T) {
	source := strings.Join([]string{
		"try:",
		"    risky()",
		"except ValueError as e:",
		"    print(e)",
		"except:",
		"    pass",
		"finally:",
		"    cleanup()",
		"",
		"with open(\"f\") as fh, lock:",
		"    fh.read()",
		"",
		"match cmd:",
		"    case \"start\":",
		"        run()",
		"    default:",
		"        stop()",
		"",
		"for k, v in pairs:",
		"    print(k, v)",
		"",
	}, "\n")
	program := mustParse(t, source, "en")
	if len(program.Statements) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(program.Statements))
	}

	try, ok := program.Statements[0].(*ast.TryStatement)
	if !ok {
		t.Fatalf("statement 0 is %T, want TryStatement", program.Statements[0])
	}
	if len(try.Handlers) != 2 || try.Handlers[0].Name != "e" || try.Handlers[1].Type != nil {
		t.Errorf("unexpected handlers: %+v", try.Handlers)
	}
	if len(try.Finally) != 1 {
		t.Errorf("expected finally body, got %d statements", len(try.Finally))
	}

	with, ok := program.Statements[1].(*ast.WithStatement)
	if !ok {
		t.Fatalf("statement 1 is %T, want WithStatement", program.Statements[1])
	}
	if len(with.Items) != 2 || with.Items[0].Name != "fh" || with.Items[1].Name != "" {
		t.Errorf("unexpected with items: %+v", with.Items)
	}

	match, ok := program.Statements[2].(*ast.MatchStatement)
	if !ok {
		t.Fatalf("statement 2 is %T, want MatchStatement", program.Statements[2])
	}
	if len(match.Cases) != 2 || match.Cases[0].Pattern == nil || match.Cases[1].Pattern != nil {
		t.Errorf("unexpected cases: %+v", match.Cases)
	}

	loop, ok := program.Statements[3].(*ast.ForStatement)
	if !ok {
		t.Fatalf("statement 3 is %T, want ForStatement", program.Statements[3])
	}
	if _, ok := loop.Target.(*ast.TupleLiteral); !ok {
		t.Errorf("for target is %T, want TupleLiteral", loop.Target)
	}
}

func TestDefinitions(t *testing.T) {
	source := strings.Join([]string{
		"@traced",
		"async def fetch(url, timeout=30):",
		"    return await client.get(url)",
		"",
		"@register",
		"class Worker(Base):",
		"    def run(self):",
		"        yield self.step()",
		"",
		"import collections.abc as abc",
		"from math import sqrt, pi as PI",
		"global counter",
		"assert counter >= 0, \"negative\"",
		"",
	}, "\n")
	program := mustParse(t, source, "en")

	fn, ok := program.Statements[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("statement 0 is %T, want FunctionDef", program.Statements[0])
	}
	if !fn.IsAsync || len(fn.Decorators) != 1 {
		t.Errorf("async/decorator lost: async=%t decorators=%d", fn.IsAsync, len(fn.Decorators))
	}
	if len(fn.Params) != 2 || fn.Params[1].Default == nil {
		t.Errorf("unexpected params: %+v", fn.Params)
	}

	cls, ok := program.Statements[1].(*ast.ClassDef)
	if !ok {
		t.Fatalf("statement 1 is %T, want ClassDef", program.Statements[1])
	}
	if len(cls.Bases) != 1 || len(cls.Decorators) != 1 || len(cls.Body) != 1 {
		t.Errorf("unexpected class: bases=%d decorators=%d body=%d",
			len(cls.Bases), len(cls.Decorators), len(cls.Body))
	}

	imp, ok := program.Statements[2].(*ast.ImportStatement)
	if !ok || imp.Module != "collections.abc" || imp.Alias != "abc" {
		t.Errorf("unexpected import: %#v", program.Statements[2])
	}

	from, ok := program.Statements[3].(*ast.FromImportStatement)
	if !ok || from.Module != "math" || len(from.Names) != 2 || from.Names[1].Alias != "PI" {
		t.Errorf("unexpected from-import: %#v", program.Statements[3])
	}

	if _, ok := program.Statements[4].(*ast.GlobalStatement); !ok {
		t.Errorf("statement 4 is %T, want GlobalStatement", program.Statements[4])
	}
	assert, ok := program.Statements[5].(*ast.AssertStatement)
	if !ok || assert.Msg == nil {
		t.Errorf("unexpected assert: %#v", program.Statements[5])
	}
}

func TestDisplaysAndComprehensions(t *testing.T) {
	tests := []struct {
		source string
		want   []string
	}{
		{"[x * x for x in xs if x > 0]\n", []string{
			"ExpressionStatement",
			"  ListComp",
			"    Binary[*]",
			"      Identifier(x)",
			"      Identifier(x)",
			"    for:",
			"      Identifier(x)",
			"    in:",
			"      Identifier(xs)",
			"    if:",
			"      Compare[>]",
			"        Identifier(x)",
			"        Numeral(0)",
		}},
		{"{k: v for k, v in pairs}\n", []string{
			"ExpressionStatement",
			"  DictComp",
			"    Identifier(k)",
			"    Identifier(v)",
			"    for:",
			"      Tuple",
			"        Identifier(k)",
			"        Identifier(v)",
			"    in:",
			"      Identifier(pairs)",
		}},
		{"{1, 2, 3}\n", []string{
			"ExpressionStatement",
			"  Set",
			"    Numeral(1)",
			"    Numeral(2)",
			"    Numeral(3)",
		}},
		{"{\"a\": 1, **rest}\n", []string{
			"ExpressionStatement",
			"  Dict",
			"    entry:",
			"      String(\"a\")",
			"      Numeral(1)",
			"    unpack:",
			"      Identifier(rest)",
		}},
		{"sum(x for x in xs)\n", []string{
			"ExpressionStatement",
			"  Call",
			"    Identifier(sum)",
			"    Generator",
			"      Identifier(x)",
			"      for:",
			"        Identifier(x)",
			"      in:",
			"        Identifier(xs)",
		}},
		{"xs[1:10:2]\n", []string{
			"ExpressionStatement",
			"  Index",
			"    Identifier(xs)",
			"    Slice",
			"      start:",
			"        Numeral(1)",
			"      stop:",
			"        Numeral(10)",
			"      step:",
			"        Numeral(2)",
		}},
		{"f(a, *rest, key=1)\n", []string{
			"ExpressionStatement",
			"  Call",
			"    Identifier(f)",
			"    Identifier(a)",
			"    Starred",
			"      Identifier(rest)",
			"    kw key =",
			"      Numeral(1)",
		}},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.source), func(t *testing.T) {
			got := firstStmt(t, tt.source)
			want := strings.Join(tt.want, "\n") + "\n"
			if got != want {
				t.Errorf("outline mismatch:\ngot:\n%s\nwant:\n%s", got, want)
			}
		})
	}
}

func TestLambda(t *testing.T) {
	got := firstStmt(t, "apply(lambda a, b=1: a + b)\n")
	want := strings.Join([]string{
		"ExpressionStatement",
		"  Call",
		"    Identifier(apply)",
		"    Lambda",
		"      param a",
		"      param b =",
		"        Numeral(1)",
		"      body:",
		"        Binary[+]",
		"          Identifier(a)",
		"          Identifier(b)",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("outline mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFStrings(t *testing.T) {
	got := firstStmt(t, "f\"total: {n + 1} items\"\n")
	want := strings.Join([]string{
		"ExpressionStatement",
		"  FString",
		"    String(\"total: \")",
		"    Binary[+]",
		"      Identifier(n)",
		"      Numeral(1)",
		"    String(\" items\")",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("outline mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}

	got = firstStmt(t, "f\"{{n}}\"\n")
	want = strings.Join([]string{
		"ExpressionStatement",
		"  FString",
		"    String(\"{n}\")",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("brace escape mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}

	// Interpolations are lexed in the program's language.
	source := "afficher(f\"ok: {x si x > 0 sinon 0}\")\n"
	program := mustParse(t, source, "fr")
	tree := ast.Sprint(program)
	if !strings.Contains(tree, "Conditional") {
		t.Errorf("expected localized ternary inside interpolation:\n%s", tree)
	}
}

func TestBuiltinNamesBindLikeIdentifiers(t *testing.T) {
	// print lexes as a keyword, but binding positions accept it as a plain
	// name so builtins can be shadowed.
	program := mustParse(t, "def print(x):\n    pass\n", "en")
	fn, ok := program.Statements[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("statement 0 is %T, want FunctionDef", program.Statements[0])
	}
	if fn.Name != "print" {
		t.Errorf("function name = %q, want print", fn.Name)
	}

	// Translated spellings bind under the same canonical name.
	program = mustParse(t, "soit afficher = 1\n", "fr")
	decl, ok := program.Statements[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("statement 0 is %T, want VariableDeclaration", program.Statements[0])
	}
	if decl.Name != "print" {
		t.Errorf("declared name = %q, want print", decl.Name)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		key    string
	}{
		{"missing colon", "if x\n    y\n", "EXPECTED_TOKEN"},
		{"missing block", "if x: y\n", "EXPECTED_INDENTED_BLOCK"},
		{"unclosed paren", "f(1, 2\n", "MISMATCHED_DELIMITER"},
		{"missing value", "x = \n", "EXPECTED_EXPRESSION"},
		{"bad def name", "def (x):\n    pass\n", "EXPECTED_IDENTIFIER"},
		{"stray bracket", "return ]\n", "EXPECTED_EXPRESSION"},
		{"unclosed fstring brace", "f\"{x\"\n", "MISMATCHED_DELIMITER"},
		{"walrus on call", "f(x) := 1\n", "UNEXPECTED_TOKEN"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := parseError(t, tt.source)
			if perr.Key != tt.key {
				t.Errorf("error key = %s, want %s (message: %s)", perr.Key, tt.key, perr)
			}
			if perr.Line == 0 || perr.Column == 0 {
				t.Errorf("error carries no position: %+v", perr)
			}
		})
	}
}

func TestErrorLocalization(t *testing.T) {
	perr := parseError(t, "x = \n")
	en := perr.Localize("en")
	fr := perr.Localize("fr")
	if en == "" || fr == "" || en == fr {
		t.Errorf("expected distinct localized messages, got en=%q fr=%q", en, fr)
	}
	if !strings.Contains(perr.Error(), en) {
		t.Errorf("Error() should render the English text: %q vs %q", perr.Error(), en)
	}
}

func TestElifChainsNest(t *testing.T) {
	source := strings.Join([]string{
		"if a:",
		"    x()",
		"elif b:",
		"    y()",
		"else:",
		"    z()",
		"",
	}, "\n")
	program := mustParse(t, source, "en")
	outer, ok := program.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement 0 is %T, want IfStatement", program.Statements[0])
	}
	if len(outer.Else) != 1 {
		t.Fatalf("outer else has %d statements, want 1 nested if", len(outer.Else))
	}
	inner, ok := outer.Else[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("nested else is %T, want IfStatement", outer.Else[0])
	}
	if len(inner.Else) != 1 {
		t.Errorf("inner else has %d statements, want 1", len(inner.Else))
	}
}

func TestCommentsAreIgnored(t *testing.T) {
	source := "x = 1  # initial value\n# trailing remark\ny = 2\n"
	program := mustParse(t, source, "en")
	if len(program.Statements) != 2 {
		t.Errorf("expected 2 statements, got %d", len(program.Statements))
	}
}

func TestPositions(t *testing.T) {
	source := "x = 1\nwhile x:\n    x -= 1\n"
	program := mustParse(t, source, "en")
	loop := program.Statements[1].(*ast.WhileStatement)
	if line, col := loop.Pos(); line != 2 || col != 1 {
		t.Errorf("while position = %d:%d, want 2:1", line, col)
	}
	body := loop.Body[0].(*ast.Assignment)
	if line, col := body.Pos(); line != 3 || col != 5 {
		t.Errorf("body position = %d:%d, want 3:5", line, col)
	}
}
