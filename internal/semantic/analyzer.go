// Package semantic validates name binding and control-flow placement on
// the canonical AST.
//
// The analyzer runs after parsing and reports, rather than fails: it walks
// the whole tree and returns every diagnostic it finds. Checks cover
// unbound names, duplicate definitions in one scope, const reassignment,
// unused function-local variables, break/continue outside loops,
// return/yield outside functions, and await outside async functions. Because the AST is language-neutral the checks
// are too; only the rendered diagnostic text is localized.
package semantic

import (
	"sort"

	"github.com/usmlang/usm/internal/concept"
	"github.com/usmlang/usm/internal/message"
	"github.com/usmlang/usm/internal/parser/ast"
	"github.com/usmlang/usm/internal/symtab"
)

// builtinConceptIDs are the keyword concepts pre-bound as callable names.
// They enter the global scope under their English canonical spellings,
// matching how the parser canonicalizes them.
var builtinConceptIDs = []concept.ID{
	concept.Print,
	concept.Input,
	concept.TypeInt,
	concept.TypeFloat,
	concept.TypeStr,
	concept.TypeBool,
	concept.TypeList,
	concept.TypeDict,
}

// extraBuiltins are predefined names with no keyword concept behind them;
// they are spelled the same in every source language.
var extraBuiltins = []string{
	"len", "range", "abs", "min", "max", "sum", "sorted", "round", "type", "open",
}

// Analyzer walks one program. Create a fresh one per Analyze call.
type Analyzer struct {
	scope *symtab.Scope
	diags []Diagnostic

	loopDepth  int
	funcDepth  int
	asyncDepth int
}

// Analyze checks program and returns its diagnostics in source order. An
// empty slice means the program is semantically valid.
func Analyze(program *ast.Program) []Diagnostic {
	a := &Analyzer{scope: symtab.NewScope(symtab.ScopeGlobal, nil)}
	a.bindBuiltins()
	a.walk(program)
	return a.diags
}

func (a *Analyzer) bindBuiltins() {
	reg := concept.Default()
	for _, id := range builtinConceptIDs {
		name, err := reg.KeywordFor(id, message.FallbackLanguage)
		if err != nil {
			name = string(id)
		}
		a.scope.Define(&symtab.Symbol{Name: name, Kind: symtab.KindBuiltin})
	}
	for _, name := range extraBuiltins {
		a.scope.Define(&symtab.Symbol{Name: name, Kind: symtab.KindBuiltin})
	}
}

func (a *Analyzer) walk(n ast.Node) {
	if n == nil {
		return
	}
	n.Accept(a)
}

func (a *Analyzer) report(line, column int, key string, args message.Args) {
	a.diags = append(a.diags, Diagnostic{Key: key, Line: line, Column: column, Args: args})
}

func (a *Analyzer) push(kind symtab.ScopeKind) {
	a.scope = symtab.NewScope(kind, a.scope)
}

func (a *Analyzer) pop() {
	a.scope = a.scope.Parent
}

// declare introduces an explicit binding: let, const, def, class,
// parameters. A same-scope duplicate is an error; shadowing a builtin
// silently replaces it.
func (a *Analyzer) declare(name string, kind symtab.Kind, line, column int) {
	if prev := a.scope.LookupLocal(name); prev != nil {
		if prev.Kind != symtab.KindBuiltin {
			a.report(line, column, "DUPLICATE_DEFINITION", message.Args{"name": name})
			return
		}
		delete(a.scope.Symbols, name)
	}
	a.scope.Define(&symtab.Symbol{Name: name, Kind: kind, Line: line, Column: column})
}

// bind handles assignment-style binding: an existing name is reassigned
// (consts excepted), an unbound one is defined in the current scope. Loop
// targets, with-items, and walrus targets take the same path.
func (a *Analyzer) bind(target ast.Expr) {
	switch t := target.(type) {
	case *ast.Identifier:
		if sym := a.scope.Lookup(t.Name); sym != nil {
			if !sym.CanAssign() {
				a.report(t.Line, t.Column, "CONST_REASSIGNMENT", message.Args{"name": t.Name})
			}
			return
		}
		a.scope.Define(&symtab.Symbol{
			Name: t.Name, Kind: symtab.KindVariable, Line: t.Line, Column: t.Column,
		})
	case *ast.TupleLiteral:
		for _, el := range t.Elements {
			a.bind(el)
		}
	case *ast.ListLiteral:
		for _, el := range t.Elements {
			a.bind(el)
		}
	case *ast.StarredExpr:
		a.bind(t.Value)
	default:
		// Attribute and index targets read their base object.
		a.walk(target)
	}
}

// bindName is bind for a bare string, used by as-clauses.
func (a *Analyzer) bindName(name string, line, column int) {
	a.bind(&ast.Identifier{Position: ast.Position{Line: line, Column: column}, Name: name})
}

func (a *Analyzer) walkStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		a.walk(s)
	}
}

// --- statements ---

func (a *Analyzer) VisitProgram(n *ast.Program) {
	a.walkStmts(n.Statements)
}

func (a *Analyzer) VisitExpressionStatement(n *ast.ExpressionStatement) {
	a.walk(n.Expr)
}

func (a *Analyzer) VisitVariableDeclaration(n *ast.VariableDeclaration) {
	a.walk(n.Value)
	kind := symtab.KindVariable
	if n.IsConst {
		kind = symtab.KindConstant
	}
	a.declare(n.Name, kind, n.Line, n.Column)
}

func (a *Analyzer) VisitAssignment(n *ast.Assignment) {
	a.walk(n.Value)
	if n.Op == "=" {
		a.bind(n.Target)
		return
	}
	// Augmented assignment reads before it writes, so the target must
	// already be bound.
	if id, ok := n.Target.(*ast.Identifier); ok {
		sym := a.scope.Lookup(id.Name)
		if sym == nil {
			a.report(id.Line, id.Column, "UNDEFINED_NAME", message.Args{"name": id.Name})
			return
		}
		if !sym.CanAssign() {
			a.report(id.Line, id.Column, "CONST_REASSIGNMENT", message.Args{"name": id.Name})
		}
		return
	}
	a.walk(n.Target)
}

func (a *Analyzer) VisitChainedAssignment(n *ast.ChainedAssignment) {
	a.walk(n.Value)
	for _, target := range n.Targets {
		a.bind(target)
	}
}

func (a *Analyzer) VisitIfStatement(n *ast.IfStatement) {
	a.walk(n.Cond)
	a.walkStmts(n.Body)
	a.walkStmts(n.Else)
}

func (a *Analyzer) VisitWhileStatement(n *ast.WhileStatement) {
	a.walk(n.Cond)
	a.loopDepth++
	a.walkStmts(n.Body)
	a.loopDepth--
}

func (a *Analyzer) VisitForStatement(n *ast.ForStatement) {
	a.walk(n.Iter)
	a.bind(n.Target)
	a.loopDepth++
	a.walkStmts(n.Body)
	a.loopDepth--
}

func (a *Analyzer) VisitFunctionDef(n *ast.FunctionDef) {
	for _, d := range n.Decorators {
		a.walk(d)
	}
	// Defaults evaluate at definition time, in the enclosing scope.
	for _, p := range n.Params {
		a.walk(p.Default)
	}
	a.declare(n.Name, symtab.KindFunction, n.Line, n.Column)

	a.push(symtab.ScopeFunction)
	for _, p := range n.Params {
		a.declare(p.Name, symtab.KindParameter, p.Line, p.Column)
	}
	savedLoop := a.loopDepth
	a.loopDepth = 0
	a.funcDepth++
	if n.IsAsync {
		a.asyncDepth++
	}
	a.walkStmts(n.Body)
	if n.IsAsync {
		a.asyncDepth--
	}
	a.funcDepth--
	a.loopDepth = savedLoop
	a.reportUnusedVariables()
	a.pop()
}

// reportUnusedVariables flags function-local variables that were never
// read. Parameters and nested definitions are exempt.
func (a *Analyzer) reportUnusedVariables() {
	unused := a.scope.UnusedSymbols()
	sort.Slice(unused, func(i, j int) bool {
		if unused[i].Line != unused[j].Line {
			return unused[i].Line < unused[j].Line
		}
		return unused[i].Column < unused[j].Column
	})
	for _, sym := range unused {
		if sym.Kind != symtab.KindVariable {
			continue
		}
		a.report(sym.Line, sym.Column, "UNUSED_VARIABLE", message.Args{"name": sym.Name})
	}
}

func (a *Analyzer) VisitClassDef(n *ast.ClassDef) {
	for _, d := range n.Decorators {
		a.walk(d)
	}
	for _, b := range n.Bases {
		a.walk(b)
	}
	a.declare(n.Name, symtab.KindClass, n.Line, n.Column)

	a.push(symtab.ScopeClass)
	savedLoop := a.loopDepth
	a.loopDepth = 0
	a.walkStmts(n.Body)
	a.loopDepth = savedLoop
	a.pop()
}

func (a *Analyzer) VisitReturnStatement(n *ast.ReturnStatement) {
	if a.funcDepth == 0 {
		a.report(n.Line, n.Column, "RETURN_OUTSIDE_FUNCTION", nil)
	}
	a.walk(n.Value)
}

func (a *Analyzer) VisitBreakStatement(n *ast.BreakStatement) {
	if a.loopDepth == 0 {
		a.report(n.Line, n.Column, "BREAK_OUTSIDE_LOOP", nil)
	}
}

func (a *Analyzer) VisitContinueStatement(n *ast.ContinueStatement) {
	if a.loopDepth == 0 {
		a.report(n.Line, n.Column, "CONTINUE_OUTSIDE_LOOP", nil)
	}
}

func (a *Analyzer) VisitPassStatement(n *ast.PassStatement) {}

func (a *Analyzer) VisitRaiseStatement(n *ast.RaiseStatement) {
	a.walk(n.Exc)
}

func (a *Analyzer) VisitAssertStatement(n *ast.AssertStatement) {
	a.walk(n.Test)
	a.walk(n.Msg)
}

func (a *Analyzer) VisitGlobalStatement(n *ast.GlobalStatement) {
	global := a.scope.Global()
	for _, name := range n.Names {
		sym := global.LookupLocal(name)
		if sym == nil {
			sym = &symtab.Symbol{Name: name, Kind: symtab.KindVariable, Line: n.Line, Column: n.Column}
			global.Define(sym)
		}
		if a.scope != global {
			// Alias the global binding locally so reads and writes in this
			// scope resolve to it.
			a.scope.Symbols[name] = sym
		}
	}
}

func (a *Analyzer) VisitLocalStatement(n *ast.LocalStatement) {
	for _, name := range n.Names {
		a.declare(name, symtab.KindVariable, n.Line, n.Column)
	}
}

func (a *Analyzer) VisitImportStatement(n *ast.ImportStatement) {
	name := n.Alias
	if name == "" {
		name = rootSegment(n.Module)
	}
	a.rebindImport(name, n.Line, n.Column)
}

func (a *Analyzer) VisitFromImportStatement(n *ast.FromImportStatement) {
	for _, imp := range n.Names {
		name := imp.Alias
		if name == "" {
			name = imp.Name
		}
		a.rebindImport(name, n.Line, n.Column)
	}
}

// rebindImport binds an imported name. Re-importing an existing name is
// not an error; the newest import wins.
func (a *Analyzer) rebindImport(name string, line, column int) {
	delete(a.scope.Symbols, name)
	a.scope.Define(&symtab.Symbol{
		Name: name, Kind: symtab.KindImport, Line: line, Column: column,
	})
}

func rootSegment(module string) string {
	for i := 0; i < len(module); i++ {
		if module[i] == '.' {
			return module[:i]
		}
	}
	return module
}

func (a *Analyzer) VisitTryStatement(n *ast.TryStatement) {
	a.walkStmts(n.Body)
	for _, h := range n.Handlers {
		a.walk(h.Type)
		a.push(symtab.ScopeHandler)
		if h.Name != "" {
			a.declare(h.Name, symtab.KindVariable, h.Line, h.Column)
		}
		a.walkStmts(h.Body)
		a.pop()
	}
	a.walkStmts(n.Finally)
}

func (a *Analyzer) VisitMatchStatement(n *ast.MatchStatement) {
	a.walk(n.Subject)
	for _, c := range n.Cases {
		a.walk(c.Pattern)
		a.walkStmts(c.Body)
	}
}

func (a *Analyzer) VisitWithStatement(n *ast.WithStatement) {
	// Context expressions evaluate in the enclosing scope; the as-names
	// live only inside the block.
	for _, item := range n.Items {
		a.walk(item.Context)
	}
	a.push(symtab.ScopeHandler)
	line, column := n.Pos()
	for _, item := range n.Items {
		if item.Name != "" {
			a.declare(item.Name, symtab.KindVariable, line, column)
		}
	}
	a.walkStmts(n.Body)
	a.pop()
}

// --- expressions ---

func (a *Analyzer) VisitIdentifier(n *ast.Identifier) {
	if a.scope.Lookup(n.Name) == nil {
		a.report(n.Line, n.Column, "UNDEFINED_NAME", message.Args{"name": n.Name})
	}
}

func (a *Analyzer) VisitNamedExpr(n *ast.NamedExpr) {
	a.walk(n.Value)
	a.bind(n.Target)
}

func (a *Analyzer) VisitLambdaExpr(n *ast.LambdaExpr) {
	for _, p := range n.Params {
		a.walk(p.Default)
	}
	a.push(symtab.ScopeFunction)
	for _, p := range n.Params {
		a.declare(p.Name, symtab.KindParameter, p.Line, p.Column)
	}
	a.walk(n.Body)
	a.pop()
}

func (a *Analyzer) VisitYieldExpr(n *ast.YieldExpr) {
	if a.funcDepth == 0 {
		a.report(n.Line, n.Column, "YIELD_OUTSIDE_FUNCTION", nil)
	}
	a.walk(n.Value)
}

func (a *Analyzer) VisitAwaitExpr(n *ast.AwaitExpr) {
	if a.asyncDepth == 0 {
		a.report(n.Line, n.Column, "AWAIT_OUTSIDE_ASYNC", nil)
	}
	a.walk(n.Value)
}

func (a *Analyzer) walkClauses(clauses []ast.CompClause) {
	for _, c := range clauses {
		a.walk(c.Iter)
		a.bind(c.Target)
		for _, cond := range c.Conditions {
			a.walk(cond)
		}
	}
}

func (a *Analyzer) VisitListComprehension(n *ast.ListComprehension) {
	a.push(symtab.ScopeComprehension)
	a.walkClauses(n.Clauses)
	a.walk(n.Element)
	a.pop()
}

func (a *Analyzer) VisitSetComprehension(n *ast.SetComprehension) {
	a.push(symtab.ScopeComprehension)
	a.walkClauses(n.Clauses)
	a.walk(n.Element)
	a.pop()
}

func (a *Analyzer) VisitDictComprehension(n *ast.DictComprehension) {
	a.push(symtab.ScopeComprehension)
	a.walkClauses(n.Clauses)
	a.walk(n.Key)
	a.walk(n.Value)
	a.pop()
}

func (a *Analyzer) VisitGeneratorExpr(n *ast.GeneratorExpr) {
	a.push(symtab.ScopeComprehension)
	a.walkClauses(n.Clauses)
	a.walk(n.Element)
	a.pop()
}

func (a *Analyzer) VisitUnaryOp(n *ast.UnaryOp) {
	a.walk(n.Operand)
}

func (a *Analyzer) VisitBinaryOp(n *ast.BinaryOp) {
	a.walk(n.Left)
	a.walk(n.Right)
}

func (a *Analyzer) VisitBoolOp(n *ast.BoolOp) {
	a.walk(n.Left)
	a.walk(n.Right)
}

func (a *Analyzer) VisitCompareOp(n *ast.CompareOp) {
	a.walk(n.Left)
	for _, c := range n.Comparators {
		a.walk(c)
	}
}

func (a *Analyzer) VisitCallExpr(n *ast.CallExpr) {
	a.walk(n.Func)
	for _, arg := range n.Args {
		a.walk(arg)
	}
	for _, kw := range n.Keywords {
		a.walk(kw.Value)
	}
}

func (a *Analyzer) VisitAttributeAccess(n *ast.AttributeAccess) {
	a.walk(n.Object)
}

func (a *Analyzer) VisitIndexAccess(n *ast.IndexAccess) {
	a.walk(n.Object)
	a.walk(n.Index)
}

func (a *Analyzer) VisitSliceExpr(n *ast.SliceExpr) {
	a.walk(n.Start)
	a.walk(n.Stop)
	a.walk(n.Step)
}

func (a *Analyzer) VisitStarredExpr(n *ast.StarredExpr) {
	a.walk(n.Value)
}

func (a *Analyzer) VisitConditionalExpr(n *ast.ConditionalExpr) {
	a.walk(n.Cond)
	a.walk(n.Then)
	a.walk(n.Else)
}

func (a *Analyzer) VisitTupleLiteral(n *ast.TupleLiteral) {
	for _, el := range n.Elements {
		a.walk(el)
	}
}

func (a *Analyzer) VisitListLiteral(n *ast.ListLiteral) {
	for _, el := range n.Elements {
		a.walk(el)
	}
}

func (a *Analyzer) VisitSetLiteral(n *ast.SetLiteral) {
	for _, el := range n.Elements {
		a.walk(el)
	}
}

func (a *Analyzer) VisitDictLiteral(n *ast.DictLiteral) {
	for _, entry := range n.Entries {
		a.walk(entry.Key)
		a.walk(entry.Value)
	}
}

func (a *Analyzer) VisitFStringLiteral(n *ast.FStringLiteral) {
	for _, part := range n.Parts {
		a.walk(part)
	}
}

func (a *Analyzer) VisitNumeralLiteral(n *ast.NumeralLiteral) {}
func (a *Analyzer) VisitStringLiteral(n *ast.StringLiteral)   {}
func (a *Analyzer) VisitDateLiteral(n *ast.DateLiteral)       {}
func (a *Analyzer) VisitBoolLiteral(n *ast.BoolLiteral)       {}
func (a *Analyzer) VisitNoneLiteral(n *ast.NoneLiteral)       {}
