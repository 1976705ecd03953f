package parser

import (
	"github.com/usmlang/usm/internal/concept"
	"github.com/usmlang/usm/internal/lexer"
	"github.com/usmlang/usm/internal/message"
	"github.com/usmlang/usm/internal/parser/ast"
)

// builtinConcepts are keyword concepts that name built-in callables and
// types. They parse as plain identifiers so they can be called, passed, and
// shadowed like any other name. The identifier always carries the English
// canonical spelling, which keeps trees from different source languages
// structurally identical.
var builtinConcepts = map[concept.ID]bool{
	concept.Print:     true,
	concept.Input:     true,
	concept.TypeInt:   true,
	concept.TypeFloat: true,
	concept.TypeStr:   true,
	concept.TypeBool:  true,
	concept.TypeList:  true,
	concept.TypeDict:  true,
}

// parseExpressionList parses "expr, expr, ..." into a TupleLiteral when a
// comma appears, otherwise the single expression. A trailing comma still
// makes a tuple.
func (p *Parser) parseExpressionList() (ast.Expr, error) {
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.checkDelimiter(",") {
		return first, nil
	}
	tuple := &ast.TupleLiteral{Position: positionOf(first), Elements: []ast.Expr{first}}
	for p.matchDelimiter(",") {
		if !p.startsExpression() {
			break
		}
		next, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		tuple.Elements = append(tuple.Elements, next)
	}
	return tuple, nil
}

// parseExpression is the ladder entry point. Precedence, loosest first:
// lambda/yield, walrus, ternary, or, and, not, comparison chains, |, ^, &,
// shifts, additive, multiplicative, unary (including await), ** (right
// associative), postfix, atom.
func (p *Parser) parseExpression() (ast.Expr, error) {
	switch {
	case p.checkConcept(concept.Lambda):
		return p.parseLambda()
	case p.checkConcept(concept.Yield):
		return p.parseYield()
	}
	expr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.current().IsOperator(":=") {
		target, ok := expr.(*ast.Identifier)
		if !ok {
			tok := p.current()
			return nil, errorAt(tok, "UNEXPECTED_TOKEN", message.Args{"token": describe(tok)})
		}
		p.advance()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.NamedExpr{Position: positionOf(target), Target: target, Value: value}, nil
	}
	return expr, nil
}

func (p *Parser) parseLambda() (ast.Expr, error) {
	tok := p.advance() // LAMBDA
	var params []ast.Param
	if !p.checkDelimiter(":") {
		for {
			name, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			param := ast.Param{Name: name.Value, Line: name.Line, Column: name.Column}
			if p.matchOperator("=") {
				dflt, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				param.Default = dflt
			}
			params = append(params, param)
			if !p.matchDelimiter(",") {
				break
			}
		}
	}
	if err := p.expectDelimiter(":"); err != nil {
		return nil, err
	}
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.LambdaExpr{Position: at(tok), Params: params, Body: body}, nil
}

func (p *Parser) parseYield() (ast.Expr, error) {
	tok := p.advance() // YIELD
	node := &ast.YieldExpr{Position: at(tok)}
	if p.startsExpression() {
		value, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		node.Value = value
	}
	return node, nil
}

// parseTernary parses "then if cond else alt". The arms sit at or-level so
// a bare COND_IF can still open a comprehension condition one frame up.
func (p *Parser) parseTernary() (ast.Expr, error) {
	then, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.matchConcept(concept.CondIf) {
		return then, nil
	}
	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectConcept(concept.CondElse); err != nil {
		return nil, err
	}
	alt, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ConditionalExpr{Position: positionOf(then), Then: then, Cond: cond, Else: alt}, nil
}

func (p *Parser) parseOr() (ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.checkConcept(concept.Or) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.BoolOp{Position: positionOf(left), Op: "or", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.checkConcept(concept.And) {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &ast.BoolOp{Position: positionOf(left), Op: "and", Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Expr, error) {
	// "not in" belongs to the comparison below, not to a prefix not.
	if p.checkConcept(concept.Not) && !p.peekAhead(1).Is(concept.In) {
		tok := p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Position: at(tok), Op: "not", Operand: operand}, nil
	}
	return p.parseComparison()
}

// parseComparison collects a full chain: a < b <= c is one CompareOp.
func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	var ops []string
	var comparators []ast.Expr
	for {
		op, ok := p.comparisonOp()
		if !ok {
			break
		}
		right, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		comparators = append(comparators, right)
	}
	if len(ops) == 0 {
		return left, nil
	}
	return &ast.CompareOp{Position: positionOf(left), Left: left, Ops: ops, Comparators: comparators}, nil
}

// comparisonOp consumes one comparison operator if present. Membership and
// identity tests are keyword concepts, canonicalized to their English
// spellings.
func (p *Parser) comparisonOp() (string, bool) {
	tok := p.current()
	if tok.Kind == lexer.KindOperator {
		switch tok.Value {
		case "==", "!=", "<", ">", "<=", ">=":
			p.advance()
			return tok.Value, true
		}
		return "", false
	}
	switch {
	case tok.Is(concept.In):
		p.advance()
		return "in", true
	case tok.Is(concept.Not) && p.peekAhead(1).Is(concept.In):
		p.advance()
		p.advance()
		return "not in", true
	case tok.Is(concept.Is):
		p.advance()
		if p.matchConcept(concept.Not) {
			return "is not", true
		}
		return "is", true
	}
	return "", false
}

func (p *Parser) parseBitOr() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseBitXor, "|")
}

func (p *Parser) parseBitXor() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseBitAnd, "^")
}

func (p *Parser) parseBitAnd() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseShift, "&")
}

func (p *Parser) parseShift() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseAdditive, "<<", ">>")
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseMultiplicative, "+", "-")
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	return p.parseBinaryLevel(p.parseUnary, "*", "/", "//", "%")
}

// parseBinaryLevel builds one left-associative precedence level.
func (p *Parser) parseBinaryLevel(next func() (ast.Expr, error), ops ...string) (ast.Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.current()
		if tok.Kind != lexer.KindOperator || !oneOf(tok.Value, ops) {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Position: positionOf(left), Op: tok.Value, Left: left, Right: right}
	}
}

func oneOf(value string, ops []string) bool {
	for _, op := range ops {
		if value == op {
			return true
		}
	}
	return false
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	tok := p.current()
	if tok.Kind == lexer.KindOperator {
		switch tok.Value {
		case "-", "+", "~":
			p.advance()
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryOp{Position: at(tok), Op: tok.Value, Operand: operand}, nil
		}
	}
	if tok.Is(concept.Await) {
		p.advance()
		value, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.AwaitExpr{Position: at(tok), Value: value}, nil
	}
	return p.parsePower()
}

// parsePower parses **, which binds tighter than unary on the left and
// looser on the right: -2 ** -3 is -(2 ** (-3)).
func (p *Parser) parsePower() (ast.Expr, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if !p.current().IsOperator("**") {
		return base, nil
	}
	p.advance()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryOp{Position: positionOf(base), Op: "**", Left: base, Right: exp}, nil
}

func (p *Parser) parsePostfix() (ast.Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.checkDelimiter("("):
			p.advance()
			expr, err = p.parseCall(expr)
		case p.checkDelimiter("["):
			p.advance()
			expr, err = p.parseSubscript(expr)
		case p.checkDelimiter("."):
			p.advance()
			name, nameErr := p.expectIdentifier()
			if nameErr != nil {
				return nil, nameErr
			}
			expr = &ast.AttributeAccess{Position: positionOf(expr), Object: expr, Attr: name.Value}
		default:
			return expr, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// parseCall parses the argument list after '('. A bare generator argument,
// f(x for x in xs), is supported when it is the only argument.
func (p *Parser) parseCall(fn ast.Expr) (ast.Expr, error) {
	call := &ast.CallExpr{Position: positionOf(fn), Func: fn}
	if p.matchDelimiter(")") {
		return call, nil
	}
	for {
		tok := p.current()
		switch {
		case tok.Kind == lexer.KindIdentifier && p.peekAhead(1).IsOperator("="):
			p.advance()
			p.advance()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Keywords = append(call.Keywords, ast.KeywordArg{Name: tok.Value, Value: value})
		case tok.IsOperator("*"):
			p.advance()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, &ast.StarredExpr{Position: at(tok), Value: value})
		default:
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if len(call.Args) == 0 && len(call.Keywords) == 0 && p.checkConcept(concept.LoopFor) {
				clauses, err := p.parseCompClauses()
				if err != nil {
					return nil, err
				}
				arg = &ast.GeneratorExpr{Position: positionOf(arg), Element: arg, Clauses: clauses}
			}
			call.Args = append(call.Args, arg)
		}
		if p.matchDelimiter(",") {
			if p.checkDelimiter(")") {
				break
			}
			continue
		}
		break
	}
	if err := p.expectDelimiter(")"); err != nil {
		return nil, err
	}
	return call, nil
}

// parseSubscript parses an index or a start:stop:step slice after '['.
func (p *Parser) parseSubscript(obj ast.Expr) (ast.Expr, error) {
	tok := p.current()
	var start, stop, step ast.Expr
	var err error
	isSlice := false

	if !p.checkDelimiter(":") {
		start, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if p.matchDelimiter(":") {
		isSlice = true
		if !p.checkDelimiter(":") && !p.checkDelimiter("]") {
			stop, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		if p.matchDelimiter(":") && !p.checkDelimiter("]") {
			step, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
	}
	if err := p.expectDelimiter("]"); err != nil {
		return nil, err
	}

	index := start
	if isSlice {
		index = &ast.SliceExpr{Position: at(tok), Start: start, Stop: stop, Step: step}
	}
	return &ast.IndexAccess{Position: positionOf(obj), Object: obj, Index: index}, nil
}

func (p *Parser) parseAtom() (ast.Expr, error) {
	tok := p.current()
	switch tok.Kind {
	case lexer.KindNumeral:
		p.advance()
		return &ast.NumeralLiteral{Position: at(tok), Value: tok.Value}, nil
	case lexer.KindString:
		p.advance()
		return &ast.StringLiteral{Position: at(tok), Value: tok.Value}, nil
	case lexer.KindFString:
		p.advance()
		return p.parseFString(tok)
	case lexer.KindDateLiteral:
		p.advance()
		return &ast.DateLiteral{Position: at(tok), Value: tok.Value}, nil
	case lexer.KindIdentifier:
		p.advance()
		return &ast.Identifier{Position: at(tok), Name: tok.Value}, nil
	case lexer.KindKeyword:
		switch {
		case tok.Is(concept.True):
			p.advance()
			return &ast.BoolLiteral{Position: at(tok), Value: true}, nil
		case tok.Is(concept.False):
			p.advance()
			return &ast.BoolLiteral{Position: at(tok), Value: false}, nil
		case tok.Is(concept.None):
			p.advance()
			return &ast.NoneLiteral{Position: at(tok)}, nil
		case builtinConcepts[tok.Concept]:
			p.advance()
			return &ast.Identifier{Position: at(tok), Name: p.builtinName(tok.Concept)}, nil
		}
	case lexer.KindDelimiter:
		switch tok.Value {
		case "(":
			p.advance()
			return p.parseParenthesized(tok)
		case "[":
			p.advance()
			return p.parseListDisplay(tok)
		case "{":
			p.advance()
			return p.parseBraceDisplay(tok)
		}
	}
	return nil, errorAt(tok, "EXPECTED_EXPRESSION", message.Args{"token": describe(tok)})
}

// builtinName returns the English canonical spelling for a built-in
// concept, so print/afficher/打印 all become the identifier "print".
func (p *Parser) builtinName(id concept.ID) string {
	name, err := p.reg.KeywordFor(id, message.FallbackLanguage)
	if err != nil {
		return string(id)
	}
	return name
}

// parseParenthesized handles (), (x), (x,), (a, b), and (elt for ...).
func (p *Parser) parseParenthesized(open lexer.Token) (ast.Expr, error) {
	if p.matchDelimiter(")") {
		return &ast.TupleLiteral{Position: at(open)}, nil
	}
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.checkConcept(concept.LoopFor) {
		clauses, err := p.parseCompClauses()
		if err != nil {
			return nil, err
		}
		if err := p.expectDelimiter(")"); err != nil {
			return nil, err
		}
		return &ast.GeneratorExpr{Position: at(open), Element: first, Clauses: clauses}, nil
	}
	if !p.checkDelimiter(",") {
		if err := p.expectDelimiter(")"); err != nil {
			return nil, err
		}
		return first, nil
	}
	tuple := &ast.TupleLiteral{Position: at(open), Elements: []ast.Expr{first}}
	for p.matchDelimiter(",") {
		if p.checkDelimiter(")") {
			break
		}
		next, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		tuple.Elements = append(tuple.Elements, next)
	}
	if err := p.expectDelimiter(")"); err != nil {
		return nil, err
	}
	return tuple, nil
}

// parseListDisplay handles [..] literals and list comprehensions.
func (p *Parser) parseListDisplay(open lexer.Token) (ast.Expr, error) {
	if p.matchDelimiter("]") {
		return &ast.ListLiteral{Position: at(open)}, nil
	}
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.checkConcept(concept.LoopFor) {
		clauses, err := p.parseCompClauses()
		if err != nil {
			return nil, err
		}
		if err := p.expectDelimiter("]"); err != nil {
			return nil, err
		}
		return &ast.ListComprehension{Position: at(open), Element: first, Clauses: clauses}, nil
	}
	list := &ast.ListLiteral{Position: at(open), Elements: []ast.Expr{first}}
	for p.matchDelimiter(",") {
		if p.checkDelimiter("]") {
			break
		}
		next, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		list.Elements = append(list.Elements, next)
	}
	if err := p.expectDelimiter("]"); err != nil {
		return nil, err
	}
	return list, nil
}

// parseBraceDisplay handles dict and set literals and both comprehension
// forms. {} is the empty dict.
func (p *Parser) parseBraceDisplay(open lexer.Token) (ast.Expr, error) {
	if p.matchDelimiter("}") {
		return &ast.DictLiteral{Position: at(open)}, nil
	}
	if p.current().IsOperator("**") {
		return p.parseDictTail(open, nil)
	}
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.matchDelimiter(":") {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.checkConcept(concept.LoopFor) {
			clauses, err := p.parseCompClauses()
			if err != nil {
				return nil, err
			}
			if err := p.expectDelimiter("}"); err != nil {
				return nil, err
			}
			return &ast.DictComprehension{Position: at(open), Key: first, Value: value, Clauses: clauses}, nil
		}
		return p.parseDictTail(open, []ast.DictEntry{{Key: first, Value: value}})
	}
	if p.checkConcept(concept.LoopFor) {
		clauses, err := p.parseCompClauses()
		if err != nil {
			return nil, err
		}
		if err := p.expectDelimiter("}"); err != nil {
			return nil, err
		}
		return &ast.SetComprehension{Position: at(open), Element: first, Clauses: clauses}, nil
	}
	set := &ast.SetLiteral{Position: at(open), Elements: []ast.Expr{first}}
	for p.matchDelimiter(",") {
		if p.checkDelimiter("}") {
			break
		}
		next, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		set.Elements = append(set.Elements, next)
	}
	if err := p.expectDelimiter("}"); err != nil {
		return nil, err
	}
	return set, nil
}

// parseDictTail parses the remaining entries of a dict literal, including
// **unpacking entries, through the closing brace.
func (p *Parser) parseDictTail(open lexer.Token, entries []ast.DictEntry) (ast.Expr, error) {
	for {
		if len(entries) > 0 {
			if !p.matchDelimiter(",") {
				break
			}
			if p.checkDelimiter("}") {
				break
			}
		}
		if p.current().IsOperator("**") {
			p.advance()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			entries = append(entries, ast.DictEntry{Value: value})
			continue
		}
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectDelimiter(":"); err != nil {
			return nil, err
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		entries = append(entries, ast.DictEntry{Key: key, Value: value})
	}
	if err := p.expectDelimiter("}"); err != nil {
		return nil, err
	}
	return &ast.DictLiteral{Position: at(open), Entries: entries}, nil
}

// parseCompClauses parses one or more "for target in iter [if cond]..."
// clauses. Iterables and conditions parse at or-level so a following
// COND_IF always opens a condition, never a ternary.
func (p *Parser) parseCompClauses() ([]ast.CompClause, error) {
	var clauses []ast.CompClause
	for p.matchConcept(concept.LoopFor) {
		target, err := p.parseTargetList()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectConcept(concept.In); err != nil {
			return nil, err
		}
		iter, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		clause := ast.CompClause{Target: target, Iter: iter}
		for p.matchConcept(concept.CondIf) {
			cond, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			clause.Conditions = append(clause.Conditions, cond)
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

// startsExpression reports whether the current token can begin an
// expression. Used where an expression is optional: bare return, yield,
// and trailing commas in expression lists.
func (p *Parser) startsExpression() bool {
	tok := p.current()
	switch tok.Kind {
	case lexer.KindNumeral, lexer.KindString, lexer.KindFString,
		lexer.KindDateLiteral, lexer.KindIdentifier:
		return true
	case lexer.KindOperator:
		switch tok.Value {
		case "-", "+", "~", "*":
			return true
		}
		return false
	case lexer.KindDelimiter:
		switch tok.Value {
		case "(", "[", "{":
			return true
		}
		return false
	case lexer.KindKeyword:
		switch tok.Concept {
		case concept.True, concept.False, concept.None, concept.Not,
			concept.Lambda, concept.Yield, concept.Await:
			return true
		}
		return builtinConcepts[tok.Concept]
	}
	return false
}
