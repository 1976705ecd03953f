// Package parser builds the canonical AST from a normalized token stream.
//
// The parser is recursive descent and dispatches on concept IDs, never on
// spellings, so the same grammar serves every supported language. Compound
// statements follow the indentation structure the lexer already resolved
// into Indent/Dedent tokens. The first syntax error is fatal; there is no
// recovery or resynchronization.
package parser

import (
	"github.com/usmlang/usm/internal/concept"
	"github.com/usmlang/usm/internal/lexer"
	"github.com/usmlang/usm/internal/message"
	"github.com/usmlang/usm/internal/parser/ast"
)

// Parser consumes one token stream. Create one per parse with New.
type Parser struct {
	tokens []lexer.Token
	pos    int
	lang   string
	reg    *concept.Registry
}

// New creates a Parser over tokens. lang is the source language the tokens
// were lexed in; it keys sub-lexing of f-string interpolations. Comment
// tokens are filtered here, so the grammar never sees them.
func New(tokens []lexer.Token, lang string) *Parser {
	filtered := make([]lexer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != lexer.KindComment {
			filtered = append(filtered, tok)
		}
	}
	if len(filtered) == 0 || filtered[len(filtered)-1].Kind != lexer.KindEOF {
		filtered = append(filtered, lexer.Token{Kind: lexer.KindEOF, Line: 1, Column: 1})
	}
	return &Parser{tokens: filtered, lang: lang, reg: concept.Default()}
}

// Parse builds the AST for a whole token stream.
func Parse(tokens []lexer.Token, lang string) (*ast.Program, error) {
	return New(tokens, lang).ParseProgram()
}

// ParseProgram parses statements until end of input.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{Position: at(p.current())}
	for {
		p.skipNewlines()
		if p.current().Kind == lexer.KindEOF {
			return program, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Statements = append(program.Statements, stmt)
	}
}

// --- token plumbing ---

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAhead(n int) lexer.Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() lexer.Token {
	tok := p.current()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) checkConcept(id concept.ID) bool {
	return p.current().Is(id)
}

func (p *Parser) matchConcept(id concept.ID) bool {
	if p.checkConcept(id) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) checkDelimiter(value string) bool {
	return p.current().IsDelimiter(value)
}

func (p *Parser) matchDelimiter(value string) bool {
	if p.checkDelimiter(value) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchOperator(value string) bool {
	if p.current().IsOperator(value) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expectDelimiter(value string) error {
	if p.matchDelimiter(value) {
		return nil
	}
	tok := p.current()
	switch value {
	case ")", "]", "}":
		return errorAt(tok, "MISMATCHED_DELIMITER", message.Args{"delimiter": value})
	}
	return errorAt(tok, "EXPECTED_TOKEN", message.Args{"expected": value, "token": describe(tok)})
}

func (p *Parser) expectConcept(id concept.ID) (lexer.Token, error) {
	if p.checkConcept(id) {
		return p.advance(), nil
	}
	tok := p.current()
	spelling, err := p.reg.KeywordFor(id, p.lang)
	if err != nil {
		spelling = string(id)
	}
	return tok, errorAt(tok, "EXPECTED_TOKEN", message.Args{"expected": spelling, "token": describe(tok)})
}

// expectIdentifier consumes a name in a binding position. Built-in keyword
// concepts (print, input, the type names) are accepted too, carrying their
// English canonical spelling, so user code can rebind a builtin the same
// way it can read one.
func (p *Parser) expectIdentifier() (lexer.Token, error) {
	tok := p.current()
	switch {
	case tok.Kind == lexer.KindIdentifier:
		return p.advance(), nil
	case tok.Kind == lexer.KindKeyword && builtinConcepts[tok.Concept]:
		p.advance()
		tok.Kind = lexer.KindIdentifier
		tok.Value = p.builtinName(tok.Concept)
		return tok, nil
	}
	return tok, errorAt(tok, "EXPECTED_IDENTIFIER", message.Args{"token": describe(tok)})
}

// endOfStatement consumes the logical end of a simple statement.
func (p *Parser) endOfStatement() error {
	tok := p.current()
	switch tok.Kind {
	case lexer.KindNewline:
		p.advance()
		return nil
	case lexer.KindDedent, lexer.KindEOF:
		return nil
	}
	return errorAt(tok, "UNEXPECTED_TOKEN", message.Args{"token": describe(tok)})
}

func (p *Parser) skipNewlines() {
	for p.current().Kind == lexer.KindNewline {
		p.advance()
	}
}

func at(tok lexer.Token) ast.Position {
	return ast.Position{Line: tok.Line, Column: tok.Column}
}

// --- statements ---

func (p *Parser) parseStatement() (ast.Stmt, error) {
	tok := p.current()

	if tok.IsDelimiter("@") {
		return p.parseDecorated()
	}

	if tok.Kind == lexer.KindKeyword {
		switch tok.Concept {
		case concept.CondIf:
			return p.parseIf()
		case concept.LoopWhile:
			return p.parseWhile()
		case concept.LoopFor:
			return p.parseFor()
		case concept.FuncDef:
			return p.parseFunctionDef(false, nil)
		case concept.Async:
			return p.parseAsync(nil)
		case concept.ClassDef:
			return p.parseClassDef(nil)
		case concept.Try:
			return p.parseTry()
		case concept.Match:
			return p.parseMatch()
		case concept.With:
			return p.parseWith()
		case concept.Let, concept.Const:
			return p.parseVariableDeclaration()
		case concept.Return:
			return p.parseReturn()
		case concept.Raise:
			return p.parseRaise()
		case concept.Assert:
			return p.parseAssert()
		case concept.LoopBreak:
			p.advance()
			return &ast.BreakStatement{Position: at(tok)}, p.endOfStatement()
		case concept.LoopContinue:
			p.advance()
			return &ast.ContinueStatement{Position: at(tok)}, p.endOfStatement()
		case concept.Pass:
			p.advance()
			return &ast.PassStatement{Position: at(tok)}, p.endOfStatement()
		case concept.Global:
			return p.parseScopeDeclaration(true)
		case concept.Local:
			return p.parseScopeDeclaration(false)
		case concept.Import:
			return p.parseImport()
		case concept.From:
			return p.parseFromImport()
		}
	}

	return p.parseExpressionStatement()
}

// parseBlock parses ": NEWLINE INDENT statements DEDENT".
func (p *Parser) parseBlock() ([]ast.Stmt, error) {
	if err := p.expectDelimiter(":"); err != nil {
		return nil, err
	}
	if p.current().Kind != lexer.KindNewline {
		return nil, errorAt(p.current(), "EXPECTED_INDENTED_BLOCK", nil)
	}
	p.advance()
	if p.current().Kind != lexer.KindIndent {
		return nil, errorAt(p.current(), "EXPECTED_INDENTED_BLOCK", nil)
	}
	p.advance()

	var body []ast.Stmt
	for {
		p.skipNewlines()
		switch p.current().Kind {
		case lexer.KindDedent:
			p.advance()
			return body, nil
		case lexer.KindEOF:
			return body, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	tok := p.advance() // COND_IF or COND_ELIF
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.IfStatement{Position: at(tok), Cond: cond, Body: body}

	switch {
	case p.checkConcept(concept.CondElif):
		nested, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		node.Else = []ast.Stmt{nested}
	case p.matchConcept(concept.CondElse):
		orelse, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Else = orelse
	}
	return node, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	tok := p.advance()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Position: at(tok), Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (ast.Stmt, error) {
	tok := p.advance()
	target, err := p.parseTargetList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectConcept(concept.In); err != nil {
		return nil, err
	}
	iter, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForStatement{Position: at(tok), Target: target, Iter: iter, Body: body}, nil
}

// parseTargetList parses a binding target: one postfix expression or a
// comma-joined tuple of them, with optional * unpacking.
func (p *Parser) parseTargetList() (ast.Expr, error) {
	first, err := p.parseTarget()
	if err != nil {
		return nil, err
	}
	if !p.checkDelimiter(",") {
		return first, nil
	}
	tuple := &ast.TupleLiteral{Position: positionOf(first), Elements: []ast.Expr{first}}
	for p.matchDelimiter(",") {
		next, err := p.parseTarget()
		if err != nil {
			return nil, err
		}
		tuple.Elements = append(tuple.Elements, next)
	}
	return tuple, nil
}

func (p *Parser) parseTarget() (ast.Expr, error) {
	if tok := p.current(); tok.IsOperator("*") {
		p.advance()
		inner, err := p.parseTarget()
		if err != nil {
			return nil, err
		}
		return &ast.StarredExpr{Position: at(tok), Value: inner}, nil
	}
	return p.parsePostfix()
}

func positionOf(n ast.Node) ast.Position {
	line, col := n.Pos()
	return ast.Position{Line: line, Column: col}
}

func (p *Parser) parseDecorated() (ast.Stmt, error) {
	var decorators []ast.Expr
	for p.matchDelimiter("@") {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		decorators = append(decorators, expr)
		if err := p.endOfStatement(); err != nil {
			return nil, err
		}
		p.skipNewlines()
	}
	tok := p.current()
	switch {
	case tok.Is(concept.FuncDef):
		return p.parseFunctionDef(false, decorators)
	case tok.Is(concept.Async):
		return p.parseAsync(decorators)
	case tok.Is(concept.ClassDef):
		return p.parseClassDef(decorators)
	}
	return nil, errorAt(tok, "UNEXPECTED_TOKEN", message.Args{"token": describe(tok)})
}

func (p *Parser) parseAsync(decorators []ast.Expr) (ast.Stmt, error) {
	p.advance() // ASYNC
	if !p.checkConcept(concept.FuncDef) {
		tok := p.current()
		return nil, errorAt(tok, "UNEXPECTED_TOKEN", message.Args{"token": describe(tok)})
	}
	return p.parseFunctionDef(true, decorators)
}

func (p *Parser) parseFunctionDef(isAsync bool, decorators []ast.Expr) (ast.Stmt, error) {
	tok := p.advance() // FUNC_DEF
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if err := p.expectDelimiter("("); err != nil {
		return nil, err
	}
	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDef{
		Position:   at(tok),
		Name:       name.Value,
		Params:     params,
		Body:       body,
		Decorators: decorators,
		IsAsync:    isAsync,
	}, nil
}

// parseParams parses a parameter list through the closing parenthesis.
func (p *Parser) parseParams() ([]ast.Param, error) {
	var params []ast.Param
	if p.matchDelimiter(")") {
		return params, nil
	}
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
		if p.matchDelimiter(",") {
			continue
		}
		if err := p.expectDelimiter(")"); err != nil {
			return nil, err
		}
		return params, nil
	}
}

func (p *Parser) parseClassDef(decorators []ast.Expr) (ast.Stmt, error) {
	tok := p.advance() // CLASS_DEF
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	var bases []ast.Expr
	if p.matchDelimiter("(") {
		for !p.checkDelimiter(")") {
			base, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			bases = append(bases, base)
			if !p.matchDelimiter(",") {
				break
			}
		}
		if err := p.expectDelimiter(")"); err != nil {
			return nil, err
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ClassDef{
		Position:   at(tok),
		Name:       name.Value,
		Bases:      bases,
		Body:       body,
		Decorators: decorators,
	}, nil
}

func (p *Parser) parseTry() (ast.Stmt, error) {
	tok := p.advance() // TRY
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node := &ast.TryStatement{Position: at(tok), Body: body}

	for p.checkConcept(concept.Except) {
		exTok := p.advance()
		handler := ast.ExceptHandler{Line: exTok.Line, Column: exTok.Column}
		if !p.checkDelimiter(":") {
			typ, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			handler.Type = typ
			if p.matchConcept(concept.As) {
				name, err := p.expectIdentifier()
				if err != nil {
					return nil, err
				}
				handler.Name = name.Value
			}
		}
		handlerBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		handler.Body = handlerBody
		node.Handlers = append(node.Handlers, handler)
	}

	if p.matchConcept(concept.Finally) {
		finally, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Finally = finally
	}

	if len(node.Handlers) == 0 && node.Finally == nil {
		tok := p.current()
		return nil, errorAt(tok, "UNEXPECTED_TOKEN", message.Args{"token": describe(tok)})
	}
	return node, nil
}

func (p *Parser) parseMatch() (ast.Stmt, error) {
	tok := p.advance() // MATCH
	subject, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectDelimiter(":"); err != nil {
		return nil, err
	}
	if p.current().Kind != lexer.KindNewline {
		return nil, errorAt(p.current(), "EXPECTED_INDENTED_BLOCK", nil)
	}
	p.advance()
	if p.current().Kind != lexer.KindIndent {
		return nil, errorAt(p.current(), "EXPECTED_INDENTED_BLOCK", nil)
	}
	p.advance()

	node := &ast.MatchStatement{Position: at(tok), Subject: subject}
	for {
		p.skipNewlines()
		cur := p.current()
		switch {
		case cur.Kind == lexer.KindDedent:
			p.advance()
			if len(node.Cases) == 0 {
				return nil, errorAt(cur, "UNEXPECTED_TOKEN", message.Args{"token": describe(cur)})
			}
			return node, nil
		case cur.Is(concept.Case):
			p.advance()
			pattern, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			node.Cases = append(node.Cases, ast.CaseClause{
				Pattern: pattern, Body: body, Line: cur.Line, Column: cur.Column,
			})
		case cur.Is(concept.DefaultCase):
			p.advance()
			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			node.Cases = append(node.Cases, ast.CaseClause{
				Body: body, Line: cur.Line, Column: cur.Column,
			})
		default:
			return nil, errorAt(cur, "UNEXPECTED_TOKEN", message.Args{"token": describe(cur)})
		}
	}
}

func (p *Parser) parseWith() (ast.Stmt, error) {
	tok := p.advance() // WITH
	node := &ast.WithStatement{Position: at(tok)}
	for {
		context, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		item := ast.WithItem{Context: context}
		if p.matchConcept(concept.As) {
			name, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			item.Name = name.Value
		}
		node.Items = append(node.Items, item)
		if !p.matchDelimiter(",") {
			break
		}
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	node.Body = body
	return node, nil
}

func (p *Parser) parseVariableDeclaration() (ast.Stmt, error) {
	tok := p.advance() // LET or CONST
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	node := &ast.VariableDeclaration{
		Position: at(tok),
		Name:     name.Value,
		IsConst:  tok.Is(concept.Const),
	}
	if p.matchOperator("=") {
		value, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		node.Value = value
	}
	return node, p.endOfStatement()
}

func (p *Parser) parseReturn() (ast.Stmt, error) {
	tok := p.advance() // RETURN
	node := &ast.ReturnStatement{Position: at(tok)}
	if !p.atStatementEnd() {
		value, err := p.parseExpressionList()
		if err != nil {
			return nil, err
		}
		node.Value = value
	}
	return node, p.endOfStatement()
}

func (p *Parser) parseRaise() (ast.Stmt, error) {
	tok := p.advance() // RAISE
	node := &ast.RaiseStatement{Position: at(tok)}
	if !p.atStatementEnd() {
		exc, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Exc = exc
	}
	return node, p.endOfStatement()
}

func (p *Parser) parseAssert() (ast.Stmt, error) {
	tok := p.advance() // ASSERT
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node := &ast.AssertStatement{Position: at(tok), Test: test}
	if p.matchDelimiter(",") {
		msg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		node.Msg = msg
	}
	return node, p.endOfStatement()
}

func (p *Parser) parseScopeDeclaration(global bool) (ast.Stmt, error) {
	tok := p.advance() // GLOBAL or LOCAL
	var names []string
	for {
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		names = append(names, name.Value)
		if !p.matchDelimiter(",") {
			break
		}
	}
	if global {
		return &ast.GlobalStatement{Position: at(tok), Names: names}, p.endOfStatement()
	}
	return &ast.LocalStatement{Position: at(tok), Names: names}, p.endOfStatement()
}

// parseDottedName parses "a.b.c" and returns the joined path.
func (p *Parser) parseDottedName() (string, error) {
	name, err := p.expectIdentifier()
	if err != nil {
		return "", err
	}
	path := name.Value
	for p.matchDelimiter(".") {
		part, err := p.expectIdentifier()
		if err != nil {
			return "", err
		}
		path += "." + part.Value
	}
	return path, nil
}

func (p *Parser) parseImport() (ast.Stmt, error) {
	tok := p.advance() // IMPORT
	module, err := p.parseDottedName()
	if err != nil {
		return nil, err
	}
	node := &ast.ImportStatement{Position: at(tok), Module: module}
	if p.matchConcept(concept.As) {
		alias, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		node.Alias = alias.Value
	}
	return node, p.endOfStatement()
}

func (p *Parser) parseFromImport() (ast.Stmt, error) {
	tok := p.advance() // FROM
	module, err := p.parseDottedName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectConcept(concept.Import); err != nil {
		return nil, err
	}
	node := &ast.FromImportStatement{Position: at(tok), Module: module}
	for {
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		imported := ast.ImportName{Name: name.Value}
		if p.matchConcept(concept.As) {
			alias, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			imported.Alias = alias.Value
		}
		node.Names = append(node.Names, imported)
		if !p.matchDelimiter(",") {
			break
		}
	}
	return node, p.endOfStatement()
}

func (p *Parser) atStatementEnd() bool {
	switch p.current().Kind {
	case lexer.KindNewline, lexer.KindDedent, lexer.KindEOF:
		return true
	}
	return false
}

// parseExpressionStatement parses expression statements and every
// assignment form: plain, augmented, chained, and tuple-unpacking.
func (p *Parser) parseExpressionStatement() (ast.Stmt, error) {
	tok := p.current()
	expr, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}

	cur := p.current()
	if cur.Kind == lexer.KindOperator {
		switch cur.Value {
		case "=":
			return p.parseAssignmentTail(tok, expr)
		case "+=", "-=", "*=", "/=", "%=", "**=", "//=", "<<=", ">>=":
			p.advance()
			value, err := p.parseExpressionList()
			if err != nil {
				return nil, err
			}
			node := &ast.Assignment{Position: at(tok), Target: expr, Op: cur.Value, Value: value}
			return node, p.endOfStatement()
		}
	}

	return &ast.ExpressionStatement{Position: at(tok), Expr: expr}, p.endOfStatement()
}

// parseAssignmentTail handles "t = value" and "a = b = value". The targets
// collected so far become a chain when more '=' follow.
func (p *Parser) parseAssignmentTail(tok lexer.Token, first ast.Expr) (ast.Stmt, error) {
	targets := []ast.Expr{first}
	p.advance() // '='
	value, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	for p.current().IsOperator("=") {
		p.advance()
		targets = append(targets, value)
		value, err = p.parseExpressionList()
		if err != nil {
			return nil, err
		}
	}
	if len(targets) == 1 {
		node := &ast.Assignment{Position: at(tok), Target: targets[0], Op: "=", Value: value}
		return node, p.endOfStatement()
	}
	node := &ast.ChainedAssignment{Position: at(tok), Targets: targets, Value: value}
	return node, p.endOfStatement()
}
