// Package ast defines the canonical abstract syntax tree.
//
// The node set is closed: two programs that differ only in their source
// language produce structurally identical trees, because every keyword is
// resolved to a concept before parsing and nothing language-specific
// survives into the AST. Every node carries the 1-based line and column of
// the token that opened it.
package ast

// Node is implemented by every syntax tree node.
type Node interface {
	// Pos returns the 1-based line and rune column of the node's first
	// token.
	Pos() (line, column int)
	Accept(v Visitor)
}

// Expr is the marker interface for expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is the marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Position is the source anchor every concrete node embeds.
type Position struct {
	Line   int
	Column int
}

func (p Position) Pos() (int, int) { return p.Line, p.Column }

// Program is the root node: the statements of one source file.
type Program struct {
	Position
	Statements []Stmt
}

func (n *Program) Accept(v Visitor) { v.VisitProgram(n) }

// Visitor dispatches over the closed node set. Aggregate children that are
// not nodes themselves (parameters, handlers, comprehension clauses) are
// walked by the visitor implementation.
type Visitor interface {
	VisitProgram(n *Program)

	// Expressions
	VisitNumeralLiteral(n *NumeralLiteral)
	VisitStringLiteral(n *StringLiteral)
	VisitFStringLiteral(n *FStringLiteral)
	VisitDateLiteral(n *DateLiteral)
	VisitBoolLiteral(n *BoolLiteral)
	VisitNoneLiteral(n *NoneLiteral)
	VisitIdentifier(n *Identifier)
	VisitTupleLiteral(n *TupleLiteral)
	VisitListLiteral(n *ListLiteral)
	VisitSetLiteral(n *SetLiteral)
	VisitDictLiteral(n *DictLiteral)
	VisitUnaryOp(n *UnaryOp)
	VisitBinaryOp(n *BinaryOp)
	VisitBoolOp(n *BoolOp)
	VisitCompareOp(n *CompareOp)
	VisitCallExpr(n *CallExpr)
	VisitAttributeAccess(n *AttributeAccess)
	VisitIndexAccess(n *IndexAccess)
	VisitSliceExpr(n *SliceExpr)
	VisitStarredExpr(n *StarredExpr)
	VisitLambdaExpr(n *LambdaExpr)
	VisitConditionalExpr(n *ConditionalExpr)
	VisitNamedExpr(n *NamedExpr)
	VisitYieldExpr(n *YieldExpr)
	VisitAwaitExpr(n *AwaitExpr)
	VisitListComprehension(n *ListComprehension)
	VisitSetComprehension(n *SetComprehension)
	VisitDictComprehension(n *DictComprehension)
	VisitGeneratorExpr(n *GeneratorExpr)

	// Statements
	VisitExpressionStatement(n *ExpressionStatement)
	VisitVariableDeclaration(n *VariableDeclaration)
	VisitAssignment(n *Assignment)
	VisitChainedAssignment(n *ChainedAssignment)
	VisitIfStatement(n *IfStatement)
	VisitWhileStatement(n *WhileStatement)
	VisitForStatement(n *ForStatement)
	VisitFunctionDef(n *FunctionDef)
	VisitClassDef(n *ClassDef)
	VisitReturnStatement(n *ReturnStatement)
	VisitBreakStatement(n *BreakStatement)
	VisitContinueStatement(n *ContinueStatement)
	VisitPassStatement(n *PassStatement)
	VisitRaiseStatement(n *RaiseStatement)
	VisitAssertStatement(n *AssertStatement)
	VisitGlobalStatement(n *GlobalStatement)
	VisitLocalStatement(n *LocalStatement)
	VisitImportStatement(n *ImportStatement)
	VisitFromImportStatement(n *FromImportStatement)
	VisitTryStatement(n *TryStatement)
	VisitMatchStatement(n *MatchStatement)
	VisitWithStatement(n *WithStatement)
}
