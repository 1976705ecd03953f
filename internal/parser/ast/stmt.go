package ast

// ExpressionStatement is an expression evaluated for effect.
type ExpressionStatement struct {
	Position
	Expr Expr
}

// VariableDeclaration introduces a binding with LET or CONST. Value may be
// nil for a bare "let x" declaration.
type VariableDeclaration struct {
	Position
	Name    string
	IsConst bool
	Value   Expr
}

// Assignment is "target op value" where op is "=" or an augmented form
// (+=, -=, ...). Target may be an Identifier, AttributeAccess,
// IndexAccess, or a TupleLiteral of targets.
type Assignment struct {
	Position
	Target Expr
	Op     string
	Value  Expr
}

// ChainedAssignment is "a = b = value": every target receives the value.
type ChainedAssignment struct {
	Position
	Targets []Expr
	Value   Expr
}

// IfStatement covers if/elif/else. An elif chain parses as a nested
// IfStatement as the sole statement of Else.
type IfStatement struct {
	Position
	Cond Expr
	Body []Stmt
	Else []Stmt
}

// WhileStatement loops while Cond holds.
type WhileStatement struct {
	Position
	Cond Expr
	Body []Stmt
}

// ForStatement iterates Target over Iter. Target may be a TupleLiteral for
// unpacking loops.
type ForStatement struct {
	Position
	Target Expr
	Iter   Expr
	Body   []Stmt
}

// FunctionDef is a named function definition.
type FunctionDef struct {
	Position
	Name       string
	Params     []Param
	Body       []Stmt
	Decorators []Expr
	IsAsync    bool
}

// ClassDef is a class definition with optional base classes.
type ClassDef struct {
	Position
	Name       string
	Bases      []Expr
	Body       []Stmt
	Decorators []Expr
}

// ReturnStatement returns from a function; Value may be nil.
type ReturnStatement struct {
	Position
	Value Expr
}

// BreakStatement exits the innermost loop.
type BreakStatement struct {
	Position
}

// ContinueStatement advances the innermost loop.
type ContinueStatement struct {
	Position
}

// PassStatement does nothing.
type PassStatement struct {
	Position
}

// RaiseStatement raises an exception; Exc may be nil for a re-raise.
type RaiseStatement struct {
	Position
	Exc Expr
}

// AssertStatement checks Test; Msg is the optional failure message.
type AssertStatement struct {
	Position
	Test Expr
	Msg  Expr
}

// GlobalStatement declares names as module-level bindings.
type GlobalStatement struct {
	Position
	Names []string
}

// LocalStatement declares names as local to the enclosing function.
type LocalStatement struct {
	Position
	Names []string
}

// ImportStatement is "import module [as alias]". Module is the dotted
// path.
type ImportStatement struct {
	Position
	Module string
	Alias  string
}

// ImportName is one imported name with its optional alias.
type ImportName struct {
	Name  string
	Alias string
}

// FromImportStatement is "from module import a [as b], ...".
type FromImportStatement struct {
	Position
	Module string
	Names  []ImportName
}

// ExceptHandler is one except clause. Type may be nil (catch-all); Name is
// the optional AS binding.
type ExceptHandler struct {
	Type   Expr
	Name   string
	Body   []Stmt
	Line   int
	Column int
}

// TryStatement is try/except/finally.
type TryStatement struct {
	Position
	Body     []Stmt
	Handlers []ExceptHandler
	Finally  []Stmt
}

// CaseClause is one case of a match statement. A nil Pattern is the
// DEFAULT clause.
type CaseClause struct {
	Pattern Expr
	Body    []Stmt
	Line    int
	Column  int
}

// MatchStatement dispatches Subject over case clauses.
type MatchStatement struct {
	Position
	Subject Expr
	Cases   []CaseClause
}

// WithItem is one context manager of a with statement, with its optional
// AS binding.
type WithItem struct {
	Context Expr
	Name    string
}

// WithStatement runs Body inside the given context managers.
type WithStatement struct {
	Position
	Items []WithItem
	Body  []Stmt
}

func (*ExpressionStatement) stmtNode() {}
func (*VariableDeclaration) stmtNode() {}
func (*Assignment) stmtNode()          {}
func (*ChainedAssignment) stmtNode()   {}
func (*IfStatement) stmtNode()         {}
func (*WhileStatement) stmtNode()      {}
func (*ForStatement) stmtNode()        {}
func (*FunctionDef) stmtNode()         {}
func (*ClassDef) stmtNode()            {}
func (*ReturnStatement) stmtNode()     {}
func (*BreakStatement) stmtNode()      {}
func (*ContinueStatement) stmtNode()   {}
func (*PassStatement) stmtNode()       {}
func (*RaiseStatement) stmtNode()      {}
func (*AssertStatement) stmtNode()     {}
func (*GlobalStatement) stmtNode()     {}
func (*LocalStatement) stmtNode()      {}
func (*ImportStatement) stmtNode()     {}
func (*FromImportStatement) stmtNode() {}
func (*TryStatement) stmtNode()        {}
func (*MatchStatement) stmtNode()      {}
func (*WithStatement) stmtNode()       {}

func (n *ExpressionStatement) Accept(v Visitor) { v.VisitExpressionStatement(n) }
func (n *VariableDeclaration) Accept(v Visitor) { v.VisitVariableDeclaration(n) }
func (n *Assignment) Accept(v Visitor)          { v.VisitAssignment(n) }
func (n *ChainedAssignment) Accept(v Visitor)   { v.VisitChainedAssignment(n) }
func (n *IfStatement) Accept(v Visitor)         { v.VisitIfStatement(n) }
func (n *WhileStatement) Accept(v Visitor)      { v.VisitWhileStatement(n) }
func (n *ForStatement) Accept(v Visitor)        { v.VisitForStatement(n) }
func (n *FunctionDef) Accept(v Visitor)         { v.VisitFunctionDef(n) }
func (n *ClassDef) Accept(v Visitor)            { v.VisitClassDef(n) }
func (n *ReturnStatement) Accept(v Visitor)     { v.VisitReturnStatement(n) }
func (n *BreakStatement) Accept(v Visitor)      { v.VisitBreakStatement(n) }
func (n *ContinueStatement) Accept(v Visitor)   { v.VisitContinueStatement(n) }
func (n *PassStatement) Accept(v Visitor)       { v.VisitPassStatement(n) }
func (n *RaiseStatement) Accept(v Visitor)      { v.VisitRaiseStatement(n) }
func (n *AssertStatement) Accept(v Visitor)     { v.VisitAssertStatement(n) }
func (n *GlobalStatement) Accept(v Visitor)     { v.VisitGlobalStatement(n) }
func (n *LocalStatement) Accept(v Visitor)      { v.VisitLocalStatement(n) }
func (n *ImportStatement) Accept(v Visitor)     { v.VisitImportStatement(n) }
func (n *FromImportStatement) Accept(v Visitor) { v.VisitFromImportStatement(n) }
func (n *TryStatement) Accept(v Visitor)        { v.VisitTryStatement(n) }
func (n *MatchStatement) Accept(v Visitor)      { v.VisitMatchStatement(n) }
func (n *WithStatement) Accept(v Visitor)       { v.VisitWithStatement(n) }
