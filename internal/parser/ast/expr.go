package ast

// NumeralLiteral is a numeric literal. Value is the source spelling, which
// may use any decimal digit script; the front end does not convert it.
type NumeralLiteral struct {
	Position
	Value string
}

// StringLiteral is a plain string literal; Value is the interior text.
type StringLiteral struct {
	Position
	Value string
}

// FStringLiteral is a formatted string. Parts alternate between
// StringLiteral text runs and the parsed interpolation expressions, in
// source order.
type FStringLiteral struct {
	Position
	Parts []Expr
}

// DateLiteral is a 〔...〕 literal captured raw.
type DateLiteral struct {
	Position
	Value string
}

// BoolLiteral is the TRUE or FALSE concept.
type BoolLiteral struct {
	Position
	Value bool
}

// NoneLiteral is the NONE concept.
type NoneLiteral struct {
	Position
}

// Identifier is a user-chosen name in any script.
type Identifier struct {
	Position
	Name string
}

// TupleLiteral is a comma-joined expression list without brackets, or a
// parenthesized tuple.
type TupleLiteral struct {
	Position
	Elements []Expr
}

// ListLiteral is [a, b, c].
type ListLiteral struct {
	Position
	Elements []Expr
}

// SetLiteral is {a, b, c}.
type SetLiteral struct {
	Position
	Elements []Expr
}

// DictEntry is one key-value pair of a dict literal. A nil Key marks a
// **value unpacking entry.
type DictEntry struct {
	Key   Expr
	Value Expr
}

// DictLiteral is {k: v, **rest}.
type DictLiteral struct {
	Position
	Entries []DictEntry
}

// UnaryOp applies a prefix operator: -, +, ~, or the NOT concept (spelled
// "not" canonically).
type UnaryOp struct {
	Position
	Op      string
	Operand Expr
}

// BinaryOp applies an arithmetic or bitwise operator.
type BinaryOp struct {
	Position
	Op    string
	Left  Expr
	Right Expr
}

// BoolOp is a short-circuit "and"/"or". Chains are left-nested.
type BoolOp struct {
	Position
	Op    string
	Left  Expr
	Right Expr
}

// CompareOp is a comparison chain: Left Ops[0] Comparators[0] Ops[1] ...
// Membership and identity tests appear as the operators "in", "not in",
// "is", and "is not".
type CompareOp struct {
	Position
	Left        Expr
	Ops         []string
	Comparators []Expr
}

// KeywordArg is a name=value call argument.
type KeywordArg struct {
	Name  string
	Value Expr
}

// CallExpr is a function or type-constructor call.
type CallExpr struct {
	Position
	Func     Expr
	Args     []Expr
	Keywords []KeywordArg
}

// AttributeAccess is obj.attr.
type AttributeAccess struct {
	Position
	Object Expr
	Attr   string
}

// IndexAccess is obj[index]; Index may be a SliceExpr.
type IndexAccess struct {
	Position
	Object Expr
	Index  Expr
}

// SliceExpr is start:stop:step inside an index; any part may be nil.
type SliceExpr struct {
	Position
	Start Expr
	Stop  Expr
	Step  Expr
}

// StarredExpr is *value in calls and unpacking targets.
type StarredExpr struct {
	Position
	Value Expr
}

// Param is one formal parameter, with an optional default.
type Param struct {
	Name    string
	Default Expr
	Line    int
	Column  int
}

// LambdaExpr is an anonymous single-expression function.
type LambdaExpr struct {
	Position
	Params []Param
	Body   Expr
}

// ConditionalExpr is "Then if Cond else Else" in canonical order.
type ConditionalExpr struct {
	Position
	Then Expr
	Cond Expr
	Else Expr
}

// NamedExpr is the walrus binding target := value.
type NamedExpr struct {
	Position
	Target *Identifier
	Value  Expr
}

// YieldExpr produces a value from a generator; Value may be nil.
type YieldExpr struct {
	Position
	Value Expr
}

// AwaitExpr suspends on an awaitable.
type AwaitExpr struct {
	Position
	Value Expr
}

// CompClause is one "for target in iter [if cond]..." clause of a
// comprehension.
type CompClause struct {
	Target     Expr
	Iter       Expr
	Conditions []Expr
}

// ListComprehension is [elt for ... in ... if ...].
type ListComprehension struct {
	Position
	Element Expr
	Clauses []CompClause
}

// SetComprehension is {elt for ... in ...}.
type SetComprehension struct {
	Position
	Element Expr
	Clauses []CompClause
}

// DictComprehension is {k: v for ... in ...}.
type DictComprehension struct {
	Position
	Key     Expr
	Value   Expr
	Clauses []CompClause
}

// GeneratorExpr is (elt for ... in ...).
type GeneratorExpr struct {
	Position
	Element Expr
	Clauses []CompClause
}

func (*NumeralLiteral) exprNode()    {}
func (*StringLiteral) exprNode()     {}
func (*FStringLiteral) exprNode()    {}
func (*DateLiteral) exprNode()       {}
func (*BoolLiteral) exprNode()       {}
func (*NoneLiteral) exprNode()       {}
func (*Identifier) exprNode()        {}
func (*TupleLiteral) exprNode()      {}
func (*ListLiteral) exprNode()       {}
func (*SetLiteral) exprNode()        {}
func (*DictLiteral) exprNode()       {}
func (*UnaryOp) exprNode()           {}
func (*BinaryOp) exprNode()          {}
func (*BoolOp) exprNode()            {}
func (*CompareOp) exprNode()         {}
func (*CallExpr) exprNode()          {}
func (*AttributeAccess) exprNode()   {}
func (*IndexAccess) exprNode()       {}
func (*SliceExpr) exprNode()         {}
func (*StarredExpr) exprNode()       {}
func (*LambdaExpr) exprNode()        {}
func (*ConditionalExpr) exprNode()   {}
func (*NamedExpr) exprNode()         {}
func (*YieldExpr) exprNode()         {}
func (*AwaitExpr) exprNode()         {}
func (*ListComprehension) exprNode() {}
func (*SetComprehension) exprNode()  {}
func (*DictComprehension) exprNode() {}
func (*GeneratorExpr) exprNode()     {}

func (n *NumeralLiteral) Accept(v Visitor)    { v.VisitNumeralLiteral(n) }
func (n *StringLiteral) Accept(v Visitor)     { v.VisitStringLiteral(n) }
func (n *FStringLiteral) Accept(v Visitor)    { v.VisitFStringLiteral(n) }
func (n *DateLiteral) Accept(v Visitor)       { v.VisitDateLiteral(n) }
func (n *BoolLiteral) Accept(v Visitor)       { v.VisitBoolLiteral(n) }
func (n *NoneLiteral) Accept(v Visitor)       { v.VisitNoneLiteral(n) }
func (n *Identifier) Accept(v Visitor)        { v.VisitIdentifier(n) }
func (n *TupleLiteral) Accept(v Visitor)      { v.VisitTupleLiteral(n) }
func (n *ListLiteral) Accept(v Visitor)       { v.VisitListLiteral(n) }
func (n *SetLiteral) Accept(v Visitor)        { v.VisitSetLiteral(n) }
func (n *DictLiteral) Accept(v Visitor)       { v.VisitDictLiteral(n) }
func (n *UnaryOp) Accept(v Visitor)           { v.VisitUnaryOp(n) }
func (n *BinaryOp) Accept(v Visitor)          { v.VisitBinaryOp(n) }
func (n *BoolOp) Accept(v Visitor)            { v.VisitBoolOp(n) }
func (n *CompareOp) Accept(v Visitor)         { v.VisitCompareOp(n) }
func (n *CallExpr) Accept(v Visitor)          { v.VisitCallExpr(n) }
func (n *AttributeAccess) Accept(v Visitor)   { v.VisitAttributeAccess(n) }
func (n *IndexAccess) Accept(v Visitor)       { v.VisitIndexAccess(n) }
func (n *SliceExpr) Accept(v Visitor)         { v.VisitSliceExpr(n) }
func (n *StarredExpr) Accept(v Visitor)       { v.VisitStarredExpr(n) }
func (n *LambdaExpr) Accept(v Visitor)        { v.VisitLambdaExpr(n) }
func (n *ConditionalExpr) Accept(v Visitor)   { v.VisitConditionalExpr(n) }
func (n *NamedExpr) Accept(v Visitor)         { v.VisitNamedExpr(n) }
func (n *YieldExpr) Accept(v Visitor)         { v.VisitYieldExpr(n) }
func (n *AwaitExpr) Accept(v Visitor)         { v.VisitAwaitExpr(n) }
func (n *ListComprehension) Accept(v Visitor) { v.VisitListComprehension(n) }
func (n *SetComprehension) Accept(v Visitor)  { v.VisitSetComprehension(n) }
func (n *DictComprehension) Accept(v Visitor) { v.VisitDictComprehension(n) }
func (n *GeneratorExpr) Accept(v Visitor)     { v.VisitGeneratorExpr(n) }
