package ast

import (
	"fmt"
	"strings"
)

// Sprint renders the tree as an indented outline, one node per line. The
// outline contains no language-specific spellings beyond user-chosen
// names, so translated programs render identically.
func Sprint(n Node) string {
	var sb strings.Builder
	writeNode(&sb, n, 0)
	return sb.String()
}

func line(sb *strings.Builder, depth int, format string, args ...any) {
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, format, args...)
	sb.WriteByte('\n')
}

func writeStmts(sb *strings.Builder, label string, stmts []Stmt, depth int) {
	if len(stmts) == 0 {
		return
	}
	line(sb, depth, "%s:", label)
	for _, s := range stmts {
		writeNode(sb, s, depth+1)
	}
}

func writeExpr(sb *strings.Builder, label string, e Expr, depth int) {
	if e == nil {
		return
	}
	line(sb, depth, "%s:", label)
	writeNode(sb, e, depth+1)
}

func writeClauses(sb *strings.Builder, clauses []CompClause, depth int) {
	for _, c := range clauses {
		line(sb, depth, "for:")
		writeNode(sb, c.Target, depth+1)
		line(sb, depth, "in:")
		writeNode(sb, c.Iter, depth+1)
		for _, cond := range c.Conditions {
			line(sb, depth, "if:")
			writeNode(sb, cond, depth+1)
		}
	}
}

func writeParams(sb *strings.Builder, params []Param, depth int) {
	for _, p := range params {
		if p.Default != nil {
			line(sb, depth, "param %s =", p.Name)
			writeNode(sb, p.Default, depth+1)
		} else {
			line(sb, depth, "param %s", p.Name)
		}
	}
}

func writeNode(sb *strings.Builder, n Node, depth int) {
	switch x := n.(type) {
	case *Program:
		line(sb, depth, "Program")
		for _, s := range x.Statements {
			writeNode(sb, s, depth+1)
		}

	case *NumeralLiteral:
		line(sb, depth, "Numeral(%s)", x.Value)
	case *StringLiteral:
		line(sb, depth, "String(%q)", x.Value)
	case *DateLiteral:
		line(sb, depth, "Date(%s)", x.Value)
	case *BoolLiteral:
		line(sb, depth, "Bool(%t)", x.Value)
	case *NoneLiteral:
		line(sb, depth, "None")
	case *Identifier:
		line(sb, depth, "Identifier(%s)", x.Name)
	case *FStringLiteral:
		line(sb, depth, "FString")
		for _, p := range x.Parts {
			writeNode(sb, p, depth+1)
		}
	case *TupleLiteral:
		line(sb, depth, "Tuple")
		for _, e := range x.Elements {
			writeNode(sb, e, depth+1)
		}
	case *ListLiteral:
		line(sb, depth, "List")
		for _, e := range x.Elements {
			writeNode(sb, e, depth+1)
		}
	case *SetLiteral:
		line(sb, depth, "Set")
		for _, e := range x.Elements {
			writeNode(sb, e, depth+1)
		}
	case *DictLiteral:
		line(sb, depth, "Dict")
		for _, entry := range x.Entries {
			if entry.Key == nil {
				line(sb, depth+1, "unpack:")
				writeNode(sb, entry.Value, depth+2)
				continue
			}
			line(sb, depth+1, "entry:")
			writeNode(sb, entry.Key, depth+2)
			writeNode(sb, entry.Value, depth+2)
		}
	case *UnaryOp:
		line(sb, depth, "Unary[%s]", x.Op)
		writeNode(sb, x.Operand, depth+1)
	case *BinaryOp:
		line(sb, depth, "Binary[%s]", x.Op)
		writeNode(sb, x.Left, depth+1)
		writeNode(sb, x.Right, depth+1)
	case *BoolOp:
		line(sb, depth, "Bool[%s]", x.Op)
		writeNode(sb, x.Left, depth+1)
		writeNode(sb, x.Right, depth+1)
	case *CompareOp:
		line(sb, depth, "Compare[%s]", strings.Join(x.Ops, " "))
		writeNode(sb, x.Left, depth+1)
		for _, c := range x.Comparators {
			writeNode(sb, c, depth+1)
		}
	case *CallExpr:
		line(sb, depth, "Call")
		writeNode(sb, x.Func, depth+1)
		for _, a := range x.Args {
			writeNode(sb, a, depth+1)
		}
		for _, kw := range x.Keywords {
			line(sb, depth+1, "kw %s =", kw.Name)
			writeNode(sb, kw.Value, depth+2)
		}
	case *AttributeAccess:
		line(sb, depth, "Attribute(%s)", x.Attr)
		writeNode(sb, x.Object, depth+1)
	case *IndexAccess:
		line(sb, depth, "Index")
		writeNode(sb, x.Object, depth+1)
		writeNode(sb, x.Index, depth+1)
	case *SliceExpr:
		line(sb, depth, "Slice")
		writeExpr(sb, "start", x.Start, depth+1)
		writeExpr(sb, "stop", x.Stop, depth+1)
		writeExpr(sb, "step", x.Step, depth+1)
	case *StarredExpr:
		line(sb, depth, "Starred")
		writeNode(sb, x.Value, depth+1)
	case *LambdaExpr:
		line(sb, depth, "Lambda")
		writeParams(sb, x.Params, depth+1)
		writeExpr(sb, "body", x.Body, depth+1)
	case *ConditionalExpr:
		line(sb, depth, "Conditional")
		writeExpr(sb, "then", x.Then, depth+1)
		writeExpr(sb, "cond", x.Cond, depth+1)
		writeExpr(sb, "else", x.Else, depth+1)
	case *NamedExpr:
		line(sb, depth, "Named(%s)", x.Target.Name)
		writeNode(sb, x.Value, depth+1)
	case *YieldExpr:
		line(sb, depth, "Yield")
		if x.Value != nil {
			writeNode(sb, x.Value, depth+1)
		}
	case *AwaitExpr:
		line(sb, depth, "Await")
		writeNode(sb, x.Value, depth+1)
	case *ListComprehension:
		line(sb, depth, "ListComp")
		writeNode(sb, x.Element, depth+1)
		writeClauses(sb, x.Clauses, depth+1)
	case *SetComprehension:
		line(sb, depth, "SetComp")
		writeNode(sb, x.Element, depth+1)
		writeClauses(sb, x.Clauses, depth+1)
	case *DictComprehension:
		line(sb, depth, "DictComp")
		writeNode(sb, x.Key, depth+1)
		writeNode(sb, x.Value, depth+1)
		writeClauses(sb, x.Clauses, depth+1)
	case *GeneratorExpr:
		line(sb, depth, "Generator")
		writeNode(sb, x.Element, depth+1)
		writeClauses(sb, x.Clauses, depth+1)

	case *ExpressionStatement:
		line(sb, depth, "ExpressionStatement")
		writeNode(sb, x.Expr, depth+1)
	case *VariableDeclaration:
		kind := "let"
		if x.IsConst {
			kind = "const"
		}
		line(sb, depth, "Declare[%s](%s)", kind, x.Name)
		if x.Value != nil {
			writeNode(sb, x.Value, depth+1)
		}
	case *Assignment:
		line(sb, depth, "Assign[%s]", x.Op)
		writeNode(sb, x.Target, depth+1)
		writeNode(sb, x.Value, depth+1)
	case *ChainedAssignment:
		line(sb, depth, "ChainedAssign")
		for _, t := range x.Targets {
			writeNode(sb, t, depth+1)
		}
		writeExpr(sb, "value", x.Value, depth+1)
	case *IfStatement:
		line(sb, depth, "IfStatement")
		writeExpr(sb, "cond", x.Cond, depth+1)
		writeStmts(sb, "body", x.Body, depth+1)
		writeStmts(sb, "else", x.Else, depth+1)
	case *WhileStatement:
		line(sb, depth, "WhileStatement")
		writeExpr(sb, "cond", x.Cond, depth+1)
		writeStmts(sb, "body", x.Body, depth+1)
	case *ForStatement:
		line(sb, depth, "ForStatement")
		writeExpr(sb, "target", x.Target, depth+1)
		writeExpr(sb, "iter", x.Iter, depth+1)
		writeStmts(sb, "body", x.Body, depth+1)
	case *FunctionDef:
		name := "FunctionDef"
		if x.IsAsync {
			name = "AsyncFunctionDef"
		}
		line(sb, depth, "%s(%s)", name, x.Name)
		for _, d := range x.Decorators {
			line(sb, depth+1, "decorator:")
			writeNode(sb, d, depth+2)
		}
		writeParams(sb, x.Params, depth+1)
		writeStmts(sb, "body", x.Body, depth+1)
	case *ClassDef:
		line(sb, depth, "ClassDef(%s)", x.Name)
		for _, d := range x.Decorators {
			line(sb, depth+1, "decorator:")
			writeNode(sb, d, depth+2)
		}
		for _, b := range x.Bases {
			line(sb, depth+1, "base:")
			writeNode(sb, b, depth+2)
		}
		writeStmts(sb, "body", x.Body, depth+1)
	case *ReturnStatement:
		line(sb, depth, "Return")
		if x.Value != nil {
			writeNode(sb, x.Value, depth+1)
		}
	case *BreakStatement:
		line(sb, depth, "Break")
	case *ContinueStatement:
		line(sb, depth, "Continue")
	case *PassStatement:
		line(sb, depth, "Pass")
	case *RaiseStatement:
		line(sb, depth, "Raise")
		if x.Exc != nil {
			writeNode(sb, x.Exc, depth+1)
		}
	case *AssertStatement:
		line(sb, depth, "Assert")
		writeNode(sb, x.Test, depth+1)
		if x.Msg != nil {
			writeNode(sb, x.Msg, depth+1)
		}
	case *GlobalStatement:
		line(sb, depth, "Global(%s)", strings.Join(x.Names, ", "))
	case *LocalStatement:
		line(sb, depth, "Local(%s)", strings.Join(x.Names, ", "))
	case *ImportStatement:
		if x.Alias != "" {
			line(sb, depth, "Import(%s as %s)", x.Module, x.Alias)
		} else {
			line(sb, depth, "Import(%s)", x.Module)
		}
	case *FromImportStatement:
		names := make([]string, len(x.Names))
		for i, imp := range x.Names {
			names[i] = imp.Name
			if imp.Alias != "" {
				names[i] += " as " + imp.Alias
			}
		}
		line(sb, depth, "FromImport(%s: %s)", x.Module, strings.Join(names, ", "))
	case *TryStatement:
		line(sb, depth, "Try")
		writeStmts(sb, "body", x.Body, depth+1)
		for _, h := range x.Handlers {
			if h.Name != "" {
				line(sb, depth+1, "except as %s:", h.Name)
			} else {
				line(sb, depth+1, "except:")
			}
			if h.Type != nil {
				writeNode(sb, h.Type, depth+2)
			}
			writeStmts(sb, "body", h.Body, depth+2)
		}
		writeStmts(sb, "finally", x.Finally, depth+1)
	case *MatchStatement:
		line(sb, depth, "Match")
		writeExpr(sb, "subject", x.Subject, depth+1)
		for _, c := range x.Cases {
			if c.Pattern == nil {
				line(sb, depth+1, "default:")
			} else {
				line(sb, depth+1, "case:")
				writeNode(sb, c.Pattern, depth+2)
			}
			writeStmts(sb, "body", c.Body, depth+2)
		}
	case *WithStatement:
		line(sb, depth, "With")
		for _, item := range x.Items {
			if item.Name != "" {
				line(sb, depth+1, "item as %s:", item.Name)
			} else {
				line(sb, depth+1, "item:")
			}
			writeNode(sb, item.Context, depth+2)
		}
		writeStmts(sb, "body", x.Body, depth+1)

	default:
		line(sb, depth, "%T", n)
	}
}
