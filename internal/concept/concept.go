// Package concept defines the language-neutral keyword ontology: every
// reserved word in every supported natural language maps to exactly one
// concept ID, and the parser dispatches on concept IDs only.
//
// The ontology itself lives in keywords.yaml, embedded at build time and
// loaded once per process. Spellings are data; concept IDs are code.
package concept

// ID identifies one language-neutral keyword concept, such as COND_IF or
// LOOP_WHILE. IDs are stable across language packs: adding a language adds
// spellings, never IDs.
type ID string

// Control-flow concepts.
const (
	CondIf       ID = "COND_IF"
	CondElif     ID = "COND_ELIF"
	CondElse     ID = "COND_ELSE"
	LoopWhile    ID = "LOOP_WHILE"
	LoopFor      ID = "LOOP_FOR"
	In           ID = "IN"
	LoopBreak    ID = "LOOP_BREAK"
	LoopContinue ID = "LOOP_CONTINUE"
	Pass         ID = "PASS"
	Match        ID = "MATCH"
	Case         ID = "CASE"
	DefaultCase  ID = "DEFAULT"
	With         ID = "WITH"
	As           ID = "AS"
)

// Definition concepts.
const (
	FuncDef  ID = "FUNC_DEF"
	ClassDef ID = "CLASS_DEF"
	Return   ID = "RETURN"
	Yield    ID = "YIELD"
	Lambda   ID = "LAMBDA"
	Async    ID = "ASYNC"
	Await    ID = "AWAIT"
	Import   ID = "IMPORT"
	From     ID = "FROM"
	Assert   ID = "ASSERT"
)

// Logical and literal concepts.
const (
	And   ID = "AND"
	Or    ID = "OR"
	Not   ID = "NOT"
	True  ID = "TRUE"
	False ID = "FALSE"
	None  ID = "NONE"
	Is    ID = "IS"
)

// Error-handling concepts.
const (
	Try     ID = "TRY"
	Except  ID = "EXCEPT"
	Finally ID = "FINALLY"
	Raise   ID = "RAISE"
)

// Variable-binding concepts.
const (
	Let    ID = "LET"
	Const  ID = "CONST"
	Global ID = "GLOBAL"
	Local  ID = "LOCAL"
)

// Built-in type-name concepts.
const (
	TypeInt   ID = "TYPE_INT"
	TypeFloat ID = "TYPE_FLOAT"
	TypeStr   ID = "TYPE_STR"
	TypeBool  ID = "TYPE_BOOL"
	TypeList  ID = "TYPE_LIST"
	TypeDict  ID = "TYPE_DICT"
)

// Built-in I/O concepts.
const (
	Print ID = "PRINT"
	Input ID = "INPUT"
)

// IsValid reports whether id names a concept known to the default registry.
func (id ID) IsValid() bool {
	_, ok := Default().concepts[id]
	return ok
}

// Category returns the ontology category the concept belongs to
// ("control_flow", "definitions", ...) or "" for unknown concepts.
func (id ID) Category() string {
	return Default().categories[id]
}
