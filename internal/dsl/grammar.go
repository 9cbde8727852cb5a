package dsl

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var dslLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Keyword", Pattern: `(?i)\b(DECLARE|REGISTER|COMPILE|SINK|ENDPATH|DROP|COUNT|FORWARD|HOOK|GROUPBY|INGRESS|EGRESS|PATH|EPSILON|EMPTY)\b`},
	{Name: "String", Pattern: `"([^"\\]|\\.)*"`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `\*\*|[(),=^|&~*;]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// Grammar is the top-level AST node: either a session-mutating statement
// (DECLARE/REGISTER) or the COMPILE query.
type Grammar struct {
	Statement *StatementAST `parser:"  @@"`
	Query     *QueryAST     `parser:"| @@"`
}

// StatementAST dispatches on DECLARE or REGISTER.
type StatementAST struct {
	Declare  *DeclareAST  `parser:"\"DECLARE\" @@"`
	Register *RegisterAST `parser:"| \"REGISTER\" @@"`
}

// QueryAST: the single COMPILE query, which stitches every registered path
// policy into a (tagging, capture) pair.
type QueryAST struct {
	Compile bool `parser:"@\"COMPILE\""`
}

// DeclareAST: SINK <name> <spec>, names a fresh bucket.
type DeclareAST struct {
	SinkName string       `parser:"\"SINK\" @Ident"`
	Spec     *SinkSpecAST `parser:"@@"`
}

// SinkSpecAST dispatches on the bucket kind.
type SinkSpecAST struct {
	Count   bool         `parser:"  @\"COUNT\""`
	Forward bool         `parser:"| @\"FORWARD\""`
	Hook    *HookSpecAST `parser:"| \"HOOK\" \"(\" @@ \")\""`
}

// HookSpecAST: comma-separated grouping field names.
type HookSpecAST struct {
	Fields []string `parser:"@Ident ( \",\" @Ident )*"`
}

// RegisterAST: PATH <expr> SINK <name> [ENDPATH <name>] [DROP <name>].
// Adds a path policy to the session.
type RegisterAST struct {
	Path     *PathExprAST `parser:"\"PATH\" @@"`
	Sink     string       `parser:"\"SINK\" @Ident"`
	EndPath  *string      `parser:"( \"ENDPATH\" @Ident )?"`
	Dropping *string      `parser:"( \"DROP\" @Ident )?"`
}

// PathExprAST is the lowest-precedence level: alternation (|).
type PathExprAST struct {
	Left *ConcatExprAST `parser:"@@"`
	Rest []*OrRestAST   `parser:"( @@ )*"`
}

type OrRestAST struct {
	Right *ConcatExprAST `parser:"\"|\" @@"`
}

// ConcatExprAST: concatenation (^) and concat-anywhere (**), left-assoc.
type ConcatExprAST struct {
	Left *InterExprAST    `parser:"@@"`
	Rest []*ConcatRestAST `parser:"( @@ )*"`
}

type ConcatRestAST struct {
	Op    string        `parser:"@( \"^\" | \"**\" )"`
	Right *InterExprAST `parser:"@@"`
}

// InterExprAST: intersection (&), left-assoc.
type InterExprAST struct {
	Left *UnaryExprAST   `parser:"@@"`
	Rest []*InterRestAST `parser:"( @@ )*"`
}

type InterRestAST struct {
	Right *UnaryExprAST `parser:"\"&\" @@"`
}

// UnaryExprAST: prefix negation (~).
type UnaryExprAST struct {
	Negate  bool            `parser:"@\"~\"?"`
	Postfix *PostfixExprAST `parser:"@@"`
}

// PostfixExprAST: postfix Kleene star (*).
type PostfixExprAST struct {
	Primary *PrimaryExprAST `parser:"@@"`
	Star    bool            `parser:"@\"*\"?"`
}

// PrimaryExprAST: an atom, the epsilon/empty literals, or a parenthesized
// sub-expression.
type PrimaryExprAST struct {
	Atom    *AtomExprAST `parser:"  @@"`
	Epsilon bool         `parser:"| @\"EPSILON\""`
	Empty   bool         `parser:"| @\"EMPTY\""`
	Group   *PathExprAST `parser:"| \"(\" @@ \")\""`
}

// AtomExprAST: KIND(k1=v1, k2=v2, ...) with an optional GROUPBY clause,
// required exactly when KIND is HOOK.
type AtomExprAST struct {
	Kind    string     `parser:"@( \"INGRESS\" | \"EGRESS\" | \"DROP\" | \"ENDPATH\" | \"HOOK\" )"`
	Attrs   []*AttrAST `parser:"\"(\" ( @@ ( \",\" @@ )* )? \")\""`
	Groupby []string   `parser:"( \";\" \"GROUPBY\" @Ident ( \",\" @Ident )* )?"`
}

// AttrAST: key=value, an equality constraint on one located-packet field.
type AttrAST struct {
	Key   string `parser:"@Ident \"=\""`
	Value string `parser:"@( Ident | String )"`
}

var dslParser = participle.MustBuild[Grammar](
	participle.Lexer(dslLexer),
	participle.CaseInsensitive("Keyword"),
	participle.Elide("Whitespace"),
)
