package dsl

import (
	"fmt"

	"github.com/ritamzico/pathquery/internal/pathexpr"
	"github.com/ritamzico/pathquery/internal/predicate"
	"github.com/ritamzico/pathquery/internal/sink"
	"github.com/ritamzico/pathquery/internal/stitcher"
	"github.com/ritamzico/pathquery/internal/vfield"
)

// Session is one compile session's accumulated state: the atom-canonicalizing
// context, the named sinks declared so far, and the path policies registered
// against them.
type Session struct {
	universe  *predicate.Universe
	ctx       *pathexpr.Context
	sinks     map[string]sink.Sink
	policies  []pathexpr.PathPolicy
	allocator vfield.Allocator
}

// NewSession starts a fresh compile session over universe, the finite
// located-packet schema attribute values are checked against.
func NewSession(universe *predicate.Universe) *Session {
	return &Session{
		universe:  universe,
		ctx:       pathexpr.NewContext(predicate.AttrOracle{}, universe.All()),
		sinks:     make(map[string]sink.Sink),
		allocator: vfield.NewRegistry(),
	}
}

// Compile runs the stitcher over every path policy registered in this
// session, over the ingress atom kind's symbol table, the kind the
// stitcher emits tagging/capture transitions for.
func (s *Session) Compile() (*stitcher.Result, error) {
	table := s.ctx.TableFor(pathexpr.Ingress)
	return stitcher.Compile(s.policies, table, table.Symbols(), s.allocator, s.universe.All())
}

// CompileQuery is the AST node for the COMPILE query.
type CompileQuery struct{}

func (CompileQuery) Execute(s *Session) (*stitcher.Result, error) { return s.Compile() }

// Parser parses and executes one line of path-query DSL against its
// Session, mirroring the teacher's line-oriented REPL parser shape.
type Parser struct {
	Session *Session
}

// CreateParser starts a Parser over a fresh Session for universe.
func CreateParser(universe *predicate.Universe) Parser {
	return Parser{Session: NewSession(universe)}
}

// ParseLine parses and executes input. It returns nil for a statement
// (DECLARE/REGISTER) and a *stitcher.Result for COMPILE.
func (p Parser) ParseLine(input string) (*stitcher.Result, error) {
	ast, err := dslParser.ParseString("", input)
	if err != nil {
		return nil, enrichSyntaxError(input, err)
	}

	node, err := convertGrammar(ast, p.Session)
	if err != nil {
		return nil, err
	}

	switch n := node.(type) {
	case Statement:
		return nil, n.Execute(p.Session)
	case *CompileQuery:
		return n.Execute(p.Session)
	default:
		return nil, fmt.Errorf("internal error: unknown AST node %T", n)
	}
}
