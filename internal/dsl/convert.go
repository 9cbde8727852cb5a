package dsl

import (
	"fmt"
	"strings"

	"github.com/ritamzico/pathquery/internal/pathexpr"
	"github.com/ritamzico/pathquery/internal/predicate"
)

func convertGrammar(ast *Grammar, s *Session) (any, error) {
	if ast.Statement != nil {
		return convertStatement(ast.Statement, s)
	}
	if ast.Query != nil {
		return &CompileQuery{}, nil
	}
	return nil, SyntaxError{Kind: "InvalidSyntax", Message: "empty input"}
}

func convertStatement(ast *StatementAST, s *Session) (Statement, error) {
	if ast.Declare != nil {
		return &DeclareSinkStatement{Name: ast.Declare.SinkName, Spec: ast.Declare.Spec}, nil
	}
	r := ast.Register
	path, err := convertPathExpr(r.Path, s)
	if err != nil {
		return nil, err
	}
	return &RegisterPathStatement{
		Path:     path,
		SinkName: r.Sink,
		EndPath:  r.EndPath,
		Dropping: r.Dropping,
	}, nil
}

func convertPathExpr(ast *PathExprAST, s *Session) (pathexpr.Path, error) {
	left, err := convertConcatExpr(ast.Left, s)
	if err != nil {
		return nil, err
	}
	if len(ast.Rest) == 0 {
		return left, nil
	}
	paths := []pathexpr.Path{left}
	for _, r := range ast.Rest {
		right, err := convertConcatExpr(r.Right, s)
		if err != nil {
			return nil, err
		}
		paths = append(paths, right)
	}
	return pathexpr.Alternate{Paths: paths}, nil
}

func convertConcatExpr(ast *ConcatExprAST, s *Session) (pathexpr.Path, error) {
	result, err := convertInterExpr(ast.Left, s)
	if err != nil {
		return nil, err
	}
	for _, r := range ast.Rest {
		right, err := convertInterExpr(r.Right, s)
		if err != nil {
			return nil, err
		}
		if r.Op == "**" {
			result = pathexpr.Anywhere(s.ctx, result, right)
		} else {
			result = pathexpr.SmartConcat([]pathexpr.Path{result, right})
		}
	}
	return result, nil
}

func convertInterExpr(ast *InterExprAST, s *Session) (pathexpr.Path, error) {
	left, err := convertUnaryExpr(ast.Left, s)
	if err != nil {
		return nil, err
	}
	if len(ast.Rest) == 0 {
		return left, nil
	}
	paths := []pathexpr.Path{left}
	for _, r := range ast.Rest {
		right, err := convertUnaryExpr(r.Right, s)
		if err != nil {
			return nil, err
		}
		paths = append(paths, right)
	}
	return pathexpr.Inter{Paths: paths}, nil
}

func convertUnaryExpr(ast *UnaryExprAST, s *Session) (pathexpr.Path, error) {
	inner, err := convertPostfixExpr(ast.Postfix, s)
	if err != nil {
		return nil, err
	}
	if ast.Negate {
		return pathexpr.Negate{Path: inner}, nil
	}
	return inner, nil
}

func convertPostfixExpr(ast *PostfixExprAST, s *Session) (pathexpr.Path, error) {
	inner, err := convertPrimaryExpr(ast.Primary, s)
	if err != nil {
		return nil, err
	}
	if ast.Star {
		return pathexpr.Star{Path: inner}, nil
	}
	return inner, nil
}

func convertPrimaryExpr(ast *PrimaryExprAST, s *Session) (pathexpr.Path, error) {
	switch {
	case ast.Atom != nil:
		return convertAtomExpr(ast.Atom, s)
	case ast.Epsilon:
		return pathexpr.Epsilon{}, nil
	case ast.Empty:
		return pathexpr.Empty{}, nil
	case ast.Group != nil:
		return convertPathExpr(ast.Group, s)
	default:
		return nil, SyntaxError{Kind: "InvalidSyntax", Message: "empty path primary"}
	}
}

func convertAtomExpr(ast *AtomExprAST, s *Session) (pathexpr.Path, error) {
	pred := convertAttrs(ast.Attrs, s.universe)

	kind := strings.ToUpper(ast.Kind)
	if kind == "HOOK" && len(ast.Groupby) == 0 {
		return nil, SyntaxError{Kind: "MissingGroupby", Message: "HOOK atoms require a GROUPBY clause"}
	}
	if kind != "HOOK" && len(ast.Groupby) != 0 {
		return nil, SyntaxError{Kind: "UnexpectedGroupby", Message: fmt.Sprintf("GROUPBY is only valid on HOOK atoms, not %s", kind)}
	}

	var atom *pathexpr.Atom
	switch kind {
	case "INGRESS":
		atom = s.ctx.NewIngress(pred)
	case "EGRESS":
		atom = s.ctx.NewEgress(pred)
	case "DROP":
		atom = s.ctx.NewDrop(pred)
	case "ENDPATH":
		atom = s.ctx.NewEndPath(pred)
	case "HOOK":
		atom = s.ctx.NewHook(pred, ast.Groupby)
	default:
		return nil, SyntaxError{Kind: "UnknownAtomKind", Message: kind}
	}
	return pathexpr.AtomPath{Atom: atom}, nil
}

// convertAttrs conjoins one equality constraint per attribute, defaulting
// to "matches everything" for a bare KIND() with no attributes.
func convertAttrs(attrs []*AttrAST, universe *predicate.Universe) predicate.Predicate {
	pred := predicate.Predicate(universe.All())
	for _, a := range attrs {
		value := strings.Trim(a.Value, `"`)
		pred = pred.And(universe.Eq(a.Key, value))
	}
	return pred
}
