package dsl

import (
	"fmt"

	"github.com/ritamzico/pathquery/internal/pathexpr"
	"github.com/ritamzico/pathquery/internal/sink"
)

// Statement is a session-mutating DSL command (DECLARE or REGISTER).
type Statement interface {
	Execute(s *Session) error
}

// DeclareSinkStatement names a fresh bucket the session can route captured
// packets to.
type DeclareSinkStatement struct {
	Name string
	Spec *SinkSpecAST
}

func (d *DeclareSinkStatement) Execute(s *Session) error {
	if _, exists := s.sinks[d.Name]; exists {
		return SyntaxError{Kind: "DuplicateSink", Message: fmt.Sprintf("sink %q already declared", d.Name)}
	}
	switch {
	case d.Spec.Count:
		s.sinks[d.Name] = sink.NewCountingBucket()
	case d.Spec.Forward:
		s.sinks[d.Name] = sink.NewForwardingBucket()
	case d.Spec.Hook != nil:
		s.sinks[d.Name] = sink.NewHookBucket(d.Spec.Hook.Fields)
	default:
		return SyntaxError{Kind: "InvalidSinkSpec", Message: "sink declaration names no bucket kind"}
	}
	return nil
}

// RegisterPathStatement adds a path policy to the session, to be stitched
// together with every other registered policy on the next COMPILE.
type RegisterPathStatement struct {
	Path     pathexpr.Path
	SinkName string
	EndPath  *string
	Dropping *string
}

func (r *RegisterPathStatement) Execute(s *Session) error {
	primary, ok := s.sinks[r.SinkName]
	if !ok {
		return SyntaxError{Kind: "UnknownSink", Message: fmt.Sprintf("sink %q was never declared", r.SinkName)}
	}
	pp := pathexpr.PathPolicy{Path: r.Path, Sink: primary}

	if r.EndPath != nil {
		endSink, ok := s.sinks[*r.EndPath]
		if !ok {
			return SyntaxError{Kind: "UnknownSink", Message: fmt.Sprintf("end_path sink %q was never declared", *r.EndPath)}
		}
		pp.EndPath = endSink
	}
	if r.Dropping != nil {
		dropSink, ok := s.sinks[*r.Dropping]
		if !ok {
			return SyntaxError{Kind: "UnknownSink", Message: fmt.Sprintf("drop sink %q was never declared", *r.Dropping)}
		}
		pp.Dropping = dropSink
	}

	s.policies = append(s.policies, pp)
	return nil
}
