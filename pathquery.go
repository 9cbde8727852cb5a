// Package pathquery is the root facade: a compile Session over a located-
// packet field schema, fed one DSL line at a time, producing a stitched
// (tagging, capture) policy pair on COMPILE.
package pathquery

import (
	"io"

	"github.com/ritamzico/pathquery/internal/dsl"
	"github.com/ritamzico/pathquery/internal/predicate"
	"github.com/ritamzico/pathquery/internal/serialization"
	"github.com/ritamzico/pathquery/internal/stitcher"
)

// CompileResult is the stitched output of a COMPILE query.
type CompileResult = stitcher.Result

// Compiler runs a path-query compile session against a fixed located-packet
// schema.
type Compiler struct {
	parser dsl.Parser
}

// New starts a Compiler over schema, a field -> finite domain map.
func New(schema serialization.Schema) *Compiler {
	universe := predicate.NewUniverse(schema)
	return &Compiler{parser: dsl.CreateParser(universe)}
}

// Load builds a Compiler from a schema read as JSON from r.
func Load(r io.Reader) (*Compiler, error) {
	universe, err := serialization.ReadSchemaJSON(r)
	if err != nil {
		return nil, err
	}
	return &Compiler{parser: dsl.CreateParser(universe)}, nil
}

// LoadFile builds a Compiler from a schema JSON file at path.
func LoadFile(path string) (*Compiler, error) {
	universe, err := serialization.LoadSchemaJSON(path)
	if err != nil {
		return nil, err
	}
	return &Compiler{parser: dsl.CreateParser(universe)}, nil
}

// Exec runs one line of path-query DSL against the session. It returns nil
// for a DECLARE/REGISTER statement and a *CompileResult for COMPILE.
func (c *Compiler) Exec(line string) (*CompileResult, error) {
	return c.parser.ParseLine(line)
}

// MarshalResultJSON renders a compile result to JSON.
func MarshalResultJSON(res *CompileResult) ([]byte, error) {
	return serialization.MarshalCompileResult(res)
}
