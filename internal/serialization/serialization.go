// Package serialization is the JSON boundary around a compile session: a
// Schema describing a located-packet field's finite domain, round-tripped
// to build the predicate.Universe a Session runs queries against, and a
// stitcher.Result marshaled to the wire shape cmd/server answers with.
package serialization

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ritamzico/pathquery/internal/predicate"
	"github.com/ritamzico/pathquery/internal/stitcher"
)

// Schema is the JSON shape of a located-packet field schema: one entry per
// field, naming its finite domain of string values.
type Schema map[string][]string

// WriteSchemaJSON encodes schema to JSON and writes it to w.
func WriteSchemaJSON(schema Schema, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(schema)
}

// ReadSchemaJSON decodes a field schema from JSON read from r and builds
// the predicate.Universe it describes.
func ReadSchemaJSON(r io.Reader) (*predicate.Universe, error) {
	var schema Schema
	if err := json.NewDecoder(r).Decode(&schema); err != nil {
		return nil, fmt.Errorf("decoding schema JSON: %w", err)
	}
	if len(schema) == 0 {
		return nil, fmt.Errorf("schema has no fields")
	}
	return predicate.NewUniverse(schema), nil
}

// SaveSchemaJSON writes schema to a JSON file at path.
func SaveSchemaJSON(schema Schema, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", path, err)
	}
	defer f.Close()
	return WriteSchemaJSON(schema, f)
}

// LoadSchemaJSON reads a field schema from a JSON file at path and builds
// the predicate.Universe it describes.
func LoadSchemaJSON(path string) (*predicate.Universe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer f.Close()
	return ReadSchemaJSON(f)
}

// CompileResultJSON is the wire shape of a stitcher.Result: every policy
// algebra tree rendered through its String() form, plus the path_tag
// field's declared state count.
type CompileResultJSON struct {
	Tagging   string `json:"tagging"`
	Capture   string `json:"capture"`
	EndPath   string `json:"end_path"`
	Dropping  string `json:"dropping"`
	NumStates int    `json:"num_states"`
}

// MarshalCompileResult renders a stitched compile result to JSON.
func MarshalCompileResult(res *stitcher.Result) ([]byte, error) {
	return json.Marshal(CompileResultJSON{
		Tagging:   res.Tagging.String(),
		Capture:   res.Capture.String(),
		EndPath:   res.EndPath.String(),
		Dropping:  res.Dropping.String(),
		NumStates: res.NumStates,
	})
}
