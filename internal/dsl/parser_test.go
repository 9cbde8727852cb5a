package dsl

import (
	"strings"
	"testing"

	"github.com/ritamzico/pathquery/internal/predicate"
)

func buildTestUniverse() *predicate.Universe {
	return predicate.NewUniverse(map[string][]string{
		"switch": {"s1", "s2", "s3"},
		"port":   {"80", "443"},
	})
}

func TestParser_DeclareCountSink(t *testing.T) {
	parser := CreateParser(buildTestUniverse())

	if _, err := parser.ParseLine("DECLARE SINK hits COUNT"); err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if _, ok := parser.Session.sinks["hits"]; !ok {
		t.Fatal("expected sink hits to be declared")
	}
}

func TestParser_DeclareDuplicateSinkFails(t *testing.T) {
	parser := CreateParser(buildTestUniverse())

	if _, err := parser.ParseLine("DECLARE SINK hits COUNT"); err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if _, err := parser.ParseLine("DECLARE SINK hits FORWARD"); err == nil {
		t.Fatal("expected an error declaring the same sink name twice")
	}
}

func TestParser_RegisterSimpleIngressPath(t *testing.T) {
	parser := CreateParser(buildTestUniverse())

	if _, err := parser.ParseLine("DECLARE SINK hits COUNT"); err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if _, err := parser.ParseLine("REGISTER PATH INGRESS(switch=s1) SINK hits"); err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if len(parser.Session.policies) != 1 {
		t.Fatalf("expected 1 registered policy, got %d", len(parser.Session.policies))
	}
}

func TestParser_RegisterUnknownSinkFails(t *testing.T) {
	parser := CreateParser(buildTestUniverse())

	if _, err := parser.ParseLine("REGISTER PATH INGRESS(switch=s1) SINK ghost"); err == nil {
		t.Fatal("expected an error registering against an undeclared sink")
	}
}

func TestParser_CompileProducesNonTrivialResult(t *testing.T) {
	parser := CreateParser(buildTestUniverse())

	lines := []string{
		"DECLARE SINK hits COUNT",
		"REGISTER PATH INGRESS(switch=s1) ^ INGRESS(switch=s2) SINK hits",
	}
	for _, line := range lines {
		if _, err := parser.ParseLine(line); err != nil {
			t.Fatalf("ParseLine(%q) failed: %v", line, err)
		}
	}

	result, err := parser.ParseLine("COMPILE")
	if err != nil {
		t.Fatalf("COMPILE failed: %v", err)
	}
	if result == nil {
		t.Fatal("expected a non-nil compile result")
	}
	if !strings.Contains(result.Capture.String(), "deliver(") {
		t.Fatalf("expected the capture policy to deliver somewhere, got %v", result.Capture)
	}
}

func TestParser_StarAndAlternateOperators(t *testing.T) {
	parser := CreateParser(buildTestUniverse())

	if _, err := parser.ParseLine("DECLARE SINK hits COUNT"); err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	line := "REGISTER PATH ( INGRESS(switch=s1) | INGRESS(switch=s2) )* SINK hits"
	if _, err := parser.ParseLine(line); err != nil {
		t.Fatalf("ParseLine(%q) failed: %v", line, err)
	}
}

func TestParser_AnywhereOperatorBuildsConcat(t *testing.T) {
	parser := CreateParser(buildTestUniverse())

	if _, err := parser.ParseLine("DECLARE SINK hits COUNT"); err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	line := "REGISTER PATH INGRESS(switch=s1) ** INGRESS(switch=s3) SINK hits"
	if _, err := parser.ParseLine(line); err != nil {
		t.Fatalf("ParseLine(%q) failed: %v", line, err)
	}
}

func TestParser_HookWithoutGroupbyFails(t *testing.T) {
	parser := CreateParser(buildTestUniverse())

	if _, err := parser.ParseLine("DECLARE SINK hits COUNT"); err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if _, err := parser.ParseLine("REGISTER PATH HOOK(switch=s1) SINK hits"); err == nil {
		t.Fatal("expected an error registering a HOOK atom without GROUPBY")
	}
}

func TestParser_HookWithGroupbySucceeds(t *testing.T) {
	parser := CreateParser(buildTestUniverse())

	if _, err := parser.ParseLine("DECLARE SINK hits HOOK(switch)"); err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	line := "REGISTER PATH HOOK(switch=s1; GROUPBY switch) SINK hits"
	if _, err := parser.ParseLine(line); err != nil {
		t.Fatalf("ParseLine(%q) failed: %v", line, err)
	}
}

func TestParser_EndPathAndDropSinks(t *testing.T) {
	parser := CreateParser(buildTestUniverse())

	lines := []string{
		"DECLARE SINK hits COUNT",
		"DECLARE SINK ends FORWARD",
		"DECLARE SINK drops FORWARD",
		"REGISTER PATH INGRESS(switch=s1) SINK hits ENDPATH ends DROP drops",
	}
	for _, line := range lines {
		if _, err := parser.ParseLine(line); err != nil {
			t.Fatalf("ParseLine(%q) failed: %v", line, err)
		}
	}

	if len(parser.Session.policies) != 1 {
		t.Fatalf("expected 1 registered policy, got %d", len(parser.Session.policies))
	}
	pp := parser.Session.policies[0]
	if pp.EndPath == nil || pp.Dropping == nil {
		t.Fatal("expected both EndPath and Dropping sinks to be wired")
	}
}

func TestParser_CaseInsensitiveKeywords(t *testing.T) {
	parser := CreateParser(buildTestUniverse())

	if _, err := parser.ParseLine("declare sink hits count"); err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if _, err := parser.ParseLine("register path ingress(switch=s1) sink hits"); err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
}

func TestParser_InvalidSyntax(t *testing.T) {
	testCases := []string{
		"REGISTER PATH SINK hits",      // missing path expression
		"DECLARE SINK",                 // missing name
		"REGISTER INGRESS(a=b) SINK x", // missing PATH keyword
		"FOOBAR",                       // unknown command
	}

	for _, tc := range testCases {
		parser := CreateParser(buildTestUniverse())
		if _, err := parser.ParseLine(tc); err == nil {
			t.Errorf("expected error for invalid syntax %q, got nil", tc)
		}
	}
}
