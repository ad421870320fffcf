package render_test

import (
	"os"
	"strings"
	"testing"

	"github.com/g5becks/doxmd/internal/render"
)

func TestConvertFullFixture(t *testing.T) {
	content, err := os.ReadFile("testdata/doxygen_all.xml")
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}

	md, err := render.Convert(content)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	wantFragments := []string{
		// Basic function with params, listing, and return section.
		"### add(int a, int b)",
		"Add two integers.",
		"[`a`](#add-int-a-int-b-a)",
		"[`int`](#type-int)",
		"First operand.",
		"int result = add(2, 3);",
		"**Returns:** Sum of a and b.",

		// Class with enum and templated member.
		"## Math",
		"Utility math functions.",
		"### Enum: Color",
		"- `Red`: Warm.",
		"### max(T a, T b)",
		"**Template parameters:**",
		"- typename T",
		"[`T`](#type-t)",
		"First value.",

		// Namespace with overloads.
		"## math",
		"### add(double a, double b)",

		// Template free function.
		"### tmpl(T v)",
		"[`v`](#tmpl-t-v-v)",
		"Value",
	}

	for _, fragment := range wantFragments {
		if !strings.Contains(md, fragment) {
			t.Errorf("output missing %q\nfull output:\n%s", fragment, md)
		}
	}

	if !strings.HasSuffix(md, "\n") || strings.HasSuffix(md, "\n\n") {
		t.Errorf("output must end with exactly one newline")
	}

	// Compounds render before members, in document order.
	if strings.Index(md, "## Math") > strings.Index(md, "### add(int a, int b)") {
		t.Error("compound sections must precede member sections")
	}
}
