package render_test

import (
	"strings"
	"testing"

	"github.com/g5becks/doxmd/internal/doxygen"
	"github.com/g5becks/doxmd/internal/render"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single letter", "T", "t"},
		{"empty", "", ""},
		{"spaces collapse to hyphens", "int a", "int-a"},
		{"signature", "add (int a, int b)", "add-int-a-int-b"},
		{"leading and trailing punctuation trimmed", "(int)", "int"},
		{"mixed case", "MyType", "mytype"},
		{"run of symbols collapses once", "a** &b", "a-b"},
		{"only symbols", "***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render.Slug(tt.in); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestConvertRejectsMalformedInput(t *testing.T) {
	md, err := render.Convert([]byte("not xml <"))
	if err == nil {
		t.Fatal("Convert() error = nil, want non-nil")
	}

	if md != "" {
		t.Errorf("Convert() output = %q, want empty on failure", md)
	}
}

func TestConvertIsDeterministic(t *testing.T) {
	content := []byte(`<doxygen>
  <compounddef kind="class">
    <compoundname>Math</compoundname>
    <briefdescription><para>Utility math functions.</para></briefdescription>
    <sectiondef>
      <memberdef kind="function">
        <type>int</type>
        <name>add</name>
        <argsstring>(int a, int b)</argsstring>
        <param><type>int</type><declname>a</declname></param>
        <param><type>int</type><declname>b</declname></param>
      </memberdef>
    </sectiondef>
  </compounddef>
</doxygen>`)

	first, err := render.Convert(content)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	second, err := render.Convert(content)
	if err != nil {
		t.Fatalf("Convert() second call error = %v", err)
	}

	if first != second {
		t.Errorf("Convert() not deterministic:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestCompoundHeadingAndBrief(t *testing.T) {
	md, err := render.Convert([]byte(`<doxygen>
  <compounddef kind="class">
    <compoundname>Math</compoundname>
    <briefdescription><para>Utility math functions.</para></briefdescription>
  </compounddef>
</doxygen>`))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	lines := strings.Split(md, "\n")
	if lines[0] != "## Math" {
		t.Errorf("first line = %q, want %q", lines[0], "## Math")
	}

	if lines[1] != "Utility math functions." {
		t.Errorf("second line = %q, want brief verbatim", lines[1])
	}
}

func TestCompoundKindsWithoutHeading(t *testing.T) {
	md, err := render.Convert([]byte(`<doxygen>
  <compounddef kind="file">
    <compoundname>math.h</compoundname>
    <briefdescription><para>File brief is not emitted.</para></briefdescription>
    <enum>
      <name>Color</name>
      <enumvalue><name>Red</name><briefdescription><para>Warm.</para></briefdescription></enumvalue>
    </enum>
  </compounddef>
</doxygen>`))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if strings.Contains(md, "## math.h") {
		t.Error("file compound should not produce a heading")
	}

	if strings.Contains(md, "File brief is not emitted.") {
		t.Error("file compound should not emit its brief")
	}

	if !strings.Contains(md, "### Enum: Color") {
		t.Errorf("output missing enum heading:\n%s", md)
	}

	if !strings.Contains(md, "- `Red`: Warm.") {
		t.Errorf("output missing enum value line:\n%s", md)
	}
}

func TestMemberParameterTable(t *testing.T) {
	md, err := render.Convert([]byte(`<doxygen>
  <compounddef kind="class">
    <compoundname>Math</compoundname>
    <sectiondef>
      <memberdef kind="function">
        <type>int</type>
        <name>add</name>
        <argsstring>(int a, int b)</argsstring>
        <param>
          <type>int</type>
          <declname>a</declname>
          <briefdescription><para>First operand.</para></briefdescription>
        </param>
      </memberdef>
    </sectiondef>
  </compounddef>
</doxygen>`))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if !strings.Contains(md, "### add(int a, int b)") {
		t.Errorf("output missing member heading:\n%s", md)
	}

	if !strings.Contains(md, "| Name | Type | Description |") {
		t.Errorf("output missing table header:\n%s", md)
	}

	if !strings.Contains(md, "| --- | --- | --- |") {
		t.Errorf("output missing table separator:\n%s", md)
	}

	wantRow := "| [`a`](#add-int-a-int-b-a) | [`int`](#type-int) | First operand. |"
	if !strings.Contains(md, wantRow) {
		t.Errorf("output missing parameter row %q:\n%s", wantRow, md)
	}
}

func TestMemberParameterCellFallbacks(t *testing.T) {
	md, err := render.Convert([]byte(`<doxygen>
  <compounddef kind="class">
    <compoundname>Math</compoundname>
    <sectiondef>
      <memberdef kind="function">
        <name>reset</name>
        <argsstring>()</argsstring>
        <param><type>...</type></param>
      </memberdef>
    </sectiondef>
  </compounddef>
</doxygen>`))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	// Nameless parameter leaves the name cell empty; a type whose slug
	// is empty stays plain inline code instead of becoming a link.
	if !strings.Contains(md, "|  | `...` |  |") {
		t.Errorf("output missing fallback row:\n%s", md)
	}
}

func TestMemberCodeListingFence(t *testing.T) {
	md, err := render.Convert([]byte(`<doxygen>
  <compounddef kind="class">
    <compoundname>Math</compoundname>
    <sectiondef>
      <memberdef kind="function">
        <name>add</name>
        <argsstring>(int a, int b)</argsstring>
        <detaileddescription>
          <para>Example usage.</para>
          <programlisting>
int result = add(2, 3);
</programlisting>
        </detaileddescription>
      </memberdef>
    </sectiondef>
  </compounddef>
</doxygen>`))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	want := "```cpp\nint result = add(2, 3);\n```"
	if !strings.Contains(md, want) {
		t.Errorf("output missing fenced code block %q:\n%s", want, md)
	}
}

func TestMemberReturnsSuppressesTypeFallback(t *testing.T) {
	md, err := render.Convert([]byte(`<doxygen>
  <compounddef kind="class">
    <compoundname>Math</compoundname>
    <sectiondef>
      <memberdef kind="function">
        <type>int</type>
        <name>add</name>
        <argsstring>(int a, int b)</argsstring>
        <detaileddescription>
          <simplesect kind="return"><para>Sum of a and b.</para></simplesect>
        </detaileddescription>
      </memberdef>
    </sectiondef>
  </compounddef>
</doxygen>`))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if !strings.Contains(md, "**Returns:** Sum of a and b.") {
		t.Errorf("output missing returns block:\n%s", md)
	}

	if strings.Contains(md, "**Type:**") {
		t.Errorf("type fallback should be suppressed after returns block:\n%s", md)
	}
}

func TestMemberTypeFallbackWithoutReturns(t *testing.T) {
	md, err := render.Convert([]byte(`<doxygen>
  <compounddef kind="class">
    <compoundname>Math</compoundname>
    <sectiondef>
      <memberdef kind="variable">
        <type>double</type>
        <name>pi</name>
      </memberdef>
    </sectiondef>
  </compounddef>
</doxygen>`))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if !strings.Contains(md, "**Type:** double") {
		t.Errorf("output missing type fallback:\n%s", md)
	}
}

func TestMemberTemplateParameters(t *testing.T) {
	md, err := render.Convert([]byte(`<doxygen>
  <compounddef kind="class">
    <compoundname>Math</compoundname>
    <sectiondef>
      <memberdef kind="function">
        <type>T</type>
        <name>max</name>
        <argsstring>(T a, T b)</argsstring>
        <templateparamlist><param><type>typename T</type></param></templateparamlist>
      </memberdef>
    </sectiondef>
  </compounddef>
</doxygen>`))
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if !strings.Contains(md, "**Template parameters:**\n- typename T") {
		t.Errorf("output missing template parameter list:\n%s", md)
	}
}

func TestOutputTrimming(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "empty document",
			content: "<doxygen></doxygen>",
		},
		{
			name: "single compound",
			content: `<doxygen><compounddef kind="class"><compoundname>Math</compoundname></compounddef></doxygen>`,
		},
		{
			name: "trailing member separator trimmed",
			content: `<doxygen><compounddef kind="class"><compoundname>Math</compoundname>
<sectiondef><memberdef kind="function"><name>f</name><argsstring>()</argsstring></memberdef></sectiondef>
</compounddef></doxygen>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, err := render.Convert([]byte(tt.content))
			if err != nil {
				t.Fatalf("Convert() error = %v", err)
			}

			// An empty document renders as a single newline; anything
			// else must not start with a blank line.
			if md != "\n" && strings.HasPrefix(md, "\n") {
				t.Errorf("output starts with blank line: %q", md)
			}

			if !strings.HasSuffix(md, "\n") || strings.HasSuffix(md, "\n\n") {
				t.Errorf("output must end with exactly one newline: %q", md)
			}
		})
	}
}

func TestMarkdownEmptyDocument(t *testing.T) {
	if got := render.Markdown(&doxygen.Document{}); got != "\n" {
		t.Errorf("Markdown(empty) = %q, want single newline", got)
	}
}
