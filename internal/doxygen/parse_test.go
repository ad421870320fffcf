package doxygen_test

import (
	"strings"
	"testing"

	"github.com/g5becks/doxmd/internal/doxygen"
)

func TestParseRejectsMalformedXML(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not xml", "not xml <"},
		{"empty input", ""},
		{"unclosed element", "<doxygen><compounddef>"},
		{"mismatched tags", "<doxygen></other>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := doxygen.Parse([]byte(tt.content))
			if err == nil {
				t.Fatal("Parse() error = nil, want non-nil")
			}

			if doc != nil {
				t.Errorf("Parse() doc = %+v, want nil", doc)
			}

			if !strings.Contains(err.Error(), "parsing doxygen xml") {
				t.Errorf("Parse() error = %q, expected parse context", err.Error())
			}
		})
	}
}

func TestParseDecodesCompound(t *testing.T) {
	doc, err := doxygen.Parse([]byte(`<doxygen>
  <compounddef kind="class">
    <compoundname>Math</compoundname>
    <briefdescription><para>Utility math functions.</para></briefdescription>
    <detaileddescription>
      <para>First paragraph.</para>
      <para>Second paragraph.</para>
    </detaileddescription>
  </compounddef>
</doxygen>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(doc.Compounds) != 1 {
		t.Fatalf("Compounds len = %d, want 1", len(doc.Compounds))
	}

	compound := doc.Compounds[0]
	if compound.Kind != "class" {
		t.Errorf("Kind = %q, want %q", compound.Kind, "class")
	}

	if compound.Name != "Math" {
		t.Errorf("Name = %q, want %q", compound.Name, "Math")
	}

	if got := compound.Brief.Text(); got != "Utility math functions." {
		t.Errorf("Brief.Text() = %q, want %q", got, "Utility math functions.")
	}

	want := "First paragraph.\n\nSecond paragraph."
	if got := compound.Detailed.Text(); got != want {
		t.Errorf("Detailed.Text() = %q, want %q", got, want)
	}
}

func TestParseDecodesEnumWithFallbacks(t *testing.T) {
	doc, err := doxygen.Parse([]byte(`<doxygen>
  <compounddef kind="file">
    <compoundname>colors.h</compoundname>
    <enum>
      <name>Color</name>
      <briefdescription><para>Available colors.</para></briefdescription>
      <enumvalue><name>Red</name><briefdescription><para>The red one.</para></briefdescription></enumvalue>
      <enumvalue><id>color_green</id></enumvalue>
    </enum>
    <enum>
      <definition>enum Fallback</definition>
    </enum>
  </compounddef>
</doxygen>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(doc.Compounds) != 1 {
		t.Fatalf("Compounds len = %d, want 1", len(doc.Compounds))
	}

	enums := doc.Compounds[0].Enums
	if len(enums) != 2 {
		t.Fatalf("Enums len = %d, want 2", len(enums))
	}

	if enums[0].Name != "Color" {
		t.Errorf("Enums[0].Name = %q, want %q", enums[0].Name, "Color")
	}

	if len(enums[0].Values) != 2 {
		t.Fatalf("Values len = %d, want 2", len(enums[0].Values))
	}

	if enums[0].Values[0].Name != "Red" {
		t.Errorf("Values[0].Name = %q, want %q", enums[0].Values[0].Name, "Red")
	}

	if enums[0].Values[1].Name != "color_green" {
		t.Errorf("Values[1].Name = %q, want id fallback %q", enums[0].Values[1].Name, "color_green")
	}

	if enums[1].Name != "enum Fallback" {
		t.Errorf("Enums[1].Name = %q, want definition fallback", enums[1].Name)
	}
}

func TestParseDecodesMember(t *testing.T) {
	doc, err := doxygen.Parse([]byte(`<doxygen>
  <compounddef kind="class">
    <compoundname>Math</compoundname>
    <sectiondef>
      <memberdef kind="function">
        <type>int</type>
        <name>add</name>
        <argsstring>(int a, int b)</argsstring>
        <briefdescription><para>Add two integers.</para></briefdescription>
        <detaileddescription>
          <para>Adds numbers.</para>
          <programlisting>
int result = add(2, 3);
</programlisting>
          <simplesect kind="return"><para>Sum of a and b.</para></simplesect>
          <simplesect kind="note"><para>Ignored kind.</para></simplesect>
        </detaileddescription>
        <param>
          <type>int</type>
          <declname>a</declname>
          <briefdescription><para>First operand.</para></briefdescription>
        </param>
        <param>
          <type>int</type>
          <defname>b</defname>
        </param>
      </memberdef>
    </sectiondef>
  </compounddef>
</doxygen>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(doc.Members) != 1 {
		t.Fatalf("Members len = %d, want 1", len(doc.Members))
	}

	member := doc.Members[0]
	if member.Name != "add" {
		t.Errorf("Name = %q, want %q", member.Name, "add")
	}

	if member.Args != "(int a, int b)" {
		t.Errorf("Args = %q, want %q", member.Args, "(int a, int b)")
	}

	if member.ReturnType != "int" {
		t.Errorf("ReturnType = %q, want %q", member.ReturnType, "int")
	}

	if len(member.Listings) != 1 || member.Listings[0] != "int result = add(2, 3);" {
		t.Errorf("Listings = %q, want the code line with newlines stripped", member.Listings)
	}

	if len(member.Returns) != 1 || member.Returns[0] != "Sum of a and b." {
		t.Errorf("Returns = %q, want return section only", member.Returns)
	}

	if len(member.Params) != 2 {
		t.Fatalf("Params len = %d, want 2", len(member.Params))
	}

	if member.Params[0].Name != "a" || member.Params[1].Name != "b" {
		t.Errorf("Params names = %q, %q, want declname then defname fallback",
			member.Params[0].Name, member.Params[1].Name)
	}

	if got := member.Params[0].Brief.Text(); got != "First operand." {
		t.Errorf("Params[0].Brief.Text() = %q, want %q", got, "First operand.")
	}
}

func TestParseTemplateParamsOwnLevelOnly(t *testing.T) {
	doc, err := doxygen.Parse([]byte(`<doxygen>
  <compounddef kind="class">
    <compoundname>Box</compoundname>
    <templateparamlist><param><type>class C</type></param></templateparamlist>
    <sectiondef>
      <memberdef kind="function">
        <name>get</name>
        <argsstring>()</argsstring>
      </memberdef>
      <memberdef kind="function">
        <templateparamlist>
          <param><type>typename T</type></param>
          <param>raw text entry</param>
        </templateparamlist>
        <name>max</name>
        <argsstring>(T a, T b)</argsstring>
      </memberdef>
    </sectiondef>
  </compounddef>
</doxygen>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(doc.Members) != 2 {
		t.Fatalf("Members len = %d, want 2", len(doc.Members))
	}

	if len(doc.Members[0].TemplateParams) != 0 {
		t.Errorf("Members[0].TemplateParams = %q, want none inherited from class",
			doc.Members[0].TemplateParams)
	}

	want := []string{"typename T", "raw text entry"}
	got := doc.Members[1].TemplateParams
	if len(got) != len(want) {
		t.Fatalf("TemplateParams = %q, want %q", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TemplateParams[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDescriptionText(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{
			name: "paragraphs joined by blank line",
			xml:  "<briefdescription><para>One.</para><para>Two.</para></briefdescription>",
			want: "One.\n\nTwo.",
		},
		{
			name: "empty paragraphs discarded",
			xml:  "<briefdescription><para>  </para><para>Kept.</para></briefdescription>",
			want: "Kept.",
		},
		{
			name: "no paragraph children falls back to raw text",
			xml:  "<briefdescription>  plain text  </briefdescription>",
			want: "plain text",
		},
		{
			name: "markup boundaries ignored inside paragraph",
			xml:  "<briefdescription><para>Hello <bold>world</bold> end</para></briefdescription>",
			want: "Hello world end",
		},
		{
			name: "empty node",
			xml:  "<briefdescription></briefdescription>",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := doxygen.Parse([]byte(
				"<doxygen><compounddef kind=\"class\"><compoundname>X</compoundname>" +
					tt.xml + "</compounddef></doxygen>"))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if got := doc.Compounds[0].Brief.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescriptionTextNilReceiver(t *testing.T) {
	var d *doxygen.Description
	if got := d.Text(); got != "" {
		t.Errorf("nil Description Text() = %q, want empty", got)
	}
}

func TestDocumentGroup(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		want string
	}{
		{
			name: "namespace groups under own name",
			xml:  `<doxygen><compounddef kind="namespace"><compoundname>math</compoundname></compounddef></doxygen>`,
			want: "math",
		},
		{
			name: "scoped name groups under prefix",
			xml:  `<doxygen><compounddef kind="class"><compoundname>geo::shapes::Circle</compoundname></compounddef></doxygen>`,
			want: "geo",
		},
		{
			name: "plain class lands in global",
			xml:  `<doxygen><compounddef kind="class"><compoundname>Math</compoundname></compounddef></doxygen>`,
			want: "global",
		},
		{
			name: "no compounds lands in global",
			xml:  `<doxygen></doxygen>`,
			want: "global",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := doxygen.Parse([]byte(tt.xml))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if got := doc.Group(); got != tt.want {
				t.Errorf("Group() = %q, want %q", got, tt.want)
			}
		})
	}
}
