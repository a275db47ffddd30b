package sdltb

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sdlppx/am"
	"github.com/teranos/sdlppx/errors"
	"github.com/teranos/sdlppx/termbase"
)

func protonTermBase(t *testing.T) *termbase.TermBase {
	t.Helper()
	c, err := ParseConcept(1, protonEntry)
	require.NoError(t, err)

	other := termbase.NewConcept(2)
	other.SetMeta("Client", `ACME "Labs"`)
	other.Group("German").Terms = []termbase.Term{{Word: "Kern"}}

	b := termbase.NewBuilder()
	b.Add(other)
	b.Add(c)
	return b.Build()
}

func render(t *testing.T, tb *termbase.TermBase, format am.OutputFormat, layout am.SynonymLayout) []string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, tb, format, layout))
	out := buf.String()
	require.True(t, strings.HasSuffix(out, "\n"))
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func TestPipeJoin(t *testing.T) {
	tests := []struct {
		name     string
		terms    []termbase.Term
		expected string
	}{
		{"empty", nil, ""},
		{"single", []termbase.Term{{Word: "proton"}}, "proton"},
		{"forbidden after ordinary", []termbase.Term{
			{Word: "proton"},
			{Word: "antiproton", Info: termbase.InfoNonTerm},
		}, "proton|(NOT: antiproton)"},
		{"ordinary terms are prepended", []termbase.Term{
			{Word: "a"}, {Word: "b"}, {Word: "c"},
		}, "c|b|a"},
		{"only forbidden", []termbase.Term{
			{Word: "x", Info: termbase.InfoNonTerm},
			{Word: "y", Info: termbase.InfoNonTerm},
		}, "(NOT: x)|(NOT: y)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PipeJoin(tt.terms))
		})
	}
}

func TestRender_TabColumns(t *testing.T) {
	tb := protonTermBase(t)
	lines := render(t, tb, am.FormatTab, am.LayoutColumn)
	require.Len(t, lines, 3)

	assert.Equal(t, strings.Join([]string{
		"Entry_Created", "Entry_Creator", "Entry_LastModified", "Entry_Modifier",
		"Client", "Subject",
		"English_Def", "English", "Term_Info", "Term_Example", "English", "Term_Info", "Term_Example",
		"French_Canada_Def", "French_Canada", "Term_Info", "Term_Example",
		"German_Def", "German", "Term_Info", "Term_Example",
	}, "\t"), lines[0])

	// Concept 1 comes first regardless of insertion order
	assert.Equal(t, strings.Join([]string{
		"2020-01-01T10:00:00", "alice", "2021-02-03T11:00:00", "bob",
		"", "Physics",
		"A subatomic particle", "proton", "", "The proton is positive.", "antiproton", "NonTerm", "",
		"", "proton", "", "",
		"", "", "", "",
	}, "\t"), lines[1])
}

func TestRender_RectangularShape(t *testing.T) {
	tb := protonTermBase(t)

	for _, layout := range am.SynonymLayouts {
		t.Run(string(layout), func(t *testing.T) {
			lines := render(t, tb, am.FormatTab, layout)
			require.Len(t, lines, tb.Len()+1)

			expected := 4 + len(tb.MetaKeys())
			for _, lang := range tb.Languages() {
				if layout == am.LayoutPipe {
					expected += 2
				} else {
					expected += 1 + 3*tb.Capacity(lang)
				}
			}
			for i, line := range lines {
				assert.Len(t, strings.Split(line, "\t"), expected, "line %d", i)
			}
		})
	}
}

func TestRender_Quoted(t *testing.T) {
	tb := protonTermBase(t)

	lines := render(t, tb, am.FormatSemicolon, am.LayoutPipe)
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], `"Entry_Created";"Entry_Creator";`))
	assert.False(t, strings.HasSuffix(lines[0], ";"), "no trailing delimiter")
	assert.Contains(t, lines[1], `"proton|(NOT: antiproton)"`)
	assert.Contains(t, lines[2], `"ACME ""Labs"""`)

	comma := render(t, tb, am.FormatComma, am.LayoutColumn)
	assert.True(t, strings.HasPrefix(comma[0], `"Entry_Created","Entry_Creator",`))
}

func TestRender_Glossary(t *testing.T) {
	tb := protonTermBase(t)

	t.Run("column", func(t *testing.T) {
		lines := render(t, tb, am.FormatGlossary, am.LayoutColumn)
		require.Len(t, lines, 2, "no header")
		assert.Equal(t, "proton\tantiproton\tproton\t", lines[0])
		assert.Equal(t, "\t\t\tKern", lines[1])
	})

	t.Run("pipe", func(t *testing.T) {
		lines := render(t, tb, am.FormatGlossary, am.LayoutPipe)
		require.Len(t, lines, 2)
		assert.Equal(t, "proton|(NOT: antiproton)\tproton\t", lines[0])
		assert.Equal(t, "\t\tKern", lines[1])
	})
}

func TestRender_Unsupported(t *testing.T) {
	tb := protonTermBase(t)
	var buf bytes.Buffer

	assert.True(t, errors.IsUnsupported(Render(&buf, tb, "xlsx", am.LayoutColumn)))
	assert.True(t, errors.IsUnsupported(Render(&buf, tb, am.FormatTab, "rows")))
	assert.Zero(t, buf.Len())
}

func TestOutputName(t *testing.T) {
	name, err := OutputName("Project", []string{"English", "French_Canada"}, am.FormatComma)
	require.NoError(t, err)
	assert.Equal(t, "Project_glossary_English_French_Canada.csv", name)

	name, err = OutputName("Project", []string{"English"}, am.FormatGlossary)
	require.NoError(t, err)
	assert.Equal(t, "Project_glossary_English.txt", name)
}

func TestMisalignedConcepts(t *testing.T) {
	c, err := ParseConcept(1, protonEntry)
	require.NoError(t, err)
	multiline := termbase.NewConcept(3)
	multiline.Group("English").Definition = "first line\nsecond line"
	multiline.Group("English").Terms = []termbase.Term{{Word: "neutron", Usage: "a\tb"}}

	b := termbase.NewBuilder()
	b.Add(c)
	b.Add(multiline)
	tb := b.Build()

	ids, err := MisalignedConcepts(tb, am.FormatTab, am.LayoutColumn)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, ids)

	ids, err = MisalignedConcepts(tb, am.FormatGlossary, am.LayoutColumn)
	require.NoError(t, err)
	assert.Empty(t, ids, "glossary rows carry only terms")

	ids, err = MisalignedConcepts(tb, am.FormatComma, am.LayoutColumn)
	require.NoError(t, err)
	assert.Empty(t, ids, "quoted fields keep their line breaks")

	_, err = MisalignedConcepts(tb, "xlsx", am.LayoutColumn)
	assert.True(t, errors.IsUnsupported(err))
}
