package sdltb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/sdlppx/errors"
	"github.com/teranos/sdlppx/termbase"
)

const protonEntry = `<cG><c>1</c>
  <dG><d type="Subject">Physics</d></dG>
  <trG><tr type="origination">alice</tr><dt>2020-01-01T10:00:00</dt></trG>
  <trG><tr type="modification">bob</tr><dt>2021-02-03T11:00:00</dt></trG>
  <lG><l type="English"/>
    <dG><d type="Definition">A <b>subatomic</b> particle</d></dG>
    <tG><t>proton</t><dG><d type="Usage example">The proton is positive.</d></dG></tG>
    <dG><d type="Forbidden term">antiproton</d></dG>
  </lG>
  <lG><l type="French (Canada)"/><tG><t>proton</t></tG></lG>
</cG>`

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, "French_Canada", NormalizeLanguage("French (Canada)"))
	assert.Equal(t, "English", NormalizeLanguage("English"))
	assert.Equal(t, "Chinese_Simplified_PRC", NormalizeLanguage("Chinese (Simplified) PRC"))
}

func TestParseConcept(t *testing.T) {
	c, err := ParseConcept(1, protonEntry)
	require.NoError(t, err)

	assert.Equal(t, 1, c.ID)
	assert.Equal(t, "alice", c.Creator)
	assert.Equal(t, "2020-01-01T10:00:00", c.Created)
	assert.Equal(t, "bob", c.Modifier)
	assert.Equal(t, "2021-02-03T11:00:00", c.Modified)
	assert.Equal(t, []string{"Subject"}, c.MetaKeys())
	assert.Equal(t, "Physics", c.Meta("Subject"))
	assert.Equal(t, []string{"English", "French_Canada"}, c.Languages())

	en, ok := c.LookupGroup("English")
	require.True(t, ok)
	assert.Equal(t, "A subatomic particle", en.Definition, "text content includes nested markup")
	assert.Equal(t, []termbase.Term{
		{Word: "proton", Usage: "The proton is positive."},
		{Word: "antiproton", Info: termbase.InfoNonTerm},
	}, en.Terms)

	fr, ok := c.LookupGroup("French_Canada")
	require.True(t, ok)
	assert.Equal(t, []termbase.Term{{Word: "proton"}}, fr.Terms)
}

func TestParseConcept_FirstTransactionWins(t *testing.T) {
	entry := `<cG>
  <trG><tr type="modification">bob</tr><dt>2021</dt></trG>
  <trG><tr type="modification">carol</tr><dt>2022</dt></trG>
</cG>`
	c, err := ParseConcept(3, entry)
	require.NoError(t, err)
	assert.Equal(t, "bob", c.Modifier)
	assert.Equal(t, "2021", c.Modified)
	assert.Empty(t, c.Creator)
}

func TestParseConcept_RepeatedLanguageMerges(t *testing.T) {
	entry := `<cG>
  <lG><l type="German"/><tG><t>Kern</t></tG></lG>
  <lG><l type="German"/><tG><t>Atomkern</t></tG></lG>
</cG>`
	c, err := ParseConcept(4, entry)
	require.NoError(t, err)
	g, ok := c.LookupGroup("German")
	require.True(t, ok)
	assert.Len(t, g.Terms, 2)
}

func TestParseConcept_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not xml", `<cG><lG>`},
		{"wrong root", `<entry/>`},
		{"empty", ``},
		{"language without label", `<cG><lG><tG><t>x</t></tG></lG></cG>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConcept(9, tt.text)
			require.Error(t, err)
			assert.True(t, errors.IsMalformedRecord(err))
		})
	}
}
