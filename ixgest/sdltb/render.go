package sdltb

import (
	"fmt"
	"io"
	"strings"

	"github.com/teranos/sdlppx/am"
	"github.com/teranos/sdlppx/errors"
	"github.com/teranos/sdlppx/termbase"
)

// Header column names of the delimited export
const (
	ColCreated     = "Entry_Created"
	ColCreator     = "Entry_Creator"
	ColModified    = "Entry_LastModified"
	ColModifier    = "Entry_Modifier"
	ColTermInfo    = "Term_Info"
	ColTermExample = "Term_Example"
	suffixDef      = "_Def"
)

// dialect describes how one output format writes fields
type dialect struct {
	sep      string
	ext      string
	quoted   bool
	glossary bool
}

var dialects = map[am.OutputFormat]dialect{
	am.FormatComma:     {sep: ",", ext: ".csv", quoted: true},
	am.FormatSemicolon: {sep: ";", ext: ".csv", quoted: true},
	am.FormatTab:       {sep: "\t", ext: ".txt"},
	am.FormatGlossary:  {sep: "\t", ext: ".txt", glossary: true},
}

func dialectFor(format am.OutputFormat) (dialect, error) {
	d, ok := dialects[format]
	if !ok {
		return dialect{}, errors.NewUnsupportedf("unsupported output format %q", format)
	}
	return d, nil
}

// Extension returns the file extension written for format
func Extension(format am.OutputFormat) (string, error) {
	d, err := dialectFor(format)
	if err != nil {
		return "", err
	}
	return d.ext, nil
}

// OutputName returns the export file name for a termbase with the given languages
func OutputName(prefix string, languages []string, format am.OutputFormat) (string, error) {
	ext, err := Extension(format)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_glossary_%s%s", prefix, strings.Join(languages, "_"), ext), nil
}

// PipeJoin renders a language's synonyms as one field. Ordinary terms are
// prepended and forbidden terms appended as "(NOT: word)", so
// [proton, antiproton(forbidden)] becomes "proton|(NOT: antiproton)".
func PipeJoin(terms []termbase.Term) string {
	joined := ""
	for _, t := range terms {
		if t.Forbidden() {
			joined += "(NOT: " + t.Word + ")|"
		} else {
			joined = t.Word + "|" + joined
		}
	}
	return strings.TrimSuffix(joined, "|")
}

// Render writes tb to w in the given format and synonym layout
func Render(w io.Writer, tb *termbase.TermBase, format am.OutputFormat, layout am.SynonymLayout) error {
	d, err := dialectFor(format)
	if err != nil {
		return err
	}
	if layout != am.LayoutColumn && layout != am.LayoutPipe {
		return errors.NewUnsupportedf("unsupported synonym layout %q", layout)
	}

	r := &rowWriter{w: w, d: d}
	if d.glossary {
		for _, c := range tb.Concepts() {
			r.write(glossaryRow(tb, c, layout))
		}
		return r.err
	}

	r.write(Header(tb, layout))
	for _, c := range tb.Concepts() {
		r.write(delimitedRow(tb, c, layout))
	}
	return r.err
}

// MisalignedConcepts returns the ids of concepts with a field holding the
// separator or a line break. Unquoted formats write such fields raw, so the
// rows of these concepts do not match the header's field count.
func MisalignedConcepts(tb *termbase.TermBase, format am.OutputFormat, layout am.SynonymLayout) ([]int, error) {
	d, err := dialectFor(format)
	if err != nil {
		return nil, err
	}
	if d.quoted {
		return nil, nil
	}

	var ids []int
	for _, c := range tb.Concepts() {
		row := delimitedRow(tb, c, layout)
		if d.glossary {
			row = glossaryRow(tb, c, layout)
		}
		for _, f := range row {
			if strings.ContainsAny(f, d.sep+"\r\n") {
				ids = append(ids, c.ID)
				break
			}
		}
	}
	return ids, nil
}

// Header returns the header fields of the delimited export
func Header(tb *termbase.TermBase, layout am.SynonymLayout) []string {
	fields := []string{ColCreated, ColCreator, ColModified, ColModifier}
	fields = append(fields, tb.MetaKeys()...)
	for _, lang := range tb.Languages() {
		fields = append(fields, lang+suffixDef)
		if layout == am.LayoutPipe {
			fields = append(fields, lang)
			continue
		}
		for i := 0; i < tb.Capacity(lang); i++ {
			fields = append(fields, lang, ColTermInfo, ColTermExample)
		}
	}
	return fields
}

func delimitedRow(tb *termbase.TermBase, c *termbase.Concept, layout am.SynonymLayout) []string {
	fields := []string{c.Created, c.Creator, c.Modified, c.Modifier}
	for _, key := range tb.MetaKeys() {
		fields = append(fields, c.Meta(key))
	}

	for _, lang := range tb.Languages() {
		g, ok := c.LookupGroup(lang)
		if !ok {
			g = &termbase.TermGroup{}
		}
		fields = append(fields, g.Definition)

		if layout == am.LayoutPipe {
			fields = append(fields, PipeJoin(g.Terms))
			continue
		}
		for i := 0; i < tb.Capacity(lang); i++ {
			if i < len(g.Terms) {
				t := g.Terms[i]
				fields = append(fields, t.Word, t.Info, t.Usage)
			} else {
				fields = append(fields, "", "", "")
			}
		}
	}
	return fields
}

func glossaryRow(tb *termbase.TermBase, c *termbase.Concept, layout am.SynonymLayout) []string {
	var fields []string
	for _, lang := range tb.Languages() {
		var terms []termbase.Term
		if g, ok := c.LookupGroup(lang); ok {
			terms = g.Terms
		}

		if layout == am.LayoutPipe {
			fields = append(fields, PipeJoin(terms))
			continue
		}
		for i := 0; i < tb.Capacity(lang); i++ {
			if i < len(terms) {
				fields = append(fields, terms[i].Word)
			} else {
				fields = append(fields, "")
			}
		}
	}
	return fields
}

// rowWriter joins fields with the dialect's separator; the first error sticks
type rowWriter struct {
	w   io.Writer
	d   dialect
	err error
}

func (r *rowWriter) write(fields []string) {
	if r.err != nil {
		return
	}
	var sb strings.Builder
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(r.d.sep)
		}
		if r.d.quoted {
			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
			sb.WriteByte('"')
		} else {
			sb.WriteString(f)
		}
	}
	sb.WriteByte('\n')
	if _, err := io.WriteString(r.w, sb.String()); err != nil {
		r.err = errors.Wrap(err, "failed to write row")
	}
}
