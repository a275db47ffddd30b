package sdltb

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/teranos/sdlppx/errors"
	"github.com/teranos/sdlppx/termbase"
)

// Descriptive field types used by SDL MultiTerm entries
const (
	typeOrigination  = "origination"
	typeModification = "modification"
	typeForbidden    = "Forbidden term"
	typeDefinition   = "Definition"
	typeUsage        = "Usage example"
)

var langReplacer = strings.NewReplacer(" ", "_", "(", "", ")", "")

// NormalizeLanguage turns a MultiTerm language label into a column-safe code:
// "French (Canada)" becomes "French_Canada".
func NormalizeLanguage(label string) string {
	return langReplacer.Replace(label)
}

// ParseConcept builds a concept from one entry document.
// Any structural problem is returned as a malformed-record error.
func ParseConcept(id int, text string) (*termbase.Concept, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(text); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "concept %d: invalid entry document", id), errors.ErrMalformedRecord)
	}
	root := doc.Root()
	if root == nil || root.Tag != "cG" {
		return nil, errors.NewMalformedRecordf("concept %d: entry document has no cG root", id)
	}

	c := termbase.NewConcept(id)
	parseTransactions(root, c)

	// Concept-level descriptive fields: the first child of each dG
	for _, dG := range root.SelectElements("dG") {
		children := dG.ChildElements()
		if len(children) == 0 {
			continue
		}
		key := children[0].SelectAttrValue("type", "")
		if key == "" {
			continue
		}
		c.SetMeta(key, textContent(children[0]))
	}

	for _, lG := range root.SelectElements("lG") {
		if err := parseLanguageGroup(id, lG, c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// parseTransactions reads creator/modifier and their timestamps; first match wins
func parseTransactions(root *etree.Element, c *termbase.Concept) {
	var haveOrigin, haveModify bool
	for _, trG := range root.SelectElements("trG") {
		dt := textContent(trG.SelectElement("dt"))
		if tr := trG.FindElement("tr[@type='" + typeOrigination + "']"); tr != nil && !haveOrigin {
			c.Creator = textContent(tr)
			c.Created = dt
			haveOrigin = true
		}
		if tr := trG.FindElement("tr[@type='" + typeModification + "']"); tr != nil && !haveModify {
			c.Modifier = textContent(tr)
			c.Modified = dt
			haveModify = true
		}
	}
}

func parseLanguageGroup(id int, lG *etree.Element, c *termbase.Concept) error {
	l := lG.SelectElement("l")
	if l == nil || l.SelectAttrValue("type", "") == "" {
		return errors.NewMalformedRecordf("concept %d: language group without language", id)
	}
	group := c.Group(NormalizeLanguage(l.SelectAttrValue("type", "")))

	for _, child := range lG.ChildElements() {
		switch child.Tag {
		case "dG":
			for _, d := range child.SelectElements("d") {
				switch d.SelectAttrValue("type", "") {
				case typeForbidden:
					group.Terms = append(group.Terms, termbase.Term{Word: textContent(d), Info: termbase.InfoNonTerm})
				case typeDefinition:
					group.Definition = textContent(d)
				}
			}
		case "tG":
			term := termbase.Term{Word: textContent(child.SelectElement("t"))}
			for _, dG := range child.SelectElements("dG") {
				for _, d := range dG.SelectElements("d") {
					if d.SelectAttrValue("type", "") == typeUsage {
						term.Usage = textContent(d)
					}
				}
			}
			group.Terms = append(group.Terms, term)
		}
	}
	return nil
}

// textContent concatenates all character data below e
func textContent(e *etree.Element) string {
	if e == nil {
		return ""
	}
	var sb strings.Builder
	appendText(&sb, e)
	return sb.String()
}

func appendText(sb *strings.Builder, e *etree.Element) {
	for _, tok := range e.Child {
		switch v := tok.(type) {
		case *etree.CharData:
			sb.WriteString(v.Data)
		case *etree.Element:
			appendText(sb, v)
		}
	}
}
