package tmx

import (
	"io"

	"github.com/beevik/etree"
)

// TMX header constants for exports from SDL translation memories
const (
	Version        = "1.1"
	OriginalFormat = "SDLTM"
	AdminLang      = "en-US"
	DataType       = "plaintext"
	SegType        = "sentence"
)

// WriteTo serializes the document as TMX 1.1.
// Output is not indented: whitespace inside <seg> is content.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return d.tree().WriteTo(w)
}

func (d *Document) tree() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("tmx")
	root.CreateAttr("version", Version)

	header := root.CreateElement("header")
	header.CreateAttr("creationtool", d.Header.CreationTool)
	header.CreateAttr("o-tmf", OriginalFormat)
	header.CreateAttr("adminlang", AdminLang)
	header.CreateAttr("datatype", DataType)
	header.CreateAttr("creationtoolversion", d.Header.CreationToolVersion)
	header.CreateAttr("segtype", SegType)
	header.CreateAttr("srclang", d.Header.SrcLang)

	body := root.CreateElement("body")
	for _, u := range d.Units {
		tu := body.CreateElement("tu")
		writeSegment(tu, u.Source)
		writeSegment(tu, u.Target)
	}
	return doc
}

func writeSegment(tu *etree.Element, s Segment) {
	tuv := tu.CreateElement("tuv")
	tuv.CreateAttr("lang", s.Lang)
	seg := tuv.CreateElement("seg")

	for _, n := range s.Nodes {
		switch n.Kind {
		case Text:
			seg.CreateText(n.Text)
		case Start:
			bpt := seg.CreateElement("bpt")
			bpt.CreateAttr("type", n.TagID)
			bpt.CreateAttr("i", n.Anchor)
			bpt.CreateAttr("x", n.AlignmentAnchor)
		case End:
			ept := seg.CreateElement("ept")
			ept.CreateAttr("i", n.Anchor)
		case Standalone:
			ph := seg.CreateElement("ph")
			ph.CreateAttr("type", n.TagID)
			ph.CreateAttr("x", n.AlignmentAnchor)
		}
	}
}
