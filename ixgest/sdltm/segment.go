package sdltm

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/teranos/sdlppx/errors"
	"github.com/teranos/sdlppx/tmx"
)

// Tag types stored by SDL translation memories
const (
	TagStart = "Start"
	TagEnd   = "End"
)

// Segment is the serialized form of one side of a translation unit
//
//	<Segment>
//	  <Elements>
//	    <Text><Value>Hello </Value></Text>
//	    <Tag><Type>Start</Type><Anchor>1</Anchor><AlignmentAnchor>2</AlignmentAnchor><TagID>5</TagID></Tag>
//	  </Elements>
//	  <CultureName>en-US</CultureName>
//	</Segment>
type Segment struct {
	XMLName     xml.Name `xml:"Segment"`
	Elements    Elements `xml:"Elements"`
	CultureName string   `xml:"CultureName"`
}

// Elements keeps the Text and Tag children of a segment in document order
type Elements struct {
	Items []Element
}

// Element is either a Text run or a Tag
type Element struct {
	Text *Text
	Tag  *Tag
}

// Text is a literal run
type Text struct {
	Value string `xml:"Value"`
}

// Tag is an inline formatting marker
type Tag struct {
	Type            string `xml:"Type"`
	Anchor          string `xml:"Anchor"`
	AlignmentAnchor string `xml:"AlignmentAnchor"`
	TagID           string `xml:"TagID"`
}

// UnmarshalXML decodes children one at a time so their order survives
func (e *Elements) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Text":
				var text Text
				if err := d.DecodeElement(&text, &t); err != nil {
					return err
				}
				e.Items = append(e.Items, Element{Text: &text})
			case "Tag":
				var tag Tag
				if err := d.DecodeElement(&tag, &t); err != nil {
					return err
				}
				e.Items = append(e.Items, Element{Tag: &tag})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// ParseSegment decodes a stored segment document into TMX nodes
func ParseSegment(data string) (tmx.Segment, error) {
	var s Segment
	dec := xml.NewDecoder(strings.NewReader(data))
	// Stores declare utf-16 but the driver hands back decoded text
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) { return input, nil }
	if err := dec.Decode(&s); err != nil {
		return tmx.Segment{}, errors.Mark(errors.Wrap(err, "invalid segment document"), errors.ErrMalformedRecord)
	}
	if s.CultureName == "" {
		return tmx.Segment{}, errors.NewMalformedRecordf("segment has no CultureName")
	}

	seg := tmx.Segment{Lang: s.CultureName, Nodes: make([]tmx.Node, 0, len(s.Elements.Items))}
	for _, item := range s.Elements.Items {
		switch {
		case item.Text != nil:
			seg.Nodes = append(seg.Nodes, tmx.TextNode(item.Text.Value))
		case item.Tag != nil:
			seg.Nodes = append(seg.Nodes, tagNode(item.Tag))
		}
	}
	return seg, nil
}

func tagNode(t *Tag) tmx.Node {
	switch t.Type {
	case TagStart:
		return tmx.StartNode(t.TagID, t.Anchor, t.AlignmentAnchor)
	case TagEnd:
		return tmx.EndNode(t.Anchor)
	default:
		return tmx.StandaloneNode(t.TagID, t.AlignmentAnchor)
	}
}
