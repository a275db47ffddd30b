// Package tmx models translation units and writes them as a TMX 1.1 document.
package tmx

// NodeKind distinguishes literal text from the three kinds of inline tag marker
type NodeKind int

const (
	Text NodeKind = iota
	Start
	End
	Standalone
)

func (k NodeKind) String() string {
	switch k {
	case Text:
		return "text"
	case Start:
		return "start"
	case End:
		return "end"
	case Standalone:
		return "standalone"
	default:
		return "unknown"
	}
}

// Node is one element of a segment's content: a run of text or a tag marker.
// Tag identifiers are opaque and written back unchanged.
type Node struct {
	Kind            NodeKind
	Text            string
	TagID           string
	Anchor          string
	AlignmentAnchor string
}

// TextNode creates a literal text node
func TextNode(s string) Node {
	return Node{Kind: Text, Text: s}
}

// StartNode creates an opening tag marker
func StartNode(tagID, anchor, alignmentAnchor string) Node {
	return Node{Kind: Start, TagID: tagID, Anchor: anchor, AlignmentAnchor: alignmentAnchor}
}

// EndNode creates a closing tag marker
func EndNode(anchor string) Node {
	return Node{Kind: End, Anchor: anchor}
}

// StandaloneNode creates a placeholder tag marker
func StandaloneNode(tagID, alignmentAnchor string) Node {
	return Node{Kind: Standalone, TagID: tagID, AlignmentAnchor: alignmentAnchor}
}

// Segment is the content of one side of a translation unit
type Segment struct {
	Lang  string
	Nodes []Node
}

// Unit is a source segment paired with its translation
type Unit struct {
	Source Segment
	Target Segment
}

// Header carries the descriptive attributes of the <header> element
type Header struct {
	CreationTool        string
	CreationToolVersion string
	SrcLang             string
}

// Document is a complete translation memory export
type Document struct {
	Header Header
	Units  []Unit
}
