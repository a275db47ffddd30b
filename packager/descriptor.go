package packager

import (
	"bytes"

	"github.com/beevik/etree"
	"golang.org/x/text/language"

	"github.com/teranos/sdlppx/errors"
)

// PackageType is the role recorded in a project descriptor
type PackageType string

const (
	ProjectPackage PackageType = "ProjectPackage"
	ReturnPackage  PackageType = "ReturnPackage"
)

const (
	attrPackageType    = "PackageType"
	attrTargetLanguage = "TargetLanguageCode"
	pathDirections     = "//LanguageDirections/LanguageDirection"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Descriptor is a parsed .sdlproj document
type Descriptor struct {
	Entry          string
	Type           PackageType
	TargetLanguage string
	Directions     int

	doc *etree.Document
}

// ParseDescriptor parses descriptor content read from entry
func ParseDescriptor(entry string, data []byte) (*Descriptor, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(bytes.TrimPrefix(data, utf8BOM)); err != nil {
		return nil, errors.Wrapf(err, "failed to parse descriptor %s", entry)
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.Newf("descriptor %s has no root element", entry)
	}

	d := &Descriptor{Entry: entry, doc: doc}

	attr := root.SelectAttr(attrPackageType)
	if attr == nil {
		return nil, errors.Newf("descriptor %s has no %s attribute", entry, attrPackageType)
	}
	switch t := PackageType(attr.Value); t {
	case ProjectPackage, ReturnPackage:
		d.Type = t
	default:
		return nil, errors.NewUnsupportedf("descriptor %s has unknown package type %q", entry, attr.Value)
	}

	directions := doc.FindElements(pathDirections)
	d.Directions = len(directions)
	if len(directions) > 0 {
		d.TargetLanguage = directions[0].SelectAttrValue(attrTargetLanguage, "")
	}

	return d, nil
}

// ValidLanguage reports whether the target language parses as a BCP 47 tag
func (d *Descriptor) ValidLanguage() bool {
	if d.TargetLanguage == "" {
		return false
	}
	_, err := language.Parse(d.TargetLanguage)
	return err == nil
}

// MarkReturned flips a project package to a return package.
// Returns false, leaving the document untouched, if it already is one.
func (d *Descriptor) MarkReturned() bool {
	if d.Type == ReturnPackage {
		return false
	}
	d.doc.Root().CreateAttr(attrPackageType, string(ReturnPackage))
	d.Type = ReturnPackage
	return true
}

// Bytes serializes the descriptor
func (d *Descriptor) Bytes() ([]byte, error) {
	data, err := d.doc.WriteToBytes()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to serialize descriptor %s", d.Entry)
	}
	return data, nil
}
