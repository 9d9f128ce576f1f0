// Package dom wraps a parsed HTML document and the handful of element
// operations the page behaviors need: URL resolution of anchors, inline style
// edits and class-list edits.
//
// A Document is not safe for concurrent use. Behaviors mutate it from the
// event loop they are mounted on; render it only after that loop is drained.
package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	ErrInvalidLocation = errors.New("invalid document location")
	ErrEmptyDocument   = errors.New("empty document")
)

// Document is an HTML document together with the URL it is displayed at.
type Document struct {
	doc *goquery.Document
	loc *url.URL
}

// Parse reads an HTML document (or fragment) from r. location is the URL
// of the page the document is shown at and is used to resolve links.
func Parse(r io.Reader, location string) (*Document, error) {
	loc, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}
	// browsers report http://host as http://host/
	if loc.IsAbs() && loc.Host != "" && loc.Path == "" && loc.Opaque == "" {
		loc.Path = "/"
	}
	node, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	doc := goquery.NewDocumentFromNode(node)
	doc.Url = loc
	return &Document{doc: doc, loc: loc}, nil
}

// Root returns the selection holding the document node.
func (d *Document) Root() *goquery.Selection {
	return d.doc.Selection
}

// Location returns the page URL.
func (d *Document) Location() *url.URL {
	return d.loc
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	if len(d.doc.Nodes) == 0 {
		return ErrEmptyDocument
	}
	return html.Render(w, d.doc.Nodes[0])
}

// String renders the document, returning "" on error.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Href returns the href attribute of the first element of sel resolved
// against base, like HTMLAnchorElement.href. Elements without href yield "".
// An href that does not parse is returned unchanged.
func Href(sel *goquery.Selection, base *url.URL) string {
	raw, ok := sel.Attr("href")
	if !ok {
		return ""
	}
	if base == nil {
		return raw
	}
	u, err := base.Parse(raw)
	if err != nil {
		return raw
	}
	return u.String()
}
