// Package dom keeps an HTML document in memory and exposes its elements as
// render targets.
package dom

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"employeedir/internal/render"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is an HTML document that is safe for concurrent use.
type Document struct {
	mu  sync.Mutex
	doc *goquery.Document
}

func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Element is a handle to an element of a Document.
type Element struct {
	doc  *Document
	node *html.Node
}

func (d *Document) lookup(id string) *html.Node {
	sel := d.doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.AttrOr("id", "") == id
	}).First()
	if sel.Length() == 0 {
		return nil
	}
	return sel.Get(0)
}

// LookupElement returns the first element whose id attribute is `id`.
func (d *Document) LookupElement(id string) (Element, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	node := d.lookup(id)
	if node == nil {
		return Element{}, false
	}
	return Element{doc: d, node: node}, true
}

// CreateElement creates a detached element, `id` may be empty.
func (d *Document) CreateElement(tag, id string) Element {
	tag = strings.ToLower(tag)
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if id != "" {
		node.Attr = []html.Attribute{{Key: "id", Val: id}}
	}
	return Element{doc: d, node: node}
}

func detach(node *html.Node) {
	if node.Parent != nil {
		node.Parent.RemoveChild(node)
	}
}

// InsertAfter moves `el` to be the next sibling of `ref`.
func (d *Document) InsertAfter(el Element, ref Element) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.insertAfter(el.node, ref.node)
}

func (d *Document) insertAfter(node, ref *html.Node) bool {
	if ref.Parent == nil || node == ref {
		return false
	}
	detach(node)
	ref.Parent.InsertBefore(node, ref.NextSibling)
	return true
}

// AppendToBody moves `el` to be the last child of <body>.
func (d *Document) AppendToBody(el Element) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.appendToBody(el.node)
}

func (d *Document) appendToBody(node *html.Node) {
	body := d.doc.Find("body")
	if body.Length() == 0 {
		return
	}
	detach(node)
	body.AppendNodes(node)
}

// Render writes the whole document.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, node := range d.doc.Nodes {
		err := html.Render(w, node)
		if err != nil {
			return err
		}
	}
	return nil
}

func (e Element) Id() string {
	for _, attr := range e.node.Attr {
		if attr.Key == "id" {
			return attr.Val
		}
	}
	return ""
}

func (e Element) Tag() string {
	return e.node.Data
}

func (e Element) isList() bool {
	return e.node.DataAtom == atom.Ul || e.node.DataAtom == atom.Ol
}

// InnerHTML renders the children of the element.
func (e Element) InnerHTML() string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	var out bytes.Buffer
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		html.Render(&out, child)
	}
	return out.String()
}

func textElement(a atom.Atom, text string, attrs ...html.Attribute) *html.Node {
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attrs,
	}
	node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return node
}

var errorStyle = html.Attribute{Key: "style", Val: "color:red;"}

func (e Element) lineNode(line render.Line) *html.Node {
	if e.isList() {
		if line.Kind == render.KindPreformatted {
			li := &html.Node{Type: html.ElementNode, Data: "li", DataAtom: atom.Li}
			li.AppendChild(textElement(atom.Pre, line.Text))
			return li
		}
		return textElement(atom.Li, line.Text)
	}

	switch line.Kind {
	case render.KindItem:
		return textElement(atom.Div, line.Text)
	case render.KindError:
		return textElement(atom.Span, line.Text, errorStyle)
	case render.KindPreformatted:
		return textElement(atom.Pre, line.Text)
	default:
		return &html.Node{Type: html.TextNode, Data: line.Text}
	}
}

// Replace implements render.Target, in a list element (<ul>, <ol>) every
// line becomes an <li>. Text is always escaped.
func (e Element) Replace(lines []render.Line) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	for child := e.node.FirstChild; child != nil; child = e.node.FirstChild {
		e.node.RemoveChild(child)
	}
	for _, line := range lines {
		e.node.AppendChild(e.lineNode(line))
	}
}

// LookupOrCreate returns the element with the given id, creating it right
// after the element `afterId` (or at the end of <body> when that one is
// missing) if needed.
func (d *Document) LookupOrCreate(tag, id, afterId string) Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	node := d.lookup(id)
	if node != nil {
		return Element{doc: d, node: node}
	}

	el := d.CreateElement(tag, id)
	ref := d.lookup(afterId)
	if ref != nil && d.insertAfter(el.node, ref) {
		return el
	}
	d.appendToBody(el.node)
	return el
}
