// Package dom is a small server-side document model. Panels only ever touch
// the elements they were configured with; pages render the tree to HTML for
// browsers and to plain text for terminals.
package dom

import (
	"html/template"
	"sort"
	"strings"
	"sync"
)

// Fragment is one rendered view fragment, already escaped.
type Fragment template.HTML

type Element struct {
	mu       sync.RWMutex
	tag      string
	id       string
	class    string
	attrs    map[string]string
	hidden   bool
	text     string
	children []*Element
	content  []Fragment
}

func (e *Element) ID() string { return e.id }

func (e *Element) Show() { e.setHidden(false) }

func (e *Element) Hide() { e.setHidden(true) }

func (e *Element) setHidden(hidden bool) {
	e.mu.Lock()
	e.hidden = hidden
	e.mu.Unlock()
}

func (e *Element) Visible() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return !e.hidden
}

// SetText replaces the element's content with plain text.
func (e *Element) SetText(s string) {
	e.mu.Lock()
	e.text = s
	e.content = nil
	e.mu.Unlock()
}

// Clear drops text and appended fragments. Structural children stay.
func (e *Element) Clear() {
	e.mu.Lock()
	e.text = ""
	e.content = nil
	e.mu.Unlock()
}

func (e *Element) Append(fragments ...Fragment) {
	e.mu.Lock()
	e.content = append(e.content, fragments...)
	e.mu.Unlock()
}

func (e *Element) Fragments() []Fragment {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Fragment, len(e.content))
	copy(out, e.content)
	return out
}

func (e *Element) SetAttr(key, value string) {
	e.mu.Lock()
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[key] = value
	e.mu.Unlock()
}

func (e *Element) Attr(key string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.attrs[key]
}

// HTML renders the element and its subtree.
func (e *Element) HTML() template.HTML {
	var b strings.Builder
	e.writeHTML(&b)
	return template.HTML(b.String())
}

func (e *Element) writeHTML(b *strings.Builder) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	b.WriteString("<" + e.tag)
	if e.id != "" {
		b.WriteString(` id="` + template.HTMLEscapeString(e.id) + `"`)
	}
	if e.class != "" {
		b.WriteString(` class="` + template.HTMLEscapeString(e.class) + `"`)
	}
	keys := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" " + template.HTMLEscapeString(k) + `="` + template.HTMLEscapeString(e.attrs[k]) + `"`)
	}
	if e.hidden {
		b.WriteString(` style="display:none"`)
	}
	b.WriteString(">")

	if voidElements[e.tag] {
		return
	}

	b.WriteString(template.HTMLEscapeString(e.text))
	for _, child := range e.children {
		child.writeHTML(b)
	}
	for _, f := range e.content {
		b.WriteString(string(f))
	}
	b.WriteString("</" + e.tag + ">")
}

// VisibleText returns the text a reader would see, one line per block.
// Hidden subtrees are skipped.
func (e *Element) VisibleText() string {
	var lines []string
	e.collectText(&lines)
	return strings.Join(lines, "\n")
}

func (e *Element) collectText(lines *[]string) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.hidden {
		return
	}
	if t := strings.TrimSpace(e.text); t != "" {
		*lines = append(*lines, t)
	}
	for _, child := range e.children {
		child.collectText(lines)
	}
	for _, f := range e.content {
		if t := Text(f); t != "" {
			*lines = append(*lines, t)
		}
	}
}

var voidElements = map[string]bool{
	"img":   true,
	"input": true,
	"br":    true,
	"hr":    true,
}

// Document indexes elements by their stable id.
type Document struct {
	mu   sync.RWMutex
	root *Element
	byID map[string]*Element
}

func NewDocument() *Document {
	return &Document{
		root: &Element{tag: "main"},
		byID: make(map[string]*Element),
	}
}

func (d *Document) Root() *Element { return d.root }

// Create adds a new element under parent (the root when parent is nil).
func (d *Document) Create(parent *Element, tag, id, class string) *Element {
	if parent == nil {
		parent = d.root
	}
	el := &Element{tag: tag, id: id, class: class}

	parent.mu.Lock()
	parent.children = append(parent.children, el)
	parent.mu.Unlock()

	if id != "" {
		d.mu.Lock()
		d.byID[id] = el
		d.mu.Unlock()
	}
	return el
}

// ElementByID returns nil when no element carries id.
func (d *Document) ElementByID(id string) *Element {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.byID[id]
}

