package barchart

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"slices"
)

// Node is content mounted under a page anchor. Nodes render when the page is
// written, so state changes made after mounting show up in the output.
type Node interface {
	Render(w io.Writer) error
}

// AssetNode is a node that needs a stylesheet and script in the page.
type AssetNode interface {
	Node
	Stylesheet() string
	Script() string
}

// Page is the host HTML document with named mount anchors.
type Page struct {
	Title   string
	anchors []*anchor
}

type anchor struct {
	id    string
	nodes []Node
}

func NewPage(title string, anchorIDs ...string) *Page {
	p := &Page{Title: title}
	for _, id := range anchorIDs {
		if !p.Has(id) {
			p.anchors = append(p.anchors, &anchor{id: id})
		}
	}
	return p
}

func (p *Page) find(id string) *anchor {
	for _, a := range p.anchors {
		if a.id == id {
			return a
		}
	}
	return nil
}

func (p *Page) Has(id string) bool { return p.find(id) != nil }

// Mount appends n under the anchor with the given id.
func (p *Page) Mount(id string, n Node) error {
	a := p.find(id)
	if a == nil {
		return fmt.Errorf("%w: #%s", ErrNoMountPoint, id)
	}
	a.nodes = append(a.nodes, n)
	return nil
}

// Unmount removes n from the anchor. It reports whether n was mounted.
func (p *Page) Unmount(id string, n Node) bool {
	a := p.find(id)
	if a == nil {
		return false
	}
	i := slices.Index(a.nodes, n)
	if i < 0 {
		return false
	}
	a.nodes = slices.Delete(a.nodes, i, i+1)
	return true
}

// Nodes lists what is mounted under id.
func (p *Page) Nodes(id string) []Node {
	if a := p.find(id); a != nil {
		return slices.Clone(a.nodes)
	}
	return nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{- range .Styles}}
<style>{{.}}</style>
{{- end}}
</head>
<body>
{{- range .Anchors}}
<div id="{{.ID}}">{{.HTML}}</div>
{{- end}}
{{- range .Scripts}}
<script>{{.}}</script>
{{- end}}
</body>
</html>
`))

type pageAnchor struct {
	ID   string
	HTML template.HTML
}

type pageData struct {
	Title   string
	Styles  []template.CSS
	Scripts []template.JS
	Anchors []pageAnchor
}

func (p *Page) WriteTo(w io.Writer) (int64, error) {
	data := pageData{Title: p.Title}
	for _, a := range p.anchors {
		var buf bytes.Buffer
		for _, n := range a.nodes {
			if err := n.Render(&buf); err != nil {
				return 0, fmt.Errorf("render #%s: %w", a.id, err)
			}
			if an, ok := n.(AssetNode); ok {
				if css := template.CSS(an.Stylesheet()); css != "" && !slices.Contains(data.Styles, css) {
					data.Styles = append(data.Styles, css)
				}
				if js := template.JS(an.Script()); js != "" && !slices.Contains(data.Scripts, js) {
					data.Scripts = append(data.Scripts, js)
				}
			}
		}
		data.Anchors = append(data.Anchors, pageAnchor{ID: a.id, HTML: template.HTML(buf.String())})
	}

	cw := &countingWriter{w: w}
	err := pageTemplate.Execute(cw, data)
	return cw.n, err
}

// Bytes renders the whole document.
func (p *Page) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}
