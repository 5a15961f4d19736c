package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

// Delimiters used by every template.
const (
	LeftDelim  = "<%"
	RightDelim = "%>"
)

// Data is the value a template executes against. Keys are answer names plus
// any values a generator derives from them.
type Data map[string]any

// Funcs are available to every template.
var Funcs = template.FuncMap{
	"upper": func(v any) string { return strings.ToUpper(fmt.Sprint(v)) },
	"lower": func(v any) string { return strings.ToLower(fmt.Sprint(v)) },
	"join":  func(items []string, sep string) string { return strings.Join(items, sep) },
	"csv":   SplitCSV,
}

// SplitCSV splits a comma-joined answer into trimmed, non-empty items. A
// missing value yields no items.
func SplitCSV(v any) []string {
	if v == nil {
		return nil
	}
	var items []string
	for _, part := range strings.Split(fmt.Sprint(v), ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

// Renderer renders embedded templates with a fixed data set.
type Renderer struct {
	fsys fs.FS
	data Data
}

// NewRenderer creates a renderer over the embedded templates.
func NewRenderer(data Data) *Renderer {
	return &Renderer{fsys: TemplateFS, data: data}
}

// RenderFile parses content as a template and executes it.
func (r *Renderer) RenderFile(name string, content []byte) ([]byte, error) {
	tmpl, err := template.New(name).
		Delims(LeftDelim, RightDelim).
		Funcs(Funcs).
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, r.data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Render returns the content of ref: executed when it is a template, raw
// otherwise.
func (r *Renderer) Render(ref Ref) ([]byte, error) {
	name, isTemplate, err := locate(ref)
	if err != nil {
		return nil, err
	}
	content, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if !isTemplate {
		return content, nil
	}
	return r.RenderFile(name, content)
}

// Render renders ref against data.
func Render(ref Ref, data Data) ([]byte, error) {
	return NewRenderer(data).Render(ref)
}
