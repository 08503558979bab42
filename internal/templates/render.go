package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"text/template"
)

// Options tunes parsing. Zero value uses the default {{ }} delimiters.
type Options struct {
	LeftDelim  string
	RightDelim string
	Funcs      template.FuncMap
}

// Parse parses body under name with missingkey=error.
func Parse(name, body string, opts Options) (*template.Template, error) {
	tpl := template.New(name).Option("missingkey=error")
	if opts.LeftDelim != "" || opts.RightDelim != "" {
		tpl = tpl.Delims(opts.LeftDelim, opts.RightDelim)
	}
	if opts.Funcs != nil {
		tpl = tpl.Funcs(opts.Funcs)
	}
	tpl, err := tpl.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	return tpl, nil
}

// MustParseFS parses an embedded template file and panics if it is missing or
// malformed (programmer error).
func MustParseFS(fsys fs.FS, path string, opts Options) *template.Template {
	b, err := fs.ReadFile(fsys, path)
	if err != nil {
		panic(fmt.Sprintf("embedded template missing %s: %v", path, err))
	}
	tpl, err := Parse(path, string(b), opts)
	if err != nil {
		panic(err)
	}
	return tpl
}

// Execute renders tpl with data.
func Execute(tpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", tpl.Name(), err)
	}
	return buf.String(), nil
}

// Render parses and executes body in one step.
func Render(name, body string, data any, opts Options) (string, error) {
	tpl, err := Parse(name, body, opts)
	if err != nil {
		return "", err
	}
	return Execute(tpl, data)
}
