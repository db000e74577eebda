// Package astdump converts syntax trees into plain maps and lists that
// marshal to YAML or JSON, for inspection and golden tests.
package astdump

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/orizon-lang/csfront/internal/ast"
)

// Entry is the dump of one node. Fields holds the non-empty fields of the
// node under their lower-camel names; child nodes appear as nested
// entries, type references and enums in source spelling.
type Entry struct {
	Kind   string         `json:"kind" yaml:"kind"`
	Span   string         `json:"span,omitempty" yaml:"span,omitempty"`
	Fields map[string]any `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Options controls what Build records.
type Options struct {
	Spans bool // record the span of every node
}

var (
	nodeBaseType = reflect.TypeOf(ast.NodeBase{})
	stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// Build dumps the tree rooted at n. It returns nil for a nil node.
func Build(n ast.Node, opts Options) *Entry {
	v := reflect.ValueOf(n)
	if n == nil || (v.Kind() == reflect.Ptr && v.IsNil()) {
		return nil
	}
	v = reflect.Indirect(v)
	e := &Entry{Kind: v.Type().Name()}
	if opts.Spans {
		e.Span = n.GetSpan().String()
	}
	for i := 0; i < v.NumField(); i++ {
		f := v.Type().Field(i)
		if f.Type == nodeBaseType || !f.IsExported() {
			continue
		}
		if val, ok := dumpValue(v.Field(i), opts); ok {
			if e.Fields == nil {
				e.Fields = make(map[string]any)
			}
			e.Fields[lowerFirst(f.Name)] = val
		}
	}
	return e
}

func dumpValue(v reflect.Value, opts Options) (any, bool) {
	if (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && v.IsNil() {
		return nil, false
	}
	switch x := v.Interface().(type) {
	case *ast.TypeReference:
		return x.String(), true
	case ast.Modifiers:
		if x == ast.ModNone {
			return nil, false
		}
		return x.Names(), true
	case ast.Node:
		return Build(x, opts), true
	}
	if v.Type().Implements(stringerType) {
		return v.Interface().(fmt.Stringer).String(), true
	}

	switch v.Kind() {
	case reflect.Interface:
		return dumpValue(v.Elem(), opts)
	case reflect.String:
		return v.String(), v.Len() > 0
	case reflect.Bool:
		return true, v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint(), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Slice:
		if v.Len() == 0 {
			return nil, false
		}
		list := make([]any, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			if item, ok := dumpValue(v.Index(i), opts); ok {
				list = append(list, item)
			} else {
				list = append(list, nil)
			}
		}
		return list, true
	}
	return nil, false
}

func lowerFirst(s string) string {
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// WriteYAML writes v as YAML with two-space indentation.
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
