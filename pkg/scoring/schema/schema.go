// Package schema builds a genai.Schema from a Go struct's shape via
// reflection, so the Coherence analyzer can constrain the model's structured
// output to exactly the CoherenceResult fields without hand-maintaining a
// parallel JSON-schema literal.
package schema

import (
	"reflect"
	"strings"
	"sync"

	"google.golang.org/genai"
)

var (
	cacheMu sync.Mutex
	cache   = make(map[reflect.Type]*genai.Schema)
)

// Of returns the genai.Schema for the given type, building and caching it on
// first use. Pointer types are dereferenced before lookup.
func Of(t reflect.Type) *genai.Schema {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	cacheMu.Lock()
	if s, ok := cache[t]; ok {
		cacheMu.Unlock()
		return s
	}
	cacheMu.Unlock()

	s := build(t)

	cacheMu.Lock()
	cache[t] = s
	cacheMu.Unlock()
	return s
}

func build(t reflect.Type) *genai.Schema {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return &genai.Schema{
			Type:  genai.TypeArray,
			Items: build(t.Elem()),
		}
	case reflect.Ptr:
		// Optional scalar fields (e.g. CoherenceResult.TopicCoherence) are
		// pointers, so build has to recurse through pointer fields too, not
		// just dereference the outermost type in Of.
		return build(t.Elem())
	case reflect.Struct:
		s := &genai.Schema{
			Type:       genai.TypeObject,
			Properties: make(map[string]*genai.Schema),
		}
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			jsonTag := field.Tag.Get("json")
			if jsonTag == "" || jsonTag == "-" {
				continue
			}
			name := strings.Split(jsonTag, ",")[0]
			ps := build(field.Type)

			if tag := field.Tag.Get("jsonscheme"); tag != "" {
				applyTag(ps, tag)
			}

			s.Properties[name] = ps
			if !strings.Contains(jsonTag, "omitempty") {
				s.Required = append(s.Required, name)
			}
		}
		return s
	case reflect.String:
		return &genai.Schema{Type: genai.TypeString}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &genai.Schema{Type: genai.TypeInteger}
	case reflect.Float32, reflect.Float64:
		return &genai.Schema{Type: genai.TypeNumber}
	case reflect.Bool:
		return &genai.Schema{Type: genai.TypeBoolean}
	default:
		panic("schema: unsupported type for schema generation: " + t.String())
	}
}

func applyTag(s *genai.Schema, tag string) {
	for _, part := range strings.Split(tag, ";") {
		if strings.HasPrefix(part, "enum:") {
			vals := strings.Split(strings.TrimPrefix(part, "enum:"), ",")
			target := s
			if s.Type == genai.TypeArray && s.Items != nil {
				target = s.Items
			}
			target.Enum = vals
		}
	}
}
