package css

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/parser"
)

// StyleBuilder is the sink property helpers write into.
type StyleBuilder interface {
	Property(name string, value any)
}

// Declaration is one property/value pair.
type Declaration struct {
	Name      string
	Value     string
	Important bool
}

func (d Declaration) String() string {
	if d.Important {
		return d.Name + ": " + d.Value + " !important;"
	}
	return d.Name + ": " + d.Value + ";"
}

// Style is an ordered set of declarations for one element.
// Setting a property again replaces its value but keeps its position.
// The zero value is ready to use.
type Style struct {
	decls []Declaration
	index map[string]int
}

// Property implements StyleBuilder. Values are formatted with fmt.Sprint.
func (s *Style) Property(name string, value any) {
	s.set(Declaration{Name: name, Value: fmt.Sprint(value)})
}

func (s *Style) set(d Declaration) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[d.Name]; ok {
		s.decls[i] = d
		return
	}
	s.index[d.Name] = len(s.decls)
	s.decls = append(s.decls, d)
}

// Get returns the value of a property.
func (s *Style) Get(name string) (string, bool) {
	i, ok := s.index[name]
	if !ok {
		return "", false
	}
	return s.decls[i].Value, true
}

// Declarations returns a copy of the declarations in insertion order.
func (s *Style) Declarations() []Declaration {
	out := make([]Declaration, len(s.decls))
	copy(out, s.decls)
	return out
}

// Len reports the number of declarations.
func (s *Style) Len() int {
	return len(s.decls)
}

// String renders the style as an inline style attribute value.
func (s *Style) String() string {
	parts := make([]string, len(s.decls))
	for i, d := range s.decls {
		parts[i] = d.String()
	}
	return strings.Join(parts, " ")
}

// ParseInline reads an inline style attribute such as "padding: 4px; color: red".
func ParseInline(text string) (*Style, error) {
	// The parser only closes a declaration on ';'.
	if t := strings.TrimSpace(text); t != "" && !strings.HasSuffix(t, ";") {
		text = t + ";"
	}

	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil, fmt.Errorf("parse inline style: %w", err)
	}

	s := &Style{}
	for _, d := range decls {
		s.set(Declaration{Name: d.Property, Value: d.Value, Important: d.Important})
	}
	return s, nil
}
