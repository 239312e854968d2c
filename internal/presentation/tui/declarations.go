package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/previewkit/pkg/css"
	"github.com/muesli/termenv"
)

// PrintDeclarations writes one declaration per line, property names highlighted
// when the output supports colour.
func PrintDeclarations(out *termenv.Output, decls []css.Declaration) {
	for _, d := range decls {
		name := out.String(d.Name).Foreground(out.Color("#818cf8"))
		value := out.String(d.Value).Foreground(out.Color("#f472b6"))
		suffix := ";"
		if d.Important {
			suffix = " !important;"
		}
		fmt.Fprintf(out, "%s: %s%s\n", name, value, suffix)
	}
}

// NewOutput returns a termenv output for w; plain text unless colour is wanted.
func NewOutput(w io.Writer, colour bool) *termenv.Output {
	if !colour {
		return termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}
	return termenv.NewOutput(w)
}
