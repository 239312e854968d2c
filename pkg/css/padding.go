package css

import "strings"

// Padding sets the shorthand from one to four values, space-joined.
// https://developer.mozilla.org/en-US/docs/Web/CSS/padding
func Padding(b StyleBuilder, values ...Numeric) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	b.Property("padding", strings.Join(parts, " "))
}

// https://developer.mozilla.org/en-US/docs/Web/CSS/padding-bottom
func PaddingBottom(b StyleBuilder, value Numeric) {
	b.Property("padding-bottom", value)
}

// https://developer.mozilla.org/en-US/docs/Web/CSS/padding-left
func PaddingLeft(b StyleBuilder, value Numeric) {
	b.Property("padding-left", value)
}

// https://developer.mozilla.org/en-US/docs/Web/CSS/padding-right
func PaddingRight(b StyleBuilder, value Numeric) {
	b.Property("padding-right", value)
}

// https://developer.mozilla.org/en-US/docs/Web/CSS/padding-top
func PaddingTop(b StyleBuilder, value Numeric) {
	b.Property("padding-top", value)
}
