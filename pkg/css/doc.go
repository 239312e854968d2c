/*
Package css provides typed helpers for writing CSS declarations from Go.

Values are numbers with units (Px, Em, Percent, ...). Property helpers such as Padding
forward a literal property name and the formatted value to a StyleBuilder, the sink
that accumulates declarations for one element. Values are trusted: nothing is
validated.

	var s css.Style
	css.Padding(&s, css.Px(10), css.Px(20))
	css.PaddingLeft(&s, css.Px(5))
	s.String() // "padding: 10px 20px; padding-left: 5px;"
*/
package css
