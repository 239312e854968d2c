package css

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Unit is a CSS unit suffix.
type Unit string

const (
	UnitNone    Unit = ""
	UnitPx      Unit = "px"
	UnitEm      Unit = "em"
	UnitRem     Unit = "rem"
	UnitPercent Unit = "%"
	UnitVw      Unit = "vw"
	UnitVh      Unit = "vh"
	UnitPt      Unit = "pt"
)

// Numeric is a number with a unit, e.g. 10px.
type Numeric struct {
	Value float64
	Unit  Unit
}

func (n Numeric) String() string {
	return strconv.FormatFloat(n.Value, 'f', -1, 64) + string(n.Unit)
}

func Px(v float64) Numeric      { return Numeric{v, UnitPx} }
func Em(v float64) Numeric      { return Numeric{v, UnitEm} }
func Rem(v float64) Numeric     { return Numeric{v, UnitRem} }
func Percent(v float64) Numeric { return Numeric{v, UnitPercent} }
func Vw(v float64) Numeric      { return Numeric{v, UnitVw} }
func Vh(v float64) Numeric      { return Numeric{v, UnitVh} }
func Pt(v float64) Numeric      { return Numeric{v, UnitPt} }

// Number is a unitless value.
func Number(v float64) Numeric { return Numeric{v, UnitNone} }

var knownUnits = []Unit{UnitRem, UnitPx, UnitEm, UnitPercent, UnitVw, UnitVh, UnitPt}

// cssNumber is the CSS <number> token: decimal only, no hex, Inf or NaN.
var cssNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumeric reads a value such as "10px", "1.5em" or "0".
func ParseNumeric(s string) (Numeric, error) {
	unit := UnitNone
	number := s
	for _, u := range knownUnits {
		if strings.HasSuffix(s, string(u)) {
			unit = u
			number = strings.TrimSuffix(s, string(u))
			break
		}
	}

	if !cssNumber.MatchString(number) {
		return Numeric{}, fmt.Errorf("invalid numeric value %q", s)
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return Numeric{}, fmt.Errorf("invalid numeric value %q", s)
	}
	return Numeric{v, unit}, nil
}
