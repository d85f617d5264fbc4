package render

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"hexshell/pkg/hextypes"
)

// Fixed tokens emitted by the renderers.
const (
	Recursion     = "<recursion>"
	NullToken     = "nil"
	EllipsisToken = "..."
)

// Options are the render-time switches read from configuration.
type Options struct {
	// AlsoDecimal appends the decimal form to top-level integral values.
	AlsoDecimal bool
	// ShowTopNull renders a top-level nil instead of suppressing it.
	ShowTopNull bool
}

// DefaultOptions returns the options matching the default settings.
func DefaultOptions() Options {
	return Options{AlsoDecimal: true}
}

// Leaf formats a value of a non-container shape. The second result is false when nothing
// is produced (a suppressed top-level nil). Container shapes fall back to their default
// textual form; callers recurse into them instead.
func Leaf(v any, shape hextypes.Shape, top bool, opts Options) (string, bool) {
	switch shape {
	case hextypes.ShapeBool:
		return strconv.FormatBool(reflect.ValueOf(v).Bool()), true
	case hextypes.ShapeNull:
		if top && !opts.ShowTopNull {
			return "", false
		}
		return NullToken, true
	case hextypes.ShapeInteger:
		return formatInteger(v, top && opts.AlsoDecimal), true
	case hextypes.ShapeNearIntegral:
		n, _ := nearIntegral(reflect.ValueOf(v).Float())
		dec, hex := integerText(n)
		if top && opts.AlsoDecimal {
			return "~" + dec + " / ~" + hex, true
		}
		return "~" + hex, true
	case hextypes.ShapeText:
		return Quote(reflect.ValueOf(v).String()), true
	case hextypes.ShapeEllipsis:
		return EllipsisToken, true
	case hextypes.ShapeOneShot:
		return "<generator " + hextypes.TypeName(v) + ">", true
	}
	return fmt.Sprintf("%v", v), true
}

func formatInteger(v any, withDecimal bool) string {
	dec, hex := integerText(v)
	custom, ok := customForm(v)
	switch {
	case ok && withDecimal:
		// Enumeration forms usually embed the number already.
		if strings.Contains(custom, dec) {
			return custom + " / " + hex
		}
		return custom + " / " + dec + " / " + hex
	case ok:
		return custom
	case withDecimal:
		return dec + " / " + hex
	default:
		return hex
	}
}

// customForm reports the display override of an integral value. Named integer types that
// implement fmt.Stringer count as overrides; *big.Int does not.
func customForm(v any) (string, bool) {
	if cf, ok := v.(hextypes.CustomFormer); ok {
		if cf.HasCustomForm() {
			return cf.CustomForm(), true
		}
		return "", false
	}
	if _, isBig := v.(*big.Int); isBig {
		return "", false
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String(), true
	}
	return "", false
}

// integerText returns the decimal and 0x-prefixed lowercase hexadecimal forms of v.
// Negative values keep the sign in front of the prefix.
func integerText(v any) (dec, hex string) {
	switch x := v.(type) {
	case *big.Int:
		dec, hex = x.Text(10), x.Text(16)
	default:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			dec, hex = strconv.FormatUint(rv.Uint(), 10), strconv.FormatUint(rv.Uint(), 16)
		default:
			dec, hex = strconv.FormatInt(rv.Int(), 10), strconv.FormatInt(rv.Int(), 16)
		}
	}
	if rest, neg := strings.CutPrefix(hex, "-"); neg {
		return dec, "-0x" + rest
	}
	return dec, "0x" + hex
}

// Quote returns s as a single-quoted literal, switching to double quotes when s contains
// a single quote and no double quote.
func Quote(s string) string {
	q := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		q = '"'
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte(q)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&b, `\x%02x`, s[i])
			i++
			continue
		}
		i += size

		switch {
		case r == rune(q) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case !unicode.IsPrint(r):
			switch {
			case r < 0x100:
				fmt.Fprintf(&b, `\x%02x`, r)
			case r <= 0xffff:
				fmt.Fprintf(&b, `\u%04x`, r)
			default:
				fmt.Fprintf(&b, `\U%08x`, r)
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
