package render

import (
	"cmp"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"slices"
	"strings"

	"hexshell/pkg/hextypes"
)

// keyRank orders keys of different kinds: nil, booleans, numbers, text, everything else.
func keyRank(v any) int {
	switch Classify(v) {
	case hextypes.ShapeNull:
		return 0
	case hextypes.ShapeBool:
		return 1
	case hextypes.ShapeText:
		return 3
	}
	if _, ok := numeric(v); ok {
		return 2
	}
	return 4
}

// CompareKeys is the deterministic key ordering used wherever mapping keys are sorted.
// Numbers compare by value, text lexically, and mixed kinds by rank.
func CompareKeys(a, b any) int {
	ra, rb := keyRank(a), keyRank(b)
	if ra != rb {
		return cmp.Compare(ra, rb)
	}
	switch ra {
	case 0:
		return 0
	case 1:
		ba, bb := reflect.ValueOf(a).Bool(), reflect.ValueOf(b).Bool()
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		default:
			return 1
		}
	case 2:
		na, _ := numeric(a)
		nb, _ := numeric(b)
		return na.Cmp(nb)
	case 3:
		return strings.Compare(reflect.ValueOf(a).String(), reflect.ValueOf(b).String())
	}
	if c := strings.Compare(fmt.Sprintf("%T", a), fmt.Sprintf("%T", b)); c != 0 {
		return c
	}
	return strings.Compare(fmt.Sprintf("%v", a), fmt.Sprintf("%v", b))
}

// SortEntries sorts entries in place by CompareKeys. Equal keys keep their order.
func SortEntries(entries []hextypes.Entry) {
	slices.SortStableFunc(entries, func(x, y hextypes.Entry) int {
		return CompareKeys(x.Key, y.Key)
	})
}

func numeric(v any) (*big.Float, bool) {
	if x, ok := v.(*big.Int); ok && x != nil {
		return new(big.Float).SetInt(x), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Float).SetInt64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Float).SetUint64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) {
			return nil, false
		}
		return new(big.Float).SetFloat64(f), true
	}
	return nil, false
}
