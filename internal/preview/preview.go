package preview

import (
	"fmt"

	"hexshell/pkg/hextypes"
)

// DefaultLength is the preview length used when none is configured.
const DefaultLength = 100

// Result is the outcome of Extract.
type Result struct {
	// Copy yields the full original sequence and replaces the source for later use.
	// Closing it closes the source.
	Copy hextypes.OneShot
	// Items holds the leading elements, followed by hextypes.Ellipsis when Truncated.
	Items []any
	// Truncated reports that the source had more than maxLen elements.
	Truncated bool
	// TypeName is the display name of the source.
	TypeName string
}

// Extract collects up to maxLen leading elements of src. src must not be used afterwards;
// Result.Copy stands in for it. A negative maxLen is treated as zero. Errors raised by the
// source while collecting are returned and no partial result is produced.
func Extract(src hextypes.OneShot, maxLen int) (Result, error) {
	maxLen = max(maxLen, 0)
	keep, walk := newTee(src)
	defer func() { _ = walk.Close() }()
	res := Result{Copy: keep, TypeName: hextypes.TypeName(src)}

	items := make([]any, 0, min(maxLen, 64)+1)
	for {
		v, ok, err := walk.Next()
		if err != nil {
			_ = keep.Close()
			return Result{}, fmt.Errorf("preview %s: %w", res.TypeName, err)
		}
		if !ok {
			break
		}
		if len(items) >= maxLen {
			items = append(items, hextypes.Ellipsis)
			res.Truncated = true
			break
		}
		items = append(items, v)
	}
	res.Items = items
	return res, nil
}
