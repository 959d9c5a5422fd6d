package render

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces the identifier of the DOM element a chart is mounted on.
type IDGenerator func() string

// RandomIDs generates random UUIDs (version 4).
func RandomIDs() IDGenerator {
	return uuid.NewString
}

// SequentialIDs generates predictable identifiers such as "chart-1", "chart-2"...
//
// The generator is safe for concurrent use.
func SequentialIDs(prefix string) IDGenerator {
	var n atomic.Uint64

	return func() string {
		return prefix + "-" + strconv.FormatUint(n.Add(1), 10)
	}
}
