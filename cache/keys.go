package cache

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ContentKey derives a cache key from a cheap 32-bit rolling hash of the
// content plus the JSON-serialized options that shaped the cached value.
// The hash is not collision-resistant; a collision can at worst serve a
// stale value for identical-hash inputs.
func ContentKey(content string, opts any) string {
	encoded, err := json.Marshal(opts)
	if err != nil {
		encoded = []byte(fmt.Sprintf("%v", opts))
	}
	return contentHash(content) + ":" + string(encoded)
}

// PDFKey derives a cache key from a filename and its byte size. It is
// deterministic for the same arguments and cheap to compute, at the cost
// of treating any same-named, same-sized file as identical.
func PDFKey(filename string, size int64) string {
	return fmt.Sprintf("pdf:%s:%d", filename, size)
}

// contentHash folds a 32-bit rolling hash of s to base-36.
func contentHash(s string) string {
	var h int32
	for _, r := range s {
		h = h*31 + int32(r)
	}
	return strconv.FormatUint(uint64(uint32(h)), 36)
}
