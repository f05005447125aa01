package payments

import (
	"strconv"
	"sync/atomic"
	"time"
)

var mockSeq atomic.Int64

// mockID returns a local, unique id shaped like the provider's own ids.
func mockID(prefix string) string {
	n := mockSeq.Add(1)
	return prefix + strconv.FormatInt(time.Now().UTC().UnixNano(), 36) + strconv.FormatInt(n, 36)
}
