package utilities

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewKSUID generates a globally unique, lexicographically sortable id string.
// Used as the primary key for users and tasks.
func NewKSUID() string {
	return ksuid.New().String()
}

var (
	nodeOnce sync.Once
	node     *snowflake.Node
)

// NewRequestID generates a snowflake id string for request correlation.
// The node id comes from SNOWFLAKE_NODE (default 1). If node setup fails
// it falls back to a KSUID so a unique id is always returned.
func NewRequestID() string {
	nodeOnce.Do(func() {
		nodeID := int64(1)
		if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				nodeID = parsed
			}
		}
		n, err := snowflake.NewNode(nodeID)
		if err != nil {
			return
		}
		node = n
	})
	if node == nil {
		return NewKSUID()
	}
	return node.Generate().String()
}
