package utilities

import (
	"os"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewKSUID generates a new globally unique KSUID string.
func NewKSUID() string {
	return ksuid.New().String()
}

// NewSnowflakeNode builds a snowflake node using the node ID from the
// SNOWFLAKE_NODE environment variable, defaulting to node 1 when it is
// missing or malformed. Snowflake IDs are time-ordered, so a higher ID
// always means a later event.
func NewSnowflakeNode() (*snowflake.Node, error) {
	nodeID := int64(1)
	if nodeEnv := os.Getenv("SNOWFLAKE_NODE"); nodeEnv != "" {
		if v, err := strconv.ParseInt(nodeEnv, 10, 64); err == nil {
			nodeID = v
		}
	}
	return snowflake.NewNode(nodeID)
}
