package uid

import "github.com/bwmarrin/snowflake"

// Snowflake generates sortable int64 identifiers safe across nodes.
type Snowflake struct {
	node *snowflake.Node
}

// NewSnowflake creates a generator for the given node number (0-1023).
func NewSnowflake(nodeID int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, err
	}

	return &Snowflake{node: node}, nil
}

// Generate returns a new snowflake ID.
func (s *Snowflake) Generate() int64 {
	return s.node.Generate().Int64()
}
