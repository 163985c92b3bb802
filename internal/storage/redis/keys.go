package redis

import (
	"fmt"

	"github.com/qrally/qrally/internal/model"
)

// Key prefix for all rally data
const keyPrefix = "qrally"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// checkpointKey returns the Redis key for a Checkpoint
func checkpointKey(cpID model.CheckpointID) string {
	return fmt.Sprintf("%s:checkpoint:%s", keyPrefix, cpID)
}
