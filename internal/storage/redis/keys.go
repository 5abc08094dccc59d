package redis

import (
	"fmt"

	"github.com/orbitwise/fdsaas/internal/model"
)

// Key prefix for all credential data
const keyPrefix = "fdsaas"

// userKey returns the Redis key for a User record
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}
