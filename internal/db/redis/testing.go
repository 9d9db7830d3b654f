package redis

import "github.com/redis/rueidis"

// NewStoreForTest wraps an existing rueidis client. Test helper.
func NewStoreForTest(client rueidis.Client) *Store {
	return &Store{client: client}
}
