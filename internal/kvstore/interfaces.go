package kvstore

import "context"

// Store is a string key/value store. Get reports found=false for a missing key.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// HealthChecker is implemented by stores backed by an external resource
type HealthChecker interface {
	Ping(ctx context.Context) error
}
