package kvstore_mocks

//go:generate mockgen -source=../interfaces.go -destination=kvstore_mocks.go -package=kvstore_mocks

// This file contains the go:generate directive to generate mocks for key/value store interfaces.
// To regenerate the mocks, run:
//   go generate ./internal/kvstore/kvstore_mocks
