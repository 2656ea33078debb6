// Package credentials is the key/value repository backing the credential
// store. Values arrive already sealed; this layer only persists blobs.
package credentials

import "context"

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
