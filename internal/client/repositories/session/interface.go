// Package session stores the locally persisted session state: the raw
// credential under "token" and the serialized identity under "user".
// The two keys are always written and cleared together.
package session

import "context"

// Keys under which the session pair is persisted.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
