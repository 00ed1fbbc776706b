// Package storage persists committed avatar files.
package storage

import "context"

// Store is the durable destination for committed avatars. Commit moves
// the file at srcPath into the store under name; whatever the backend,
// the observable effect is the same: the file exists at the destination
// and the source file is gone. PublicPath returns the client-visible
// path for a committed name, always forward-slash separated.
type Store interface {
	Commit(ctx context.Context, srcPath, name string) error
	PublicPath(name string) string
}

// PublicPrefix is the path segment avatars are served under.
const PublicPrefix = "avatars"
