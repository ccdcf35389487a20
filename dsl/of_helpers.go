package dsl

import (
	tariffconv "github.com/reoring/tariffconv"
)

// SchemaOf converts an arbitrary Schema[T] into an AnyAdapter helper.
func SchemaOf[T any](s tariffconv.Schema[T]) AnyAdapter { return anyAdapterFromSchema[T](s) }
