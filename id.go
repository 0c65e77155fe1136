package shopbook

import "github.com/xraph/shopbook/id"

// ID is the primary identifier type for all shopbook entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
