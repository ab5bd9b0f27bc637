package emissions

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// IDGenerator produces unique calculation IDs.
type IDGenerator func() string

// Supported ID formats for IDGeneratorFor.
const (
	IDFormatULID = "ulid"
	IDFormatUUID = "uuid"
)

// ULIDGenerator returns time-sortable ULIDs. Safe for concurrent use.
func ULIDGenerator() IDGenerator {
	return func() string { return ulid.Make().String() }
}

// UUIDGenerator returns random (v4) UUIDs.
func UUIDGenerator() IDGenerator {
	return uuid.NewString
}

// IDGeneratorFor returns the generator for a configured format; "" means ULID.
func IDGeneratorFor(format string) (IDGenerator, error) {
	switch format {
	case "", IDFormatULID:
		return ULIDGenerator(), nil
	case IDFormatUUID:
		return UUIDGenerator(), nil
	default:
		return nil, fmt.Errorf("unknown id format %q (want %q or %q)", format, IDFormatULID, IDFormatUUID)
	}
}
