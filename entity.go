package harmony

import (
	"log/slog"
	"strconv"
)

// EntityId identifies one row across all component columns. Ids are handed
// out densely starting at zero and are never reused.
type EntityId uint32

func (e EntityId) String() string {
	return strconv.Itoa(int(e))
}

func (e EntityId) LogValue() slog.Value {
	return slog.StringValue(e.String())
}
