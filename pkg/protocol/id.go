package protocol

import (
	"fmt"
	"time"
)

// NewID generates a correlation id for a command. Ids are derived from
// the microsecond clock and are not guaranteed unique; collisions are
// rare enough that matching responses by id remains practical for a
// single CLI invocation.
func NewID() string {
	return fmt.Sprintf("r%d", time.Now().UnixMicro()%1000000)
}
