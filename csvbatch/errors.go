package csvbatch

import "errors"

// ErrCorrupt is returned by Reader.Next when the length-prefixed stream
// is truncated mid-record.
var ErrCorrupt = errors.New("csvbatch: corrupt batch stream")
