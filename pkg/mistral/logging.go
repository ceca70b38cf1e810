package mistral

import "github.com/rs/zerolog"

// zlog is an optional structured logger. If unset, the client stays silent.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the client.
func SetLogger(l zerolog.Logger) { zlog = &l }
