package llm

import "context"

// Options carries optional generation inputs. It replaces the open-ended
// keyword bag some pipeline frameworks pass along: every recognized key is an
// explicit field here.
type Options struct {
	// Stop sequences requested by the caller. Accepted for interface
	// compatibility; no current adapter transmits them.
	Stop []string
	// Extra holds unrecognized caller parameters. Never transmitted.
	Extra map[string]any
}

// Generator is the capability an orchestration pipeline expects from a text
// generator. Implementations must be safe for concurrent use.
type Generator interface {
	// TypeID returns a stable identifier for the generator kind, used by
	// pipelines to distinguish adapters.
	TypeID() string
	// Generate produces text for a prompt. Each call is an independent
	// request/response cycle.
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
	// IdentifyingParams returns a small descriptive mapping used for logging,
	// cache keys, or deduplication. It is never transmitted over the wire.
	IdentifyingParams() map[string]any
}
