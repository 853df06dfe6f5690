// Package provenance implements the four-tier rollup ledger:
// Order -> Payment -> EnterpriseTotal -> TotalAmount. Entities are immutable
// facts held in the Store; the links between tiers live in a separate Index
// so that both forward and backward traversal stay cheap and the "what has
// not been rolled up yet" question can be answered from link presence alone.
package provenance

import "errors"

// Sentinel errors returned by creation operations and trace roots. Lookup
// operations on the index never fail; an absent key is an empty result.
var (
	ErrNotFound           = errors.New("not found")
	ErrEnterpriseMismatch = errors.New("enterprise mismatch")
	ErrEmptyInput         = errors.New("empty input")
	ErrAlreadyLinked      = errors.New("already linked")
	ErrInvalidAmount      = errors.New("invalid amount")
)
