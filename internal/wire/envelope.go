// Package wire holds the server's JSON shapes and their mapping into the
// domain model. The backend speaks PascalCase with a flat audit block; the
// rest of the client never sees those names.
package wire

// Envelope is the wrapper every endpoint replies with. A reply counts as a
// logical success only when Data is present; HTTP status alone is not enough.
type Envelope[T any] struct {
	Data    T      `json:"Data"`
	Message string `json:"Message"`
	Type    string `json:"Type,omitempty"`
	Success bool   `json:"success,omitempty"`
}

// Meta is the envelope with Data left opaque, used where only the message
// matters (notification extraction).
type Meta struct {
	Message string `json:"Message"`
	Type    string `json:"Type,omitempty"`
}

// ErrorBody is the shape probed on failed responses. Backends are
// inconsistent about which field carries the human-readable reason, so both
// are tried in order.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"Message"`
}

// AuditModel is the flat audit block every wire record carries.
type AuditModel struct {
	ID         string `json:"Id"`
	CreatedOn  string `json:"CreatedOn"`
	ModifiedOn string `json:"ModifiedOn"`
	CreatedBy  string `json:"CreatedBy"`
	ModifiedBy string `json:"ModifiedBy"`
}
