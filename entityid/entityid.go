// Package entityid provides ID, a UUID value that never fails to construct.
//
// Parsing malformed text does not return an error. It yields Empty, the
// all-zero UUID, so identifiers can be built from untrusted input (route
// parameters, JSON bodies, database rows) without error handling at every
// call site. Callers that must tell an explicit zero UUID apart from a
// failed parse have to validate the text themselves.
package entityid

import (
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// ID wraps a uuid.UUID. The two types convert freely in both directions:
//
//	id := entityid.ID(u)
//	u := uuid.UUID(id)
type ID uuid.UUID

// Empty is the all-zero ID that every failed parse produces.
var Empty = ID(uuid.Nil)

// New returns a freshly generated random (version 4) ID.
func New() ID {
	return ID(uuid.New())
}

// Parse decodes s in any form accepted by uuid.Parse and returns Empty if s
// is not a valid UUID.
func Parse(s string) ID {
	u, err := uuid.Parse(s)
	if err != nil {
		return Empty
	}
	return ID(u)
}

// ParseBytes is like Parse but takes a byte slice.
func ParseBytes(b []byte) ID {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return Empty
	}
	return ID(u)
}

// ParseUUID is Parse for callers that want the raw uuid.UUID back.
func ParseUUID(s string) uuid.UUID {
	return Parse(s).UUID()
}

// FromUUID wraps u unchanged.
func FromUUID(u uuid.UUID) ID {
	return ID(u)
}

// UUID returns the wrapped value.
func (i ID) UUID() uuid.UUID {
	return uuid.UUID(i)
}

// String returns the canonical form, xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx,
// exactly as uuid.UUID renders it.
func (i ID) String() string {
	return uuid.UUID(i).String()
}

// IsEmpty reports whether i is Empty, either explicitly or from a failed parse.
func (i ID) IsEmpty() bool {
	return i == Empty
}

// Equal reports whether i and other hold the same 128 bits.
func (i ID) Equal(other ID) bool {
	return i == other
}

// EqualUUID reports whether i wraps exactly u.
func (i ID) EqualUUID(u uuid.UUID) bool {
	return uuid.UUID(i) == u
}

// Hash returns HashOf(i.UUID()), so an ID and the uuid.UUID it wraps always
// hash the same.
func (i ID) Hash() uint64 {
	return HashOf(uuid.UUID(i))
}

// HashOf returns the xxHash64 of the 16 bytes of u.
func HashOf(u uuid.UUID) uint64 {
	return xxhash.Sum64(u[:])
}

// IDGenerator mints new IDs. Tests swap Generator for a deterministic one.
type IDGenerator interface {
	Generate() ID
}

type idGenerator struct {
}

func newIDGenerator() *idGenerator {
	return &idGenerator{}
}

func (idg idGenerator) Generate() ID {
	return New()
}

var Generator IDGenerator = newIDGenerator()
