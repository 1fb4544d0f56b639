package entityid

import (
	"database/sql"
	"database/sql/driver"
	"encoding"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

var (
	_ fmt.Stringer             = ID{}
	_ encoding.TextMarshaler   = ID{}
	_ encoding.TextUnmarshaler = (*ID)(nil)
	_ json.Unmarshaler         = (*ID)(nil)
	_ driver.Valuer            = ID{}
	_ sql.Scanner              = (*ID)(nil)
)

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	return uuid.UUID(i).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler. It never fails; text
// that is not a UUID decodes to Empty.
func (i *ID) UnmarshalText(data []byte) error {
	*i = ParseBytes(data)
	return nil
}

// UnmarshalJSON accepts a JSON string holding a UUID. null, any other JSON
// value, and malformed input all decode to Empty without an error.
func (i *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*i = Empty
		return nil
	}
	*i = Parse(s)
	return nil
}

// Value implements driver.Valuer.
func (i ID) Value() (driver.Value, error) {
	return i.String(), nil
}

// Scan implements sql.Scanner for anything uuid.UUID.Scan accepts. NULL and
// unscannable values become Empty.
func (i *ID) Scan(src interface{}) error {
	var u uuid.UUID
	if err := u.Scan(src); err != nil {
		*i = Empty
		return nil
	}
	*i = ID(u)
	return nil
}
