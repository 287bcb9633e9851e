// Package codec centralizes encoding of structured chart data: snapshot
// headers and the CLI's JSON output.
//
// Snapshots record the codec name in their header, so changing Default never
// breaks reading older snapshots as long as the old codec stays registered.
package codec

import (
	"errors"
	"fmt"
)

// ErrUnknownCodec is returned when a codec name is not registered.
var ErrUnknownCodec = errors.New("codec: unknown codec")

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Indenter is implemented by codecs with a human-readable form.
type Indenter interface {
	MarshalIndent(v any) ([]byte, error)
}

// Default is the codec used for newly written snapshots.
var Default Codec = GoJSON{}

const indent = "  "

// Indent encodes v with c's indented form when it has one.
func Indent(c Codec, v any) ([]byte, error) {
	if in, ok := c.(Indenter); ok {
		return in.MarshalIndent(v)
	}
	return c.Marshal(v)
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Lookup is ByName returning an error for unknown names.
func Lookup(name string) (Codec, error) {
	c, ok := ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return c, nil
}
