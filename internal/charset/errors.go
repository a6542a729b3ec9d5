package charset

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrConfiguration marks an encoding that cannot be used.
	ErrConfiguration = errors.New("invalid encoding configuration")
	// ErrDecode marks bytes that do not form a character in the active encoding.
	ErrDecode = errors.New("invalid or incomplete multibyte or wide character")
	// ErrEncode marks a code point the active encoding cannot represent.
	ErrEncode = errors.New("character cannot be encoded")
)

// ConfigurationError reports an encoding name that cannot be applied.
type ConfigurationError struct {
	Name   Name
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("encoding: %s", e.Reason)
	}
	return fmt.Sprintf("encoding %q: %s", string(e.Name), e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// DecodeError reports a malformed byte sequence in an input stream.
type DecodeError struct {
	Encoding Name
	Offset   int64  // byte offset of the first bad byte
	Bytes    []byte // the offending bytes
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: bytes [% x] at offset %d", ErrDecode, e.Bytes, e.Offset)
}

func (e *DecodeError) Unwrap() error { return ErrDecode }

// EncodeError reports a failure to re-encode a code point that was decoded
// under the same encoding. It always means the encoding is unusable, so it
// also matches ErrConfiguration.
type EncodeError struct {
	Encoding Name
	Rune     rune
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("%s: U+%04X in %s", ErrEncode, e.Rune, e.Encoding)
}

func (e *EncodeError) Unwrap() []error { return []error{ErrEncode, ErrConfiguration} }
