package types

import "bytes"

const secretMask = "******"

// SecretString holds a sensitive value behind a mutable byte buffer.
// Every textual rendering shows a fixed mask; the value is only available
// through an explicit Reveal call. Erase overwrites the backing bytes so
// the secret does not outlive its use. Erasure is explicit on purpose:
// finalizer timing is not guaranteed, so callers own the lifecycle.
type SecretString struct {
	value []byte
}

// NewSecretString wraps value in a SecretString.
func NewSecretString(value string) SecretString {
	return SecretString{value: []byte(value)}
}

// Reveal returns the actual secret value.
func (s SecretString) Reveal() string {
	return string(s.value)
}

// Erase overwrites every byte of the backing storage with NUL.
// After Erase, Reveal returns a string of NUL bytes of the same length.
func (s SecretString) Erase() {
	for i := range s.value {
		s.value[i] = 0
	}
}

// Equal reports whether both secrets hold the same value.
func (s SecretString) Equal(other SecretString) bool {
	return bytes.Equal(s.value, other.value)
}

func (s SecretString) String() string { return secretMask }

// GoString masks the value in %#v output as well.
func (s SecretString) GoString() string { return `types.SecretString("` + secretMask + `")` }
