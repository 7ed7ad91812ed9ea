// Copyright (c) Microsoft Corporation.
// Licensed under the MIT license.

package flow

const redacted = "[REDACTED]"

// Password holds a user's password. It never prints its content, so it is safe to log or
// format a value containing it. Call Clear once the password is no longer needed.
type Password struct {
	b *[]byte
}

// NewPassword copies s into a Password.
func NewPassword(s string) Password {
	b := []byte(s)
	return Password{b: &b}
}

// Bytes returns a copy of the password.
func (p Password) Bytes() []byte {
	if p.b == nil {
		return nil
	}
	return append([]byte(nil), *p.b...)
}

// Len is the password length in bytes.
func (p Password) Len() int {
	if p.b == nil {
		return 0
	}
	return len(*p.b)
}

// Clear overwrites the password with zeros. Every copy of p shares the same storage and is
// cleared too.
func (p Password) Clear() {
	if p.b == nil {
		return
	}
	for i := range *p.b {
		(*p.b)[i] = 0
	}
	*p.b = (*p.b)[:0]
}

// String implements fmt.Stringer.
func (p Password) String() string {
	return redacted
}

// GoString implements fmt.GoStringer.
func (p Password) GoString() string {
	return redacted
}
