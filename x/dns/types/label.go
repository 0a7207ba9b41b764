package types

import (
	"strings"
)

// Label is a canonical name: lower-case, at most LabelSize bytes, drawn from
// [.0-9a-z]. Values are produced by ParseLabel or Normalize only.
type Label string

func (l Label) String() string { return string(l) }

func (l Label) Len() int { return len(l) }

// HasDot reports whether l names a subdomain rather than a top-level domain.
func (l Label) HasDot() bool { return strings.IndexByte(string(l), '.') >= 0 }

// Buffer returns l in its zero-padded fixed-width form.
func (l Label) Buffer() [LabelSize]byte {
	var buf [LabelSize]byte
	copy(buf[:], l)
	return buf
}

func validLabelByte(c byte, allowDot bool) bool {
	switch {
	case c == '.':
		return allowDot
	case c >= '0' && c <= '9':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	}
	return false
}

// Normalize canonicalizes a fixed-width name buffer. Bytes after the first
// zero are padding and are cleared; every byte before it must be in the name
// charset and is folded to lower case. On error nothing is returned.
func Normalize(buf [LabelSize]byte, allowDot bool) ([LabelSize]byte, int, error) {
	var (
		out    [LabelSize]byte
		length int
		zero   bool
	)
	for i, c := range buf {
		if zero {
			continue
		}
		if c == 0 {
			zero = true
			continue
		}
		if !validLabelByte(c, allowDot) {
			return [LabelSize]byte{}, 0, ErrInvalidName.Wrapf("invalid byte 0x%02x at offset %d", c, i)
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out[i] = c
		length++
	}
	return out, length, nil
}

// ParseLabel validates and canonicalizes a raw name. allowDot selects the
// permissive mode used for subdomains; strict mode rejects '.'.
func ParseLabel(raw string, allowDot bool) (Label, error) {
	if len(raw) > LabelSize {
		return "", ErrInvalidName.Wrapf("name too long: %d > %d", len(raw), LabelSize)
	}
	var buf [LabelSize]byte
	copy(buf[:], raw)
	out, n, err := Normalize(buf, allowDot)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", ErrInvalidName.Wrap("name required")
	}
	return Label(out[:n]), nil
}

// TopSuffix returns the label after the last '.', or l itself when it has no
// dot. A trailing dot yields the empty label.
func TopSuffix(l Label) Label {
	if i := strings.LastIndexByte(string(l), '.'); i >= 0 {
		return l[i+1:]
	}
	return l
}
