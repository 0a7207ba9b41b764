package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"namereg/x/dns/types"
)

func padded(s string) [types.LabelSize]byte {
	var buf [types.LabelSize]byte
	copy(buf[:], s)
	return buf
}

func TestNormalizePaddedMixedCase(t *testing.T) {
	out, n, err := types.Normalize(padded("EXAMPLE.com"), true)
	require.NoError(t, err)
	require.Equal(t, 11, n)
	require.Equal(t, "example.com", string(out[:n]))
	for _, b := range out[n:] {
		require.Zero(t, b)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	first, n, err := types.Normalize(padded("mail.example9"), true)
	require.NoError(t, err)
	second, m, err := types.Normalize(first, true)
	require.NoError(t, err)
	require.Equal(t, n, m)
	require.Equal(t, first, second)
}

func TestNormalizeClearsBytesAfterTerminator(t *testing.T) {
	buf := padded("abcd")
	buf[5] = '#'
	buf[31] = 0xff
	out, n, err := types.Normalize(buf, false)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, padded("abcd"), out)
}

func TestNormalizeCharset(t *testing.T) {
	tests := []struct {
		desc     string
		input    string
		allowDot bool
		err      bool
	}{
		{desc: "digits and letters", input: "abcXYZ019"},
		{desc: "dot permissive", input: "a.b", allowDot: true},
		{desc: "dot strict", input: "a.b", err: true},
		{desc: "colon", input: "ab:c", err: true},
		{desc: "at sign", input: "ab@c", err: true},
		{desc: "bracket", input: "ab[c", err: true},
		{desc: "backtick", input: "ab`c", err: true},
		{desc: "hyphen", input: "ab-c", err: true},
		{desc: "slash", input: "ab/c", allowDot: true, err: true},
		{desc: "brace", input: "ab{c", err: true},
		{desc: "high byte", input: "ab\xc3c", err: true},
	}
	for _, tc := range tests {
		t.Run(tc.desc, func(t *testing.T) {
			out, n, err := types.Normalize(padded(tc.input), tc.allowDot)
			if tc.err {
				require.ErrorIs(t, err, types.ErrInvalidName)
				require.Zero(t, n)
				require.Equal(t, [types.LabelSize]byte{}, out)
				return
			}
			require.NoError(t, err)
			require.Equal(t, len(tc.input), n)
		})
	}
}

func TestParseLabel(t *testing.T) {
	l, err := types.ParseLabel("Mail.Example", true)
	require.NoError(t, err)
	require.Equal(t, types.Label("mail.example"), l)
	require.True(t, l.HasDot())

	_, err = types.ParseLabel("", true)
	require.ErrorIs(t, err, types.ErrInvalidName)

	_, err = types.ParseLabel("\x00abc", true)
	require.ErrorIs(t, err, types.ErrInvalidName)

	_, err = types.ParseLabel("abcdefghijklmnopqrstuvwxyz0123456", false)
	require.ErrorIs(t, err, types.ErrInvalidName)

	l, err = types.ParseLabel("abcdefghijklmnopqrstuvwxyz012345", false)
	require.NoError(t, err)
	require.Equal(t, types.LabelSize, l.Len())
	require.Equal(t, padded(l.String()), l.Buffer())
}

func TestTopSuffix(t *testing.T) {
	require.Equal(t, types.Label("example"), types.TopSuffix("mail.example"))
	require.Equal(t, types.Label("example"), types.TopSuffix("a.b.example"))
	require.Equal(t, types.Label("example"), types.TopSuffix("example"))
	require.Equal(t, types.Label(""), types.TopSuffix("example."))
}
