package dilithium

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchemeRoundTrip(t *testing.T) {
	scheme := Default()
	require.Equal(t, AlgoDilithium3, scheme.Name())

	seed := bytes.Repeat([]byte{0x42}, scheme.SeedSize())
	pub, priv, err := scheme.GenerateKey(seed)
	require.NoError(t, err)
	require.Len(t, pub, scheme.PublicKeySize())

	pub2, _, err := scheme.GenerateKey(seed)
	require.NoError(t, err)
	require.Equal(t, pub, pub2)

	msg := []byte("register alpha")
	sig, err := scheme.Sign(priv, msg)
	require.NoError(t, err)
	require.Len(t, sig, scheme.SignatureSize())
	require.True(t, scheme.Verify(pub, msg, sig))

	badSig := append(Signature{}, sig...)
	badSig[0] ^= 0xFF
	require.False(t, scheme.Verify(pub, msg, badSig))
	require.False(t, scheme.Verify(pub, []byte("register bravo"), sig))

	_, err = scheme.Sign(priv[:len(priv)-1], msg)
	require.Error(t, err)
	require.False(t, scheme.Verify(pub[:len(pub)-1], msg, sig))
	require.False(t, scheme.Verify(pub, msg, sig[:len(sig)-1]))

	_, _, err = scheme.GenerateKey([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestAddressIsStable(t *testing.T) {
	scheme := Default()
	pub, _, err := scheme.GenerateKey(bytes.Repeat([]byte{7}, scheme.SeedSize()))
	require.NoError(t, err)

	addr := Address(pub)
	require.Len(t, addr, 20)
	require.Equal(t, addr, Address(append(PublicKey{}, pub...)))
}

func TestKeyFileSaveLoad(t *testing.T) {
	dir := t.TempDir()
	scheme := Default()

	kf, err := NewKeyFile(scheme, "alice", nil)
	require.NoError(t, err)
	require.NoError(t, kf.Save(dir))
	require.Error(t, kf.Save(dir), "overwrite must be refused")

	loaded, err := LoadKeyFile(dir, "alice")
	require.NoError(t, err)
	require.Equal(t, kf, loaded)
	require.Nil(t, loaded.Public().PrivateKey)

	_, err = LoadKeyFile(dir, "../alice")
	require.Error(t, err)
	_, err = NewKeyFile(scheme, "bad name", nil)
	require.Error(t, err)
}
