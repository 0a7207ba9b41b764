package dilithium

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSealedKeyFile(t *testing.T) {
	dir := t.TempDir()
	scheme := Default()
	pass := WithPassphrase([]byte("correct horse"))

	kf, err := NewKeyFile(scheme, "alice", bytes.Repeat([]byte{7}, scheme.SeedSize()))
	require.NoError(t, err)
	require.NoError(t, kf.Save(dir, pass))

	raw, err := os.ReadFile(keyPath(dir, "alice"))
	require.NoError(t, err)
	var onDisk KeyFile
	require.NoError(t, json.Unmarshal(raw, &onDisk))
	require.Empty(t, onDisk.PrivateKey)
	require.True(t, bytes.HasPrefix(onDisk.SealedKey, []byte(sealMagic)))
	require.False(t, bytes.Contains(onDisk.SealedKey, kf.PrivateKey))

	_, err = LoadKeyFile(dir, "alice")
	require.ErrorIs(t, err, ErrKeyLocked)

	_, err = LoadKeyFile(dir, "alice", WithPassphrase([]byte("wrong")))
	require.ErrorIs(t, err, ErrWrongPassphrase)

	pub, err := LoadPublicKeyFile(dir, "alice")
	require.NoError(t, err)
	require.Equal(t, kf.Address, pub.Address)
	require.Equal(t, kf.Public(), pub.Public())

	loaded, err := LoadKeyFile(dir, "alice", pass)
	require.NoError(t, err)
	require.Equal(t, kf, loaded)

	sig, err := scheme.Sign(loaded.PrivateKey, []byte("msg"))
	require.NoError(t, err)
	require.True(t, scheme.Verify(kf.PublicKey, []byte("msg"), sig))
}

func TestSealedKeyBoundToAddress(t *testing.T) {
	dir := t.TempDir()
	scheme := Default()
	pass := WithPassphrase([]byte("pw"))

	alice, err := NewKeyFile(scheme, "alice", bytes.Repeat([]byte{1}, scheme.SeedSize()))
	require.NoError(t, err)
	bob, err := NewKeyFile(scheme, "bob", bytes.Repeat([]byte{2}, scheme.SeedSize()))
	require.NoError(t, err)
	require.NoError(t, alice.Save(dir, pass))
	require.NoError(t, bob.Save(dir, pass))

	a, err := LoadPublicKeyFile(dir, "alice")
	require.NoError(t, err)
	b, err := LoadPublicKeyFile(dir, "bob")
	require.NoError(t, err)

	b.SealedKey = a.SealedKey
	bz, err := json.Marshal(b)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(keyPath(dir, "bob"), bz, 0o600))

	_, err = LoadKeyFile(dir, "bob", pass)
	require.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestMissingKeyFile(t *testing.T) {
	_, err := LoadKeyFile(t.TempDir(), "ghost")
	require.True(t, IsNotExist(err))
}
