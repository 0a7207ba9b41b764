package dilithium

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	sealMagic     = "NRGKEY1"
	sealSaltSize  = 16
	sealNonceSize = 12

	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	sealKeyBytes = 32
)

var (
	// ErrKeyLocked is returned when a sealed key is loaded without a passphrase.
	ErrKeyLocked = errors.New("key is encrypted; a passphrase is required")
	// ErrWrongPassphrase is returned when a sealed key fails to open.
	ErrWrongPassphrase = errors.New("wrong passphrase or corrupted key")
)

// sealPrivateKey encrypts priv as magic || salt || nonce || AES-GCM(priv).
// The address is bound as additional data so a sealed blob cannot be moved
// to another key file.
func sealPrivateKey(passphrase []byte, priv PrivateKey, address string) ([]byte, error) {
	salt := make([]byte, sealSaltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	gcm, err := sealCipher(passphrase, salt)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, sealNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, priv, []byte(address))
	buf := bytes.NewBuffer(make([]byte, 0, len(sealMagic)+sealSaltSize+sealNonceSize+len(ciphertext)))
	buf.WriteString(sealMagic)
	buf.Write(salt)
	buf.Write(nonce)
	buf.Write(ciphertext)
	return buf.Bytes(), nil
}

func openPrivateKey(passphrase, sealed []byte, address string) (PrivateKey, error) {
	if len(sealed) < len(sealMagic)+sealSaltSize+sealNonceSize {
		return nil, errors.New("sealed key truncated")
	}
	if !bytes.HasPrefix(sealed, []byte(sealMagic)) {
		return nil, errors.New("sealed key has unknown format")
	}
	rest := sealed[len(sealMagic):]
	salt, nonce, payload := rest[:sealSaltSize], rest[sealSaltSize:sealSaltSize+sealNonceSize], rest[sealSaltSize+sealNonceSize:]

	gcm, err := sealCipher(passphrase, salt)
	if err != nil {
		return nil, err
	}
	priv, err := gcm.Open(nil, nonce, payload, []byte(address))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return priv, nil
}

func sealCipher(passphrase, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, sealKeyBytes)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	defer wipe(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}
	return cipher.NewGCM(block)
}
