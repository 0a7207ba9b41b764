package dilithium

import (
	"fmt"

	"github.com/cloudflare/circl/sign"
	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"github.com/cometbft/cometbft/crypto/tmhash"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

type (
	PublicKey  []byte
	PrivateKey []byte
	Signature  []byte
)

const AlgoDilithium3 = "dilithium3"

// Scheme is the signing surface transactions are authenticated with.
type Scheme interface {
	Name() string
	PublicKeySize() int
	SignatureSize() int
	SeedSize() int

	GenerateKey(seed []byte) (PublicKey, PrivateKey, error)
	Sign(priv PrivateKey, msg []byte) (Signature, error)
	Verify(pub PublicKey, msg []byte, sig Signature) bool
}

// Default returns the Dilithium3 scheme every account signs with.
func Default() Scheme { return dilithium3{} }

// Address derives the account address owning pub.
func Address(pub PublicKey) sdk.AccAddress {
	return sdk.AccAddress(tmhash.SumTruncated(pub))
}

// dilithium3 packs keys in circl's binary encoding for mode 3.
type dilithium3 struct{}

var mode3Scheme sign.Scheme = mode3.Scheme()

func (dilithium3) Name() string       { return AlgoDilithium3 }
func (dilithium3) PublicKeySize() int { return mode3Scheme.PublicKeySize() }
func (dilithium3) SignatureSize() int { return mode3Scheme.SignatureSize() }
func (dilithium3) SeedSize() int      { return mode3Scheme.SeedSize() }

// GenerateKey derives a key pair from seed. An empty seed draws one from
// crypto/rand; any other length is rejected.
func (d dilithium3) GenerateKey(seed []byte) (PublicKey, PrivateKey, error) {
	var (
		pk  sign.PublicKey
		sk  sign.PrivateKey
		err error
	)
	switch len(seed) {
	case 0:
		if pk, sk, err = mode3Scheme.GenerateKey(); err != nil {
			return nil, nil, fmt.Errorf("dilithium3: generate key: %w", err)
		}
	case d.SeedSize():
		buf := append([]byte(nil), seed...)
		pk, sk = mode3Scheme.DeriveKey(buf)
		wipe(buf)
	default:
		return nil, nil, fmt.Errorf("dilithium3: seed must be %d bytes, got %d", d.SeedSize(), len(seed))
	}

	pub, err := pk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("dilithium3: pack public key: %w", err)
	}
	priv, err := sk.MarshalBinary()
	if err != nil {
		return nil, nil, fmt.Errorf("dilithium3: pack private key: %w", err)
	}
	return pub, priv, nil
}

func (dilithium3) Sign(priv PrivateKey, msg []byte) (Signature, error) {
	if len(priv) != mode3Scheme.PrivateKeySize() {
		return nil, fmt.Errorf("dilithium3: private key must be %d bytes, got %d", mode3Scheme.PrivateKeySize(), len(priv))
	}
	sk, err := mode3Scheme.UnmarshalBinaryPrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("dilithium3: unpack private key: %w", err)
	}
	return mode3Scheme.Sign(sk, msg, nil), nil
}

// Verify is false for malformed keys and signatures as well as bad ones.
func (dilithium3) Verify(pub PublicKey, msg []byte, sig Signature) bool {
	if len(pub) != mode3Scheme.PublicKeySize() || len(sig) != mode3Scheme.SignatureSize() {
		return false
	}
	pk, err := mode3Scheme.UnmarshalBinaryPublicKey(pub)
	if err != nil {
		return false
	}
	return mode3Scheme.Verify(pk, msg, sig, nil)
}

func wipe(b []byte) {
	clear(b)
}
