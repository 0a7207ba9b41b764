package dilithium

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var keyNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// KeyFile is the on-disk form of a named signing key. With a passphrase the
// private half is stored only as SealedKey.
type KeyFile struct {
	Name       string     `json:"name"`
	Algo       string     `json:"algo"`
	Address    string     `json:"address"`
	PublicKey  PublicKey  `json:"public_key"`
	PrivateKey PrivateKey `json:"private_key,omitempty"`
	SealedKey  []byte     `json:"sealed_private_key,omitempty"`
}

type keyOptions struct {
	passphrase []byte
}

type KeyOption func(*keyOptions)

// WithPassphrase seals private keys on Save and opens them on load. An empty
// passphrase leaves keys in plaintext.
func WithPassphrase(passphrase []byte) KeyOption {
	return func(o *keyOptions) {
		if len(passphrase) == 0 {
			return
		}
		o.passphrase = append([]byte(nil), passphrase...)
	}
}

func applyKeyOptions(opts []KeyOption) keyOptions {
	var o keyOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewKeyFile generates a key for name. A nil seed draws fresh randomness.
func NewKeyFile(scheme Scheme, name string, seed []byte) (KeyFile, error) {
	if !keyNamePattern.MatchString(name) {
		return KeyFile{}, fmt.Errorf("invalid key name %q", name)
	}
	pub, priv, err := scheme.GenerateKey(seed)
	if err != nil {
		return KeyFile{}, err
	}
	return KeyFile{
		Name:       name,
		Algo:       scheme.Name(),
		Address:    Address(pub).String(),
		PublicKey:  pub,
		PrivateKey: priv,
	}, nil
}

func keyPath(dir, name string) string {
	return filepath.Join(dir, name+".json")
}

// Save writes the key under dir, refusing to overwrite an existing file.
func (kf KeyFile) Save(dir string, opts ...KeyOption) error {
	o := applyKeyOptions(opts)
	if len(kf.PrivateKey) == 0 {
		return fmt.Errorf("save key %s: no private key", kf.Name)
	}
	if len(o.passphrase) > 0 {
		sealed, err := sealPrivateKey(o.passphrase, kf.PrivateKey, kf.Address)
		if err != nil {
			return fmt.Errorf("seal key %s: %w", kf.Name, err)
		}
		kf.PrivateKey, kf.SealedKey = nil, sealed
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	bz, err := json.MarshalIndent(kf, "", "  ")
	if err != nil {
		return err
	}
	f, err := os.OpenFile(keyPath(dir, kf.Name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("save key %s: %w", kf.Name, err)
	}
	if _, err := f.Write(bz); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// LoadKeyFile reads a key previously written by Save, opening a sealed
// private key with the passphrase option.
func LoadKeyFile(dir, name string, opts ...KeyOption) (KeyFile, error) {
	kf, err := LoadPublicKeyFile(dir, name)
	if err != nil {
		return KeyFile{}, err
	}
	if len(kf.SealedKey) == 0 {
		return kf, nil
	}

	o := applyKeyOptions(opts)
	if len(o.passphrase) == 0 {
		return KeyFile{}, fmt.Errorf("load key %s: %w", name, ErrKeyLocked)
	}
	priv, err := openPrivateKey(o.passphrase, kf.SealedKey, kf.Address)
	if err != nil {
		return KeyFile{}, fmt.Errorf("load key %s: %w", name, err)
	}
	kf.PrivateKey, kf.SealedKey = priv, nil
	return kf, nil
}

// LoadPublicKeyFile reads a key without touching its private half, so it
// works on sealed keys without a passphrase.
func LoadPublicKeyFile(dir, name string) (KeyFile, error) {
	if !keyNamePattern.MatchString(name) {
		return KeyFile{}, fmt.Errorf("invalid key name %q", name)
	}
	bz, err := os.ReadFile(keyPath(dir, name))
	if err != nil {
		return KeyFile{}, fmt.Errorf("load key %s: %w", name, err)
	}
	var kf KeyFile
	if err := json.Unmarshal(bz, &kf); err != nil {
		return KeyFile{}, fmt.Errorf("decode key %s: %w", name, err)
	}
	if kf.Algo != AlgoDilithium3 {
		return KeyFile{}, fmt.Errorf("key %s uses unsupported algo %q", name, kf.Algo)
	}
	if Address(kf.PublicKey).String() != kf.Address {
		return KeyFile{}, fmt.Errorf("key %s: address does not match public key", name)
	}
	if len(kf.PrivateKey) > 0 && len(kf.SealedKey) > 0 {
		return KeyFile{}, fmt.Errorf("key %s holds both a plain and a sealed private key", name)
	}
	return kf, nil
}

// IsNotExist reports whether err means the named key file is absent.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}

// Public strips the private half, sealed or not.
func (kf KeyFile) Public() KeyFile {
	kf.PrivateKey = nil
	kf.SealedKey = nil
	return kf
}
