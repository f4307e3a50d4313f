// Package keys binds the engine's public_key and private_key entities and the
// emoji id conversions.
package keys

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/bytevector"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/handle"
)

// Size is the length in bytes of serialized public and private keys.
const Size = 32

// HexLen is the length of the hex form of a key.
const HexLen = 2 * Size

var (
	PublicKeyKind  = &handle.Kind{Name: "public_key", Destroy: abi.Engine.PublicKeyDestroy}
	PrivateKeyKind = &handle.Kind{Name: "private_key", Destroy: abi.Engine.PrivateKeyDestroy}
)

func validateHex(field, s string) error {
	if len(s) != HexLen {
		return &cbwallet.ValidationError{Field: field, Reason: fmt.Sprintf("want %d hex characters, got %d", HexLen, len(s))}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return &cbwallet.ValidationError{Field: field, Reason: fmt.Sprintf("non-hex character at offset %d", i)}
		}
	}
	return nil
}

func validateSize(field string, b []byte) error {
	if len(b) != Size {
		return &cbwallet.ValidationError{Field: field, Reason: fmt.Sprintf("want %d bytes, got %d", Size, len(b))}
	}
	return nil
}

// fromBytes copies b into a temporary byte vector and runs ctor with it. The
// vector is destroyed whether or not ctor succeeds.
func fromBytes(lib *cbwallet.Library, kind *handle.Kind, fn string, b []byte,
	ctor func(e abi.Engine, bv abi.Handle, errOut *int32) abi.Handle,
) (*handle.Owner, error) {
	bv, err := bytevector.New(lib, b)
	if err != nil {
		return nil, err
	}
	defer bv.Close()

	raw, release, err := bv.Owner().Borrow()
	if err != nil {
		return nil, err
	}
	defer release()

	return handle.Create(lib, kind, fn, func(e abi.Engine, errOut *int32) abi.Handle {
		return ctor(e, raw, errOut)
	})
}

// readBytes adopts the byte vector returned by m and copies it out.
func readBytes(o *handle.Owner, fn string, m func(abi.Engine, abi.Handle, *int32) abi.Handle) ([]byte, error) {
	bo, err := handle.Adopt(o, bytevector.Kind, fn, m)
	if err != nil {
		return nil, err
	}
	bv := bytevector.Adopt(bo)
	defer bv.Close()
	return bv.Bytes()
}

// PublicKey is an engine public key.
type PublicKey struct {
	owner *handle.Owner
}

// PublicKeyFromHex parses a 64 character hex key. The shape is checked
// locally before the engine sees it.
func PublicKeyFromHex(lib *cbwallet.Library, s string) (*PublicKey, error) {
	if err := validateHex("public key hex", s); err != nil {
		return nil, err
	}
	o, err := handle.Create(lib, PublicKeyKind, "public_key_from_hex", func(e abi.Engine, errOut *int32) abi.Handle {
		return e.PublicKeyFromHex(s, errOut)
	})
	if err != nil {
		return nil, err
	}
	return &PublicKey{owner: o}, nil
}

// PublicKeyFromBytes builds a key from its serialized form.
func PublicKeyFromBytes(lib *cbwallet.Library, b []byte) (*PublicKey, error) {
	if err := validateSize("public key", b); err != nil {
		return nil, err
	}
	o, err := fromBytes(lib, PublicKeyKind, "public_key_create", b, abi.Engine.PublicKeyCreate)
	if err != nil {
		return nil, err
	}
	return &PublicKey{owner: o}, nil
}

// PublicKeyFromEmojiID parses an emoji id. Only emptiness is checked locally;
// the emoji alphabet belongs to the engine.
func PublicKeyFromEmojiID(lib *cbwallet.Library, emoji string) (*PublicKey, error) {
	if emoji == "" {
		return nil, &cbwallet.ValidationError{Field: "emoji id", Reason: "empty"}
	}
	o, err := handle.Create(lib, PublicKeyKind, "emoji_id_to_public_key", func(e abi.Engine, errOut *int32) abi.Handle {
		return e.EmojiIDToPublicKey(emoji, errOut)
	})
	if err != nil {
		return nil, err
	}
	return &PublicKey{owner: o}, nil
}

// PublicKeyFromHandle adopts a public_key handle returned by another call.
func PublicKeyFromHandle(lib *cbwallet.Library, raw abi.Handle) (*PublicKey, error) {
	o, err := handle.FromRaw(lib, PublicKeyKind, raw)
	if err != nil {
		return nil, err
	}
	return &PublicKey{owner: o}, nil
}

// AdoptPublicKey wraps an owner of kind PublicKeyKind.
func AdoptPublicKey(o *handle.Owner) *PublicKey {
	return &PublicKey{owner: o}
}

// Bytes returns the serialized key.
func (k *PublicKey) Bytes() ([]byte, error) {
	return readBytes(k.owner, "public_key_get_bytes", abi.Engine.PublicKeyGetBytes)
}

// Hex returns the lowercase hex form of Bytes.
func (k *PublicKey) Hex() (string, error) {
	b, err := k.Bytes()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// EmojiID returns the key's emoji id.
func (k *PublicKey) EmojiID() (string, error) {
	return handle.CallString(k.owner, "public_key_to_emoji_id", abi.Engine.PublicKeyToEmojiID)
}

// Equal compares the serialized forms of k and other.
func (k *PublicKey) Equal(other *PublicKey) (bool, error) {
	a, err := k.Bytes()
	if err != nil {
		return false, err
	}
	b, err := other.Bytes()
	if err != nil {
		return false, err
	}
	return bytes.Equal(a, b), nil
}

// Owner exposes the handle owner for bindings that pass the key to native
// calls.
func (k *PublicKey) Owner() *handle.Owner { return k.owner }

// Close releases the native key.
func (k *PublicKey) Close() error {
	if k == nil {
		return nil
	}
	return k.owner.Close()
}

// PrivateKey is an engine secret key. Its public key is derived once at
// construction and cached as hex.
type PrivateKey struct {
	owner     *handle.Owner
	publicHex string
}

// GeneratePrivateKey asks the engine for a fresh random key.
func GeneratePrivateKey(lib *cbwallet.Library) (*PrivateKey, error) {
	o, err := handle.Create(lib, PrivateKeyKind, "private_key_generate", func(e abi.Engine, errOut *int32) abi.Handle {
		return e.PrivateKeyGenerate(errOut)
	})
	if err != nil {
		return nil, err
	}
	return newPrivateKey(o)
}

// PrivateKeyFromHex parses a 64 character hex secret.
func PrivateKeyFromHex(lib *cbwallet.Library, s string) (*PrivateKey, error) {
	if err := validateHex("private key hex", s); err != nil {
		return nil, err
	}
	o, err := handle.Create(lib, PrivateKeyKind, "private_key_from_hex", func(e abi.Engine, errOut *int32) abi.Handle {
		return e.PrivateKeyFromHex(s, errOut)
	})
	if err != nil {
		return nil, err
	}
	return newPrivateKey(o)
}

// PrivateKeyFromBytes builds a key from its serialized form. With
// Config.EnableZeroization set, b is wiped before returning, whether or not
// the engine accepted it.
func PrivateKeyFromBytes(lib *cbwallet.Library, b []byte) (*PrivateKey, error) {
	if err := validateSize("private key", b); err != nil {
		return nil, err
	}
	defer lib.Zeroize(b)
	o, err := fromBytes(lib, PrivateKeyKind, "private_key_create", b, abi.Engine.PrivateKeyCreate)
	if err != nil {
		return nil, err
	}
	return newPrivateKey(o)
}

// newPrivateKey completes construction. If the public key cannot be derived
// the secret handle is destroyed before the error is returned.
func newPrivateKey(o *handle.Owner) (*PrivateKey, error) {
	pk, err := derivePublic(o)
	if err != nil {
		_ = o.Close()
		return nil, err
	}
	defer pk.Close()

	pubHex, err := pk.Hex()
	if err != nil {
		_ = o.Close()
		return nil, err
	}
	return &PrivateKey{owner: o, publicHex: pubHex}, nil
}

func derivePublic(o *handle.Owner) (*PublicKey, error) {
	po, err := handle.Adopt(o, PublicKeyKind, "public_key_from_private_key", abi.Engine.PublicKeyFromPrivateKey)
	if err != nil {
		return nil, err
	}
	return AdoptPublicKey(po), nil
}

// PublicKeyHex returns the hex public key cached at construction.
func (k *PrivateKey) PublicKeyHex() string { return k.publicHex }

// PublicKey derives a new, independently owned public key.
func (k *PrivateKey) PublicKey() (*PublicKey, error) {
	return derivePublic(k.owner)
}

// Bytes returns the serialized secret. Callers should wipe it with
// cbwallet.ZeroizeBytes when done.
func (k *PrivateKey) Bytes() ([]byte, error) {
	return readBytes(k.owner, "private_key_get_bytes", abi.Engine.PrivateKeyGetBytes)
}

// Hex returns the hex form of the secret. The intermediate byte copy is
// wiped.
func (k *PrivateKey) Hex() (string, error) {
	b, err := k.Bytes()
	if err != nil {
		return "", err
	}
	defer cbwallet.ZeroizeBytes(b)
	return hex.EncodeToString(b), nil
}

// Owner exposes the handle owner for bindings that pass the key to native
// calls.
func (k *PrivateKey) Owner() *handle.Owner { return k.owner }

// Close releases the native key.
func (k *PrivateKey) Close() error {
	if k == nil {
		return nil
	}
	return k.owner.Close()
}
