package fakeengine

import (
	"bytes"
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
)

// KeySize is the length of serialized public and private keys.
const KeySize = 32

// Emoji ids encode the 32 key bytes plus one checksum byte, one emoji per
// byte, over the 256 code points starting at U+1F300.
const (
	emojiBase   = 0x1F300
	EmojiIDSize = KeySize + 1
)

func parsePublicKey(b []byte) ([]byte, bool) {
	if len(b) != KeySize {
		return nil, false
	}
	if _, err := schnorr.ParsePubKey(b); err != nil {
		return nil, false
	}
	return bytes.Clone(b), true
}

func parsePrivateKey(b []byte) (*btcec.PrivateKey, bool) {
	if len(b) != KeySize {
		return nil, false
	}
	var s btcec.ModNScalar
	if overflow := s.SetByteSlice(b); overflow || s.IsZero() {
		return nil, false
	}
	sk, _ := btcec.PrivKeyFromBytes(b)
	return sk, true
}

func publicOf(sk *btcec.PrivateKey) []byte {
	return schnorr.SerializePubKey(sk.PubKey())
}

func checksum(b []byte) byte {
	var sum byte
	for i, v := range b {
		sum += v * byte(i+1)
	}
	return sum ^ 0x5a
}

// EmojiID renders a serialized public key as the emoji id the engine uses.
func EmojiID(pk []byte) string {
	runes := make([]rune, 0, EmojiIDSize)
	for _, b := range pk {
		runes = append(runes, rune(emojiBase+int(b)))
	}
	runes = append(runes, rune(emojiBase+int(checksum(pk))))
	return string(runes)
}

func parseEmojiID(s string) ([]byte, bool) {
	runes := []rune(s)
	if len(runes) != EmojiIDSize {
		return nil, false
	}
	out := make([]byte, 0, EmojiIDSize)
	for _, r := range runes {
		if r < emojiBase || r > emojiBase+0xff {
			return nil, false
		}
		out = append(out, byte(r-emojiBase))
	}
	pk, sum := out[:KeySize], out[KeySize]
	if checksum(pk) != sum {
		return nil, false
	}
	return parsePublicKey(pk)
}

// ===== byte_vector =====

func (e *Engine) ByteVectorCreate(data []byte, errOut *int32) abi.Handle {
	return run(e, "byte_vector_create", errOut, func() (abi.Handle, int32) {
		return e.alloc(KindByteVector, bytes.Clone(data)), 0
	})
}

func (e *Engine) ByteVectorGetLength(bv abi.Handle, errOut *int32) uint32 {
	return run(e, "byte_vector_get_length", errOut, func() (uint32, int32) {
		b, code := get[[]byte](e, "byte_vector_get_length", bv, KindByteVector)
		return uint32(len(b)), code
	})
}

func (e *Engine) ByteVectorGetAt(bv abi.Handle, index uint32, errOut *int32) uint8 {
	return run(e, "byte_vector_get_at", errOut, func() (uint8, int32) {
		b, code := get[[]byte](e, "byte_vector_get_at", bv, KindByteVector)
		if code != 0 {
			return 0, code
		}
		if int(index) >= len(b) {
			return 0, codePositionInvalid
		}
		return b[index], 0
	})
}

func (e *Engine) ByteVectorDestroy(bv abi.Handle) {
	e.destroy("byte_vector_destroy", bv, KindByteVector)
}

// ===== public_key =====

func (e *Engine) PublicKeyCreate(bytesHandle abi.Handle, errOut *int32) abi.Handle {
	return run(e, "public_key_create", errOut, func() (abi.Handle, int32) {
		b, code := get[[]byte](e, "public_key_create", bytesHandle, KindByteVector)
		if code != 0 {
			return abi.Null, code
		}
		pk, ok := parsePublicKey(b)
		if !ok {
			return abi.Null, codeInvalidArgument
		}
		return e.alloc(KindPublicKey, pk), 0
	})
}

func (e *Engine) PublicKeyFromHex(s string, errOut *int32) abi.Handle {
	return run(e, "public_key_from_hex", errOut, func() (abi.Handle, int32) {
		b, err := hex.DecodeString(s)
		if err != nil {
			return abi.Null, codeInvalidArgument
		}
		pk, ok := parsePublicKey(b)
		if !ok {
			return abi.Null, codeInvalidArgument
		}
		return e.alloc(KindPublicKey, pk), 0
	})
}

func (e *Engine) PublicKeyFromPrivateKey(secret abi.Handle, errOut *int32) abi.Handle {
	return run(e, "public_key_from_private_key", errOut, func() (abi.Handle, int32) {
		sk, code := get[*btcec.PrivateKey](e, "public_key_from_private_key", secret, KindPrivateKey)
		if code != 0 {
			return abi.Null, code
		}
		return e.alloc(KindPublicKey, publicOf(sk)), 0
	})
}

func (e *Engine) PublicKeyGetBytes(pk abi.Handle, errOut *int32) abi.Handle {
	return run(e, "public_key_get_bytes", errOut, func() (abi.Handle, int32) {
		b, code := get[[]byte](e, "public_key_get_bytes", pk, KindPublicKey)
		if code != 0 {
			return abi.Null, code
		}
		return e.alloc(KindByteVector, bytes.Clone(b)), 0
	})
}

func (e *Engine) PublicKeyToEmojiID(pk abi.Handle, errOut *int32) abi.Handle {
	return run(e, "public_key_to_emoji_id", errOut, func() (abi.Handle, int32) {
		b, code := get[[]byte](e, "public_key_to_emoji_id", pk, KindPublicKey)
		if code != 0 {
			return abi.Null, code
		}
		return e.newString(EmojiID(b)), 0
	})
}

func (e *Engine) EmojiIDToPublicKey(emoji string, errOut *int32) abi.Handle {
	return run(e, "emoji_id_to_public_key", errOut, func() (abi.Handle, int32) {
		pk, ok := parseEmojiID(emoji)
		if !ok {
			return abi.Null, codeInvalidEmojiID
		}
		return e.alloc(KindPublicKey, pk), 0
	})
}

func (e *Engine) PublicKeyDestroy(pk abi.Handle) {
	e.destroy("public_key_destroy", pk, KindPublicKey)
}

// ===== private_key =====

func (e *Engine) PrivateKeyCreate(bytesHandle abi.Handle, errOut *int32) abi.Handle {
	return run(e, "private_key_create", errOut, func() (abi.Handle, int32) {
		b, code := get[[]byte](e, "private_key_create", bytesHandle, KindByteVector)
		if code != 0 {
			return abi.Null, code
		}
		sk, ok := parsePrivateKey(b)
		if !ok {
			return abi.Null, codeInvalidArgument
		}
		return e.alloc(KindPrivateKey, sk), 0
	})
}

func (e *Engine) PrivateKeyGenerate(errOut *int32) abi.Handle {
	return run(e, "private_key_generate", errOut, func() (abi.Handle, int32) {
		sk, err := btcec.NewPrivateKey()
		if err != nil {
			return abi.Null, codeInvalidArgument
		}
		return e.alloc(KindPrivateKey, sk), 0
	})
}

func (e *Engine) PrivateKeyFromHex(s string, errOut *int32) abi.Handle {
	return run(e, "private_key_from_hex", errOut, func() (abi.Handle, int32) {
		b, err := hex.DecodeString(s)
		if err != nil {
			return abi.Null, codeInvalidArgument
		}
		sk, ok := parsePrivateKey(b)
		if !ok {
			return abi.Null, codeInvalidArgument
		}
		return e.alloc(KindPrivateKey, sk), 0
	})
}

func (e *Engine) PrivateKeyGetBytes(sk abi.Handle, errOut *int32) abi.Handle {
	return run(e, "private_key_get_bytes", errOut, func() (abi.Handle, int32) {
		key, code := get[*btcec.PrivateKey](e, "private_key_get_bytes", sk, KindPrivateKey)
		if code != 0 {
			return abi.Null, code
		}
		return e.alloc(KindByteVector, key.Serialize()), 0
	})
}

func (e *Engine) PrivateKeyDestroy(sk abi.Handle) {
	e.destroy("private_key_destroy", sk, KindPrivateKey)
}
