package fakeengine

import (
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
)

// Seed phrases are a version word, one word per key byte and a checksum
// word, all drawn from a 256 word list.
const (
	SeedVersion   byte = 0
	SeedPhraseLen      = KeySize + 2
)

// Results of seed_words_push_word.
const (
	PushInvalidSeedWord    uint8 = 0
	PushSuccessful         uint8 = 1
	PushSeedPhraseComplete uint8 = 2
	PushInvalidSeedPhrase  uint8 = 3
	PushNoLanguageMatch    uint8 = 4
)

var syllables = [16]string{
	"ba", "ce", "di", "fo", "gu", "ha", "ji", "ko",
	"lu", "ma", "ne", "pi", "ro", "sa", "tu", "vo",
}

var (
	wordList  [256]string
	wordIndex = make(map[string]byte, 256)
)

func init() {
	for i := range wordList {
		w := syllables[i>>4] + syllables[i&0xf] + "n"
		wordList[i] = w
		wordIndex[w] = byte(i)
	}
}

// Word returns word i of the seed word list.
func Word(i byte) string { return wordList[i] }

type seedState struct {
	words []string
}

func seedChecksum(version byte, key []byte) byte {
	return checksum(append([]byte{version}, key...))
}

// SeedPhrase encodes a secret key as the words the engine would report.
func SeedPhrase(secret []byte) []string {
	return seedPhrase(SeedVersion, secret)
}

func seedPhrase(version byte, secret []byte) []string {
	words := make([]string, 0, SeedPhraseLen)
	words = append(words, wordList[version])
	for _, b := range secret {
		words = append(words, wordList[b])
	}
	return append(words, wordList[seedChecksum(version, secret)])
}

// decodeSeed returns the secret key encoded in words or the engine code
// describing why it cannot.
func decodeSeed(words []string) ([]byte, int32) {
	if len(words) != SeedPhraseLen {
		return nil, codeSeedWordsInvalidData
	}
	raw := make([]byte, 0, SeedPhraseLen)
	for _, w := range words {
		b, ok := wordIndex[w]
		if !ok {
			return nil, codeSeedWordsInvalidData
		}
		raw = append(raw, b)
	}
	version, key, sum := raw[0], raw[1:SeedPhraseLen-1], raw[SeedPhraseLen-1]
	if version != SeedVersion {
		return nil, codeSeedWordsVersionMismatch
	}
	if seedChecksum(version, key) != sum {
		return nil, codeSeedWordsInvalidData
	}
	if _, ok := parsePrivateKey(key); !ok {
		return nil, codeSeedWordsInvalidData
	}
	return key, 0
}

func (e *Engine) SeedWordsCreate(errOut *int32) abi.Handle {
	return run(e, "seed_words_create", errOut, func() (abi.Handle, int32) {
		return e.alloc(KindSeedWords, &seedState{}), 0
	})
}

func (e *Engine) SeedWordsGetLength(sw abi.Handle, errOut *int32) uint32 {
	return scalar(e, "seed_words_get_length", sw, KindSeedWords, errOut,
		func(s *seedState) uint32 { return uint32(len(s.words)) })
}

func (e *Engine) SeedWordsGetAt(sw abi.Handle, index uint32, errOut *int32) abi.Handle {
	return run(e, "seed_words_get_at", errOut, func() (abi.Handle, int32) {
		s, code := get[*seedState](e, "seed_words_get_at", sw, KindSeedWords)
		if code != 0 {
			return abi.Null, code
		}
		if int(index) >= len(s.words) {
			return abi.Null, codePositionInvalid
		}
		return e.newString(s.words[index]), 0
	})
}

func (e *Engine) SeedWordsPushWord(sw abi.Handle, word string, errOut *int32) uint8 {
	return run(e, "seed_words_push_word", errOut, func() (uint8, int32) {
		s, code := get[*seedState](e, "seed_words_push_word", sw, KindSeedWords)
		if code != 0 {
			return 0, code
		}
		if len(s.words) >= SeedPhraseLen {
			return 0, codeInvalidArgument
		}
		if _, ok := wordIndex[word]; !ok {
			if len(s.words) == 0 {
				return PushNoLanguageMatch, 0
			}
			return PushInvalidSeedWord, 0
		}
		s.words = append(s.words, word)
		if len(s.words) < SeedPhraseLen {
			return PushSuccessful, 0
		}
		if _, code := decodeSeed(s.words); code != 0 {
			return PushInvalidSeedPhrase, 0
		}
		return PushSeedPhraseComplete, 0
	})
}

func (e *Engine) SeedWordsDestroy(sw abi.Handle) {
	e.destroy("seed_words_destroy", sw, KindSeedWords)
}
