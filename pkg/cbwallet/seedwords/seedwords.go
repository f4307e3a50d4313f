// Package seedwords binds the engine's seed_words entity used to back up and
// recover a wallet.
package seedwords

import (
	"errors"
	"fmt"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/collection"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/handle"
)

var Kind = &handle.Kind{Name: "seed_words", Destroy: abi.Engine.SeedWordsDestroy}

// PushResult is the engine's verdict on a pushed word.
type PushResult uint8

const (
	InvalidSeedWord    PushResult = 0
	SuccessfulPush     PushResult = 1
	SeedPhraseComplete PushResult = 2
	InvalidSeedPhrase  PushResult = 3
	NoLanguageMatch    PushResult = 4
)

func (r PushResult) String() string {
	switch r {
	case InvalidSeedWord:
		return "invalid seed word"
	case SuccessfulPush:
		return "successful push"
	case SeedPhraseComplete:
		return "seed phrase complete"
	case InvalidSeedPhrase:
		return "invalid seed phrase"
	case NoLanguageMatch:
		return "no language match"
	default:
		return fmt.Sprintf("push result(%d)", uint8(r))
	}
}

// ErrPhraseRejected matches every *RejectedError.
var ErrPhraseRejected = errors.New("seedwords: engine rejected the seed phrase")

// RejectedError reports the engine's verdict on the word at Index that ended
// FromWords. The word itself is secret and is not kept.
type RejectedError struct {
	Index  int
	Result PushResult
}

func (e *RejectedError) Error() string {
	if e.Result == SuccessfulPush {
		return fmt.Sprintf("seedwords: phrase incomplete after word %d", e.Index)
	}
	return fmt.Sprintf("seedwords: word %d: %s", e.Index, e.Result)
}

func (e *RejectedError) Is(target error) bool { return target == ErrPhraseRejected }

var accessors = collection.Accessors[string]{
	Name: "seed_words",
	Length: func(o *handle.Owner) (uint32, error) {
		return handle.Call(o, "seed_words_get_length", abi.Engine.SeedWordsGetLength)
	},
	At: func(o *handle.Owner, i uint32) (string, error) {
		return handle.CallString(o, "seed_words_get_at", func(e abi.Engine, h abi.Handle, errOut *int32) abi.Handle {
			return e.SeedWordsGetAt(h, i, errOut)
		})
	},
}

// SeedWords is an ordered list of mnemonic words held by the engine.
type SeedWords struct {
	*collection.List[string]
	owner *handle.Owner
}

// New creates an empty word list to push into.
func New(lib *cbwallet.Library) (*SeedWords, error) {
	o, err := handle.Create(lib, Kind, "seed_words_create", func(e abi.Engine, errOut *int32) abi.Handle {
		return e.SeedWordsCreate(errOut)
	})
	if err != nil {
		return nil, err
	}
	return Adopt(o), nil
}

// FromWords pushes words in order and requires the engine to accept them as
// a complete phrase. A verdict other than that is a *RejectedError. On any
// failure the native list is destroyed.
func FromWords(lib *cbwallet.Library, words []string) (*SeedWords, error) {
	if len(words) == 0 {
		return nil, &cbwallet.ValidationError{Field: "seed words", Reason: "empty"}
	}
	sw, err := New(lib)
	if err != nil {
		return nil, err
	}
	for i, w := range words {
		r, err := sw.Push(w)
		if err != nil {
			_ = sw.Close()
			return nil, err
		}
		last := i == len(words)-1
		switch {
		case r == SeedPhraseComplete && last:
			return sw, nil
		case r == SuccessfulPush && !last:
			continue
		default:
			_ = sw.Close()
			return nil, &RejectedError{Index: i, Result: r}
		}
	}
	return sw, nil
}

// FromHandle adopts a seed_words handle.
func FromHandle(lib *cbwallet.Library, raw abi.Handle) (*SeedWords, error) {
	o, err := handle.FromRaw(lib, Kind, raw)
	if err != nil {
		return nil, err
	}
	return Adopt(o), nil
}

// Adopt wraps an owner of kind Kind.
func Adopt(o *handle.Owner) *SeedWords {
	return &SeedWords{List: collection.New(o, accessors), owner: o}
}

// Push appends word and returns the engine's verdict.
func (s *SeedWords) Push(word string) (PushResult, error) {
	r, err := handle.Call(s.owner, "seed_words_push_word", func(e abi.Engine, h abi.Handle, errOut *int32) uint8 {
		return e.SeedWordsPushWord(h, word, errOut)
	})
	return PushResult(r), err
}

// Words copies every word into Go memory.
func (s *SeedWords) Words() ([]string, error) {
	return s.All()
}

// Owner exposes the handle owner for bindings that pass the list to native
// calls.
func (s *SeedWords) Owner() *handle.Owner { return s.owner }
