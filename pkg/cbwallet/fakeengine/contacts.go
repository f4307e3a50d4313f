package fakeengine

import (
	"bytes"

	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
)

type contactValue struct {
	alias     string
	pub       []byte
	favourite bool
}

func (e *Engine) ContactCreate(alias string, pk abi.Handle, favourite bool, errOut *int32) abi.Handle {
	return run(e, "contact_create", errOut, func() (abi.Handle, int32) {
		pub, code := get[[]byte](e, "contact_create", pk, KindPublicKey)
		if code != 0 {
			return abi.Null, code
		}
		if alias == "" {
			return abi.Null, codeInvalidArgument
		}
		return e.alloc(KindContact, contactValue{alias: alias, pub: bytes.Clone(pub), favourite: favourite}), 0
	})
}

func (e *Engine) ContactGetAlias(c abi.Handle, errOut *int32) abi.Handle {
	return run(e, "contact_get_alias", errOut, func() (abi.Handle, int32) {
		v, code := get[contactValue](e, "contact_get_alias", c, KindContact)
		if code != 0 {
			return abi.Null, code
		}
		return e.newString(v.alias), 0
	})
}

func (e *Engine) ContactGetPublicKey(c abi.Handle, errOut *int32) abi.Handle {
	return run(e, "contact_get_public_key", errOut, func() (abi.Handle, int32) {
		v, code := get[contactValue](e, "contact_get_public_key", c, KindContact)
		if code != 0 {
			return abi.Null, code
		}
		return e.alloc(KindPublicKey, bytes.Clone(v.pub)), 0
	})
}

func (e *Engine) ContactGetFavourite(c abi.Handle, errOut *int32) bool {
	return run(e, "contact_get_favourite", errOut, func() (bool, int32) {
		v, code := get[contactValue](e, "contact_get_favourite", c, KindContact)
		return v.favourite, code
	})
}

func (e *Engine) ContactDestroy(c abi.Handle) {
	e.destroy("contact_destroy", c, KindContact)
}

func (e *Engine) ContactsGetLength(cs abi.Handle, errOut *int32) uint32 {
	return length[contactValue](e, "contacts_get_length", cs, KindContacts, errOut)
}

func (e *Engine) ContactsGetAt(cs abi.Handle, index uint32, errOut *int32) abi.Handle {
	return at[contactValue](e, "contacts_get_at", cs, KindContacts, KindContact, index, errOut)
}

func (e *Engine) ContactsDestroy(cs abi.Handle) {
	e.destroy("contacts_destroy", cs, KindContacts)
}

// length and at implement <collection>_get_length and <collection>_get_at for
// collections stored as a snapshot slice. get_at hands out a fresh element
// handle on every call.
func length[V any](e *Engine, fn string, h abi.Handle, kind string, errOut *int32) uint32 {
	return run(e, fn, errOut, func() (uint32, int32) {
		items, code := get[[]V](e, fn, h, kind)
		return uint32(len(items)), code
	})
}

func at[V any](e *Engine, fn string, h abi.Handle, kind, elemKind string, index uint32, errOut *int32) abi.Handle {
	return run(e, fn, errOut, func() (abi.Handle, int32) {
		items, code := get[[]V](e, fn, h, kind)
		if code != 0 {
			return abi.Null, code
		}
		if int(index) >= len(items) {
			return abi.Null, codePositionInvalid
		}
		return e.alloc(elemKind, items[index]), 0
	})
}
