// Package contacts binds the engine's contact and contacts entities.
package contacts

import (
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/abi"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/collection"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/internal/handle"
	"github.com/coinbase/cb-wallet-go/pkg/cbwallet/keys"
)

var (
	Kind     = &handle.Kind{Name: "contact", Destroy: abi.Engine.ContactDestroy}
	ListKind = &handle.Kind{Name: "contacts", Destroy: abi.Engine.ContactsDestroy}
)

// Contact is an alias bound to a public key.
type Contact struct {
	owner *handle.Owner
}

// New creates a contact. pk stays owned by the caller.
func New(lib *cbwallet.Library, alias string, pk *keys.PublicKey, favourite bool) (*Contact, error) {
	if alias == "" {
		return nil, &cbwallet.ValidationError{Field: "alias", Reason: "empty"}
	}
	if pk == nil {
		return nil, &cbwallet.ValidationError{Field: "public key", Reason: "missing"}
	}
	raw, release, err := pk.Owner().Borrow()
	if err != nil {
		return nil, err
	}
	defer release()

	o, err := handle.Create(lib, Kind, "contact_create", func(e abi.Engine, errOut *int32) abi.Handle {
		return e.ContactCreate(alias, raw, favourite, errOut)
	})
	if err != nil {
		return nil, err
	}
	return &Contact{owner: o}, nil
}

// FromHandle adopts a contact handle returned by another call.
func FromHandle(lib *cbwallet.Library, raw abi.Handle) (*Contact, error) {
	o, err := handle.FromRaw(lib, Kind, raw)
	if err != nil {
		return nil, err
	}
	return &Contact{owner: o}, nil
}

// Alias returns the contact alias.
func (c *Contact) Alias() (string, error) {
	return handle.CallString(c.owner, "contact_get_alias", abi.Engine.ContactGetAlias)
}

// PublicKey returns a new, independently owned copy of the contact's key.
func (c *Contact) PublicKey() (*keys.PublicKey, error) {
	o, err := handle.Adopt(c.owner, keys.PublicKeyKind, "contact_get_public_key", abi.Engine.ContactGetPublicKey)
	if err != nil {
		return nil, err
	}
	return keys.AdoptPublicKey(o), nil
}

// Favourite reports whether the contact is marked as a favourite.
func (c *Contact) Favourite() (bool, error) {
	return handle.Call(c.owner, "contact_get_favourite", abi.Engine.ContactGetFavourite)
}

// Owner exposes the handle owner for bindings that pass the contact to
// native calls.
func (c *Contact) Owner() *handle.Owner { return c.owner }

// Close releases the native contact.
func (c *Contact) Close() error {
	if c == nil {
		return nil
	}
	return c.owner.Close()
}

// List is a snapshot of contacts.
type List = collection.List[*Contact]

var accessors = collection.Handles("contacts", Kind, abi.Engine.ContactsGetLength, abi.Engine.ContactsGetAt,
	func(o *handle.Owner) *Contact { return &Contact{owner: o} })

// AdoptList wraps an owner of kind ListKind.
func AdoptList(o *handle.Owner) *List {
	return collection.New(o, accessors)
}

// ListFromHandle adopts a contacts handle returned by another call.
func ListFromHandle(lib *cbwallet.Library, raw abi.Handle) (*List, error) {
	o, err := handle.FromRaw(lib, ListKind, raw)
	if err != nil {
		return nil, err
	}
	return AdoptList(o), nil
}
