package dispatch

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("dispatch: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// tableDigest is the canonical identity of a table: everything that
// determines its dispatch shape, nothing that varies per process (no
// pointers, no function values).
type tableDigest struct {
	Name      string   `cbor:"1,keyasint"`
	Parent    string   `cbor:"2,keyasint,omitempty"`
	Selectors []string `cbor:"3,keyasint"`
	Slots     []string `cbor:"4,keyasint"` // slot labels in selector order, "" where unbound
}

// digestTable hashes the table's canonical encoding. Canonical CBOR
// keeps the bytes stable across runs and platforms, so two processes
// that define the same table report the same fingerprint.
func digestTable(t *Table) [32]byte {
	d := tableDigest{
		Name:      t.name,
		Selectors: t.reg.Selectors().All(),
	}
	if t.parent != nil {
		d.Parent = t.parent.name
	}
	d.Slots = make([]string, len(d.Selectors))
	for id := range d.Selectors {
		if s := t.LookupLocal(id); s != nil {
			d.Slots[id] = SlotLabel(s)
		}
	}

	enc, err := cborEncMode.Marshal(&d)
	if err != nil {
		panic(fmt.Sprintf("dispatch: cannot encode digest for table %q: %v", t.name, err))
	}
	return sha256.Sum256(enc)
}
