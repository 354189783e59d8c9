// Package item defines the occurrence record placed by the sampler: a typed
// entity at a world position, with creation and deletion timestamps. Items
// are immutable once the patch that owns them is fixed.
package item

import "github.com/patchworld/mrf/internal/geom"

// Item is an occurrence of item type Type at world position Location. A
// CreationTime of 0 means the item has always existed; a DeletionTime of 0
// means it has never been deleted.
type Item struct {
	Type         uint32
	Location     geom.Position
	CreationTime uint64
	DeletionTime uint64
}

// New returns an item that has always existed and has never been deleted.
func New(itemType uint32, location geom.Position) Item {
	return Item{Type: itemType, Location: location}
}
