// Package inventory holds the client-side inventory state: the item
// collection, the tag registry, the filter view and the Store that ties
// them together.
//
// Collection, TagRegistry and Filter are values. Every operation returns a
// new value and never mutates the receiver, so a snapshot handed to a
// renderer stays stable while updates land in the Store.
//
// Every item that enters a Collection is normalised so 0 <= used <= quantity.
package inventory
