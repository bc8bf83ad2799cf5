// Package models defines the client-side inventory data models and the
// request payloads exchanged with the inventory API.
package models

import "time"

// Tag is a named, colored label attachable to items.
type Tag struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Item is a unit of inventory. Tags is a snapshot taken when the item was
// last fetched or updated; it is not linked to the tag registry.
type Item struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Quantity    int       `json:"quantity"`
	Used        int       `json:"used"`
	Tags        []Tag     `json:"tags"`
	DateAdded   time.Time `json:"dateAdded"`
	AddedBy     string    `json:"addedBy"`
}

// Clone returns a copy of the item that shares no memory with the original.
func (i Item) Clone() Item {
	if i.Tags != nil {
		i.Tags = append([]Tag(nil), i.Tags...)
	}
	return i
}

// HasTag reports whether the item's tag snapshot contains id.
func (i Item) HasTag(id string) bool {
	for _, t := range i.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

// TagIDs returns the ids of the item's tag snapshot in order.
func (i Item) TagIDs() []string {
	ids := make([]string, 0, len(i.Tags))
	for _, t := range i.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}

// CreateItemRequest is the body of POST /items.
type CreateItemRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Quantity    *int     `json:"quantity,omitempty"`
	Used        *int     `json:"used,omitempty"`
	TagIDs      []string `json:"tagIds"`
}

// UpdateItemRequest is the body of PUT /items/{id}. Nil fields are left
// untouched by the server; a nil TagIDs is sent as null, an empty one
// clears the item's tags.
type UpdateItemRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Quantity    *int     `json:"quantity,omitempty"`
	TagIDs      []string `json:"tagIds"`
}

// QuantityRequest is the body of both quantity PATCH endpoints.
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CreateTagRequest is the body of POST /tags.
type CreateTagRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}
