// Package model holds the domain entity and the request payloads
// bound by the HTTP handlers.
package model

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// ItemID is the opaque identifier a store assigns to an Item.
//
// Its textual format belongs to the store that minted it (ObjectID hex
// for Mongo and memory, UUID for Postgres); callers never build one.
type ItemID string

// String returns the textual form of the id.
func (id ItemID) String() string {
	return string(id)
}

// Item is the sole persisted entity.
//
// ID, CreatedAt and UpdatedAt are owned by the store.
type Item struct {
	ID          ItemID    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

var validate = validator.New()

// CreateItemPayload is the body of POST /api/items.
//
// Name is not checked here: presence is enforced by the repository.
type CreateItemPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (p *CreateItemPayload) Validate() error {
	return validate.Struct(p)
}

// ListItemsPayload binds GET /api/items, which takes no input.
type ListItemsPayload struct{}

func (p *ListItemsPayload) Validate() error {
	return nil
}

// ItemIDPayload binds the :id path parameter of GET and DELETE.
type ItemIDPayload struct {
	ID string `param:"id" validate:"required"`
}

func (p *ItemIDPayload) Validate() error {
	return validate.Struct(p)
}

// UpdateItemPayload binds PUT /api/items/:id.
type UpdateItemPayload struct {
	ID          string `param:"id" json:"-" validate:"required"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (p *UpdateItemPayload) Validate() error {
	return validate.Struct(p)
}
