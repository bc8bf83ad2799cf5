package api

import (
	"time"

	"github.com/hackinpovo/inventory/internal/server/items"
	"github.com/hackinpovo/inventory/internal/server/users"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=72"`
	Name     string `json:"name" validate:"notblank,max=100"`
}

type createItemRequest struct {
	Name        string   `json:"name" validate:"notblank,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	Used        *int     `json:"used" validate:"omitempty,gte=0"`
	TagIDs      []string `json:"tagIds"`
}

type updateItemRequest struct {
	Name        *string  `json:"name" validate:"omitempty,notblank,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Quantity    *int     `json:"quantity" validate:"omitempty,gte=0"`
	TagIDs      []string `json:"tagIds"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

type createTagRequest struct {
	Name  string `json:"name" validate:"notblank,max=50"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

type tagResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type itemResponse struct {
	ID          string        `json:"_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Quantity    int           `json:"quantity"`
	Used        int           `json:"used"`
	Tags        []tagResponse `json:"tags"`
	DateAdded   time.Time     `json:"dateAdded"`
	AddedBy     string        `json:"addedBy"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func toTag(t items.Tag) tagResponse {
	return tagResponse{ID: t.ID, Name: t.Name, Color: t.Color}
}

func toTags(list []items.Tag) []tagResponse {
	out := make([]tagResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTag(t))
	}
	return out
}

func toItem(it items.Item) itemResponse {
	return itemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Quantity:    it.Quantity,
		Used:        it.Used,
		Tags:        toTags(it.Tags),
		DateAdded:   it.DateAdded,
		AddedBy:     it.AddedBy,
	}
}

func toItems(list []items.Item) []itemResponse {
	out := make([]itemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, toItem(it))
	}
	return out
}

func toAuth(u *users.User, token string) authResponse {
	return authResponse{
		Token: token,
		User:  userResponse{ID: u.ID, Email: u.Email, Name: u.Name},
	}
}
