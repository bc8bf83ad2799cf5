package client

import (
	"context"

	"github.com/hackinpovo/inventory/internal/client/models"
)

// Client is the transport-agnostic contract of the inventory API.
// Implementations return server representations verbatim; they never
// validate or repair field values.
type Client interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	SearchItems(ctx context.Context, query string, tagIDs []string) ([]models.Item, error)

	CreateItem(ctx context.Context, req models.CreateItemRequest) (models.Item, error)
	UpdateItem(ctx context.Context, id string, req models.UpdateItemRequest) (models.Item, error)
	UpdateQuantity(ctx context.Context, id string, quantity int) (models.Item, error)
	UpdateUsedQuantity(ctx context.Context, id string, used int) (models.Item, error)
	DeleteItem(ctx context.Context, id string) error

	CreateTag(ctx context.Context, req models.CreateTagRequest) (models.Tag, error)
	DeleteTag(ctx context.Context, id string) error

	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)
}

// TokenSource yields the current bearer token, or "" when anonymous.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }
