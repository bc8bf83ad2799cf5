package services

import (
	"context"
	"sync"

	"github.com/hackinpovo/inventory/internal/client/models"
)

// fakeClient implements client.Client. Unset hooks return zero values.
type fakeClient struct {
	mu    sync.Mutex
	calls []string

	listItems   func() ([]models.Item, error)
	listTags    func() ([]models.Tag, error)
	searchItems func(query string, tagIDs []string) ([]models.Item, error)
	createItem  func(req models.CreateItemRequest) (models.Item, error)
	updateItem  func(id string, req models.UpdateItemRequest) (models.Item, error)
	quantity    func(id string, q int) (models.Item, error)
	used        func(id string, u int) (models.Item, error)
	deleteItem  func(id string) error
	createTag   func(req models.CreateTagRequest) (models.Tag, error)
	deleteTag   func(id string) error
	login       func(req models.LoginRequest) (models.AuthResponse, error)
	register    func(req models.RegisterRequest) (models.AuthResponse, error)
}

func (f *fakeClient) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeClient) ListItems(ctx context.Context) ([]models.Item, error) {
	f.record("ListItems")
	if f.listItems == nil {
		return nil, nil
	}
	return f.listItems()
}

func (f *fakeClient) ListTags(ctx context.Context) ([]models.Tag, error) {
	f.record("ListTags")
	if f.listTags == nil {
		return nil, nil
	}
	return f.listTags()
}

func (f *fakeClient) SearchItems(ctx context.Context, query string, tagIDs []string) ([]models.Item, error) {
	f.record("SearchItems")
	if f.searchItems == nil {
		return nil, nil
	}
	return f.searchItems(query, tagIDs)
}

func (f *fakeClient) CreateItem(ctx context.Context, req models.CreateItemRequest) (models.Item, error) {
	f.record("CreateItem")
	if f.createItem == nil {
		return models.Item{}, nil
	}
	return f.createItem(req)
}

func (f *fakeClient) UpdateItem(ctx context.Context, id string, req models.UpdateItemRequest) (models.Item, error) {
	f.record("UpdateItem")
	if f.updateItem == nil {
		return models.Item{}, nil
	}
	return f.updateItem(id, req)
}

func (f *fakeClient) UpdateQuantity(ctx context.Context, id string, quantity int) (models.Item, error) {
	f.record("UpdateQuantity")
	if f.quantity == nil {
		return models.Item{}, nil
	}
	return f.quantity(id, quantity)
}

func (f *fakeClient) UpdateUsedQuantity(ctx context.Context, id string, used int) (models.Item, error) {
	f.record("UpdateUsedQuantity")
	if f.used == nil {
		return models.Item{}, nil
	}
	return f.used(id, used)
}

func (f *fakeClient) DeleteItem(ctx context.Context, id string) error {
	f.record("DeleteItem")
	if f.deleteItem == nil {
		return nil
	}
	return f.deleteItem(id)
}

func (f *fakeClient) CreateTag(ctx context.Context, req models.CreateTagRequest) (models.Tag, error) {
	f.record("CreateTag")
	if f.createTag == nil {
		return models.Tag{}, nil
	}
	return f.createTag(req)
}

func (f *fakeClient) DeleteTag(ctx context.Context, id string) error {
	f.record("DeleteTag")
	if f.deleteTag == nil {
		return nil
	}
	return f.deleteTag(id)
}

func (f *fakeClient) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	f.record("Login")
	if f.login == nil {
		return models.AuthResponse{}, nil
	}
	return f.login(req)
}

func (f *fakeClient) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	f.record("Register")
	if f.register == nil {
		return models.AuthResponse{}, nil
	}
	return f.register(req)
}
