package services

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/hackinpovo/inventory/internal/client/client"
	"github.com/hackinpovo/inventory/internal/client/inventory"
	"github.com/hackinpovo/inventory/internal/common"
	"github.com/hackinpovo/inventory/internal/logging"
	"github.com/hackinpovo/inventory/internal/server"
	"github.com/hackinpovo/inventory/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// liveStack runs the API server in-process and returns a dashboard and a
// session service talking to it over HTTP.
func liveStack(t *testing.T) (*Dashboard, SessionService, *notes) {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	app, err := server.NewApp(cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)

	api := client.NewHTTPClient(srv.URL + "/api")
	sess := NewSessionService(api, setupDB(t), logging.Discard())
	api.SetTokenSource(sess)

	n := &notes{}
	return NewDashboard(api, inventory.NewStore(), n, logging.Discard()), sess, n
}

func TestLive_AnonymousWritesRejected(t *testing.T) {
	ctx := context.Background()
	d, _, n := liveStack(t)

	require.NoError(t, d.LoadInitial(ctx))
	assert.Empty(t, d.Items())

	form := NewItemForm()
	form.Name = "Drill"
	_, err := d.SubmitAddItem(ctx, form)
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrUnauthorized))
	assert.True(t, n.last(t).Destructive)
	assert.Equal(t, "Drill", form.Name)
}

func TestLive_InventoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	d, sess, n := liveStack(t)

	_, err := sess.Register(ctx, "ada@lab.it", "secret", "Ada")
	require.NoError(t, err)
	require.NoError(t, d.LoadInitial(ctx))

	tf := NewTagForm()
	tf.Name = "Cable"
	cable, err := d.CreateTag(ctx, tf)
	require.NoError(t, err)
	assert.Equal(t, common.DefaultTagColor, cable.Color)

	form := NewItemForm()
	form.Name = "LAN cable"
	form.SetQuantity(3, inventory.OriginCreate)
	form.SetUsed(5)
	form.ToggleTag(cable.ID)
	item, err := d.SubmitAddItem(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 5, item.Used)
	assert.Equal(t, "Item added", n.last(t).Title)

	other := NewItemForm()
	other.Name = "Soldering iron"
	_, err = d.SubmitAddItem(ctx, other)
	require.NoError(t, err)
	require.Len(t, d.Items(), 2)
	assert.Equal(t, "Soldering iron", d.Items()[0].Name)

	_, err = d.AdjustUsed(ctx, item.ID, 1)
	assert.True(t, errors.Is(err, common.ErrValidation))

	item, err = d.AdjustQuantity(ctx, item.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 6, item.Quantity)

	edit := EditItemForm(item)
	edit.SetQuantity(2, inventory.OriginEdit)
	item, err = d.SubmitEditItem(ctx, item.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 2, item.Used)

	d.ToggleTag(cable.ID)
	assert.Len(t, d.Visible(), 1)

	d.ClearTags()
	d.SetQuery("solder")
	require.NoError(t, d.Search(ctx))
	require.Len(t, d.Items(), 1)
	assert.Equal(t, "Soldering iron", d.Items()[0].Name)

	require.NoError(t, d.Reload(ctx))
	assert.Len(t, d.Items(), 2)

	dup := NewTagForm()
	dup.Name = "cable"
	_, err = d.CreateTag(ctx, dup)
	assert.True(t, errors.Is(err, common.ErrValidation))

	d.ToggleTag(cable.ID)
	require.NoError(t, d.DeleteTag(ctx, cable.ID))
	assert.Empty(t, d.Snapshot().Filter.TagIDs)
	for _, it := range d.Items() {
		assert.False(t, it.HasTag(cable.ID))
	}

	require.NoError(t, d.DeleteItem(ctx, item.ID))
	assert.Len(t, d.Items(), 1)
}

func TestLive_SessionAuth(t *testing.T) {
	ctx := context.Background()
	_, sess, _ := liveStack(t)

	_, err := sess.Login(ctx, "nobody@lab.it", "secret")
	var ae *AuthError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "invalid email or password", ae.Message)

	s, err := sess.Register(ctx, "ada@lab.it", "secret", "Ada")
	require.NoError(t, err)
	assert.NotEmpty(t, s.Token)
	assert.Equal(t, s.Token, sess.Token())
}
