package cli

import (
	"bytes"
	"context"
	"database/sql"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hackinpovo/inventory/internal/client/client"
	"github.com/hackinpovo/inventory/internal/client/config"
	"github.com/hackinpovo/inventory/internal/logging"
	"github.com/hackinpovo/inventory/internal/server"
	srvconfig "github.com/hackinpovo/inventory/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appEnv struct {
	cfg *config.Config
	db  *sql.DB
	url string
}

func newAppEnv(t *testing.T) *appEnv {
	t.Helper()

	scfg := &srvconfig.Config{}
	scfg.LoadDefaults()
	srvApp, err := server.NewApp(scfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = srvApp.Close() })

	srv := httptest.NewServer(srvApp.Handler())
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.URL + "/api"
	cfg.SessionDSN = filepath.Join(t.TempDir(), "session.db")

	db, err := client.InitDatabase(context.Background(), cfg.SessionDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return &appEnv{cfg: cfg, db: db, url: cfg.APIBaseURL}
}

func (e *appEnv) app(input ...string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	api := client.NewHTTPClient(e.url)
	a := newApp(e.cfg, e.db, api, logging.Discard(), strings.NewReader(strings.Join(input, "\n")+"\n"), &out)
	return a, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = orig })
}

func silenceREPL(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestApp_InventoryFlow(t *testing.T) {
	stubPassword(t, "secret")
	ctx := context.Background()
	env := newAppEnv(t)

	a, out := env.app(
		"ada@lab.it", "Ada", // register
		"Cable", "", // tag-add
		"Drill", "cordless", "3", "1", "", // add
		"y", // delete
	)

	require.NoError(t, a.Register(ctx))
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "(ada@lab.it, 0 items)", a.status())

	require.NoError(t, a.AddTag(ctx))
	require.Len(t, a.dashboard.Tags(), 1)

	require.NoError(t, a.AddItem(ctx))
	items := a.dashboard.Items()
	require.Len(t, items, 1)
	id := items[0].ID
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 1, items[0].Used)
	assert.Equal(t, "(ada@lab.it, 1 items)", a.status())
	a.dashboard.SetQuery("hammer")
	assert.Equal(t, "(ada@lab.it, 0 of 1 items)", a.status())
	a.dashboard.SetQuery("")

	require.NoError(t, a.AdjustUsed(ctx, id, 1))
	require.NoError(t, a.AdjustUsed(ctx, id, 1))
	assert.Error(t, a.AdjustUsed(ctx, id, 1))
	assert.Error(t, a.AdjustQuantity(ctx, id, -1))
	require.NoError(t, a.AdjustQuantity(ctx, id, 1))

	require.NoError(t, a.Show(ctx, id))
	require.NoError(t, a.DeleteItem(ctx, id))
	assert.Empty(t, a.dashboard.Items())

	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())

	text := out.String()
	for _, want := range []string{"Welcome Ada", "Tag created", "Item added", "Quantity updated", "every unit is already in use", "Item deleted", "Logged out"} {
		assert.Contains(t, text, want)
	}
}

func TestApp_RunRestoresSession(t *testing.T) {
	stubPassword(t, "secret")
	silenceREPL(t)
	ctx := context.Background()
	env := newAppEnv(t)

	first, _ := env.app("ada@lab.it", "Ada")
	require.NoError(t, first.Register(ctx))

	second, out := env.app("exit")
	second.Run(ctx)

	assert.Contains(t, out.String(), "Signed in as ada@lab.it")
	assert.Contains(t, out.String(), "no items")
	assert.True(t, second.isLoggedIn())
}

func TestApp_AnonymousWriteHintsLogin(t *testing.T) {
	ctx := context.Background()
	env := newAppEnv(t)

	a, out := env.app("Tag", "")
	require.Error(t, a.AddTag(ctx))
	assert.Contains(t, out.String(), "try logout and login again")
}

func TestApp_DeleteNeedsConfirmation(t *testing.T) {
	ctx := context.Background()
	env := newAppEnv(t)

	a, _ := env.app("n")
	assert.NoError(t, a.DeleteItem(ctx, "itm-1"))
}

func TestApp_FailedAddKeepsValuesForRetry(t *testing.T) {
	stubPassword(t, "secret")
	ctx := context.Background()
	env := newAppEnv(t)

	a, out := env.app(
		"Drill", "cordless", "3", "1", // add, rejected while anonymous
		"ada@lab.it", "Ada", // register
		"", "", "", "", // add again, keeping every default
	)

	require.Error(t, a.AddItem(ctx))
	require.NotNil(t, a.pendingAdd)

	require.NoError(t, a.Register(ctx))
	out.Reset()
	require.NoError(t, a.AddItem(ctx))

	text := out.String()
	assert.Contains(t, text, "Name [Drill]")
	assert.Contains(t, text, "Description [cordless]")
	assert.Contains(t, text, "Quantity [3]")
	assert.Contains(t, text, "Used [1]")

	items := a.dashboard.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Drill", items[0].Name)
	assert.Equal(t, "cordless", items[0].Description)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 1, items[0].Used)
	assert.Nil(t, a.pendingAdd)
}

func TestApp_FailedTagAndEditKeepValues(t *testing.T) {
	stubPassword(t, "secret")
	ctx := context.Background()
	env := newAppEnv(t)

	a, out := env.app(
		"ada@lab.it", "Ada", // register
		"Drill", "", "2", "0", // add
		"Hammer", "", "5", // edit, rejected after logout
		"Tools", "#00ff00", // tag-add, rejected after logout
		"secret@lab.it", "Bob", // register again
		"", "", "", // edit again with the kept values
		"", "", // tag-add again with the kept values
	)

	require.NoError(t, a.Register(ctx))
	require.NoError(t, a.AddItem(ctx))
	id := a.dashboard.Items()[0].ID

	require.NoError(t, a.Logout(ctx))
	require.Error(t, a.EditItem(ctx, id))
	require.Error(t, a.AddTag(ctx))

	require.NoError(t, a.Register(ctx))
	out.Reset()
	require.NoError(t, a.EditItem(ctx, id))
	require.NoError(t, a.AddTag(ctx))

	text := out.String()
	assert.Contains(t, text, "Name [Hammer]")
	assert.Contains(t, text, "Quantity [5]")
	assert.Contains(t, text, "Tag name [Tools]")
	assert.Contains(t, text, "Color [#00ff00]")

	it := a.dashboard.Items()[0]
	assert.Equal(t, "Hammer", it.Name)
	assert.Equal(t, 5, it.Quantity)
	tags := a.dashboard.Tags()
	require.Len(t, tags, 1)
	assert.Equal(t, "Tools", tags[0].Name)
	assert.Equal(t, "#00ff00", tags[0].Color)
	assert.Empty(t, a.pendingEdit)
	assert.Nil(t, a.pendingTag)
}
