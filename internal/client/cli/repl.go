package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Reload(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Search(ctx context.Context) error
	Filter(ctx context.Context, query string) error
	ToggleTag(ctx context.Context, id string) error
	ClearTags(ctx context.Context) error
	Tags(ctx context.Context) error

	AddItem(ctx context.Context) error
	EditItem(ctx context.Context, id string) error
	DeleteItem(ctx context.Context, id string) error
	AdjustQuantity(ctx context.Context, id string, delta int) error
	AdjustUsed(ctx context.Context, id string, delta int) error
	AddTag(ctx context.Context) error
	DeleteTag(ctx context.Context, id string) error
}

const (
	helpAnonymous = "Available commands: register, login, reload, (l)ist, show <id>, search, filter <text>, tag <id>, clear, tags, exit"
	helpSignedIn  = "Available commands: (l)ist, show <id>, reload, search, filter <text>, tag <id>, clear, tags, " +
		"add, edit <id>, delete <id>, qty+ <id>, qty- <id>, used+ <id>, used- <id>, tag-add, tag-del <id>, logout, exit"
)

// protected lists commands that need a signed-in session.
var protected = map[string]bool{
	"add": true, "edit": true, "delete": true,
	"qty+": true, "qty-": true, "used+": true, "used-": true,
	"tag-add": true, "tag-del": true, "logout": true,
}

// needsID lists commands that take an item or tag id.
var needsID = map[string]bool{
	"show": true, "tag": true, "edit": true, "delete": true,
	"qty+": true, "qty-": true, "used+": true, "used-": true, "tag-del": true,
}

// runREPL starts a simple read–eval–print loop for the inventory CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Commands that change the inventory are only offered while signed in.
// Any errors returned by command handlers are ignored here; handlers report
// their own failures as notifications.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("inv %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if protected[cmd] && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}
		if needsID[cmd] && len(args) == 0 {
			printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			_ = a.Register(ctx)
		case "login":
			_ = a.Login(ctx)
		case "logout":
			_ = a.Logout(ctx)

		case "reload":
			_ = a.Reload(ctx)
		case "l", "list":
			_ = a.List(ctx)
		case "show":
			_ = a.Show(ctx, args[0])
		case "search":
			_ = a.Search(ctx)
		case "filter":
			_ = a.Filter(ctx, strings.Join(args, " "))
		case "tag":
			_ = a.ToggleTag(ctx, args[0])
		case "clear":
			_ = a.ClearTags(ctx)
		case "tags":
			_ = a.Tags(ctx)

		case "add":
			_ = a.AddItem(ctx)
		case "edit":
			_ = a.EditItem(ctx, args[0])
		case "delete":
			_ = a.DeleteItem(ctx, args[0])
		case "qty+":
			_ = a.AdjustQuantity(ctx, args[0], 1)
		case "qty-":
			_ = a.AdjustQuantity(ctx, args[0], -1)
		case "used+":
			_ = a.AdjustUsed(ctx, args[0], 1)
		case "used-":
			_ = a.AdjustUsed(ctx, args[0], -1)
		case "tag-add":
			_ = a.AddTag(ctx)
		case "tag-del":
			_ = a.DeleteTag(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
