package shell

import (
	"context"
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/ddvk/rmscribble/dispatch"
	"github.com/ddvk/rmscribble/filehost"
	"github.com/ddvk/rmscribble/host"
	"github.com/ddvk/rmscribble/settings"
	"github.com/pkg/errors"
)

// ShellCtxt is the state shared by the shell commands.
type ShellCtxt struct {
	Doc        *filehost.Document
	Dispatcher *dispatch.Dispatcher
	Store      *settings.FileStore
	JSONOutput bool
}

func (ctx *ShellCtxt) prompt() string {
	return fmt.Sprintf("[%s p%d]>", ctx.Doc.Dir(), ctx.Doc.CurrentPage())
}

func (ctx *ShellCtxt) elements(page int) ([]host.Element, error) {
	return ctx.Doc.Elements(context.Background(), page, ctx.Doc.Dir())
}

func (ctx *ShellCtxt) element(id string) (host.Element, error) {
	elements, err := ctx.elements(ctx.Doc.CurrentPage())
	if err != nil {
		return host.Element{}, err
	}
	for _, el := range elements {
		if el.ID == id {
			return el, nil
		}
	}
	return host.Element{}, errors.Errorf("no element %s on page %d", id, ctx.Doc.CurrentPage())
}

func (ctx *ShellCtxt) settingsStore() settings.Store {
	if ctx.Store == nil {
		return nil
	}
	return ctx.Store
}

func createEntryCompleter(ctx *ShellCtxt) func([]string) []string {
	return func(args []string) []string {
		elements, err := ctx.elements(ctx.Doc.CurrentPage())
		if err != nil {
			return nil
		}
		ids := make([]string, 0, len(elements))
		for _, el := range elements {
			ids = append(ids, el.ID)
		}
		return ids
	}
}

func pageCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "page",
		Help: "select the current page",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Println(ctx.Doc.CurrentPage())
				return
			}
			n, err := strconv.Atoi(c.Args[0])
			if err != nil || n < 0 {
				c.Err(errors.New("invalid page number"))
				return
			}
			ctx.Doc.SetCurrentPage(n)
			c.SetPrompt(ctx.prompt())
		},
	}
}

func saveCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "save",
		Help: "write modified pages",
		Func: func(c *ishell.Context) {
			if err := ctx.Doc.Save(); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		},
	}
}

// New builds the shell with every command registered.
func New(ctx *ShellCtxt) *ishell.Shell {
	shell := ishell.New()
	shell.SetPrompt(ctx.prompt())

	shell.AddCmd(lsCmd(ctx))
	shell.AddCmd(pageCmd(ctx))
	shell.AddCmd(classifyCmd(ctx))
	shell.AddCmd(penupCmd(ctx))
	shell.AddCmd(rmCmd(ctx))
	shell.AddCmd(settingsCmd(ctx))
	shell.AddCmd(setCmd(ctx))
	shell.AddCmd(testCmd(ctx))
	shell.AddCmd(createCmd(ctx))
	shell.AddCmd(exportCmd(ctx))
	shell.AddCmd(thumbCmd(ctx))
	shell.AddCmd(saveCmd(ctx))

	return shell
}

// RunShell runs args as a single command, or starts the interactive
// shell when there are none.
func RunShell(ctx *ShellCtxt, args []string) error {
	shell := New(ctx)

	if len(args) > 0 {
		return shell.Process(args...)
	}

	shell.Printf("rmscribble shell, document: %s, pages: %v\n", ctx.Doc.Dir(), ctx.Doc.Pages())
	shell.Run()

	return nil
}
