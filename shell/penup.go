package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/abiosoft/ishell"
	"github.com/ddvk/rmscribble/host"
)

func penupCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "penup",
		Help:      "deliver a pen-up event for the given elements",
		Completer: createEntryCompleter(ctx),
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(errors.New("missing element id"))
				return
			}

			batch := make([]host.Element, 0, len(c.Args))
			for _, id := range c.Args {
				el, err := ctx.element(id)
				if err != nil {
					c.Err(err)
					return
				}
				batch = append(batch, el)
			}

			report, err := ctx.Dispatcher.HandlePenUp(context.Background(), batch)
			if report.Changed() {
				if saveErr := ctx.Doc.Save(); saveErr != nil {
					c.Err(saveErr)
					return
				}
			}
			if err != nil {
				c.Err(fmt.Errorf("pen-up failed, %v", err))
				return
			}
			if report.Duplicate {
				c.Println("duplicate event, ignored")
				return
			}

			for _, o := range report.Outcomes {
				switch {
				case o.Skipped:
					c.Printf("%s: recognized, skipped\n", o.Kind)
				case o.Recognized:
					c.Printf("%s: recognized, %d elements removed\n", o.Kind, o.Deleted)
				default:
					c.Printf("%s: not recognized\n", o.Kind)
				}
			}
		},
	}
}
