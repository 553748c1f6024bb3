package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/abiosoft/ishell"
	"github.com/ddvk/rmscribble/eraser"
	flag "github.com/ogier/pflag"
)

func rmCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "rm",
		Help:      "delete an element, or with -s everything it covers as if it was a scribble",
		Completer: createEntryCompleter(ctx),
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("rm", flag.ContinueOnError)
			asScribble := flagSet.BoolP("scribble", "s", false, "also remove the elements inside")
			margin := flagSet.Float64P("margin", "m", eraser.DefaultMargin, "containment margin")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}
			argRest := flagSet.Args()
			if len(argRest) < 1 {
				c.Err(errors.New("missing param"))
				return
			}

			bg := context.Background()
			defer func() {
				if err := ctx.Doc.Save(); err != nil {
					c.Err(err)
				}
			}()
			for _, id := range argRest {
				el, err := ctx.element(id)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println("deleting: ", el.ID)

				if !*asScribble {
					if err := ctx.Doc.RecycleElement(bg, el.ID); err != nil {
						c.Err(fmt.Errorf("failed to delete element, %v", err))
						return
					}
					continue
				}

				siblings, err := ctx.elements(el.PageNum)
				if err != nil {
					c.Err(err)
					return
				}
				res, err := eraser.DeleteScribbleAndOverlaps(bg, ctx.Doc, el, siblings, *margin)
				if err != nil {
					c.Err(fmt.Errorf("failed to delete element, %v", err))
					return
				}
				c.Printf("removed %d elements\n", res.DeletedCount)
			}
		},
	}
}
