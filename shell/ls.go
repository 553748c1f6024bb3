package shell

import (
	"github.com/abiosoft/ishell"
	flag "github.com/ogier/pflag"
)

func lsCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "ls",
		Help: "list the elements of a page",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("ls", flag.ContinueOnError)
			page := flagSet.IntP("page", "p", ctx.Doc.CurrentPage(), "page number")
			jsonOut := flagSet.BoolP("json", "j", ctx.JSONOutput, "json output")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}

			elements, err := ctx.elements(*page)
			if err != nil {
				c.Err(err)
				return
			}

			if *jsonOut {
				if err := displayElementsJSON(c, elements); err != nil {
					c.Err(err)
				}
				return
			}

			for _, el := range elements {
				line := ElementToJSON(el)
				marker := " "
				if line.Scribble {
					marker = "*"
				}
				c.Printf("%s %s\t%-8s %4d points  [%.0f,%.0f %.0f,%.0f]\n",
					marker, line.ID, line.Type, line.Points,
					line.Bounds.MinX, line.Bounds.MinY, line.Bounds.MaxX, line.Bounds.MaxY)
			}
		},
	}
}
