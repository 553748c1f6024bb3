package shell

import (
	"errors"
	"fmt"
	"os"

	"github.com/abiosoft/ishell"
	"github.com/ddvk/rmscribble/annotations"
	"github.com/ddvk/rmscribble/eraser"
	flag "github.com/ogier/pflag"
)

func exportCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "export",
		Help: "render the document to a pdf, marking scribble areas",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("export", flag.ContinueOnError)
			hide := flagSet.BoolP("hide", "H", false, "do not mark scribble areas")
			margin := flagSet.Float64P("margin", "m", eraser.DefaultMargin, "margin drawn around scribbles")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}
			argRest := flagSet.Args()
			if len(argRest) != 1 {
				c.Err(errors.New("missing output file"))
				return
			}

			generator := annotations.CreatePdfGenerator(ctx.Doc, argRest[0], annotations.PdfGeneratorOptions{
				HideScribbleAreas: *hide,
				Margin:            *margin,
			})
			if err := generator.Generate(); err != nil {
				c.Err(fmt.Errorf("failed to export, %v", err))
				return
			}
			c.Println("written: ", argRest[0])
		},
	}
}

func thumbCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "thumb",
		Help: "write a png preview of the current page",
		Func: func(c *ishell.Context) {
			flagSet := flag.NewFlagSet("thumb", flag.ContinueOnError)
			width := flagSet.IntP("width", "w", 351, "image width")
			if err := flagSet.Parse(c.Args); err != nil {
				if err != flag.ErrHelp {
					c.Err(err)
				}
				return
			}
			argRest := flagSet.Args()
			if len(argRest) != 1 {
				c.Err(errors.New("missing output file"))
				return
			}
			if *width <= 0 {
				c.Err(errors.New("invalid width"))
				return
			}

			page, ok := ctx.Doc.Page(ctx.Doc.CurrentPage())
			if !ok {
				c.Err(fmt.Errorf("no page %d", ctx.Doc.CurrentPage()))
				return
			}

			f, err := os.Create(argRest[0])
			if err != nil {
				c.Err(err)
				return
			}
			defer f.Close()

			if err := annotations.WritePNG(f, page, uint(*width)); err != nil {
				c.Err(err)
				return
			}
			c.Println("written: ", argRest[0])
		},
	}
}
