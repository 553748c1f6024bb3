package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/abiosoft/ishell"
	"github.com/ddvk/rmscribble/geometry"
	"github.com/ddvk/rmscribble/host"
)

// the area the settings screen test button draws into
var testArea = geometry.BoundingBox{MinX: 100, MinY: 100, MaxX: 500, MaxY: 200}

func testCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "test",
		Help: "insert a test polygon on the current page",
		Func: func(c *ishell.Context) {
			g, err := ctx.Doc.InsertGeometry(context.Background(), host.PolygonFromArea(testArea))
			if err != nil {
				c.Err(fmt.Errorf("failed to insert geometry, %v", err))
				return
			}
			if err := ctx.Doc.Save(); err != nil {
				c.Err(err)
				return
			}
			c.Println("inserted: ", g.ID)
		},
	}
}

func createCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "create",
		Help: "create an empty element: create <stroke|geometry>",
		Completer: func([]string) []string {
			return []string{"stroke", "geometry"}
		},
		Func: func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(errors.New("missing element type"))
				return
			}

			var typ host.ElementType
			switch c.Args[0] {
			case "stroke":
				typ = host.TypeStroke
			case "geometry":
				typ = host.TypeGeometry
			default:
				c.Err(fmt.Errorf("unknown element type %q", c.Args[0]))
				return
			}

			el, err := ctx.Doc.CreateElement(context.Background(), typ)
			if err != nil {
				c.Err(err)
				return
			}
			c.Println("created: ", el.ID)
		},
	}
}
