package shell

import (
	"errors"

	"github.com/abiosoft/ishell"
	"github.com/ddvk/rmscribble/scribble"
)

func classifyCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "classify",
		Help:      "show the scribble metrics of an element",
		Completer: createEntryCompleter(ctx),
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(errors.New("missing element id"))
				return
			}

			for _, id := range c.Args {
				el, err := ctx.element(id)
				if err != nil {
					c.Err(err)
					return
				}
				if !el.IsStroke() {
					c.Printf("%s: not a stroke\n", id)
					continue
				}

				m, err := scribble.Analyze(el.Stroke.Points)
				if err != nil {
					c.Printf("%s: %v\n", id, err)
					continue
				}

				if ctx.JSONOutput {
					printJSON(c, map[string]interface{}{
						"id":            id,
						"points":        m.Points,
						"totalDistance": m.TotalDistance,
						"diagonal":      m.Diagonal(),
						"xInversions":   m.XInversions,
						"yInversions":   m.YInversions,
						"scribble":      m.IsScribble(),
					})
					continue
				}

				c.Printf("%s\n", id)
				c.Printf("  points:     %d (min %d)\n", m.Points, scribble.MinPoints)
				c.Printf("  distance:   %.1f, diagonal %.1f (dense: %v)\n", m.TotalDistance, m.Diagonal(), m.Dense())
				c.Printf("  inversions: x %d, y %d (jittery: %v)\n", m.XInversions, m.YInversions, m.Jittery())
				c.Printf("  scribble:   %v\n", m.IsScribble())
			}
		},
	}
}
