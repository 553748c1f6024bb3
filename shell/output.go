package shell

import (
	"encoding/json"

	"github.com/abiosoft/ishell"
	"github.com/ddvk/rmscribble/geometry"
	"github.com/ddvk/rmscribble/host"
	"github.com/ddvk/rmscribble/scribble"
)

type ElementJSON struct {
	ID       string               `json:"id"`
	Type     string               `json:"type"`
	Page     int                  `json:"page"`
	Points   int                  `json:"points"`
	Bounds   geometry.BoundingBox `json:"bounds"`
	Scribble bool                 `json:"scribble"`
}

func ElementToJSON(el host.Element) ElementJSON {
	out := ElementJSON{
		ID:   el.ID,
		Type: el.Type.String(),
		Page: el.PageNum,
	}
	if el.Stroke != nil {
		out.Points = len(el.Stroke.Points)
		out.Scribble = scribble.Classify(el.Stroke.Points)
	}
	if b, err := el.Bounds(); err == nil {
		out.Bounds = b
	}
	return out
}

func displayElementsJSON(c *ishell.Context, elements []host.Element) error {
	out := make([]ElementJSON, len(elements))
	for i, el := range elements {
		out[i] = ElementToJSON(el)
	}
	return printJSON(c, out)
}

func printJSON(c *ishell.Context, v interface{}) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	c.Println(string(output))
	return nil
}
