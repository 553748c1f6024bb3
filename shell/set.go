package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"
	"github.com/ddvk/rmscribble/gesture"
	"github.com/ddvk/rmscribble/settings"
)

func settingNames() []string {
	names := []string{"margin"}
	for _, k := range gesture.Kinds {
		names = append(names, k.SettingKey())
	}
	return names
}

func setCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "set",
		Help: "store a setting: set <scribbleToX|margin> <value>",
		Completer: func([]string) []string {
			return settingNames()
		},
		Func: func(c *ishell.Context) {
			if ctx.Store == nil {
				c.Err(errors.New("no settings file"))
				return
			}
			if len(c.Args) != 2 {
				c.Err(errors.New("usage: set <name> <value>"))
				return
			}
			name, value := c.Args[0], c.Args[1]

			var apply func(*settings.Overrides)
			if name == "margin" {
				margin, err := strconv.ParseFloat(value, 64)
				if err != nil || margin < 0 {
					c.Err(fmt.Errorf("invalid margin %q", value))
					return
				}
				apply = func(o *settings.Overrides) { o.SetMargin(margin) }
			} else {
				kind, err := gesture.ParseKind(name)
				if err != nil {
					c.Err(err)
					return
				}
				enabled, err := strconv.ParseBool(value)
				if err != nil {
					c.Err(fmt.Errorf("invalid value %q", value))
					return
				}
				apply = func(o *settings.Overrides) { o.Set(kind, enabled) }
			}

			if err := ctx.Store.Update(context.Background(), apply); err != nil {
				c.Err(fmt.Errorf("failed to save settings, %v", err))
				return
			}

			c.Println("OK")
		},
	}
}

func settingsCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "settings",
		Help: "show the effective settings",
		Func: func(c *ishell.Context) {
			s, err := settings.Resolve(context.Background(), ctx.settingsStore())
			if err != nil {
				c.Err(err)
				return
			}
			if ctx.JSONOutput {
				printJSON(c, s)
				return
			}
			for _, k := range gesture.Kinds {
				c.Printf("%-20s %v\n", k.SettingKey(), s.IsEnabled(k))
			}
			c.Printf("%-20s %v\n", "margin", s.Margin)
		},
	}
}
