package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bridge/internal/common"
	"github.com/dmitrijs2005/bridge/internal/preferences"
)

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (a *App) Settings(ctx context.Context) error {
	p := a.prefs.Load(ctx)
	for _, key := range preferences.Keys {
		v, err := p.Value(key)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%-14s %s\n", key, onOff(v))
	}
	fmt.Fprintf(a.out, "storage        %s\n", a.config.StorageBackend)
	return nil
}

// Set handles "set <key> <on|off>".
func (a *App) Set(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: set <key> <on|off>", common.ErrorValidation)
	}
	var v bool
	switch args[1] {
	case "on", "true", "yes":
		v = true
	case "off", "false", "no":
	default:
		return fmt.Errorf("%w: %q is not on or off", common.ErrorValidation, args[1])
	}
	if err := a.prefs.Set(ctx, args[0], v); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s is %s.\n", args[0], onOff(v))
	return nil
}
