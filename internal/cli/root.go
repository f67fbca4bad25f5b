package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bridge/internal/preferences"
)

const onboardingText = `Welcome to Bridge
Clear your mind by capturing tasks and thoughts instantly. Every capture
becomes a reminder in the list named after its category.
Type 'help' for commands.`

func (a *App) status() string {
	return fmt.Sprintf(" (%d categories)", len(a.categories.List()))
}

// Root shows onboarding on the first launch, then runs the prompt.
func (a *App) Root(ctx context.Context) {
	p := a.prefs.Load(ctx)
	if p.IsFirstLaunch {
		fmt.Fprintln(a.out, onboardingText)
		if err := a.prefs.Set(ctx, preferences.KeyIsFirstLaunch, false); err != nil {
			a.log.Warn(ctx, "could not clear first launch flag", "error", err)
		}
	} else {
		fmt.Fprintln(a.out, "Bridge (type 'help' for commands)")
	}

	runREPL(ctx, a, a.status, a.reader, stdinIsTerminal())
}
