package cli

import (
	"bytes"
	"strings"

	"github.com/alexanderramin/plantrack/internal/cli/formatter"
)

// captureCobraOutput runs args through a fresh cobra tree bound to app and
// returns everything it printed, with errors rendered inline.
func captureCobraOutput(app *App, args []string) string {
	root := NewRootCmd(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	root.SilenceUsage = true
	root.SilenceErrors = true
	root.DisableSuggestions = true

	if err := root.Execute(); err != nil {
		if buf.Len() > 0 && !strings.HasSuffix(buf.String(), "\n") {
			buf.WriteString("\n")
		}
		buf.WriteString(shellError(err))
		if strings.Contains(err.Error(), "unknown command") && len(args) > 0 {
			if hint := suggestAlternatives(app, args[0]); hint != "" {
				buf.WriteString("\n" + hint)
			}
		}
	}
	return buf.String()
}

// suggestAlternatives lists commands close to an unrecognized input.
func suggestAlternatives(app *App, input string) string {
	root := NewRootCmd(app)
	// Cobra only applies its default distance when suggestions are enabled.
	root.SuggestionsMinimumDistance = 2
	matches := root.SuggestionsFor(input)
	if len(matches) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(formatter.Dim("Did you mean:"))
	for _, m := range matches {
		b.WriteString("\n  " + formatter.StyleGreen.Render(m))
	}
	return b.String()
}
