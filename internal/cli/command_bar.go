package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/plantrack/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
)

// commandBar is the persistent text input at the bottom of the TUI.
// It handles command entry, autocomplete suggestions, and history navigation.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	focused bool

	history    []string
	historyIdx int
}

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 500
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	hist := loadHistoryFromPath(state.App.HistoryPath)

	return commandBar{
		input:      ti,
		state:      state,
		history:    hist,
		historyIdx: len(hist),
	}
}

func (c *commandBar) Focus() {
	c.focused = true
	c.input.Focus()
}

func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

func (c *commandBar) Focused() bool {
	return c.focused
}

// SetWidth updates the input width for terminal resizing.
func (c *commandBar) SetWidth(w int) {
	c.input.Width = w - len(c.promptPrefixPlain()) - 1
}

// Update handles key messages when the command bar is focused.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.input.SetSuggestions(nil)
		if input == "" {
			return nil
		}
		c.addHistory(input)
		return c.executeCommand(input)

	case tea.KeyUp:
		c.historyUp()
		return nil

	case tea.KeyDown:
		c.historyDown()
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.updateSuggestions()
		return cmd
	}
}

// UpdateNonKey handles non-key messages (e.g., cursor blink).
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

func (c *commandBar) View() string {
	if !c.focused {
		return c.promptPrefix() + formatter.Dim("press : to type a command")
	}
	return c.promptPrefix() + c.input.View()
}

func (c *commandBar) promptPrefix() string {
	return formatter.StylePurple.Render("plantrack") + " " + formatter.Dim("❯") + " "
}

func (c *commandBar) promptPrefixPlain() string {
	return "plantrack > "
}

// ── history ──────────────────────────────────────────────────────────────────

func (c *commandBar) addHistory(line string) {
	c.history = append(c.history, line)
	c.historyIdx = len(c.history)
	appendHistoryToPath(c.state.App.HistoryPath, line)
}

func (c *commandBar) historyUp() {
	if c.historyIdx > 0 {
		c.historyIdx--
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	}
}

func (c *commandBar) historyDown() {
	if c.historyIdx < len(c.history)-1 {
		c.historyIdx++
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	} else {
		c.historyIdx = len(c.history)
		c.input.SetValue("")
	}
}

// ── suggestions ──────────────────────────────────────────────────────────────

// shellCommands are handled by the shell itself rather than the cobra tree.
var shellCommands = []string{"open", "back", "home", "year", "help", "clear", "exit", "quit"}

func allCommandNames() []string {
	names := append([]string(nil), shellCommands...)
	for _, cmd := range NewRootCmd(&App{}).Commands() {
		if cmd.Name() == "shell" || cmd.Hidden {
			continue
		}
		names = append(names, cmd.Name())
	}
	sort.Strings(names)
	return names
}

func subcommandNames() map[string][]string {
	out := map[string][]string{"open": {"plan", "activity", "worker"}}
	for _, cmd := range NewRootCmd(&App{}).Commands() {
		for _, sub := range cmd.Commands() {
			out[cmd.Name()] = append(out[cmd.Name()], sub.Name())
		}
	}
	return out
}

// updateSuggestions completes the word under the cursor: a command name,
// then a subcommand, then a plan ID. Suggestions are whole lines because
// textinput matches them against the full value.
func (c *commandBar) updateSuggestions() {
	text := c.input.Value()
	fields := strings.Fields(text)
	if len(fields) == 0 {
		c.input.SetSuggestions(nil)
		return
	}
	if strings.HasSuffix(text, " ") {
		fields = append(fields, "")
	}
	cur := fields[len(fields)-1]
	cmd := strings.ToLower(fields[0])

	var pool []string
	switch {
	case strings.HasPrefix(cur, "-"):
		pool = flagNames(fields[:len(fields)-1])
	case len(fields) == 1:
		pool = allCommandNames()
	case len(fields) == 2:
		pool = subcommandNames()[cmd]
	case len(fields) == 3:
		sub := strings.ToLower(fields[1])
		if (cmd == "open" && sub == "plan") || ((cmd == "plan" || cmd == "activity") && sub != "list" && sub != "add") {
			pool = c.planIDSuggestions()
		}
	}

	lead := strings.Join(fields[:len(fields)-1], " ")
	var lines []string
	for _, s := range filterSuggestions(pool, cur) {
		if lead != "" {
			s = lead + " " + s
		}
		lines = append(lines, s)
	}
	c.input.SetSuggestions(lines)
}

// flagNames lists the long flags, inherited ones included, of the command
// named by the leading words of words.
func flagNames(words []string) []string {
	var path []string
	for _, w := range words {
		if strings.HasPrefix(w, "-") {
			break
		}
		path = append(path, w)
	}
	root := NewRootCmd(&App{})
	target, _, err := root.Find(path)
	if err != nil {
		return nil
	}

	seen := map[string]bool{}
	var names []string
	collect := func(f *pflag.Flag) {
		if f.Hidden || seen[f.Name] {
			return
		}
		seen[f.Name] = true
		names = append(names, "--"+f.Name)
	}
	target.LocalFlags().VisitAll(collect)
	target.InheritedFlags().VisitAll(collect)
	sort.Strings(names)
	return names
}

func (c *commandBar) planIDSuggestions() []string {
	if c.state.App.Plans == nil {
		return nil
	}
	plans, err := c.state.App.Plans.List(context.Background())
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(plans))
	for _, p := range plans {
		ids = append(ids, fmt.Sprintf("%d", p.ID))
	}
	return ids
}

// filterSuggestions returns the candidates that start with prefix,
// ignoring case.
func filterSuggestions(pool []string, prefix string) []string {
	if prefix == "" {
		return pool
	}
	lp := strings.ToLower(prefix)
	var result []string
	for _, s := range pool {
		if strings.HasPrefix(strings.ToLower(s), lp) {
			result = append(result, s)
		}
	}
	return result
}
