// Package tui holds the interactive terminal views.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/folio/internal/batch"
	"github.com/Veraticus/folio/internal/cli"
	"github.com/Veraticus/folio/internal/model"
	"github.com/Veraticus/folio/internal/tui/themes"
)

// SellEditor edits one price per symbol of a bulk sell. Its mode is
// Editing{symbol} while typing, Confirming with the flattened orders once the
// user asks to review, and Closed when finished or cancelled.
type SellEditor struct {
	mode     model.Mode
	plan     *batch.SellPlan
	theme    themes.Theme
	date     model.Date
	orders   []model.SellOrder
	inputs   []textinput.Model
	symbols  []string
	keymap   KeyMap
	focus    int
	accepted bool
}

// NewSellEditor creates an editor over plan. Inputs start at the plan's
// default prices.
func NewSellEditor(plan *batch.SellPlan, date model.Date) *SellEditor {
	e := &SellEditor{
		plan:   plan,
		date:   date,
		theme:  themes.Default,
		keymap: DefaultKeyMap(),
	}
	for _, g := range plan.Groups() {
		in := textinput.New()
		in.Prompt = "₹ "
		in.Placeholder = "price"
		in.CharLimit = 12
		in.Width = 12
		if g.Price > 0 {
			in.SetValue(strconv.FormatFloat(g.Price, 'f', 2, 64))
		}
		e.inputs = append(e.inputs, in)
		e.symbols = append(e.symbols, g.Symbol)
	}
	if len(e.inputs) > 0 {
		e.inputs[0].Focus()
		e.mode = model.Editing{ID: e.symbols[0]}
	} else {
		e.mode = model.Closed{}
	}
	return e
}

// Mode returns the current workflow state.
func (e *SellEditor) Mode() model.Mode {
	return e.mode
}

// CanSubmit reports whether every symbol has a positive price.
func (e *SellEditor) CanSubmit() bool {
	return e.plan.Validate() == nil
}

// Result returns the confirmed orders, or false if the user cancelled.
func (e *SellEditor) Result() ([]model.SellOrder, bool) {
	return e.orders, e.accepted
}

// Init implements tea.Model.
func (e *SellEditor) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (e *SellEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return e, e.updateFocused(msg)
	}

	if key.Matches(keyMsg, e.keymap.Quit) {
		e.close(false)
		return e, tea.Quit
	}

	switch m := e.mode.(type) {
	case model.Confirming[[]model.SellOrder]:
		switch {
		case key.Matches(keyMsg, e.keymap.Confirm):
			e.orders = m.Data
			e.close(true)
			return e, tea.Quit
		case key.Matches(keyMsg, e.keymap.Back):
			e.mode = model.Editing{ID: e.symbols[e.focus]}
		}
		return e, nil

	case model.Editing:
		switch {
		case key.Matches(keyMsg, e.keymap.Cancel):
			e.close(false)
			return e, tea.Quit
		case key.Matches(keyMsg, e.keymap.Submit):
			e.review()
			return e, nil
		case key.Matches(keyMsg, e.keymap.Down):
			return e, e.moveFocus(1)
		case key.Matches(keyMsg, e.keymap.Up):
			return e, e.moveFocus(-1)
		}
		return e, e.updateFocused(msg)
	}
	return e, nil
}

func (e *SellEditor) review() {
	if !e.CanSubmit() {
		return
	}
	orders, err := e.plan.Flatten(e.date)
	if err != nil {
		return
	}
	e.mode = model.Confirming[[]model.SellOrder]{Data: orders}
}

func (e *SellEditor) close(accepted bool) {
	e.accepted = accepted
	if !accepted {
		e.orders = nil
	}
	e.mode = model.Closed{}
}

func (e *SellEditor) moveFocus(delta int) tea.Cmd {
	e.inputs[e.focus].Blur()
	e.focus = (e.focus + delta + len(e.inputs)) % len(e.inputs)
	e.mode = model.Editing{ID: e.symbols[e.focus]}
	return e.inputs[e.focus].Focus()
}

// updateFocused feeds msg to the focused input and mirrors its value into the plan.
func (e *SellEditor) updateFocused(msg tea.Msg) tea.Cmd {
	if len(e.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	e.inputs[e.focus], cmd = e.inputs[e.focus].Update(msg)

	price, err := strconv.ParseFloat(strings.TrimSpace(e.inputs[e.focus].Value()), 64)
	if err != nil || !batch.ValidPrice(price) {
		price = 0
	}
	_ = e.plan.SetPrice(e.symbols[e.focus], price)
	return cmd
}

// View implements tea.Model.
func (e *SellEditor) View() string {
	if !model.IsOpen(e.mode) {
		return ""
	}

	var b strings.Builder
	b.WriteString(e.theme.Title.Render(fmt.Sprintf("Sell %d lots on %s", len(e.plan.Lots()), e.date)))
	b.WriteString("\n")

	header := fmt.Sprintf("%-14s %6s %12s  %-18s %16s", "Symbol", "Lots", "Quantity", "Price", "Proceeds")
	b.WriteString(e.theme.Header.Render(header))
	b.WriteString("\n")

	total := 0.0
	for i, g := range e.plan.Groups() {
		symbol := e.theme.Normal.Render(fmt.Sprintf("%-14s", g.Symbol))
		if i == e.focus {
			symbol = e.theme.Focused.Render(fmt.Sprintf("%-14s", g.Symbol))
		}
		proceeds := "-"
		if g.Price > 0 {
			proceeds = cli.FormatMoney(g.Proceeds())
			total += g.Proceeds()
		}
		fmt.Fprintf(&b, "%s %6d %12.2f  %-18s %16s\n", symbol, len(g.Lots), g.Quantity(), e.inputs[i].View(), proceeds)
	}
	b.WriteString("\n")

	switch m := e.mode.(type) {
	case model.Confirming[[]model.SellOrder]:
		b.WriteString(e.theme.Warning.Render(fmt.Sprintf("Sell %d lots for %s? enter/y to sell, esc to go back", len(m.Data), cli.FormatMoney(total))))
	default:
		if missing := e.plan.MissingPrices(); len(missing) > 0 {
			b.WriteString(e.theme.Disabled.Render("review"))
			b.WriteString(" ")
			b.WriteString(e.theme.Error.Render("set a price for " + strings.Join(missing, ", ")))
		} else {
			b.WriteString(e.theme.Success.Render(fmt.Sprintf("enter to review, total %s", cli.FormatMoney(total))))
		}
		b.WriteString("\n")
		b.WriteString(e.theme.Muted.Render("tab/↓ next · shift+tab/↑ previous · esc cancel"))
	}

	return e.theme.Box.Render(b.String())
}
