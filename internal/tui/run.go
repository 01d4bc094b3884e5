package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/folio/internal/batch"
	"github.com/Veraticus/folio/internal/model"
)

// RunSellEditor shows the editor until the user confirms or cancels. It
// returns the confirmed orders, or false when cancelled.
func RunSellEditor(ctx context.Context, plan *batch.SellPlan, date model.Date) ([]model.SellOrder, bool, error) {
	editor := NewSellEditor(plan, date)
	if !model.IsOpen(editor.Mode()) {
		return nil, false, nil
	}

	if _, err := tea.NewProgram(editor, tea.WithContext(ctx)).Run(); err != nil {
		return nil, false, fmt.Errorf("sell editor: %w", err)
	}

	orders, ok := editor.Result()
	return orders, ok, nil
}
