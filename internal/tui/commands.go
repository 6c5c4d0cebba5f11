package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/packcal/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

const storageTimeout = 10 * time.Second

// loadPurchases reads the purchase log from storage.
func (m Model) loadPurchases() tea.Cmd {
	store := m.config.Storage
	return func() tea.Msg {
		if store == nil {
			return purchasesLoadedMsg{purchases: []model.PurchaseRecord{}}
		}

		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		purchases, err := store.ListPurchases(ctx)
		return purchasesLoadedMsg{purchases: purchases, err: err}
	}
}

// recordPurchase appends a purchase of pack at now.
func (m Model) recordPurchase(pack model.PackDefinition, now time.Time) tea.Cmd {
	store := m.config.Storage
	return func() tea.Msg {
		if store == nil {
			return purchaseRecordedMsg{pack: pack, err: fmt.Errorf("storage not configured")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		err := store.RecordPurchase(ctx, model.NewPurchaseRecord(pack.ID, now))
		return purchaseRecordedMsg{pack: pack, err: err}
	}
}
