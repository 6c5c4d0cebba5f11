package tui

import "github.com/Veraticus/packcal/internal/model"

// purchasesLoadedMsg carries a fresh snapshot of the purchase log.
type purchasesLoadedMsg struct {
	err       error
	purchases []model.PurchaseRecord
}

// purchaseRecordedMsg reports the outcome of marking a pack as bought.
type purchaseRecordedMsg struct {
	err  error
	pack model.PackDefinition
}
