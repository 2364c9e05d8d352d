package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
)

func TestShopBuy(t *testing.T) {
	store := newMemStore()
	save := progression.DefaultSave()
	save.TotalCash = 150

	m := tea.Model(NewShopModel(Env{Store: store}, "alice", save, testRuntime))
	m = press(m, keyEnter)

	shop := m.(ShopModel)
	if got := shop.Save().TotalCash; got != 50 {
		t.Errorf("TotalCash after buying health = %d, expected 50", got)
	}
	if got := shop.Save().Upgrades.Level(progression.UpgradeHealth); got != 2 {
		t.Errorf("health level = %d, expected 2", got)
	}
	if got := store.saves["alice"]; got != shop.Save() {
		t.Errorf("stored save = %+v, expected %+v", got, shop.Save())
	}
	if shop.failed {
		t.Errorf("purchase reported failure: %s", shop.message)
	}

	// Level 2 costs 150 and only 50 is left.
	m = press(m, keyEnter)
	shop = m.(ShopModel)
	if !shop.failed || !strings.Contains(shop.message, "Not enough cash") {
		t.Errorf("message = %q, expected a not enough cash message", shop.message)
	}
	if got := shop.Save().TotalCash; got != 50 {
		t.Errorf("TotalCash after failed purchase = %d, expected 50", got)
	}
}

func TestShopWriteFailureKeepsPurchase(t *testing.T) {
	store := newMemStore()
	store.writeErr = errors.New("disk full")
	save := progression.DefaultSave()
	save.TotalCash = 1000

	// Damage is the third row.
	m := press(NewShopModel(Env{Store: store}, "bob", save, testRuntime), keyDown, keyDown, keyEnter)
	shop := m.(ShopModel)

	if got := shop.Save().Upgrades.Level(progression.UpgradeDamage); got != 2 {
		t.Errorf("damage level = %d, expected 2", got)
	}
	if !shop.failed {
		t.Error("a failed write should be reported")
	}
	if len(store.saves) != 0 {
		t.Errorf("store has %d saves, expected none", len(store.saves))
	}
}

func TestShopNavigation(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		back bool
		quit bool
	}{
		{"esc", []tea.KeyMsg{keyEsc}, true, false},
		{"back row", []tea.KeyMsg{keyDown, keyDown, keyDown, keyDown, keyDown, keyEnter}, true, false},
		{"quit", []tea.KeyMsg{runeKey("q")}, false, true},
		{"browse", []tea.KeyMsg{keyDown, keyUp, keyUp}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := press(NewShopModel(Env{}, "p", progression.DefaultSave(), testRuntime), tt.keys...).(ShopModel)
			if m.IsGoingBack() != tt.back || m.IsQuitting() != tt.quit {
				t.Errorf("IsGoingBack() = %v, IsQuitting() = %v, expected %v, %v",
					m.IsGoingBack(), m.IsQuitting(), tt.back, tt.quit)
			}
		})
	}
}

func TestShopView(t *testing.T) {
	save := progression.DefaultSave()
	save.TotalCash = 2500
	view := NewShopModel(Env{}, "p", save, testRuntime).View()

	for _, want := range []string{"UPGRADE SHOP", "Bank: $2,500", "Max Health", "100 HP", "125 HP", "Fire Rate", "250 ms"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestStatText(t *testing.T) {
	tests := []struct {
		kind     progression.UpgradeKind
		v        float64
		expected string
	}{
		{progression.UpgradeHealth, 125, "125 HP"},
		{progression.UpgradeSpeed, 5.5, "5.5 m/s"},
		{progression.UpgradeDamage, 45, "45"},
		{progression.UpgradeFireRate, 230, "230 ms"},
	}

	for _, tt := range tests {
		if got := statText(tt.kind, tt.v); got != tt.expected {
			t.Errorf("statText(%v, %v) = %q, expected %q", tt.kind, tt.v, got, tt.expected)
		}
	}
}
