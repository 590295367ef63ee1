package main

import (
	"fmt"
	"strings"
)

// menuItem represents a single gate choice in the picker.
type menuItem struct {
	name       string
	gate       string
	symbol     string
	twoQubit   bool
	paramCount int
	paramHint  string
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items. Every entry maps
// to a simulator catalog gate.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", gate: "h", symbol: "H"},
			{name: "Pauli-X (NOT)", gate: "x", symbol: "X"},
			{name: "Pauli-Y", gate: "y", symbol: "Y"},
			{name: "Pauli-Z", gate: "z", symbol: "Z"},
			{name: "Phase (S)", gate: "s", symbol: "S"},
			{name: "Phase Dagger (S†)", gate: "sdg", symbol: "S†"},
			{name: "T Gate", gate: "t", symbol: "T"},
			{name: "T Dagger (T†)", gate: "tdg", symbol: "T†"},
		},
	},
	{
		name: "Rotation",
		items: []menuItem{
			{name: "Rotate X", gate: "rx", symbol: "RX", paramCount: 1, paramHint: "pi/2"},
			{name: "Rotate Y", gate: "ry", symbol: "RY", paramCount: 1, paramHint: "pi/2"},
			{name: "Rotate Z", gate: "rz", symbol: "RZ", paramCount: 1, paramHint: "pi/2"},
			{name: "Universal U", gate: "u", symbol: "U", paramCount: 3, paramHint: "theta,phi,lambda"},
		},
	},
	{
		name: "Two Qubit",
		items: []menuItem{
			{name: "CNOT", gate: "cx", symbol: "●─⊕", twoQubit: true},
			{name: "Controlled-Z", gate: "cz", symbol: "●─●", twoQubit: true},
			{name: "Controlled-H", gate: "ch", symbol: "●─H", twoQubit: true},
			{name: "SWAP", gate: "swap", symbol: "×─×", twoQubit: true},
			{name: "C-Phase", gate: "cp", symbol: "●─P", twoQubit: true, paramCount: 1, paramHint: "pi/4"},
			{name: "XX Rotation", gate: "rxx", symbol: "RXX", twoQubit: true, paramCount: 1, paramHint: "pi/2"},
			{name: "YY Rotation", gate: "ryy", symbol: "RYY", twoQubit: true, paramCount: 1, paramHint: "pi/2"},
			{name: "ZZ Rotation", gate: "rzz", symbol: "RZZ", twoQubit: true, paramCount: 1, paramHint: "pi/2"},
		},
	},
}

// renderMenu renders the gate picker into the side panel.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 40)))
	sb.WriteString("\n")

	// Items in the selected category
	for i, item := range gateMenu[m.menuCat].items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-18s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.twoQubit {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if item.paramCount > 0 {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.paramHint)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return sb.String()
}

// renderParamInput renders the parameter prompt for the pending gate.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	item := gateMenu[m.menuCat].items[m.menuItem]
	sb.WriteString(titleStyle.Render("Parameters for " + item.name))
	sb.WriteString("\n\n")
	sb.WriteString(m.paramEditor.View())
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render(fmt.Sprintf("Example: %s", item.paramHint)))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("⏎ Ok  Esc ✕"))
	return sb.String()
}
