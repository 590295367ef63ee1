package main

import (
	"fmt"
	"sort"
	"strings"

	"qsimkit"
)

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}

// cellRole describes what a grid cell shows.
type cellRole int

const (
	roleNone cellRole = iota
	roleBox
	roleControl
	roleTarget
	rolePass
)

// cellInfo is one cell of the laid-out circuit grid.
type cellInfo struct {
	role      cellRole
	label     string
	vertAbove bool
	vertBelow bool
}

// layoutCircuit assigns every operation to a step column with the same
// greedy rule the depth calculation uses, then fills a grid of cells.
func layoutCircuit(c *qsimkit.Circuit) [][]cellInfo {
	steps := c.Depth()
	grid := make([][]cellInfo, steps)
	for s := range grid {
		grid[s] = make([]cellInfo, c.NumQubits)
	}

	last := make([]int, c.NumQubits)
	for i := range last {
		last[i] = -1
	}
	for _, op := range c.Ops {
		qubits := op.Qubits
		if op.Gate == "measure_all" {
			qubits = make([]int, c.NumQubits)
			for i := range qubits {
				qubits[i] = i
			}
		}
		step := 0
		for _, q := range qubits {
			if last[q]+1 > step {
				step = last[q] + 1
			}
		}
		for _, q := range qubits {
			last[q] = step
		}
		placeOp(grid[step], op, c.NumQubits)
	}
	return grid
}

// placeOp fills the cells of one step column for a single operation.
func placeOp(col []cellInfo, op qsimkit.Operation, numQubits int) {
	switch op.Gate {
	case "measure":
		col[op.Qubits[0]] = cellInfo{role: roleBox, label: "M"}
	case "measure_all":
		for q := 0; q < numQubits; q++ {
			col[q] = cellInfo{role: roleBox, label: "M"}
		}
	default:
		if len(op.Qubits) == 1 {
			col[op.Qubits[0]] = cellInfo{role: roleBox, label: gateLabel(op)}
			return
		}
		qa, qb := op.Qubits[0], op.Qubits[1]
		col[qa] = cellInfo{role: roleControl, label: controlSymbol(op.Gate)}
		col[qb] = cellInfo{role: roleTarget, label: targetSymbol(op)}
		lo, hi := qa, qb
		if lo > hi {
			lo, hi = hi, lo
		}
		col[lo].vertBelow = true
		col[hi].vertAbove = true
		for q := lo + 1; q < hi; q++ {
			col[q] = cellInfo{role: rolePass, vertAbove: true, vertBelow: true}
		}
	}
}

// gateLabel returns the short box label for a gate, with its first
// parameter when present.
func gateLabel(op qsimkit.Operation) string {
	return strings.ToUpper(op.Gate)
}

// controlSymbol returns the wire symbol for the first qubit of a
// two-qubit gate.
func controlSymbol(gate string) string {
	switch gate {
	case "swap":
		return "×"
	case "rxx", "ryy", "rzz":
		return "▣"
	default:
		return "●"
	}
}

// targetSymbol returns the wire symbol or label for the second qubit of
// a two-qubit gate.
func targetSymbol(op qsimkit.Operation) string {
	switch op.Gate {
	case "cx":
		return "⊕"
	case "cz":
		return "●"
	case "swap":
		return "×"
	case "ch":
		return "H"
	case "cp":
		return "P"
	default:
		return strings.ToUpper(op.Gate)
	}
}

// Layout constants
const (
	cellW        = 9 // width of each step column in characters
	labelVisualW = 7 // visual width of qubit label area
	gateNameW    = 5 // width of gate name inside box
	gateBoxW     = 7 // ┤ + gateNameW + ├
)

// renderCell returns 3 lines (top, mid, bot) for a single cell, each
// exactly cellW visual characters wide.
func renderCell(info cellInfo) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	top, bot = emptyRow, emptyRow
	if info.vertAbove {
		top = vertRow
	}
	if info.vertBelow {
		bot = vertRow
	}

	switch info.role {
	case roleBox:
		margin := (cellW - gateBoxW) / 2
		rightMargin := cellW - margin - gateBoxW
		name := padCenter(info.label, gateNameW)
		top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
		mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
		bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
	case roleControl, roleTarget:
		mid = strings.Repeat("─", dashL) + gateStyle.Render(info.label) + strings.Repeat("─", dashR)
	case rolePass:
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
	default:
		mid = strings.Repeat("─", cellW)
	}
	return
}

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	title := fmt.Sprintf("Circuit %s", m.current)
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s\n\n", dimStyle.Render(fmt.Sprintf(
		"%d qubit(s)  %d op(s)  depth %d",
		m.circuit.NumQubits, m.circuit.Size(), m.circuit.Depth())))

	grid := layoutCircuit(m.circuit)

	// Show the rightmost steps that fit.
	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)
	startStep := 0
	if len(grid) > maxSteps {
		startStep = len(grid) - maxSteps
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, len(grid)-1)
	}

	// Step number header
	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < len(grid); step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	for qubit := 0; qubit < m.circuit.NumQubits; qubit++ {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midPrefix := fmt.Sprintf("%-5s", label)
		if qubit == m.cursorQubit && m.focus != focusSelectTarget {
			midPrefix = cursorStyle.Render(midPrefix)
		} else if m.focus == focusSelectTarget && qubit == m.targetQubit {
			midPrefix = targetSelectStyle.Render(midPrefix)
		} else {
			midPrefix = qubitLabelStyle.Render(midPrefix)
		}
		midLine := midPrefix + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < len(grid); step++ {
			top, mid, bot := renderCell(grid[step][qubit])
			topLine += top
			midLine += mid
			botLine += bot
		}
		if len(grid) == 0 {
			midLine += strings.Repeat("─", cellW)
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	// Status line
	switch m.focus {
	case focusSelectTarget:
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s", activeStyle.Render(m.pendingGate))
		sb.WriteString("  select target qubit: ")
		fmt.Fprintf(&sb, "%s", targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  ⏎ Ok  Esc ✕"))
	default:
		fmt.Fprintf(&sb, "\n  qubit %d", m.cursorQubit)
		if m.statusMsg != "" {
			fmt.Fprintf(&sb, "  │  %s", activeStyle.Render(m.statusMsg))
		}
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderSidePanel renders the right column: gate picker, parameter
// prompt, or the selected result view.
func (m Model) renderSidePanel(width, height int) string {
	var body string
	switch {
	case m.focus == focusMenu:
		body = m.renderMenu()
	case m.focus == focusInputParam:
		body = m.renderParamInput()
	default:
		switch m.panel {
		case panelCounts:
			body = m.renderCounts()
		case panelStatevector:
			body = m.renderStatevector()
		case panelDensity:
			body = m.renderDensity()
		case panelReport:
			body = m.renderReport()
		case panelQASM:
			body = titleStyle.Render("OpenQASM 2.0") + "\n\n" + m.qasmText
		default:
			body = m.renderHelp()
		}
	}
	return sideStyle.Width(width).Height(height).Render(body)
}

// barWidth is the maximum histogram bar length in the results views.
const barWidth = 20

func renderBar(fraction float64) string {
	n := int(fraction*barWidth + 0.5)
	if n > barWidth {
		n = barWidth
	}
	return barStyle.Render(strings.Repeat("█", n)) + dimStyle.Render(strings.Repeat("·", barWidth-n))
}

func (m Model) renderCounts() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Measurement Counts"))
	fmt.Fprintf(&sb, "\n%s\n\n", dimStyle.Render(fmt.Sprintf("%d shots, seed %d", m.shots, m.seed)))

	states := make([]string, 0, len(m.counts))
	total := 0
	for s, n := range m.counts {
		states = append(states, s)
		total += n
	}
	// Largest counts first, ties by bitstring.
	sort.Slice(states, func(i, j int) bool {
		if m.counts[states[i]] != m.counts[states[j]] {
			return m.counts[states[i]] > m.counts[states[j]]
		}
		return states[i] < states[j]
	})
	for _, s := range states {
		frac := float64(m.counts[s]) / float64(total)
		fmt.Fprintf(&sb, " %s %s %5d  %.3f\n",
			stateStyle.Render(s), renderBar(frac), m.counts[s], frac)
	}
	return sb.String()
}

func (m Model) renderStatevector() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Statevector"))
	sb.WriteString("\n\n")
	for _, sp := range m.svAnalysis.TopStates {
		fmt.Fprintf(&sb, " |%s⟩ %s %.4f\n",
			stateStyle.Render(sp.State), renderBar(sp.Probability), sp.Probability)
	}
	fmt.Fprintf(&sb, "\n most probable: |%s⟩\n", m.svAnalysis.MostProbable)
	sb.WriteString("\n" + dimStyle.Render(" P(1) per qubit") + "\n")
	for q, p := range m.svAnalysis.QubitProbability1 {
		fmt.Fprintf(&sb, " q[%d] %s %.4f\n", q, renderBar(p), p)
	}
	return sb.String()
}

func (m Model) renderDensity() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Density Matrix"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, " purity               %.6f\n", m.dmAnalysis.Purity)
	fmt.Fprintf(&sb, " entropy              %.6f\n", m.dmAnalysis.Entropy)
	fmt.Fprintf(&sb, " entanglement (q[0])  %.6f\n", m.dmAnalysis.EntanglementEntropy)
	if m.dmAnalysis.Entangled {
		sb.WriteString(" " + activeStyle.Render("entangled") + "\n")
	} else {
		sb.WriteString(dimStyle.Render(" not entangled") + "\n")
	}
	sb.WriteString("\n" + dimStyle.Render(" eigenvalues") + "\n")
	for _, ev := range m.dmAnalysis.Eigenvalues {
		fmt.Fprintf(&sb, "  %.6f\n", ev)
	}
	return sb.String()
}

func (m Model) renderReport() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Optimization Report"))
	fmt.Fprintf(&sb, "\n%s\n\n", dimStyle.Render(m.reportName))
	fmt.Fprintf(&sb, " level  %d\n\n", m.report.Level)
	fmt.Fprintf(&sb, " gates  %d → %d\n", m.report.OriginalGates, m.report.OptimizedGates)
	fmt.Fprintf(&sb, " depth  %d → %d\n", m.report.OriginalDepth, m.report.OptimizedDepth)
	return sb.String()
}

func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Circuits"))
	sb.WriteString("\n")
	for _, name := range m.engine.ListCircuits() {
		if name == m.current {
			sb.WriteString(menuSelectedStyle.Render(" ▸ " + name))
		} else {
			sb.WriteString("   " + name)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(titleStyle.Render("Views"))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(" r run   s statevector   d density\n"))
	sb.WriteString(dimStyle.Render(" 0-3 optimize   g qasm   ? help"))
	return sb.String()
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeStyle.Render("Build:   "))
	sb.WriteString("↑↓/jk Qubit  a Add gate  m Measure  M Measure all  Bksp Undo  f QFT  v Ansatz\n")

	sb.WriteString(activeStyle.Render("Inspect: "))
	sb.WriteString("r Run  s State  d Density  0-3 Optimize  g QASM  ^S Save  n New  Tab Next  q Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}
