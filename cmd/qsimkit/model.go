package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"qsimkit"
)

// focus represents which mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusMenu
	focusInputParam
	focusSelectTarget
)

// panel selects what the right column shows.
type panel int

const (
	panelHelp panel = iota
	panelCounts
	panelStatevector
	panelDensity
	panelReport
	panelQASM
)

// Model holds the TUI state. The engine's registry is the source of
// truth; the circuit field is a snapshot refreshed after every mutation.
type Model struct {
	engine  *qsimkit.Engine
	current string
	circuit *qsimkit.Circuit

	cursorQubit int
	width       int
	height      int
	focus       focus
	statusMsg   string
	logger      *log.Logger

	shots int
	seed  int64

	// Menu state
	menuCat  int
	menuItem int

	// Pending gate placement
	pendingGate   string
	pendingParams []float64
	paramEditor   textinput.Model
	targetQubit   int

	// Right-panel contents
	panel      panel
	counts     map[string]int
	svAnalysis *qsimkit.StatevectorAnalysis
	dmAnalysis *qsimkit.DensityAnalysis
	report     *qsimkit.OptimizeReport
	reportName string
	qasmText   string
}

func initialModel(engine *qsimkit.Engine, current string, shots int, seed int64, logger *log.Logger) Model {
	ti := textinput.New()
	ti.CharLimit = 48
	ti.Width = 24

	m := Model{
		engine:      engine,
		current:     current,
		shots:       shots,
		seed:        seed,
		logger:      logger,
		panel:       panelHelp,
		paramEditor: ti,
	}
	m.refresh()
	return m
}

// refresh re-reads the current circuit from the engine.
func (m *Model) refresh() {
	c, err := m.engine.Get(m.current)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.circuit = c
	if m.cursorQubit >= c.NumQubits {
		m.cursorQubit = c.NumQubits - 1
	}
}

// appendOp sends one operation to the engine and reports the outcome.
func (m *Model) appendOp(op qsimkit.Operation) {
	if err := m.engine.AppendGates(m.current, op); err != nil {
		m.statusMsg = err.Error()
	} else {
		m.statusMsg = fmt.Sprintf("added %s", qsimkit.FormatOperation(op))
	}
	m.refresh()
	m.pendingGate = ""
	m.pendingParams = nil
}

// undoLast drops the last operation by rebuilding the circuit in the
// registry.
func (m *Model) undoLast() {
	if m.circuit == nil || len(m.circuit.Ops) == 0 {
		return
	}
	ops := m.circuit.Ops[:len(m.circuit.Ops)-1]
	if err := m.engine.RemoveCircuit(m.current); err != nil {
		m.statusMsg = err.Error()
		return
	}
	if _, err := m.engine.CreateCircuit(m.current, m.circuit.NumQubits, m.circuit.NumCbits); err != nil {
		m.statusMsg = err.Error()
		return
	}
	if err := m.engine.AppendGates(m.current, ops...); err != nil {
		m.statusMsg = err.Error()
	}
	m.statusMsg = "removed last operation"
	m.refresh()
}

// switchCircuit moves to the next registered circuit.
func (m *Model) switchCircuit() {
	names := m.engine.ListCircuits()
	for i, name := range names {
		if name == m.current {
			m.current = names[(i+1)%len(names)]
			break
		}
	}
	m.refresh()
	m.panel = panelHelp
	m.statusMsg = fmt.Sprintf("circuit %s", m.current)
}

func (m *Model) runCircuit() {
	counts, err := m.engine.Run(m.current, m.shots, m.seed)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.counts = counts
	m.panel = panelCounts
	m.statusMsg = fmt.Sprintf("ran %d shots", m.shots)
	m.logger.Debug("run", "circuit", m.current, "shots", m.shots)
}

func (m *Model) analyzeStatevector() {
	res, err := m.engine.AnalyzeStatevector(m.current)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.svAnalysis = res
	m.panel = panelStatevector
	m.statusMsg = ""
}

func (m *Model) analyzeDensity() {
	res, err := m.engine.AnalyzeDensityMatrix(m.current)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.dmAnalysis = res
	m.panel = panelDensity
	m.statusMsg = ""
}

func (m *Model) optimize(level int) {
	name, report, err := m.engine.Optimize(m.current, level)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.report = report
	m.reportName = name
	m.current = name
	m.refresh()
	m.panel = panelReport
	m.statusMsg = fmt.Sprintf("optimized into %s", name)
}

func (m *Model) showQASM() {
	qasm, err := m.engine.ExportQASM(m.current)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.qasmText = qasm
	m.panel = panelQASM
	m.statusMsg = ""
}

func (m *Model) saveQASM() {
	qasm, err := m.engine.ExportQASM(m.current)
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	path := m.current + ".qasm"
	if err := os.WriteFile(path, []byte(qasm), 0644); err != nil {
		m.statusMsg = fmt.Sprintf("save error: %v", err)
		return
	}
	m.statusMsg = "saved " + path
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.circuit.NumQubits-1 {
					m.cursorQubit++
				}
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "m":
				m.appendOp(qsimkit.Measure(m.cursorQubit, m.cursorQubit))
			case "M":
				m.appendOp(qsimkit.MeasureAll())
			case "backspace", "delete":
				m.undoLast()
			case "r":
				m.runCircuit()
			case "s":
				m.analyzeStatevector()
			case "d":
				m.analyzeDensity()
			case "0", "1", "2", "3":
				m.optimize(int(key[0] - '0'))
			case "g":
				m.showQASM()
			case "ctrl+s":
				m.saveQASM()
			case "f":
				name, err := m.engine.BuildQFT("", m.circuit.NumQubits, false)
				if err != nil {
					m.statusMsg = err.Error()
					break
				}
				m.current = name
				m.refresh()
				m.statusMsg = "built QFT circuit " + name
			case "v":
				name, params, err := m.engine.BuildVariational("", m.circuit.NumQubits, 2, qsimkit.EntangleLinear)
				if err != nil {
					m.statusMsg = err.Error()
					break
				}
				m.current = name
				m.refresh()
				m.statusMsg = fmt.Sprintf("built variational circuit %s (%d parameters)", name, params)
			case "n":
				name, err := m.engine.CreateCircuit("", m.circuit.NumQubits, m.circuit.NumCbits)
				if err != nil {
					m.statusMsg = err.Error()
					break
				}
				m.current = name
				m.refresh()
				m.panel = panelHelp
				m.statusMsg = "created " + name
			case "tab":
				m.switchCircuit()
			case "?":
				m.panel = panelHelp
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				if m.menuItem < len(gateMenu[m.menuCat].items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := gateMenu[m.menuCat].items[m.menuItem]
				m.pendingGate = item.gate
				if item.paramCount > 0 {
					m.paramEditor.SetValue("")
					m.paramEditor.Placeholder = item.paramHint
					m.paramEditor.Focus()
					m.focus = focusInputParam
					break
				}
				m.placePending(item)
			}

		case focusInputParam:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.pendingGate = ""
				m.paramEditor.Blur()
			case "enter":
				params, err := qsimkit.ParseParams(m.paramEditor.Value())
				if err != nil {
					m.statusMsg = "invalid parameter, use numbers or pi expressions (pi/2, 3*pi/4)"
					break
				}
				item := gateMenu[m.menuCat].items[m.menuItem]
				if len(params) != item.paramCount {
					m.statusMsg = fmt.Sprintf("%s needs %d parameter(s)", item.gate, item.paramCount)
					break
				}
				m.pendingParams = params
				m.paramEditor.Blur()
				m.placePending(item)
			default:
				var cmd tea.Cmd
				m.paramEditor, cmd = m.paramEditor.Update(msg)
				cmds = append(cmds, cmd)
			}

		case focusSelectTarget:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.pendingGate = ""
				m.pendingParams = nil
			case "up", "k":
				for next := m.targetQubit - 1; next >= 0; next-- {
					if next != m.cursorQubit {
						m.targetQubit = next
						break
					}
				}
			case "down", "j":
				for next := m.targetQubit + 1; next < m.circuit.NumQubits; next++ {
					if next != m.cursorQubit {
						m.targetQubit = next
						break
					}
				}
			case "enter":
				m.appendOp(qsimkit.Unitary(m.pendingGate,
					[]int{m.cursorQubit, m.targetQubit}, m.pendingParams...))
				m.focus = focusCircuit
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// placePending either appends a single-qubit gate at the cursor or moves
// into target selection for a two-qubit gate.
func (m *Model) placePending(item menuItem) {
	if item.twoQubit {
		if m.circuit.NumQubits < 2 {
			m.statusMsg = "two-qubit gates need at least two qubits"
			m.focus = focusCircuit
			return
		}
		m.targetQubit = m.cursorQubit + 1
		if m.targetQubit >= m.circuit.NumQubits {
			m.targetQubit = m.cursorQubit - 1
		}
		m.focus = focusSelectTarget
		return
	}
	m.appendOp(qsimkit.Unitary(item.gate, []int{m.cursorQubit}, m.pendingParams...))
	m.focus = focusCircuit
}

// View renders the two-column layout with the controls bar below.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sideWidth := m.width / 3
	circuitWidth := m.width - sideWidth - 4
	controlsHeight := 6
	mainHeight := max(m.height-controlsHeight-2, 6)

	circuitPanel := m.renderCircuitPanel(circuitWidth, mainHeight)
	sidePanel := m.renderSidePanel(sideWidth, mainHeight)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, circuitPanel, sidePanel)
	return lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)
}
