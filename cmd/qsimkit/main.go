package main

import (
	"flag"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"qsimkit"
)

func main() {
	var (
		qubits   = flag.Int("qubits", 3, "qubit count of the initial circuit")
		cbits    = flag.Int("cbits", -1, "classical bit count of the initial circuit (-1 matches qubits)")
		name     = flag.String("name", "scratch", "name of the initial circuit")
		shots    = flag.Int("shots", qsimkit.DefaultShots, "shots per run")
		seed     = flag.Int64("seed", 1, "sampling seed")
		qasmFile = flag.String("qasm", "", "OpenQASM 2.0 file to load as the initial circuit")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "qsimkit",
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	engine := qsimkit.NewEngine()

	current := *name
	if *qasmFile != "" {
		data, err := os.ReadFile(*qasmFile)
		if err != nil {
			logger.Fatal("read qasm file", "path", *qasmFile, "err", err)
		}
		current, err = engine.ImportQASM(*name, string(data))
		if err != nil {
			logger.Fatal("parse qasm file", "path", *qasmFile, "err", err)
		}
		logger.Debug("loaded circuit from qasm", "name", current)
	} else {
		var err error
		current, err = engine.CreateCircuit(*name, *qubits, *cbits)
		if err != nil {
			logger.Fatal("create circuit", "name", *name, "err", err)
		}
	}

	m := initialModel(engine, current, *shots, *seed, logger)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logger.Fatal("tui", "err", err)
	}
}
