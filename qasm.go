package qsimkit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	singleGateRegex      = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\];?$`)
	singleGateParamRegex = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `(?:\s*,\s*` + paramPattern + `)*)\s*\)\s+q\[(\d+)\];?$`)
	twoQubitRegex        = regexp.MustCompile(`^(\w+)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	twoQubitParamRegex   = regexp.MustCompile(`^(\w+)\s*\(\s*(` + paramPattern + `)\s*\)\s+q\[(\d+)\],\s*q\[(\d+)\];?$`)
	measureRegex         = regexp.MustCompile(`^measure\s+q\[(\d+)\]\s*->\s*c\[(\d+)\];?$`)
	measureAllRegex      = regexp.MustCompile(`^measure\s+q\s*->\s*c;?$`)
	qregRegex            = regexp.MustCompile(`qreg\s+q\[(\d+)\]`)
	cregRegex            = regexp.MustCompile(`creg\s+c\[(\d+)\]`)
)

// ToQASM serializes the circuit as OpenQASM 2.0.
func ToQASM(c *Circuit) string {
	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\n")
	b.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&b, "qreg q[%d];\n", c.NumQubits)
	fmt.Fprintf(&b, "creg c[%d];\n", c.NumCbits)
	for _, op := range c.Ops {
		switch op.Gate {
		case "measure":
			fmt.Fprintf(&b, "measure q[%d] -> c[%d];\n", op.Qubits[0], op.Cbit)
		case "measure_all":
			b.WriteString("measure q -> c;\n")
		default:
			b.WriteString(op.Gate)
			if len(op.Params) > 0 {
				b.WriteByte('(')
				for i, p := range op.Params {
					if i > 0 {
						b.WriteString(", ")
					}
					b.WriteString(formatParam(p))
				}
				b.WriteByte(')')
			}
			b.WriteByte(' ')
			for i, q := range op.Qubits {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(&b, "q[%d]", q)
			}
			b.WriteString(";\n")
		}
	}
	return b.String()
}

// ParseQASM builds a circuit from OpenQASM 2.0 text restricted to the
// gate catalog plus measure. Unknown statements are rejected.
func ParseQASM(name, qasm string) (*Circuit, error) {
	numQubits := -1
	numCbits := -1
	var pending []Operation

	for lineNum, raw := range strings.Split(qasm, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" ||
			strings.HasPrefix(line, "//") ||
			strings.HasPrefix(line, "OPENQASM") ||
			strings.HasPrefix(line, "include") {
			continue
		}

		if m := qregRegex.FindStringSubmatch(line); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad qreg size", ErrInvalidOperation, lineNum+1)
			}
			numQubits = n
			continue
		}
		if m := cregRegex.FindStringSubmatch(line); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: bad creg size", ErrInvalidOperation, lineNum+1)
			}
			numCbits = n
			continue
		}

		op, err := parseQASMStatement(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum+1, err)
		}
		pending = append(pending, op)
	}

	if numQubits < 0 {
		return nil, fmt.Errorf("%w: missing qreg declaration", ErrInvalidOperation)
	}
	c, err := NewCircuit(name, numQubits, numCbits)
	if err != nil {
		return nil, err
	}
	if err := c.Append(pending...); err != nil {
		return nil, err
	}
	return c, nil
}

func parseQASMStatement(line string) (Operation, error) {
	if m := measureRegex.FindStringSubmatch(line); m != nil {
		q, _ := strconv.Atoi(m[1])
		cb, _ := strconv.Atoi(m[2])
		return Measure(q, cb), nil
	}
	if measureAllRegex.MatchString(line) {
		return MeasureAll(), nil
	}
	if m := twoQubitParamRegex.FindStringSubmatch(line); m != nil {
		theta, ok := parseParamExpr(m[2])
		if !ok {
			return Operation{}, fmt.Errorf("%w: bad parameter %q", ErrInvalidOperation, m[2])
		}
		qa, _ := strconv.Atoi(m[3])
		qb, _ := strconv.Atoi(m[4])
		return Unitary(m[1], []int{qa, qb}, theta), nil
	}
	if m := twoQubitRegex.FindStringSubmatch(line); m != nil {
		qa, _ := strconv.Atoi(m[2])
		qb, _ := strconv.Atoi(m[3])
		return Unitary(m[1], []int{qa, qb}), nil
	}
	if m := singleGateParamRegex.FindStringSubmatch(line); m != nil {
		params, err := ParseParams(m[2])
		if err != nil {
			return Operation{}, fmt.Errorf("%w: bad parameters %q", ErrInvalidOperation, m[2])
		}
		q, _ := strconv.Atoi(m[3])
		return Unitary(m[1], []int{q}, params...), nil
	}
	if m := singleGateRegex.FindStringSubmatch(line); m != nil {
		q, _ := strconv.Atoi(m[2])
		return Unitary(m[1], []int{q}), nil
	}
	return Operation{}, fmt.Errorf("%w: unrecognized statement %q", ErrInvalidOperation, line)
}
