package model

import (
	"fmt"
	"time"
)

// tleLineLength is the fixed width of each element line
const tleLineLength = 69

// TLE is a two-line element set identifying an orbital state.
// Name is the optional title line; Line1 and Line2 are the fixed-width
// element lines.
type TLE struct {
	Name  string `json:"name,omitempty"`
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

// Validate checks the structural correctness of the element set: line
// width, line-number prefixes, matching catalog numbers and the mod-10
// checksum digit of each line. It does not interpret the orbital elements
// themselves.
func (t TLE) Validate() error {
	if err := validateLine(t.Line1, '1'); err != nil {
		return fmt.Errorf("%w: line 1: %v", ErrInvalidTLE, err)
	}
	if err := validateLine(t.Line2, '2'); err != nil {
		return fmt.Errorf("%w: line 2: %v", ErrInvalidTLE, err)
	}
	if t.Line1[2:7] != t.Line2[2:7] {
		return fmt.Errorf("%w: catalog numbers differ (%q vs %q)",
			ErrInvalidTLE, t.Line1[2:7], t.Line2[2:7])
	}
	return nil
}

func validateLine(line string, lineNumber byte) error {
	if len(line) != tleLineLength {
		return fmt.Errorf("expected %d columns, got %d", tleLineLength, len(line))
	}
	if line[0] != lineNumber || line[1] != ' ' {
		return fmt.Errorf("expected line to start with %q", string(lineNumber)+" ")
	}
	want := int(line[tleLineLength-1] - '0')
	if got := checksum(line[:tleLineLength-1]); got != want {
		return fmt.Errorf("checksum mismatch: computed %d, line carries %d", got, want)
	}
	return nil
}

// checksum is the TLE mod-10 checksum: digits count their value, minus
// signs count one, everything else counts zero.
func checksum(s string) int {
	sum := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			sum += int(c - '0')
		case c == '-':
			sum++
		}
	}
	return sum % 10
}

// StateVector is a propagated orbital state: position in km and velocity
// in km/s, both in the TEME frame.
type StateVector struct {
	Time     time.Time  `json:"time"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
}
