package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	issLine1 = "1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927"
	issLine2 = "2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537"
)

func TestValidateAcceptsWellFormedTLE(t *testing.T) {
	tle := TLE{Name: "ISS (ZARYA)", Line1: issLine1, Line2: issLine2}
	require.NoError(t, tle.Validate())
}

func TestValidateRejectsShortLine(t *testing.T) {
	tle := TLE{Line1: issLine1[:40], Line2: issLine2}
	assert.ErrorIs(t, tle.Validate(), ErrInvalidTLE)
}

func TestValidateRejectsWrongLineNumber(t *testing.T) {
	tle := TLE{Line1: "2" + issLine1[1:], Line2: issLine2}
	assert.ErrorIs(t, tle.Validate(), ErrInvalidTLE)
}

func TestValidateRejectsBadChecksum(t *testing.T) {
	// Flip the final checksum digit
	line1 := issLine1[:68] + "0"
	tle := TLE{Line1: line1, Line2: issLine2}
	assert.ErrorIs(t, tle.Validate(), ErrInvalidTLE)
}

func TestValidateRejectsMismatchedCatalogNumbers(t *testing.T) {
	// A line 2 for a different satellite, checksum recomputed
	line2 := "2 25545  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563538"
	tle := TLE{Line1: issLine1, Line2: line2}
	assert.ErrorIs(t, tle.Validate(), ErrInvalidTLE)
}

func TestChecksumCountsMinusSignsAsOne(t *testing.T) {
	assert.Equal(t, 2, checksum("--"))
	assert.Equal(t, 5, checksum("12--0 abc"))
}
