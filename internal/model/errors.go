package model

import "errors"

var (
	// ErrParse means raw report text matched no recognized shape, or a
	// numeric cell could not be read.
	ErrParse = errors.New("parse error")
	// ErrStructure means a report decoded but breaks a required invariant.
	ErrStructure = errors.New("structural error")
	// ErrIndex means a period index outside [0, PeriodCount).
	ErrIndex = errors.New("period index out of range")
)
