package dataprocessing

import (
	"strings"

	"github.com/shopspring/decimal"

	"arcli/pkg/contracts/domain"
)

// currencyGlyphs are stripped from currency cells before parsing. The
// mojibake form shows up in exports that went through a Windows-1252
// round-trip.
var currencyGlyphs = []string{"₹", "â‚¹"}

// CleanCurrency strips the currency glyph and thousands separators from a
// cell and parses the remainder as a decimal number. Values that do not
// parse become missing. Cells that already hold numbers pass through
// unchanged.
func CleanCurrency(c domain.Cell) domain.Cell {
	if c.Kind == domain.CellNumber {
		return c
	}
	if c.IsMissing() {
		return domain.MissingCell()
	}

	s := c.Text
	for _, glyph := range currencyGlyphs {
		s = strings.ReplaceAll(s, glyph, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	return parseNumber(s)
}

// CleanAge strips the " Days" suffix from an age cell and parses the
// remainder as a number. Values that do not parse become missing.
func CleanAge(c domain.Cell) domain.Cell {
	if c.Kind == domain.CellNumber {
		return c
	}
	if c.IsMissing() {
		return domain.MissingCell()
	}

	s := strings.ReplaceAll(c.Text, " Days", "")
	s = strings.TrimSpace(s)

	return parseNumber(s)
}

// parseNumber parses a cleaned string into a numeric cell, or missing when
// the string is empty or unparsable.
func parseNumber(s string) domain.Cell {
	if s == "" {
		return domain.MissingCell()
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return domain.MissingCell()
	}
	return domain.NumberCell(d)
}
