package repository

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/evlane/wedding-planner/internal/model"
)

// FamilyPrefix returns the display-code prefix for a table category.
// Couple tables use "C"; every other category shares the guest-like "T"
// sequence.
func FamilyPrefix(category string) string {
	if category == model.CategoryCouple {
		return "C"
	}
	return "T"
}

// NumberSuffix extracts the numeric suffix from a display code such as
// "C-007". Codes that do not match "<prefix>-NNN" contribute 0, so legacy
// or hand-edited rows never break the sequence.
func NumberSuffix(prefix, code string) int {
	rest, ok := strings.CutPrefix(code, prefix+"-")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// NextTableNumber derives the next display code for a numbering family by
// scanning the existing codes and taking max+1, zero-padded to three
// digits. Deriving from the rows themselves (rather than a counter table)
// keeps the sequence self-healing after deletions: a deleted number is
// never handed out again as long as any higher number remains.
func NextTableNumber(prefix string, existing []string) string {
	max := 0
	for _, code := range existing {
		if n := NumberSuffix(prefix, code); n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1)
}
