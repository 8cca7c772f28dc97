package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evlane/wedding-planner/internal/model"
)

func TestFamilyPrefix(t *testing.T) {
	assert.Equal(t, "C", FamilyPrefix(model.CategoryCouple))
	assert.Equal(t, "T", FamilyPrefix(model.CategoryGuest))
	assert.Equal(t, "T", FamilyPrefix("VIP"))
	assert.Equal(t, "T", FamilyPrefix("family"))
}

func TestNumberSuffix(t *testing.T) {
	assert.Equal(t, 7, NumberSuffix("C", "C-007"))
	assert.Equal(t, 120, NumberSuffix("T", "T-120"))
	// rows that don't match the pattern contribute 0
	assert.Equal(t, 0, NumberSuffix("C", "T-003"))
	assert.Equal(t, 0, NumberSuffix("T", "head table"))
	assert.Equal(t, 0, NumberSuffix("T", "T-"))
	assert.Equal(t, 0, NumberSuffix("T", "T--5"))
}

func TestNextTableNumber(t *testing.T) {
	assert.Equal(t, "C-001", NextTableNumber("C", nil))
	assert.Equal(t, "C-003", NextTableNumber("C", []string{"C-001", "C-002"}))
	// sequence continues past gaps left by deletions
	assert.Equal(t, "T-005", NextTableNumber("T", []string{"T-004"}))
	// malformed codes don't reset or break the scan
	assert.Equal(t, "T-003", NextTableNumber("T", []string{"banquet", "T-002", "T-x"}))
	// padding grows naturally past three digits
	assert.Equal(t, "T-100", NextTableNumber("T", []string{"T-099"}))
	assert.Equal(t, "T-1000", NextTableNumber("T", []string{"T-999"}))
}
