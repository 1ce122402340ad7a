package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEntityID(t *testing.T) {
	valid := []string{"Q1748", "Q1", "Q0", "Q818846", "Q12325240"}
	for _, s := range valid {
		assert.Truef(t, IsEntityID(s), "IsEntityID(%q)", s)
	}

	invalid := []string{"q1748", "1748", "Q", "", "Q12a", " Q1", "Q1 ", "P625", "xQ1"}
	for _, s := range invalid {
		assert.Falsef(t, IsEntityID(s), "IsEntityID(%q)", s)
	}
}

func TestEntityIDValid(t *testing.T) {
	assert.True(t, EntityID("Q2239").Valid())
	assert.False(t, EntityID("q2239").Valid())
}

func TestFirst(t *testing.T) {
	assert.Equal(t, EntityID(""), First(nil))
	assert.Equal(t, EntityID("Q1"), First([]EntityID{"Q1", "Q2"}))
}
