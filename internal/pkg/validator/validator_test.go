package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("NV001"))
}

func TestIsValidEmployeeID(t *testing.T) {
	assert.True(t, IsValidEmployeeID("NV001"))
	assert.True(t, IsValidEmployeeID("HT-0042"))
	assert.True(t, IsValidEmployeeID(" NV001 "))
	assert.False(t, IsValidEmployeeID("a"))
	assert.False(t, IsValidEmployeeID("nv 001"))
	assert.False(t, IsValidEmployeeID(""))
}

func TestIsValidCCCD(t *testing.T) {
	assert.True(t, IsValidCCCD("079203001234"))
	assert.False(t, IsValidCCCD("0792030012"))
	assert.False(t, IsValidCCCD("07920300123a"))
}
