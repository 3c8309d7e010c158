package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPtr(t *testing.T) {
	var valueInt int = 42
	gotInt := ToPtr(valueInt)
	assert.Equal(t, valueInt, *gotInt)

	var valueBool bool = true
	gotBool := ToPtr(valueBool)
	assert.Equal(t, valueBool, *gotBool)

	var valueStr string = "/dev/nvme0n1"
	gotStr := ToPtr(valueStr)
	assert.Equal(t, valueStr, *gotStr)
}

func TestValueOrEmpty(t *testing.T) {
	assert.Equal(t, "", ValueOrEmpty[string](nil))
	assert.Equal(t, "ext4", ValueOrEmpty(ToPtr("ext4")))
	assert.Equal(t, 0, ValueOrEmpty[int](nil))
	assert.Equal(t, 3, ValueOrEmpty(ToPtr(3)))
}
