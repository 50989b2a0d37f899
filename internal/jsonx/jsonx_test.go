package jsonx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeArrayInsideProse(t *testing.T) {
	raw := `Here are the tasks you asked for: [{"description": "Call Bob"}, {"description": "Send report"}] Let me know!`

	var items []map[string]string
	err := DecodeArray(raw, &items)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "Call Bob", items[0]["description"])
}

func TestDecodeArrayBareArray(t *testing.T) {
	var nums []int
	err := DecodeArray("  [1, 2, 3]  ", &nums)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, nums)
}

func TestDecodeArrayFallsBackToWholeText(t *testing.T) {
	// The bracketed span is not a valid value for the target, but the whole
	// text is.
	var obj map[string][]int
	err := DecodeArray(`{"items": [1, 2]}`, &obj)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2}, obj["items"])
}

func TestDecodeArrayRejectsProse(t *testing.T) {
	var items []map[string]string
	err := DecodeArray("not json at all", &items)
	assert.Error(t, err)
}

func TestDecodeArrayRejectsEmptyInput(t *testing.T) {
	var items []int
	err := DecodeArray("   ", &items)
	assert.Error(t, err)
}
