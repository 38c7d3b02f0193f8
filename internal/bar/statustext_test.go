package bar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatusTextPlainString(t *testing.T) {
	segs := ParseStatusText("hello world")
	assert.Len(t, segs, 1)
	assert.Equal(t, Segment{ColorIndex: 0, Text: "hello world"}, segs[0])
}

func TestParseStatusTextColorEscapeSwitchesSegment(t *testing.T) {
	s := "cpu:" + string([]byte{0x02}) + "50%" + string([]byte{0x01}) + " idle"
	segs := ParseStatusText(s)
	assert.Equal(t, []Segment{
		{ColorIndex: 0, Text: "cpu:"},
		{ColorIndex: 2, Text: "50%"},
		{ColorIndex: 1, Text: " idle"},
	}, segs)
}

func TestParseStatusTextConsecutiveEscapesProduceNoEmptySegment(t *testing.T) {
	s := string([]byte{0x01, 0x02}) + "text"
	segs := ParseStatusText(s)
	assert.Equal(t, []Segment{{ColorIndex: 2, Text: "text"}}, segs)
}

func TestParseStatusTextEmptyString(t *testing.T) {
	assert.Empty(t, ParseStatusText(""))
}

func TestParseStatusTextTrailingEscapeProducesNoSegment(t *testing.T) {
	s := "text" + string([]byte{0x01})
	segs := ParseStatusText(s)
	assert.Equal(t, []Segment{{ColorIndex: 0, Text: "text"}}, segs)
}
