package subkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srtsuite/subkit"
)

func TestDetectEncodingUTF8BOM(t *testing.T) {
	buf := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello\r\nworld")...)
	text, label, err := subkit.DetectEncoding(buf)
	assert.NoError(t, err)
	assert.Equal(t, "utf-8-sig", label)
	assert.Equal(t, "hello\nworld", text)
}

func TestDetectEncodingPlainUTF8(t *testing.T) {
	text, label, err := subkit.DetectEncoding([]byte("café\r\n"))
	assert.NoError(t, err)
	assert.Equal(t, "utf-8", label)
	assert.Equal(t, "café\n", text)
}

func TestDetectEncodingGBK(t *testing.T) {
	// "你好" encoded as GBK.
	gbk := []byte{0xC4, 0xE3, 0xBA, 0xC3}
	text, label, err := subkit.DetectEncoding(gbk)
	assert.NoError(t, err)
	assert.Contains(t, []string{"gbk", "gb18030"}, label)
	assert.Equal(t, "你好", text)
}

func TestDetectEncodingEmptyBuffer(t *testing.T) {
	_, _, err := subkit.DetectEncoding(nil)
	assert.Error(t, err)
	kind, ok := subkit.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, subkit.KindEncoding, kind)
}

func TestEncodeOutputBOMOnlyForASS(t *testing.T) {
	srtBytes := subkit.EncodeOutput("hello", subkit.FormatSRT)
	assert.Equal(t, []byte("hello"), srtBytes)

	assBytes := subkit.EncodeOutput("hello", subkit.FormatASS)
	assert.Equal(t, append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...), assBytes)
}
