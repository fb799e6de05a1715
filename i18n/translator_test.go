package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	assert.Equal(t, "is required", T("required", nil))

	SetLanguage("ja-JP")
	assert.Equal(t, "必須です", T("required", nil))

	// unsupported tags fall back to en
	SetLanguage("xx")
	assert.Equal(t, "is required", T("required", nil))

	SetLanguage("en")
}

func TestTranslator_Interpolation(t *testing.T) {
	msg := T("options", map[string]string{"options": "a, b", "got": "c"})
	assert.Equal(t, "must be one of a, b, but got c", msg)

	// unknown codes echo the code
	assert.Equal(t, "nope", T("nope", nil))
}

type upper struct{}

func (upper) Message(code string, data map[string]string) string { return "X:" + code }

func TestSetTranslator(t *testing.T) {
	SetTranslator(upper{})
	assert.Equal(t, "X:required", T("required", nil))

	SetTranslator(nil)
	assert.Equal(t, "is required", T("required", nil))
}
