package i18n

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Translator retrieves localized messages for issue codes.
// data fills "{name}" placeholders in the message (for example "options" or
// "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

var dictionaries = map[string]map[string]string{
	"en": {
		"required":     "is required",
		"present":      "is required and value must be present",
		"format":       "invalid format",
		"email":        "invalid format",
		"gt":           "must be greater than {num}, but got {got}",
		"options":      "must be one of {options}, but got {got}",
		"uuid":         "must be a valid UUID, but got {got}",
		"invalid_type": "must be {type}, but got {got}",
	},
	"ja": {
		"required":     "必須です",
		"present":      "必須で、値が空であってはいけません",
		"format":       "形式が不正です",
		"email":        "形式が不正です",
		"gt":           "{num} より大きい必要がありますが、{got} でした",
		"options":      "{options} のいずれかである必要がありますが、{got} でした",
		"uuid":         "UUID である必要がありますが、{got} でした",
		"invalid_type": "{type} である必要がありますが、{got} でした",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		if msg, ok = dictionaries["en"][code]; !ok {
			return code
		}
	}
	return interpolate(msg, data)
}

func interpolate(msg string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var supported = []language.Tag{language.English, language.Japanese}

var matcher = language.NewMatcher(supported)

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator to the closest supported
// language for a BCP 47 tag such as "ja-JP". Unsupported tags fall back to
// English.
func SetLanguage(lang string) {
	_, idx, conf := matcher.Match(language.Make(lang))
	code := "en"
	if conf != language.No && supported[idx] == language.Japanese {
		code = "ja"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: code}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
