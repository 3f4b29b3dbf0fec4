// Package i18n provides localized messages for issue codes.
package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional values substituted for {name} placeholders (for
// example "path" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

var dictionaries = map[string]map[string]string{
	"en": {
		"parse_error":             "parse error",
		"duplicate_key":           "duplicate key {key}",
		"truncated":               "input truncated",
		"key_value_path_mismatch": "key value path {path} does not match objects",
		"column_not_found":        "column {path} not found",
		"invalid_option":          "invalid option: {detail}",
	},
	"ja": {
		"parse_error":             "解析エラー",
		"duplicate_key":           "キー {key} が重複しています",
		"truncated":               "入力が打ち切られました",
		"key_value_path_mismatch": "キーバリューパス {path} の値がオブジェクトではありません",
		"column_not_found":        "列 {path} が見つかりません",
		"invalid_option":          "不正なオプション: {detail}",
	},
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
