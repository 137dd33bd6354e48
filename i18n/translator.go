package i18n

import "strings"

// KeyCannotDecode is the message template of a decode leaf. It expects the
// "actual" and "expected" entries in data.
const KeyCannotDecode = "cannot_decode"

// Translator retrieves localized messages for Issue codes and templates.
// data provides optional metadata to embed in the message (for example,
// "expected" or "actual").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case KeyCannotDecode:
			return expand("{actual} をデコードできません。{expected} が必要です", data)
		case "invalid_type":
			return expand("型が不正です ({expected} が必要です)", data)
		case "invalid_value":
			return expand("値が不正です ({expected} が必要です)", data)
		case "invalid_length":
			return expand("長さが不正です ({expected} が必要です)", data)
		case "never":
			return "この値は受け付けられません"
		case "duplicate_key":
			return expand("キー {actual} が重複しています", data)
		}
	default: // "en"
		switch code {
		case KeyCannotDecode:
			return expand("Cannot decode {actual}, expected {expected}", data)
		case "invalid_type":
			return expand("invalid type, expected {expected}", data)
		case "invalid_value":
			return expand("invalid value, expected {expected}", data)
		case "invalid_length":
			return expand("invalid length, expected {expected}", data)
		case "never":
			return "no value is accepted"
		case "duplicate_key":
			return expand("duplicate key {actual}", data)
		}
	}
	return code
}

func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
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
