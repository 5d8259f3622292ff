package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var _dict = map[string]map[string]string{
	"en": {
		"invalid_type":           "invalid type",
		"required":               "required property missing",
		"unknown_key":            "unknown key",
		"invalid_literal":        "unexpected literal value",
		"discriminator_missing":  "discriminator missing",
		"discriminator_unknown":  "unknown discriminator",
		"too_small":              "value is too small",
		"too_big":                "value is too big",
		"too_short":              "too short",
		"too_long":               "too long",
		"pattern":                "does not match pattern",
		"invalid_enum":           "value is not in the allowed list",
		"invalid_format":         "invalid format",
		"not_integer":            "expected an integer",
		"precision":              "too many decimal places",
		"not_unique":             "duplicate entry",
		"dependency_unavailable": "dependency unavailable",
		"parse_error":            "parse error",
		"duplicate_key":          "duplicate key",
	},
	"ja": {
		"invalid_type":           "型が不正です",
		"required":               "必須プロパティが不足しています",
		"unknown_key":            "未知のキーです",
		"invalid_literal":        "リテラル値が一致しません",
		"discriminator_missing":  "識別子がありません",
		"discriminator_unknown":  "未知の識別子です",
		"too_small":              "小さすぎます",
		"too_big":                "大きすぎます",
		"too_short":              "短すぎます",
		"too_long":               "長すぎます",
		"pattern":                "パターンに一致しません",
		"invalid_enum":           "許可された値ではありません",
		"invalid_format":         "形式が不正です",
		"not_integer":            "整数ではありません",
		"precision":              "小数点以下の桁数が多すぎます",
		"not_unique":             "重複しています",
		"dependency_unavailable": "依存先サービスが利用できません",
		"parse_error":            "解析エラー",
		"duplicate_key":          "キーが重複しています",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	if msg, ok := _dict[t.lang][code]; ok {
		return msg
	}
	return code
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
