package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "field" or "type").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "parse_error":
			return "解析エラー"
		case "duplicate_field":
			return "フィールドが重複しています"
		case "invalid_name":
			return "名前が不正です"
		case "malformed_default":
			return "デフォルト値をリテラルとして表現できません"
		case "synthesis_error":
			return "生成に失敗しました"
		case "too_many_arguments":
			return "引数が多すぎます"
		case "unexpected_argument":
			return "予期しないキーワード引数です"
		case "duplicate_argument":
			return "引数が重複しています"
		case "missing_argument":
			return "必須引数が不足しています"
		case "positional_after_keyword":
			return "キーワード引数の後に位置引数があります"
		case "unknown_field":
			return "未知のフィールドです"
		case "unset_field":
			return "フィールドに値がありません"
		case "frozen":
			return "インスタンスは変更できません"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "parse_error":
			return "parse error"
		case "duplicate_field":
			return "duplicate field"
		case "invalid_name":
			return "invalid name"
		case "malformed_default":
			return "default has no literal form"
		case "synthesis_error":
			return "synthesis failed"
		case "too_many_arguments":
			return "too many arguments"
		case "unexpected_argument":
			return "unexpected keyword argument"
		case "duplicate_argument":
			return "multiple values for argument"
		case "missing_argument":
			return "missing required argument"
		case "positional_after_keyword":
			return "positional argument follows keyword argument"
		case "unknown_field":
			return "unknown field"
		case "unset_field":
			return "field has no value"
		case "frozen":
			return "instance is frozen"
		}
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
