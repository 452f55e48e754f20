package i18n

// Translator retrieves localized messages for failure codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "table").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "type_mismatch":
			return "型が一致しません"
		case "null_mismatch":
			return "null の有無が一致しません"
		case "not_castable":
			return "期待された型に変換できません"
		case "value_mismatch":
			return "値が一致しません"
		case "count_mismatch":
			return "要素数が一致しません"
		case "missing_table":
			return "テーブルが見つかりません"
		case "unexpected_table":
			return "予期しないテーブルです"
		case "missing_member":
			return "メンバーが見つかりません"
		case "missing_item":
			return "要素が見つかりません"
		case "unexpected_item":
			return "予期しない要素です"
		case "missing_key":
			return "キーが見つかりません"
		case "unexpected_key":
			return "予期しないキーです"
		}
	default: // "en"
		switch code {
		case "type_mismatch":
			return "types differ"
		case "null_mismatch":
			return "null presence differs"
		case "not_castable":
			return "not castable to the expected type"
		case "value_mismatch":
			return "values differ"
		case "count_mismatch":
			return "counts differ"
		case "missing_table":
			return "table not found"
		case "unexpected_table":
			return "unexpected table"
		case "missing_member":
			return "member not found"
		case "missing_item":
			return "item not found"
		case "unexpected_item":
			return "unexpected item"
		case "missing_key":
			return "key not found"
		case "unexpected_key":
			return "unexpected key"
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
