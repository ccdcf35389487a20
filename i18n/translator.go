package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			msg = "型が不正です"
		case "required":
			msg = "必須プロパティが不足しています"
		case "unknown_key":
			msg = "未知のキーです"
		case "duplicate_key":
			msg = "キーが重複しています"
		case "too_small":
			msg = "小さすぎます"
		case "overflow":
			msg = "値が範囲を超えています"
		case "invalid_enum":
			msg = "許可されていない値です"
		case "invalid_format":
			msg = "形式が不正です"
		case "parse_error":
			msg = "解析エラー"
		case "truncated":
			msg = "打ち切られました"
		case "io_error":
			msg = "入出力エラー"
		case "encode_error":
			msg = "エンコードに失敗しました"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			msg = "invalid type"
		case "required":
			msg = "required property missing"
		case "unknown_key":
			msg = "unknown key"
		case "duplicate_key":
			msg = "duplicate key"
		case "too_small":
			msg = "too small"
		case "overflow":
			msg = "value out of range"
		case "invalid_enum":
			msg = "value not allowed"
		case "invalid_format":
			msg = "invalid format"
		case "parse_error":
			msg = "parse error"
		case "truncated":
			msg = "truncated"
		case "io_error":
			msg = "i/o error"
		case "encode_error":
			msg = "encode failed"
		}
	}
	if msg == "" {
		return code
	}
	// "format" names the expected textual encoding (uuid, url, duration, ...)
	if f := data["format"]; f != "" {
		msg += ": " + f
	}
	return msg
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
