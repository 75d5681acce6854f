package paddle

import "strings"

// languageMap translates Tesseract-style language codes, which the host
// pipeline speaks, to PaddleOCR's native codes.
var languageMap = map[string]string{
	"eng":     "en",
	"chi_sim": "ch",
	"chi_tra": "chinese_cht",
	"fra":     "fr",
	"deu":     "german",
	"jpn":     "japan",
	"kor":     "korean",
	"spa":     "spanish",
	"rus":     "ru",
	"ara":     "ar",
	"hin":     "hi",
	"por":     "pt",
	"ita":     "it",
	"tur":     "tr",
	"vie":     "vi",
	"tha":     "th",
}

// EngineLanguage converts a Tesseract-style code to the backend's native
// code. Unknown codes pass through unchanged; an empty code defaults to
// English.
func EngineLanguage(code string) string {
	if code == "" {
		return "en"
	}
	code = strings.ToLower(code)
	if native, ok := languageMap[code]; ok {
		return native
	}
	return code
}

// TesseractLanguage converts a backend-native code back to the
// Tesseract-style code used in hOCR lang attributes. Unknown codes default
// to "eng".
func TesseractLanguage(native string) string {
	for tess, n := range languageMap {
		if n == native {
			return tess
		}
	}
	return "eng"
}
