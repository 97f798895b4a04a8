package config

import "sort"

// LanguageCodes lists the supported UI languages.
var LanguageCodes = []string{"en", "vi", "es", "fr", "de", "ru", "zh"}

// Logical label keys: the eight move-quality labels plus the two section
// titles shown on the overlay.
var labelKeys = []string{
	"brilliant", "best", "excellent", "good",
	"inaccuracy", "mistake", "blunder", "forced",
	"engine_suggests", "opponent_best",
}

var labelsByLanguage = map[string]map[string]string{
	"en": {
		"brilliant":       "BRILLIANT!!",
		"best":            "BEST MOVE",
		"excellent":       "EXCELLENT",
		"good":            "GOOD",
		"inaccuracy":      "INACCURACY",
		"mistake":         "MISTAKE",
		"blunder":         "BLUNDER!!",
		"forced":          "FORCED",
		"engine_suggests": "ENGINE SUGGESTS",
		"opponent_best":   "OPPONENT'S BEST",
	},
	"vi": {
		"brilliant":       "XUẤT SẮC!!",
		"best":            "NƯỚC ĐI TỐT NHẤT",
		"excellent":       "RẤT TỐT",
		"good":            "TỐT",
		"inaccuracy":      "KHÔNG CHÍNH XÁC",
		"mistake":         "SAI LẦM",
		"blunder":         "SAI LẦM LỚN!!",
		"forced":          "BẮT BUỘC",
		"engine_suggests": "ĐỘNG CƠ ĐỀ XUẤT",
		"opponent_best":   "ĐỐI THỦ TỐT NHẤT",
	},
	"es": {
		"brilliant":       "¡¡BRILLANTE!!",
		"best":            "MEJOR JUGADA",
		"excellent":       "EXCELENTE",
		"good":            "BUENA",
		"inaccuracy":      "IMPRECISIÓN",
		"mistake":         "ERROR",
		"blunder":         "¡¡GRAVE ERROR!!",
		"forced":          "FORZADA",
		"engine_suggests": "EL MOTOR SUGIERE",
		"opponent_best":   "MEJOR DEL OPONENTE",
	},
	"fr": {
		"brilliant":       "BRILLANT!!",
		"best":            "MEILLEUR COUP",
		"excellent":       "EXCELLENT",
		"good":            "BON",
		"inaccuracy":      "IMPRÉCISION",
		"mistake":         "ERREUR",
		"blunder":         "GAFFE!!",
		"forced":          "FORCÉ",
		"engine_suggests": "LE MOTEUR SUGGÈRE",
		"opponent_best":   "MEILLEUR DE L'ADVERSAIRE",
	},
	"de": {
		"brilliant":       "BRILLANT!!",
		"best":            "BESTER ZUG",
		"excellent":       "AUSGEZEICHNET",
		"good":            "GUT",
		"inaccuracy":      "UNGENAUIGKEIT",
		"mistake":         "FEHLER",
		"blunder":         "GROBER FEHLER!!",
		"forced":          "ERZWUNGEN",
		"engine_suggests": "ENGINE SCHLÄGT VOR",
		"opponent_best":   "GEGNERS BESTE",
	},
	"ru": {
		"brilliant":       "БЛЕСТЯЩЕ!!",
		"best":            "ЛУЧШИЙ ХОД",
		"excellent":       "ОТЛИЧНО",
		"good":            "ХОРОШО",
		"inaccuracy":      "НЕТОЧНОСТЬ",
		"mistake":         "ОШИБКА",
		"blunder":         "ГРУБАЯ ОШИБКА!!",
		"forced":          "ВЫНУЖДЕННЫЙ",
		"engine_suggests": "ДВИЖОК ПРЕДЛАГАЕТ",
		"opponent_best":   "ЛУЧШИЙ ХОД ПРОТИВНИКА",
	},
	"zh": {
		"brilliant":       "精彩!!",
		"best":            "最佳着法",
		"excellent":       "优秀",
		"good":            "良好",
		"inaccuracy":      "不精确",
		"mistake":         "失误",
		"blunder":         "大错!!",
		"forced":          "被迫",
		"engine_suggests": "引擎建议",
		"opponent_best":   "对手最佳",
	},
}

// DefaultLabels returns a fresh copy of the label table for a language,
// falling back to English for unknown codes.
func DefaultLabels(language string) map[string]string {
	table, ok := labelsByLanguage[language]
	if !ok {
		table = labelsByLanguage["en"]
	}
	out := make(map[string]string, len(table))
	for k, v := range table {
		out[k] = v
	}
	return out
}

func knownLanguage(code string) bool {
	_, ok := labelsByLanguage[code]
	return ok
}

func knownLabelKey(key string) bool {
	for _, k := range labelKeys {
		if k == key {
			return true
		}
	}
	return false
}

// sortedKeys gives map iteration a stable order so validation errors are
// deterministic.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
