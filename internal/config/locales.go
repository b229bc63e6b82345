package config

import "log/slog"

const (
	LangEN = "en"
	LangES = "es"
)

func GetLocaleConfig(lang string) string {
	switch lang {
	case LangEN:
		return LangEN
	case LangES:
		return LangES
	default:
		slog.Warn("unsupported language, falling back to English", "lang", lang)
		return LangEN
	}
}
