package cnst

// XLang is the header and context key carrying the client's language preference
const XLang = "X-Lang"

// Supported language codes
const (
	LangEN = "en"
	LangZH = "zh"
)
