package artifact

import (
	"path"
	"strings"
)

// Canonical language identifiers used across the parser, editor and export.
const (
	LangMarkdown   = "markdown"
	LangTypeScript = "typescript"
	LangJavaScript = "javascript"
	LangJSON       = "json"
	LangCSS        = "css"
	LangHTML       = "html"
	LangYAML       = "yaml"
	LangPlaintext  = "plaintext"
)

// tagToLanguage maps fence tags and file extensions to canonical languages.
// jsx/tsx alias to javascript/typescript for classification; the original
// extension is preserved for path purposes by callers.
var tagToLanguage = map[string]string{
	"markdown":   LangMarkdown,
	"md":         LangMarkdown,
	"typescript": LangTypeScript,
	"ts":         LangTypeScript,
	"tsx":        LangTypeScript,
	"javascript": LangJavaScript,
	"js":         LangJavaScript,
	"jsx":        LangJavaScript,
	"json":       LangJSON,
	"css":        LangCSS,
	"html":       LangHTML,
	"yaml":       LangYAML,
	"yml":        LangYAML,
	"plaintext":  LangPlaintext,
	"text":       LangPlaintext,
	"txt":        LangPlaintext,
}

// languageToExt maps canonical languages to default extensions. Classifying
// a .tsx path and synthesizing a new typescript filename yields .ts: the
// mapping is deliberately lossy in that direction.
var languageToExt = map[string]string{
	LangMarkdown:   "md",
	LangTypeScript: "ts",
	LangJavaScript: "js",
	LangJSON:       "json",
	LangCSS:        "css",
	LangHTML:       "html",
	LangYAML:       "yaml",
	LangPlaintext:  "txt",
}

// LanguageForTag maps a fenced-code-block language tag to a canonical
// language. Unknown tags map to plaintext; the function is total.
func LanguageForTag(tag string) string {
	if lang, ok := tagToLanguage[strings.ToLower(strings.TrimSpace(tag))]; ok {
		return lang
	}
	return LangPlaintext
}

// LanguageForPath maps a file path to a canonical language via its extension.
// Paths without a known extension map to plaintext.
func LanguageForPath(p string) string {
	ext := strings.TrimPrefix(path.Ext(p), ".")
	if ext == "" {
		return LangPlaintext
	}
	return LanguageForTag(ext)
}

// ExtensionFor returns the default file extension (without dot) for a
// canonical language. Unknown languages default to txt.
func ExtensionFor(language string) string {
	if ext, ok := languageToExt[language]; ok {
		return ext
	}
	return "txt"
}
