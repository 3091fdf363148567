package measure

import (
	"sort"
	"sync"
	"unsafe"

	forestbash "github.com/alexaandru/go-sitter-forest/bash"
	forestc "github.com/alexaandru/go-sitter-forest/c"
	forestcsharp "github.com/alexaandru/go-sitter-forest/c_sharp"
	forestcpp "github.com/alexaandru/go-sitter-forest/cpp"
	forestgo "github.com/alexaandru/go-sitter-forest/go"
	forestjava "github.com/alexaandru/go-sitter-forest/java"
	forestjs "github.com/alexaandru/go-sitter-forest/javascript"
	forestkotlin "github.com/alexaandru/go-sitter-forest/kotlin"
	forestphp "github.com/alexaandru/go-sitter-forest/php"
	forestpython "github.com/alexaandru/go-sitter-forest/python"
	forestruby "github.com/alexaandru/go-sitter-forest/ruby"
	forestrust "github.com/alexaandru/go-sitter-forest/rust"
	forestscala "github.com/alexaandru/go-sitter-forest/scala"
	foresttsx "github.com/alexaandru/go-sitter-forest/tsx"
	foresttypescript "github.com/alexaandru/go-sitter-forest/typescript"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// languageFuncs maps language names to their tree-sitter GetLanguage
// functions. Only languages with a wired grammar appear here.
var languageFuncs = map[string]func() unsafe.Pointer{
	"bash":       forestbash.GetLanguage,
	"c":          forestc.GetLanguage,
	"c_sharp":    forestcsharp.GetLanguage,
	"cpp":        forestcpp.GetLanguage,
	"go":         forestgo.GetLanguage,
	"java":       forestjava.GetLanguage,
	"javascript": forestjs.GetLanguage,
	"kotlin":     forestkotlin.GetLanguage,
	"php":        forestphp.GetLanguage,
	"python":     forestpython.GetLanguage,
	"ruby":       forestruby.GetLanguage,
	"rust":       forestrust.GetLanguage,
	"scala":      forestscala.GetLanguage,
	"tsx":        foresttsx.GetLanguage,
	"typescript": foresttypescript.GetLanguage,
}

// extToLanguage maps file extensions to grammar names.
var extToLanguage = map[string]string{
	".c":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".cs":    "c_sharp",
	".cxx":   "cpp",
	".go":    "go",
	".h":     "c",
	".hpp":   "cpp",
	".java":  "java",
	".js":    "javascript",
	".jsx":   "javascript",
	".kt":    "kotlin",
	".mjs":   "javascript",
	".php":   "php",
	".py":    "python",
	".rb":    "ruby",
	".rs":    "rust",
	".scala": "scala",
	".sh":    "bash",
	".ts":    "typescript",
	".tsx":   "tsx",
}

var languageCache sync.Map

// languageForExt returns the grammar name for a file extension, or the
// empty string when the extension has no wired grammar.
func languageForExt(ext string) string {
	return extToLanguage[ext]
}

// getLanguage returns the tree-sitter Language for the given name, or nil
// if not supported. Languages are constructed once and cached.
func getLanguage(name string) *sitter.Language {
	if cached, ok := languageCache.Load(name); ok {
		lang, castOK := cached.(*sitter.Language)
		if castOK {
			return lang
		}
	}

	fn, ok := languageFuncs[name]
	if !ok {
		return nil
	}

	lang := sitter.NewLanguage(fn())
	languageCache.Store(name, lang)

	return lang
}

// SupportedExtensions returns the sorted list of extensions with a wired
// grammar. Used as the default discovery allow-set.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extToLanguage))
	for ext := range extToLanguage {
		exts = append(exts, ext)
	}

	sort.Strings(exts)

	return exts
}
