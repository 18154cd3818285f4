package syntax

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	bashlang "github.com/smacker/go-tree-sitter/bash"
	clang "github.com/smacker/go-tree-sitter/c"
	cpplang "github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/lua"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/toml"
	tsxlang "github.com/smacker/go-tree-sitter/typescript/tsx"
	tslang "github.com/smacker/go-tree-sitter/typescript/typescript"
	"github.com/smacker/go-tree-sitter/yaml"
)

// ErrUnsupportedLanguage reports a language id with no registered grammar.
var ErrUnsupportedLanguage = errors.New("syntax: unsupported language")

// Language describes one registered language: its grammar, how file paths
// map to it, and the editing metadata host commands need.
type Language struct {
	ID         string
	Name       string
	Extensions []string
	Filenames  []string

	// CommentPrefix is the line-comment leader; empty when the language
	// has no line comments (toggling comments is then a no-op).
	CommentPrefix string
	// Indent is one indent unit for this language.
	Indent string

	grammar *sitter.Language
	rules   ruleTable
}

var languages = []*Language{
	{
		ID: "go", Name: "Go",
		Extensions:    []string{".go"},
		CommentPrefix: "//",
		Indent:        "\t",
		grammar:       golang.GetLanguage(),
		rules:         goRules,
	},
	{
		ID: "rust", Name: "Rust",
		Extensions:    []string{".rs"},
		CommentPrefix: "//",
		Indent:        "    ",
		grammar:       rust.GetLanguage(),
		rules:         rustRules,
	},
	{
		ID: "javascript", Name: "JavaScript",
		Extensions:    []string{".js", ".jsx", ".mjs", ".cjs"},
		CommentPrefix: "//",
		Indent:        "  ",
		grammar:       javascript.GetLanguage(),
		rules:         scriptRules,
	},
	{
		ID: "typescript", Name: "TypeScript",
		Extensions:    []string{".ts", ".mts", ".cts"},
		CommentPrefix: "//",
		Indent:        "  ",
		grammar:       tslang.GetLanguage(),
		rules:         scriptRules,
	},
	{
		ID: "tsx", Name: "TSX",
		Extensions:    []string{".tsx"},
		CommentPrefix: "//",
		Indent:        "  ",
		grammar:       tsxlang.GetLanguage(),
		rules:         scriptRules,
	},
	{
		ID: "python", Name: "Python",
		Extensions:    []string{".py", ".pyi"},
		CommentPrefix: "#",
		Indent:        "    ",
		grammar:       python.GetLanguage(),
		rules:         pythonRules,
	},
	{
		ID: "c", Name: "C",
		Extensions:    []string{".c", ".h"},
		CommentPrefix: "//",
		Indent:        "    ",
		grammar:       clang.GetLanguage(),
		rules:         cRules,
	},
	{
		ID: "cpp", Name: "C++",
		Extensions:    []string{".cc", ".cpp", ".cxx", ".hpp", ".hh", ".hxx"},
		CommentPrefix: "//",
		Indent:        "    ",
		grammar:       cpplang.GetLanguage(),
		rules:         cRules,
	},
	{
		ID: "java", Name: "Java",
		Extensions:    []string{".java"},
		CommentPrefix: "//",
		Indent:        "    ",
		grammar:       java.GetLanguage(),
		rules:         cRules,
	},
	{
		ID: "ruby", Name: "Ruby",
		Extensions:    []string{".rb", ".rake"},
		Filenames:     []string{"Rakefile", "Gemfile"},
		CommentPrefix: "#",
		Indent:        "  ",
		grammar:       ruby.GetLanguage(),
		rules:         nil,
	},
	{
		ID: "php", Name: "PHP",
		Extensions:    []string{".php"},
		CommentPrefix: "//",
		Indent:        "    ",
		grammar:       php.GetLanguage(),
		rules:         nil,
	},
	{
		ID: "lua", Name: "Lua",
		Extensions:    []string{".lua"},
		CommentPrefix: "--",
		Indent:        "  ",
		grammar:       lua.GetLanguage(),
		rules:         nil,
	},
	{
		ID: "bash", Name: "Bash",
		Extensions:    []string{".sh", ".bash", ".zsh"},
		Filenames:     []string{".bashrc", ".zshrc", ".bash_profile"},
		CommentPrefix: "#",
		Indent:        "  ",
		grammar:       bashlang.GetLanguage(),
		rules:         nil,
	},
	{
		ID: "css", Name: "CSS",
		Extensions: []string{".css"},
		Indent:     "  ",
		grammar:    css.GetLanguage(),
		rules:      cssRules,
	},
	{
		ID: "html", Name: "HTML",
		Extensions: []string{".html", ".htm"},
		Indent:     "  ",
		grammar:    html.GetLanguage(),
		rules:      htmlRules,
	},
	{
		ID: "yaml", Name: "YAML",
		Extensions:    []string{".yaml", ".yml"},
		CommentPrefix: "#",
		Indent:        "  ",
		grammar:       yaml.GetLanguage(),
		rules:         dataRules,
	},
	{
		ID: "toml", Name: "TOML",
		Extensions:    []string{".toml"},
		CommentPrefix: "#",
		Indent:        "  ",
		grammar:       toml.GetLanguage(),
		rules:         dataRules,
	},
}

var (
	languageByID       = make(map[string]*Language, len(languages))
	languageByExt      = make(map[string]*Language)
	languageByFilename = make(map[string]*Language)
)

func init() {
	for _, l := range languages {
		languageByID[l.ID] = l
		for _, ext := range l.Extensions {
			languageByExt[ext] = l
		}
		for _, name := range l.Filenames {
			languageByFilename[name] = l
		}
	}
}

// Lookup returns the registered language for id.
func Lookup(id string) (*Language, error) {
	l, ok := languageByID[id]
	if !ok {
		return nil, ErrUnsupportedLanguage
	}
	return l, nil
}

// Languages returns all registered language ids, sorted.
func Languages() []string {
	ids := make([]string, 0, len(languages))
	for _, l := range languages {
		ids = append(ids, l.ID)
	}
	sort.Strings(ids)
	return ids
}

// Detect maps a file path to a registered language id. Exact base names
// win over extensions. Returns "" for unknown paths.
func Detect(path string) string {
	base := filepath.Base(path)
	if l, ok := languageByFilename[base]; ok {
		return l.ID
	}
	ext := strings.ToLower(filepath.Ext(base))
	if l, ok := languageByExt[ext]; ok {
		return l.ID
	}
	return ""
}
