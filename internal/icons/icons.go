// Package icons maps catalog icon identifiers to Devicon glyph classes.
// The icon font itself is a static asset; this package only resolves
// names, and unknown names resolve to nothing rather than an error.
package icons

import (
	"fmt"
	"html/template"
	"strings"
)

var classes = map[string]string{
	"go":         "devicon-go-plain",
	"python":     "devicon-python-plain",
	"c":          "devicon-c-plain",
	"c++":        "devicon-cplusplus-plain",
	"c#":         "devicon-csharp-plain",
	"java":       "devicon-java-plain",
	"javascript": "devicon-javascript-plain",
	"typescript": "devicon-typescript-plain",
	"rust":       "devicon-rust-original",
	"ruby":       "devicon-ruby-plain",
	"php":        "devicon-php-plain",
	"kotlin":     "devicon-kotlin-plain",
	"swift":      "devicon-swift-plain",
	"lua":        "devicon-lua-plain",
	"haskell":    "devicon-haskell-plain",
	"elixir":     "devicon-elixir-plain",
	"shell":      "devicon-bash-plain",
	"bash":       "devicon-bash-plain",
	"html":       "devicon-html5-plain",
	"css":        "devicon-css3-plain",
	"vue":        "devicon-vuejs-plain",
	"react":      "devicon-react-original",
	"docker":     "devicon-docker-plain",
	"linux":      "devicon-linux-plain",
	"git":        "devicon-git-plain",
	"postgresql": "devicon-postgresql-plain",
	"sqlite":     "devicon-sqlite-plain",
	"tex":        "devicon-latex-original",
	"jupyter":    "devicon-jupyter-plain",
}

// Class returns the Devicon CSS class for an icon identifier. Lookup
// is case-insensitive.
func Class(name string) (string, bool) {
	class, ok := classes[strings.ToLower(strings.TrimSpace(name))]
	return class, ok
}

// Glyph renders the <i> element for an icon identifier, or nothing
// when the identifier has no glyph in the font.
func Glyph(name string) template.HTML {
	class, ok := Class(name)
	if !ok {
		return ""
	}
	return template.HTML(fmt.Sprintf(`<i class="%s" title="%s"></i>`, class, template.HTMLEscapeString(name)))
}
