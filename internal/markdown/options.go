package markdown

import "git.home.luguber.info/inful/sitegen/internal/frontmatter"

// Options is the parser and serializer configuration bundle. The same bundle
// is used for parsing and rendering a document.
type Options struct {
	Strikethrough    bool `yaml:"strikethrough"`
	Tables           bool `yaml:"tables"`
	Autolink         bool `yaml:"autolink"`
	TaskList         bool `yaml:"tasklist"`
	Footnotes        bool `yaml:"footnotes"`
	DescriptionLists bool `yaml:"description_lists"`
	Alerts           bool `yaml:"alerts"`
	Smart            bool `yaml:"smart"`

	// MathDollars enables $...$ and $$...$$ math.
	MathDollars bool `yaml:"math_dollars"`
	// MathCode enables $`...`$ math and marks ```math fences as display math.
	MathCode bool `yaml:"math_code"`

	// Shortcodes expands :name: emoji shortcodes to their characters.
	Shortcodes bool `yaml:"shortcodes"`
	// Wikilinks enables [[target]] links resolved to the mirrored .html page.
	Wikilinks bool `yaml:"wikilinks"`
	// WikilinkTitleBeforePipe reads [[title|target]] instead of
	// [[target|title]].
	WikilinkTitleBeforePipe bool `yaml:"wikilink_title_before_pipe"`

	// FrontMatterDelimiter marks a leading block that is stripped before
	// parsing. Empty disables front matter detection.
	FrontMatterDelimiter string `yaml:"front_matter_delimiter"`
	// HeaderIDs is prepended to generated heading ids. Empty disables ids.
	HeaderIDs string `yaml:"header_ids"`

	// Unsafe emits raw HTML verbatim instead of an omission comment.
	Unsafe     bool `yaml:"unsafe"`
	HardBreaks bool `yaml:"hard_breaks"`
}

// DefaultOptions enables every supported extension.
func DefaultOptions() Options {
	return Options{
		Strikethrough:           true,
		Tables:                  true,
		Autolink:                true,
		TaskList:                true,
		Footnotes:               true,
		DescriptionLists:        true,
		Alerts:                  true,
		Smart:                   true,
		MathDollars:             true,
		MathCode:                true,
		Shortcodes:              true,
		Wikilinks:               true,
		WikilinkTitleBeforePipe: true,
		FrontMatterDelimiter:    frontmatter.DefaultDelimiter,
		HeaderIDs:               "header-",
		Unsafe:                  true,
	}
}
