package dataproperty

import (
	"fmt"
	"html"
	"strings"

	"github.com/bjaus/dataproperty/mbstr"
)

// LineBreakHandling selects what the preprocessor does with line breaks.
type LineBreakHandling int

const (
	LineBreakNOP     LineBreakHandling = iota // leave line breaks as they are
	LineBreakReplace                          // replace "\r\n" and "\n" with LineBreakRepl
	LineBreakEscape                           // write "\n" and "\r" as two-character escapes
)

var lineBreakNames = map[LineBreakHandling]string{
	LineBreakNOP:     "nop",
	LineBreakReplace: "replace",
	LineBreakEscape:  "escape",
}

// String returns the handling name.
func (h LineBreakHandling) String() string {
	if name, ok := lineBreakNames[h]; ok {
		return name
	}
	return fmt.Sprintf("LineBreakHandling(%d)", int(h))
}

// MarshalText implements encoding.TextMarshaler.
func (h LineBreakHandling) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *LineBreakHandling) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for k, name := range lineBreakNames {
		if name == s {
			*h = k
			return nil
		}
	}
	return invalidConfig("unknown line break handling %q", string(text))
}

// DefaultTabLength is the number of spaces a tab expands to.
const DefaultTabLength = 2

var formulaPrefixes = []string{"-", "+", "=", "@"}

// Preprocessor normalises string values before type inference.
// Non-string values pass through unchanged.
type Preprocessor struct {
	// StripStr lists characters trimmed from both ends. Empty means no strip.
	StripStr               string            `yaml:"strip_str"`
	ReplaceTabsWithSpaces  bool              `yaml:"replace_tabs_with_spaces"`
	TabLength              int               `yaml:"tab_length"`
	LineBreakHandling      LineBreakHandling `yaml:"line_break_handling"`
	LineBreakRepl          string            `yaml:"line_break_repl"`
	EscapeHTMLTag          bool              `yaml:"escape_html_tag"`
	EscapeFormulaInjection bool              `yaml:"escape_formula_injection"`
}

// PreprocessorOption configures a Preprocessor.
type PreprocessorOption func(*Preprocessor)

// WithStripStr trims the characters in chars from both ends of strings.
func WithStripStr(chars string) PreprocessorOption {
	return func(p *Preprocessor) { p.StripStr = chars }
}

// WithTabsReplaced expands each tab to tabLength spaces.
func WithTabsReplaced(tabLength int) PreprocessorOption {
	return func(p *Preprocessor) {
		p.ReplaceTabsWithSpaces = true
		p.TabLength = tabLength
	}
}

// WithLineBreakReplace replaces line breaks with repl.
func WithLineBreakReplace(repl string) PreprocessorOption {
	return func(p *Preprocessor) {
		p.LineBreakHandling = LineBreakReplace
		p.LineBreakRepl = repl
	}
}

// WithLineBreakEscape writes line breaks as backslash escapes.
func WithLineBreakEscape() PreprocessorOption {
	return func(p *Preprocessor) { p.LineBreakHandling = LineBreakEscape }
}

// WithHTMLTagEscape escapes <, >, &, ' and ".
func WithHTMLTagEscape(enabled bool) PreprocessorOption {
	return func(p *Preprocessor) { p.EscapeHTMLTag = enabled }
}

// WithFormulaInjectionEscape prefixes strings that start with -, +, = or @
// with a single quote so spreadsheets do not evaluate them.
func WithFormulaInjectionEscape(enabled bool) PreprocessorOption {
	return func(p *Preprocessor) { p.EscapeFormulaInjection = enabled }
}

// NewPreprocessor returns a Preprocessor with default settings and opts
// applied.
func NewPreprocessor(opts ...PreprocessorOption) Preprocessor {
	p := Preprocessor{TabLength: DefaultTabLength, LineBreakRepl: " "}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Validate reports configuration that cannot be applied.
func (p Preprocessor) Validate() error {
	if p.ReplaceTabsWithSpaces && p.TabLength <= 0 {
		return invalidConfig("tab length must be positive, got %d", p.TabLength)
	}
	if _, ok := lineBreakNames[p.LineBreakHandling]; !ok {
		return invalidConfig("unknown line break handling %d", int(p.LineBreakHandling))
	}
	return nil
}

// Preprocess normalises v. For strings (and decodable byte slices) it
// returns the processed string and, with ok set, the same string with ANSI
// escapes removed. Other values are returned unchanged with ok unset.
func (p Preprocessor) Preprocess(v any) (data any, noANSI string, ok bool) {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		decoded, err := mbstr.Decode(x)
		if err != nil {
			return v, "", false
		}
		s = decoded
	default:
		return v, "", false
	}

	if p.StripStr != "" {
		s = strings.Trim(s, p.StripStr)
	}
	if p.ReplaceTabsWithSpaces {
		s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", p.TabLength))
	}
	if p.EscapeHTMLTag {
		s = html.EscapeString(s)
	}
	s = p.handleLineBreak(s)
	if p.EscapeFormulaInjection {
		s = escapeFormulaInjection(s)
	}
	return s, StripANSIEscape(s), true
}

func (p Preprocessor) handleLineBreak(s string) string {
	switch p.LineBreakHandling {
	case LineBreakReplace:
		s = strings.ReplaceAll(s, "\r\n", p.LineBreakRepl)
		return strings.ReplaceAll(s, "\n", p.LineBreakRepl)
	case LineBreakEscape:
		s = strings.ReplaceAll(s, "\n", `\n`)
		return strings.ReplaceAll(s, "\r", `\r`)
	}
	return s
}

func escapeFormulaInjection(s string) string {
	for _, prefix := range formulaPrefixes {
		if strings.HasPrefix(s, prefix) {
			return "'" + s
		}
	}
	return s
}
