package encode

import (
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml/lexer"
	"github.com/goccy/go-yaml/printer"
)

type ColorAttr int

const (
	KeyColor ColorAttr = iota
	StringColor
	NumberColor
	BoolColor
	CommentColor
	AnchorColor
	InsertColor
	DeleteColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[ColorAttr]func(string, ...any) string{},
	}
	colors.Map[KeyColor] = color.RGB(128, 168, 196).SprintfFunc()
	colors.Map[StringColor] = color.RGB(8, 196, 16).SprintfFunc()
	colors.Map[NumberColor] = color.RGB(128, 216, 236).SprintfFunc()
	colors.Map[BoolColor] = color.CyanString
	colors.Map[CommentColor] = color.BlueString
	colors.Map[AnchorColor] = color.RGB(196, 168, 128).SprintfFunc()
	colors.Map[InsertColor] = color.GreenString
	colors.Map[DeleteColor] = color.RedString
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.Replace(v, "%", "%%", -1))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(a ColorAttr, s string) string {
	return c.Get(a)(s)
}

func (c *Colors) Get(a ColorAttr) func(string, ...any) string {
	f := c.Map[a]
	if f == nil {
		return c.Default
	}
	return f
}

// property splits the escape sequences of a color around its text.
func (c *Colors) property(a ColorAttr) printer.PrintFunc {
	pre, post, _ := strings.Cut(c.Color(a, "\x00"), "\x00")
	return func() *printer.Property {
		return &printer.Property{Prefix: pre, Suffix: post}
	}
}

// Print colors an encoded YAML or JSON document.
func (c *Colors) Print(doc []byte) string {
	if len(doc) == 0 {
		return ""
	}
	p := printer.Printer{
		MapKey:  c.property(KeyColor),
		String:  c.property(StringColor),
		Number:  c.property(NumberColor),
		Bool:    c.property(BoolColor),
		Comment: c.property(CommentColor),
		Anchor:  c.property(AnchorColor),
		Alias:   c.property(AnchorColor),
	}
	res := p.PrintTokens(lexer.Tokenize(string(doc)))
	if !strings.HasSuffix(res, "\n") && strings.HasSuffix(string(doc), "\n") {
		res += "\n"
	}
	return res
}
