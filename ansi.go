package tablebuilder

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// theme expands the named styles used by the default options.
var theme = map[Style]Style{
	StyleHeader:  "bold",
	StyleFooter:  "bold",
	StyleTitle:   "italic",
	StyleCaption: "italic dim",
}

// colorNames maps color names to ANSI 256-color numbers.
var colorNames = map[string]string{
	"black":          "0",
	"red":            "1",
	"green":          "2",
	"yellow":         "3",
	"blue":           "4",
	"magenta":        "5",
	"cyan":           "6",
	"white":          "7",
	"bright_black":   "8",
	"grey":           "8",
	"gray":           "8",
	"bright_red":     "9",
	"bright_green":   "10",
	"bright_yellow":  "11",
	"bright_blue":    "12",
	"bright_magenta": "13",
	"bright_cyan":    "14",
	"bright_white":   "15",
	"dark_blue":      "18",
	"deep_sky_blue1": "39",
	"green3":         "40",
	"cyan1":          "51",
	"dark_violet":    "128",
	"yellow2":        "190",
	"orange1":        "214",
}

// LipglossStyle translates s into a lipgloss style. Unknown words produce an
// [ErrInvalidStyle] error alongside the style built from the known ones.
func LipglossStyle(r *lipgloss.Renderer, s Style) (lipgloss.Style, error) {
	var ls lipgloss.Style
	if r != nil {
		ls = r.NewStyle()
	} else {
		ls = lipgloss.NewStyle()
	}
	var bad []string
	words := expandTheme(s)
	for i := 0; i < len(words); i++ {
		w := words[i]
		switch w {
		case "none", "default":
		case "bold", "b":
			ls = ls.Bold(true)
		case "dim", "d":
			ls = ls.Faint(true)
		case "italic", "i":
			ls = ls.Italic(true)
		case "underline", "u":
			ls = ls.Underline(true)
		case "strike", "s":
			ls = ls.Strikethrough(true)
		case "reverse", "r":
			ls = ls.Reverse(true)
		case "blink":
			ls = ls.Blink(true)
		case "on":
			if i+1 >= len(words) {
				bad = append(bad, w)
				continue
			}
			i++
			c, ok := parseColor(words[i])
			if !ok {
				bad = append(bad, words[i])
				continue
			}
			ls = ls.Background(c)
		default:
			c, ok := parseColor(w)
			if !ok {
				bad = append(bad, w)
				continue
			}
			ls = ls.Foreground(c)
		}
	}
	if len(bad) > 0 {
		return ls, fmt.Errorf("%w: %q: unknown %s", ErrInvalidStyle, s, strings.Join(bad, ", "))
	}
	return ls, nil
}

func expandTheme(s Style) []string {
	var words []string
	for _, w := range strings.Fields(strings.ToLower(string(s))) {
		if t, ok := theme[Style(w)]; ok {
			words = append(words, strings.Fields(string(t))...)
			continue
		}
		words = append(words, w)
	}
	return words
}

func parseColor(w string) (lipgloss.Color, bool) {
	if n, ok := colorNames[w]; ok {
		return lipgloss.Color(n), true
	}
	if strings.HasPrefix(w, "#") && (len(w) == 7 || len(w) == 4) {
		return lipgloss.Color(w), true
	}
	if inner, ok := strings.CutPrefix(w, "color("); ok {
		w = strings.TrimSuffix(inner, ")")
	}
	if n, err := strconv.Atoi(w); err == nil && n >= 0 && n <= 255 {
		return lipgloss.Color(w), true
	}
	return "", false
}

// ANSIStyler returns a [Styler] that renders styles as terminal escape codes
// through r. A nil renderer uses lipgloss' default, which detects the color
// profile of stdout. Parsed styles are cached.
func ANSIStyler(r *lipgloss.Renderer) Styler {
	var mu sync.Mutex
	cache := make(map[Style]lipgloss.Style)
	return func(style Style, text string) string {
		if style.IsZero() || text == "" {
			return text
		}
		mu.Lock()
		ls, ok := cache[style]
		if !ok {
			ls, _ = LipglossStyle(r, style)
			cache[style] = ls
		}
		mu.Unlock()
		return ls.Render(text)
	}
}
