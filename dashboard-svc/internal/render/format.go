package render

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const notAvailable = "N/A"

// Formatter applies the dashboard's number formatting policy.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a formatter for the given BCP 47 locale. An unparsable
// locale falls back to English.
func NewFormatter(locale string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Rating renders two decimals, or N/A when the server had no rating.
func (f *Formatter) Rating(r *float64) string {
	if r == nil {
		return notAvailable
	}
	return strconv.FormatFloat(*r, 'f', 2, 64)
}

// Count renders n with locale thousands separators.
func (f *Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}

func (f *Formatter) Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

func (f *Formatter) Cost(c *int) string {
	if c == nil {
		return notAvailable
	}
	return strconv.Itoa(*c)
}

// List joins list-valued fields in server order.
func (f *Formatter) List(items []string) string {
	return strings.Join(items, ", ")
}
