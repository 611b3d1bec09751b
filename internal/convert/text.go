// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// wordGap is the TJ displacement, in thousandths of a text space unit,
// beyond which a kerning adjustment is read as a space between words.
const wordGap = 200

// lineBuilder accumulates page text, collapsing repeated separators.
type lineBuilder struct {
	b strings.Builder
}

func (l *lineBuilder) text(s string) {
	l.b.WriteString(s)
}

func (l *lineBuilder) last() byte {
	s := l.b.String()
	if s == "" {
		return 0
	}
	return s[len(s)-1]
}

func (l *lineBuilder) newline() {
	if c := l.last(); c != 0 && c != '\n' {
		l.b.WriteByte('\n')
	}
}

func (l *lineBuilder) space() {
	if c := l.last(); c != 0 && c != '\n' && c != ' ' {
		l.b.WriteByte(' ')
	}
}

// pageText walks the page's content stream and returns its text in stream
// order. Td/TD moves to another line, T*, ', ", and a change of Tm row
// start a new line; horizontal moves and wide TJ gaps insert a space.
func pageText(p pdf.Page) string {
	fonts := make(map[string]pdf.TextEncoding)
	for _, name := range p.Fonts() {
		fonts[name] = p.Font(name).Encoder()
	}

	var (
		out  lineBuilder
		enc  pdf.TextEncoding
		rowY float64
		inTm bool
	)
	decode := func(v pdf.Value) string {
		if enc == nil {
			return v.RawString()
		}
		return enc.Decode(v.RawString())
	}

	interpret := func(strm pdf.Value) {
		pdf.Interpret(strm, func(stk *pdf.Stack, op string) {
			n := stk.Len()
			args := make([]pdf.Value, n)
			for i := n - 1; i >= 0; i-- {
				args[i] = stk.Pop()
			}

			switch op {
			case "Tf":
				if n >= 1 {
					enc = fonts[args[0].Name()]
				}
			case "Td", "TD":
				if n == 2 {
					if args[1].Float64() != 0 {
						out.newline()
					} else if args[0].Float64() != 0 {
						out.space()
					}
				}
			case "Tm":
				if n == 6 {
					y := args[5].Float64()
					if inTm && y == rowY {
						out.space()
					} else {
						out.newline()
					}
					rowY, inTm = y, true
				}
			case "T*":
				out.newline()
			case "Tj":
				if n == 1 {
					out.text(decode(args[0]))
				}
			case "'":
				out.newline()
				if n == 1 {
					out.text(decode(args[0]))
				}
			case "\"":
				out.newline()
				if n == 3 {
					out.text(decode(args[2]))
				}
			case "TJ":
				if n != 1 {
					return
				}
				arr := args[0]
				for i := 0; i < arr.Len(); i++ {
					v := arr.Index(i)
					if v.Kind() == pdf.String {
						out.text(decode(v))
					} else if -v.Float64() > wordGap {
						out.space()
					}
				}
			}
		})
	}

	contents := p.V.Key("Contents")
	if contents.Kind() == pdf.Array {
		for i := 0; i < contents.Len(); i++ {
			interpret(contents.Index(i))
		}
	} else {
		interpret(contents)
	}
	return strings.TrimRight(out.b.String(), " \n")
}
