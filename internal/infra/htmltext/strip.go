// Package htmltext reduces rich-text HTML fields to plain text.
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Strip removes markup from s, concatenating the text nodes in
// document order with character references decoded. Malformed or
// unterminated markup never fails: whatever text the tokenizer can
// recover is returned.
func Strip(s string) string {
	if s == "" {
		return ""
	}

	tok := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch tok.Next() {
		case html.ErrorToken:
			// io.EOF or an unparseable tail; either way the text
			// collected so far is the answer.
			return b.String()
		case html.TextToken:
			b.Write(tok.Text())
		}
	}
}
