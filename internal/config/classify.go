package config

import (
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Classify tells at-rules and selectors apart for a condition key that is
// not in the condition table. The key is tokenized with the CSS lexer:
// a leading at-keyword makes an at-rule, any selector syntax (combinators,
// nesting "&", pseudo colons, attribute brackets, class or id markers)
// makes a selector. Anything else is KindArbitrary. All three render
// bracketed; the kind only matters for diagnostics.
func Classify(key string) ConditionKind {
	lexer := css.NewLexer(parse.NewInputString(key))
	first := true
	for {
		tt, data := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return KindArbitrary
		case css.WhitespaceToken, css.CommentToken:
			continue
		case css.AtKeywordToken:
			if first {
				return KindAtRule
			}
		case css.ColonToken, css.LeftBracketToken, css.HashToken,
			css.IncludeMatchToken, css.ColumnToken:
			return KindSelector
		case css.DelimToken:
			if len(data) > 0 {
				switch data[0] {
				case '&', '.', '>', '+', '~', '*':
					return KindSelector
				}
			}
		}
		first = false
	}
}
