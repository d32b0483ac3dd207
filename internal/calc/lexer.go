package calc

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"
)

// TokenKind classifies a lexical token.
type TokenKind uint8

const (
	TokEOF TokenKind = iota
	TokNumber
	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokPercent
	TokMod
	TokLParen
	TokRParen
	TokLT
	TokGT
	TokLE
	TokGE
	TokEQ
	TokNE
)

var tokenNames = [...]string{
	TokEOF:     "end of input",
	TokNumber:  "number",
	TokPlus:    "+",
	TokMinus:   "-",
	TokStar:    "*",
	TokSlash:   "/",
	TokPercent: "%",
	TokMod:     "mod",
	TokLParen:  "(",
	TokRParen:  ")",
	TokLT:      "<",
	TokGT:      ">",
	TokLE:      "<=",
	TokGE:      ">=",
	TokEQ:      "==",
	TokNE:      "!=",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "unknown"
}

// Token is one lexeme with its byte offset in the folded input.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int
}

// Normalize folds full-width forms to their ASCII equivalents so that
// "４２ ＋ １" reads as "42 + 1".
func Normalize(src string) string {
	return width.Narrow.String(src)
}

// Lex splits src into tokens. Digit groups may be separated by '_'.
func Lex(src string) ([]Token, error) {
	src = Normalize(src)
	var toks []Token
	i := 0
	for i < len(src) {
		ch := src[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
			continue
		case isDigit(ch):
			start := i
			for i < len(src) && (isDigit(src[i]) || src[i] == '_') {
				i++
			}
			text := src[start:i]
			if strings.HasSuffix(text, "_") || strings.Contains(text, "__") {
				return nil, &Error{Pos: start, Msg: fmt.Sprintf("misplaced '_' in %q", text), Err: ErrSyntax}
			}
			toks = append(toks, Token{Kind: TokNumber, Text: strings.ReplaceAll(text, "_", ""), Pos: start})
			continue
		case strings.HasPrefix(src[i:], "mod") && (i+3 == len(src) || !isWordChar(src[i+3])):
			toks = append(toks, Token{Kind: TokMod, Text: "mod", Pos: i})
			i += 3
			continue
		}

		kind, n := punct(src[i:])
		if n == 0 {
			return nil, &Error{Pos: i, Msg: fmt.Sprintf("unexpected character %q", rune(ch)), Err: ErrSyntax}
		}
		toks = append(toks, Token{Kind: kind, Text: src[i : i+n], Pos: i})
		i += n
	}
	toks = append(toks, Token{Kind: TokEOF, Pos: len(src)})
	return toks, nil
}

func punct(s string) (TokenKind, int) {
	if len(s) >= 2 {
		switch s[:2] {
		case "<=":
			return TokLE, 2
		case ">=":
			return TokGE, 2
		case "==":
			return TokEQ, 2
		case "!=":
			return TokNE, 2
		}
	}
	switch s[0] {
	case '+':
		return TokPlus, 1
	case '-':
		return TokMinus, 1
	case '*':
		return TokStar, 1
	case '/':
		return TokSlash, 1
	case '%':
		return TokPercent, 1
	case '(':
		return TokLParen, 1
	case ')':
		return TokRParen, 1
	case '<':
		return TokLT, 1
	case '>':
		return TokGT, 1
	}
	return TokEOF, 0
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isWordChar(ch byte) bool {
	return ch == '_' || (ch|0x20 >= 'a' && ch|0x20 <= 'z')
}
