// Package lexer scans lox source text into a token.Token stream.
package lexer

import (
	"strconv"

	"github.com/aledsdavies/lox/pkgs/diag"
	"github.com/aledsdavies/lox/pkgs/token"
)

// ASCII character-class lookup tables, precomputed once at init. Mirrors
// the single-char token / identifier-class tables a hand-written scanner
// keeps for fast dispatch instead of re-deriving classes per rune.
var (
	isDigitTable      [128]bool
	isIdentStartTable [128]bool
	isIdentPartTable  [128]bool
	singleCharTokens  [128]token.Type
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isDigitTable[i] = ch >= '0' && ch <= '9'
		isIdentStartTable[i] = (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
		isIdentPartTable[i] = isIdentStartTable[i] || isDigitTable[i]
		singleCharTokens[i] = token.ILLEGAL
	}
	singleCharTokens['('] = token.LEFT_PAREN
	singleCharTokens[')'] = token.RIGHT_PAREN
	singleCharTokens['{'] = token.LEFT_BRACE
	singleCharTokens['}'] = token.RIGHT_BRACE
	singleCharTokens[','] = token.COMMA
	singleCharTokens['.'] = token.DOT
	singleCharTokens['-'] = token.MINUS
	singleCharTokens['+'] = token.PLUS
	singleCharTokens[';'] = token.SEMICOLON
	singleCharTokens['*'] = token.STAR
}

func isDigit(ch byte) bool      { return ch < 128 && isDigitTable[ch] }
func isIdentStart(ch byte) bool { return ch < 128 && isIdentStartTable[ch] }
func isIdentPart(ch byte) bool  { return ch < 128 && isIdentPartTable[ch] }

// Lexer scans a fixed source string. It owns only per-run position
// cursors and is otherwise stateless, so a fresh Lexer is created for
// every scan.
type Lexer struct {
	source   string
	start    int // start of the lexeme currently being scanned
	current  int // cursor into source
	line     int
	reporter *diag.Reporter
}

// New creates a Lexer over source, reporting lexical errors to reporter.
// Line numbering is 1-based.
func New(source string, reporter *diag.Reporter) *Lexer {
	return &Lexer{source: source, line: 1, reporter: reporter}
}

// ScanTokens scans the entire source and returns the resulting token
// slice, always terminated by exactly one EOF token. Malformed input is
// reported to the Reporter and scanning continues from the next
// character; ScanTokens itself never returns an error.
func (l *Lexer) ScanTokens() []token.Token {
	var tokens []token.Token
	for {
		tok, ok := l.scanToken()
		if ok {
			tokens = append(tokens, tok)
		}
		if l.isAtEnd() {
			break
		}
	}
	tokens = append(tokens, token.Token{Type: token.EOF, Lexeme: "", Line: l.line})
	return tokens
}

// scanToken scans a single token starting at the current cursor. The
// second return value is false when no token should be emitted (skipped
// whitespace/comment, or a reported lexical error).
func (l *Lexer) scanToken() (token.Token, bool) {
	l.skipWhitespaceAndComments()
	l.start = l.current
	if l.isAtEnd() {
		return token.Token{}, false
	}

	c := l.advance()

	switch {
	case c < 128 && singleCharTokens[c] != token.ILLEGAL:
		return l.make(singleCharTokens[c]), true
	case c == '!':
		return l.make(l.selectByEquals(token.BANG_EQUAL, token.BANG)), true
	case c == '=':
		return l.make(l.selectByEquals(token.EQUAL_EQUAL, token.EQUAL)), true
	case c == '<':
		return l.make(l.selectByEquals(token.LESS_EQUAL, token.LESS)), true
	case c == '>':
		return l.make(l.selectByEquals(token.GREATER_EQUAL, token.GREATER)), true
	case c == '/':
		if l.peek() == '/' {
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
			return token.Token{}, false
		}
		return l.make(token.SLASH), true
	case c == '"':
		return l.scanString()
	case isDigit(c):
		return l.scanNumber(), true
	case isIdentStart(c):
		return l.scanIdentifier(), true
	default:
		l.reporter.Error(l.line, "Unexpected character.")
		return token.Token{}, false
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.isAtEnd() {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.advance()
		case '\n':
			l.line++
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) scanString() (token.Token, bool) {
	for l.peek() != '"' && !l.isAtEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}
	if l.isAtEnd() {
		l.reporter.Error(l.line, "Unterminated string.")
		return token.Token{}, false
	}
	l.advance() // closing quote
	value := l.source[l.start+1 : l.current-1]
	tok := l.make(token.STRING)
	tok.Literal = value
	return tok, true
}

func (l *Lexer) scanNumber() token.Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	tok := l.make(token.NUMBER)
	n, _ := strconv.ParseFloat(tok.Lexeme, 64)
	tok.Literal = n
	return tok
}

func (l *Lexer) scanIdentifier() token.Token {
	for isIdentPart(l.peek()) {
		l.advance()
	}
	lexeme := l.source[l.start:l.current]
	if kw, ok := token.Keywords[lexeme]; ok {
		return l.make(kw)
	}
	return l.make(token.IDENTIFIER)
}

// selectByEquals consumes a trailing '=' if present and returns
// twoChar/oneChar accordingly (maximal munch).
func (l *Lexer) selectByEquals(twoChar, oneChar token.Type) token.Type {
	if l.peek() == '=' {
		l.advance()
		return twoChar
	}
	return oneChar
}

func (l *Lexer) make(t token.Type) token.Token {
	return token.Token{Type: t, Lexeme: l.source[l.start:l.current], Line: l.line}
}

func (l *Lexer) isAtEnd() bool { return l.current >= len(l.source) }

func (l *Lexer) advance() byte {
	c := l.source[l.current]
	l.current++
	return c
}

func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}
