// Package lexer turns karst source bytes into tokens for the statement
// parser. The scanner is byte-oriented; identifiers are ASCII.
package lexer

import (
	"fmt"

	"karst/internal/diag"
	"karst/internal/source"
	"karst/internal/token"
)

// Options configure lexing of a single file.
type Options struct {
	Reporter diag.Reporter
}

// Lexer scans one source file into significant tokens.
type Lexer struct {
	file *source.File
	pos  uint32
	opts Options
	look *token.Token // one-token lookahead buffer
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file: file,
		opts: opts,
	}
}

// Peek returns the next significant token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.scan()
		lx.look = &tok
	}
	return *lx.look
}

// Next returns the next significant token.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	return lx.scan()
}

// EmptySpan returns a zero-width span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.pos, End: lx.pos}
}

func (lx *Lexer) scan() token.Token {
	lx.skipTrivia()
	if lx.eof() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan()}
	}

	start := lx.pos
	ch := lx.peekByte()

	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDigit(ch):
		return lx.scanNumber()
	}

	lx.pos++
	kind := token.Invalid
	switch ch {
	case '@':
		kind = token.At
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ';':
		kind = token.Semicolon
	case ':':
		kind = token.Colon
	case ',':
		kind = token.Comma
	case '=':
		kind = token.Assign
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case '<':
		kind = token.Lt
		if !lx.eof() && lx.peekByte() == '<' {
			lx.pos++
			kind = token.Shl
		}
	case '>':
		kind = token.Gt
		if !lx.eof() && lx.peekByte() == '>' {
			lx.pos++
			kind = token.Shr
		}
	}

	span := source.Span{File: lx.file.ID, Start: start, End: lx.pos}
	if kind == token.Invalid {
		lx.report(diag.LexUnknownChar, span, "unknown character %q", rune(ch))
	}
	return token.Token{Kind: kind, Span: span}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.pos
	for !lx.eof() && isIdentContinue(lx.peekByte()) {
		lx.pos++
	}
	text := string(lx.file.Content[start:lx.pos])
	span := source.Span{File: lx.file.ID, Start: start, End: lx.pos}
	if kw, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kw, Span: span, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: span, Text: text}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.pos
	for !lx.eof() && isDigit(lx.peekByte()) {
		lx.pos++
	}
	span := source.Span{File: lx.file.ID, Start: start, End: lx.pos}
	// A digit run glued to identifier characters is one bad token, not two.
	if !lx.eof() && isIdentContinue(lx.peekByte()) {
		for !lx.eof() && isIdentContinue(lx.peekByte()) {
			lx.pos++
		}
		span.End = lx.pos
		lx.report(diag.LexBadNumber, span, "malformed number %q", string(lx.file.Content[start:lx.pos]))
		return token.Token{Kind: token.Invalid, Span: span}
	}
	return token.Token{Kind: token.IntLit, Span: span, Text: string(lx.file.Content[start:lx.pos])}
}

// skipTrivia consumes whitespace, line comments and block comments.
func (lx *Lexer) skipTrivia() {
	for !lx.eof() {
		ch := lx.peekByte()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			lx.pos++
		case ch == '/' && lx.peekAt(1) == '/':
			for !lx.eof() && lx.peekByte() != '\n' {
				lx.pos++
			}
		case ch == '/' && lx.peekAt(1) == '*':
			start := lx.pos
			lx.pos += 2
			closed := false
			for !lx.eof() {
				if lx.peekByte() == '*' && lx.peekAt(1) == '/' {
					lx.pos += 2
					closed = true
					break
				}
				lx.pos++
			}
			if !closed {
				lx.report(diag.LexUnterminatedBlock,
					source.Span{File: lx.file.ID, Start: start, End: lx.pos},
					"unterminated block comment")
			}
		default:
			return
		}
	}
}

func (lx *Lexer) report(code diag.Code, span source.Span, format string, args ...any) {
	if lx.opts.Reporter == nil {
		return
	}
	lx.opts.Reporter.Report(code, diag.SevError, span, fmt.Sprintf(format, args...), nil, nil)
}

func (lx *Lexer) eof() bool {
	return int(lx.pos) >= len(lx.file.Content)
}

func (lx *Lexer) peekByte() byte {
	return lx.file.Content[lx.pos]
}

// peekAt returns the byte n positions ahead, or 0 past EOF.
func (lx *Lexer) peekAt(n uint32) byte {
	if int(lx.pos+n) >= len(lx.file.Content) {
		return 0
	}
	return lx.file.Content[lx.pos+n]
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
