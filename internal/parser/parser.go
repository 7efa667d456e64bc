// Package parser builds karst statement ASTs from a token stream. It covers
// the statement subset the attribute analyzer operates on; declarations and
// the full expression grammar live elsewhere.
package parser

import (
	"fmt"

	"karst/internal/ast"
	"karst/internal/diag"
	"karst/internal/lexer"
	"karst/internal/source"
	"karst/internal/token"
)

// Options configure parsing of one file.
type Options struct {
	Reporter      diag.Reporter
	MaxErrors     uint
	CurrentErrors uint
}

// Enough reports whether the error budget is exhausted.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Result carries the top-level statements of one parsed file.
type Result struct {
	Stmts []ast.StmtID
}

// Parser holds per-file parsing state.
type Parser struct {
	lx       *lexer.Lexer
	builder  *ast.Builder
	opts     Options
	lastSpan source.Span // span of the last consumed token
}

// ParseFile parses the whole token stream into a statement list.
func ParseFile(lx *lexer.Lexer, builder *ast.Builder, opts Options) Result {
	p := Parser{
		lx:       lx,
		builder:  builder,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	var stmts []ast.StmtID
	for !p.at(token.EOF) && !p.opts.Enough() {
		stmtID, ok := p.parseStmt()
		if !ok {
			p.resyncStatement()
			continue
		}
		stmts = append(stmts, stmtID)
	}
	return Result{Stmts: stmts}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.report(code, p.lx.Peek().Span, "%s, found %s", msg, p.lx.Peek().Kind)
	return token.Token{}, false
}

func (p *Parser) report(code diag.Code, span source.Span, format string, args ...any) {
	p.opts.CurrentErrors++
	if p.opts.Reporter == nil {
		return
	}
	p.opts.Reporter.Report(code, diag.SevError, span, fmt.Sprintf(format, args...), nil, nil)
}

// resyncStatement skips to the next plausible statement boundary.
func (p *Parser) resyncStatement() {
	for {
		switch p.lx.Peek().Kind {
		case token.EOF, token.RBrace:
			return
		case token.Semicolon:
			p.advance()
			return
		default:
			p.advance()
		}
	}
}
