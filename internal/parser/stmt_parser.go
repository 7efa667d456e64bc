package parser

import (
	"fortio.org/safecast"

	"karst/internal/ast"
	"karst/internal/diag"
	"karst/internal/token"
)

// parseStmt parses one statement with its optional attribute prefix.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	attrStart, attrCount, ok := p.parseAttrList()
	if !ok {
		return ast.NoStmtID, false
	}

	stmtID, ok := p.parseStmtBody()
	if !ok {
		return ast.NoStmtID, false
	}
	if attrCount > 0 {
		p.builder.Stmts.SetAttrs(stmtID, attrStart, attrCount)
	}
	return stmtID, true
}

// parseAttrList consumes a run of `@name(args)` / `@[name(args)]` prefixes.
// The attributes are allocated contiguously; the returned range addresses
// them all. (0, 0, true) means no attributes.
func (p *Parser) parseAttrList() (ast.AttrID, uint32, bool) {
	start := ast.NoAttrID
	var count uint64
	for p.at(token.At) {
		id, ok := p.parseAttr()
		if !ok {
			return ast.NoAttrID, 0, false
		}
		if start == ast.NoAttrID {
			start = id
		}
		count++
	}
	count32, err := safecast.Conv[uint32](count)
	if err != nil {
		p.report(diag.SynUnexpectedToken, p.lastSpan, "attribute list too long")
		return ast.NoAttrID, 0, false
	}
	return start, count32, true
}

func (p *Parser) parseAttr() (ast.AttrID, bool) {
	atTok := p.advance() // '@'
	spelling := ast.SpellingStandard
	vendor := false
	if p.at(token.LBracket) {
		p.advance()
		spelling = ast.SpellingVendor
		vendor = true
	}

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected attribute name")
	if !ok {
		return ast.NoAttrID, false
	}
	name := p.builder.StringsInterner.Intern(nameTok.Text)
	span := atTok.Span.Cover(nameTok.Span)

	var args []ast.ExprID
	if p.at(token.LParen) {
		p.advance()
		for !p.at(token.RParen) && !p.at(token.EOF) {
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoAttrID, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close attribute arguments")
		if !ok {
			return ast.NoAttrID, false
		}
		span = span.Cover(closeTok.Span)
	}

	if vendor {
		closeTok, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close attribute")
		if !ok {
			return ast.NoAttrID, false
		}
		span = span.Cover(closeTok.Span)
	}

	id := p.builder.Attrs.New(ast.Attr{
		Name:          name,
		SpellingIndex: spelling,
		Args:          args,
		Span:          span,
	})
	return id, true
}

func (p *Parser) parseStmtBody() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.Semicolon:
		tok := p.advance()
		return p.builder.Stmts.NewEmpty(tok.Span), true
	case token.LBrace:
		return p.parseBlock()
	case token.KwFor:
		return p.parseFor()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwDo:
		return p.parseDo()
	case token.KwSwitch:
		return p.parseSwitch()
	case token.KwCase:
		return p.parseCase()
	case token.KwDefault:
		return p.parseDefault()
	case token.KwBreak:
		tok := p.advance()
		end, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after 'break'")
		if !ok {
			return ast.NoStmtID, false
		}
		return p.builder.Stmts.NewBreak(tok.Span.Cover(end.Span)), true
	case token.KwContinue:
		tok := p.advance()
		end, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after 'continue'")
		if !ok {
			return ast.NoStmtID, false
		}
		return p.builder.Stmts.NewContinue(tok.Span.Cover(end.Span)), true
	case token.KwLet:
		return p.parseLet()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseBlock() (ast.StmtID, bool) {
	openTok := p.advance() // '{'
	var stmtIDs []ast.StmtID

	for !p.at(token.EOF) && !p.at(token.RBrace) {
		stmtID, ok := p.parseStmt()
		if ok {
			stmtIDs = append(stmtIDs, stmtID)
			continue
		}
		p.resyncStatement()
		if p.at(token.RBrace) || p.at(token.EOF) {
			break
		}
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.builder.Stmts.NewBlock(openTok.Span.Cover(closeTok.Span), stmtIDs), true
}

func (p *Parser) parseFor() (ast.StmtID, bool) {
	forTok := p.advance()
	if !p.at(token.LParen) {
		return p.parseForIn(forTok)
	}
	p.advance() // '('

	init := ast.NoStmtID
	if p.at(token.Semicolon) {
		p.advance()
	} else {
		var ok bool
		if p.at(token.KwLet) {
			init, ok = p.parseLet()
		} else {
			init, ok = p.parseExprStmt()
		}
		if !ok {
			return ast.NoStmtID, false
		}
	}

	cond := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		cond, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' in for header"); !ok {
		return ast.NoStmtID, false
	}

	post := ast.NoExprID
	if !p.at(token.RParen) {
		var ok bool
		post, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close for header"); !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	span := forTok.Span.Cover(p.builder.Stmts.Get(body).Span)
	return p.builder.Stmts.NewFor(span, init, cond, post, body), true
}

func (p *Parser) parseForIn(forTok token.Token) (ast.StmtID, bool) {
	binderTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected loop binder after 'for'")
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwIn, diag.SynExpectIn, "expected 'in' in for-in loop"); !ok {
		return ast.NoStmtID, false
	}
	iterable, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	binder := p.builder.StringsInterner.Intern(binderTok.Text)
	span := forTok.Span.Cover(p.builder.Stmts.Get(body).Span)
	return p.builder.Stmts.NewForIn(span, binder, iterable, body), true
}

func (p *Parser) parseWhile() (ast.StmtID, bool) {
	whileTok := p.advance()
	cond, ok := p.parseParenExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	span := whileTok.Span.Cover(p.builder.Stmts.Get(body).Span)
	return p.builder.Stmts.NewWhile(span, cond, body), true
}

func (p *Parser) parseDo() (ast.StmtID, bool) {
	doTok := p.advance()
	body, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwWhile, diag.SynExpectWhile, "expected 'while' after do body"); !ok {
		return ast.NoStmtID, false
	}
	cond, ok := p.parseParenExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	end, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after do-while")
	if !ok {
		return ast.NoStmtID, false
	}
	return p.builder.Stmts.NewDo(doTok.Span.Cover(end.Span), body, cond), true
}

func (p *Parser) parseSwitch() (ast.StmtID, bool) {
	switchTok := p.advance()
	cond, ok := p.parseParenExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if !p.at(token.LBrace) {
		p.report(diag.SynUnexpectedToken, p.lx.Peek().Span, "expected '{' after switch condition")
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	span := switchTok.Span.Cover(p.builder.Stmts.Get(body).Span)
	return p.builder.Stmts.NewSwitch(span, cond, body), true
}

func (p *Parser) parseCase() (ast.StmtID, bool) {
	caseTok := p.advance()
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	colonTok, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after case value")
	if !ok {
		return ast.NoStmtID, false
	}
	span := caseTok.Span.Cover(colonTok.Span)
	body, ok := p.parseLabelBody()
	if !ok {
		return ast.NoStmtID, false
	}
	if body.IsValid() {
		span = span.Cover(p.builder.Stmts.Get(body).Span)
	}
	return p.builder.Stmts.NewCase(span, value, body), true
}

func (p *Parser) parseDefault() (ast.StmtID, bool) {
	defTok := p.advance()
	colonTok, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after 'default'")
	if !ok {
		return ast.NoStmtID, false
	}
	span := defTok.Span.Cover(colonTok.Span)
	body, ok := p.parseLabelBody()
	if !ok {
		return ast.NoStmtID, false
	}
	if body.IsValid() {
		span = span.Cover(p.builder.Stmts.Get(body).Span)
	}
	return p.builder.Stmts.NewDefault(span, body), true
}

// parseLabelBody parses the statement a case/default label covers, if any.
// A label directly followed by another label or '}' has no body.
func (p *Parser) parseLabelBody() (ast.StmtID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwCase, token.KwDefault, token.RBrace, token.EOF:
		return ast.NoStmtID, true
	}
	return p.parseStmt()
}

func (p *Parser) parseLet() (ast.StmtID, bool) {
	letTok := p.advance()
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected binding name after 'let'")
	if !ok {
		return ast.NoStmtID, false
	}
	init := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		init, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	end, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after let binding")
	if !ok {
		return ast.NoStmtID, false
	}
	name := p.builder.StringsInterner.Intern(nameTok.Text)
	return p.builder.Stmts.NewLet(letTok.Span.Cover(end.Span), name, init), true
}

func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	end, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression")
	if !ok {
		return ast.NoStmtID, false
	}
	span := p.builder.Exprs.Get(value).Span.Cover(end.Span)
	return p.builder.Stmts.NewExprStmt(span, value), true
}

func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return ast.NoExprID, false
	}
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
		return ast.NoExprID, false
	}
	return expr, true
}
