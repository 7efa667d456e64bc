package parser

import (
	"strconv"

	"karst/internal/ast"
	"karst/internal/diag"
	"karst/internal/token"
)

// Binding powers, loosest first: shifts, then additive, then multiplicative.
var binaryPrec = map[token.Kind]int{
	token.Shl:     1,
	token.Shr:     1,
	token.Plus:    2,
	token.Minus:   2,
	token.Star:    3,
	token.Slash:   3,
	token.Percent: 3,
}

var binaryOps = map[token.Kind]ast.BinOp{
	token.Shl:     ast.BinShl,
	token.Shr:     ast.BinShr,
	token.Plus:    ast.BinAdd,
	token.Minus:   ast.BinSub,
	token.Star:    ast.BinMul,
	token.Slash:   ast.BinDiv,
	token.Percent: ast.BinRem,
}

func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinary(1)
}

func (p *Parser) parseBinary(minPrec int) (ast.ExprID, bool) {
	lhs, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		kind := p.lx.Peek().Kind
		prec, isBinary := binaryPrec[kind]
		if !isBinary || prec < minPrec {
			return lhs, true
		}
		p.advance()
		rhs, ok := p.parseBinary(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		span := p.builder.Exprs.Get(lhs).Span.Cover(p.builder.Exprs.Get(rhs).Span)
		lhs = p.builder.Exprs.NewBinary(span, binaryOps[kind], lhs, rhs)
	}
}

func (p *Parser) parseUnary() (ast.ExprID, bool) {
	switch p.lx.Peek().Kind {
	case token.Minus, token.Plus:
		opTok := p.advance()
		op := ast.UnNeg
		if opTok.Kind == token.Plus {
			op = ast.UnPlus
		}
		operand, ok := p.parseUnary()
		if !ok {
			return ast.NoExprID, false
		}
		span := opTok.Span.Cover(p.builder.Exprs.Get(operand).Span)
		return p.builder.Exprs.NewUnary(span, op, operand), true
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		value, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			p.report(diag.SynIntOutOfRange, tok.Span, "integer literal %s out of range", tok.Text)
			return ast.NoExprID, false
		}
		return p.builder.Exprs.NewIntLit(tok.Span, value), true
	case token.Ident:
		p.advance()
		name := p.builder.StringsInterner.Intern(tok.Text)
		return p.builder.Exprs.NewIdent(tok.Span, name), true
	case token.LParen:
		open := p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		if !ok {
			return ast.NoExprID, false
		}
		return p.builder.Exprs.NewParen(open.Span.Cover(closeTok.Span), inner), true
	default:
		p.report(diag.SynExpectExpression, tok.Span, "expected expression, found %s", tok.Kind)
		return ast.NoExprID, false
	}
}
