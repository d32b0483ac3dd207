package calc

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"bigcalc/bignum"
	"bigcalc/internal/trace"
)

// maxNesting bounds parenthesis depth so hostile input cannot exhaust the stack.
const maxNesting = 1000

// Eval parses and evaluates src. Tracing follows the tracer attached to ctx:
// one ScopeExpr span for the expression and one ScopeOp span per operator.
func Eval(ctx context.Context, src string) (v Value, err error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeExpr, "eval", trace.ParentSpan(ctx))
	defer func() {
		if err != nil {
			trace.Failure(tr, trace.ScopeExpr, "eval", err, span.ID())
			span.End("error")
			return
		}
		span.WithExtra("kind", v.Kind().String()).End("")
	}()

	toks, err := Lex(src)
	if err != nil {
		return Value{}, err
	}
	p := &parser{ctx: ctx, tracer: tr, parent: span.ID(), toks: toks}
	v, err = p.comparison()
	if err != nil {
		return Value{}, err
	}
	if tok := p.peek(); tok.Kind != TokEOF {
		return Value{}, p.unexpected(tok)
	}
	return v, nil
}

// EvalInt evaluates src and requires an integer result.
func EvalInt(ctx context.Context, src string) (bignum.BigInt, error) {
	v, err := Eval(ctx, src)
	if err != nil {
		return bignum.Zero(), err
	}
	n, ok := v.Int()
	if !ok {
		return bignum.Zero(), &Error{Pos: 0, Msg: "expression is a comparison, not an integer", Err: ErrType}
	}
	return n, nil
}

type parser struct {
	ctx    context.Context
	tracer trace.Tracer
	parent uint64
	toks   []Token
	pos    int
	depth  int
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Kind != TokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) unexpected(tok Token) error {
	return &Error{Pos: tok.Pos, Msg: fmt.Sprintf("unexpected %s", tok.Kind), Err: ErrSyntax}
}

func isComparison(k TokenKind) bool {
	switch k {
	case TokLT, TokGT, TokLE, TokGE, TokEQ, TokNE:
		return true
	}
	return false
}

// comparison := sum [cmpop sum]
func (p *parser) comparison() (Value, error) {
	lhs, err := p.sum()
	if err != nil {
		return Value{}, err
	}
	if !isComparison(p.peek().Kind) {
		return lhs, nil
	}
	op := p.next()
	rhs, err := p.sum()
	if err != nil {
		return Value{}, err
	}
	if tok := p.peek(); isComparison(tok.Kind) {
		return Value{}, &Error{Pos: tok.Pos, Msg: "comparisons do not chain", Err: ErrSyntax}
	}
	return p.apply(op, lhs, rhs)
}

// sum := product {(+|-) product}
func (p *parser) sum() (Value, error) {
	lhs, err := p.product()
	if err != nil {
		return Value{}, err
	}
	for k := p.peek().Kind; k == TokPlus || k == TokMinus; k = p.peek().Kind {
		op := p.next()
		rhs, err := p.product()
		if err != nil {
			return Value{}, err
		}
		if lhs, err = p.apply(op, lhs, rhs); err != nil {
			return Value{}, err
		}
	}
	return lhs, nil
}

// product := unary {(*|/|%|mod) unary}
func (p *parser) product() (Value, error) {
	lhs, err := p.unary()
	if err != nil {
		return Value{}, err
	}
	for k := p.peek().Kind; k == TokStar || k == TokSlash || k == TokPercent || k == TokMod; k = p.peek().Kind {
		op := p.next()
		rhs, err := p.unary()
		if err != nil {
			return Value{}, err
		}
		if lhs, err = p.apply(op, lhs, rhs); err != nil {
			return Value{}, err
		}
	}
	return lhs, nil
}

// unary := (+|-) unary | primary
func (p *parser) unary() (Value, error) {
	tok := p.peek()
	if tok.Kind != TokPlus && tok.Kind != TokMinus {
		return p.primary()
	}
	p.next()
	if err := p.enter(tok); err != nil {
		return Value{}, err
	}
	defer p.leave()
	v, err := p.unary()
	if err != nil {
		return Value{}, err
	}
	n, ok := v.Int()
	if !ok {
		return Value{}, &Error{Pos: tok.Pos, Msg: fmt.Sprintf("unary %s applied to bool", tok.Kind), Err: ErrType}
	}
	if tok.Kind == TokMinus {
		n = n.Negated()
	}
	return IntValue(n), nil
}

// primary := NUMBER | "(" comparison ")"
func (p *parser) primary() (Value, error) {
	tok := p.next()
	switch tok.Kind {
	case TokNumber:
		n, err := bignum.Parse(tok.Text)
		if err != nil {
			return Value{}, &Error{Pos: tok.Pos, Msg: err.Error(), Err: ErrSyntax}
		}
		return IntValue(n), nil
	case TokLParen:
		if err := p.enter(tok); err != nil {
			return Value{}, err
		}
		defer p.leave()
		v, err := p.comparison()
		if err != nil {
			return Value{}, err
		}
		if closing := p.next(); closing.Kind != TokRParen {
			if closing.Kind == TokEOF {
				return Value{}, &Error{Pos: tok.Pos, Msg: "unclosed '('", Err: ErrSyntax}
			}
			return Value{}, p.unexpected(closing)
		}
		return v, nil
	default:
		return Value{}, p.unexpected(tok)
	}
}

func (p *parser) enter(tok Token) error {
	p.depth++
	if p.depth > maxNesting {
		return &Error{Pos: tok.Pos, Msg: "expression nested too deeply", Err: ErrSyntax}
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

var opNames = map[TokenKind]string{
	TokPlus:    "add",
	TokMinus:   "sub",
	TokStar:    "mul",
	TokSlash:   "div",
	TokPercent: "rem",
	TokMod:     "mod",
	TokLT:      "lt",
	TokGT:      "gt",
	TokLE:      "le",
	TokGE:      "ge",
	TokEQ:      "eq",
	TokNE:      "ne",
}

// apply evaluates one binary operator inside its own op span.
func (p *parser) apply(op Token, lhs, rhs Value) (Value, error) {
	if err := p.ctx.Err(); err != nil {
		return Value{}, err
	}
	x, okx := lhs.Int()
	y, oky := rhs.Int()
	if !okx || !oky {
		return Value{}, &Error{Pos: op.Pos, Msg: fmt.Sprintf("operator %s needs integer operands", op.Kind), Err: ErrType}
	}

	name := opNames[op.Kind]
	span := trace.Begin(p.tracer, trace.ScopeOp, name, p.parent)
	span.WithExtra("lhs_limbs", strconv.Itoa(x.Len())).WithExtra("rhs_limbs", strconv.Itoa(y.Len()))
	if op.Kind == TokStar {
		span.WithExtra("algo", MulAlgorithm(x, y))
	}

	v, err := binary(op.Kind, x, y)
	if err != nil {
		span.End("error")
		msg := err.Error()
		if errors.Is(err, bignum.ErrDivByZero) {
			msg = "division by zero"
		}
		return Value{}, &Error{Pos: op.Pos, Msg: msg, Err: err}
	}
	span.End("")
	return v, nil
}

func binary(kind TokenKind, x, y bignum.BigInt) (Value, error) {
	switch kind {
	case TokPlus:
		return IntValue(bignum.Add(x, y)), nil
	case TokMinus:
		return IntValue(bignum.Sub(x, y)), nil
	case TokStar:
		return IntValue(bignum.Mul(x, y)), nil
	case TokSlash:
		q, err := bignum.Div(x, y)
		return IntValue(q), err
	case TokPercent:
		r, err := bignum.Rem(x, y)
		return IntValue(r), err
	case TokMod:
		m, err := bignum.Mod(x, y)
		return IntValue(m), err
	case TokLT:
		return BoolValue(x.LessThan(y)), nil
	case TokGT:
		return BoolValue(x.GreaterThan(y)), nil
	case TokLE:
		return BoolValue(x.LessOrEqual(y)), nil
	case TokGE:
		return BoolValue(x.GreaterOrEqual(y)), nil
	case TokEQ:
		return BoolValue(x.Equal(y)), nil
	case TokNE:
		return BoolValue(x.NotEqual(y)), nil
	}
	return Value{}, fmt.Errorf("%w: operator %s", ErrSyntax, kind)
}

// MulAlgorithm names the algorithm bignum.Mul picks for x*y under the
// current Karatsuba threshold.
func MulAlgorithm(x, y bignum.BigInt) string {
	t := bignum.KaratsubaThreshold()
	if x.Len() > t && y.Len() > t {
		return "karatsuba"
	}
	return "schoolbook"
}
