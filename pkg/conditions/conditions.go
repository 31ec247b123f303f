// Package conditions evaluates `when` expressions on specification nodes: a
// small boolean language over the document's state values deciding whether a
// node renders.
//
// Supported forms:
//   - truthiness: `newsletter`
//   - comparisons: `plan == "pro"`, `age >= 18`, `count != 0`
//   - composition: `a && (b || !c)`
//
// Identifiers resolve against the state map with dot-path traversal; an exact
// dotted key wins over traversal. Expressions compile once and evaluate
// against whatever values the form currently holds.
package conditions

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Expr is a compiled `when` expression, immutable and safe for concurrent
// evaluation.
type Expr struct {
	source string
	root   exprNode
}

// Compile parses a rule into an evaluatable expression. An empty rule
// compiles to an expression that is always true.
func Compile(rule string) (*Expr, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return &Expr{source: rule}, nil
	}

	tokens, err := tokenize(trimmed)
	if err != nil {
		return nil, err
	}

	root, err := parseExpression(tokens)
	if err != nil {
		return nil, err
	}
	return &Expr{source: rule, root: root}, nil
}

// Source returns the original rule text.
func (e *Expr) Source() string {
	return e.source
}

// Eval resolves the expression against the supplied state values.
func (e *Expr) Eval(values map[string]any) (bool, error) {
	if e.root == nil {
		return true, nil
	}
	return e.root.eval(values)
}

type tokenKind int

const (
	tokenIdentifier tokenKind = iota
	tokenString
	tokenNumber
	tokenBool
	tokenNull
	tokenEq
	tokenNeq
	tokenGt
	tokenGte
	tokenLt
	tokenLte
	tokenAnd
	tokenOr
	tokenNot
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	raw  string
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	i := 0

	peek := func() byte {
		if i >= len(input) {
			return 0
		}
		return input[i]
	}
	consume := func() byte {
		ch := peek()
		if ch != 0 {
			i++
		}
		return ch
	}

	for i < len(input) {
		ch := peek()
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			i++
			continue
		}

		switch ch {
		case '(':
			consume()
			tokens = append(tokens, token{kind: tokenLParen, raw: "("})
			continue
		case ')':
			consume()
			tokens = append(tokens, token{kind: tokenRParen, raw: ")"})
			continue
		case '!':
			consume()
			if peek() == '=' {
				consume()
				tokens = append(tokens, token{kind: tokenNeq, raw: "!="})
				continue
			}
			tokens = append(tokens, token{kind: tokenNot, raw: "!"})
			continue
		case '=':
			consume()
			if peek() != '=' {
				return nil, errors.New("conditions: unexpected '='; use '=='")
			}
			consume()
			tokens = append(tokens, token{kind: tokenEq, raw: "=="})
			continue
		case '>':
			consume()
			if peek() == '=' {
				consume()
				tokens = append(tokens, token{kind: tokenGte, raw: ">="})
				continue
			}
			tokens = append(tokens, token{kind: tokenGt, raw: ">"})
			continue
		case '<':
			consume()
			if peek() == '=' {
				consume()
				tokens = append(tokens, token{kind: tokenLte, raw: "<="})
				continue
			}
			tokens = append(tokens, token{kind: tokenLt, raw: "<"})
			continue
		case '&':
			consume()
			if peek() != '&' {
				return nil, errors.New("conditions: unexpected '&'; use '&&'")
			}
			consume()
			tokens = append(tokens, token{kind: tokenAnd, raw: "&&"})
			continue
		case '|':
			consume()
			if peek() != '|' {
				return nil, errors.New("conditions: unexpected '|'; use '||'")
			}
			consume()
			tokens = append(tokens, token{kind: tokenOr, raw: "||"})
			continue
		case '"', '\'':
			quote := consume()
			var b strings.Builder
			escaped := false
			for i < len(input) {
				c := consume()
				if escaped {
					b.WriteByte(c)
					escaped = false
					continue
				}
				if c == '\\' {
					escaped = true
					continue
				}
				if c == quote {
					tokens = append(tokens, token{kind: tokenString, raw: b.String()})
					goto nextToken
				}
				b.WriteByte(c)
			}
			return nil, errors.New("conditions: unterminated string literal")
		default:
			start := i
			for i < len(input) {
				c := input[i]
				if strings.IndexByte(" \t\n\r()!=&|<>", c) >= 0 {
					break
				}
				i++
			}
			raw := input[start:i]
			if raw == "" {
				return nil, fmt.Errorf("conditions: unexpected character %q", string(ch))
			}
			switch strings.ToLower(raw) {
			case "true", "false":
				tokens = append(tokens, token{kind: tokenBool, raw: strings.ToLower(raw)})
			case "null", "nil":
				tokens = append(tokens, token{kind: tokenNull, raw: "null"})
			default:
				if looksLikeNumber(raw) {
					tokens = append(tokens, token{kind: tokenNumber, raw: raw})
				} else {
					tokens = append(tokens, token{kind: tokenIdentifier, raw: raw})
				}
			}
		}

	nextToken:
		continue
	}

	return tokens, nil
}

func looksLikeNumber(raw string) bool {
	ch := raw[0]
	return (ch >= '0' && ch <= '9') || ch == '-' || ch == '+'
}

type exprNode interface {
	eval(values map[string]any) (bool, error)
}

type exprOr struct{ left, right exprNode }

func (n exprOr) eval(values map[string]any) (bool, error) {
	ok, err := n.left.eval(values)
	if err != nil || ok {
		return ok, err
	}
	return n.right.eval(values)
}

type exprAnd struct{ left, right exprNode }

func (n exprAnd) eval(values map[string]any) (bool, error) {
	ok, err := n.left.eval(values)
	if err != nil || !ok {
		return false, err
	}
	return n.right.eval(values)
}

type exprNot struct{ inner exprNode }

func (n exprNot) eval(values map[string]any) (bool, error) {
	ok, err := n.inner.eval(values)
	return !ok, err
}

type exprTruthy struct{ identifier string }

func (n exprTruthy) eval(values map[string]any) (bool, error) {
	value, ok := lookup(values, n.identifier)
	if !ok {
		return false, nil
	}
	return truthy(value), nil
}

type literalKind int

const (
	litString literalKind = iota
	litNumber
	litBool
	litNull
)

type literal struct {
	kind literalKind
	raw  string
}

type exprCompare struct {
	identifier string
	op         tokenKind
	literal    literal
}

func (n exprCompare) eval(values map[string]any) (bool, error) {
	value, _ := lookup(values, n.identifier)

	switch n.literal.kind {
	case litNull:
		return n.equality(value == nil)
	case litBool:
		got, _ := coerceBool(value)
		return n.equality(got == (n.literal.raw == "true"))
	case litNumber:
		want, err := strconv.ParseFloat(n.literal.raw, 64)
		if err != nil {
			return false, fmt.Errorf("conditions: invalid number literal %q", n.literal.raw)
		}
		got, _ := coerceNumber(value)
		switch n.op {
		case tokenEq:
			return got == want, nil
		case tokenNeq:
			return got != want, nil
		case tokenGt:
			return got > want, nil
		case tokenGte:
			return got >= want, nil
		case tokenLt:
			return got < want, nil
		case tokenLte:
			return got <= want, nil
		}
	case litString:
		got := coerceString(value)
		return n.equality(got == n.literal.raw)
	}
	return false, fmt.Errorf("conditions: unsupported comparison %q", n.opString())
}

// equality maps an already-computed equality outcome onto == / !=. The
// relational operators only apply to numbers.
func (n exprCompare) equality(equal bool) (bool, error) {
	switch n.op {
	case tokenEq:
		return equal, nil
	case tokenNeq:
		return !equal, nil
	default:
		return false, fmt.Errorf("conditions: operator %q needs a number literal", n.opString())
	}
}

func (n exprCompare) opString() string {
	for _, candidate := range []struct {
		kind tokenKind
		text string
	}{
		{tokenEq, "=="}, {tokenNeq, "!="}, {tokenGt, ">"},
		{tokenGte, ">="}, {tokenLt, "<"}, {tokenLte, "<="},
	} {
		if candidate.kind == n.op {
			return candidate.text
		}
	}
	return "?"
}

type tokenStream struct {
	tokens []token
	pos    int
}

func parseExpression(tokens []token) (exprNode, error) {
	stream := &tokenStream{tokens: tokens}
	node, err := parseOr(stream)
	if err != nil {
		return nil, err
	}
	if stream.pos < len(stream.tokens) {
		return nil, fmt.Errorf("conditions: unexpected token %q", stream.tokens[stream.pos].raw)
	}
	return node, nil
}

func parseOr(stream *tokenStream) (exprNode, error) {
	left, err := parseAnd(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenOr) {
		right, err := parseAnd(stream)
		if err != nil {
			return nil, err
		}
		left = exprOr{left: left, right: right}
	}
	return left, nil
}

func parseAnd(stream *tokenStream) (exprNode, error) {
	left, err := parseUnary(stream)
	if err != nil {
		return nil, err
	}
	for stream.match(tokenAnd) {
		right, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		left = exprAnd{left: left, right: right}
	}
	return left, nil
}

func parseUnary(stream *tokenStream) (exprNode, error) {
	if stream.match(tokenNot) {
		inner, err := parseUnary(stream)
		if err != nil {
			return nil, err
		}
		return exprNot{inner: inner}, nil
	}
	return parsePrimary(stream)
}

func parsePrimary(stream *tokenStream) (exprNode, error) {
	if stream.match(tokenLParen) {
		inner, err := parseOr(stream)
		if err != nil {
			return nil, err
		}
		if !stream.match(tokenRParen) {
			return nil, errors.New("conditions: missing closing ')'")
		}
		return inner, nil
	}

	ident, ok := stream.consume(tokenIdentifier)
	if !ok {
		if stream.pos >= len(stream.tokens) {
			return nil, errors.New("conditions: empty expression")
		}
		return nil, fmt.Errorf("conditions: expected identifier, got %q", stream.tokens[stream.pos].raw)
	}

	for _, op := range []tokenKind{tokenEq, tokenNeq, tokenGt, tokenGte, tokenLt, tokenLte} {
		if stream.match(op) {
			lit, err := stream.consumeLiteral()
			if err != nil {
				return nil, err
			}
			return exprCompare{identifier: ident.raw, op: op, literal: lit}, nil
		}
	}

	return exprTruthy{identifier: ident.raw}, nil
}

func (s *tokenStream) match(kind tokenKind) bool {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return false
	}
	s.pos++
	return true
}

func (s *tokenStream) consume(kind tokenKind) (token, bool) {
	if s.pos >= len(s.tokens) || s.tokens[s.pos].kind != kind {
		return token{}, false
	}
	out := s.tokens[s.pos]
	s.pos++
	return out, true
}

func (s *tokenStream) consumeLiteral() (literal, error) {
	if s.pos >= len(s.tokens) {
		return literal{}, errors.New("conditions: missing literal")
	}
	tok := s.tokens[s.pos]
	s.pos++
	switch tok.kind {
	case tokenString:
		return literal{kind: litString, raw: tok.raw}, nil
	case tokenNumber:
		return literal{kind: litNumber, raw: tok.raw}, nil
	case tokenBool:
		return literal{kind: litBool, raw: tok.raw}, nil
	case tokenNull:
		return literal{kind: litNull, raw: "null"}, nil
	case tokenIdentifier:
		// Bare identifiers compare as strings to keep rules forgiving.
		return literal{kind: litString, raw: tok.raw}, nil
	default:
		return literal{}, fmt.Errorf("conditions: expected literal, got %q", tok.raw)
	}
}

// lookup resolves an identifier against the state values. An exact dotted key
// wins over path traversal.
func lookup(values map[string]any, key string) (any, bool) {
	if len(values) == 0 || key == "" {
		return nil, false
	}
	if value, ok := values[key]; ok {
		return value, true
	}

	var current any = values
	for _, part := range strings.Split(key, ".") {
		if part == "" {
			return nil, false
		}
		switch typed := current.(type) {
		case map[string]any:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		case map[string]string:
			next, ok := typed[part]
			if !ok {
				return nil, false
			}
			current = next
		default:
			return nil, false
		}
	}
	return current, true
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case float32:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

func coerceBool(value any) (bool, bool) {
	switch v := value.(type) {
	case nil:
		return false, false
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			return parsed, true
		}
		return strings.TrimSpace(v) != "", true
	default:
		return truthy(value), true
	}
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(value)
	}
}
