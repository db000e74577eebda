package parser

import (
	"github.com/orizon-lang/csfront/internal/lexer"
)

// Predicates decide between productions that a single token of lookahead
// cannot tell apart. Each one reads ahead from a Cursor and never changes
// the committed stream position. When a predicate cannot decide, callers
// fall back to the expression interpretation.

// builtinTypes are the keywords that name predefined types.
var builtinTypes = NewTokenSet(
	lexer.TokenBool, lexer.TokenByte, lexer.TokenCharKw, lexer.TokenDecimal,
	lexer.TokenDouble, lexer.TokenFloat, lexer.TokenInt, lexer.TokenLong,
	lexer.TokenObject, lexer.TokenSbyte, lexer.TokenShort, lexer.TokenStringKw,
	lexer.TokenUint, lexer.TokenUlong, lexer.TokenUshort, lexer.TokenVoid,
)

// integralTypes are the legal enum base types.
var integralTypes = NewTokenSet(
	lexer.TokenByte, lexer.TokenSbyte, lexer.TokenShort, lexer.TokenUshort,
	lexer.TokenInt, lexer.TokenUint, lexer.TokenLong, lexer.TokenUlong,
	lexer.TokenCharKw,
)

// castFollowers are the tokens that, after "(T)", make the parenthesized
// name a cast rather than an expression.
var castFollowers = NewTokenSet(
	lexer.TokenIdentifier, lexer.TokenInteger, lexer.TokenReal, lexer.TokenChar,
	lexer.TokenString, lexer.TokenLParen, lexer.TokenNot, lexer.TokenTilde,
	lexer.TokenNew, lexer.TokenThis, lexer.TokenBase, lexer.TokenNull,
	lexer.TokenTrue, lexer.TokenFalse, lexer.TokenChecked, lexer.TokenUnchecked,
	lexer.TokenTypeof, lexer.TokenSizeof, lexer.TokenDelegate, lexer.TokenDefault,
)

// localAttrTargets lists the identifiers accepted before ':' in a member
// attribute section. "event" and "return" are reserved words and handled
// by token type.
var localAttrTargets = map[string]bool{
	"field": true, "method": true, "module": true, "param": true,
	"property": true, "type": true,
}

func isBuiltinType(tt lexer.TokenType) bool { return builtinTypes.Has(tt) }

// skipTypeName moves past a type: a built-in keyword or a possibly
// alias-qualified, dotted, generic name, followed by nullable, pointer
// and array suffixes.
func skipTypeName(c Cursor) (Cursor, bool) {
	switch {
	case isBuiltinType(c.Kind()):
		c = c.Next()
	case c.Is(lexer.TokenIdentifier):
		if c.Next().Is(lexer.TokenDoubleColon) {
			c = c.Next().Next()
			if !c.Is(lexer.TokenIdentifier) {
				return c, false
			}
		}
		var ok bool
		if c, ok = skipQualifiedName(c); !ok {
			return c, false
		}
	default:
		return c, false
	}
	return skipPointerOrDims(c), true
}

// skipQualifiedName moves past "A<..>.B<..>.C". The cursor starts on an
// identifier.
func skipQualifiedName(c Cursor) (Cursor, bool) {
	for {
		if !c.Is(lexer.TokenIdentifier) {
			return c, false
		}
		c = c.Next()
		if c.Is(lexer.TokenLt) {
			var ok bool
			if c, ok = skipGeneric(c); !ok {
				return c, false
			}
		}
		if !c.Is(lexer.TokenDot) || !c.Next().Is(lexer.TokenIdentifier) {
			return c, true
		}
		c = c.Next()
	}
}

// skipGeneric moves past a type argument list. The cursor starts on '<'.
// Unbound lists ("<>", "<,>") are accepted.
func skipGeneric(c Cursor) (Cursor, bool) {
	c = c.Next()
	if c.Is(lexer.TokenGt) || c.Is(lexer.TokenComma) {
		for c.Is(lexer.TokenComma) {
			c = c.Next()
		}
		if c.Is(lexer.TokenGt) {
			return c.Next(), true
		}
		return c, false
	}
	for {
		var ok bool
		if c, ok = skipTypeName(c); !ok {
			return c, false
		}
		switch c.Kind() {
		case lexer.TokenComma:
			c = c.Next()
		case lexer.TokenGt:
			return c.Next(), true
		default:
			return c, false
		}
	}
}

// skipPointerOrDims moves past an optional '?' and any run of '*' and
// rank specifiers.
func skipPointerOrDims(c Cursor) Cursor {
	if c.Is(lexer.TokenQuestion) {
		c = c.Next()
	}
	for {
		switch {
		case c.Is(lexer.TokenMul):
			c = c.Next()
		case isDims(c):
			c = c.Next()
			for c.Is(lexer.TokenComma) {
				c = c.Next()
			}
			c = c.Next()
		default:
			return c
		}
	}
}

// isDims reports whether c starts a rank specifier "[", ","*, "]".
func isDims(c Cursor) bool {
	if !c.Is(lexer.TokenLBracket) {
		return false
	}
	c = c.Next()
	for c.Is(lexer.TokenComma) {
		c = c.Next()
	}
	return c.Is(lexer.TokenRBracket)
}

// isTypeCast reports whether the '(' at c opens a cast. A parenthesized
// built-in type is always a cast. Any other type name must be followed by
// ')' and a token that can only start a unary expression operand.
func isTypeCast(c Cursor) bool {
	c = c.Next()
	if isBuiltinType(c.Kind()) {
		end, ok := skipTypeName(c)
		return ok && end.Is(lexer.TokenRParen)
	}
	end, ok := skipTypeName(c)
	if !ok || !end.Is(lexer.TokenRParen) {
		return false
	}
	after := end.Next()
	if castFollowers.Has(after.Kind()) {
		return true
	}
	return isBuiltinType(after.Kind()) && after.Next().Is(lexer.TokenDot)
}

// isGenericFollowedBy reports whether the '<' at c opens a type argument
// list that is followed by one of kinds. "Foo<Bar>(1)" is a generic call;
// "a < b, c > d" is two comparisons.
func isGenericFollowedBy(c Cursor, kinds ...lexer.TokenType) bool {
	end, ok := skipGeneric(c)
	if !ok {
		return false
	}
	for _, k := range kinds {
		if end.Is(k) {
			return true
		}
	}
	return false
}

// adjacent reports whether the tokens at a and a.Next() touch in source.
func adjacent(a Cursor) bool {
	return a.Token().Span.End.Offset == a.Next().Token().Span.Start.Offset
}

// isShiftRight reports whether the '>' at c and the following '>' form ">>".
func isShiftRight(c Cursor) bool {
	return c.Is(lexer.TokenGt) && c.Next().Is(lexer.TokenGt) && adjacent(c)
}

// isShiftRightAssign reports whether the '>' at c and the following ">="
// form ">>=".
func isShiftRightAssign(c Cursor) bool {
	return c.Is(lexer.TokenGt) && c.Next().Is(lexer.TokenGe) && adjacent(c)
}

// isYieldStatement reports whether c starts "yield return" or "yield break".
func isYieldStatement(c Cursor) bool {
	if !c.IsIdent("yield") {
		return false
	}
	next := c.Next().Kind()
	return next == lexer.TokenReturn || next == lexer.TokenBreak
}

// isLocalVarDecl reports whether a statement at c declares locals: a type
// followed by an identifier.
func isLocalVarDecl(c Cursor) bool {
	if isYieldStatement(c) || notVoidPointer(c) {
		return false
	}
	end, ok := skipTypeName(c)
	return ok && end.Is(lexer.TokenIdentifier)
}

// isLabel reports whether c starts "ident :".
func isLabel(c Cursor) bool {
	return c.Is(lexer.TokenIdentifier) && c.Next().Is(lexer.TokenColon)
}

// isTypedCatch reports whether the catch at c names an exception type.
func isTypedCatch(c Cursor) bool {
	return c.Is(lexer.TokenCatch) && c.Next().Is(lexer.TokenLParen)
}

// isGlobalAttrTarget reports whether the '[' at c opens an assembly or
// module attribute section.
func isGlobalAttrTarget(c Cursor) bool {
	c = c.Next()
	return (c.IsIdent("assembly") || c.IsIdent("module")) && c.Next().Is(lexer.TokenColon)
}

// isLocalAttrTarget reports whether the '[' at c has a member target.
func isLocalAttrTarget(c Cursor) bool {
	c = c.Next()
	if !c.Next().Is(lexer.TokenColon) {
		return false
	}
	switch c.Kind() {
	case lexer.TokenEvent, lexer.TokenReturn:
		return true
	case lexer.TokenIdentifier:
		return localAttrTargets[c.Token().Literal]
	}
	return false
}

// isExplicitInterfaceImpl reports whether the member name at c is
// qualified by an interface ("IFoo.Bar", "IList<T>.this").
func isExplicitInterfaceImpl(c Cursor) bool {
	if !c.Is(lexer.TokenIdentifier) {
		return false
	}
	c = c.Next()
	if c.Is(lexer.TokenDoubleColon) {
		return true
	}
	if c.Is(lexer.TokenLt) {
		var ok bool
		if c, ok = skipGeneric(c); !ok {
			return false
		}
	}
	return c.Is(lexer.TokenDot)
}

// isVarDecl reports whether the identifier at c starts a field
// declarator rather than a method, property or event name.
func isVarDecl(c Cursor) bool {
	if !c.Is(lexer.TokenIdentifier) {
		return false
	}
	switch c.Next().Kind() {
	case lexer.TokenComma, lexer.TokenAssign, lexer.TokenSemicolon, lexer.TokenLBracket:
		return true
	}
	return false
}

// notFinalComma reports whether the ',' at c separates two elements
// rather than trailing the last one before '}'.
func notFinalComma(c Cursor) bool {
	return c.Is(lexer.TokenComma) && !c.Next().Is(lexer.TokenRBrace)
}

// notVoidPointer reports whether the token at c is a plain "void".
func notVoidPointer(c Cursor) bool {
	return c.Is(lexer.TokenVoid) && !c.Next().Is(lexer.TokenMul)
}

// uncheckedAndBrace reports whether c is a checked or unchecked block
// statement rather than a checked or unchecked expression.
func uncheckedAndBrace(c Cursor) bool {
	return (c.Is(lexer.TokenChecked) || c.Is(lexer.TokenUnchecked)) && c.Next().Is(lexer.TokenLBrace)
}

// identAndLParen reports whether c starts "ident (", the constructor
// shape inside a class body.
func identAndLParen(c Cursor) bool {
	return c.Is(lexer.TokenIdentifier) && c.Next().Is(lexer.TokenLParen)
}

// isNullableTypeTest reports whether the '?' at c, after the type of an
// is or as expression, is a nullable suffix. It is not when it starts a
// conditional expression, which is recognised by an operand following.
func isNullableTypeTest(c Cursor) bool {
	if !c.Is(lexer.TokenQuestion) {
		return false
	}
	next := c.Next()
	if castFollowers.Has(next.Kind()) || isBuiltinType(next.Kind()) {
		return false
	}
	switch next.Kind() {
	case lexer.TokenMinus, lexer.TokenPlus, lexer.TokenIncrement, lexer.TokenDecrement,
		lexer.TokenMul, lexer.TokenAmp:
		return false
	}
	return true
}

// isAssignmentOperator reports whether c starts an assignment operator,
// including ">>=" formed from two tokens.
func isAssignmentOperator(c Cursor) bool {
	switch c.Kind() {
	case lexer.TokenAssign, lexer.TokenPlusAssign, lexer.TokenMinusAssign,
		lexer.TokenMulAssign, lexer.TokenDivAssign, lexer.TokenModAssign,
		lexer.TokenAndAssign, lexer.TokenOrAssign, lexer.TokenXorAssign,
		lexer.TokenShlAssign:
		return true
	}
	return isShiftRightAssign(c)
}

// isPartialType reports whether the identifier "partial" at c modifies a
// class, struct or interface declaration.
func isPartialType(c Cursor) bool {
	if !c.IsIdent("partial") {
		return false
	}
	switch c.Next().Kind() {
	case lexer.TokenClass, lexer.TokenStruct, lexer.TokenInterface:
		return true
	}
	return false
}

// isAccessor reports whether c is the contextual accessor keyword name,
// possibly preceded by attributes and accessor modifiers.
func isAccessor(c Cursor, names ...string) bool {
	for c.Is(lexer.TokenLBracket) {
		depth := 0
		for {
			switch c.Kind() {
			case lexer.TokenLBracket:
				depth++
			case lexer.TokenRBracket:
				depth--
			case lexer.TokenEOF:
				return false
			}
			c = c.Next()
			if depth == 0 {
				break
			}
		}
	}
	for c.Is(lexer.TokenPrivate) || c.Is(lexer.TokenProtected) || c.Is(lexer.TokenInternal) {
		c = c.Next()
	}
	for _, n := range names {
		if c.IsIdent(n) {
			return true
		}
	}
	return false
}
