package parser

import (
	"github.com/orizon-lang/csfront/internal/ast"
	"github.com/orizon-lang/csfront/internal/diagnostics"
	"github.com/orizon-lang/csfront/internal/lexer"
	"github.com/orizon-lang/csfront/internal/position"
)

var modifierKeywords = map[lexer.TokenType]ast.Modifiers{
	lexer.TokenNew:       ast.ModNew,
	lexer.TokenPublic:    ast.ModPublic,
	lexer.TokenProtected: ast.ModProtected,
	lexer.TokenInternal:  ast.ModInternal,
	lexer.TokenPrivate:   ast.ModPrivate,
	lexer.TokenAbstract:  ast.ModAbstract,
	lexer.TokenVirtual:   ast.ModVirtual,
	lexer.TokenSealed:    ast.ModSealed,
	lexer.TokenStatic:    ast.ModStatic,
	lexer.TokenOverride:  ast.ModOverride,
	lexer.TokenReadonly:  ast.ModReadonly,
	lexer.TokenExtern:    ast.ModExtern,
	lexer.TokenVolatile:  ast.ModVolatile,
	lexer.TokenUnsafe:    ast.ModUnsafe,
	lexer.TokenFixed:     ast.ModFixed,
}

// modifierList is the modifier set of a declaration together with the
// span of each modifier keyword, kept for advisories.
type modifierList struct {
	mods  ast.Modifiers
	spans map[ast.Modifiers]position.Span
	start position.Position
}

// parseModifiers parses modifier keywords and the contextual "partial"
// before class, struct or interface. Duplicates are reported.
func (p *Parser) parseModifiers() modifierList {
	ml := modifierList{start: p.startPos()}
	for {
		tok := p.la()
		m, ok := modifierKeywords[tok.Type]
		if !ok {
			if !isPartialType(p.s.Cursor()) {
				return ml
			}
			m = ast.ModPartial
		}
		if ml.mods.Has(m) {
			p.advisory(diagnostics.CodeDuplicateModifier, tok.Span, tok.Literal)
		}
		if ml.spans == nil {
			ml.spans = make(map[ast.Modifiers]position.Span)
		}
		if _, seen := ml.spans[m]; !seen {
			ml.spans[m] = tok.Span
		}
		ml.mods |= m
		p.nextToken()
	}
}

// check reports every modifier not in allowed for the declaration kind
// named by context.
func (p *Parser) checkModifiers(ml modifierList, allowed ast.Modifiers, context string) {
	bad := ml.mods.Disallowed(allowed)
	if bad == ast.ModNone {
		return
	}
	for bit := ast.Modifiers(1); bit != 0 && bit <= bad; bit <<= 1 {
		if !bad.Has(bit) {
			continue
		}
		p.advisory(diagnostics.CodeModifierNotAllowed, ml.spans[bit], bit.String(), context)
	}
}
