package ast

import (
	"math/bits"
	"strings"
)

// Modifiers is a set of declaration modifier keywords.
type Modifiers uint32

const (
	ModPrivate Modifiers = 1 << iota
	ModInternal
	ModProtected
	ModPublic
	ModAbstract
	ModVirtual
	ModSealed
	ModStatic
	ModOverride
	ModReadonly
	ModConst
	ModNew
	ModPartial
	ModExtern
	ModVolatile
	ModUnsafe
	ModFixed

	ModNone Modifiers = 0

	Visibility = ModPrivate | ModInternal | ModProtected | ModPublic
)

// Modifier sets allowed in each declaration context.
const (
	Classes                         = ModNew | Visibility | ModAbstract | ModUnsafe | ModSealed | ModStatic | ModPartial
	StructsInterfacesEnumsDelegates = ModNew | Visibility | ModUnsafe | ModPartial
	Fields                          = ModNew | Visibility | ModStatic | ModReadonly | ModVolatile | ModUnsafe | ModFixed
	Constants                       = ModNew | Visibility
	PropertysEventsMethods          = ModNew | Visibility | ModStatic | ModVirtual | ModSealed | ModOverride | ModAbstract | ModExtern | ModUnsafe
	Indexers                        = ModNew | Visibility | ModVirtual | ModSealed | ModOverride | ModAbstract | ModExtern | ModUnsafe
	Operators                       = ModPublic | ModStatic | ModExtern | ModUnsafe
	Constructors                    = Visibility | ModExtern | ModUnsafe
	StaticConstructors              = ModExtern | ModStatic | ModUnsafe
	Destructors                     = ModExtern | ModUnsafe
	InterfaceMembers                = ModNew
	Accessors                       = ModPrivate | ModInternal | ModProtected
	LocalConstants                  = ModConst
)

var modifierNames = [...]string{
	"private", "internal", "protected", "public", "abstract", "virtual",
	"sealed", "static", "override", "readonly", "const", "new", "partial",
	"extern", "volatile", "unsafe", "fixed",
}

// Has reports whether every modifier in x is set.
func (m Modifiers) Has(x Modifiers) bool { return m&x == x && x != 0 }

// Any reports whether any modifier in x is set.
func (m Modifiers) Any(x Modifiers) bool { return m&x != 0 }

// Disallowed returns the modifiers of m that are not in allowed.
func (m Modifiers) Disallowed(allowed Modifiers) Modifiers { return m &^ allowed }

// Count returns the number of modifiers set.
func (m Modifiers) Count() int { return bits.OnesCount32(uint32(m)) }

// Names lists the modifier keywords in declaration order.
func (m Modifiers) Names() []string {
	var names []string
	for i, name := range modifierNames {
		if m&(1<<i) != 0 {
			names = append(names, name)
		}
	}
	return names
}

// String renders the modifiers separated by spaces.
func (m Modifiers) String() string {
	return strings.Join(m.Names(), " ")
}
