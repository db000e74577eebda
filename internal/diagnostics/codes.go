package diagnostics

// Code identifies a diagnostic. Codes are stable across releases.
type Code string

const (
	CodeExpectedToken      Code = "P0001"
	CodeInvalidAlternative Code = "P0002"

	CodeAttributeTarget       Code = "P0101"
	CodeModifierNotAllowed    Code = "P0102"
	CodeDuplicateModifier     Code = "P0103"
	CodeParamsNotLast         Code = "P0104"
	CodePositionalAfterNamed  Code = "P0105"
	CodeFixedNeedsPointer     Code = "P0106"
	CodeDuplicateAccessor     Code = "P0107"
	CodeArrayCreationIndexed  Code = "P0108"
	CodeEnumBaseNotIntegral   Code = "P0109"
	CodeFeatureNotAvailable   Code = "P0110"
	CodeUnknownTypeParameter  Code = "P0111"
	CodeAccessorExpected      Code = "P0112"
	CodeEventAccessorExpected Code = "P0113"
	CodeOperatorArity         Code = "P0114"
	CodeConstraintOrder       Code = "P0115"
	CodeTooManyErrors         Code = "P0199"
)

// CodeInfo describes the fixed properties of a code.
type CodeInfo struct {
	Kind   Kind
	Level  DiagnosticLevel
	Format string // fmt template for the message
}

var codeTable = map[Code]CodeInfo{
	CodeExpectedToken:      {KindExpectedToken, DiagnosticError, "%s expected"},
	CodeInvalidAlternative: {KindInvalidAlternative, DiagnosticError, "invalid %s"},

	CodeAttributeTarget:       {KindAdvisory, DiagnosticError, "invalid attribute target %q"},
	CodeModifierNotAllowed:    {KindAdvisory, DiagnosticError, "modifier %q is not valid for %s"},
	CodeDuplicateModifier:     {KindAdvisory, DiagnosticError, "duplicate modifier %q"},
	CodeParamsNotLast:         {KindAdvisory, DiagnosticError, "params parameter must be the last parameter"},
	CodePositionalAfterNamed:  {KindAdvisory, DiagnosticError, "positional attribute argument follows a named argument"},
	CodeFixedNeedsPointer:     {KindAdvisory, DiagnosticError, "fixed statement requires a pointer type, found %s"},
	CodeDuplicateAccessor:     {KindAdvisory, DiagnosticError, "duplicate %s accessor"},
	CodeArrayCreationIndexed:  {KindAdvisory, DiagnosticError, "element access on an array creation expression requires parentheses"},
	CodeEnumBaseNotIntegral:   {KindAdvisory, DiagnosticError, "enum base type must be an integral type, found %s"},
	CodeFeatureNotAvailable:   {KindAdvisory, DiagnosticWarning, "%s requires language version %s (current %s)"},
	CodeUnknownTypeParameter:  {KindAdvisory, DiagnosticError, "constraint names unknown type parameter %q"},
	CodeAccessorExpected:      {KindAdvisory, DiagnosticError, "get or set accessor expected"},
	CodeEventAccessorExpected: {KindAdvisory, DiagnosticError, "add or remove accessor expected"},
	CodeOperatorArity:         {KindAdvisory, DiagnosticError, "operator %s cannot take %d parameters"},
	CodeConstraintOrder:       {KindAdvisory, DiagnosticError, "%s constraint must come %s"},
	CodeTooManyErrors:         {KindAdvisory, DiagnosticWarning, "too many errors (limit %d), further diagnostics suppressed"},
}

// Lookup returns the description of code. Unknown codes are treated as
// invalid-alternative errors with the message passed through verbatim.
func Lookup(code Code) CodeInfo {
	if info, ok := codeTable[code]; ok {
		return info
	}
	return CodeInfo{Kind: KindInvalidAlternative, Level: DiagnosticError, Format: "%s"}
}
