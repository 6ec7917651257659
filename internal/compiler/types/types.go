package types

// Type identifies a SEG value type. It is shared by the AST, the parser's
// promotion logic, the symbol table, and the code generator.
type Type int

const (
	Unknown Type = iota
	Int
	Float
	Bool
	Char
	String
)

func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Char:
		return "char"
	case String:
		return "string"
	default:
		return "unknown"
	}
}
