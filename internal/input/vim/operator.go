package vim

// OperatorKind identifies what an operator does to its range.
type OperatorKind uint8

const (
	OpDelete OperatorKind = iota
	OpChange
	OpYank
	OpIndentRight
	OpIndentLeft
	OpLower
	OpUpper
	OpToggleCase
)

// Operator is a verb that acts on the range of a motion or text object.
type Operator struct {
	Name string
	// Key repeats the operator for the line-wise form (dd, >>, gUU).
	Key  rune
	Kind OperatorKind

	ChangesText  bool
	EntersInsert bool
}

// Standard operators.
var (
	OperatorDelete = Operator{
		Name:        "delete",
		Key:         'd',
		Kind:        OpDelete,
		ChangesText: true,
	}

	OperatorChange = Operator{
		Name:         "change",
		Key:          'c',
		Kind:         OpChange,
		ChangesText:  true,
		EntersInsert: true,
	}

	OperatorYank = Operator{
		Name: "yank",
		Key:  'y',
		Kind: OpYank,
	}

	OperatorIndentRight = Operator{
		Name:        "indentRight",
		Key:         '>',
		Kind:        OpIndentRight,
		ChangesText: true,
	}

	OperatorIndentLeft = Operator{
		Name:        "indentLeft",
		Key:         '<',
		Kind:        OpIndentLeft,
		ChangesText: true,
	}

	OperatorLower = Operator{
		Name:        "toLower",
		Key:         'u',
		Kind:        OpLower,
		ChangesText: true,
	}

	OperatorUpper = Operator{
		Name:        "toUpper",
		Key:         'U',
		Kind:        OpUpper,
		ChangesText: true,
	}

	OperatorToggleCase = Operator{
		Name:        "toggleCase",
		Key:         '~',
		Kind:        OpToggleCase,
		ChangesText: true,
	}
)

var operators = map[rune]*Operator{
	'd': &OperatorDelete,
	'c': &OperatorChange,
	'y': &OperatorYank,
	'>': &OperatorIndentRight,
	'<': &OperatorIndentLeft,
}

// gOperators are reached through g: g~, gu, gU.
var gOperators = map[rune]*Operator{
	'~': &OperatorToggleCase,
	'u': &OperatorLower,
	'U': &OperatorUpper,
}

// visualOperators are the single keys that act on a Visual selection.
var visualOperators = map[rune]*Operator{
	'd': &OperatorDelete,
	'x': &OperatorDelete,
	'c': &OperatorChange,
	's': &OperatorChange,
	'y': &OperatorYank,
	'>': &OperatorIndentRight,
	'<': &OperatorIndentLeft,
	'~': &OperatorToggleCase,
	'u': &OperatorLower,
	'U': &OperatorUpper,
}

// visualLinewiseOperators act on the whole lines of a Visual selection.
var visualLinewiseOperators = map[rune]*Operator{
	'X': &OperatorDelete,
	'D': &OperatorDelete,
	'Y': &OperatorYank,
	'C': &OperatorChange,
	'S': &OperatorChange,
	'R': &OperatorChange,
}

// GetOperator returns the operator for key, or nil.
func GetOperator(key rune) *Operator {
	return operators[key]
}

// GetGOperator returns the g-prefixed operator for key, or nil.
func GetGOperator(key rune) *Operator {
	return gOperators[key]
}
