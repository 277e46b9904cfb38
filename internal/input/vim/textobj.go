package vim

// TextObjectPrefix selects the inner or around form of a text object.
type TextObjectPrefix rune

const (
	PrefixNone   TextObjectPrefix = 0
	PrefixInner  TextObjectPrefix = 'i'
	PrefixAround TextObjectPrefix = 'a'
)

// TextObjectKind groups text objects by how their range is found.
type TextObjectKind uint8

const (
	ObjectWord TextObjectKind = iota
	ObjectWORD
	ObjectPair
	ObjectQuote
)

// TextObject is a region selected relative to the cursor, like iw or a(.
type TextObject struct {
	Name string
	Key  rune
	Kind TextObjectKind
	// Open and Close delimit ObjectPair; Open is the quote of ObjectQuote.
	Open  byte
	Close byte
}

var textObjects = map[rune]*TextObject{
	'w': {Name: "word", Key: 'w', Kind: ObjectWord},
	'W': {Name: "WORD", Key: 'W', Kind: ObjectWORD},

	'"':  {Name: "doubleQuote", Key: '"', Kind: ObjectQuote, Open: '"'},
	'\'': {Name: "singleQuote", Key: '\'', Kind: ObjectQuote, Open: '\''},
	'`':  {Name: "backtick", Key: '`', Kind: ObjectQuote, Open: '`'},

	'(': {Name: "paren", Key: '(', Kind: ObjectPair, Open: '(', Close: ')'},
	')': {Name: "paren", Key: ')', Kind: ObjectPair, Open: '(', Close: ')'},
	'b': {Name: "paren", Key: 'b', Kind: ObjectPair, Open: '(', Close: ')'},
	'[': {Name: "bracket", Key: '[', Kind: ObjectPair, Open: '[', Close: ']'},
	']': {Name: "bracket", Key: ']', Kind: ObjectPair, Open: '[', Close: ']'},
	'{': {Name: "brace", Key: '{', Kind: ObjectPair, Open: '{', Close: '}'},
	'}': {Name: "brace", Key: '}', Kind: ObjectPair, Open: '{', Close: '}'},
	'B': {Name: "brace", Key: 'B', Kind: ObjectPair, Open: '{', Close: '}'},
	'<': {Name: "angle", Key: '<', Kind: ObjectPair, Open: '<', Close: '>'},
	'>': {Name: "angle", Key: '>', Kind: ObjectPair, Open: '<', Close: '>'},
}

// GetTextObject returns the text object for key, or nil.
func GetTextObject(key rune) *TextObject {
	return textObjects[key]
}
