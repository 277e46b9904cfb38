package vim

// MotionType distinguishes character-wise from line-wise motions.
type MotionType uint8

const (
	// MotionCharwise acts on the characters between cursor and target.
	MotionCharwise MotionType = iota
	// MotionLinewise acts on whole lines.
	MotionLinewise
)

// MotionID names what a motion does.
type MotionID uint8

const (
	MotionLeft MotionID = iota
	MotionRight
	MotionUp
	MotionDown
	MotionWordForward
	MotionWordBackward
	MotionWordEnd
	MotionWordEndBackward
	MotionWORDForward
	MotionWORDBackward
	MotionWORDEnd
	MotionWORDEndBackward
	MotionLineStart
	MotionFirstNonBlank
	MotionLineEnd
	MotionFileStart
	MotionFileEnd
	MotionFindForward
	MotionFindBackward
	MotionTillForward
	MotionTillBackward
	MotionRepeatFind
	MotionRepeatFindReverse
	MotionSearchNext
	MotionSearchPrev
	MotionParagraphForward
	MotionParagraphBackward
	MotionMatchPair
)

// Motion moves the cursor or, after an operator, defines its range.
type Motion struct {
	Name string
	Key  rune
	ID   MotionID
	Type MotionType
	// Inclusive motions include the character they land on.
	Inclusive bool
	// NeedsChar motions read one more key (f, t).
	NeedsChar bool
}

// IsLinewise returns true for line-wise motions.
func (m *Motion) IsLinewise() bool {
	return m.Type == MotionLinewise
}

var motions = map[rune]*Motion{
	'h': {Name: "left", Key: 'h', ID: MotionLeft},
	'l': {Name: "right", Key: 'l', ID: MotionRight},
	' ': {Name: "right", Key: ' ', ID: MotionRight},
	'k': {Name: "up", Key: 'k', ID: MotionUp, Type: MotionLinewise},
	'j': {Name: "down", Key: 'j', ID: MotionDown, Type: MotionLinewise},

	'w': {Name: "wordForward", Key: 'w', ID: MotionWordForward},
	'b': {Name: "wordBackward", Key: 'b', ID: MotionWordBackward},
	'e': {Name: "wordEnd", Key: 'e', ID: MotionWordEnd, Inclusive: true},
	'W': {Name: "WORDForward", Key: 'W', ID: MotionWORDForward},
	'B': {Name: "WORDBackward", Key: 'B', ID: MotionWORDBackward},
	'E': {Name: "WORDEnd", Key: 'E', ID: MotionWORDEnd, Inclusive: true},

	'0': {Name: "lineStart", Key: '0', ID: MotionLineStart},
	'^': {Name: "firstNonBlank", Key: '^', ID: MotionFirstNonBlank},
	'$': {Name: "lineEnd", Key: '$', ID: MotionLineEnd, Inclusive: true},
	'G': {Name: "fileEnd", Key: 'G', ID: MotionFileEnd, Type: MotionLinewise},

	'f': {Name: "findForward", Key: 'f', ID: MotionFindForward, Inclusive: true, NeedsChar: true},
	'F': {Name: "findBackward", Key: 'F', ID: MotionFindBackward, NeedsChar: true},
	't': {Name: "tillForward", Key: 't', ID: MotionTillForward, Inclusive: true, NeedsChar: true},
	'T': {Name: "tillBackward", Key: 'T', ID: MotionTillBackward, NeedsChar: true},
	';': {Name: "repeatFind", Key: ';', ID: MotionRepeatFind},
	',': {Name: "repeatFindReverse", Key: ',', ID: MotionRepeatFindReverse},

	'n': {Name: "searchNext", Key: 'n', ID: MotionSearchNext},
	'N': {Name: "searchPrev", Key: 'N', ID: MotionSearchPrev},

	'}': {Name: "paragraphForward", Key: '}', ID: MotionParagraphForward},
	'{': {Name: "paragraphBackward", Key: '{', ID: MotionParagraphBackward},
	'%': {Name: "matchPair", Key: '%', ID: MotionMatchPair, Inclusive: true},
}

// gMotions are reached through g: gg, ge, gE.
var gMotions = map[rune]*Motion{
	'g': {Name: "fileStart", Key: 'g', ID: MotionFileStart, Type: MotionLinewise},
	'e': {Name: "wordEndBackward", Key: 'e', ID: MotionWordEndBackward, Inclusive: true},
	'E': {Name: "WORDEndBackward", Key: 'E', ID: MotionWORDEndBackward, Inclusive: true},
}

// GetMotion returns the motion for key, or nil.
func GetMotion(key rune) *Motion {
	return motions[key]
}

// GetGMotion returns the g-prefixed motion for key, or nil.
func GetGMotion(key rune) *Motion {
	return gMotions[key]
}
