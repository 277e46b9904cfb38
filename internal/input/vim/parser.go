package vim

import (
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/register"
)

// ParseStatus indicates the result of parsing a key event.
type ParseStatus uint8

const (
	// StatusPending indicates more input is needed.
	StatusPending ParseStatus = iota

	// StatusComplete indicates a complete command was parsed.
	StatusComplete

	// StatusInvalid indicates the sequence can not form a command. The
	// parser has been reset.
	StatusInvalid

	// StatusPassthrough indicates the key is not parsed here.
	StatusPassthrough
)

// String returns a string representation of the status.
func (s ParseStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusComplete:
		return "complete"
	case StatusInvalid:
		return "invalid"
	case StatusPassthrough:
		return "passthrough"
	default:
		return "unknown"
	}
}

// ParseState represents the current state of the parser.
type ParseState uint8

const (
	// StateInitial is waiting for initial input.
	StateInitial ParseState = iota

	// StateCount is accumulating a count prefix.
	StateCount

	// StateRegister is waiting for a register name after ".
	StateRegister

	// StateOperator has received an operator, waiting for motion/text-object.
	StateOperator

	// StateOperatorCount is accumulating count after operator.
	StateOperatorCount

	// StateGPrefix has received 'g', waiting for second key.
	StateGPrefix

	// StateTextObjectPrefix has received 'i' or 'a', waiting for text object.
	StateTextObjectPrefix

	// StateCharArg has received f/F/t/T or r, waiting for a character.
	StateCharArg
)

// String returns a string representation of the state.
func (s ParseState) String() string {
	switch s {
	case StateInitial:
		return "initial"
	case StateCount:
		return "count"
	case StateRegister:
		return "register"
	case StateOperator:
		return "operator"
	case StateOperatorCount:
		return "operatorCount"
	case StateGPrefix:
		return "gPrefix"
	case StateTextObjectPrefix:
		return "textObjectPrefix"
	case StateCharArg:
		return "charArg"
	default:
		return "unknown"
	}
}

// Action is a command that is neither a motion nor an operator.
type Action uint8

const (
	ActionNone Action = iota
	ActionInsert
	ActionAppend
	ActionInsertLineStart
	ActionAppendLineEnd
	ActionOpenBelow
	ActionOpenAbove
	ActionVisual
	ActionVisualLine
	ActionEx
	ActionSearchForward
	ActionSearchBackward
	ActionUndo
	ActionPutAfter
	ActionPutBefore
	ActionJoin
	ActionReplaceChar
	ActionToggleCaseChar
	ActionRepeat
	// ActionSwapAnchor moves the cursor to the other end of a selection.
	ActionSwapAnchor
	// ActionSelectObject selects a text object in Visual mode.
	ActionSelectObject
)

var actionNames = [...]string{
	ActionNone:            "none",
	ActionInsert:          "insert",
	ActionAppend:          "append",
	ActionInsertLineStart: "insertLineStart",
	ActionAppendLineEnd:   "appendLineEnd",
	ActionOpenBelow:       "openBelow",
	ActionOpenAbove:       "openAbove",
	ActionVisual:          "visual",
	ActionVisualLine:      "visualLine",
	ActionEx:              "ex",
	ActionSearchForward:   "searchForward",
	ActionSearchBackward:  "searchBackward",
	ActionUndo:            "undo",
	ActionPutAfter:        "putAfter",
	ActionPutBefore:       "putBefore",
	ActionJoin:            "join",
	ActionReplaceChar:     "replaceChar",
	ActionToggleCaseChar:  "toggleCaseChar",
	ActionRepeat:          "repeat",
	ActionSwapAnchor:      "swapAnchor",
	ActionSelectObject:    "selectObject",
}

// String returns the action name.
func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// ChangesText returns true for actions that edit the buffer, the ones '.'
// repeats.
func (a Action) ChangesText() bool {
	switch a {
	case ActionInsert, ActionAppend, ActionInsertLineStart, ActionAppendLineEnd,
		ActionOpenBelow, ActionOpenAbove, ActionPutAfter, ActionPutBefore,
		ActionJoin, ActionReplaceChar, ActionToggleCaseChar:
		return true
	}
	return false
}

var actions = map[rune]Action{
	'i': ActionInsert,
	'a': ActionAppend,
	'I': ActionInsertLineStart,
	'A': ActionAppendLineEnd,
	'o': ActionOpenBelow,
	'O': ActionOpenAbove,
	'v': ActionVisual,
	'V': ActionVisualLine,
	':': ActionEx,
	'/': ActionSearchForward,
	'?': ActionSearchBackward,
	'u': ActionUndo,
	'p': ActionPutAfter,
	'P': ActionPutBefore,
	'J': ActionJoin,
	'~': ActionToggleCaseChar,
	'.': ActionRepeat,
}

// visualActions are the non-operator keys of Visual mode.
var visualActions = map[rune]Action{
	'v': ActionVisual,
	'V': ActionVisualLine,
	':': ActionEx,
	'J': ActionJoin,
	'o': ActionSwapAnchor,
	'O': ActionSwapAnchor,
}

// shorthand commands that expand to an operator and a motion.
var shorthands = map[rune]struct {
	op       *Operator
	motion   rune
	linewise bool
}{
	'x': {op: &OperatorDelete, motion: 'l'},
	'X': {op: &OperatorDelete, motion: 'h'},
	'D': {op: &OperatorDelete, motion: '$'},
	'C': {op: &OperatorChange, motion: '$'},
	's': {op: &OperatorChange, motion: 'l'},
	'S': {op: &OperatorChange, linewise: true},
	'Y': {op: &OperatorYank, linewise: true},
}

// Command represents a parsed Vim command.
type Command struct {
	// Count is the repeat count (0 means none was typed).
	Count int

	// Register is the target register (0 means default).
	Register rune

	// Operator is the operator, if any.
	Operator *Operator

	// Motion is the motion, if any.
	Motion *Motion

	// TextObject is the text object, if any.
	TextObject *TextObject

	// TextObjectPrefix is 'i' (inner) or 'a' (around).
	TextObjectPrefix TextObjectPrefix

	// CharArg is the character argument for f/F/t/T and r.
	CharArg rune

	// Linewise indicates line-wise operation (dd, yy, etc.).
	Linewise bool

	// Visual is set when the command acts on the Visual selection.
	Visual bool

	// Action is set for commands without an operator or motion.
	Action Action
}

// GetCount returns the effective count (1 if none specified).
func (c *Command) GetCount() int {
	if c.Count <= 0 {
		return 1
	}
	return c.Count
}

// ParseResult contains the result of parsing a key event.
type ParseResult struct {
	// Status indicates the parse result.
	Status ParseStatus

	// Command is the parsed command (if Status == StatusComplete).
	Command *Command

	// PendingDisplay is a string showing pending keys (for status line).
	PendingDisplay string
}

// Parser parses Vim-style key sequences into commands.
type Parser struct {
	state ParseState

	count1        CountState
	count2        CountState
	register      rune
	operator      *Operator
	textObjPrefix TextObjectPrefix
	charCmd       rune

	// visual makes operators act at once on the selection.
	visual bool

	pendingKeys []rune
}

// NewParser creates a new Vim command parser.
func NewParser() *Parser {
	return &Parser{
		state:       StateInitial,
		pendingKeys: make([]rune, 0, 8),
	}
}

// Reset clears all parser state except the Visual flag.
func (p *Parser) Reset() {
	p.state = StateInitial
	p.count1.Reset()
	p.count2.Reset()
	p.register = 0
	p.operator = nil
	p.textObjPrefix = PrefixNone
	p.charCmd = 0
	p.pendingKeys = p.pendingKeys[:0]
}

// SetVisual switches between Normal and Visual parsing.
func (p *Parser) SetVisual(visual bool) {
	p.visual = visual
}

// State returns the current parser state.
func (p *Parser) State() ParseState {
	return p.state
}

// PendingKeys returns the pending key display string.
func (p *Parser) PendingKeys() string {
	return string(p.pendingKeys)
}

// Parse processes a key event and returns the result.
func (p *Parser) Parse(event key.Event) ParseResult {
	if event.Key == key.KeyEscape {
		p.Reset()
		return ParseResult{Status: StatusPassthrough}
	}
	if !event.IsRune() || event.IsModified() {
		return ParseResult{Status: StatusPassthrough}
	}

	r := event.Rune
	p.pendingKeys = append(p.pendingKeys, r)

	switch p.state {
	case StateInitial, StateCount:
		return p.parseInitial(r)
	case StateRegister:
		return p.parseRegister(r)
	case StateOperator, StateOperatorCount:
		return p.parseOperator(r)
	case StateGPrefix:
		return p.parseGPrefix(r)
	case StateTextObjectPrefix:
		return p.parseTextObjectPrefix(r)
	case StateCharArg:
		return p.parseCharArg(r)
	default:
		return p.invalid()
	}
}

func (p *Parser) pending() ParseResult {
	return ParseResult{Status: StatusPending, PendingDisplay: p.PendingKeys()}
}

func (p *Parser) invalid() ParseResult {
	p.Reset()
	return ParseResult{Status: StatusInvalid}
}

// parseInitial handles the first key of a command, after any count or
// register.
func (p *Parser) parseInitial(r rune) ParseResult {
	if p.count1.Active || IsCountStart(r) {
		if p.count1.AccumulateDigit(r) {
			p.state = StateCount
			return p.pending()
		}
	}

	switch {
	case r == '"':
		p.state = StateRegister
		return p.pending()

	case r == 'g':
		p.state = StateGPrefix
		return p.pending()

	case p.visual:
		return p.parseVisual(r)
	}

	if op := GetOperator(r); op != nil {
		p.operator = op
		p.state = StateOperator
		return p.pending()
	}

	if r == 'r' {
		p.charCmd = r
		p.state = StateCharArg
		return p.pending()
	}

	if m := GetMotion(r); m != nil {
		if m.NeedsChar {
			p.charCmd = r
			p.state = StateCharArg
			return p.pending()
		}
		return p.completeMotion(m)
	}

	if sh, ok := shorthands[r]; ok {
		cmd := p.newCommand()
		cmd.Operator = sh.op
		cmd.Linewise = sh.linewise
		if !sh.linewise {
			cmd.Motion = GetMotion(sh.motion)
		}
		return p.complete(cmd)
	}

	if a, ok := actions[r]; ok {
		cmd := p.newCommand()
		cmd.Action = a
		return p.complete(cmd)
	}

	return p.invalid()
}

// parseVisual handles the first key of a command in Visual mode.
func (p *Parser) parseVisual(r rune) ParseResult {
	if op, ok := visualOperators[r]; ok {
		return p.completeVisual(op, false)
	}
	if op, ok := visualLinewiseOperators[r]; ok {
		return p.completeVisual(op, true)
	}
	if r == 'i' || r == 'a' {
		p.textObjPrefix = TextObjectPrefix(r)
		p.state = StateTextObjectPrefix
		return p.pending()
	}
	if m := GetMotion(r); m != nil {
		if m.NeedsChar {
			p.charCmd = r
			p.state = StateCharArg
			return p.pending()
		}
		return p.completeMotion(m)
	}
	if a, ok := visualActions[r]; ok {
		cmd := p.newCommand()
		cmd.Action = a
		cmd.Visual = true
		return p.complete(cmd)
	}
	return p.invalid()
}

// parseRegister handles input after ".
func (p *Parser) parseRegister(r rune) ParseResult {
	if !register.IsValid(r) {
		return p.invalid()
	}
	p.register = r
	p.state = StateInitial
	return p.pending()
}

// parseOperator handles input after an operator.
func (p *Parser) parseOperator(r rune) ParseResult {
	if p.count2.Active || IsCountStart(r) {
		if p.count2.AccumulateDigit(r) {
			p.state = StateOperatorCount
			return p.pending()
		}
	}

	// Doubled operator: dd, yy, >>, gUU.
	if r == p.operator.Key {
		return p.completeLinewise()
	}

	switch r {
	case 'g':
		p.state = StateGPrefix
		return p.pending()
	case 'i', 'a':
		p.textObjPrefix = TextObjectPrefix(r)
		p.state = StateTextObjectPrefix
		return p.pending()
	}

	if m := GetMotion(r); m != nil {
		if m.NeedsChar {
			p.charCmd = r
			p.state = StateCharArg
			return p.pending()
		}
		return p.completeMotion(m)
	}
	return p.invalid()
}

// parseGPrefix handles the key after g.
func (p *Parser) parseGPrefix(r rune) ParseResult {
	if op := GetGOperator(r); op != nil {
		switch {
		case p.operator == op:
			// g~~, guu, gUU and their g~g~ spellings.
			return p.completeLinewise()
		case p.operator != nil:
			return p.invalid()
		case p.visual:
			return p.completeVisual(op, false)
		}
		p.operator = op
		p.state = StateOperator
		return p.pending()
	}

	if m := GetGMotion(r); m != nil {
		return p.completeMotion(m)
	}
	return p.invalid()
}

// parseTextObjectPrefix handles the key after i or a.
func (p *Parser) parseTextObjectPrefix(r rune) ParseResult {
	obj := GetTextObject(r)
	if obj == nil {
		return p.invalid()
	}
	cmd := p.newCommand()
	cmd.TextObject = obj
	cmd.TextObjectPrefix = p.textObjPrefix
	if p.operator == nil {
		cmd.Action = ActionSelectObject
	}
	return p.complete(cmd)
}

// parseCharArg handles the character after f/F/t/T or r.
func (p *Parser) parseCharArg(r rune) ParseResult {
	if p.charCmd == 'r' {
		cmd := p.newCommand()
		cmd.Action = ActionReplaceChar
		cmd.CharArg = r
		return p.complete(cmd)
	}
	cmd := p.newCommand()
	cmd.Motion = GetMotion(p.charCmd)
	cmd.CharArg = r
	return p.complete(cmd)
}

func (p *Parser) newCommand() *Command {
	cmd := &Command{
		Register: p.register,
		Operator: p.operator,
		Visual:   p.visual,
	}
	if p.count1.Active || p.count2.Active {
		cmd.Count = CombineCounts(p.count1.Value, p.count2.Value)
	}
	return cmd
}

func (p *Parser) complete(cmd *Command) ParseResult {
	p.Reset()
	return ParseResult{Status: StatusComplete, Command: cmd}
}

func (p *Parser) completeMotion(m *Motion) ParseResult {
	cmd := p.newCommand()
	cmd.Motion = m
	return p.complete(cmd)
}

func (p *Parser) completeLinewise() ParseResult {
	cmd := p.newCommand()
	cmd.Linewise = true
	return p.complete(cmd)
}

func (p *Parser) completeVisual(op *Operator, linewise bool) ParseResult {
	cmd := p.newCommand()
	cmd.Operator = op
	cmd.Linewise = linewise
	cmd.Visual = true
	return p.complete(cmd)
}
