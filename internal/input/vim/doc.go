// Package vim implements Vim-style modal editing.
//
// Normal and Visual mode keys are parsed by a Parser with the grammar
//
//	[count]["register][operator][count][motion|text-object]
//	[count]["register][operator][operator]      line-wise: dd, yy, >>
//	[count][motion]
//	[count]["register][command]                 x, p, J, r<char>, ...
//
// The effective count is the product of both counts. A leading 0 is the
// line-start motion, not a count digit. Incomplete sequences report
// NeedMoreChars; sequences that can no longer become a command are dropped
// without touching the buffer.
//
// A complete command resolves to a range through the motion package and an
// operation (delete, delete lines, insert, copy, copy lines or replace),
// which is applied as a single history command. Insert mode keys between
// entering insert and Escape form one undo group.
//
// Examples:
//   - "5j": count=5, motion=j
//   - "2d3w": delete 6 words
//   - "diw": delete inner word
//   - `"ayy`: yank the line into register a
//   - "ci(": change inside parentheses
package vim
