// Package motion computes cursor destinations and ranges over buffer text.
//
// Every function here is pure: it reads a Text and returns a location or a
// range without mutating anything. The word motions follow Vim's rules for
// its two word granularities:
//
//   - Word: letters, digits and underscore (w, b, e, iw, aw)
//   - WORD: any printable non-space character (W, B, E, iW, aW)
//
// All motions build on the Skip, SkipOne and SkipNot primitives and clamp
// their results into the buffer. Bytes of multi-byte UTF-8 sequences are
// treated as word characters so a word motion never stops inside one; the
// cluster helpers step whole grapheme clusters for character motions.
package motion
