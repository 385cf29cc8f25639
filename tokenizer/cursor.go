package tokenizer

import "github.com/pkg/errors"

// cursor provides positional access to the normalized code point sequence.
// The input is assumed to be fully materialized, with newlines already
// collapsed to LF and invalid byte sequences already scrubbed by whatever
// produced it.
//
// The reconsume contract lives here rather than in the state machine: after
// a call to reconsume, the next call to next re-delivers the last result
// exactly once without advancing.
type cursor struct {
	input   []rune
	at      int
	replay  bool
	last    rune
	lastEOF bool
}

func newCursor(input string) *cursor {
	return &cursor{input: []rune(input)}
}

// next returns the next code point, or eof=true once the input is
// exhausted. Reads past the end keep returning the same eof signal.
func (c *cursor) next() (rune, bool) {
	if c.replay {
		c.replay = false
		return c.last, c.lastEOF
	}
	if c.at >= len(c.input) {
		c.last, c.lastEOF = 0, true
		return 0, true
	}
	c.last, c.lastEOF = c.input[c.at], false
	c.at++
	return c.last, false
}

// reconsume arranges for the next call to next to re-deliver the last
// result without advancing. The flag clears itself after one re-delivery.
func (c *cursor) reconsume() {
	c.replay = true
}

// peek returns up to n upcoming code points without consuming them.
func (c *cursor) peek(n int) []rune {
	end := c.at + n
	if end > len(c.input) {
		end = len(c.input)
	}
	return c.input[c.at:end]
}

// skipLiteral consumes the upcoming code points if they match s ASCII
// case-insensitively. On a mismatch or short input the position is left
// untouched.
func (c *cursor) skipLiteral(s string) bool {
	lit := []rune(s)
	if c.at+len(lit) > len(c.input) {
		return false
	}
	for i, lr := range lit {
		if toASCIILower(c.input[c.at+i]) != toASCIILower(lr) {
			return false
		}
	}
	c.at += len(lit)
	return true
}

// position returns the absolute index of the next unconsumed code point.
func (c *cursor) position() int {
	return c.at
}

// seek repositions the cursor absolutely and cancels any pending replay.
func (c *cursor) seek(pos int) error {
	if pos < 0 || pos > len(c.input) {
		return errors.Errorf("tokenizer: seek position %d outside [0, %d]", pos, len(c.input))
	}
	c.at = pos
	c.replay = false
	return nil
}

func toASCIILower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + 0x20
	}
	return r
}
