package lexer

import "hlslc/internal/token"

// historyDepth is how many consumed tokens a Stream remembers for Recede.
const historyDepth = 16

// Stream is the pull-based token cursor the grammar walks. It keeps the
// current token, a bounded history of consumed tokens, and a stack of
// tokens pushed back by Recede so that several steps of backtracking are
// possible without re-scanning.
type Stream struct {
	lx      *Lexer
	cur     token.Token
	history []token.Token
	pending []token.Token
}

// NewStream primes the stream with the first token of lx.
func NewStream(lx *Lexer) *Stream {
	s := &Stream{lx: lx, history: make([]token.Token, 0, historyDepth)}
	s.cur = lx.Next()
	return s
}

// Token returns the current token.
func (s *Stream) Token() token.Token { return s.cur }

// Peek returns the kind of the current token.
func (s *Stream) Peek() token.Kind { return s.cur.Kind }

// PeekIs reports whether the current token has kind k.
func (s *Stream) PeekIs(k token.Kind) bool { return s.cur.Kind == k }

// Advance moves to the next token. At EOF it stays on EOF.
func (s *Stream) Advance() {
	if s.cur.Kind == token.EOF && len(s.pending) == 0 {
		return
	}
	if len(s.history) == historyDepth {
		copy(s.history, s.history[1:])
		s.history = s.history[:historyDepth-1]
	}
	s.history = append(s.history, s.cur)
	if n := len(s.pending); n > 0 {
		s.cur = s.pending[n-1]
		s.pending = s.pending[:n-1]
		return
	}
	s.cur = s.lx.Next()
}

// Recede steps back one token. It returns false when the history is exhausted.
func (s *Stream) Recede() bool {
	n := len(s.history)
	if n == 0 {
		return false
	}
	s.pending = append(s.pending, s.cur)
	s.cur = s.history[n-1]
	s.history = s.history[:n-1]
	return true
}

// Depth returns how many tokens Recede can currently step back.
func (s *Stream) Depth() int { return len(s.history) }

// Accept advances past the current token when it has kind k.
func (s *Stream) Accept(k token.Kind) bool {
	if s.cur.Kind != k {
		return false
	}
	s.Advance()
	return true
}

// PeekAhead returns the kind n tokens past the current one (0 is current).
func (s *Stream) PeekAhead(n int) token.Kind {
	if n <= 0 {
		return s.cur.Kind
	}
	steps := 0
	for ; steps < n && s.cur.Kind != token.EOF; steps++ {
		s.Advance()
	}
	k := s.cur.Kind
	for range steps {
		s.Recede()
	}
	return k
}

// Lexer returns the scanner behind the stream.
func (s *Stream) Lexer() *Lexer { return s.lx }
