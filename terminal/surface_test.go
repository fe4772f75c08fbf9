package terminal

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

// fakeBackend is an in-memory Backend with a scripted size and input,
// capturing everything the surface writes
type fakeBackend struct {
	width  int
	height int
	out    bytes.Buffer

	script  [][]byte
	pos     int
	resize  func(width, height int)
	initErr error
	finid   bool
}

func newFakeBackend(width, height int) *fakeBackend {
	return &fakeBackend{width: width, height: height}
}

func (b *fakeBackend) Init() error { return b.initErr }

func (b *fakeBackend) Fini() { b.finid = true }

func (b *fakeBackend) Size() (int, int) { return b.width, b.height }

func (b *fakeBackend) Write(p []byte) (int, error) { return b.out.Write(p) }

func (b *fakeBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	if b.pos < len(b.script) {
		d := b.script[b.pos]
		b.pos++
		return d, nil
	}
	<-stopCh
	return nil, nil
}

func (b *fakeBackend) SetResizeHandler(h func(width, height int)) { b.resize = h }

func newTestSurface(t *testing.T, width, height int) (*Surface, *fakeBackend) {
	t.Helper()
	b := newFakeBackend(width, height)
	s := NewSurfaceWithBackend(b)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	return s, b
}

func TestDisplayWordsSingleLineGeometry(t *testing.T) {
	s, _ := newTestSurface(t, 80, 24)

	lines, err := s.DisplayWords([]string{"the", "quick", "brown", "fox"})
	if err != nil {
		t.Fatalf("DisplayWords() error: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Plain() != "the quick brown fox" {
		t.Errorf("line = %q", lines[0].Plain())
	}

	// Exactly one recorded line: width 19, centered on an 80-column
	// terminal starting at column 40-9=31, middle row 12
	if len(s.tracker.lines) != 1 {
		t.Fatalf("recorded %d lines, want 1", len(s.tracker.lines))
	}
	got := s.tracker.lines[0]
	if got.x != 31 || got.y != 12 || got.length != 19 {
		t.Errorf("recorded line = %+v, want {31 12 19}", got)
	}

	// The initial cursor position is the line's first character
	x, y := s.tracker.pos()
	if x != 31 || y != 12 {
		t.Errorf("initial position = (%d,%d), want (31,12)", x, y)
	}
	if s.CurrentLine() != 0 {
		t.Errorf("CurrentLine() = %d, want 0", s.CurrentLine())
	}
}

func TestDisplayWordsTooShort(t *testing.T) {
	s, _ := newTestSurface(t, 80, 3)

	// Eight 10-column words -> 4 lines -> 6 rows required
	words := make([]string, 8)
	for i := range words {
		words[i] = strings.Repeat(string(rune('a'+i)), 10)
	}

	_, err := s.DisplayWords(words)
	var geoErr *GeometryError
	if !errors.As(err, &geoErr) {
		t.Fatalf("error = %v, want *GeometryError", err)
	}
	if geoErr.Required != 6 || geoErr.Actual != 3 {
		t.Errorf("got %+v, want 6 required / 3 actual", geoErr)
	}
}

func TestDisplayWordsZeroWords(t *testing.T) {
	s, _ := newTestSurface(t, 80, 24)

	lines, err := s.DisplayWords(nil)
	if err != nil {
		t.Fatalf("DisplayWords() error: %v", err)
	}
	if len(lines) != 1 || lines[0].Plain() != "" {
		t.Fatalf("lines = %v, want one empty line", lines)
	}

	// The empty line is not tracked; navigation stays put
	if len(s.tracker.lines) != 0 {
		t.Errorf("recorded %d lines, want 0", len(s.tracker.lines))
	}
	if err := s.MoveToNextChar(); err != nil {
		t.Errorf("MoveToNextChar() error: %v", err)
	}
	if !s.AtLastChar() {
		t.Error("AtLastChar() = false with no tracked lines")
	}
}

func TestDisplayWordsMultiLineNavigation(t *testing.T) {
	s, _ := newTestSurface(t, 60, 24)

	// maxWidth = 24, so two 10-column words per line
	words := []string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc", "dddddddddd"}
	lines, err := s.DisplayWords(words)
	if err != nil {
		t.Fatalf("DisplayWords() error: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	// Line 0 holds 22 characters; advancing past its last index lands on
	// line 1 column 0
	for i := 0; i < 21; i++ {
		s.MoveToNextChar()
	}
	if s.CurrentLine() != 0 {
		t.Fatalf("CurrentLine() = %d after 21 advances, want 0", s.CurrentLine())
	}
	s.MoveToNextChar()
	if s.CurrentLine() != 1 {
		t.Fatalf("CurrentLine() = %d after 22 advances, want 1", s.CurrentLine())
	}
	if s.tracker.curChar != 0 {
		t.Errorf("column = %d after wrap, want 0", s.tracker.curChar)
	}

	// Retreating wraps back to line 0's last character
	s.MoveToPrevChar()
	if s.CurrentLine() != 0 || s.tracker.curChar != 21 {
		t.Errorf("after retreat at (%d,%d), want (0,21)", s.CurrentLine(), s.tracker.curChar)
	}
}

func TestRecordingOnlyDuringDisplayWords(t *testing.T) {
	s, _ := newTestSurface(t, 80, 24)

	if err := s.DisplayLine([]Text{NewText("status")}); err != nil {
		t.Fatalf("DisplayLine() error: %v", err)
	}
	if len(s.tracker.lines) != 0 {
		t.Errorf("DisplayLine recorded %d lines outside a word-block render", len(s.tracker.lines))
	}
}

func TestBottomLinesReserveRows(t *testing.T) {
	s, _ := newTestSurface(t, 80, 5)

	err := s.DisplayLinesBottom([][]Text{
		{NewText("one").WithFaint()},
		{NewText("two").WithFaint()},
	})
	if err != nil {
		t.Fatalf("DisplayLinesBottom() error: %v", err)
	}

	// 1 line + 2 reserved + 2 margin = 5 rows: exact fit passes
	if _, err := s.DisplayWords([]string{"ab", "cd"}); err != nil {
		t.Fatalf("DisplayWords() error with exact fit: %v", err)
	}

	s.backend.(*fakeBackend).height = 4
	_, err = s.DisplayWords([]string{"ab", "cd"})
	var geoErr *GeometryError
	if !errors.As(err, &geoErr) {
		t.Fatalf("error = %v, want *GeometryError", err)
	}
	if geoErr.Required != 5 || geoErr.Actual != 4 {
		t.Errorf("got %+v, want 5 required / 4 actual", geoErr)
	}
}

func TestReplaceTextRetreatsAndRepaints(t *testing.T) {
	s, b := newTestSurface(t, 80, 24)

	if _, err := s.DisplayWords([]string{"the", "quick", "brown", "fox"}); err != nil {
		t.Fatalf("DisplayWords() error: %v", err)
	}
	s.MoveToNextChar()
	s.MoveToNextChar()

	b.out.Reset()
	if err := s.ReplaceText(NewText("h").WithFaint()); err != nil {
		t.Fatalf("ReplaceText() error: %v", err)
	}

	// The logical cursor retreated one character and the hardware cursor
	// sits on the repainted cell (column 32, row 12; 1-indexed 33;13)
	if s.tracker.curChar != 1 {
		t.Errorf("column = %d after ReplaceText, want 1", s.tracker.curChar)
	}
	out := b.out.String()
	if !strings.Contains(out, sgrFaint+"h"+sgrNoFaint) {
		t.Errorf("output %q missing the repainted text", out)
	}
	if !strings.HasSuffix(out, "\x1b[13;33H") {
		t.Errorf("output %q does not end on the current position", out)
	}
}

func TestReplaceTextAtFirstCharStaysPut(t *testing.T) {
	s, _ := newTestSurface(t, 80, 24)

	if _, err := s.DisplayWords([]string{"fox"}); err != nil {
		t.Fatalf("DisplayWords() error: %v", err)
	}
	if err := s.ReplaceText(NewText("f").WithFaint()); err != nil {
		t.Fatalf("ReplaceText() error: %v", err)
	}
	if s.tracker.curLine != 0 || s.tracker.curChar != 0 {
		t.Errorf("position = (%d,%d), want (0,0)", s.tracker.curLine, s.tracker.curChar)
	}
}

func TestResetScreenCentersCaret(t *testing.T) {
	s, b := newTestSurface(t, 80, 24)

	if err := s.ResetScreen(); err != nil {
		t.Fatalf("ResetScreen() error: %v", err)
	}
	out := b.out.String()
	if !strings.Contains(out, string(csiClear)) {
		t.Error("ResetScreen did not clear the screen")
	}
	if !strings.Contains(out, "\x1b[13;41H") {
		t.Errorf("output %q missing the centering move", out)
	}
	if !strings.Contains(out, string(csiCursorBlinkingBar)) {
		t.Error("ResetScreen did not set the blinking bar caret")
	}
}

func TestCloseRestoresTerminal(t *testing.T) {
	s, b := newTestSurface(t, 80, 24)

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	out := b.out.String()
	for _, want := range []string{
		string(csiSGR0),
		string(csiClear),
		string(csiCursorSteadyBlock),
		string(csiCursorShow),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("restore output %q missing %q", out, want)
		}
	}
	if !b.finid {
		t.Error("Close did not release the backend")
	}

	// Second Close is a no-op
	n := b.out.Len()
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
	if b.out.Len() != n {
		t.Error("second Close wrote to the terminal")
	}
}

func TestInitFailureSurfacesAsError(t *testing.T) {
	b := newFakeBackend(80, 24)
	b.initErr = errors.New("stdin is not a terminal")
	s := NewSurfaceWithBackend(b)

	err := s.Init()
	if err == nil {
		t.Fatal("Init() succeeded with a failing backend")
	}
	if !strings.Contains(err.Error(), "stdin is not a terminal") {
		t.Errorf("error = %q, want the backend message", err)
	}
}

func TestResizeEventsReachChannel(t *testing.T) {
	s, b := newTestSurface(t, 80, 24)

	b.resize(100, 40)
	select {
	case ev := <-s.ResizeChan():
		if ev.Width != 100 || ev.Height != 40 {
			t.Errorf("resize = %+v, want 100x40", ev)
		}
	default:
		t.Fatal("no resize event delivered")
	}

	// The latest size wins when events pile up
	b.resize(90, 30)
	b.resize(120, 50)
	select {
	case ev := <-s.ResizeChan():
		if ev.Width != 120 || ev.Height != 50 {
			t.Errorf("resize = %+v, want 120x50", ev)
		}
	default:
		t.Fatal("no resize event delivered")
	}
}
