// Package engine runs typing test rounds: it renders a word block,
// consumes keystrokes, scores them, and shows the summary between
// rounds.
package engine

import (
	"fmt"

	"github.com/monsterooo/typeing/audio"
	"github.com/monsterooo/typeing/config"
	"github.com/monsterooo/typeing/stats"
	"github.com/monsterooo/typeing/terminal"
	"github.com/monsterooo/typeing/textgen"
)

// Engine drives the interactive loop over an initialized surface. The
// surface's lifetime belongs to the caller; Run never closes it.
type Engine struct {
	surface  *terminal.Surface
	selector textgen.WordSelector
	cfg      config.Config
	sound    *audio.Player
	tracker  *stats.Tracker

	words []string
	chars []rune
	pos   int
	wrong map[int]bool
}

func New(surface *terminal.Surface, selector textgen.WordSelector, cfg config.Config) *Engine {
	return &Engine{
		surface:  surface,
		selector: selector,
		cfg:      cfg,
		tracker:  stats.NewTracker(),
	}
}

// SetSound enables audio cues. Without it the engine is silent.
func (e *Engine) SetSound(p *audio.Player) {
	e.sound = p
}

// Run plays rounds until the typist quits or input closes. Ctrl-C and
// Escape quit, Ctrl-R starts a fresh round mid-test, and a finished
// round offers a restart from the summary screen.
func (e *Engine) Run() error {
	events := e.surface.Input().Events()

	for {
		if err := e.newRound(); err != nil {
			return err
		}

	round:
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				switch ev.Type {
				case terminal.EventClosed:
					return nil
				case terminal.EventError:
					return ev.Err
				case terminal.EventKey:
					switch {
					case ev.Key == terminal.KeyCtrlC || ev.Key == terminal.KeyEscape:
						return nil
					case ev.Key == terminal.KeyCtrlR:
						break round
					case ev.Key == terminal.KeyCtrlW,
						ev.Key == terminal.KeyBackspace && ev.Modifiers&terminal.ModAlt != 0:
						if err := e.eraseWord(); err != nil {
							return err
						}
					case ev.Key == terminal.KeyBackspace:
						if err := e.erase(); err != nil {
							return err
						}
					case ev.Key == terminal.KeyRune && ev.Modifiers&terminal.ModAlt == 0:
						done, err := e.typeRune(ev.Rune)
						if err != nil {
							return err
						}
						if done {
							again, err := e.showResults(events)
							if err != nil || !again {
								return err
							}
							break round
						}
					}
				}
			case <-e.surface.ResizeChan():
				// The wrap depends on geometry, so the round restarts on
				// the same words
				if err := e.display(); err != nil {
					return err
				}
			}
		}
	}
}

// newRound draws a fresh word selection and renders it.
func (e *Engine) newRound() error {
	words, err := e.selector.Select(e.cfg.NumWords)
	if err != nil {
		return err
	}
	e.words = words
	return e.display()
}

// display renders the current words from scratch and resets all round
// progress. The rendered lines, not the word list, are the ground
// truth: wrapping inserts the trailing spaces the typist has to type.
func (e *Engine) display() error {
	if err := e.surface.ResetScreen(); err != nil {
		return err
	}
	if err := e.surface.ShowCursor(); err != nil {
		return err
	}
	hint := [][]terminal.Text{
		{terminal.NewText("ctrl-r new words, esc quits").WithFaint()},
	}
	if err := e.surface.DisplayLinesBottom(hint); err != nil {
		return err
	}

	lines, err := e.surface.DisplayWords(e.words)
	if err != nil {
		return err
	}

	e.chars = e.chars[:0]
	for _, line := range lines {
		e.chars = append(e.chars, []rune(line.Plain())...)
	}
	e.pos = 0
	e.wrong = make(map[int]bool)
	e.tracker.Reset()
	return nil
}

// typeRune scores one keystroke and repaints the expected character in
// its outcome style. The reported bool is true when the round is done:
// every character typed and no standing mistakes.
func (e *Engine) typeRune(r rune) (bool, error) {
	if e.pos >= len(e.chars) {
		return false, nil
	}

	expected := e.chars[e.pos]
	correct := r == expected
	e.tracker.Record(correct)

	styled := terminal.NewText(string(expected))
	if correct {
		styled = styled.WithColor(terminal.ColorGreen)
	} else {
		// The expected character stays visible; underline keeps a missed
		// space from looking untouched
		styled = styled.WithColor(terminal.ColorRed).WithUnderline()
		e.wrong[e.pos] = true
		if e.sound != nil {
			e.sound.Mistake()
		}
	}

	if err := e.surface.DisplayRawText(styled); err != nil {
		return false, err
	}
	if err := e.surface.MoveToNextChar(); err != nil {
		return false, err
	}
	e.pos++

	return e.pos == len(e.chars) && len(e.wrong) == 0, nil
}

// erase takes back the last keystroke and restores the character to
// its untyped style.
func (e *Engine) erase() error {
	if e.pos == 0 {
		return nil
	}
	e.pos--
	delete(e.wrong, e.pos)

	faint := terminal.NewText(string(e.chars[e.pos])).WithFaint()
	if e.pos == len(e.chars)-1 {
		// The cursor clamps at the final cell instead of advancing past
		// it, so the repaint happens in place
		if err := e.surface.DisplayRawText(faint); err != nil {
			return err
		}
		return e.surface.MoveToCurPos()
	}
	return e.surface.ReplaceText(faint)
}

// eraseWord takes back keystrokes through the preceding word boundary.
func (e *Engine) eraseWord() error {
	for e.pos > 0 && e.chars[e.pos-1] == ' ' {
		if err := e.erase(); err != nil {
			return err
		}
	}
	for e.pos > 0 && e.chars[e.pos-1] != ' ' {
		if err := e.erase(); err != nil {
			return err
		}
	}
	return nil
}

// showResults renders the round summary and waits for a verdict:
// r restarts, anything else quits.
func (e *Engine) showResults(events <-chan terminal.Event) (bool, error) {
	if e.sound != nil {
		e.sound.Complete()
	}
	r := e.tracker.Finish(len(e.chars))

	render := func() error {
		if err := e.surface.ResetScreen(); err != nil {
			return err
		}
		if err := e.surface.HideCursor(); err != nil {
			return err
		}
		rows := [][]terminal.Text{
			{terminal.NewText(fmt.Sprintf("%.1f wpm", r.WPM))},
			{terminal.NewText(fmt.Sprintf("%.1f%% accuracy", r.Accuracy))},
			{terminal.NewText(fmt.Sprintf("%.1fs", r.Duration.Seconds()))},
		}
		if err := e.surface.DisplayLines(rows); err != nil {
			return err
		}
		return e.surface.DisplayLinesBottom([][]terminal.Text{
			{terminal.NewText("r to go again, any other key quits").WithFaint()},
		})
	}
	if err := render(); err != nil {
		return false, err
	}

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return false, nil
			}
			switch ev.Type {
			case terminal.EventClosed:
				return false, nil
			case terminal.EventError:
				return false, ev.Err
			case terminal.EventKey:
				if ev.Key == terminal.KeyRune && (ev.Rune == 'r' || ev.Rune == 'R') {
					return true, nil
				}
				return false, nil
			}
		case <-e.surface.ResizeChan():
			if err := render(); err != nil {
				return false, err
			}
		}
	}
}
