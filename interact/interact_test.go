package interact

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdginn/go-whitted/raytrace"
)

type fakeRenderer struct {
	subdivs int
	renders int
	err     error
	logger  raytrace.Logger
	// progress lines written while rendering
	progress int
}

func (f *fakeRenderer) Subdivs() int { return f.subdivs }

func (f *fakeRenderer) IncrementSubdivs() {
	f.subdivs++
	f.logger.Printf("Rays per pixel: %d", f.subdivs*f.subdivs)
}

func (f *fakeRenderer) DecrementSubdivs() {
	f.subdivs = max(1, f.subdivs-1)
	f.logger.Printf("Rays per pixel: %d", f.subdivs*f.subdivs)
}

func (f *fakeRenderer) SetLogger(l raytrace.Logger) { f.logger = l }

func (f *fakeRenderer) Render(context.Context, int) (*raytrace.Frame, error) {
	f.renders++
	for i := 0; i < f.progress; i++ {
		f.logger.Printf("row %d done", i)
	}
	if f.err != nil {
		return nil, f.err
	}
	return raytrace.NewFrame(2, 2), nil
}

func keyPress(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(model)
	require.True(t, ok)
	return out, cmd
}

// renderResult runs a render command batch and returns what the render
// produced, checking the spinner was started alongside it.
func renderResult(t *testing.T, cmd tea.Cmd) renderedMsg {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)

	result, ticking := runBatch(batch)
	require.NotNil(t, result)
	assert.True(t, ticking)
	return *result
}

func runBatch(batch tea.BatchMsg) (result *renderedMsg, ticking bool) {
	for _, c := range batch {
		switch msg := c().(type) {
		case renderedMsg:
			result = &msg
		case spinner.TickMsg:
			ticking = true
		}
	}
	return result, ticking
}

func TestSubdivisionKeys(t *testing.T) {
	r := &fakeRenderer{subdivs: 2}
	m := newModel(r, nil, 1)

	m, _ = update(t, m, keyPress("+"))
	m, _ = update(t, m, keyPress("="))
	assert.Equal(t, 4, r.subdivs)

	for i := 0; i < 5; i++ {
		m, _ = update(t, m, keyPress("-"))
	}
	assert.Equal(t, 1, r.subdivs)
	assert.Contains(t, m.View(), "Subdivisions: 1 (1 rays per pixel)")
	assert.Contains(t, m.View(), "Rays per pixel: 1")
}

func TestRenderAndSave(t *testing.T) {
	r := &fakeRenderer{subdivs: 1}
	var saved *raytrace.Frame
	m := newModel(r, func(f *raytrace.Frame) (string, error) {
		saved = f
		return "frame.png", nil
	}, 2)

	m, cmd := update(t, m, keyPress("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.rendering)

	// Keys are ignored while a render is in flight
	m, _ = update(t, m, keyPress("+"))
	assert.Equal(t, 1, r.subdivs)

	m, _ = update(t, m, renderResult(t, cmd))
	assert.False(t, m.rendering)
	assert.Equal(t, 1, r.renders)
	require.NotNil(t, saved)
	assert.Contains(t, m.View(), "Saved frame.png")
	require.Len(t, m.history.Items(), 1)
	assert.Contains(t, m.history.Items()[0].(savedRender).Description(), "1 rays per pixel in ")

	_, cmd = update(t, m, keyPress("enter"))
	require.NotNil(t, cmd)
}

func TestIdleSpinner(t *testing.T) {
	m := newModel(&fakeRenderer{subdivs: 1}, nil, 1)
	_, cmd := update(t, m, m.spinner.Tick())
	assert.Nil(t, cmd, "an idle UI does not animate")
}

func TestLogWhileViewing(t *testing.T) {
	r := &fakeRenderer{subdivs: 1, progress: 200}
	m := newModel(r, func(*raytrace.Frame) (string, error) { return "frame.png", nil }, 4)

	m, cmd := update(t, m, keyPress("r"))
	require.NotNil(t, cmd)
	done := make(chan *renderedMsg)
	go func() {
		batch, _ := cmd().(tea.BatchMsg)
		result, _ := runBatch(batch)
		done <- result
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = m.View()
		}
	}()
	msg := <-done
	wg.Wait()
	require.NotNil(t, msg)

	m, _ = update(t, m, *msg)
	view := m.View()
	for i := 195; i < 200; i++ {
		assert.Contains(t, view, fmt.Sprintf("row %d done", i))
	}
	assert.NotContains(t, view, "row 194 done")
}

func TestRenderError(t *testing.T) {
	r := &fakeRenderer{subdivs: 1, err: errors.New("scene exploded")}
	m := newModel(r, func(*raytrace.Frame) (string, error) {
		t.Fatal("nothing to save")
		return "", nil
	}, 1)

	m, cmd := update(t, m, keyPress("r"))
	m, _ = update(t, m, renderResult(t, cmd))
	assert.Contains(t, m.View(), "scene exploded")

	m.save = func(*raytrace.Frame) (string, error) { return "", errors.New("disk full") }
	r.err = nil
	m, cmd = update(t, m, keyPress("r"))
	m, _ = update(t, m, renderResult(t, cmd))
	assert.Contains(t, m.View(), "disk full")
}

func TestQuit(t *testing.T) {
	m := newModel(&fakeRenderer{subdivs: 1}, nil, 1)
	for _, k := range []tea.KeyMsg{keyPress("q"), {Type: tea.KeyCtrlC}} {
		_, cmd := update(t, m, k)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}
