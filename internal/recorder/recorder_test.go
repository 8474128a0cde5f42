package recorder

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/space3d/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScreen struct {
	calls int
	fail  func(call int) bool
}

func (s *fakeScreen) Capture() (image.Image, error) {
	s.calls++
	if s.fail != nil && s.fail(s.calls) {
		return nil, errors.New("read back failed")
	}
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	img.Set(s.calls%8, 0, color.RGBA{R: 255, A: 255})
	return img, nil
}

func newRecorder(t *testing.T, screen Capturer) (*Recorder, *task.Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "record.gif")
	cfg := DefaultConfig()
	cfg.Path = path
	tasks := task.NewManager(nil)
	return New(cfg, tasks, screen, nil), tasks, path
}

func TestStartStopWithoutFramesWritesNothing(t *testing.T) {
	r, tasks, path := newRecorder(t, &fakeScreen{})

	require.NoError(t, r.Toggle())
	assert.True(t, r.Recording())
	assert.Equal(t, 1, tasks.Len())

	require.NoError(t, r.Toggle())
	assert.False(t, r.Recording())
	assert.Equal(t, 0, tasks.Len())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, 0, r.Saved())
}

func TestCapturesEveryTenthFrame(t *testing.T) {
	screen := &fakeScreen{}
	r, tasks, _ := newRecorder(t, screen)
	r.Start()

	for i := 0; i < 25; i++ {
		tasks.Step()
	}
	// frames 0, 10 and 20
	assert.Equal(t, 3, r.Frames())
	assert.Equal(t, 3, screen.calls)
}

func TestAutoStopAtCap(t *testing.T) {
	screen := &fakeScreen{}
	r, tasks, path := newRecorder(t, screen)
	r.Start()

	steps := 0
	for r.Recording() && steps < 10000 {
		tasks.Step()
		steps++
	}
	require.False(t, r.Recording())
	assert.Equal(t, 1491, steps)
	assert.Equal(t, 0, tasks.Len())
	assert.Equal(t, 1, r.Saved())
	assert.Equal(t, 0, r.Frames())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 150)
	for _, d := range anim.Delay {
		assert.Equal(t, 17, d)
	}

	// further steps do nothing once stopped
	tasks.Step()
	assert.Equal(t, 150, screen.calls)
}

func TestManualStopWritesCapturedFrames(t *testing.T) {
	r, tasks, path := newRecorder(t, &fakeScreen{})
	r.Start()
	for i := 0; i < 11; i++ {
		tasks.Step()
	}
	require.NoError(t, r.Toggle())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, 2)
}

func TestCaptureFailureSkipsFrame(t *testing.T) {
	screen := &fakeScreen{fail: func(call int) bool { return call == 2 }}
	r, tasks, _ := newRecorder(t, screen)
	r.Start()

	for i := 0; i < 31; i++ {
		tasks.Step()
	}
	assert.True(t, r.Recording())
	assert.Equal(t, 4, screen.calls)
	assert.Equal(t, 3, r.Frames())
}

func TestSecondSessionStartsFresh(t *testing.T) {
	r, tasks, _ := newRecorder(t, &fakeScreen{})
	r.Start()
	tasks.Step()
	require.NoError(t, r.Stop())
	assert.True(t, r.Start())
	assert.Equal(t, 0, r.Frames())
	assert.False(t, r.Start(), "already recording")
	tasks.Step()
	assert.Equal(t, 1, r.Frames())
	assert.Equal(t, 1, tasks.Len())
}

func TestStopWhenIdle(t *testing.T) {
	r, _, _ := newRecorder(t, &fakeScreen{})
	assert.NoError(t, r.Stop())
}

func TestEncodeGIFScalesFrames(t *testing.T) {
	frames := []image.Image{image.NewRGBA(image.Rect(0, 0, 100, 50))}
	anim := EncodeGIF(frames, 6, 40)
	require.Len(t, anim.Image, 1)
	assert.Equal(t, 40, anim.Image[0].Bounds().Dx())
	assert.Equal(t, 20, anim.Image[0].Bounds().Dy())

	anim = EncodeGIF(frames, 6, 0)
	assert.Equal(t, 100, anim.Image[0].Bounds().Dx())
}

func TestDelay(t *testing.T) {
	assert.Equal(t, 17, delay(6))
	assert.Equal(t, 10, delay(10))
	assert.Equal(t, 0, delay(0))
}

func TestWriteGIFRejectsEmpty(t *testing.T) {
	assert.Error(t, WriteGIF(filepath.Join(t.TempDir(), "x.gif"), nil, 6, 0))
}

func TestSaveScreenshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screenshot.png")
	require.NoError(t, SaveScreenshot(&fakeScreen{}, path))
	require.NoError(t, SaveScreenshot(&fakeScreen{}, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 6), img.Bounds())

	failing := CapturerFunc(func() (image.Image, error) { return nil, errors.New("no window") })
	assert.Error(t, SaveScreenshot(failing, path))
}

func TestScreenshotterRunsOnNextStep(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screenshot.png")
	screen := &fakeScreen{}
	tasks := task.NewManager(nil)
	s := NewScreenshotter(tasks, screen, path, nil)

	require.NoError(t, s.Screenshot())
	require.NoError(t, s.Screenshot())
	assert.Equal(t, 1, tasks.Len())
	assert.Equal(t, 0, screen.calls)

	tasks.Step()
	assert.Equal(t, 1, screen.calls)
	assert.Equal(t, 0, tasks.Len())
	assert.FileExists(t, path)

	require.NoError(t, s.Screenshot())
	assert.Equal(t, 1, tasks.Len())
}
