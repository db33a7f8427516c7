package framecolor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"videocolors/internal/colortrack"
)

// frameOf builds a frame whose pixels cycle through colors, each repeated
// weight times.
func frameOf(width, height int, colors []colortrack.RGB8, weights []int) colortrack.Frame {
	var pattern []colortrack.RGB8
	for i, c := range colors {
		for range weights[i] {
			pattern = append(pattern, c)
		}
	}
	pix := make([]byte, 0, width*height*3)
	for i := 0; i < width*height; i++ {
		c := pattern[i%len(pattern)]
		pix = append(pix, c.R, c.G, c.B)
	}
	return colortrack.Frame{Width: width, Height: height, Pix: pix}
}

func TestMeanTruncates(t *testing.T) {
	f := frameOf(2, 1, []colortrack.RGB8{{R: 10, G: 0, B: 255}, {R: 11, G: 1, B: 0}}, []int{1, 1})
	got, err := Mean{}.Extract(f)
	require.NoError(t, err)
	// (10+11)/2 = 10.5, (0+1)/2 = 0.5, 255/2 = 127.5
	assert.Equal(t, colortrack.RGB8{R: 10, G: 0, B: 127}, got)
}

func TestMeanUniformFrame(t *testing.T) {
	c := colortrack.RGB8{R: 12, G: 200, B: 77}
	got, err := Mean{}.Extract(frameOf(64, 48, []colortrack.RGB8{c}, []int{1}))
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestDominantPicksLargestCluster(t *testing.T) {
	red := colortrack.RGB8{R: 250, G: 10, B: 10}
	blue := colortrack.RGB8{R: 5, G: 5, B: 240}
	f := frameOf(40, 30, []colortrack.RGB8{red, blue}, []int{3, 1})

	got, err := NewDominant().Extract(f)
	require.NoError(t, err)
	assert.Equal(t, red, got)

	got, err = NewDominant(WithClusters(2), WithStride(3)).Extract(f)
	require.NoError(t, err)
	assert.Equal(t, red, got)
}

func TestDominantDeterministic(t *testing.T) {
	f := frameOf(33, 17, []colortrack.RGB8{{R: 1, G: 2, B: 3}, {R: 90, G: 80, B: 70}, {R: 200, G: 100, B: 0}}, []int{2, 3, 4})
	d := NewDominant()
	first, err := d.Extract(f)
	require.NoError(t, err)
	for range 3 {
		again, err := d.Extract(f)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDominantFewerPixelsThanClusters(t *testing.T) {
	c := colortrack.RGB8{R: 9, G: 8, B: 7}
	got, err := NewDominant().Extract(frameOf(2, 2, []colortrack.RGB8{c}, []int{1}))
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestExtractRejectsEmptyFrame(t *testing.T) {
	_, err := Mean{}.Extract(colortrack.Frame{})
	assert.ErrorIs(t, err, ErrEmptyFrame)
	_, err = NewDominant().Extract(colortrack.Frame{Width: 4, Height: 4, Pix: make([]byte, 10)})
	assert.ErrorIs(t, err, ErrEmptyFrame)
}

func TestNew(t *testing.T) {
	ex, err := New(ModeMean)
	require.NoError(t, err)
	assert.IsType(t, Mean{}, ex)

	ex, err = New(ModeDominant)
	require.NoError(t, err)
	assert.IsType(t, &Dominant{}, ex)

	_, err = New("median")
	assert.Error(t, err)
	assert.False(t, IsValidMode("median"))
	assert.True(t, IsValidMode(ModeDominant))
}
