package data_test

import (
	"testing"

	"github.com/birdnest-fm/birdnest/data"
	"github.com/stretchr/testify/assert"
)

var images = data.Images{
	{URL: "https://i.scdn.co/image/small", Width: 64, Height: 64},
	{URL: "https://i.scdn.co/image/medium", Width: 300, Height: 300},
	{URL: "https://i.scdn.co/image/large", Width: 640, Height: 640},
}

func TestSelectExact(t *testing.T) {
	url, ok := images.Select(640, 0, 0)
	assert.True(t, ok)
	assert.Equal(t, "https://i.scdn.co/image/large", url)

	_, ok = images.Select(999, 0, 0)
	assert.False(t, ok)
}

func TestSelectMaxWidth(t *testing.T) {
	url, ok := images.Select(0, 500, 0)
	assert.True(t, ok)
	assert.Equal(t, "https://i.scdn.co/image/medium", url)
}

func TestSelectMinWidth(t *testing.T) {
	url, ok := images.Select(0, 0, 400)
	assert.True(t, ok)
	assert.Equal(t, "https://i.scdn.co/image/large", url)
}

func TestSelectBounded(t *testing.T) {
	url, ok := images.Select(0, 400, 100)
	assert.True(t, ok)
	assert.Equal(t, "https://i.scdn.co/image/medium", url)

	_, ok = images.Select(0, 63, 0)
	assert.False(t, ok)
}

func TestSelectUnconstrained(t *testing.T) {
	url, ok := images.Select(0, 0, 0)
	assert.True(t, ok)
	assert.Equal(t, "https://i.scdn.co/image/small", url)

	_, ok = data.Images{}.Select(0, 0, 0)
	assert.False(t, ok)
}

func TestImagesRoundTrip(t *testing.T) {
	value, err := images.Value()
	assert.NoError(t, err)

	var scanned data.Images
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, images, scanned)
}
