package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVelocity(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "fast is kept", input: "fast", want: VelocityFast},
		{name: "slow is kept", input: "slow", want: VelocitySlow},
		{name: "empty falls back to medium", input: "", want: VelocityMedium},
		{name: "unknown falls back to medium", input: "blazing", want: VelocityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeVelocity(tt.input))
		})
	}
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, StatusInactive, NormalizeStatus("inactive"))
	assert.Equal(t, StatusActive, NormalizeStatus(""))
	assert.Equal(t, StatusActive, NormalizeStatus("archived"))
}

func TestAllowedImageExt(t *testing.T) {
	assert.True(t, AllowedImageExt("photo.jpg"))
	assert.True(t, AllowedImageExt("PHOTO.PNG"))
	assert.True(t, AllowedImageExt("banner.webp"))
	assert.False(t, AllowedImageExt("clip.mp4"))
	assert.False(t, AllowedImageExt("noext"))
	assert.False(t, AllowedImageExt("archive.tar.gz"))
}

func TestAllowedVideoExt(t *testing.T) {
	assert.True(t, AllowedVideoExt("demo.mp4"))
	assert.True(t, AllowedVideoExt("demo.MOV"))
	assert.False(t, AllowedVideoExt("photo.jpg"))
	assert.False(t, AllowedVideoExt(""))
}
