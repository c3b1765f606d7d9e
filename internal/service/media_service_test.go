package service

import (
	"io"
	"testing"
	"testing/fstest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaService_Open(t *testing.T) {
	svc := NewMediaService(fstest.MapFS{
		"항해사/D1_2023_01/q1-pic1.png": {Data: []byte("png-bytes")},
		"항해사/D1_2023_01/notes.txt":   {Data: []byte("secret")},
	}, zerolog.Nop())

	img, err := svc.Open("/항해사/D1_2023_01/q1-pic1.png")
	require.NoError(t, err)
	defer img.File.Close()
	assert.Equal(t, "image/png", img.ContentType)
	data, err := io.ReadAll(img.File)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "parent traversal", path: "../etc/passwd", wantErr: ErrPathForbidden},
		{name: "nested traversal", path: "항해사/../../x.png", wantErr: ErrPathForbidden},
		{name: "backslash", path: `항해사\..\x.png`, wantErr: ErrPathForbidden},
		{name: "missing", path: "항해사/D1_2023_01/q9-pic9.png", wantErr: ErrImageNotFound},
		{name: "not an image", path: "항해사/D1_2023_01/notes.txt", wantErr: ErrImageNotFound},
		{name: "unknown folder", path: "항해사/D9_2023_01/q1-pic1.png", wantErr: ErrImageNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Open(tc.path)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
