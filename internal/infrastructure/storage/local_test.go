package storage_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/infrastructure/storage"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newStore(t *testing.T, maxBytes int64) (*storage.LocalStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := storage.NewLocalStore(dir, maxBytes)
	require.NoError(t, err)
	return s, dir
}

func TestSave_PNGViraJPEGReduzido(t *testing.T) {
	s, dir := newStore(t, 10<<20)
	ref, err := s.Save(context.Background(), "defect", "foto.png", bytes.NewReader(testPNG(t, 2048, 1024)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "/uploads/defect-"))
	assert.True(t, strings.HasSuffix(ref, ".jpg"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(ref, "/uploads/")))
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 512, cfg.Height)
}

func TestSave_RecusaNaoImagem(t *testing.T) {
	s, _ := newStore(t, 10<<20)
	_, err := s.Save(context.Background(), "defect", "nota.txt", strings.NewReader("isto não é uma imagem"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSave_RecusaArquivoGrande(t *testing.T) {
	s, _ := newStore(t, 100)
	_, err := s.Save(context.Background(), "item", "grande.png", bytes.NewReader(testPNG(t, 64, 64)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestDelete_RemoveEIgnoraDesconhecidos(t *testing.T) {
	s, dir := newStore(t, 10<<20)
	ref, err := s.Save(context.Background(), "item", "foto.png", bytes.NewReader(testPNG(t, 10, 10)))
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), ref))
	_, err = os.Stat(filepath.Join(dir, strings.TrimPrefix(ref, "/uploads/")))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Delete(context.Background(), ref))
	assert.NoError(t, s.Delete(context.Background(), "/etc/passwd"))
	assert.NoError(t, s.Delete(context.Background(), "/uploads/../../etc/passwd"))
}
