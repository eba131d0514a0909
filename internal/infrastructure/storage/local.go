// Package storage grava os anexos de imagem no disco local, servidos em /uploads.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/jhoicas/inventario-ti/internal/application/ports"
	"github.com/jhoicas/inventario-ti/internal/domain"
)

var _ ports.AttachmentStore = (*LocalStore)(nil)

// MaxDimension maior largura ou altura gravada.
const MaxDimension = 1024

// JPEGQuality qualidade da recodificação.
const JPEGQuality = 85

// PublicPrefix prefixo das referências devolvidas por Save.
const PublicPrefix = "/uploads/"

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// LocalStore grava as imagens em Dir, sempre como JPEG.
type LocalStore struct {
	dir      string
	maxBytes int64
}

// NewLocalStore cria o diretório se necessário.
func NewLocalStore(dir string, maxBytes int64) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: criar diretório %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, maxBytes: maxBytes}, nil
}

// Dir diretório físico dos anexos.
func (s *LocalStore) Dir() string { return s.dir }

// Save valida o tipo pelos bytes (não confia no nome nem no header do cliente), reduz a imagem
// para no máximo MaxDimension e grava como JPEG. Erros de conteúdo são ErrInvalidInput.
func (s *LocalStore) Save(_ context.Context, prefix, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("storage: ler %s: %w", filename, err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", domain.Invalid("arquivo %s excede o limite de %d MB", filename, s.maxBytes/(1024*1024))
	}
	out, err := process(data)
	if err != nil {
		return "", domain.Invalid("arquivo %s: %v", filename, err)
	}

	name := fmt.Sprintf("%s-%s.jpg", sanitizePrefix(prefix), uuid.New().String())
	if err := os.WriteFile(filepath.Join(s.dir, name), out, 0o644); err != nil {
		return "", fmt.Errorf("storage: gravar %s: %w", name, err)
	}
	return PublicPrefix + name, nil
}

// Delete remove o arquivo de uma referência. Referências fora de /uploads ou inexistentes são ignoradas.
func (s *LocalStore) Delete(_ context.Context, ref string) error {
	if !strings.HasPrefix(ref, PublicPrefix) {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(ref, PublicPrefix))
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: remover %s: %w", name, err)
	}
	return nil
}

func sanitizePrefix(p string) string {
	p = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		}
		return -1
	}, p)
	if p == "" {
		return "file"
	}
	return p
}

// process detecta o tipo, decodifica, reduz e recodifica como JPEG.
func process(data []byte) ([]byte, error) {
	detected := http.DetectContentType(data)
	if !allowedMIME[detected] {
		return nil, fmt.Errorf("formato não suportado: %s (aceitos: JPEG, PNG, GIF)", detected)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imagem inválida: %w", err)
	}
	img = downscale(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("codificar JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// downscale mantém a proporção; devolve a original se já couber em maxDim.
func downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}
	newW, newH := maxDim, maxDim
	if w > h {
		newH = max(1, int(float64(h)*float64(maxDim)/float64(w)))
	} else {
		newW = max(1, int(float64(w)*float64(maxDim)/float64(h)))
	}
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
