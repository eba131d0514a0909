package ports

import (
	"context"
	"io"
)

// AttachmentStore guarda imagens enviadas (foto do item, fotos de defeito) e devolve uma referência pública.
type AttachmentStore interface {
	// Save lê a imagem de r, valida o tipo e devolve a referência ("/uploads/<prefix>-<id>.jpg").
	Save(ctx context.Context, prefix, filename string, r io.Reader) (string, error)
	// Delete remove o arquivo de uma referência devolvida por Save. Referência desconhecida não é erro.
	Delete(ctx context.Context, ref string) error
}
