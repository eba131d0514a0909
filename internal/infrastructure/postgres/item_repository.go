package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/inventory"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementação de ItemRepository sobre PostgreSQL (pool ou tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository constrói o adaptador de itens.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `
	id, nome, descricao, categoria_id, COALESCE(codigo_barras, ''), COALESCE(numero_serie, ''),
	quantidade_total, quantidade_disponivel, quantidade_em_uso, localizacao, valor_unitario,
	fornecedor, observacoes, foto_url, qr_code, estoque_minimo, created_at, updated_at`

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(
		&it.ID, &it.Nome, &it.Descricao, &it.CategoriaID, &it.CodigoBarras, &it.NumeroSerie,
		&it.QuantidadeTotal, &it.QuantidadeDisponivel, &it.QuantidadeEmUso, &it.Localizacao, &it.ValorUnitario,
		&it.Fornecedor, &it.Observacoes, &it.FotoURL, &it.QRCode, &it.EstoqueMinimo, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func itemWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%w: código de barras, número de série ou QR code já cadastrado", domain.ErrDuplicate)
	case isForeignKeyViolation(err):
		return domain.NotFound("categoria não encontrada")
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Create persiste o item com os contadores informados (zero na criação).
func (r *ItemRepo) Create(ctx context.Context, it *entity.Item) error {
	query := `
		INSERT INTO items (id, nome, descricao, categoria_id, codigo_barras, numero_serie,
			quantidade_total, quantidade_disponivel, quantidade_em_uso, localizacao, valor_unitario,
			fornecedor, observacoes, foto_url, qr_code, estoque_minimo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.Nome, it.Descricao, it.CategoriaID, nullIfEmpty(it.CodigoBarras), nullIfEmpty(it.NumeroSerie),
		it.QuantidadeTotal, it.QuantidadeDisponivel, it.QuantidadeEmUso, it.Localizacao, it.ValorUnitario,
		it.Fornecedor, it.Observacoes, it.FotoURL, it.QRCode, it.EstoqueMinimo, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return itemWriteError("insert item", err)
	}
	return nil
}

// GetByID devolve (nil, nil) se o item não existir.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

// GetForUpdate lê o item e bloqueia a linha (SELECT FOR UPDATE) até o fim da transação.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item for update: %w", err)
	}
	return it, nil
}

func (r *ItemRepo) GetByQRCode(ctx context.Context, qrCode string) (*entity.Item, error) {
	it, err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE qr_code = $1`, qrCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by qr code: %w", err)
	}
	return it, nil
}

// List aplica os filtros e ordena por created_at desc. O filtro de status usa a mesma regra de entity.Item.Status.
func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.Item, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if f.CategoriaID != "" {
		where = append(where, "categoria_id = "+arg(f.CategoriaID))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := arg("%" + s + "%")
		where = append(where, fmt.Sprintf(
			"(nome ILIKE %[1]s OR descricao ILIKE %[1]s OR codigo_barras ILIKE %[1]s OR numero_serie ILIKE %[1]s)", p))
	}
	switch f.Status {
	case entity.ItemStatusEsgotado:
		where = append(where, "quantidade_disponivel <= 0")
	case entity.ItemStatusEstoqueBaixo:
		where = append(where, "quantidade_disponivel > 0 AND quantidade_disponivel <= estoque_minimo")
	case entity.ItemStatusDisponivel:
		where = append(where, "quantidade_disponivel > 0 AND quantidade_disponivel > estoque_minimo")
	}

	query := `SELECT ` + itemColumns + ` FROM items`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Update grava os campos descritivos. Contadores, qr_code e foto ficam de fora.
func (r *ItemRepo) Update(ctx context.Context, it *entity.Item) error {
	query := `
		UPDATE items SET nome = $2, descricao = $3, categoria_id = $4, codigo_barras = $5, numero_serie = $6,
			localizacao = $7, valor_unitario = $8, fornecedor = $9, observacoes = $10, estoque_minimo = $11,
			updated_at = $12
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		it.ID, it.Nome, it.Descricao, it.CategoriaID, nullIfEmpty(it.CodigoBarras), nullIfEmpty(it.NumeroSerie),
		it.Localizacao, it.ValorUnitario, it.Fornecedor, it.Observacoes, it.EstoqueMinimo, it.UpdatedAt,
	)
	if err != nil {
		return itemWriteError("update item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("item %s não encontrado", it.ID)
	}
	return nil
}

// UpdateCounters grava os três contadores. As constraints CHECK recusam valores fora do invariante.
func (r *ItemRepo) UpdateCounters(ctx context.Context, id string, c inventory.Counters) error {
	if !c.Valid() {
		return domain.Conflict("contadores inválidos para o item %s: %+v", id, c)
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE items SET quantidade_total = $2, quantidade_disponivel = $3, quantidade_em_uso = $4, updated_at = now()
		WHERE id = $1`, id, c.Total, c.Available, c.InUse)
	if err != nil {
		if isCheckViolation(err) {
			return domain.Conflict("contadores inválidos para o item %s (%s)", id, constraintName(err))
		}
		return fmt.Errorf("update item counters: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("item %s não encontrado", id)
	}
	return nil
}

func (r *ItemRepo) UpdatePhoto(ctx context.Context, id, fotoURL string) error {
	tag, err := r.q.Exec(ctx, `UPDATE items SET foto_url = $2, updated_at = now() WHERE id = $1`, id, fotoURL)
	if err != nil {
		return fmt.Errorf("update item photo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("item %s não encontrado", id)
	}
	return nil
}

// Delete remove o item; movimentações vinculadas (ON DELETE RESTRICT) viram Conflict.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Conflict("item %s possui movimentações", id)
		}
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

func (r *ItemRepo) HasMovements(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM entries WHERE item_id = $1)
		    OR EXISTS (SELECT 1 FROM exits WHERE item_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("item has movements: %w", err)
	}
	return exists, nil
}
