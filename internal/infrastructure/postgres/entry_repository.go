package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementação de EntryRepository sobre PostgreSQL.
type EntryRepo struct {
	q Querier
}

// NewEntryRepository constrói o adaptador de entradas.
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

const entryColumns = `id, item_id, quantidade, valor_total, nota_fiscal, fornecedor, responsavel_id,
	data_entrada, observacoes, created_at`

func scanEntry(row pgx.Row) (*entity.Entry, error) {
	var e entity.Entry
	err := row.Scan(&e.ID, &e.ItemID, &e.Quantidade, &e.ValorTotal, &e.NotaFiscal, &e.Fornecedor,
		&e.ResponsavelID, &e.DataEntrada, &e.Observacoes, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EntryRepo) Create(ctx context.Context, e *entity.Entry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.ItemID, e.Quantidade, e.ValorTotal, e.NotaFiscal, e.Fornecedor,
		e.ResponsavelID, e.DataEntrada, e.Observacoes, e.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.NotFound("item ou responsável não encontrado")
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (r *EntryRepo) GetByID(ctx context.Context, id string) (*entity.Entry, error) {
	e, err := scanEntry(r.q.QueryRow(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

func (r *EntryRepo) List(ctx context.Context, f repository.EntryFilter) ([]*entity.Entry, error) {
	var w whereBuilder
	w.eq("item_id", f.ItemID)
	w.period("data_entrada", f.Period)

	rows, err := r.q.Query(ctx, `SELECT `+entryColumns+` FROM entries`+w.sql()+
		` ORDER BY data_entrada DESC, created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Update grava os campos descritivos; item e quantidade são imutáveis.
func (r *EntryRepo) Update(ctx context.Context, e *entity.Entry) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE entries SET valor_total = $2, nota_fiscal = $3, fornecedor = $4, data_entrada = $5, observacoes = $6
		WHERE id = $1`,
		e.ID, e.ValorTotal, e.NotaFiscal, e.Fornecedor, e.DataEntrada, e.Observacoes)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("entrada %s não encontrada", e.ID)
	}
	return nil
}

func (r *EntryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}
