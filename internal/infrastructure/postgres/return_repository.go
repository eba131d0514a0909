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

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementação de ReturnRepository sobre PostgreSQL.
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository constrói o adaptador de devoluções.
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

const returnColumns = `id, exit_id, condicao, motivo_defeito, necessita_reparo, fotos_defeito,
	responsavel_recebimento_id, data_devolucao, observacoes, created_at`

func scanReturn(row pgx.Row) (*entity.Return, error) {
	var rt entity.Return
	err := row.Scan(&rt.ID, &rt.ExitID, &rt.Condicao, &rt.MotivoDefeito, &rt.NecessitaReparo, &rt.FotosDefeito,
		&rt.ResponsavelRecebimentoID, &rt.DataDevolucao, &rt.Observacoes, &rt.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rt, nil
}

func fotos(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func (r *ReturnRepo) Create(ctx context.Context, rt *entity.Return) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO returns (`+returnColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rt.ID, rt.ExitID, rt.Condicao, rt.MotivoDefeito, rt.NecessitaReparo, fotos(rt.FotosDefeito),
		rt.ResponsavelRecebimentoID, rt.DataDevolucao, rt.Observacoes, rt.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.NotFound("saída ou responsável não encontrado")
		}
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

func (r *ReturnRepo) getOne(ctx context.Context, op, column, v string) (*entity.Return, error) {
	rt, err := scanReturn(r.q.QueryRow(ctx, `SELECT `+returnColumns+` FROM returns WHERE `+column+` = $1`, v))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rt, nil
}

func (r *ReturnRepo) GetByID(ctx context.Context, id string) (*entity.Return, error) {
	return r.getOne(ctx, "get return", "id", id)
}

func (r *ReturnRepo) GetByExitID(ctx context.Context, exitID string) (*entity.Return, error) {
	return r.getOne(ctx, "get return by exit", "exit_id", exitID)
}

func (r *ReturnRepo) ListByExitIDs(ctx context.Context, exitIDs []string) (map[string]*entity.Return, error) {
	out := make(map[string]*entity.Return, len(exitIDs))
	if len(exitIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+returnColumns+` FROM returns WHERE exit_id = ANY($1)`, exitIDs)
	if err != nil {
		return nil, fmt.Errorf("list returns by exit: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		rt, err := scanReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		out[rt.ExitID] = rt
	}
	return out, rows.Err()
}

func (r *ReturnRepo) List(ctx context.Context, f repository.ReturnFilter) ([]*entity.Return, error) {
	var w whereBuilder
	w.eq("condicao", f.Condicao)
	w.period("data_devolucao", f.Period)

	rows, err := r.q.Query(ctx, `SELECT `+returnColumns+` FROM returns`+w.sql()+
		` ORDER BY data_devolucao DESC, created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Return, 0)
	for rows.Next() {
		rt, err := scanReturn(rows)
		if err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, rt)
	}
	return list, rows.Err()
}

// Update grava os campos descritivos; saída e condição são imutáveis.
func (r *ReturnRepo) Update(ctx context.Context, rt *entity.Return) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE returns SET motivo_defeito = $2, necessita_reparo = $3, fotos_defeito = $4, data_devolucao = $5,
			observacoes = $6
		WHERE id = $1`,
		rt.ID, rt.MotivoDefeito, rt.NecessitaReparo, fotos(rt.FotosDefeito), rt.DataDevolucao, rt.Observacoes)
	if err != nil {
		return fmt.Errorf("update return: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("devolução %s não encontrada", rt.ID)
	}
	return nil
}

func (r *ReturnRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM returns WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete return: %w", err)
	}
	return nil
}
