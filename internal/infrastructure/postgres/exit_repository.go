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

var _ repository.ExitRepository = (*ExitRepo)(nil)

// ExitRepo implementação de ExitRepository sobre PostgreSQL.
type ExitRepo struct {
	q Querier
}

// NewExitRepository constrói o adaptador de saídas.
func NewExitRepository(q Querier) *ExitRepo {
	return &ExitRepo{q: q}
}

const exitColumns = `id, item_id, quantidade, responsavel_liberacao_id, solicitante_id, destino, motivo_saida,
	previsao_devolucao, data_saida, status, observacoes, created_at`

func scanExit(row pgx.Row) (*entity.Exit, error) {
	var e entity.Exit
	err := row.Scan(&e.ID, &e.ItemID, &e.Quantidade, &e.ResponsavelLiberacaoID, &e.SolicitanteID, &e.Destino,
		&e.MotivoSaida, &e.PrevisaoDevolucao, &e.DataSaida, &e.Status, &e.Observacoes, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExitRepo) Create(ctx context.Context, e *entity.Exit) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO exits (`+exitColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.ItemID, e.Quantidade, e.ResponsavelLiberacaoID, e.SolicitanteID, e.Destino,
		e.MotivoSaida, e.PrevisaoDevolucao, e.DataSaida, e.Status, e.Observacoes, e.CreatedAt)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return domain.NotFound("item ou usuário não encontrado")
		}
		return fmt.Errorf("insert exit: %w", err)
	}
	return nil
}

func (r *ExitRepo) GetByID(ctx context.Context, id string) (*entity.Exit, error) {
	e, err := scanExit(r.q.QueryRow(ctx, `SELECT `+exitColumns+` FROM exits WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get exit: %w", err)
	}
	return e, nil
}

func (r *ExitRepo) List(ctx context.Context, f repository.ExitFilter) ([]*entity.Exit, error) {
	var w whereBuilder
	w.eq("item_id", f.ItemID)
	w.eq("status", f.Status)
	w.period("data_saida", f.Period)

	rows, err := r.q.Query(ctx, `SELECT `+exitColumns+` FROM exits`+w.sql()+
		` ORDER BY data_saida DESC, created_at DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list exits: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Exit, 0)
	for rows.Next() {
		e, err := scanExit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exit: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Update grava os campos descritivos; item, quantidade e status seguem o motor.
func (r *ExitRepo) Update(ctx context.Context, e *entity.Exit) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE exits SET solicitante_id = $2, destino = $3, motivo_saida = $4, previsao_devolucao = $5,
			data_saida = $6, observacoes = $7
		WHERE id = $1`,
		e.ID, e.SolicitanteID, e.Destino, e.MotivoSaida, e.PrevisaoDevolucao, e.DataSaida, e.Observacoes)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("solicitante não encontrado")
		}
		return fmt.Errorf("update exit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("saída %s não encontrada", e.ID)
	}
	return nil
}

func (r *ExitRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE exits SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update exit status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("saída %s não encontrada", id)
	}
	return nil
}

func (r *ExitRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM exits WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.Conflict("Não é possível excluir uma saída que já possui devolução")
		}
		return fmt.Errorf("delete exit: %w", err)
	}
	return nil
}
