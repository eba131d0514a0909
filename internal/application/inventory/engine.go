package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/inventory"
	"github.com/jhoicas/inventario-ti/pkg/logger"
)

// Tipos de movimentação (rótulos de log e métricas).
const (
	KindEntry  = "entrada"
	KindExit   = "saida"
	KindReturn = "devolucao"
)

// Engine é o motor de movimentações: cada operação grava o registro e ajusta os contadores
// do item na mesma transação, com a linha do item bloqueada (GetForUpdate).
type Engine struct {
	tx       TxRunner
	repos    Repos
	log      *logger.Logger
	observer Observer
	now      func() time.Time
}

// NewEngine constrói o motor. repos são usados nas leituras fora de transação.
func NewEngine(tx TxRunner, repos Repos, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{tx: tx, repos: repos, log: log.Component("inventory"), observer: nopObserver{}, now: time.Now}
}

// WithObserver define quem recebe os eventos do motor.
func (e *Engine) WithObserver(o Observer) *Engine {
	if o != nil {
		e.observer = o
	}
	return e
}

// finish classifica o erro, registra no log e notifica o observer.
func (e *Engine) finish(kind, action string, err error) error {
	if err == nil {
		e.observer.MovementApplied(kind, action)
		return nil
	}
	err = domain.StorageFailure(kind+"."+action, err)
	switch {
	case errors.Is(err, domain.ErrStorageFailure):
		e.log.Error().Err(err).Str("kind", kind).Str("action", action).Msg("falha de armazenamento no motor")
		e.observer.MovementRejected(kind, "storage")
	case errors.Is(err, domain.ErrInsufficientStock):
		e.observer.MovementRejected(kind, "insufficient_stock")
	case errors.Is(err, domain.ErrConflict), errors.Is(err, domain.ErrDuplicate):
		e.observer.MovementRejected(kind, "conflict")
	case errors.Is(err, domain.ErrNotFound):
		e.observer.MovementRejected(kind, "not_found")
	default:
		e.observer.MovementRejected(kind, "invalid")
	}
	return err
}

// lockItem bloqueia e devolve o item; NotFound se não existir.
func lockItem(ctx context.Context, r Repos, id string) (*entity.Item, error) {
	item, err := r.Items.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.NotFound("item %s não encontrado", id)
	}
	return item, nil
}

// applyDelta valida e grava os novos contadores, refletindo-os em item.
func applyDelta(ctx context.Context, r Repos, item *entity.Item, d inventory.Delta) error {
	next, err := inventory.Apply(item, d)
	if err != nil {
		return err
	}
	if err := r.Items.UpdateCounters(ctx, item.ID, next); err != nil {
		return err
	}
	item.QuantidadeTotal = next.Total
	item.QuantidadeDisponivel = next.Available
	item.QuantidadeEmUso = next.InUse
	return nil
}

func requireID(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return domain.Invalid("%s é obrigatório", field)
	}
	return nil
}

func requirePositive(q int) error {
	if q <= 0 {
		return domain.Invalid("quantidade deve ser maior que zero")
	}
	return nil
}

// ---------- Entradas ----------

// RecordEntry registra uma entrada: total += q, disponivel += q.
func (e *Engine) RecordEntry(ctx context.Context, userID string, in dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	if err := requireID(in.ItemID, "itemId"); err != nil {
		return nil, e.finish(KindEntry, "create", err)
	}
	if err := requirePositive(in.Quantidade); err != nil {
		return nil, e.finish(KindEntry, "create", err)
	}
	now := e.now()
	entry := &entity.Entry{
		ID:            uuid.New().String(),
		ItemID:        in.ItemID,
		Quantidade:    in.Quantidade,
		ValorTotal:    in.ValorTotal,
		NotaFiscal:    in.NotaFiscal,
		Fornecedor:    in.Fornecedor,
		ResponsavelID: userID,
		DataEntrada:   in.DataEntrada.Or(now),
		Observacoes:   in.Observacoes,
		CreatedAt:     now,
	}
	var out dto.EntryResponse
	err := e.tx.Run(ctx, func(r Repos) error {
		item, err := lockItem(ctx, r, in.ItemID)
		if err != nil {
			return err
		}
		if err := r.Entries.Create(ctx, entry); err != nil {
			return err
		}
		if err := applyDelta(ctx, r, item, inventory.ForEntry(entry.Quantidade)); err != nil {
			return err
		}
		p := newProjector(ctx, r)
		p.seed(item)
		out, err = p.entry(entry)
		return err
	})
	if err != nil {
		return nil, e.finish(KindEntry, "create", err)
	}
	e.log.Info().Str("entry_id", entry.ID).Str("item_id", entry.ItemID).Int("quantidade", entry.Quantidade).Msg("entrada registrada")
	return &out, e.finish(KindEntry, "create", nil)
}

// UpdateEntry altera os campos descritivos de uma entrada. A quantidade é imutável.
func (e *Engine) UpdateEntry(ctx context.Context, id string, in dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	var out dto.EntryResponse
	err := e.tx.Run(ctx, func(r Repos) error {
		entry, err := r.Entries.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.NotFound("entrada %s não encontrada", id)
		}
		if in.Quantidade != nil && *in.Quantidade != entry.Quantidade {
			return domain.Invalid("a quantidade de uma entrada não pode ser alterada; exclua e registre novamente")
		}
		if in.ValorTotal != nil {
			entry.ValorTotal = in.ValorTotal
		}
		if in.NotaFiscal != nil {
			entry.NotaFiscal = *in.NotaFiscal
		}
		if in.Fornecedor != nil {
			entry.Fornecedor = *in.Fornecedor
		}
		if in.DataEntrada != nil {
			entry.DataEntrada = in.DataEntrada.Or(entry.DataEntrada)
		}
		if in.Observacoes != nil {
			entry.Observacoes = *in.Observacoes
		}
		if err := r.Entries.Update(ctx, entry); err != nil {
			return err
		}
		out, err = newProjector(ctx, r).entry(entry)
		return err
	})
	if err != nil {
		return nil, e.finish(KindEntry, "update", err)
	}
	return &out, e.finish(KindEntry, "update", nil)
}

// DeleteEntry exclui uma entrada e desfaz seu efeito: total -= q, disponivel -= q.
// Se as unidades já tiverem sido consumidas por saídas, a exclusão é recusada com Conflict.
func (e *Engine) DeleteEntry(ctx context.Context, id string) error {
	err := e.tx.Run(ctx, func(r Repos) error {
		entry, err := r.Entries.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.NotFound("entrada %s não encontrada", id)
		}
		item, err := lockItem(ctx, r, entry.ItemID)
		if err != nil {
			return err
		}
		if entry, err = r.Entries.GetByID(ctx, id); err != nil {
			return err
		}
		if entry == nil {
			return domain.NotFound("entrada %s não encontrada", id)
		}
		if err := applyDelta(ctx, r, item, inventory.ForEntry(entry.Quantidade).Invert()); err != nil {
			return err
		}
		return r.Entries.Delete(ctx, id)
	})
	if err == nil {
		e.log.Info().Str("entry_id", id).Msg("entrada excluída")
	}
	return e.finish(KindEntry, "delete", err)
}

// ---------- Saídas ----------

// RecordExit registra uma saída em uso: disponivel -= q, emUso += q.
func (e *Engine) RecordExit(ctx context.Context, userID string, in dto.CreateExitRequest) (*dto.ExitResponse, error) {
	if err := validateExit(in); err != nil {
		return nil, e.finish(KindExit, "create", err)
	}
	now := e.now()
	exit := &entity.Exit{
		ID:                     uuid.New().String(),
		ItemID:                 in.ItemID,
		Quantidade:             in.Quantidade,
		ResponsavelLiberacaoID: userID,
		SolicitanteID:          in.SolicitanteID,
		Destino:                strings.TrimSpace(in.Destino),
		MotivoSaida:            strings.TrimSpace(in.MotivoSaida),
		PrevisaoDevolucao:      in.PrevisaoDevolucao.TimePtr(),
		DataSaida:              in.DataSaida.Or(now),
		Status:                 entity.ExitStatusEmUso,
		Observacoes:            in.Observacoes,
		CreatedAt:              now,
	}
	var out dto.ExitResponse
	err := e.tx.Run(ctx, func(r Repos) error {
		item, err := lockItem(ctx, r, in.ItemID)
		if err != nil {
			return err
		}
		solicitante, err := r.Users.GetByID(ctx, in.SolicitanteID)
		if err != nil {
			return err
		}
		if solicitante == nil {
			return domain.NotFound("solicitante %s não encontrado", in.SolicitanteID)
		}
		if err := inventory.RequireAvailable(item, in.Quantidade); err != nil {
			return err
		}
		if err := r.Exits.Create(ctx, exit); err != nil {
			return err
		}
		if err := applyDelta(ctx, r, item, inventory.ForExit(exit.Quantidade)); err != nil {
			return err
		}
		p := newProjector(ctx, r)
		p.seed(item)
		p.users[solicitante.ID] = solicitante
		out, err = p.exit(exit, nil)
		return err
	})
	if err != nil {
		return nil, e.finish(KindExit, "create", err)
	}
	e.log.Info().Str("exit_id", exit.ID).Str("item_id", exit.ItemID).Int("quantidade", exit.Quantidade).Msg("saída registrada")
	return &out, e.finish(KindExit, "create", nil)
}

func validateExit(in dto.CreateExitRequest) error {
	if err := requireID(in.ItemID, "itemId"); err != nil {
		return err
	}
	if err := requirePositive(in.Quantidade); err != nil {
		return err
	}
	if err := requireID(in.SolicitanteID, "solicitanteId"); err != nil {
		return err
	}
	if err := requireID(in.Destino, "destino"); err != nil {
		return err
	}
	return requireID(in.MotivoSaida, "motivoSaida")
}

// UpdateExit altera os campos descritivos de uma saída. Quantidade e status não mudam por aqui.
func (e *Engine) UpdateExit(ctx context.Context, id string, in dto.UpdateExitRequest) (*dto.ExitResponse, error) {
	var out dto.ExitResponse
	err := e.tx.Run(ctx, func(r Repos) error {
		exit, err := r.Exits.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if exit == nil {
			return domain.NotFound("saída %s não encontrada", id)
		}
		if in.Quantidade != nil && *in.Quantidade != exit.Quantidade {
			return domain.Invalid("a quantidade de uma saída não pode ser alterada; exclua e registre novamente")
		}
		if in.SolicitanteID != nil && *in.SolicitanteID != exit.SolicitanteID {
			u, err := r.Users.GetByID(ctx, *in.SolicitanteID)
			if err != nil {
				return err
			}
			if u == nil {
				return domain.NotFound("solicitante %s não encontrado", *in.SolicitanteID)
			}
			exit.SolicitanteID = u.ID
		}
		if in.Destino != nil {
			if err := requireID(*in.Destino, "destino"); err != nil {
				return err
			}
			exit.Destino = strings.TrimSpace(*in.Destino)
		}
		if in.MotivoSaida != nil {
			if err := requireID(*in.MotivoSaida, "motivoSaida"); err != nil {
				return err
			}
			exit.MotivoSaida = strings.TrimSpace(*in.MotivoSaida)
		}
		if in.PrevisaoDevolucao != nil {
			exit.PrevisaoDevolucao = in.PrevisaoDevolucao.TimePtr()
		}
		if in.DataSaida != nil {
			exit.DataSaida = in.DataSaida.Or(exit.DataSaida)
		}
		if in.Observacoes != nil {
			exit.Observacoes = *in.Observacoes
		}
		if err := r.Exits.Update(ctx, exit); err != nil {
			return err
		}
		ret, err := r.Returns.GetByExitID(ctx, exit.ID)
		if err != nil {
			return err
		}
		out, err = newProjector(ctx, r).exit(exit, ret)
		return err
	})
	if err != nil {
		return nil, e.finish(KindExit, "update", err)
	}
	return &out, e.finish(KindExit, "update", nil)
}

// DeleteExit exclui uma saída sem devolução e devolve as unidades: disponivel += q, emUso -= q.
func (e *Engine) DeleteExit(ctx context.Context, id string) error {
	err := e.tx.Run(ctx, func(r Repos) error {
		exit, err := r.Exits.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if exit == nil {
			return domain.NotFound("saída %s não encontrada", id)
		}
		item, err := lockItem(ctx, r, exit.ItemID)
		if err != nil {
			return err
		}
		if exit, err = r.Exits.GetByID(ctx, id); err != nil {
			return err
		}
		if exit == nil {
			return domain.NotFound("saída %s não encontrada", id)
		}
		// a devolução é verificada depois do bloqueio do item para não competir com RecordReturn
		ret, err := r.Returns.GetByExitID(ctx, id)
		if err != nil {
			return err
		}
		if ret != nil {
			return domain.Conflict("Não é possível excluir uma saída que já possui devolução")
		}
		if err := applyDelta(ctx, r, item, inventory.ForExit(exit.Quantidade).Invert()); err != nil {
			return err
		}
		return r.Exits.Delete(ctx, id)
	})
	if err == nil {
		e.log.Info().Str("exit_id", id).Msg("saída excluída")
	}
	return e.finish(KindExit, "delete", err)
}

// ---------- Devoluções ----------

// RecordReturn registra a devolução de uma saída. fotos são referências já gravadas no armazenamento de anexos.
// perfeito/defeito: disponivel += q, emUso -= q, saída devolvido.
// danificado: total -= q, emUso -= q, saída baixado.
func (e *Engine) RecordReturn(ctx context.Context, userID string, in dto.CreateReturnRequest, fotos []string) (*dto.ReturnResponse, error) {
	if err := requireID(in.ExitID, "exitId"); err != nil {
		return nil, e.finish(KindReturn, "create", err)
	}
	if !entity.IsValidCondicao(in.Condicao) {
		return nil, e.finish(KindReturn, "create",
			domain.Invalid("condição deve ser perfeito, defeito ou danificado"))
	}
	now := e.now()
	ret := &entity.Return{
		ID:                       uuid.New().String(),
		ExitID:                   in.ExitID,
		Condicao:                 in.Condicao,
		MotivoDefeito:            in.MotivoDefeito,
		NecessitaReparo:          in.NecessitaReparo,
		FotosDefeito:             append([]string(nil), fotos...),
		ResponsavelRecebimentoID: userID,
		DataDevolucao:            in.DataDevolucao.Or(now),
		Observacoes:              in.Observacoes,
		CreatedAt:                now,
	}
	var out dto.ReturnResponse
	err := e.tx.Run(ctx, func(r Repos) error {
		exit, err := r.Exits.GetByID(ctx, in.ExitID)
		if err != nil {
			return err
		}
		if exit == nil {
			return domain.NotFound("saída %s não encontrada", in.ExitID)
		}
		item, err := lockItem(ctx, r, exit.ItemID)
		if err != nil {
			return err
		}
		// relê a saída com o item bloqueado: uma exclusão concorrente pode tê-la removido
		if exit, err = r.Exits.GetByID(ctx, in.ExitID); err != nil {
			return err
		}
		if exit == nil {
			return domain.NotFound("saída %s não encontrada", in.ExitID)
		}
		existing, err := r.Returns.GetByExitID(ctx, exit.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.Conflict("Esta saída já possui uma devolução registrada")
		}
		delta, err := inventory.ForReturn(ret.Condicao, exit.Quantidade)
		if err != nil {
			return err
		}
		if err := r.Returns.Create(ctx, ret); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.Conflict("Esta saída já possui uma devolução registrada")
			}
			return err
		}
		exit.Status = entity.ExitStatusForCondicao(ret.Condicao)
		if err := r.Exits.UpdateStatus(ctx, exit.ID, exit.Status); err != nil {
			return err
		}
		if err := applyDelta(ctx, r, item, delta); err != nil {
			return err
		}
		p := newProjector(ctx, r)
		p.seed(item)
		out, err = p.ret(ret, exit)
		return err
	})
	if err != nil {
		return nil, e.finish(KindReturn, "create", err)
	}
	e.log.Info().Str("return_id", ret.ID).Str("exit_id", ret.ExitID).Str("condicao", ret.Condicao).Msg("devolução registrada")
	return &out, e.finish(KindReturn, "create", nil)
}

// UpdateReturn altera os campos descritivos de uma devolução. A condição é imutável.
func (e *Engine) UpdateReturn(ctx context.Context, id string, in dto.UpdateReturnRequest) (*dto.ReturnResponse, error) {
	var out dto.ReturnResponse
	err := e.tx.Run(ctx, func(r Repos) error {
		ret, err := r.Returns.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if ret == nil {
			return domain.NotFound("devolução %s não encontrada", id)
		}
		if in.Condicao != nil && *in.Condicao != ret.Condicao {
			return domain.Invalid("a condição de uma devolução não pode ser alterada; exclua e registre novamente")
		}
		if in.MotivoDefeito != nil {
			ret.MotivoDefeito = *in.MotivoDefeito
		}
		if in.NecessitaReparo != nil {
			ret.NecessitaReparo = *in.NecessitaReparo
		}
		if in.DataDevolucao != nil {
			ret.DataDevolucao = in.DataDevolucao.Or(ret.DataDevolucao)
		}
		if in.Observacoes != nil {
			ret.Observacoes = *in.Observacoes
		}
		if err := r.Returns.Update(ctx, ret); err != nil {
			return err
		}
		exit, err := r.Exits.GetByID(ctx, ret.ExitID)
		if err != nil {
			return err
		}
		out, err = newProjector(ctx, r).ret(ret, exit)
		return err
	})
	if err != nil {
		return nil, e.finish(KindReturn, "update", err)
	}
	return &out, e.finish(KindReturn, "update", nil)
}

// DeleteReturn exclui a devolução, volta a saída para em_uso e desfaz o delta da condição registrada.
// Devolve as referências das fotos da devolução excluída.
func (e *Engine) DeleteReturn(ctx context.Context, id string) ([]string, error) {
	var fotos []string
	err := e.tx.Run(ctx, func(r Repos) error {
		ret, err := r.Returns.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if ret == nil {
			return domain.NotFound("devolução %s não encontrada", id)
		}
		exit, err := r.Exits.GetByID(ctx, ret.ExitID)
		if err != nil {
			return err
		}
		if exit == nil {
			return domain.NotFound("saída %s não encontrada", ret.ExitID)
		}
		item, err := lockItem(ctx, r, exit.ItemID)
		if err != nil {
			return err
		}
		// relê com o item bloqueado: outra exclusão da mesma devolução pode ter vencido
		if ret, err = r.Returns.GetByID(ctx, id); err != nil {
			return err
		}
		if ret == nil {
			return domain.NotFound("devolução %s não encontrada", id)
		}
		delta, err := inventory.ForReturn(ret.Condicao, exit.Quantidade)
		if err != nil {
			return err
		}
		if err := applyDelta(ctx, r, item, delta.Invert()); err != nil {
			return err
		}
		if err := r.Returns.Delete(ctx, id); err != nil {
			return err
		}
		fotos = ret.FotosDefeito
		return r.Exits.UpdateStatus(ctx, exit.ID, entity.ExitStatusEmUso)
	})
	if err != nil {
		return nil, e.finish(KindReturn, "delete", err)
	}
	e.log.Info().Str("return_id", id).Msg("devolução excluída")
	return fotos, e.finish(KindReturn, "delete", nil)
}
