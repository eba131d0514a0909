package inventory

import (
	"context"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/domain/inventory"
	"github.com/jhoicas/inventario-ti/internal/domain/repository"
)

// expectedCounters reconstrói os contadores de um item a partir das movimentações gravadas.
func expectedCounters(ctx context.Context, r Repos, itemID string) (inventory.Counters, error) {
	entries, err := r.Entries.List(ctx, repository.EntryFilter{ItemID: itemID})
	if err != nil {
		return inventory.Counters{}, err
	}
	exits, err := r.Exits.List(ctx, repository.ExitFilter{ItemID: itemID})
	if err != nil {
		return inventory.Counters{}, err
	}
	ids := make([]string, 0, len(exits))
	for _, ex := range exits {
		ids = append(ids, ex.ID)
	}
	rets, err := r.Returns.ListByExitIDs(ctx, ids)
	if err != nil {
		return inventory.Counters{}, err
	}
	quantities := make([]int, 0, len(entries))
	for _, en := range entries {
		quantities = append(quantities, en.Quantidade)
	}
	facts := make([]inventory.ExitFacts, 0, len(exits))
	for _, ex := range exits {
		f := inventory.ExitFacts{Quantidade: ex.Quantidade, Status: ex.Status}
		if rt := rets[ex.ID]; rt != nil {
			f.ReturnCondicao = rt.Condicao
		}
		facts = append(facts, f)
	}
	return inventory.Reconcile(quantities, facts), nil
}

func reconcileResponse(item *entity.Item, expected inventory.Counters) dto.ReconcileResponse {
	stored := inventory.CountersOf(item)
	return dto.ReconcileResponse{
		ItemID:     item.ID,
		Nome:       item.Nome,
		Armazenado: countersDTO(stored),
		Esperado:   countersDTO(expected),
		Divergente: inventory.Drift{Stored: stored, Expected: expected}.HasDrift(),
	}
}

func countersDTO(c inventory.Counters) dto.CountersResponse {
	return dto.CountersResponse{QuantidadeTotal: c.Total, QuantidadeDisponivel: c.Available, QuantidadeEmUso: c.InUse}
}

// Reconcile compara os contadores gravados de um item com os reconstruídos do histórico.
func (e *Engine) Reconcile(ctx context.Context, itemID string) (*dto.ReconcileResponse, error) {
	item, err := e.repos.Items.GetByID(ctx, itemID)
	if err != nil {
		return nil, domain.StorageFailure("get item", err)
	}
	if item == nil {
		return nil, domain.NotFound("item %s não encontrado", itemID)
	}
	expected, err := expectedCounters(ctx, e.repos, itemID)
	if err != nil {
		return nil, domain.StorageFailure("reconcile", err)
	}
	out := reconcileResponse(item, expected)
	return &out, nil
}

// ReconcileAll devolve apenas os itens cujos contadores divergem do histórico.
func (e *Engine) ReconcileAll(ctx context.Context) ([]dto.ReconcileResponse, error) {
	items, err := e.repos.Items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return nil, domain.StorageFailure("list items", err)
	}
	out := make([]dto.ReconcileResponse, 0)
	for _, it := range items {
		expected, err := expectedCounters(ctx, e.repos, it.ID)
		if err != nil {
			return nil, domain.StorageFailure("reconcile", err)
		}
		if r := reconcileResponse(it, expected); r.Divergente {
			out = append(out, r)
		}
	}
	return out, nil
}

// Repair regrava os contadores do item com os valores reconstruídos, com a linha bloqueada.
func (e *Engine) Repair(ctx context.Context, itemID string) (*dto.ReconcileResponse, error) {
	var out dto.ReconcileResponse
	err := e.tx.Run(ctx, func(r Repos) error {
		item, err := lockItem(ctx, r, itemID)
		if err != nil {
			return err
		}
		expected, err := expectedCounters(ctx, r, itemID)
		if err != nil {
			return err
		}
		out = reconcileResponse(item, expected)
		if !out.Divergente {
			return nil
		}
		if !expected.Valid() {
			return domain.Conflict("o histórico do item %s produz contadores inválidos: %+v", itemID, expected)
		}
		if err := r.Items.UpdateCounters(ctx, itemID, expected); err != nil {
			return err
		}
		out.Corrigido = true
		return nil
	})
	if err != nil {
		return nil, e.finish("reconcile", "repair", err)
	}
	if out.Corrigido {
		e.log.Warn().Str("item_id", itemID).Interface("armazenado", out.Armazenado).Interface("esperado", out.Esperado).
			Msg("contadores do item corrigidos a partir do histórico")
	}
	return &out, nil
}
