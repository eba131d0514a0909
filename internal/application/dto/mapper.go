package dto

import "github.com/jhoicas/inventario-ti/internal/domain/entity"

// NewItemResponse monta a resposta de um item; cat pode ser nil.
func NewItemResponse(it *entity.Item, cat *entity.Category) *ItemResponse {
	if it == nil {
		return nil
	}
	r := &ItemResponse{
		ID:                   it.ID,
		Nome:                 it.Nome,
		Descricao:            it.Descricao,
		CategoriaID:          it.CategoriaID,
		CodigoBarras:         it.CodigoBarras,
		NumeroSerie:          it.NumeroSerie,
		QuantidadeTotal:      it.QuantidadeTotal,
		QuantidadeDisponivel: it.QuantidadeDisponivel,
		QuantidadeEmUso:      it.QuantidadeEmUso,
		Localizacao:          it.Localizacao,
		ValorUnitario:        it.ValorUnitario,
		Fornecedor:           it.Fornecedor,
		Observacoes:          it.Observacoes,
		FotoURL:              it.FotoURL,
		QRCode:               it.QRCode,
		EstoqueMinimo:        it.EstoqueMinimo,
		Status:               it.Status(),
		CreatedAt:            it.CreatedAt,
		UpdatedAt:            it.UpdatedAt,
	}
	if cat != nil {
		r.Categoria = &CategorySummary{ID: cat.ID, Nome: cat.Nome, Icone: cat.Icone}
	}
	return r
}

// NewCategoryResponse monta a resposta de uma categoria.
func NewCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:         c.ID,
		Nome:       c.Nome,
		Descricao:  c.Descricao,
		Icone:      c.Icone,
		TotalItens: c.TotalItens,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// NewUserResponse monta a resposta de um usuário, sem o hash da senha.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Nome:      u.Nome,
		Email:     u.Email,
		Cargo:     u.Cargo,
		Permissao: u.Permissao,
		Ativo:     u.Ativo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserSummary projeção curta de um usuário; nil se u for nil.
func NewUserSummary(u *entity.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Nome: u.Nome, Email: u.Email}
}

// NewEntryResponse monta a resposta de uma entrada sem projeções.
func NewEntryResponse(e *entity.Entry) EntryResponse {
	return EntryResponse{
		ID:            e.ID,
		ItemID:        e.ItemID,
		Quantidade:    e.Quantidade,
		ValorTotal:    e.ValorTotal,
		NotaFiscal:    e.NotaFiscal,
		Fornecedor:    e.Fornecedor,
		ResponsavelID: e.ResponsavelID,
		DataEntrada:   e.DataEntrada,
		Observacoes:   e.Observacoes,
		CreatedAt:     e.CreatedAt,
	}
}

// NewExitResponse monta a resposta de uma saída sem projeções.
func NewExitResponse(e *entity.Exit) ExitResponse {
	return ExitResponse{
		ID:                     e.ID,
		ItemID:                 e.ItemID,
		Quantidade:             e.Quantidade,
		ResponsavelLiberacaoID: e.ResponsavelLiberacaoID,
		SolicitanteID:          e.SolicitanteID,
		Destino:                e.Destino,
		MotivoSaida:            e.MotivoSaida,
		PrevisaoDevolucao:      e.PrevisaoDevolucao,
		DataSaida:              e.DataSaida,
		Status:                 e.Status,
		Observacoes:            e.Observacoes,
		CreatedAt:              e.CreatedAt,
	}
}

// NewReturnResponse monta a resposta de uma devolução sem projeções.
func NewReturnResponse(r *entity.Return) ReturnResponse {
	fotos := r.FotosDefeito
	if fotos == nil {
		fotos = []string{}
	}
	return ReturnResponse{
		ID:                       r.ID,
		ExitID:                   r.ExitID,
		Condicao:                 r.Condicao,
		MotivoDefeito:            r.MotivoDefeito,
		NecessitaReparo:          r.NecessitaReparo,
		FotosDefeito:             fotos,
		ResponsavelRecebimentoID: r.ResponsavelRecebimentoID,
		DataDevolucao:            r.DataDevolucao,
		Observacoes:              r.Observacoes,
		CreatedAt:                r.CreatedAt,
	}
}
