package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ti/internal/application/dto"
	"github.com/jhoicas/inventario-ti/internal/application/usecase"
	"github.com/jhoicas/inventario-ti/internal/domain"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ti/pkg/logger"
)

type noHistory struct{}

func (noHistory) ItemHistory(context.Context, string) ([]dto.EntryResponse, []dto.ExitResponse, error) {
	return nil, nil, nil
}

// memAttachments guarda as referências em memória.
type memAttachments struct {
	saved     []string
	deleted   []string
	deleteErr error
}

func (m *memAttachments) Save(_ context.Context, prefix, _ string, r io.Reader) (string, error) {
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	ref := fmt.Sprintf("/uploads/%s-%d.jpg", prefix, len(m.saved)+1)
	m.saved = append(m.saved, ref)
	return ref, nil
}

func (m *memAttachments) Delete(_ context.Context, ref string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, ref)
	return nil
}

func ptr[T any](v T) *T { return &v }

// ---------- Categorias ----------

func TestCategory_NomeDuplicadoIgnorandoCaixa(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewCategoryUseCase(memory.New().Repos().Categories)

	_, err := uc.Create(ctx, dto.CreateCategoryRequest{Nome: "Monitores"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateCategoryRequest{Nome: "monitores"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCategory_ExcluirComItensConflita(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	cats := usecase.NewCategoryUseCase(repos.Categories)
	items := usecase.NewItemUseCase(repos.Items, repos.Categories, noHistory{}, &memAttachments{})

	cat, err := cats.Create(ctx, dto.CreateCategoryRequest{Nome: "Rede"})
	require.NoError(t, err)
	_, err = items.Create(ctx, dto.CreateItemRequest{Nome: "Switch", CategoriaID: cat.ID})
	require.NoError(t, err)

	err = cats.Delete(ctx, cat.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := cats.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalItens)
}

// ---------- Itens ----------

func TestItem_CriaComContadoresZeradosEQRCode(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	cats := usecase.NewCategoryUseCase(repos.Categories)
	items := usecase.NewItemUseCase(repos.Items, repos.Categories, noHistory{}, &memAttachments{})
	cat, err := cats.Create(ctx, dto.CreateCategoryRequest{Nome: "Notebooks"})
	require.NoError(t, err)

	v := decimal.RequireFromString("3200.00")
	it, err := items.Create(ctx, dto.CreateItemRequest{Nome: "  Dell Latitude ", CategoriaID: cat.ID, ValorUnitario: &v, EstoqueMinimo: 2})
	require.NoError(t, err)
	assert.Equal(t, "Dell Latitude", it.Nome)
	assert.Zero(t, it.QuantidadeTotal)
	assert.Zero(t, it.QuantidadeDisponivel)
	assert.Zero(t, it.QuantidadeEmUso)
	assert.NotEmpty(t, it.QRCode)
	assert.Equal(t, "Notebooks", it.Categoria.Nome)

	byQR, err := items.GetByQRCode(ctx, it.QRCode)
	require.NoError(t, err)
	assert.Equal(t, it.ID, byQR.ID)
}

func TestItem_Validacoes(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	items := usecase.NewItemUseCase(repos.Items, repos.Categories, noHistory{}, &memAttachments{})

	_, err := items.Create(ctx, dto.CreateItemRequest{Nome: "X", CategoriaID: "nao-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	neg := decimal.NewFromInt(-1)
	_, err = items.Create(ctx, dto.CreateItemRequest{Nome: "X", CategoriaID: "c", ValorUnitario: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = items.List(ctx, dto.ItemListQuery{Status: "sumido"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = items.GetByID(ctx, "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItem_NumeroSerieDuplicadoConflita(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	cats := usecase.NewCategoryUseCase(repos.Categories)
	items := usecase.NewItemUseCase(repos.Items, repos.Categories, noHistory{}, &memAttachments{})
	cat, err := cats.Create(ctx, dto.CreateCategoryRequest{Nome: "Monitores"})
	require.NoError(t, err)

	_, err = items.Create(ctx, dto.CreateItemRequest{Nome: "A", CategoriaID: cat.ID, NumeroSerie: "SN-1"})
	require.NoError(t, err)
	_, err = items.Create(ctx, dto.CreateItemRequest{Nome: "B", CategoriaID: cat.ID, NumeroSerie: "SN-1"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestItem_UploadPhotoSubstituiAnterior(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	att := &memAttachments{}
	cats := usecase.NewCategoryUseCase(repos.Categories)
	items := usecase.NewItemUseCase(repos.Items, repos.Categories, noHistory{}, att)
	cat, err := cats.Create(ctx, dto.CreateCategoryRequest{Nome: "Cabos"})
	require.NoError(t, err)
	it, err := items.Create(ctx, dto.CreateItemRequest{Nome: "HDMI", CategoriaID: cat.ID})
	require.NoError(t, err)

	first, err := items.UploadPhoto(ctx, it.ID, "a.png", strings.NewReader("img"))
	require.NoError(t, err)
	second, err := items.UploadPhoto(ctx, it.ID, "b.png", strings.NewReader("img"))
	require.NoError(t, err)

	assert.NotEqual(t, first.FotoURL, second.FotoURL)
	assert.Equal(t, []string{first.FotoURL}, att.deleted)
}

func TestItem_AtualizarNaoMexeNosContadores(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	cats := usecase.NewCategoryUseCase(repos.Categories)
	items := usecase.NewItemUseCase(repos.Items, repos.Categories, noHistory{}, &memAttachments{})
	cat, err := cats.Create(ctx, dto.CreateCategoryRequest{Nome: "Licenças"})
	require.NoError(t, err)
	it, err := items.Create(ctx, dto.CreateItemRequest{Nome: "Office", CategoriaID: cat.ID})
	require.NoError(t, err)

	out, err := items.Update(ctx, it.ID, dto.UpdateItemRequest{Localizacao: ptr("Almoxarifado"), EstoqueMinimo: ptr(5)})
	require.NoError(t, err)
	assert.Equal(t, "Almoxarifado", out.Localizacao)
	assert.Equal(t, 5, out.EstoqueMinimo)
	assert.Zero(t, out.QuantidadeTotal)

	require.NoError(t, items.Delete(ctx, it.ID))
	_, err = items.GetByID(ctx, it.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItem_FotoDoFormularioNaCriacaoENaAtualizacao(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	att := &memAttachments{}
	cats := usecase.NewCategoryUseCase(repos.Categories)
	items := usecase.NewItemUseCase(repos.Items, repos.Categories, noHistory{}, att)
	cat, err := cats.Create(ctx, dto.CreateCategoryRequest{Nome: "Impressoras"})
	require.NoError(t, err)

	it, err := items.Create(ctx, dto.CreateItemRequest{Nome: "HP", CategoriaID: cat.ID, FotoURL: "/uploads/item-a.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/item-a.jpg", it.FotoURL)

	out, err := items.Update(ctx, it.ID, dto.UpdateItemRequest{Localizacao: ptr("Sala 2"), FotoURL: "/uploads/item-b.jpg"})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/item-b.jpg", out.FotoURL)
	assert.Equal(t, []string{"/uploads/item-a.jpg"}, att.deleted)

	got, err := items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/item-b.jpg", got.FotoURL)
	assert.Equal(t, "Sala 2", got.Localizacao)

	out, err = items.Update(ctx, it.ID, dto.UpdateItemRequest{Fornecedor: ptr("Dell")})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/item-b.jpg", out.FotoURL)
}

func TestItem_FalhaAoRemoverFotoVaiParaOLog(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	att := &memAttachments{}
	var logs bytes.Buffer
	cats := usecase.NewCategoryUseCase(repos.Categories)
	items := usecase.NewItemUseCase(repos.Items, repos.Categories, noHistory{}, att).
		WithLogger(logger.New(logger.Config{Output: &logs}))
	cat, err := cats.Create(ctx, dto.CreateCategoryRequest{Nome: "Scanners"})
	require.NoError(t, err)
	it, err := items.Create(ctx, dto.CreateItemRequest{Nome: "Epson", CategoriaID: cat.ID, FotoURL: "/uploads/item-x.jpg"})
	require.NoError(t, err)

	att.deleteErr = errors.New("permissão negada")
	require.NoError(t, items.Delete(ctx, it.ID))

	out := logs.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, "permissão negada")
	assert.Contains(t, out, "/uploads/item-x.jpg")
	assert.Contains(t, out, `"component":"items"`)
}

// ---------- Usuários ----------

func TestUser_CriaSemExporSenhaEBloqueiaEmailRepetido(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewUserUseCase(memory.New().Repos().Users)

	u, err := uc.Create(ctx, dto.CreateUserRequest{Nome: "Ana", Email: "ana@cmoc.com", Senha: "segredo1", Permissao: entity.RoleOperador})
	require.NoError(t, err)
	assert.True(t, u.Ativo)
	assert.Equal(t, entity.RoleOperador, u.Permissao)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Nome: "Ana 2", Email: "ANA@cmoc.com", Senha: "segredo2", Permissao: entity.RoleGestor})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUser_PermissaoInvalida(t *testing.T) {
	uc := usecase.NewUserUseCase(memory.New().Repos().Users)
	_, err := uc.Create(context.Background(), dto.CreateUserRequest{Nome: "X", Email: "x@cmoc.com", Senha: "segredo1", Permissao: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUser_NaoExcluiASiMesmo(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewUserUseCase(memory.New().Repos().Users)
	u, err := uc.Create(ctx, dto.CreateUserRequest{Nome: "Admin", Email: "adm@cmoc.com", Senha: "segredo1", Permissao: entity.RoleAdmin})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(ctx, u.ID, u.ID), domain.ErrConflict)
	assert.NoError(t, uc.Delete(ctx, "outro", u.ID))
	_, err = uc.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
