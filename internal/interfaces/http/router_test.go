package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ti/internal/application/analytics"
	"github.com/jhoicas/inventario-ti/internal/application/auth"
	appinv "github.com/jhoicas/inventario-ti/internal/application/inventory"
	"github.com/jhoicas/inventario-ti/internal/application/report"
	"github.com/jhoicas/inventario-ti/internal/application/usecase"
	"github.com/jhoicas/inventario-ti/internal/domain/entity"
	"github.com/jhoicas/inventario-ti/internal/infrastructure/excel"
	"github.com/jhoicas/inventario-ti/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ti/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ti/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/inventario-ti/internal/interfaces/http"
	"github.com/jhoicas/inventario-ti/pkg/logger"
)

const (
	adminID        = "00000000-0000-0000-0000-00000000aa01"
	visualizadorID = "00000000-0000-0000-0000-00000000aa02"
	adminSenha     = "admin123"
)

type testServer struct {
	app     *fiber.App
	admin   string
	viewer  string
	uploads string
}

// newTestServer monta a API completa sobre o store em memória, com um admin e um visualizador.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	repos := store.Repos()

	hash, err := usecase.HashPassword(adminSenha)
	require.NoError(t, err)
	now := time.Now()
	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: adminID, Nome: "Administrador", Email: "admin@cmoc.com", SenhaHash: hash, Permissao: entity.RoleAdmin, Ativo: true, CreatedAt: now, UpdatedAt: now}))
	require.NoError(t, repos.Users.Create(ctx, &entity.User{ID: visualizadorID, Nome: "Visitante", Email: "ver@cmoc.com", SenhaHash: hash, Permissao: entity.RoleVisualizador, Ativo: true, CreatedAt: now, UpdatedAt: now}))

	attachments, err := storage.NewLocalStore(t.TempDir(), 5<<20)
	require.NoError(t, err)

	engine := appinv.NewEngine(memory.NewTxRunner(store), repos, logger.Nop())
	itemUC := usecase.NewItemUseCase(repos.Items, repos.Categories, engine, attachments)
	deps := apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		UserUC:      usecase.NewUserUseCase(repos.Users),
		CategoryUC:  usecase.NewCategoryUseCase(repos.Categories),
		ItemUC:      itemUC,
		Engine:      engine,
		DashboardUC: analytics.NewDashboardUseCase(store.Stats(), 7),
		ReportUC:    report.NewReportUseCase(itemUC, engine, excel.NewWorkbookExporter(), pdf.NewExitReceiptGenerator("CMOC")),
		Attachments: attachments,
		JWTSecret:   testJWTSecret,
		Log:         logger.Nop(),
	}

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.NewErrorHandler(logger.Nop())})
	apphttp.Router(app, deps)

	srv := &testServer{app: app, uploads: attachments.Dir()}
	srv.admin = srv.login(t, "admin@cmoc.com")
	srv.viewer = srv.login(t, "ver@cmoc.com")
	return srv
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode lê o corpo JSON e fecha a resposta.
func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *testServer) login(t *testing.T, email string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "senha": adminSenha})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	tok, _ := body["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

// createItem cadastra categoria e item e devolve o ID do item.
func (s *testServer) createItem(t *testing.T) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/categories", s.admin, map[string]any{"nome": "Notebooks"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cat := decode(t, resp)

	resp = s.do(t, http.MethodPost, "/api/items", s.admin, map[string]any{"nome": "Notebook Dell", "categoriaId": cat["id"], "estoqueMinimo": 1})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	item := decode(t, resp)
	assert.EqualValues(t, 0, item["quantidadeTotal"])
	return item["id"].(string)
}

func TestLogin_SenhaErrada_Retorna401(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@cmoc.com", "senha": "errada"})
	body := decode(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestMe_DevolveUsuarioDoToken(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/auth/me", s.admin, nil)
	body := decode(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, adminID, body["id"])
	assert.Equal(t, "admin", body["permissao"])
}

func TestFluxo_EntradaSaidaDevolucao(t *testing.T) {
	s := newTestServer(t)
	itemID := s.createItem(t)

	resp := s.do(t, http.MethodPost, "/api/entries", s.admin, map[string]any{"itemId": itemID, "quantidade": 5, "dataEntrada": "2026-03-01"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/exits", s.admin, map[string]any{
		"itemId": itemID, "quantidade": 3, "solicitanteId": visualizadorID,
		"destino": "Sala 12", "motivoSaida": "Projeto",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	exit := decode(t, resp)
	assert.Equal(t, "em_uso", exit["status"])
	exitID := exit["id"].(string)

	resp = s.do(t, http.MethodGet, "/api/items/"+itemID, s.viewer, nil)
	item := decode(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 5, item["quantidadeTotal"])
	assert.EqualValues(t, 2, item["quantidadeDisponivel"])
	assert.EqualValues(t, 3, item["quantidadeEmUso"])

	resp = s.do(t, http.MethodPost, "/api/exits", s.admin, map[string]any{
		"itemId": itemID, "quantidade": 5, "solicitanteId": visualizadorID,
		"destino": "Sala 12", "motivoSaida": "Projeto",
	})
	body := decode(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Equal(t, "Quantidade insuficiente. Disponível: 2", body["message"])

	resp = s.do(t, http.MethodPost, "/api/returns", s.admin, map[string]any{"exitId": exitID, "condicao": "defeito", "motivoDefeito": "tela"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/items/"+itemID, s.viewer, nil)
	item = decode(t, resp)
	assert.EqualValues(t, 2, item["quantidadeTotal"])
	assert.EqualValues(t, 2, item["quantidadeDisponivel"])
	assert.EqualValues(t, 0, item["quantidadeEmUso"])

	resp = s.do(t, http.MethodDelete, "/api/exits/"+exitID, s.admin, nil)
	body = decode(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", body["code"])

	resp = s.do(t, http.MethodGet, "/api/items/"+itemID+"/reconcile", s.admin, nil)
	rec := decode(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, rec["divergente"])
}

func TestCreate_CampoDesconhecido_Retorna400(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/categories", s.admin, `{"nome":"Monitores","quantidade":3}`)
	body := decode(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestCreate_CorpoVazio_Retorna400(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/entries", s.admin, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestVisualizador_NaoPodeEscrever(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/items", s.viewer, map[string]any{"nome": "X", "categoriaId": "c"})
	body := decode(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])

	resp = s.do(t, http.MethodGet, "/api/reports/inventario.xlsx", s.viewer, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestEntrada_ItemInexistente_Retorna404(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/entries", s.admin, map[string]any{"itemId": "nao-existe", "quantidade": 1})
	body := decode(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestListaEntradas_PeriodoInvertido_Retorna400(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodGet, "/api/entries?startDate=2026-03-10&endDate=2026-03-01", s.viewer, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRelatorios_PlanilhaEComprovante(t *testing.T) {
	s := newTestServer(t)
	itemID := s.createItem(t)
	resp := s.do(t, http.MethodPost, "/api/entries", s.admin, map[string]any{"itemId": itemID, "quantidade": 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = s.do(t, http.MethodPost, "/api/exits", s.admin, map[string]any{
		"itemId": itemID, "quantidade": 1, "solicitanteId": adminID, "destino": "TI", "motivoSaida": "Teste",
	})
	exit := decode(t, resp)

	resp = s.do(t, http.MethodGet, "/api/reports/inventario.xlsx", s.admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "PK", string(data[:2]))

	resp = s.do(t, http.MethodGet, "/api/reports/desconhecido.xlsx", s.admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/exits/"+exit["id"].(string)+"/receipt.pdf", s.viewer, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	data, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestDevolucao_MultipartSemFotos(t *testing.T) {
	s := newTestServer(t)
	itemID := s.createItem(t)
	resp := s.do(t, http.MethodPost, "/api/entries", s.admin, map[string]any{"itemId": itemID, "quantidade": 1})
	resp.Body.Close()
	resp = s.do(t, http.MethodPost, "/api/exits", s.admin, map[string]any{
		"itemId": itemID, "quantidade": 1, "solicitanteId": adminID, "destino": "TI", "motivoSaida": "Teste",
	})
	exit := decode(t, resp)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("exitId", exit["id"].(string)))
	require.NoError(t, w.WriteField("condicao", "perfeito"))
	require.NoError(t, w.WriteField("dataDevolucao", "2026-03-05"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/returns", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.admin)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	ret := decode(t, resp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "perfeito", ret["condicao"])
	assert.Empty(t, ret["fotosDefeito"])

	resp = s.do(t, http.MethodDelete, "/api/returns/"+ret["id"].(string), s.admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodGet, "/api/exits/"+exit["id"].(string), s.viewer, nil)
	got := decode(t, resp)
	assert.Equal(t, "em_uso", got["status"])
}

func TestDevolucao_JSONUsaExitID(t *testing.T) {
	s := newTestServer(t)
	itemID := s.createItem(t)
	resp := s.do(t, http.MethodPost, "/api/entries", s.admin, map[string]any{"itemId": itemID, "quantidade": 2})
	resp.Body.Close()
	resp = s.do(t, http.MethodPost, "/api/exits", s.admin, map[string]any{
		"itemId": itemID, "quantidade": 2, "solicitanteId": adminID, "destino": "Suporte", "motivoSaida": "Troca",
	})
	exit := decode(t, resp)
	exitID := exit["id"].(string)

	resp = s.do(t, http.MethodPost, "/api/returns", s.admin, map[string]any{"saidaId": exitID, "condicao": "perfeito"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.do(t, http.MethodPost, "/api/returns", s.admin, map[string]any{"exitId": exitID, "condicao": "perfeito"})
	ret := decode(t, resp)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, exitID, ret["exitId"])
}

func TestItem_BuscaPorQRCode(t *testing.T) {
	s := newTestServer(t)
	itemID := s.createItem(t)
	resp := s.do(t, http.MethodGet, "/api/items/"+itemID, s.viewer, nil)
	item := decode(t, resp)
	qr := item["qrCode"].(string)

	resp = s.do(t, http.MethodGet, "/api/items/qrcode/"+qr, s.viewer, nil)
	got := decode(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, itemID, got["id"])

	resp = s.do(t, http.MethodGet, "/api/items/qrcode/nao-existe", s.viewer, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// pngBytes gera uma imagem PNG pequena válida.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// sendItemForm envia um multipart para /api/items com os campos e, se foto != nil, o arquivo "foto".
func (s *testServer) sendItemForm(t *testing.T, method, path string, fields map[string]string, foto []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if foto != nil {
		fw, err := w.CreateFormFile("foto", "item.png")
		require.NoError(t, err)
		_, err = fw.Write(foto)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.admin)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *testServer) uploadedFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(s.uploads)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestItem_MultipartComFoto(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/categories", s.admin, map[string]any{"nome": "Monitores"})
	cat := decode(t, resp)

	resp = s.sendItemForm(t, http.MethodPost, "/api/items", map[string]string{
		"nome": "Monitor LG", "categoriaId": cat["id"].(string), "estoqueMinimo": "2", "valorUnitario": "150.50",
	}, pngBytes(t))
	item := decode(t, resp)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Monitor LG", item["nome"])
	assert.EqualValues(t, 2, item["estoqueMinimo"])
	assert.Equal(t, "150.5", item["valorUnitario"])
	first, _ := item["fotoUrl"].(string)
	require.True(t, strings.HasPrefix(first, storage.PublicPrefix))
	assert.Equal(t, []string{filepath.Base(first)}, s.uploadedFiles(t))

	resp = s.sendItemForm(t, http.MethodPut, "/api/items/"+item["id"].(string), map[string]string{"localizacao": "Sala 3"}, pngBytes(t))
	updated := decode(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Sala 3", updated["localizacao"])
	second, _ := updated["fotoUrl"].(string)
	assert.NotEqual(t, first, second)
	assert.Equal(t, []string{filepath.Base(second)}, s.uploadedFiles(t))
}

func TestItem_MultipartDescartaFotoQuandoFalha(t *testing.T) {
	s := newTestServer(t)

	resp := s.sendItemForm(t, http.MethodPost, "/api/items", map[string]string{"nome": "Teclado", "categoriaId": "nao-existe"}, pngBytes(t))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
	assert.Empty(t, s.uploadedFiles(t))

	resp = s.sendItemForm(t, http.MethodPost, "/api/items", map[string]string{"nome": "Teclado", "categoriaId": "c", "estoqueMinimo": "muitos"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = s.sendItemForm(t, http.MethodPost, "/api/items", map[string]string{"nome": "Teclado", "categoriaId": "c", "cor": "preto"}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
