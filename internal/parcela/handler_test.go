package parcela

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AppIpe/api-imovel/internal/arquivo"
	"github.com/AppIpe/api-imovel/internal/auth"
	"github.com/AppIpe/api-imovel/internal/imovel"
	"github.com/AppIpe/api-imovel/internal/pagamento"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func novoBancoTeste(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&imovel.Imovel{}, &Parcela{}, &arquivo.Arquivo{}))
	return db
}

func novoHandlerTeste(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	db := novoBancoTeste(t)
	store, err := arquivo.NewStorage(t.TempDir())
	require.NoError(t, err)
	return NewHandler(db, store), db
}

func criarImovelTeste(t *testing.T, db *gorm.DB) *imovel.Imovel {
	t.Helper()
	obj := &imovel.Imovel{
		Nome:         "Casa de Teste",
		Endereco:     "Rua A, 1",
		ValorImovel:  decimal.NewFromInt(300000),
		ValorAluguel: decimal.NewFromInt(2000),
	}
	require.NoError(t, db.Create(obj).Error)
	return obj
}

func rotear(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/parcelas", h.Criar).Methods("POST")
	r.HandleFunc("/parcelas/{id}/status", h.AtualizarStatus).Methods("PATCH")
	r.HandleFunc("/parcelas/{id}", h.Deletar).Methods("DELETE")
	return r
}

func comPapel(r *http.Request, papel pagamento.Papel) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), auth.CtxPapel, papel))
}

func corpoMultipart(t *testing.T, campos map[string]string, nomeComprovante string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range campos {
		require.NoError(t, mw.WriteField(k, v))
	}
	if nomeComprovante != "" {
		fw, err := mw.CreateFormFile("comprovante", nomeComprovante)
		require.NoError(t, err)
		_, err = fw.Write([]byte("conteudo do comprovante"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestCriarParcelaNumeracaoAutomatica(t *testing.T) {
	h, db := novoHandlerTeste(t)
	criarImovelTeste(t, db)
	router := rotear(h)

	for i := 1; i <= 2; i++ {
		corpo, ct := corpoMultipart(t, map[string]string{"valor": "5625.00"}, "")
		req := httptest.NewRequest(http.MethodPost, "/parcelas", corpo)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, comPapel(req, pagamento.PapelProprietario))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var p Parcela
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
		assert.Equal(t, i, p.Numero)
		assert.Equal(t, 15, p.Vencimento.Day())
		assert.Equal(t, pagamento.StatusPendente, p.Status)
	}

	var parcelas []Parcela
	require.NoError(t, db.Order("numero").Find(&parcelas).Error)
	require.Len(t, parcelas, 2)
	// vencimentos em meses consecutivos
	assert.Equal(t, parcelas[0].Vencimento.AddDate(0, 1, 0), parcelas[1].Vencimento)
}

func TestCriarParcelaSemImovel(t *testing.T) {
	h, _ := novoHandlerTeste(t)
	router := rotear(h)

	corpo, ct := corpoMultipart(t, map[string]string{"valor": "100"}, "")
	req := httptest.NewRequest(http.MethodPost, "/parcelas", corpo)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, comPapel(req, pagamento.PapelProprietario))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func seedParcela(t *testing.T, db *gorm.DB, imovelID uint) *Parcela {
	t.Helper()
	p := &Parcela{
		ImovelID:   imovelID,
		Numero:     1,
		Vencimento: time.Date(2026, time.October, 15, 0, 0, 0, 0, time.UTC),
		Cobranca:   pagamento.Cobranca{Valor: decimal.NewFromInt(5625), Status: pagamento.StatusPendente},
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestFluxoInformarEConfirmarPagamento(t *testing.T) {
	h, db := novoHandlerTeste(t)
	obj := criarImovelTeste(t, db)
	p := seedParcela(t, db, obj.ID)
	router := rotear(h)

	// comprador informa o pagamento com comprovante
	corpo, ct := corpoMultipart(t, map[string]string{"status": "pagamento_informado"}, "recibo.pdf")
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/parcelas/%d/status", p.ID), corpo)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, comPapel(req, pagamento.PapelComprador))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var informado Parcela
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &informado))
	assert.Equal(t, pagamento.StatusPagamentoInformado, informado.Status)
	require.NotNil(t, informado.ComprovanteID)
	assert.Nil(t, informado.PagoEm)

	var arq arquivo.Arquivo
	require.NoError(t, db.First(&arq, *informado.ComprovanteID).Error)
	assert.Equal(t, "recibo.pdf", arq.NomeOriginal)
	assert.Equal(t, "parcela", arq.Entidade)
	assert.Equal(t, arquivo.TipoComprovante, arq.Tipo)

	// proprietário confirma
	req = httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/parcelas/%d/status", p.ID),
		strings.NewReader(`{"status":"pago"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, comPapel(req, pagamento.PapelProprietario))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pago Parcela
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pago))
	assert.Equal(t, pagamento.StatusPago, pago.Status)
	require.NotNil(t, pago.PagoEm)
	assert.Equal(t, informado.ComprovanteID, pago.ComprovanteID)
}

func TestCompradorNaoConfirmaPagamento(t *testing.T) {
	h, db := novoHandlerTeste(t)
	obj := criarImovelTeste(t, db)
	p := seedParcela(t, db, obj.ID)
	router := rotear(h)

	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/parcelas/%d/status", p.ID),
		strings.NewReader(`{"status":"pago"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, comPapel(req, pagamento.PapelComprador))

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var atual Parcela
	require.NoError(t, db.First(&atual, p.ID).Error)
	assert.Equal(t, pagamento.StatusPendente, atual.Status)
}

func TestInformarSemComprovante(t *testing.T) {
	h, db := novoHandlerTeste(t)
	obj := criarImovelTeste(t, db)
	p := seedParcela(t, db, obj.ID)
	router := rotear(h)

	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/parcelas/%d/status", p.ID),
		strings.NewReader(`{"status":"pagamento_informado"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, comPapel(req, pagamento.PapelComprador))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusDesconhecido(t *testing.T) {
	h, db := novoHandlerTeste(t)
	obj := criarImovelTeste(t, db)
	p := seedParcela(t, db, obj.ID)
	router := rotear(h)

	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/parcelas/%d/status", p.ID),
		strings.NewReader(`{"status":"quitado"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, comPapel(req, pagamento.PapelProprietario))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAtualizarCobrancaConflitoDeVersao(t *testing.T) {
	_, db := novoHandlerTeste(t)
	obj := criarImovelTeste(t, db)
	p := seedParcela(t, db, obj.ID)
	repo := NewRepository()

	c := p.Cobranca
	c.Status = pagamento.StatusPagamentoInformado

	// versão correta passa e incrementa
	require.NoError(t, repo.AtualizarCobranca(db, p.ID, p.Versao, c))
	atual, err := repo.BuscarPorID(db, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Versao+1, atual.Versao)

	// versão antiga perde a corrida
	err = repo.AtualizarCobranca(db, p.ID, p.Versao, c)
	assert.ErrorIs(t, err, pagamento.ErrConflitoVersao)

	// registro inexistente
	err = repo.AtualizarCobranca(db, 9999, 0, c)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeletarSomentePendente(t *testing.T) {
	h, db := novoHandlerTeste(t)
	obj := criarImovelTeste(t, db)
	router := rotear(h)

	pago := seedParcela(t, db, obj.ID)
	agora := time.Now()
	require.NoError(t, db.Model(pago).Updates(map[string]interface{}{
		"status":  pagamento.StatusPago,
		"pago_em": &agora,
	}).Error)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/parcelas/%d", pago.ID), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, comPapel(req, pagamento.PapelProprietario))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	pendente := &Parcela{
		ImovelID:   obj.ID,
		Numero:     2,
		Vencimento: time.Date(2026, time.November, 15, 0, 0, 0, 0, time.UTC),
		Cobranca:   pagamento.Cobranca{Valor: decimal.NewFromInt(5625), Status: pagamento.StatusPendente},
	}
	require.NoError(t, db.Create(pendente).Error)

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/parcelas/%d", pendente.ID), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, comPapel(req, pagamento.PapelProprietario))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	err := db.First(&Parcela{}, pendente.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
