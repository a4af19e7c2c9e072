package condominio

import (
	"context"
	"encoding/json"
	"fmt"
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

func novoHandlerTeste(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&imovel.Imovel{}, &Condominio{}, &arquivo.Arquivo{}))

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
		ValorAluguel: decimal.NewFromInt(2500),
	}
	require.NoError(t, db.Create(obj).Error)
	return obj
}

func criarVia(t *testing.T, h *Handler, corpo string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/condominios", strings.NewReader(corpo))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Criar(rec, req)
	return rec
}

func TestCriarCondominioValorDoCorpo(t *testing.T) {
	h, db := novoHandlerTeste(t)
	criarImovelTeste(t, db)

	rec := criarVia(t, h, `{"valor": 487.53}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var c Condominio
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.True(t, c.Valor.Equal(decimal.NewFromFloat(487.53)))
	assert.Equal(t, 1, c.Mes)
	assert.Equal(t, time.Now().Year(), c.Ano)
	assert.Equal(t, pagamento.StatusPendente, c.Status)
}

func TestCriarCondominioSegueUltimoPeriodo(t *testing.T) {
	h, db := novoHandlerTeste(t)
	obj := criarImovelTeste(t, db)
	require.NoError(t, db.Create(&Condominio{
		ImovelID: obj.ID,
		Mes:      12,
		Ano:      2025,
		Cobranca: pagamento.Cobranca{Valor: decimal.NewFromInt(450), Status: pagamento.StatusPago},
	}).Error)

	rec := criarVia(t, h, `{"valor": 512.10}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var c Condominio
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	assert.Equal(t, 1, c.Mes)
	assert.Equal(t, 2026, c.Ano)
	// o valor não herda o do período anterior
	assert.True(t, c.Valor.Equal(decimal.NewFromFloat(512.10)))
}

func TestCriarCondominioValorInvalido(t *testing.T) {
	h, db := novoHandlerTeste(t)
	criarImovelTeste(t, db)

	assert.Equal(t, http.StatusBadRequest, criarVia(t, h, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, criarVia(t, h, `{"valor": -10}`).Code)
}

func TestCriarCondominioSemImovel(t *testing.T) {
	h, _ := novoHandlerTeste(t)

	assert.Equal(t, http.StatusBadRequest, criarVia(t, h, `{"valor": 450}`).Code)
}

func TestAtualizarStatusCondominio(t *testing.T) {
	h, db := novoHandlerTeste(t)
	obj := criarImovelTeste(t, db)
	anexo := arquivo.Arquivo{
		NomeOriginal: "recibo.pdf", Caminho: "x.pdf", Mime: "application/pdf",
		Tamanho: 10, Entidade: "condominio", EntidadeID: 1, Tipo: arquivo.TipoComprovante,
	}
	require.NoError(t, db.Create(&anexo).Error)

	c := &Condominio{
		ImovelID: obj.ID,
		Mes:      1,
		Ano:      2026,
		Cobranca: pagamento.Cobranca{
			Valor:         decimal.NewFromInt(450),
			Status:        pagamento.StatusPagamentoInformado,
			ComprovanteID: &anexo.ID,
		},
	}
	require.NoError(t, db.Create(c).Error)

	router := mux.NewRouter()
	router.HandleFunc("/condominios/{id}/status", h.AtualizarStatus).Methods("PATCH")

	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/condominios/%d/status", c.ID),
		strings.NewReader(`{"status":"pago"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req.WithContext(
		context.WithValue(req.Context(), auth.CtxPapel, pagamento.PapelProprietario)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var pago Condominio
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pago))
	assert.Equal(t, pagamento.StatusPago, pago.Status)
	require.NotNil(t, pago.PagoEm)
	assert.Equal(t, anexo.ID, *pago.ComprovanteID)
	assert.Equal(t, c.Versao+1, pago.Versao)
}
