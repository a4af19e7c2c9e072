package configuracao

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AppIpe/api-imovel/internal/imovel"
	"github.com/AppIpe/api-imovel/internal/pagamento"
	"github.com/AppIpe/api-imovel/internal/parte"
	"github.com/AppIpe/api-imovel/internal/usuario"
	"github.com/AppIpe/api-imovel/internal/utils"

	"github.com/google/uuid"
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
	require.NoError(t, db.AutoMigrate(
		&usuario.Usuario{}, &parte.Parte{}, &imovel.Imovel{}, &Configuracao{},
	))
	return NewHandler(db), db
}

const corpoWizard = `{
	"proprietario": {
		"nome": "João Silva",
		"email": "joao@email.com",
		"senha": "senha-forte",
		"telefone": "(11) 98765-4321",
		"cpf": "123.456.789-00",
		"rg": "12.345.678-9",
		"orgaoEmissor": "SSP/SP"
	},
	"comprador": {
		"nome": "Maria Santos",
		"email": "maria@email.com",
		"cpf": "987.654.321-00"
	},
	"imovel": {
		"nome": "Casa no Centro",
		"endereco": "Rua das Flores, 123",
		"valorImovel": 450000,
		"valorAluguel": 2500
	},
	"dataInicioContrato": "2024-01-15"
}`

func TestWizardConfiguraSistema(t *testing.T) {
	h, db := novoHandlerTeste(t)

	req := httptest.NewRequest(http.MethodPost, "/configuracao/wizard", strings.NewReader(corpoWizard))
	rec := httptest.NewRecorder()
	h.Wizard(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var u usuario.Usuario
	require.NoError(t, db.Where("email = ?", "joao@email.com").First(&u).Error)
	assert.Equal(t, pagamento.NomePapelProprietario, u.Papel)
	assert.True(t, utils.VerificarSenha(u.Senha, "senha-forte"))
	require.NotNil(t, u.ParteID)

	var partes []parte.Parte
	require.NoError(t, db.Find(&partes).Error)
	assert.Len(t, partes, 2)

	var obj imovel.Imovel
	require.NoError(t, db.First(&obj).Error)
	assert.Equal(t, "Casa no Centro", obj.Nome)

	var config Configuracao
	require.NoError(t, db.First(&config).Error)
	assert.True(t, config.ConfiguracaoInicial)
	require.NotNil(t, config.DataInicioContrato)
	assert.Equal(t, "2024-01-15", config.DataInicioContrato.Format("2006-01-02"))

	// status passa a responder configurado
	rec = httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/configuracao/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status["configurado"])
}

func TestWizardNaoReconfigura(t *testing.T) {
	h, _ := novoHandlerTeste(t)

	req := httptest.NewRequest(http.MethodPost, "/configuracao/wizard", strings.NewReader(corpoWizard))
	rec := httptest.NewRecorder()
	h.Wizard(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/configuracao/wizard", strings.NewReader(corpoWizard))
	rec = httptest.NewRecorder()
	h.Wizard(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWizardSemSenhaDoProprietario(t *testing.T) {
	h, _ := novoHandlerTeste(t)

	corpo := strings.Replace(corpoWizard, `"senha": "senha-forte",`, "", 1)
	req := httptest.NewRequest(http.MethodPost, "/configuracao/wizard", strings.NewReader(corpo))
	rec := httptest.NewRecorder()
	h.Wizard(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusSemConfiguracao(t *testing.T) {
	h, _ := novoHandlerTeste(t)

	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/configuracao/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status["configurado"])
}
