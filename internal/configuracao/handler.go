package configuracao

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/AppIpe/api-imovel/internal/imovel"
	"github.com/AppIpe/api-imovel/internal/pagamento"
	"github.com/AppIpe/api-imovel/internal/parte"
	"github.com/AppIpe/api-imovel/internal/usuario"
	"github.com/AppIpe/api-imovel/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var validate = validator.New()

type Handler struct {
	DB       *gorm.DB
	Imoveis  imovel.Repository
	Partes   parte.Repository
	Usuarios usuario.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:       db,
		Imoveis:  imovel.NewRepository(),
		Partes:   parte.NewRepository(),
		Usuarios: usuario.NewRepository(),
	}
}

type wizardPessoa struct {
	Nome         string `json:"nome" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Senha        string `json:"senha"`
	Telefone     string `json:"telefone"`
	CPF          string `json:"cpf" validate:"required,min=11"`
	RG           string `json:"rg"`
	OrgaoEmissor string `json:"orgaoEmissor"`
}

type wizardImovel struct {
	Nome         string  `json:"nome" validate:"required"`
	Endereco     string  `json:"endereco" validate:"required"`
	ValorImovel  float64 `json:"valorImovel" validate:"required,gt=0"`
	ValorAluguel float64 `json:"valorAluguel" validate:"required,gt=0"`
}

type wizardRequest struct {
	Proprietario       wizardPessoa `json:"proprietario" validate:"required"`
	Comprador          wizardPessoa `json:"comprador" validate:"required"`
	Imovel             wizardImovel `json:"imovel" validate:"required"`
	DataInicioContrato string       `json:"dataInicioContrato" validate:"required"`
}

// GET /configuracao/status — rota aberta, consultada antes do login.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	var config Configuracao
	configurado := false
	if err := h.DB.First(&config).Error; err == nil {
		configurado = config.ConfiguracaoInicial
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"configurado": configurado})
}

// POST /configuracao/wizard — primeira configuração: proprietário com
// login, comprador, imóvel e data de início do contrato, tudo em uma
// transação.
func (h *Handler) Wizard(w http.ResponseWriter, r *http.Request) {
	var req wizardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "Dados da configuração incompletos", http.StatusBadRequest)
		return
	}
	if req.Proprietario.Senha == "" {
		http.Error(w, "Dados do proprietário incompletos", http.StatusBadRequest)
		return
	}
	dataInicio, err := time.Parse("2006-01-02", req.DataInicioContrato)
	if err != nil {
		http.Error(w, "Data de início do contrato inválida", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashSenha(req.Proprietario.Senha)
	if err != nil {
		http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
		return
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Falha ao iniciar transação", http.StatusInternalServerError)
		return
	}

	var config Configuracao
	if err := tx.First(&config).Error; err == nil && config.ConfiguracaoInicial {
		_ = tx.Rollback()
		http.Error(w, "Sistema já foi configurado", http.StatusBadRequest)
		return
	}
	if _, err := h.Imoveis.BuscarUnico(tx); err == nil {
		_ = tx.Rollback()
		http.Error(w, "Já existe um imóvel cadastrado", http.StatusBadRequest)
		return
	}

	parteProprietario := &parte.Parte{
		Tipo:         pagamento.NomePapelProprietario,
		Nome:         req.Proprietario.Nome,
		Email:        req.Proprietario.Email,
		Telefone:     req.Proprietario.Telefone,
		CPF:          req.Proprietario.CPF,
		RG:           req.Proprietario.RG,
		OrgaoEmissor: req.Proprietario.OrgaoEmissor,
	}
	if err := h.Partes.Criar(tx, parteProprietario); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao criar proprietário", http.StatusInternalServerError)
		return
	}

	usuarioProprietario := &usuario.Usuario{
		Email:   req.Proprietario.Email,
		Senha:   hash,
		Nome:    req.Proprietario.Nome,
		Papel:   pagamento.NomePapelProprietario,
		ParteID: &parteProprietario.ID,
	}
	if err := h.Usuarios.Salvar(tx, usuarioProprietario); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao criar usuário do proprietário", http.StatusInternalServerError)
		return
	}

	parteComprador := &parte.Parte{
		Tipo:         pagamento.NomePapelComprador,
		Nome:         req.Comprador.Nome,
		Email:        req.Comprador.Email,
		Telefone:     req.Comprador.Telefone,
		CPF:          req.Comprador.CPF,
		RG:           req.Comprador.RG,
		OrgaoEmissor: req.Comprador.OrgaoEmissor,
	}
	if err := h.Partes.Criar(tx, parteComprador); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao criar comprador", http.StatusInternalServerError)
		return
	}

	novoImovel := &imovel.Imovel{
		Nome:         req.Imovel.Nome,
		Endereco:     req.Imovel.Endereco,
		ValorImovel:  decimal.NewFromFloat(req.Imovel.ValorImovel),
		ValorAluguel: decimal.NewFromFloat(req.Imovel.ValorAluguel),
	}
	if err := h.Imoveis.Criar(tx, novoImovel); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao criar imóvel", http.StatusInternalServerError)
		return
	}

	if err := tx.Create(&Configuracao{
		ConfiguracaoInicial: true,
		DataInicioContrato:  &dataInicio,
	}).Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao gravar configuração", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao confirmar transação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"message": "Configuração inicial concluída com sucesso",
		"usuario": map[string]interface{}{
			"id":    usuarioProprietario.ID,
			"email": usuarioProprietario.Email,
			"nome":  usuarioProprietario.Nome,
			"papel": usuarioProprietario.Papel,
		},
	})
}
