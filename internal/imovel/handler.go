package imovel

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AppIpe/api-imovel/internal/arquivo"
	"github.com/AppIpe/api-imovel/internal/pagamento"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxMemoriaMultipart = 32 << 20

type Handler struct {
	DB         *gorm.DB
	Store      *arquivo.Storage
	Repository Repository
}

func NewHandler(db *gorm.DB, store *arquivo.Storage) *Handler {
	return &Handler{DB: db, Store: store, Repository: NewRepository()}
}

// GET /imovel
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	obj, err := h.Repository.BuscarUnico(h.DB)
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_, _ = w.Write([]byte("null"))
			return
		}
		http.Error(w, "Erro ao buscar imóvel", http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(obj)
}

// POST /imovel — só permitido enquanto nenhum imóvel existe.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	if _, err := h.Repository.BuscarUnico(h.DB); err == nil {
		http.Error(w, "Já existe um imóvel cadastrado. O sistema permite apenas um imóvel.", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxMemoriaMultipart); err != nil {
		http.Error(w, "Formulário inválido", http.StatusBadRequest)
		return
	}

	nome := r.FormValue("nome")
	endereco := r.FormValue("endereco")
	valorImovel, errVI := decimal.NewFromString(r.FormValue("valorImovel"))
	valorAluguel, errVA := decimal.NewFromString(r.FormValue("valorAluguel"))
	if nome == "" || endereco == "" || errVI != nil || errVA != nil {
		http.Error(w, "Campos obrigatórios faltando", http.StatusBadRequest)
		return
	}
	if err := pagamento.ValidarValor(valorImovel); err != nil {
		http.Error(w, "Valor do imóvel deve ser positivo", http.StatusBadRequest)
		return
	}
	if err := pagamento.ValidarValor(valorAluguel); err != nil {
		http.Error(w, "Valor do aluguel deve ser positivo", http.StatusBadRequest)
		return
	}

	contrato := r.MultipartForm.File["contrato"]
	fotoCapa := r.MultipartForm.File["fotoCapa"]
	anexos := r.MultipartForm.File["anexos"]

	if err := arquivo.RegraContrato.Validar(contrato); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := arquivo.RegraFotoCapa.Validar(fotoCapa); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := arquivo.RegraAnexoImovel.Validar(anexos); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	obj := &Imovel{
		Nome:         nome,
		Endereco:     endereco,
		ValorImovel:  valorImovel,
		ValorAluguel: valorAluguel,
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Falha ao iniciar transação", http.StatusInternalServerError)
		return
	}

	if err := h.Repository.Criar(tx, obj); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao salvar imóvel", http.StatusInternalServerError)
		return
	}

	if len(contrato) > 0 {
		a, err := arquivo.Anexar(tx, h.Store, contrato[0], "imovel", obj.ID, arquivo.TipoContrato)
		if err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao salvar contrato", http.StatusInternalServerError)
			return
		}
		obj.ContratoArquivoID = &a.ID
	}
	if len(fotoCapa) > 0 {
		a, err := arquivo.Anexar(tx, h.Store, fotoCapa[0], "imovel", obj.ID, arquivo.TipoFotoCapa)
		if err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao salvar foto de capa", http.StatusInternalServerError)
			return
		}
		obj.FotoCapaID = &a.ID
	}
	for _, fh := range anexos {
		if _, err := arquivo.Anexar(tx, h.Store, fh, "imovel", obj.ID, arquivo.TipoAnexo); err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao salvar anexo", http.StatusInternalServerError)
			return
		}
	}

	if err := h.Repository.Salvar(tx, obj); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao salvar imóvel", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao confirmar transação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(obj)
}

// PATCH /imovel
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	obj, err := h.Repository.BuscarUnico(h.DB)
	if err != nil {
		http.Error(w, "Imóvel não encontrado", http.StatusNotFound)
		return
	}

	if err := r.ParseMultipartForm(maxMemoriaMultipart); err != nil {
		http.Error(w, "Formulário inválido", http.StatusBadRequest)
		return
	}

	if v := r.FormValue("nome"); v != "" {
		obj.Nome = v
	}
	if v := r.FormValue("endereco"); v != "" {
		obj.Endereco = v
	}
	if v := r.FormValue("valorImovel"); v != "" {
		valor, err := decimal.NewFromString(v)
		if err != nil || pagamento.ValidarValor(valor) != nil {
			http.Error(w, "Valor do imóvel deve ser positivo", http.StatusBadRequest)
			return
		}
		obj.ValorImovel = valor
	}
	if v := r.FormValue("valorAluguel"); v != "" {
		valor, err := decimal.NewFromString(v)
		if err != nil || pagamento.ValidarValor(valor) != nil {
			http.Error(w, "Valor do aluguel deve ser positivo", http.StatusBadRequest)
			return
		}
		obj.ValorAluguel = valor
	}

	contrato := r.MultipartForm.File["contrato"]
	fotoCapa := r.MultipartForm.File["fotoCapa"]
	anexos := r.MultipartForm.File["anexos"]

	if err := arquivo.RegraContrato.Validar(contrato); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := arquivo.RegraFotoCapa.Validar(fotoCapa); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := arquivo.RegraAnexoImovel.Validar(anexos); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Falha ao iniciar transação", http.StatusInternalServerError)
		return
	}

	if len(contrato) > 0 {
		a, err := arquivo.Anexar(tx, h.Store, contrato[0], "imovel", obj.ID, arquivo.TipoContrato)
		if err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao salvar contrato", http.StatusInternalServerError)
			return
		}
		obj.ContratoArquivoID = &a.ID
	}
	if len(fotoCapa) > 0 {
		a, err := arquivo.Anexar(tx, h.Store, fotoCapa[0], "imovel", obj.ID, arquivo.TipoFotoCapa)
		if err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao salvar foto de capa", http.StatusInternalServerError)
			return
		}
		obj.FotoCapaID = &a.ID
	}
	for _, fh := range anexos {
		if _, err := arquivo.Anexar(tx, h.Store, fh, "imovel", obj.ID, arquivo.TipoAnexo); err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao salvar anexo", http.StatusInternalServerError)
			return
		}
	}

	if err := h.Repository.Salvar(tx, obj); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao atualizar imóvel", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao confirmar transação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(obj)
}
