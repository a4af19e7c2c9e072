package condominio

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AppIpe/api-imovel/internal/aluguel"
	"github.com/AppIpe/api-imovel/internal/arquivo"
	"github.com/AppIpe/api-imovel/internal/auth"
	"github.com/AppIpe/api-imovel/internal/imovel"
	"github.com/AppIpe/api-imovel/internal/pagamento"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const maxMemoriaMultipart = 32 << 20

type Handler struct {
	DB         *gorm.DB
	Store      *arquivo.Storage
	Repository Repository
	Imoveis    imovel.Repository
	Arquivos   arquivo.Repository
}

func NewHandler(db *gorm.DB, store *arquivo.Storage) *Handler {
	return &Handler{
		DB:         db,
		Store:      store,
		Repository: NewRepository(),
		Imoveis:    imovel.NewRepository(),
		Arquivos:   arquivo.NewRepository(),
	}
}

// GET /condominios
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	condominios, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar condomínios", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(condominios)
}

// POST /condominios — o período segue o último registro; o valor varia
// mês a mês e vem do corpo.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	obj, err := h.Imoveis.BuscarUnico(h.DB)
	if err != nil {
		http.Error(w, "É necessário cadastrar um imóvel primeiro", http.StatusBadRequest)
		return
	}

	var payload struct {
		Valor json.Number `json:"valor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	valor, err := decimal.NewFromString(payload.Valor.String())
	if err != nil {
		http.Error(w, "Valor é obrigatório", http.StatusBadRequest)
		return
	}
	cobranca, err := pagamento.NovaCobranca(valor)
	if err != nil {
		http.Error(w, err.Error(), pagamento.CodigoHTTP(err))
		return
	}

	mes, ano := 1, time.Now().Year()
	if ultimo, err := h.Repository.UltimoDoImovel(h.DB, obj.ID); err == nil {
		mes, ano = aluguel.ProximoPeriodo(ultimo.Mes, ultimo.Ano)
	}

	c := &Condominio{
		ImovelID: obj.ID,
		Mes:      mes,
		Ano:      ano,
		Cobranca: cobranca,
	}
	if err := h.Repository.Criar(h.DB, c); err != nil {
		http.Error(w, "Erro ao criar condomínio", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// PATCH /condominios/{id}/status
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do condomínio inválido", http.StatusBadRequest)
		return
	}

	alvo, comprovante, err := lerTransicao(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Condomínio não encontrado", http.StatusNotFound)
		return
	}

	papel := auth.PapelDoContexto(r.Context())
	versao := c.Versao

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Falha ao iniciar transação", http.StatusInternalServerError)
		return
	}

	var novoComprovanteID *uint
	var anexado *arquivo.Arquivo
	if comprovante != nil {
		anexado, err = arquivo.Anexar(tx, h.Store, comprovante, "condominio", c.ID, arquivo.TipoComprovante)
		if err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao salvar comprovante", http.StatusInternalServerError)
			return
		}
		novoComprovanteID = &anexado.ID
	}

	if err := pagamento.Aplicar(&c.Cobranca, alvo, papel, novoComprovanteID, time.Now()); err != nil {
		_ = tx.Rollback()
		if anexado != nil {
			_ = h.Store.Remover(anexado.Caminho)
		}
		http.Error(w, err.Error(), pagamento.CodigoHTTP(err))
		return
	}

	if err := h.Repository.AtualizarCobranca(tx, c.ID, versao, c.Cobranca); err != nil {
		_ = tx.Rollback()
		if anexado != nil {
			_ = h.Store.Remover(anexado.Caminho)
		}
		http.Error(w, err.Error(), pagamento.CodigoHTTP(err))
		return
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao confirmar transação", http.StatusInternalServerError)
		return
	}

	atual, err := h.Repository.BuscarPorID(h.DB, c.ID)
	if err != nil {
		http.Error(w, "Erro ao buscar condomínio atualizado", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atual)
}

// DELETE /condominios/{id} — apenas registros ainda pendentes.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do condomínio inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Condomínio não encontrado", http.StatusNotFound)
		return
	}
	if c.Status != pagamento.StatusPendente {
		http.Error(w, pagamento.ErrSomentePendenteExcluivel.Error(), http.StatusBadRequest)
		return
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Falha ao iniciar transação", http.StatusInternalServerError)
		return
	}

	var caminho string
	if c.ComprovanteID != nil {
		if arq, err := h.Arquivos.BuscarPorID(tx, *c.ComprovanteID); err == nil {
			caminho = arq.Caminho
			if err := h.Arquivos.Deletar(tx, arq.ID); err != nil {
				_ = tx.Rollback()
				http.Error(w, "Erro ao excluir comprovante", http.StatusInternalServerError)
				return
			}
		}
	}

	if err := h.Repository.Deletar(tx, c.ID); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao excluir condomínio", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao confirmar transação", http.StatusInternalServerError)
		return
	}
	if caminho != "" {
		_ = h.Store.Remover(caminho)
	}

	w.WriteHeader(http.StatusNoContent)
}

func lerTransicao(r *http.Request) (pagamento.Status, *multipart.FileHeader, error) {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/") {
		if err := r.ParseMultipartForm(maxMemoriaMultipart); err != nil {
			return "", nil, errors.New("formulário inválido")
		}
		comprovantes := r.MultipartForm.File["comprovante"]
		if err := arquivo.RegraComprovante.Validar(comprovantes); err != nil {
			return "", nil, err
		}
		var fh *multipart.FileHeader
		if len(comprovantes) > 0 {
			fh = comprovantes[0]
		}
		return pagamento.Status(r.FormValue("status")), fh, nil
	}

	var payload struct {
		Status pagamento.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return "", nil, errors.New("JSON mal formado")
	}
	return payload.Status, nil, nil
}
