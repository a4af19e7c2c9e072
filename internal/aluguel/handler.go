package aluguel

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AppIpe/api-imovel/internal/arquivo"
	"github.com/AppIpe/api-imovel/internal/auth"
	"github.com/AppIpe/api-imovel/internal/imovel"
	"github.com/AppIpe/api-imovel/internal/pagamento"

	"github.com/gorilla/mux"
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

// GET /alugueis
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	alugueis, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar aluguéis", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(alugueis)
}

// POST /alugueis — o período segue o último registro e o valor vem do
// valor canônico de aluguel do imóvel.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	obj, err := h.Imoveis.BuscarUnico(h.DB)
	if err != nil {
		http.Error(w, "É necessário cadastrar um imóvel primeiro", http.StatusBadRequest)
		return
	}

	mes, ano := 1, time.Now().Year()
	if ultimo, err := h.Repository.UltimoDoImovel(h.DB, obj.ID); err == nil {
		mes, ano = ProximoPeriodo(ultimo.Mes, ultimo.Ano)
	}

	cobranca, err := pagamento.NovaCobranca(obj.ValorAluguel)
	if err != nil {
		http.Error(w, err.Error(), pagamento.CodigoHTTP(err))
		return
	}

	a := &Aluguel{
		ImovelID: obj.ID,
		Mes:      mes,
		Ano:      ano,
		Cobranca: cobranca,
	}
	if err := h.Repository.Criar(h.DB, a); err != nil {
		http.Error(w, "Erro ao criar aluguel", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(a)
}

// PATCH /alugueis/{id}/status
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do aluguel inválido", http.StatusBadRequest)
		return
	}

	alvo, comprovante, err := lerTransicao(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Aluguel não encontrado", http.StatusNotFound)
		return
	}

	papel := auth.PapelDoContexto(r.Context())
	versao := a.Versao

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Falha ao iniciar transação", http.StatusInternalServerError)
		return
	}

	var novoComprovanteID *uint
	var anexado *arquivo.Arquivo
	if comprovante != nil {
		anexado, err = arquivo.Anexar(tx, h.Store, comprovante, "aluguel", a.ID, arquivo.TipoComprovante)
		if err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao salvar comprovante", http.StatusInternalServerError)
			return
		}
		novoComprovanteID = &anexado.ID
	}

	if err := pagamento.Aplicar(&a.Cobranca, alvo, papel, novoComprovanteID, time.Now()); err != nil {
		_ = tx.Rollback()
		if anexado != nil {
			_ = h.Store.Remover(anexado.Caminho)
		}
		http.Error(w, err.Error(), pagamento.CodigoHTTP(err))
		return
	}

	if err := h.Repository.AtualizarCobranca(tx, a.ID, versao, a.Cobranca); err != nil {
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

	atual, err := h.Repository.BuscarPorID(h.DB, a.ID)
	if err != nil {
		http.Error(w, "Erro ao buscar aluguel atualizado", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atual)
}

// DELETE /alugueis/{id} — apenas registros ainda pendentes.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID do aluguel inválido", http.StatusBadRequest)
		return
	}

	a, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Aluguel não encontrado", http.StatusNotFound)
		return
	}
	if a.Status != pagamento.StatusPendente {
		http.Error(w, pagamento.ErrSomentePendenteExcluivel.Error(), http.StatusBadRequest)
		return
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Falha ao iniciar transação", http.StatusInternalServerError)
		return
	}

	var caminho string
	if a.ComprovanteID != nil {
		if arq, err := h.Arquivos.BuscarPorID(tx, *a.ComprovanteID); err == nil {
			caminho = arq.Caminho
			if err := h.Arquivos.Deletar(tx, arq.ID); err != nil {
				_ = tx.Rollback()
				http.Error(w, "Erro ao excluir comprovante", http.StatusInternalServerError)
				return
			}
		}
	}

	if err := h.Repository.Deletar(tx, a.ID); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao excluir aluguel", http.StatusInternalServerError)
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
