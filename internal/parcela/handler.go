package parcela

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

// GET /parcelas
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	parcelas, err := h.Repository.ListarTodas(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar parcelas", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(parcelas)
}

// proximoVencimento é sempre o dia 15 do mês seguinte à referência.
func proximoVencimento(apos time.Time) time.Time {
	return time.Date(apos.Year(), apos.Month()+1, 15, 0, 0, 0, 0, time.UTC)
}

// POST /parcelas — número e vencimento seguem automaticamente a última
// parcela do imóvel.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	obj, err := h.Imoveis.BuscarUnico(h.DB)
	if err != nil {
		http.Error(w, "É necessário cadastrar um imóvel primeiro", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxMemoriaMultipart); err != nil {
		http.Error(w, "Formulário inválido", http.StatusBadRequest)
		return
	}

	valor, err := decimal.NewFromString(r.FormValue("valor"))
	if err != nil {
		http.Error(w, "Valor é obrigatório", http.StatusBadRequest)
		return
	}
	cobranca, err := pagamento.NovaCobranca(valor)
	if err != nil {
		http.Error(w, err.Error(), pagamento.CodigoHTTP(err))
		return
	}

	comprovantes := r.MultipartForm.File["comprovante"]
	if err := arquivo.RegraComprovante.Validar(comprovantes); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	numero := 1
	vencimento := proximoVencimento(time.Now())
	if ultima, err := h.Repository.UltimaDoImovel(h.DB, obj.ID); err == nil {
		numero = ultima.Numero + 1
		vencimento = proximoVencimento(ultima.Vencimento)
	}

	p := &Parcela{
		ImovelID:   obj.ID,
		Numero:     numero,
		Vencimento: vencimento,
		Cobranca:   cobranca,
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Falha ao iniciar transação", http.StatusInternalServerError)
		return
	}

	if err := h.Repository.Criar(tx, p); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao criar parcela", http.StatusInternalServerError)
		return
	}

	if len(comprovantes) > 0 {
		a, err := arquivo.Anexar(tx, h.Store, comprovantes[0], "parcela", p.ID, arquivo.TipoComprovante)
		if err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao salvar comprovante", http.StatusInternalServerError)
			return
		}
		p.ComprovanteID = &a.ID
		if err := tx.Model(&Parcela{}).Where("id = ?", p.ID).Update("comprovante_id", a.ID).Error; err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao vincular comprovante", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao confirmar transação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(p)
}

// PATCH /parcelas/{id}/status — aplica a máquina de status. O papel do
// chamador vem do token; o comprovante pode acompanhar a requisição.
func (h *Handler) AtualizarStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da parcela inválido", http.StatusBadRequest)
		return
	}

	alvo, comprovante, err := lerTransicao(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Parcela não encontrada", http.StatusNotFound)
		return
	}

	papel := auth.PapelDoContexto(r.Context())
	versao := p.Versao

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Falha ao iniciar transação", http.StatusInternalServerError)
		return
	}

	var novoComprovanteID *uint
	var anexado *arquivo.Arquivo
	if comprovante != nil {
		anexado, err = arquivo.Anexar(tx, h.Store, comprovante, "parcela", p.ID, arquivo.TipoComprovante)
		if err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao salvar comprovante", http.StatusInternalServerError)
			return
		}
		novoComprovanteID = &anexado.ID
	}

	if err := pagamento.Aplicar(&p.Cobranca, alvo, papel, novoComprovanteID, time.Now()); err != nil {
		_ = tx.Rollback()
		if anexado != nil {
			_ = h.Store.Remover(anexado.Caminho)
		}
		http.Error(w, err.Error(), pagamento.CodigoHTTP(err))
		return
	}

	if err := h.Repository.AtualizarCobranca(tx, p.ID, versao, p.Cobranca); err != nil {
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

	atual, err := h.Repository.BuscarPorID(h.DB, p.ID)
	if err != nil {
		http.Error(w, "Erro ao buscar parcela atualizada", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(atual)
}

// DELETE /parcelas/{id} — apenas registros ainda pendentes.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID da parcela inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Parcela não encontrada", http.StatusNotFound)
		return
	}
	if p.Status != pagamento.StatusPendente {
		http.Error(w, pagamento.ErrSomentePendenteExcluivel.Error(), http.StatusBadRequest)
		return
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Falha ao iniciar transação", http.StatusInternalServerError)
		return
	}

	var caminho string
	if p.ComprovanteID != nil {
		if a, err := h.Arquivos.BuscarPorID(tx, *p.ComprovanteID); err == nil {
			caminho = a.Caminho
			if err := h.Arquivos.Deletar(tx, a.ID); err != nil {
				_ = tx.Rollback()
				http.Error(w, "Erro ao excluir comprovante", http.StatusInternalServerError)
				return
			}
		}
	}

	if err := h.Repository.Deletar(tx, p.ID); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao excluir parcela", http.StatusInternalServerError)
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

// lerTransicao aceita multipart (status + arquivo "comprovante") ou
// JSON simples {"status": "..."}.
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
