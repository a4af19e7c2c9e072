package arquivo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Store      *Storage
	Repository Repository
}

func NewHandler(db *gorm.DB, store *Storage) *Handler {
	return &Handler{DB: db, Store: store, Repository: NewRepository()}
}

// GET /arquivos?entidade=parcela&entidadeId=3
func (h *Handler) ListarPorEntidade(w http.ResponseWriter, r *http.Request) {
	entidade := r.URL.Query().Get("entidade")
	entidadeID, err := strconv.Atoi(r.URL.Query().Get("entidadeId"))
	if entidade == "" || err != nil {
		http.Error(w, "Parâmetros entidade e entidadeId são obrigatórios", http.StatusBadRequest)
		return
	}

	arquivos, err := h.Repository.ListarPorEntidade(h.DB, entidade, uint(entidadeID))
	if err != nil {
		http.Error(w, "Erro ao listar arquivos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(arquivos)
}

// GET /arquivos/{id}/download
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	a, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Arquivo não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar arquivo", http.StatusInternalServerError)
		return
	}

	f, err := h.Store.Abrir(a.Caminho)
	if err != nil {
		http.Error(w, "Conteúdo do arquivo indisponível", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", a.Mime)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.NomeOriginal))
	_, _ = io.Copy(w, f)
}

// DELETE /arquivos/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	a, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Arquivo não encontrado", http.StatusNotFound)
		return
	}

	if err := h.Repository.Deletar(h.DB, a.ID); err != nil {
		http.Error(w, "Erro ao excluir arquivo", http.StatusInternalServerError)
		return
	}
	if err := h.Store.Remover(a.Caminho); err != nil {
		http.Error(w, "Erro ao remover conteúdo do arquivo", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
