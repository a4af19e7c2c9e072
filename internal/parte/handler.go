package parte

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/AppIpe/api-imovel/internal/arquivo"
	"github.com/AppIpe/api-imovel/internal/usuario"
	"github.com/AppIpe/api-imovel/internal/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

const maxMemoriaMultipart = 32 << 20

// Senha inicial do usuário provisionado junto com a parte; deve ser
// trocada via PATCH /auth/senha.
const senhaInicial = "senha123"

type Handler struct {
	DB         *gorm.DB
	Store      *arquivo.Storage
	Repository Repository
	Usuarios   usuario.Repository
}

func NewHandler(db *gorm.DB, store *arquivo.Storage) *Handler {
	return &Handler{
		DB:         db,
		Store:      store,
		Repository: NewRepository(),
		Usuarios:   usuario.NewRepository(),
	}
}

// GET /partes
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	partes, err := h.Repository.ListarTodas(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar partes", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(partes)
}

// POST /partes — cria a parte, o usuário de login dela e os anexos.
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMemoriaMultipart); err != nil {
		http.Error(w, "Formulário inválido", http.StatusBadRequest)
		return
	}

	dto := criarParteDTO{
		Tipo:         r.FormValue("tipo"),
		Nome:         r.FormValue("nome"),
		Email:        r.FormValue("email"),
		Telefone:     r.FormValue("telefone"),
		RG:           r.FormValue("rg"),
		OrgaoEmissor: r.FormValue("orgaoEmissor"),
		CPF:          r.FormValue("cpf"),
	}
	if err := dto.Validar(); err != nil {
		http.Error(w, "Campos obrigatórios faltando ou inválidos", http.StatusBadRequest)
		return
	}

	anexos := r.MultipartForm.File["arquivos"]
	if err := arquivo.RegraAnexoParte.Validar(anexos); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.Usuarios.BuscarPorEmail(h.DB, dto.Email); err == nil {
		http.Error(w, "Já existe um usuário com este email", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashSenha(senhaInicial)
	if err != nil {
		http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
		return
	}

	p := &Parte{
		Tipo:         dto.Tipo,
		Nome:         dto.Nome,
		Email:        dto.Email,
		Telefone:     dto.Telefone,
		RG:           dto.RG,
		OrgaoEmissor: dto.OrgaoEmissor,
		CPF:          dto.CPF,
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Falha ao iniciar transação", http.StatusInternalServerError)
		return
	}

	if err := h.Repository.Criar(tx, p); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao salvar parte", http.StatusInternalServerError)
		return
	}

	u := &usuario.Usuario{
		Email:   p.Email,
		Senha:   hash,
		Nome:    p.Nome,
		Papel:   p.Tipo,
		ParteID: &p.ID,
	}
	if err := h.Usuarios.Salvar(tx, u); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao criar usuário da parte", http.StatusInternalServerError)
		return
	}

	for _, fh := range anexos {
		if _, err := arquivo.Anexar(tx, h.Store, fh, "parte", p.ID, arquivo.TipoAnexo); err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao salvar anexo", http.StatusInternalServerError)
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

// PATCH /partes/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	p, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Parte não encontrada", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar parte", http.StatusInternalServerError)
		return
	}

	if err := r.ParseMultipartForm(maxMemoriaMultipart); err != nil {
		http.Error(w, "Formulário inválido", http.StatusBadRequest)
		return
	}

	if v := r.FormValue("tipo"); v != "" {
		p.Tipo = v
	}
	if v := r.FormValue("nome"); v != "" {
		p.Nome = v
	}
	if v := r.FormValue("email"); v != "" {
		p.Email = v
	}
	if _, ok := r.MultipartForm.Value["telefone"]; ok {
		p.Telefone = r.FormValue("telefone")
	}
	if _, ok := r.MultipartForm.Value["rg"]; ok {
		p.RG = r.FormValue("rg")
	}
	if _, ok := r.MultipartForm.Value["orgaoEmissor"]; ok {
		p.OrgaoEmissor = r.FormValue("orgaoEmissor")
	}
	if v := r.FormValue("cpf"); v != "" {
		p.CPF = v
	}

	anexos := r.MultipartForm.File["arquivos"]
	if err := arquivo.RegraAnexoParte.Validar(anexos); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx := h.DB.Begin()
	if tx.Error != nil {
		http.Error(w, "Falha ao iniciar transação", http.StatusInternalServerError)
		return
	}

	if err := h.Repository.Salvar(tx, p); err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao atualizar parte", http.StatusInternalServerError)
		return
	}
	for _, fh := range anexos {
		if _, err := arquivo.Anexar(tx, h.Store, fh, "parte", p.ID, arquivo.TipoAnexo); err != nil {
			_ = tx.Rollback()
			http.Error(w, "Erro ao salvar anexo", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		_ = tx.Rollback()
		http.Error(w, "Erro ao confirmar transação", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(p)
}

// DELETE /partes/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Deletar(h.DB, uint(id)); err != nil {
		http.Error(w, "Erro ao excluir parte", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
