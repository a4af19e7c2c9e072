package usuario

import (
	"encoding/json"
	"net/http"

	"github.com/AppIpe/api-imovel/internal/auth"
	"github.com/AppIpe/api-imovel/internal/utils"

	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type alterarSenhaRequest struct {
	SenhaAtual string `json:"senhaAtual"`
	NovaSenha  string `json:"novaSenha"`
}

// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Payload inválido", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Senha == "" {
		http.Error(w, "Email e senha são obrigatórios", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmail(h.DB, req.Email)
	if err != nil {
		http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
		return
	}
	if !utils.VerificarSenha(user.Senha, req.Senha) {
		http.Error(w, "Credenciais inválidas", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(user.ID, user.Email, user.Papel)
	if err != nil {
		http.Error(w, "Erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"usuario": user,
		"token":   token,
	})
}

// PATCH /auth/senha
func (h *Handler) AlterarSenha(w http.ResponseWriter, r *http.Request) {
	userID := auth.UsuarioIDDoContexto(r.Context())

	var req alterarSenhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Payload inválido", http.StatusBadRequest)
		return
	}
	if req.SenhaAtual == "" || req.NovaSenha == "" {
		http.Error(w, "Senha atual e nova senha são obrigatórias", http.StatusBadRequest)
		return
	}
	if len(req.NovaSenha) < 6 {
		http.Error(w, "Nova senha deve ter no mínimo 6 caracteres", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "Usuário não encontrado", http.StatusNotFound)
		return
	}
	if !utils.VerificarSenha(user.Senha, req.SenhaAtual) {
		http.Error(w, "Senha atual incorreta", http.StatusUnauthorized)
		return
	}

	hash, err := utils.HashSenha(req.NovaSenha)
	if err != nil {
		http.Error(w, "Erro ao processar senha", http.StatusInternalServerError)
		return
	}
	if err := h.Repository.AtualizarSenha(h.DB, user.ID, hash); err != nil {
		http.Error(w, "Erro ao alterar senha", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"message": "Senha alterada com sucesso"})
}

// GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := auth.UsuarioIDDoContexto(r.Context())

	user, err := h.Repository.BuscarPorID(h.DB, userID)
	if err != nil {
		http.Error(w, "Usuário não encontrado", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}
