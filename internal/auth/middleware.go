package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/AppIpe/api-imovel/internal/pagamento"
)

type ctxKey string

const (
	CtxUsuarioID ctxKey = "usuarioID"
	CtxEmail     ctxKey = "email"
	CtxPapel     ctxKey = "papel"
)

// MiddlewareAutenticacao resolve o Bearer token e injeta identidade e
// papel no contexto da requisição.
func MiddlewareAutenticacao(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		h := r.Header.Get("Authorization")
		if h == "" || !strings.HasPrefix(h, "Bearer ") {
			http.Error(w, "Token não fornecido", http.StatusUnauthorized)
			return
		}
		claims, err := ValidarToken(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			http.Error(w, "Token inválido ou expirado", http.StatusUnauthorized)
			return
		}
		papel, err := pagamento.PapelDeString(claims.Papel)
		if err != nil {
			http.Error(w, "Token inválido ou expirado", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), CtxUsuarioID, claims.UserID)
		ctx = context.WithValue(ctx, CtxEmail, claims.Email)
		ctx = context.WithValue(ctx, CtxPapel, papel)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SomenteProprietario bloqueia a rota para quem não é o proprietário.
func SomenteProprietario(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if PapelDoContexto(r.Context()) != pagamento.PapelProprietario {
			http.Error(w, "Acesso negado. Apenas proprietários podem realizar esta ação", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// PapelDoContexto lê o papel resolvido pelo middleware. Na ausência de
// autenticação devolve Comprador, o papel de menor privilégio.
func PapelDoContexto(ctx context.Context) pagamento.Papel {
	if p, ok := ctx.Value(CtxPapel).(pagamento.Papel); ok {
		return p
	}
	return pagamento.PapelComprador
}

// UsuarioIDDoContexto lê o id do usuário autenticado.
func UsuarioIDDoContexto(ctx context.Context) uint {
	if id, ok := ctx.Value(CtxUsuarioID).(uint); ok {
		return id
	}
	return 0
}
