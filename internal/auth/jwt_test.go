package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AppIpe/api-imovel/internal/auth"
	"github.com/AppIpe/api-imovel/internal/pagamento"
)

func TestGerarEValidarToken(t *testing.T) {
	token, err := auth.GerarToken(7, "proprietario@teste.com", "Proprietário")
	require.NoError(t, err)

	claims, err := auth.ValidarToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "proprietario@teste.com", claims.Email)
	assert.Equal(t, "Proprietário", claims.Papel)
}

func TestValidarToken_Invalido(t *testing.T) {
	_, err := auth.ValidarToken("nao-e-um-jwt")
	assert.Error(t, err)
}

func TestMiddlewareAutenticacao(t *testing.T) {
	var papel pagamento.Papel
	var usuarioID uint
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		papel = auth.PapelDoContexto(r.Context())
		usuarioID = auth.UsuarioIDDoContexto(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("sem token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		auth.MiddlewareAutenticacao(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/partes", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token válido injeta identidade", func(t *testing.T) {
		token, err := auth.GerarToken(3, "comprador@teste.com", "Comprador")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/partes", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		auth.MiddlewareAutenticacao(next).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, pagamento.PapelComprador, papel)
		assert.Equal(t, uint(3), usuarioID)
	})
}

func TestSomenteProprietario(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctxComprador := context.WithValue(context.Background(), auth.CtxPapel, pagamento.PapelComprador)
	req := httptest.NewRequest(http.MethodDelete, "/api/partes/1", nil).WithContext(ctxComprador)
	rec := httptest.NewRecorder()
	auth.SomenteProprietario(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	ctxDono := context.WithValue(context.Background(), auth.CtxPapel, pagamento.PapelProprietario)
	req = httptest.NewRequest(http.MethodDelete, "/api/partes/1", nil).WithContext(ctxDono)
	rec = httptest.NewRecorder()
	auth.SomenteProprietario(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
