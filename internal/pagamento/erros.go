package pagamento

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Erros de validação e permissão da máquina de status. Todos são
// detectados antes de qualquer escrita; uma transição que falha deixa
// o registro exatamente como estava.
var (
	ErrStatusDesconhecido       = errors.New("status inválido. Use 'pendente', 'pagamento_informado' ou 'pago'")
	ErrValorNaoPositivo         = errors.New("valor deve ser positivo")
	ErrComprovanteObrigatorio   = errors.New("é necessário anexar um comprovante para informar o pagamento")
	ErrSomenteProprietario      = errors.New("apenas o proprietário pode realizar esta alteração")
	ErrReversaoDireta           = errors.New("não é permitido voltar um pagamento confirmado direto para pendente")
	ErrConflitoVersao           = errors.New("o registro foi alterado por outra requisição; recarregue e tente novamente")
	ErrSomentePendenteExcluivel = errors.New("apenas registros pendentes podem ser excluídos")
)

// CodigoHTTP mapeia o erro para o status de resposta.
func CodigoHTTP(err error) int {
	switch {
	case errors.Is(err, ErrSomenteProprietario):
		return http.StatusForbidden
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflitoVersao):
		return http.StatusConflict
	case errors.Is(err, ErrStatusDesconhecido),
		errors.Is(err, ErrValorNaoPositivo),
		errors.Is(err, ErrComprovanteObrigatorio),
		errors.Is(err, ErrReversaoDireta),
		errors.Is(err, ErrSomentePendenteExcluivel):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
