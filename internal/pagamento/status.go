package pagamento

import "fmt"

// Status é o ciclo de vida de qualquer cobrança do imóvel
// (parcela, aluguel ou condomínio).
type Status string

const (
	StatusPendente           Status = "pendente"
	StatusPagamentoInformado Status = "pagamento_informado"
	StatusPago               Status = "pago"
)

// Valido indica se o valor veio de uma requisição bem formada.
func (s Status) Valido() bool {
	switch s {
	case StatusPendente, StatusPagamentoInformado, StatusPago:
		return true
	}
	return false
}

// Papel é o papel do usuário autenticado. Enum fechado em vez de
// comparação de strings espalhada pelos handlers.
type Papel int

const (
	PapelProprietario Papel = iota
	PapelComprador
)

const (
	NomePapelProprietario = "Proprietário"
	NomePapelComprador    = "Comprador"
)

func (p Papel) String() string {
	if p == PapelProprietario {
		return NomePapelProprietario
	}
	return NomePapelComprador
}

// PapelDeString converte o papel armazenado no banco/token.
func PapelDeString(s string) (Papel, error) {
	switch s {
	case NomePapelProprietario:
		return PapelProprietario, nil
	case NomePapelComprador:
		return PapelComprador, nil
	}
	return 0, fmt.Errorf("papel desconhecido: %q", s)
}
