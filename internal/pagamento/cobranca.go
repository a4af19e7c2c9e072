package pagamento

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cobranca carrega os campos de pagamento compartilhados por Parcela,
// Aluguel e Condominio. Embutida via GORM nos três modelos.
type Cobranca struct {
	Valor         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valor"`
	Status        Status          `gorm:"size:30;not null;default:'pendente';index" json:"status"`
	PagoEm        *time.Time      `json:"pagoEm"`
	ComprovanteID *uint           `json:"comprovanteId"`
	// Versao protege contra lost updates entre o Comprador informando
	// e o Proprietário confirmando o mesmo registro.
	Versao uint `gorm:"not null;default:0" json:"versao"`
}

// NovaCobranca monta uma cobrança recém-criada, sempre pendente.
func NovaCobranca(valor decimal.Decimal) (Cobranca, error) {
	if err := ValidarValor(valor); err != nil {
		return Cobranca{}, err
	}
	return Cobranca{Valor: valor, Status: StatusPendente}, nil
}

// ValidarValor rejeita valores não positivos.
func ValidarValor(valor decimal.Decimal) error {
	if !valor.IsPositive() {
		return ErrValorNaoPositivo
	}
	return nil
}

// TemComprovante informa se já existe comprovante vinculado.
func (c *Cobranca) TemComprovante() bool {
	return c.ComprovanteID != nil
}
