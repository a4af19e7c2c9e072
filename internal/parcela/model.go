package parcela

import (
	"time"

	"github.com/AppIpe/api-imovel/internal/pagamento"
)

// Parcela é uma prestação da venda do imóvel.
type Parcela struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	ImovelID           uint      `gorm:"not null;index" json:"imovelId"`
	Numero             int       `gorm:"not null" json:"numero"`
	Vencimento         time.Time `gorm:"not null" json:"vencimento"`
	pagamento.Cobranca `gorm:"embedded"`
}
