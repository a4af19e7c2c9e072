package condominio

import "github.com/AppIpe/api-imovel/internal/pagamento"

// Condominio é a taxa condominial mensal do imóvel.
type Condominio struct {
	ID                 uint `gorm:"primaryKey" json:"id"`
	ImovelID           uint `gorm:"not null;index" json:"imovelId"`
	Mes                int  `gorm:"not null" json:"mes"` // 1-12
	Ano                int  `gorm:"not null" json:"ano"`
	pagamento.Cobranca `gorm:"embedded"`
}
