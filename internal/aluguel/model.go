package aluguel

import "github.com/AppIpe/api-imovel/internal/pagamento"

// Aluguel é a cobrança mensal de locação do imóvel.
type Aluguel struct {
	ID                 uint `gorm:"primaryKey" json:"id"`
	ImovelID           uint `gorm:"not null;index" json:"imovelId"`
	Mes                int  `gorm:"not null" json:"mes"` // 1-12
	Ano                int  `gorm:"not null" json:"ano"`
	pagamento.Cobranca `gorm:"embedded"`
}

// ProximoPeriodo calcula o (mês, ano) seguinte ao informado, virando o
// ano depois de dezembro.
func ProximoPeriodo(mes, ano int) (int, int) {
	mes++
	if mes > 12 {
		mes = 1
		ano++
	}
	return mes, ano
}
