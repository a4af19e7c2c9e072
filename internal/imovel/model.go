package imovel

import "github.com/shopspring/decimal"

// Imovel é o único imóvel administrado pela instalação. ValorAluguel é
// o valor canônico usado como padrão ao gerar novos aluguéis.
type Imovel struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	Nome              string          `gorm:"not null" json:"nome"`
	Endereco          string          `gorm:"not null" json:"endereco"`
	ValorImovel       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valorImovel"`
	ValorAluguel      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valorAluguel"`
	ContratoArquivoID *uint           `json:"contratoArquivoId"`
	FotoCapaID        *uint           `json:"fotoCapaId"`
}
