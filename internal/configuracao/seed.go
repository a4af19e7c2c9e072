package configuracao

import (
	"math/rand"
	"time"

	"github.com/AppIpe/api-imovel/internal/aluguel"
	"github.com/AppIpe/api-imovel/internal/condominio"
	"github.com/AppIpe/api-imovel/internal/imovel"
	"github.com/AppIpe/api-imovel/internal/pagamento"
	"github.com/AppIpe/api-imovel/internal/parcela"
	"github.com/AppIpe/api-imovel/internal/parte"
	"github.com/AppIpe/api-imovel/internal/usuario"
	"github.com/AppIpe/api-imovel/internal/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedDemo carrega os dados de demonstração: dois logins, duas partes,
// o imóvel, 8 parcelas (3 pagas), 6 aluguéis e 6 condomínios (4 pagos
// cada). Não faz nada se já existirem usuários.
func SeedDemo(db *gorm.DB) error {
	var total int64
	if err := db.Model(&usuario.Usuario{}).Count(&total).Error; err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	hash, err := utils.HashSenha("senha123")
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		usuarios := []usuario.Usuario{
			{Email: "proprietario@teste.com", Senha: hash, Nome: "João Silva", Papel: pagamento.NomePapelProprietario},
			{Email: "comprador@teste.com", Senha: hash, Nome: "Maria Santos", Papel: pagamento.NomePapelComprador},
		}
		if err := tx.Create(&usuarios).Error; err != nil {
			return err
		}

		partes := []parte.Parte{
			{
				Tipo: pagamento.NomePapelProprietario, Nome: "Carlos Eduardo Silva",
				Email: "carlos@email.com", Telefone: "(11) 98765-4321",
				CPF: "123.456.789-00", RG: "12.345.678-9", OrgaoEmissor: "SSP/SP",
			},
			{
				Tipo: pagamento.NomePapelComprador, Nome: "Ana Paula Oliveira",
				Email: "ana@email.com", Telefone: "(11) 91234-5678",
				CPF: "987.654.321-00", RG: "98.765.432-1", OrgaoEmissor: "SSP/SP",
			},
		}
		if err := tx.Create(&partes).Error; err != nil {
			return err
		}

		obj := imovel.Imovel{
			Nome:         "Casa no Centro",
			Endereco:     "Rua das Flores, 123 - Centro - São Paulo/SP - CEP 01234-567",
			ValorImovel:  decimal.NewFromFloat(450000),
			ValorAluguel: decimal.NewFromFloat(2500),
		}
		if err := tx.Create(&obj).Error; err != nil {
			return err
		}

		base := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
		for i := 1; i <= 8; i++ {
			vencimento := base.AddDate(0, i-1, 0)
			p := parcela.Parcela{
				ImovelID:   obj.ID,
				Numero:     i,
				Vencimento: vencimento,
				Cobranca:   pagamento.Cobranca{Valor: decimal.NewFromFloat(5625), Status: pagamento.StatusPendente},
			}
			if i <= 3 {
				pagoEm := vencimento.AddDate(0, 0, -2)
				p.Status = pagamento.StatusPago
				p.PagoEm = &pagoEm
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}

		for i := 1; i <= 6; i++ {
			pagoEm := time.Date(2024, time.Month(i), 10, 0, 0, 0, 0, time.UTC)
			a := aluguel.Aluguel{
				ImovelID: obj.ID,
				Mes:      i,
				Ano:      2024,
				Cobranca: pagamento.Cobranca{Valor: decimal.NewFromFloat(2500), Status: pagamento.StatusPendente},
			}
			if i <= 4 {
				a.Status = pagamento.StatusPago
				a.PagoEm = &pagoEm
			}
			if err := tx.Create(&a).Error; err != nil {
				return err
			}

			c := condominio.Condominio{
				ImovelID: obj.ID,
				Mes:      i,
				Ano:      2024,
				Cobranca: pagamento.Cobranca{
					Valor:  decimal.NewFromFloat(450 + rand.Float64()*100).Round(2),
					Status: pagamento.StatusPendente,
				},
			}
			if i <= 4 {
				c.Status = pagamento.StatusPago
				c.PagoEm = &pagoEm
			}
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
