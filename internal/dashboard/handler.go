package dashboard

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/AppIpe/api-imovel/internal/aluguel"
	"github.com/AppIpe/api-imovel/internal/condominio"
	"github.com/AppIpe/api-imovel/internal/pagamento"
	"github.com/AppIpe/api-imovel/internal/parcela"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Handler struct {
	DB          *gorm.DB
	Parcelas    parcela.Repository
	Alugueis    aluguel.Repository
	Condominios condominio.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:          db,
		Parcelas:    parcela.NewRepository(),
		Alugueis:    aluguel.NewRepository(),
		Condominios: condominio.NewRepository(),
	}
}

type resumoParcela struct {
	Numero     int              `json:"numero"`
	Valor      decimal.Decimal  `json:"valor"`
	Vencimento time.Time        `json:"vencimento"`
	Status     pagamento.Status `json:"status"`
}

type statsDTO struct {
	TotalParcelas      int                    `json:"totalParcelas"`
	ParcelasPagas      int                    `json:"parcelasPagas"`
	ParcelasPendentes  int                    `json:"parcelasPendentes"`
	ValorTotalParcelas decimal.Decimal        `json:"valorTotalParcelas"`
	ValorPago          decimal.Decimal        `json:"valorPago"`
	ProximoVencimento  *time.Time             `json:"proximoVencimento"`
	Ultimas5Parcelas   []resumoParcela        `json:"ultimas5Parcelas"`
	AluguelMesAtual    *aluguel.Aluguel       `json:"aluguelMesAtual"`
	CondominioMesAtual *condominio.Condominio `json:"condominioMesAtual"`
}

// GET /dashboard/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	parcelas, err := h.Parcelas.ListarTodas(h.DB)
	if err != nil {
		http.Error(w, "Erro ao montar estatísticas", http.StatusInternalServerError)
		return
	}

	dto := statsDTO{
		TotalParcelas:      len(parcelas),
		ValorTotalParcelas: decimal.Zero,
		ValorPago:          decimal.Zero,
		Ultimas5Parcelas:   []resumoParcela{},
	}

	for _, p := range parcelas {
		dto.ValorTotalParcelas = dto.ValorTotalParcelas.Add(p.Valor)
		if p.Status == pagamento.StatusPago {
			dto.ParcelasPagas++
			dto.ValorPago = dto.ValorPago.Add(p.Valor)
			continue
		}
		if dto.ProximoVencimento == nil || p.Vencimento.Before(*dto.ProximoVencimento) {
			vencimento := p.Vencimento
			dto.ProximoVencimento = &vencimento
		}
	}
	dto.ParcelasPendentes = dto.TotalParcelas - dto.ParcelasPagas

	inicio := len(parcelas) - 5
	if inicio < 0 {
		inicio = 0
	}
	for _, p := range parcelas[inicio:] {
		dto.Ultimas5Parcelas = append(dto.Ultimas5Parcelas, resumoParcela{
			Numero:     p.Numero,
			Valor:      p.Valor,
			Vencimento: p.Vencimento,
			Status:     p.Status,
		})
	}

	agora := time.Now()
	if a, err := h.Alugueis.BuscarPorPeriodo(h.DB, int(agora.Month()), agora.Year()); err == nil {
		dto.AluguelMesAtual = a
	}
	if c, err := h.Condominios.BuscarPorPeriodo(h.DB, int(agora.Month()), agora.Year()); err == nil {
		dto.CondominioMesAtual = c
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto)
}
