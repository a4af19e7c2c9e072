package aluguel

import (
	"errors"

	"github.com/AppIpe/api-imovel/internal/pagamento"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, a *Aluguel) error
	BuscarPorID(db *gorm.DB, id uint) (*Aluguel, error)
	BuscarPorPeriodo(db *gorm.DB, mes, ano int) (*Aluguel, error)
	ListarTodos(db *gorm.DB) ([]Aluguel, error)
	UltimoDoImovel(db *gorm.DB, imovelID uint) (*Aluguel, error)
	AtualizarCobranca(db *gorm.DB, id uint, versaoEsperada uint, c pagamento.Cobranca) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, a *Aluguel) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Aluguel, error) {
	var a Aluguel
	err := db.First(&a, id).Error
	return &a, err
}

func (r *repositoryImpl) BuscarPorPeriodo(db *gorm.DB, mes, ano int) (*Aluguel, error) {
	var a Aluguel
	err := db.Where("mes = ? AND ano = ?", mes, ano).First(&a).Error
	return &a, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Aluguel, error) {
	var alugueis []Aluguel
	err := db.Order("ano DESC").Order("mes DESC").Find(&alugueis).Error
	return alugueis, err
}

func (r *repositoryImpl) UltimoDoImovel(db *gorm.DB, imovelID uint) (*Aluguel, error) {
	var a Aluguel
	err := db.Where("imovel_id = ?", imovelID).Order("ano DESC").Order("mes DESC").First(&a).Error
	return &a, err
}

func (r *repositoryImpl) AtualizarCobranca(db *gorm.DB, id uint, versaoEsperada uint, c pagamento.Cobranca) error {
	res := db.Model(&Aluguel{}).
		Where("id = ? AND versao = ?", id, versaoEsperada).
		Updates(map[string]interface{}{
			"status":         c.Status,
			"pago_em":        c.PagoEm,
			"comprovante_id": c.ComprovanteID,
			"versao":         versaoEsperada + 1,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if err := db.First(&Aluguel{}, id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return pagamento.ErrConflitoVersao
	}
	return nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Aluguel{}, id).Error
}
