package parcela

import (
	"errors"

	"github.com/AppIpe/api-imovel/internal/pagamento"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, p *Parcela) error
	BuscarPorID(db *gorm.DB, id uint) (*Parcela, error)
	ListarTodas(db *gorm.DB) ([]Parcela, error)
	UltimaDoImovel(db *gorm.DB, imovelID uint) (*Parcela, error)
	AtualizarCobranca(db *gorm.DB, id uint, versaoEsperada uint, c pagamento.Cobranca) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, p *Parcela) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Parcela, error) {
	var p Parcela
	err := db.First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) ListarTodas(db *gorm.DB) ([]Parcela, error) {
	var parcelas []Parcela
	err := db.Order("numero ASC").Find(&parcelas).Error
	return parcelas, err
}

func (r *repositoryImpl) UltimaDoImovel(db *gorm.DB, imovelID uint) (*Parcela, error) {
	var p Parcela
	err := db.Where("imovel_id = ?", imovelID).Order("numero DESC").First(&p).Error
	return &p, err
}

// AtualizarCobranca grava status, pago_em e comprovante de uma vez,
// protegido pela checagem de versão.
func (r *repositoryImpl) AtualizarCobranca(db *gorm.DB, id uint, versaoEsperada uint, c pagamento.Cobranca) error {
	res := db.Model(&Parcela{}).
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
		if err := db.First(&Parcela{}, id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return pagamento.ErrConflitoVersao
	}
	return nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Parcela{}, id).Error
}
