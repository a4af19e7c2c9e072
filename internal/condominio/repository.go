package condominio

import (
	"errors"

	"github.com/AppIpe/api-imovel/internal/pagamento"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, c *Condominio) error
	BuscarPorID(db *gorm.DB, id uint) (*Condominio, error)
	BuscarPorPeriodo(db *gorm.DB, mes, ano int) (*Condominio, error)
	ListarTodos(db *gorm.DB) ([]Condominio, error)
	UltimoDoImovel(db *gorm.DB, imovelID uint) (*Condominio, error)
	AtualizarCobranca(db *gorm.DB, id uint, versaoEsperada uint, c pagamento.Cobranca) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Condominio) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Condominio, error) {
	var c Condominio
	err := db.First(&c, id).Error
	return &c, err
}

func (r *repositoryImpl) BuscarPorPeriodo(db *gorm.DB, mes, ano int) (*Condominio, error) {
	var c Condominio
	err := db.Where("mes = ? AND ano = ?", mes, ano).First(&c).Error
	return &c, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Condominio, error) {
	var condominios []Condominio
	err := db.Order("ano DESC").Order("mes DESC").Find(&condominios).Error
	return condominios, err
}

func (r *repositoryImpl) UltimoDoImovel(db *gorm.DB, imovelID uint) (*Condominio, error) {
	var c Condominio
	err := db.Where("imovel_id = ?", imovelID).Order("ano DESC").Order("mes DESC").First(&c).Error
	return &c, err
}

func (r *repositoryImpl) AtualizarCobranca(db *gorm.DB, id uint, versaoEsperada uint, c pagamento.Cobranca) error {
	res := db.Model(&Condominio{}).
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
		if err := db.First(&Condominio{}, id).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			return gorm.ErrRecordNotFound
		}
		return pagamento.ErrConflitoVersao
	}
	return nil
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Condominio{}, id).Error
}
