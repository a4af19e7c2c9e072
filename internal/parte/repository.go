package parte

import "gorm.io/gorm"

type Repository interface {
	Criar(db *gorm.DB, p *Parte) error
	BuscarPorID(db *gorm.DB, id uint) (*Parte, error)
	ListarTodas(db *gorm.DB) ([]Parte, error)
	Salvar(db *gorm.DB, p *Parte) error
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, p *Parte) error {
	return db.Create(p).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Parte, error) {
	var p Parte
	err := db.First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) ListarTodas(db *gorm.DB) ([]Parte, error) {
	var partes []Parte
	err := db.Order("id DESC").Find(&partes).Error
	return partes, err
}

func (r *repositoryImpl) Salvar(db *gorm.DB, p *Parte) error {
	return db.Save(p).Error
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Parte{}, id).Error
}
