package imovel

import "gorm.io/gorm"

type Repository interface {
	BuscarUnico(db *gorm.DB) (*Imovel, error)
	Criar(db *gorm.DB, i *Imovel) error
	Salvar(db *gorm.DB, i *Imovel) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarUnico(db *gorm.DB) (*Imovel, error) {
	var i Imovel
	err := db.First(&i).Error
	return &i, err
}

func (r *repositoryImpl) Criar(db *gorm.DB, i *Imovel) error {
	return db.Create(i).Error
}

func (r *repositoryImpl) Salvar(db *gorm.DB, i *Imovel) error {
	return db.Save(i).Error
}
