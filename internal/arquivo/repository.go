package arquivo

import (
	"mime/multipart"

	"gorm.io/gorm"
)

type Repository interface {
	Criar(db *gorm.DB, a *Arquivo) error
	BuscarPorID(db *gorm.DB, id uint) (*Arquivo, error)
	ListarPorEntidade(db *gorm.DB, entidade string, entidadeID uint) ([]Arquivo, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, a *Arquivo) error {
	return db.Create(a).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Arquivo, error) {
	var a Arquivo
	err := db.First(&a, id).Error
	return &a, err
}

func (r *repositoryImpl) ListarPorEntidade(db *gorm.DB, entidade string, entidadeID uint) ([]Arquivo, error) {
	var arquivos []Arquivo
	err := db.Where("entidade = ? AND entidade_id = ?", entidade, entidadeID).
		Order("criado_em DESC").
		Find(&arquivos).Error
	return arquivos, err
}

func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	return db.Delete(&Arquivo{}, id).Error
}

// Anexar grava o blob no storage e insere os metadados usando o db
// recebido (que pode ser uma transação em andamento).
func Anexar(db *gorm.DB, store *Storage, fh *multipart.FileHeader, entidade string, entidadeID uint, tipo string) (*Arquivo, error) {
	origem, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer origem.Close()

	caminho, tamanho, err := store.Salvar(fh.Filename, origem)
	if err != nil {
		return nil, err
	}

	a := &Arquivo{
		NomeOriginal: fh.Filename,
		Caminho:      caminho,
		Mime:         fh.Header.Get("Content-Type"),
		Tamanho:      tamanho,
		Entidade:     entidade,
		EntidadeID:   entidadeID,
		Tipo:         tipo,
	}
	if err := db.Create(a).Error; err != nil {
		_ = store.Remover(caminho)
		return nil, err
	}
	return a, nil
}
