package arquivo

import "time"

// Tipos de vínculo de um arquivo com sua entidade dona.
const (
	TipoAnexo       = "anexo"
	TipoContrato    = "contrato"
	TipoFotoCapa    = "foto_capa"
	TipoComprovante = "comprovante"
)

// Arquivo guarda os metadados de um upload; o conteúdo fica em disco
// sob o nome gerado em Caminho.
type Arquivo struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	NomeOriginal string    `gorm:"not null" json:"nomeOriginal"`
	Caminho      string    `gorm:"not null" json:"-"`
	Mime         string    `gorm:"not null" json:"mime"`
	Tamanho      int64     `gorm:"not null" json:"tamanho"`
	Entidade     string    `gorm:"size:50;not null;index:idx_arquivos_entidade" json:"entidade"`
	EntidadeID   uint      `gorm:"not null;index:idx_arquivos_entidade" json:"entidadeId"`
	Tipo         string    `gorm:"size:50" json:"tipo"`
	CriadoEm     time.Time `gorm:"autoCreateTime" json:"criadoEm"`
}
