package configuracao

import "time"

// Configuracao marca se o assistente de primeira configuração já foi
// concluído nesta instalação.
type Configuracao struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	ConfiguracaoInicial bool       `gorm:"not null;default:false" json:"configuracaoInicial"`
	DataInicioContrato  *time.Time `json:"dataInicioContrato"`
	CriadoEm            time.Time  `gorm:"autoCreateTime" json:"criadoEm"`
}
