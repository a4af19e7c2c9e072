package parte

// Parte é um proprietário ou comprador do imóvel. Pode ter um usuário
// de login associado (criado junto no cadastro).
type Parte struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Tipo         string `gorm:"size:50;not null" json:"tipo"` // "Proprietário" ou "Comprador"
	Nome         string `gorm:"not null" json:"nome"`
	Email        string `gorm:"size:255;not null" json:"email"`
	Telefone     string `gorm:"size:50" json:"telefone"`
	RG           string `gorm:"size:50" json:"rg"`
	OrgaoEmissor string `gorm:"size:50" json:"orgaoEmissor"`
	CPF          string `gorm:"size:14;not null" json:"cpf"`
}
