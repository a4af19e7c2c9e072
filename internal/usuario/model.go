package usuario

// Usuario é a identidade de login vinculada (ou não) a uma parte.
type Usuario struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Email   string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Senha   string `gorm:"not null" json:"-"`
	Nome    string `gorm:"not null" json:"nome"`
	Papel   string `gorm:"size:50;not null" json:"papel"`
	ParteID *uint  `json:"parteId"`
}
