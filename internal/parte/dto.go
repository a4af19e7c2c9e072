package parte

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// criarParteDTO espelha os campos do formulário de cadastro.
type criarParteDTO struct {
	Tipo         string `validate:"required,oneof=Proprietário Comprador"`
	Nome         string `validate:"required"`
	Email        string `validate:"required,email"`
	Telefone     string
	RG           string
	OrgaoEmissor string
	CPF          string `validate:"required,min=11"`
}

func (d criarParteDTO) Validar() error {
	return validate.Struct(d)
}
