package pagamento

import "time"

// Aplicar valida e executa uma transição de status sobre a cobrança.
//
// Tabela de transições:
//
//	pendente            -> pagamento_informado  qualquer papel, exige comprovante (novo ou existente)
//	pendente            -> pago                 somente proprietário
//	pagamento_informado -> pago                 somente proprietário
//	pago                -> pagamento_informado  somente proprietário, exige comprovante (novo ou existente)
//	pagamento_informado -> pendente             somente proprietário (comprovante mantido)
//
// Pedir o status atual de novo é revalidado como transição normal; em
// particular, reconfirmar "pago" recarimba PagoEm. Pular de "pago"
// direto para "pendente" não é permitido.
//
// A função só altera a cobrança depois de todas as validações, então
// uma falha nunca deixa efeito parcial.
func Aplicar(c *Cobranca, alvo Status, papel Papel, novoComprovanteID *uint, agora time.Time) error {
	if !alvo.Valido() {
		return ErrStatusDesconhecido
	}

	switch alvo {
	case StatusPago:
		if papel != PapelProprietario {
			return ErrSomenteProprietario
		}

	case StatusPagamentoInformado:
		if c.Status == StatusPago && papel != PapelProprietario {
			// reversão de pagamento confirmado
			return ErrSomenteProprietario
		}
		// vale também na reversão: um pago confirmado direto de
		// pendente não carrega comprovante
		if novoComprovanteID == nil && !c.TemComprovante() {
			return ErrComprovanteObrigatorio
		}

	case StatusPendente:
		if c.Status == StatusPago {
			return ErrReversaoDireta
		}
		if papel != PapelProprietario {
			return ErrSomenteProprietario
		}
	}

	if novoComprovanteID != nil {
		c.ComprovanteID = novoComprovanteID
	}
	c.Status = alvo
	if alvo == StatusPago {
		pagoEm := agora
		c.PagoEm = &pagoEm
	} else {
		c.PagoEm = nil
	}
	return nil
}
