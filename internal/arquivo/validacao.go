package arquivo

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// RegraUpload limita quantidade, tamanho e extensões de um campo de
// upload. Cada rota define a sua.
type RegraUpload struct {
	MaxArquivos  int
	MaxTamanhoMB int64
	Extensoes    []string
}

var (
	// comprovante de pagamento de parcela/aluguel/condomínio
	RegraComprovante = RegraUpload{MaxArquivos: 1, MaxTamanhoMB: 2, Extensoes: []string{"pdf", "jpg", "jpeg", "png"}}
	// anexos de documentação de uma parte
	RegraAnexoParte = RegraUpload{MaxArquivos: 3, MaxTamanhoMB: 5, Extensoes: []string{"pdf", "zip", "jpeg", "jpg", "png", "doc", "docx", "rtf"}}
	// contrato do imóvel
	RegraContrato = RegraUpload{MaxArquivos: 1, MaxTamanhoMB: 10, Extensoes: []string{"pdf", "doc", "docx", "rtf"}}
	// foto de capa do imóvel
	RegraFotoCapa = RegraUpload{MaxArquivos: 1, MaxTamanhoMB: 10, Extensoes: []string{"jpeg", "jpg", "png"}}
	// anexos gerais do imóvel
	RegraAnexoImovel = RegraUpload{MaxArquivos: 10, MaxTamanhoMB: 20, Extensoes: []string{"pdf", "zip", "jpeg", "jpg", "png", "doc", "docx", "rtf"}}
)

// Validar confere os uploads contra a regra antes de qualquer gravação.
func (r RegraUpload) Validar(arquivos []*multipart.FileHeader) error {
	if len(arquivos) > r.MaxArquivos {
		return fmt.Errorf("máximo de %d arquivo(s) permitido(s)", r.MaxArquivos)
	}

	for _, fh := range arquivos {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
		if ext == "" || !r.extensaoPermitida(ext) {
			return fmt.Errorf("tipo de arquivo não permitido: %s. Tipos aceitos: %s",
				fh.Filename, strings.Join(r.Extensoes, ", "))
		}
		if fh.Size > r.MaxTamanhoMB*1024*1024 {
			return fmt.Errorf("arquivo muito grande: %s. Tamanho máximo: %dMB",
				fh.Filename, r.MaxTamanhoMB)
		}
	}
	return nil
}

func (r RegraUpload) extensaoPermitida(ext string) bool {
	for _, e := range r.Extensoes {
		if e == ext {
			return true
		}
	}
	return false
}
