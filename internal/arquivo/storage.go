package arquivo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage grava e lê blobs em um diretório local. Cada arquivo recebe
// um nome gerado; o nome original fica apenas nos metadados.
type Storage struct {
	Dir string
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("criar diretório de uploads: %w", err)
	}
	return &Storage{Dir: dir}, nil
}

// Salvar persiste o conteúdo e devolve o nome gerado e o total de
// bytes gravados.
func (s *Storage) Salvar(nomeOriginal string, conteudo io.Reader) (string, int64, error) {
	ext := strings.ToLower(filepath.Ext(nomeOriginal))
	nome := uuid.NewString() + ext

	destino, err := os.Create(filepath.Join(s.Dir, nome))
	if err != nil {
		return "", 0, fmt.Errorf("criar arquivo: %w", err)
	}
	defer destino.Close()

	tamanho, err := io.Copy(destino, conteudo)
	if err != nil {
		_ = os.Remove(destino.Name())
		return "", 0, fmt.Errorf("gravar arquivo: %w", err)
	}
	return nome, tamanho, nil
}

// Abrir devolve o conteúdo de um blob salvo.
func (s *Storage) Abrir(caminho string) (*os.File, error) {
	return os.Open(filepath.Join(s.Dir, filepath.Base(caminho)))
}

// Remover apaga o blob do disco. Não é erro o arquivo já não existir.
func (s *Storage) Remover(caminho string) error {
	err := os.Remove(filepath.Join(s.Dir, filepath.Base(caminho)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
