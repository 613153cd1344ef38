package uploads

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage guarda arquivos enviados pelos clientes
type Storage interface {
	Save(ctx context.Context, name string, content io.Reader) error
}

// DiskStorage grava os arquivos num diretório local servido como estático
type DiskStorage struct {
	dir string
}

// NewDiskStorage cria o diretório de destino caso não exista
func NewDiskStorage(dir string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &DiskStorage{dir: dir}, nil
}

func (s *DiskStorage) Dir() string {
	return s.dir
}

// Save grava content em dir/name. O arquivo parcial é removido em caso de erro.
func (s *DiskStorage) Save(ctx context.Context, name string, content io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := filepath.Join(s.dir, filepath.Base(name))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}
