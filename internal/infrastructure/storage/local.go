// Package storage implementa ports.PhotoStore sobre disco local y sobre un bucket S3/MinIO.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/eva-blog/blog-api/internal/application/ports"
)

var _ ports.PhotoStore = (*LocalStore)(nil)

// LocalStore guarda imágenes como archivos en un directorio plano.
type LocalStore struct {
	dir string // ruta absoluta
}

// NewLocalStore crea dir si no existe y devuelve el store.
func NewLocalStore(dir string) (*LocalStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("ruta de %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio %s: %w", abs, err)
	}
	return &LocalStore{dir: abs}, nil
}

// Save escribe content en un archivo nuevo. Falla si name ya existe.
func (s *LocalStore) Save(_ context.Context, name string, content io.Reader) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("crear %s: %w", name, err)
	}
	if _, err := io.Copy(f, content); err != nil {
		_ = f.Close()
		return fmt.Errorf("escribir %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cerrar %s: %w", name, err)
	}
	return nil
}

// Open abre name para lectura y devuelve su tamaño.
func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, int64, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, 0, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, 0, fmt.Errorf("%s es un directorio", name)
	}
	return f, info.Size(), nil
}

// Exists indica si name es un archivo regular legible.
func (s *LocalStore) Exists(_ context.Context, name string) bool {
	p, err := s.path(name)
	if err != nil {
		return false
	}
	f, err := os.Open(p)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	return err == nil && info.Mode().IsRegular()
}

// Delete borra name.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	return os.Remove(p)
}

// Location devuelve la ruta absoluta de name.
func (s *LocalStore) Location(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// path resuelve name dentro del directorio; rechaza nombres con separadores.
func (s *LocalStore) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return "", fmt.Errorf("nombre de archivo inválido %q: %w", name, os.ErrInvalid)
	}
	return filepath.Join(s.dir, name), nil
}
