package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jhoicas/detailing-stock-api/internal/application/reports"
)

var _ reports.BackupStore = (*BackupStore)(nil)

// BackupStore guarda y lista respaldos XLSX en un directorio local.
type BackupStore struct {
	dir string
}

// NewBackupStore construye el store; crea el directorio si no existe.
func NewBackupStore(dir string) (*BackupStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("backup: crear directorio %s: %w", dir, err)
	}
	return &BackupStore{dir: dir}, nil
}

// Save escribe un respaldo y devuelve su ruta absoluta.
func (s *BackupStore) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("backup: escribir %s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}

// List lista los respaldos .xlsx del directorio, más recientes primero.
func (s *BackupStore) List() ([]reports.BackupFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("backup: leer directorio: %w", err)
	}
	var files []reports.BackupFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".xlsx") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, reports.BackupFile{
			Filename: e.Name(),
			Size:     info.Size(),
			Created:  info.ModTime(),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Created.After(files[j].Created) })
	return files, nil
}
