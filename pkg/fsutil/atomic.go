// Package fsutil utilidades de escritura de artefactos en disco.
package fsutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic escribe en un temporal del mismo directorio y renombra: un lector
// concurrente ve el archivo anterior completo o el nuevo completo, nunca uno parcial.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if path == "" {
		return fmt.Errorf("fsutil: ruta vacía")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("fsutil: crear directorio: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("fsutil: crear temporal: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op tras el rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("fsutil: escribir temporal: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("fsutil: sync temporal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("fsutil: cerrar temporal: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("fsutil: permisos: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("fsutil: renombrar: %w", err)
	}
	return nil
}

// WriteJSONAtomic serializa v con indentación y lo escribe con WriteFileAtomic.
func WriteJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("fsutil: serializar json: %w", err)
	}
	return WriteFileAtomic(path, append(data, '\n'), 0o644)
}

// ResetDir elimina y vuelve a crear dir (re-ejecuciones sobrescriben artefactos).
func ResetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("fsutil: limpiar %s: %w", dir, err)
	}
	return os.MkdirAll(dir, 0o755)
}
