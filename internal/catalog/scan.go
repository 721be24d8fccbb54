package catalog

import (
	"fmt"
	"os"
)

// ScanDir возвращает имена обычных файлов каталога с аудиозаписями
func ScanDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// Load сканирует каталог и строит по нему каталог треков
func Load(dir string) (*Catalog, error) {
	names, err := ScanDir(dir)
	if err != nil {
		return nil, err
	}
	return New(names), nil
}
