package uploader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalDir сохраняет файлы в локальный каталог с аудио
type LocalDir string

// Upload копирует содержимое reader в файл name. Запись атомарна: файл появляется
// в каталоге только целиком.
func (d LocalDir) Upload(ctx context.Context, reader io.Reader, name string) (string, error) {
	dir := string(d)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ошибка создания каталога: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("ошибка создания файла: %w", err)
	}
	defer os.Remove(tmp.Name())

	_, err = io.Copy(tmp, contextReader{ctx: ctx, r: reader})
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("ошибка записи: %w", err)
	}

	target := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("ошибка сохранения: %w", err)
	}
	return target, nil
}

// contextReader прерывает чтение при отмене контекста
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
