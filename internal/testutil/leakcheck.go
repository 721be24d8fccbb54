// Package testutil содержит вспомогательные функции для тестов
package testutil

import (
	"testing"

	"go.uber.org/goleak"
)

// VerifyNoLeaks вызывается через defer в тестах, которые запускают горутины
func VerifyNoLeaks(t *testing.T, opts ...goleak.Option) {
	t.Helper()
	goleak.VerifyNone(t, opts...)
}
