package ecs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// assertPanicsWith checks that fn panics with an error matching target.
func assertPanicsWith(t *testing.T, target error, fn func()) {
	t.Helper()

	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("expected panic matching %v", target)
			return
		}
		err, ok := r.(error)
		if !ok {
			t.Errorf("expected error panic, got %#v", r)
			return
		}
		assert.True(t, errors.Is(err, target), "got %v, want %v", err, target)
	}()

	fn()
}
