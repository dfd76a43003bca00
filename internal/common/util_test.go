package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipeByteArray(t *testing.T) {
	pin := []byte("123456")
	WipeByteArray(pin)
	assert.Equal(t, make([]byte, 6), pin)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
	assert.NotPanics(t, func() { WipeByteArray([]byte{}) })
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"wrapped not found", fmt.Errorf("dish d1: %w", ErrorNotFound), ErrorNotFound, true},
		{"wrapped duplicate nickname", fmt.Errorf("add member: %w", ErrorAlreadyExists), ErrorAlreadyExists, true},
		{"duplicate is not missing", ErrorAlreadyExists, ErrorNotFound, false},
		{"expired is not invalid", ErrTokenExpired, ErrInvalidToken, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}
