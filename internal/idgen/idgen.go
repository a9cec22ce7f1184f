// Package idgen короткие идентификаторы запросов на nanoid.
package idgen

import (
	nanoid "github.com/matoous/go-nanoid/v2"
)

const (
	RequestPrefix = "req-"
	alphabet      = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	length        = 12
)

// RequestID генератор для echo RequestID middleware.
// Ошибка nanoid возможна только при сбое crypto/rand, тогда id пустой.
func RequestID() string {
	id, err := nanoid.Generate(alphabet, length)
	if err != nil {
		return ""
	}
	return RequestPrefix + id
}
