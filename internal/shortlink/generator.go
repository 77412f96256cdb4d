package shortlink

import "github.com/jaevor/go-nanoid"

// Alphabet is the 62-symbol character set for generated ids.
const Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// DefaultIDLength is the length of generated ids.
const DefaultIDLength = 6

// IDGenerator produces a new random id on each call.
type IDGenerator func() string

// NewIDGenerator returns a generator drawing ids of the given length
// uniformly from Alphabet, backed by a cryptographically secure source.
func NewIDGenerator(length int) (IDGenerator, error) {
	if length <= 0 {
		length = DefaultIDLength
	}

	gen, err := nanoid.CustomASCII(Alphabet, length)
	if err != nil {
		return nil, err
	}

	return IDGenerator(gen), nil
}
