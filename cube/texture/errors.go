package texture

import "errors"

var (
	// ErrInvalidOptions is returned when generator options cannot produce a
	// decodable grid texture.
	ErrInvalidOptions = errors.New("texture: invalid generator options")

	// ErrFaceSet is returned when a face color assignment is unusable.
	ErrFaceSet = errors.New("texture: invalid face set")

	// ErrUnknownName is returned by the Parse* helpers.
	ErrUnknownName = errors.New("texture: unknown name")
)
