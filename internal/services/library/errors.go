package library

import "errors"

var (
	ErrBlankProfileName     = errors.New("profile name must not be blank")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrAudioNotFound        = errors.New("audio not found")
	ErrClipNotFound         = errors.New("clip not found")
	ErrUnsupportedExtension = errors.New("unsupported audio file extension")
)
