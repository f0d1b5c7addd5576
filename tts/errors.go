package tts

import "errors"

var (
	ErrUnsupportedFileFormat = errors.New("unsupported file format")
	ErrUnprocessableContent  = errors.New("unprocessable content")
	ErrNoAudioContent        = errors.New("no audio content")
)
