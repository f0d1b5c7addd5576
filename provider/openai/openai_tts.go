package openai

import (
	"context"
	"errors"
	"io"

	"github.com/versemix/versemix/tts"

	"github.com/sashabaranov/go-openai"
)

var _ tts.Model = (*openAITextToSpeech)(nil)

type openAITextToSpeech struct {
	client *openai.Client

	model openai.SpeechModel
	voice openai.SpeechVoice
	speed float64

	format tts.Format
}

func (g *openAITextToSpeech) GenerateSpeech(ctx context.Context, text string) (*tts.AudioFile, error) {
	var encoding openai.SpeechResponseFormat

	switch g.format {
	case tts.FormatMP3:
		encoding = openai.SpeechResponseFormatMp3
	case tts.FormatOGG:
		encoding = openai.SpeechResponseFormatOpus
	case tts.FormatAAC:
		encoding = openai.SpeechResponseFormatAac
	case tts.FormatFLAC:
		encoding = openai.SpeechResponseFormatFlac
	case tts.FormatWAV:
		encoding = openai.SpeechResponseFormatWav
	case tts.FormatLINEAR16:
		encoding = openai.SpeechResponseFormatPcm
	default:
		return nil, tts.ErrUnsupportedFileFormat
	}

	resp, err := g.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          g.model,
		Voice:          g.voice,
		Speed:          g.speed,
		ResponseFormat: encoding,
		Input:          text,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Close()

	file, err := io.ReadAll(resp)
	if err != nil {
		return nil, err
	}

	return &tts.AudioFile{
		Format: g.format,
		Data:   file,
	}, nil
}

func (g *OpenAIClient) NewTTS(model string, config *tts.Config) (tts.Model, error) {
	if config == nil {
		return nil, errors.New("config is nil")
	}

	voice := openai.SpeechVoice(config.VoiceID)
	if voice == "" {
		voice = openai.VoiceAlloy
	}

	format := config.Format
	if format == "" {
		format = tts.FormatMP3
	}

	speed := config.SpeakingRate
	if speed == 0 {
		speed = 1.0
	}

	return &openAITextToSpeech{
		client: g.client,
		model:  openai.SpeechModel(model),
		voice:  voice,
		speed:  speed,
		format: format,
	}, nil
}
