package vertexai

import (
	"context"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"

	"github.com/versemix/versemix/pconf"
	"github.com/versemix/versemix/provider"
	"github.com/versemix/versemix/tts"
)

type textToSpeechModel struct {
	client *texttospeech.Client

	language string
	name     string

	speaking_rate float64
	pitch         float64

	format tts.Format
}

var _ tts.Model = (*textToSpeechModel)(nil)

func (g *textToSpeechModel) GenerateSpeech(ctx context.Context, text string) (*tts.AudioFile, error) {
	var encoding texttospeechpb.AudioEncoding

	switch g.format {
	case tts.FormatLINEAR16:
		encoding = texttospeechpb.AudioEncoding_LINEAR16
	case tts.FormatMP3:
		encoding = texttospeechpb.AudioEncoding_MP3
	case tts.FormatOGG:
		encoding = texttospeechpb.AudioEncoding_OGG_OPUS
	case tts.FormatALAW:
		encoding = texttospeechpb.AudioEncoding_ALAW
	case tts.FormatMULAW:
		encoding = texttospeechpb.AudioEncoding_MULAW
	default:
		return nil, tts.ErrUnsupportedFileFormat
	}

	req := texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},

		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: g.language,
			Name:         g.name,
		},

		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: encoding,
			SpeakingRate:  g.speaking_rate,
			Pitch:         g.pitch,
		},
	}

	resp, err := g.client.SynthesizeSpeech(ctx, &req)
	if err != nil {
		return nil, err
	}

	if len(resp.AudioContent) == 0 {
		return nil, tts.ErrNoAudioContent
	}

	return &tts.AudioFile{
		Format: g.format,
		Data:   resp.AudioContent,
	}, nil
}

// =================== Client ===================

var _ provider.TTSClient = (*googleTTSClient)(nil)

type googleTTSClient struct {
	client *texttospeech.Client
}

func (g *googleTTSClient) NewTTS(model string, config *tts.Config) (tts.Model, error) {
	if config == nil {
		config = &tts.Config{}
	}

	language := config.Language
	if language == "" {
		language = "en-US"
	}

	format := config.Format
	if format == "" {
		format = tts.FormatMP3
	}

	return &textToSpeechModel{
		client:        g.client,
		language:      language,
		name:          model,
		speaking_rate: config.SpeakingRate,
		pitch:         config.Pitch,
		format:        format,
	}, nil
}

func (g *googleTTSClient) Close() error {
	return g.client.Close()
}

func (*googleTTSClient) Name() string {
	return ProviderName
}

// =================== Provider ===================

var _ provider.TTSProvider = (*VertexAIProvider)(nil)

func (VertexAIProvider) NewTTSClient(ctx context.Context, configs ...pconf.Config) (provider.TTSClient, error) {
	client_config := pconf.GeneralConfig{}
	for i := range configs {
		configs[i].Apply(&client_config)
	}

	client, err := texttospeech.NewClient(ctx, client_config.GoogleClientOptions...)
	if err != nil {
		return nil, err
	}

	return &googleTTSClient{
		client: client,
	}, nil
}
