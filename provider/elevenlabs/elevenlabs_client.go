package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fastjson"

	"github.com/versemix/versemix/tts"
)

type ttsRequest struct {
	Text          string           `json:"text"`
	ModelID       string           `json:"model_id"`
	VoiceSettings ttsVoiceSettings `json:"voice_settings"`
	Seed          int              `json:"seed,omitempty"`
}

type ttsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           int     `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

type voiceListResponse struct {
	Voices []struct {
		VoiceID  string `json:"voice_id"`
		Name     string `json:"name"`
		Category string `json:"category"`
	} `json:"voices"`
}

type Voice struct {
	ID   string
	Name string
}

// =================== API Client ===================

type elevenlabsAPIClient struct {
	baseURL     string
	authHandler func(r *http.Request) error

	httpClient *http.Client
}

const elevenlabsBaseURL = "https://api.elevenlabs.io/v1"

// apiError pulls the "detail.message" field out of an elevenlabs error body.
// Bodies that don't parse fall back to the status-mapped sentinel alone.
func apiError(status int, body []byte) error {
	base := getErrorByStatus(status)

	var parser fastjson.Parser
	v, err := parser.ParseBytes(body)
	if err != nil {
		return base
	}

	if msg := v.GetStringBytes("detail", "message"); len(msg) > 0 {
		return &StatusError{Status: status, Message: string(msg), Err: base}
	}
	if msg := v.GetStringBytes("detail"); len(msg) > 0 {
		return &StatusError{Status: status, Message: string(msg), Err: base}
	}

	return base
}

func (c *elevenlabsAPIClient) RequestTTS(ctx context.Context, voiceid string, req ttsRequest) ([]byte, error) {
	url, err := url.JoinPath(c.baseURL, "/text-to-speech/"+voiceid)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	r, _ := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(data))

	if err := c.authHandler(r); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body)
	}

	if len(body) == 0 {
		return nil, tts.ErrNoAudioContent
	}

	return body, nil
}

func (c *elevenlabsAPIClient) RequestVoiceList(ctx context.Context) ([]Voice, error) {
	url, err := url.JoinPath(c.baseURL, "/voices")
	if err != nil {
		return nil, err
	}

	r, _ := http.NewRequestWithContext(ctx, "GET", url, nil)

	if err := c.authHandler(r); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp.StatusCode, body)
	}

	var voiceList voiceListResponse

	if err := json.Unmarshal(body, &voiceList); err != nil {
		return nil, err
	}

	var voices []Voice

	for _, v := range voiceList.Voices {
		voices = append(voices, Voice{
			ID:   v.VoiceID,
			Name: v.Name,
		})
	}

	return voices, nil
}

// ================================================

var elevenlabsHTTPClient *http.Client = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:    16,
		IdleConnTimeout: 30 * time.Second,
	},
}

func newClient(apikey string) (*elevenlabsAPIClient, error) {
	apikey = strings.TrimSpace(apikey)
	return &elevenlabsAPIClient{
		baseURL: elevenlabsBaseURL,
		authHandler: func(r *http.Request) error {
			r.Header.Set("Content-Type", "application/json")
			r.Header.Set("X-API-Key", apikey)
			return nil
		},
		httpClient: elevenlabsHTTPClient,
	}, nil
}
