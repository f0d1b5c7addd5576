package webapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/versemix/versemix/internal/mixer"
	"github.com/versemix/versemix/internal/scratch"
	"github.com/versemix/versemix/internal/webapi"
	"github.com/versemix/versemix/llm"
	"github.com/versemix/versemix/poem"
	"github.com/versemix/versemix/tts"
)

// ================= Fakes =================

type fakeMixer struct {
	output []byte
	err    error
	calls  int
}

func (f *fakeMixer) Mix(ctx context.Context, narrationPath, musicPath, outPath string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(outPath, f.output, 0o644)
}

var _ mixer.Mixer = (*fakeMixer)(nil)

type fakeLLM struct {
	text string
}

func (f *fakeLLM) GenerateText(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	return &llm.Response{Text: f.text, FinishReason: llm.FinishReasonStop}, nil
}
func (f *fakeLLM) Close() error { return nil }
func (f *fakeLLM) Name() string { return "fake" }

type fakeTTS struct {
	data []byte
	err  error
}

func (f *fakeTTS) GenerateSpeech(ctx context.Context, text string) (*tts.AudioFile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &tts.AudioFile{Format: tts.FormatMP3, Data: f.data}, nil
}

// ================= Helpers =================

type fixture struct {
	server     *webapi.Server
	mixer      *fakeMixer
	scratchDir string
	trackPath  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()

	scratchDir := filepath.Join(root, "scratch")
	mgr, err := scratch.NewManager(scratchDir)
	if err != nil {
		t.Fatal(err)
	}

	trackPath := filepath.Join(root, "ambient.mp3")
	if err := os.WriteFile(trackPath, []byte("background music"), 0o644); err != nil {
		t.Fatal(err)
	}

	mx := &fakeMixer{output: []byte("mixed audio bytes")}

	srv := webapi.NewServer(webapi.Options{
		Tracks: map[string]string{
			"ambient":    trackPath,
			"orchestral": filepath.Join(root, "missing.mp3"),
		},
		Scratch:  mgr,
		Mixer:    mx,
		Composer: poem.NewComposer(&fakeLLM{text: "line one\nline two"}),
		Speech:   &fakeTTS{data: []byte("speech audio")},
	})

	return &fixture{server: srv, mixer: mx, scratchDir: scratchDir, trackPath: trackPath}
}

func (f *fixture) scratchCount(t *testing.T) int {
	t.Helper()
	entries, err := os.ReadDir(f.scratchDir)
	if err != nil {
		t.Fatal(err)
	}
	return len(entries)
}

func mixRequest(t *testing.T, withAudio bool, musicChoice string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if withAudio {
		part, err := mw.CreateFormFile("voice_audio", "narration.mp3")
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte("narration bytes"))
	}
	if musicChoice != "" {
		mw.WriteField("musicChoice", musicChoice)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/mix", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v (%q)", err, rec.Body.String())
	}
	if body.Error == "" {
		t.Fatal("error body has empty message")
	}
	return body.Error
}

// ================= Mix =================

func TestMixSuccess(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, mixRequest(t, true, "ambient"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("content-type: got %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `inline; filename="final_mix.mp3"` {
		t.Errorf("content-disposition: got %q", cd)
	}

	body, _ := io.ReadAll(rec.Body)
	if !bytes.Equal(body, []byte("mixed audio bytes")) {
		t.Errorf("body: got %q", body)
	}
	if cl := rec.Header().Get("Content-Length"); cl != strconv.Itoa(len(body)) {
		t.Errorf("content-length: got %q, want %d", cl, len(body))
	}

	if n := f.scratchCount(t); n != 0 {
		t.Errorf("%d scratch files left behind", n)
	}
}

func TestMixWrongMethod(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/mix", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: got %d", rec.Code)
	}
	decodeError(t, rec)
}

func TestMixUnknownMusicChoice(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, mixRequest(t, true, "jazz"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rec.Code)
	}
	decodeError(t, rec)

	if n := f.scratchCount(t); n != 0 {
		t.Errorf("%d scratch files left behind", n)
	}
	if f.mixer.calls != 0 {
		t.Errorf("mixer invoked %d times", f.mixer.calls)
	}
}

func TestMixMissingVoiceAudio(t *testing.T) {
	f := newFixture(t)

	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, mixRequest(t, false, "ambient"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rec.Code)
	}
	decodeError(t, rec)

	// 400 must happen before any scratch file or external-process work.
	if n := f.scratchCount(t); n != 0 {
		t.Errorf("%d scratch files created", n)
	}
	if f.mixer.calls != 0 {
		t.Errorf("mixer invoked %d times", f.mixer.calls)
	}
}

func TestMixTrackFileMissing(t *testing.T) {
	f := newFixture(t)

	// "orchestral" is registered but its file does not exist: a
	// deployment fault, not a client error.
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, mixRequest(t, true, "orchestral"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rec.Code)
	}
	decodeError(t, rec)

	if n := f.scratchCount(t); n != 0 {
		t.Errorf("%d scratch files left behind", n)
	}
}

func TestMixProcessorFailure(t *testing.T) {
	f := newFixture(t)
	f.mixer.err = errors.New("ffmpeg mix: exit status 1: invalid data")

	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, mixRequest(t, true, "ambient"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rec.Code)
	}
	msg := decodeError(t, rec)
	if msg == "" {
		t.Error("empty processor error message")
	}

	if n := f.scratchCount(t); n != 0 {
		t.Errorf("%d scratch files left behind", n)
	}
}

func TestMixConcurrentRequests(t *testing.T) {
	f := newFixture(t)

	const n = 8
	done := make(chan *httptest.ResponseRecorder, n)
	for i := 0; i < n; i++ {
		go func() {
			rec := httptest.NewRecorder()
			f.server.Handler().ServeHTTP(rec, mixRequest(t, true, "ambient"))
			done <- rec
		}()
	}
	for i := 0; i < n; i++ {
		rec := <-done
		if rec.Code != http.StatusOK {
			t.Errorf("status: got %d", rec.Code)
		}
	}

	if got := f.scratchCount(t); got != 0 {
		t.Errorf("%d scratch files left behind", got)
	}
}

// ================= Poem =================

func TestPoem(t *testing.T) {
	f := newFixture(t)

	body, _ := json.Marshal(map[string]string{"text": "an old harbor"})
	req := httptest.NewRequest(http.MethodPost, "/api/poem", bytes.NewReader(body))

	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Poem  string   `json:"poem"`
		Lines []string `json:"lines"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Poem == "" || len(resp.Lines) != 2 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestPoemEmptyText(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/poem", bytes.NewReader([]byte(`{"text":""}`)))
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rec.Code)
	}
	decodeError(t, rec)
}

// ================= Speech =================

func TestSpeech(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/speech", bytes.NewReader([]byte(`{"text":"a poem"}`)))
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "audio/mpeg" {
		t.Errorf("content-type: got %q", ct)
	}
	if cl := rec.Header().Get("Content-Length"); cl != strconv.Itoa(rec.Body.Len()) {
		t.Errorf("content-length: got %q, want %d", cl, rec.Body.Len())
	}
	if rec.Body.Len() == 0 {
		t.Error("empty audio body")
	}
}

func TestSpeechFailure(t *testing.T) {
	root := t.TempDir()
	mgr, err := scratch.NewManager(filepath.Join(root, "scratch"))
	if err != nil {
		t.Fatal(err)
	}

	srv := webapi.NewServer(webapi.Options{
		Tracks:  map[string]string{"ambient": filepath.Join(root, "a.mp3")},
		Scratch: mgr,
		Mixer:   &fakeMixer{},
		Speech:  &fakeTTS{err: errors.New("voice service down")},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/speech", bytes.NewReader([]byte(`{"text":"a poem"}`)))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rec.Code)
	}
	decodeError(t, rec)
}

// ================= Timings / music =================

func TestTimings(t *testing.T) {
	f := newFixture(t)

	body, _ := json.Marshal(map[string]any{
		"lines":       []string{"short", "a much longer line"},
		"duration_ms": 10000,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/timings", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var timings []struct {
		Index      int   `json:"index"`
		StartMS    int64 `json:"start_ms"`
		DurationMS int64 `json:"duration_ms"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &timings); err != nil {
		t.Fatal(err)
	}
	if len(timings) != 2 {
		t.Fatalf("got %d timings", len(timings))
	}
	if timings[0].DurationMS >= timings[1].DurationMS {
		t.Errorf("longer line should get more time: %+v", timings)
	}
	if timings[1].StartMS != timings[0].DurationMS {
		t.Errorf("second line should start where the first ends: %+v", timings)
	}
}

func TestMusicList(t *testing.T) {
	f := newFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/music", nil)
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}

	var keys []string
	if err := json.Unmarshal(rec.Body.Bytes(), &keys); err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "ambient" || keys[1] != "orchestral" {
		t.Errorf("got %v", keys)
	}
}
