package whisper

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultBaseURL = "https://api.openai.com"
	model          = "whisper-1"
)

// MediaAuth carries the credentials needed to fetch voice notes from the
// messaging provider's media URLs.
type MediaAuth struct {
	Username string
	Password string
}

// Client transcribes voice notes with the OpenAI audio transcription API.
type Client struct {
	baseURL   string
	apiKey    string
	mediaAuth MediaAuth
	client    *http.Client
}

func NewClient(baseURL, apiKey string, mediaAuth MediaAuth) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		mediaAuth: mediaAuth,
		client:    &http.Client{Timeout: 60 * time.Second},
	}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe downloads the voice note at mediaURL and returns its text.
func (c *Client) Transcribe(ctx context.Context, mediaURL string) (string, error) {
	audio, err := c.fetchMedia(ctx, mediaURL)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("model", model); err != nil {
		return "", errors.Wrap(err, "writing model field")
	}
	part, err := writer.CreateFormFile("file", "voice.ogg")
	if err != nil {
		return "", errors.Wrap(err, "creating form file")
	}
	if _, err := part.Write(audio); err != nil {
		return "", errors.Wrap(err, "writing audio")
	}
	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "closing form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/audio/transcriptions", &buf)
	if err != nil {
		return "", errors.Wrap(err, "creating request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling transcription api")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading response")
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("transcription api returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", errors.Wrap(err, "decoding response")
	}
	return parsed.Text, nil
}

func (c *Client) fetchMedia(ctx context.Context, mediaURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating media request")
	}
	req.SetBasicAuth(c.mediaAuth.Username, c.mediaAuth.Password)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching media")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("media fetch returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
