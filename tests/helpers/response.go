package helpers

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

// Envelope mirrors the API response shape for assertions.
type Envelope struct {
	Meta struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	} `json:"meta"`
	Objects []map[string]interface{} `json:"objects"`
}

// AssertStatus verifies the HTTP status code
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("Expected status %d, got %d", expected, resp.StatusCode)
	}
}

// ParseEnvelope decodes the response body into an Envelope
func ParseEnvelope(t *testing.T, resp *http.Response) Envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	defer resp.Body.Close()

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("Failed to decode JSON: %v. Body: %s", err, string(body))
	}
	return env
}

// AssertEnvelopeStatus verifies the envelope status code
func AssertEnvelopeStatus(t *testing.T, env Envelope, expected string) {
	t.Helper()
	if env.Meta.Status != expected {
		t.Errorf("Expected envelope status %q, got %q (error: %q)",
			expected, env.Meta.Status, env.Meta.Error)
	}
}
