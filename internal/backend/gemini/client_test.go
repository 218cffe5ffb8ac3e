package gemini

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/hsbukhari/nexus/internal/ports"
	"github.com/hsbukhari/nexus/internal/testutil"
)

// testAPIKey is used when replaying cassettes; recording requires a real
// key in GEMINI_API_KEY.
func testAPIKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return "test-api-key"
}

func newRecordedClient(t *testing.T, cassette string) *Client {
	t.Helper()

	if os.Getenv("VCR_MODE") != "record" && !testutil.CassetteExists(cassette) {
		t.Skipf("cassette %s not recorded", cassette)
	}

	r, cleanup := testutil.NewVCRRecorder(t, cassette)
	t.Cleanup(cleanup)

	c, err := New(context.Background(), testAPIKey(), WithHTTPClient(testutil.VCRHTTPClient(r)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestGenerateText(t *testing.T) {
	c := newRecordedClient(t, "generate_text")

	text, err := c.GenerateText(context.Background(), ports.TextRequest{
		Model:  "gemini-2.5-flash",
		Prompt: "Reply with the single word pong.",
	})
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if !strings.Contains(strings.ToLower(text), "pong") {
		t.Errorf("text = %q", text)
	}
}

func TestGenerateImage(t *testing.T) {
	c := newRecordedClient(t, "generate_image")

	result, err := c.GenerateImage(context.Background(), ports.ImageRequest{
		Model:       "imagen-3.0-generate-001",
		Prompt:      "a red cube on a white table",
		AspectRatio: "16:9",
		MIMEType:    "image/jpeg",
	})
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if len(result.Bytes) == 0 {
		t.Error("expected image bytes")
	}
}

func TestNewRequiresNoNetwork(t *testing.T) {
	// Constructing the client performs no network I/O.
	if _, err := New(context.Background(), "test-api-key"); err != nil {
		t.Fatalf("New: %v", err)
	}
}
