package whatsapp

import (
	"context"
	"net/http"
	"testing"

	"meridianit/inbox-project/pkgs/conf"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadVerificationConfig(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "test")
	t.Setenv("DB_PASSWORD", "test")
	t.Setenv("DB_NAME", "test")
	t.Setenv("DB_SSLMODE", "disable")
	t.Setenv("WHATSAPP_VERIFY_TOKEN", "expected-token")
	t.Setenv("WHATSAPP_ACCESS_TOKEN", "access-token")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "pnid-1")
	require.NoError(t, conf.Load())
}

func newVerificationAPI(t *testing.T) humatest.TestAPI {
	_, api := humatest.New(t)
	huma.Register(api, huma.Operation{
		OperationID: "whatsapp-verification",
		Method:      http.MethodGet,
		Path:        "/whatsapp/webhook",
	}, HandleWebhookVerification)
	return api
}

// Meta compares the echoed challenge byte-for-byte, so the assertion is on
// the serialized response: plaintext body, no JSON quoting.
func TestWebhookVerificationEchoesChallengeVerbatim(t *testing.T) {
	loadVerificationConfig(t)
	api := newVerificationAPI(t)

	resp := api.Get("/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=expected-token&hub.challenge=challenge-123")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "challenge-123", resp.Body.String())
	assert.Equal(t, "text/plain", resp.Header().Get("Content-Type"))
}

func TestWebhookVerificationRejectsBadToken(t *testing.T) {
	loadVerificationConfig(t)
	api := newVerificationAPI(t)

	resp := api.Get("/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=wrong-token&hub.challenge=challenge-123")
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestWebhookVerificationRejectsBadMode(t *testing.T) {
	loadVerificationConfig(t)

	_, err := HandleWebhookVerification(context.Background(), &WebhookVerifyInput{
		Mode:      "unsubscribe",
		Token:     "expected-token",
		Challenge: "challenge-123",
	})
	assert.Error(t, err)
}
