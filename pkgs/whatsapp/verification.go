package whatsapp

import (
	"context"

	"meridianit/inbox-project/pkgs/conf"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
)

func HandleWebhookVerification(ctx context.Context, input *WebhookVerifyInput) (*WebhookVerifyOutput, error) {
	log.Debug().Str("mode", input.Mode).Msg("webhook verification request")

	token := conf.GetConfig().WhatsappConfig.VerifyToken

	if input.Mode == "subscribe" && input.Token == token {
		log.Info().Msg("webhook verified successfully")
		return &WebhookVerifyOutput{
			ContentType: "text/plain",
			Body:        []byte(input.Challenge),
		}, nil
	}

	log.Warn().Str("mode", input.Mode).Msg("webhook verification failed")
	return nil, huma.Error403Forbidden("Verification failed")
}
