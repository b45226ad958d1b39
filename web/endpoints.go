package web

import (
	"context"
	"net/http"

	"meridianit/inbox-project/pkgs/whatsapp"

	"github.com/danielgtaylor/huma/v2"
)

func RegisterChatbotHandlers(api huma.API) error {
	handlers := NewHandlers()

	huma.Register(api, huma.Operation{
		OperationID: "chatbot-query",
		Method:      http.MethodPost,
		Path:        "/api/chatbot/query",
		Summary:     "Answer a knowledge-base question",
		Tags:        []string{"chatbot"},
	}, func(ctx context.Context, input *ChatbotQueryInput) (*ChatbotQueryResponse, error) {
		return &ChatbotQueryResponse{
			Body: handlers.Query(ctx, input.Body.Query),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "chatbot-questions",
		Method:      http.MethodGet,
		Path:        "/api/chatbot/questions",
		Summary:     "List popular starter questions",
		Tags:        []string{"chatbot"},
	}, func(ctx context.Context, input *struct{}) (*PopularQuestionsResponse, error) {
		return &PopularQuestionsResponse{
			Body: PopularQuestionsBody{Questions: handlers.PopularQuestions(ctx)},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-product",
		Method:      http.MethodGet,
		Path:        "/api/products/{id}",
		Summary:     "Get product details",
		Tags:        []string{"catalog"},
	}, func(ctx context.Context, input *GetProductInput) (*ProductResponse, error) {
		p, err := handlers.Product(ctx, input.ID)
		if err != nil {
			return nil, huma.Error404NotFound("Product not found", err)
		}
		return &ProductResponse{Body: *p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-solution",
		Method:      http.MethodGet,
		Path:        "/api/solutions/{id}",
		Summary:     "Get solution details",
		Tags:        []string{"catalog"},
	}, func(ctx context.Context, input *GetSolutionInput) (*SolutionResponse, error) {
		s, err := handlers.Solution(ctx, input.ID)
		if err != nil {
			return nil, huma.Error404NotFound("Solution not found", err)
		}
		return &SolutionResponse{Body: *s}, nil
	})

	return nil
}

func RegisterWhatsappHandlers(api huma.API, processor *whatsapp.Processor) error {
	huma.Register(api, huma.Operation{
		OperationID: "whatsapp-verification",
		Method:      http.MethodGet,
		Path:        "/whatsapp/webhook",
		Summary:     "Handle WhatsApp webhook verification",
		Tags:        []string{"whatsapp"},
	}, whatsapp.HandleWebhookVerification)

	huma.Register(api, huma.Operation{
		OperationID: "whatsapp-webhook",
		Method:      http.MethodPost,
		Path:        "/whatsapp/webhook",
		Summary:     "Handle WhatsApp webhook events",
		Tags:        []string{"whatsapp"},
	}, processor.HandleWebhookEvent)

	return nil
}
