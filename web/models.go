package web

import (
	"meridianit/inbox-project/pkgs/knowledge"
)

// ChatbotQueryInput carries a free-text question from the website widget.
type ChatbotQueryInput struct {
	Body struct {
		Query string `json:"query" minLength:"1" maxLength:"500" doc:"Free-text question"`
	}
}

type ChatbotQueryResponse struct {
	Body knowledge.Response
}

type PopularQuestionsResponse struct {
	Body PopularQuestionsBody
}

type PopularQuestionsBody struct {
	Questions []string `json:"questions"`
}

type GetProductInput struct {
	ID string `path:"id" minLength:"1" maxLength:"64" pattern:"^[a-z0-9-]+$"`
}

type ProductResponse struct {
	Body knowledge.Product
}

type GetSolutionInput struct {
	ID string `path:"id" minLength:"1" maxLength:"64" pattern:"^[a-z0-9-]+$"`
}

type SolutionResponse struct {
	Body knowledge.Solution
}
