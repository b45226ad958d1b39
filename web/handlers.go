package web

import (
	"context"

	"meridianit/inbox-project/pkgs/knowledge"

	"github.com/juju/errors"
)

type Handlers struct{}

func NewHandlers() *Handlers {
	return &Handlers{}
}

func (h *Handlers) Query(ctx context.Context, query string) knowledge.Response {
	return knowledge.Query(query)
}

func (h *Handlers) PopularQuestions(ctx context.Context) []string {
	return knowledge.PopularQuestions()
}

func (h *Handlers) Product(ctx context.Context, id string) (*knowledge.Product, error) {
	p, ok := knowledge.ProductByID(id)
	if !ok {
		return nil, errors.NotFoundf("product %s", id)
	}
	return p, nil
}

func (h *Handlers) Solution(ctx context.Context, id string) (*knowledge.Solution, error) {
	s, ok := knowledge.SolutionByID(id)
	if !ok {
		return nil, errors.NotFoundf("solution %s", id)
	}
	return s, nil
}
