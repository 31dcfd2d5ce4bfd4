package mcp_server

import "context"

// NgramModelRequest defines the input for the n-gram model builder operation.
type NgramModelRequest struct {
	CorpusText  string `json:"corpusText"`
	NgramLength int    `json:"ngramLength"`
}

// NgramModelResponse defines the output for the n-gram model builder
// operation: the two probability tables the solver needs, returned inline
// rather than written to disk.
type NgramModelResponse struct {
	NgramTable string `json:"ngramTable"`
	PriorTable string `json:"priorTable"`
}

// NgramModelService defines the interface for building an n-gram
// probability model from caller-supplied corpus text.
type NgramModelService interface {
	Build(ctx context.Context, req *NgramModelRequest) (*NgramModelResponse, error)
}
