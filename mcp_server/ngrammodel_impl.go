package mcp_server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jgajek/alkindus/cmd"
)

type ngramModelServiceImpl struct{}

func NewNgramModelService() NgramModelService {
	return &ngramModelServiceImpl{}
}

func (s *ngramModelServiceImpl) Build(ctx context.Context, req *NgramModelRequest) (*NgramModelResponse, error) {
	n := req.NgramLength
	if n < 1 || n > cmd.MaxNgramLen {
		return nil, fmt.Errorf("ngramLength must be between 1 and %d", cmd.MaxNgramLen)
	}

	trie := cmd.BuildNgramTrie(strings.NewReader(req.CorpusText), n)

	var ngramTable strings.Builder
	if err := cmd.WriteProbabilityTable(trie, n, &ngramTable); err != nil {
		return nil, fmt.Errorf("building n-gram table: %w", err)
	}

	resp := &NgramModelResponse{NgramTable: ngramTable.String()}

	if n > 1 {
		priorTrie := cmd.BuildNgramTrie(strings.NewReader(req.CorpusText), n-1)
		var priorTable strings.Builder
		if err := cmd.WriteProbabilityTable(priorTrie, n-1, &priorTable); err != nil {
			return nil, fmt.Errorf("building prior table: %w", err)
		}
		resp.PriorTable = priorTable.String()
	}

	return resp, nil
}

// HandleNgramModelBuild provides an HTTP handler for the n-gram model
// builder operation.
func HandleNgramModelBuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST method is supported", http.StatusMethodNotAllowed)
		return
	}

	var req NgramModelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := NewNgramModelService().Build(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
