package mcp_server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jgajek/alkindus/cmd"
)

type cryptogramSolveServiceImpl struct{}

func NewCryptogramSolveService() CryptogramSolveService {
	return &cryptogramSolveServiceImpl{}
}

func (s *cryptogramSolveServiceImpl) Solve(ctx context.Context, req *CryptogramSolveRequest) (*CryptogramSolveResponse, error) {
	if req.CipherText == "" {
		return nil, fmt.Errorf("cipherText is required")
	}
	if req.ModelBase == "" {
		return nil, fmt.Errorf("modelBase is required")
	}

	ngramLength := req.NgramLength
	if ngramLength <= 0 {
		ngramLength = 3
	}
	generations := req.Generations
	if generations <= 0 {
		generations = 150
	}
	muteRate := req.MuteRate
	if muteRate <= 0 {
		muteRate = 3
	}
	maxThreads := req.MaxThreads
	if maxThreads <= 0 {
		maxThreads = 2
	}
	popSize := req.PopSize
	if popSize <= 0 {
		popSize = 100
	}
	numTrials := req.NumTrials
	if numTrials <= 0 {
		numTrials = 5
	}

	score, err := cmd.LoadScore(req.ModelBase, ngramLength)
	if err != nil {
		return nil, fmt.Errorf("loading probability model: %w", err)
	}

	crypto := cmd.NewCryptogramFromText(req.CipherText)
	seed := cmd.IdentifyVowels(crypto.Text)

	best := cmd.Solve(crypto, score, seed, cmd.SolverConfig{
		Generations: generations,
		MuteRate:    muteRate,
		NgramLen:    ngramLength,
		MaxThreads:  maxThreads,
		PopSize:     popSize,
		NumTrials:   numTrials,
		Seed:        req.Seed,
	})

	return &CryptogramSolveResponse{
		DecryptionKey:  keyString(best.Key),
		EncryptionKey:  keyString(best.Key.Invert()),
		DecipheredText: best.Key.Decode(crypto.Text),
		Fitness:        best.Fitness,
		Trial:          best.Trial,
		Generation:     best.Generation,
	}, nil
}

func keyString(k cmd.Key) string {
	b := make([]byte, cmd.NumSymbols)
	for i, v := range k {
		b[i] = 'a' + v
	}
	return string(b)
}

// HandleCryptogramSolve provides an HTTP handler for the GA cryptogram
// solver operation.
func HandleCryptogramSolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Only POST method is supported", http.StatusMethodNotAllowed)
		return
	}

	var req CryptogramSolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := NewCryptogramSolveService().Solve(r.Context(), &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
