//go:build mcp

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jgajek/alkindus/cmd"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CaesarInput defines the input for the Caesar cipher tool.
type CaesarInput struct {
	Text string `json:"text" jsonschema:"The text to shift through all 25 Caesar cipher rotations"`
}

// CaesarOutput defines the output for the Caesar cipher tool.
type CaesarOutput struct {
	Shifts []CaesarShiftOutput `json:"shifts" jsonschema:"All 25 Caesar cipher shifts of the input text"`
}

// CaesarShiftOutput represents a single shifted result.
type CaesarShiftOutput struct {
	Shift       int    `json:"shift" jsonschema:"The shift amount (1-25)"`
	ShiftedText string `json:"shiftedText" jsonschema:"The text shifted by this amount"`
}

// NgramModelBuildInput defines the input for the n-gram model builder tool.
type NgramModelBuildInput struct {
	CorpusText  string `json:"corpusText" jsonschema:"The corpus text to build an n-gram probability model from"`
	NgramLength int    `json:"ngramLength,omitempty" jsonschema:"n-gram length, 1-8 (default: 3)"`
}

// NgramModelBuildOutput defines the output for the n-gram model builder tool.
type NgramModelBuildOutput struct {
	NgramTable string `json:"ngramTable" jsonschema:"The smoothed n-gram probability table, one '<letters> TAB <probability>' line per distinct n-gram"`
	PriorTable string `json:"priorTable" jsonschema:"The companion (n-1)-gram probability table used as the scorer's prior"`
}

// CryptogramSolveInput defines the input for the GA cryptogram solver tool.
type CryptogramSolveInput struct {
	CipherText  string `json:"cipherText" jsonschema:"The substitution cipher text to solve"`
	ModelBase   string `json:"modelBase" jsonschema:"Base path of probability tables previously written to disk by the ngrams CLI subcommand"`
	Generations int    `json:"generations,omitempty" jsonschema:"Maximum generations per trial (default: 150)"`
	MuteRate    int    `json:"muteRate,omitempty" jsonschema:"Percent chance of mutation (default: 3)"`
	NgramLength int    `json:"ngramLength,omitempty" jsonschema:"n-gram length of the probability model (default: 3)"`
	MaxThreads  int    `json:"maxThreads,omitempty" jsonschema:"Maximum concurrent trial workers (default: 2)"`
	PopSize     int    `json:"popSize,omitempty" jsonschema:"Size of each trial's population (default: 100)"`
	NumTrials   int    `json:"numTrials,omitempty" jsonschema:"Number of independent GA trials (default: 5)"`
	Seed        int64  `json:"seed,omitempty" jsonschema:"Base RNG seed for reproducible trials (default: high-entropy)"`
}

// CryptogramSolveOutput defines the output for the GA cryptogram solver tool.
type CryptogramSolveOutput struct {
	DecryptionKey  string  `json:"decryptionKey" jsonschema:"The 26-letter decryption key, indexed by cipher letter"`
	EncryptionKey  string  `json:"encryptionKey" jsonschema:"The inverse 26-letter encryption key, indexed by plaintext letter"`
	DecipheredText string  `json:"decipheredText" jsonschema:"The ciphertext decrypted under the best key found"`
	Fitness        float64 `json:"fitness" jsonschema:"Log-likelihood fitness of the best key found"`
	Trial          int     `json:"trial" jsonschema:"The trial number that discovered the best key"`
	Generation     int     `json:"generation" jsonschema:"The generation number that discovered the best key"`
}

// AlkindusServer holds the shared state for the MCP server. Unlike the
// teacher's PuzzleHelperServer, which preloaded a word dictionary and a
// single ngram frequency map at startup, this server has no preloaded
// state: the model builder and solver tools are self-contained per call,
// since every invocation supplies its own corpus text or model path.
type AlkindusServer struct{}

func main() {
	var port string
	var transport string
	flag.StringVar(&port, "port", "8080", "port to listen on for HTTP MCP server")
	flag.StringVar(&transport, "transport", "stdio", "transport type: 'stdio' for Claude Desktop or 'http' for Kubernetes")
	flag.Parse()

	server := &AlkindusServer{}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "alkindus",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "caesar_shift",
		Description: "Performs all 25 Caesar cipher rotations on the input text. Useful for quickly testing all possible Caesar cipher decryptions.",
	}, server.handleCaesar)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "ngram_model_build",
		Description: "Builds a smoothed character n-gram probability model from corpus text using Simple Good-Turing estimation. Returns the n-gram and (n-1)-gram probability tables the solver needs as its fitness model.",
	}, server.handleNgramModelBuild)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "cryptogram_solve",
		Description: "Solves a monoalphabetic substitution cryptogram with a parallel genetic algorithm, using a previously built n-gram probability model as its fitness function.",
	}, server.handleCryptogramSolve)

	switch transport {
	case "stdio":
		log.Println("Starting alkindus MCP server on stdio...")
		if err := mcpServer.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
			log.Fatalf("Server error: %v", err)
		}

	case "http":
		httpHandler := mcp.NewStreamableHTTPHandler(
			func(r *http.Request) *mcp.Server {
				return mcpServer
			},
			nil,
		)

		http.Handle("/mcp", httpHandler)

		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
		})

		addr := ":" + port
		log.Printf("Starting alkindus MCP server on http://0.0.0.0%s/mcp\n", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Fatalf("Server error: %v", err)
		}

	default:
		log.Fatalf("Unknown transport: %s (use 'stdio' or 'http')", transport)
	}
}

// handleCaesar processes Caesar cipher shift requests.
func (s *AlkindusServer) handleCaesar(ctx context.Context, req *mcp.CallToolRequest, input CaesarInput) (*mcp.CallToolResult, CaesarOutput, error) {
	if input.Text == "" {
		return nil, CaesarOutput{}, fmt.Errorf("text is required")
	}

	results := cmd.PerformCaesarShifts(input.Text)

	output := CaesarOutput{Shifts: make([]CaesarShiftOutput, len(results))}
	for i, r := range results {
		output.Shifts[i] = CaesarShiftOutput{Shift: r.Shift, ShiftedText: r.ShiftedText}
	}

	var textBuilder strings.Builder
	for _, shift := range output.Shifts {
		textBuilder.WriteString(fmt.Sprintf("%2d: %s\n", shift.Shift, shift.ShiftedText))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: textBuilder.String()}},
	}, output, nil
}

// handleNgramModelBuild processes n-gram probability model build requests.
func (s *AlkindusServer) handleNgramModelBuild(ctx context.Context, req *mcp.CallToolRequest, input NgramModelBuildInput) (*mcp.CallToolResult, NgramModelBuildOutput, error) {
	if input.CorpusText == "" {
		return nil, NgramModelBuildOutput{}, fmt.Errorf("corpusText is required")
	}

	n := input.NgramLength
	if n <= 0 {
		n = 3
	}
	if n > cmd.MaxNgramLen {
		return nil, NgramModelBuildOutput{}, fmt.Errorf("ngramLength must be at most %d", cmd.MaxNgramLen)
	}

	trie := cmd.BuildNgramTrie(strings.NewReader(input.CorpusText), n)
	var ngramTable strings.Builder
	if err := cmd.WriteProbabilityTable(trie, n, &ngramTable); err != nil {
		return nil, NgramModelBuildOutput{}, fmt.Errorf("building n-gram table: %w", err)
	}

	output := NgramModelBuildOutput{NgramTable: ngramTable.String()}

	if n > 1 {
		priorTrie := cmd.BuildNgramTrie(strings.NewReader(input.CorpusText), n-1)
		var priorTable strings.Builder
		if err := cmd.WriteProbabilityTable(priorTrie, n-1, &priorTable); err != nil {
			return nil, NgramModelBuildOutput{}, fmt.Errorf("building prior table: %w", err)
		}
		output.PriorTable = priorTable.String()
	}

	summary := fmt.Sprintf("Built %d-gram model: %d distinct n-grams, %d distinct (n-1)-grams.\n",
		n, strings.Count(output.NgramTable, "\n"), strings.Count(output.PriorTable, "\n"))

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: summary}},
	}, output, nil
}

// handleCryptogramSolve processes GA cryptogram solve requests.
func (s *AlkindusServer) handleCryptogramSolve(ctx context.Context, req *mcp.CallToolRequest, input CryptogramSolveInput) (*mcp.CallToolResult, CryptogramSolveOutput, error) {
	if input.CipherText == "" {
		return nil, CryptogramSolveOutput{}, fmt.Errorf("cipherText is required")
	}
	if input.ModelBase == "" {
		return nil, CryptogramSolveOutput{}, fmt.Errorf("modelBase is required")
	}

	ngramLength := input.NgramLength
	if ngramLength <= 0 {
		ngramLength = 3
	}
	generations := input.Generations
	if generations <= 0 {
		generations = 150
	}
	muteRate := input.MuteRate
	if muteRate <= 0 {
		muteRate = 3
	}
	maxThreads := input.MaxThreads
	if maxThreads <= 0 {
		maxThreads = 2
	}
	popSize := input.PopSize
	if popSize <= 0 {
		popSize = 100
	}
	numTrials := input.NumTrials
	if numTrials <= 0 {
		numTrials = 5
	}

	score, err := cmd.LoadScore(input.ModelBase, ngramLength)
	if err != nil {
		return nil, CryptogramSolveOutput{}, fmt.Errorf("loading probability model: %w", err)
	}

	crypto := cmd.NewCryptogramFromText(input.CipherText)
	seed := cmd.IdentifyVowels(crypto.Text)

	best := cmd.Solve(crypto, score, seed, cmd.SolverConfig{
		Generations: generations,
		MuteRate:    muteRate,
		NgramLen:    ngramLength,
		MaxThreads:  maxThreads,
		PopSize:     popSize,
		NumTrials:   numTrials,
		Seed:        input.Seed,
	})

	output := CryptogramSolveOutput{
		DecryptionKey:  mcpKeyString(best.Key),
		EncryptionKey:  mcpKeyString(best.Key.Invert()),
		DecipheredText: best.Key.Decode(crypto.Text),
		Fitness:        best.Fitness,
		Trial:          best.Trial,
		Generation:     best.Generation,
	}

	text := fmt.Sprintf("DECRYPTION KEY: %s\nENCRYPTION KEY: %s\nSCORE: %f  TRIAL: %d  GENERATION: %d\n\n%s",
		output.DecryptionKey, output.EncryptionKey, output.Fitness, output.Trial, output.Generation, output.DecipheredText)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, output, nil
}

func mcpKeyString(k cmd.Key) string {
	b := make([]byte, cmd.NumSymbols)
	for i, v := range k {
		b[i] = 'a' + v
	}
	return string(b)
}
