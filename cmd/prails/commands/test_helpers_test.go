package commands_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/paymentrails/paymentrails-go/cmd/prails/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func subcommandNames(cmd *cobra.Command) []string {
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	return names
}

// recordedRequest is one call received by apiStub.
type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Body     string
}

// apiStub is a canned PaymentRails API. Tests using it mutate global viper
// state and must not call t.Parallel.
type apiStub struct {
	server   *httptest.Server
	mux      *http.ServeMux
	mu       sync.Mutex
	requests []recordedRequest
}

func newAPIStub(t *testing.T) *apiStub {
	t.Helper()

	stub := &apiStub{mux: http.NewServeMux()}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		stub.mu.Lock()
		stub.requests = append(stub.requests, recordedRequest{
			Method:   r.Method,
			Path:     r.URL.Path,
			RawQuery: r.URL.RawQuery,
			Body:     string(body),
		})
		stub.mu.Unlock()

		stub.mux.ServeHTTP(w, r)
	}))

	viper.Reset()
	viper.Set(commands.KeyAPIKey, "test-key")
	viper.Set(commands.KeyAPISecret, "test-secret")
	viper.Set(commands.KeyBaseURL, stub.server.URL)

	t.Cleanup(func() {
		stub.server.Close()
		viper.Reset()
	})

	return stub
}

// handle registers a canned JSON response for a ServeMux pattern such as "GET /v1/batches".
func (s *apiStub) handle(pattern string, status int, body string) {
	s.mux.HandleFunc(pattern, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func (s *apiStub) recorded() []recordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]recordedRequest(nil), s.requests...)
}

func (s *apiStub) lastRequest(t *testing.T) recordedRequest {
	t.Helper()

	requests := s.recorded()
	require.NotEmpty(t, requests, "no request reached the API")

	return requests[len(requests)-1]
}

// runCommand executes args against cmd and returns what it printed.
func runCommand(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}
