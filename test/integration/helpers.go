//go:build integration

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// FakeAPI is an in-process payment API used by the workflow tests. It keeps
// charges in memory and mimics the real wire behavior: form-encoded request
// bodies, JSON responses, and the {"error": {...}} envelope on failures.
type FakeAPI struct {
	mu      sync.Mutex
	server  *httptest.Server
	charges map[string]map[string]any
	nextID  int

	// LastAuthorization and LastAccount record the auth headers of the most
	// recent request, for assertions on scoping behavior.
	LastAuthorization string
	LastAccount       string
}

// NewFakeAPI starts the fake server. Callers must Close it.
func NewFakeAPI() *FakeAPI {
	api := &FakeAPI{
		charges: make(map[string]map[string]any),
		nextID:  1,
	}
	api.server = httptest.NewServer(http.HandlerFunc(api.handle))

	return api
}

// URL returns the base URL clients should be pointed at.
func (api *FakeAPI) URL() string {
	return api.server.URL
}

// Close shuts the server down.
func (api *FakeAPI) Close() {
	api.server.Close()
}

func (api *FakeAPI) handle(writer http.ResponseWriter, request *http.Request) {
	api.mu.Lock()
	defer api.mu.Unlock()

	api.LastAuthorization = request.Header.Get("Authorization")
	api.LastAccount = request.Header.Get("Stripe-Account")

	path := request.URL.Path
	rest := strings.TrimPrefix(path, "/v1/charges/")

	switch {
	case request.Method == http.MethodPost && path == "/v1/charges":
		api.createCharge(writer, request)
	case request.Method == http.MethodPost && strings.HasSuffix(rest, "/capture"):
		api.captureCharge(writer, strings.TrimSuffix(rest, "/capture"))
	case request.Method == http.MethodGet && rest != path:
		api.getCharge(writer, rest)
	case request.Method == http.MethodDelete && rest != path:
		api.deleteCharge(writer, rest)
	default:
		writeError(writer, http.StatusNotFound, map[string]any{
			"type":    "invalid_request_error",
			"message": fmt.Sprintf("Unrecognized request URL (%s: %s)", request.Method, request.URL.Path),
		})
	}
}

func (api *FakeAPI) createCharge(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		writeError(writer, http.StatusBadRequest, map[string]any{
			"type":    "invalid_request_error",
			"message": "Invalid request body",
		})

		return
	}

	if request.PostForm.Get("source") == "tok_chargeDeclined" {
		writeError(writer, http.StatusPaymentRequired, map[string]any{
			"type":    "card_error",
			"code":    "card_declined",
			"message": "Your card was declined.",
		})

		return
	}

	amount, _ := strconv.ParseInt(request.PostForm.Get("amount"), 10, 64)

	id := fmt.Sprintf("ch_%06d", api.nextID)
	api.nextID++

	charge := map[string]any{
		"id":       id,
		"object":   "charge",
		"amount":   amount,
		"currency": request.PostForm.Get("currency"),
		"status":   "succeeded",
		"captured": false,
	}
	api.charges[id] = charge

	writeJSON(writer, http.StatusOK, charge)
}

func (api *FakeAPI) getCharge(writer http.ResponseWriter, id string) {
	charge, ok := api.charges[id]
	if !ok {
		writeError(writer, http.StatusNotFound, map[string]any{
			"type":    "invalid_request_error",
			"message": fmt.Sprintf("No such charge: '%s'", id),
		})

		return
	}

	writeJSON(writer, http.StatusOK, charge)
}

func (api *FakeAPI) captureCharge(writer http.ResponseWriter, id string) {
	charge, ok := api.charges[id]
	if !ok {
		writeError(writer, http.StatusNotFound, map[string]any{
			"type":    "invalid_request_error",
			"message": fmt.Sprintf("No such charge: '%s'", id),
		})

		return
	}

	charge["captured"] = true

	writeJSON(writer, http.StatusOK, charge)
}

func (api *FakeAPI) deleteCharge(writer http.ResponseWriter, id string) {
	if _, ok := api.charges[id]; !ok {
		writeError(writer, http.StatusNotFound, map[string]any{
			"type":    "invalid_request_error",
			"message": fmt.Sprintf("No such charge: '%s'", id),
		})

		return
	}

	delete(api.charges, id)

	writeJSON(writer, http.StatusOK, map[string]any{"id": id, "deleted": true})
}

func writeJSON(writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(body)
}

func writeError(writer http.ResponseWriter, status int, errObject map[string]any) {
	writeJSON(writer, status, map[string]any{"error": errObject})
}
