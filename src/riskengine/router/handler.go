package router

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/zzprice/optionrisk/src/eventmodels"
	"github.com/zzprice/optionrisk/src/riskengine/services"
)

var riskService *services.RiskService

type errorResponse struct {
	Type string `json:"type"`
	Msg  string `json:"message"`
}

func NewErrorResponse(errType string, message string) *errorResponse {
	return &errorResponse{
		Type: errType,
		Msg:  message,
	}
}

func setResponse(response interface{}, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(200)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		return fmt.Errorf("SetResponse: encode: %w", err)
	}

	return nil
}

func setErrorResponse(errType string, statusCode int, err error, w http.ResponseWriter) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := NewErrorResponse(errType, err.Error())
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		return encodeErr
	}

	return nil
}

type ivStatsRequest struct {
	Symbol string `schema:"symbol,required"`
}

func handlePortfolio(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if err := setResponse(riskService.PortfolioSnapshot(), w); err != nil {
			setErrorResponse("handlePortfolio: failed to set response", 500, err, w)
		}
	} else {
		w.WriteHeader(404)
	}
}

func handleChains(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(404)
		return
	}

	response := map[string]interface{}{
		"chains": riskService.ChainSnapshots(),
	}

	if err := setResponse(response, w); err != nil {
		setErrorResponse("handleChains: failed to set response", 500, err, w)
	}
}

func handleChain(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(404)
		return
	}

	vars := mux.Vars(r)
	symbol := vars["symbol"]

	chain, found := riskService.ChainSnapshot(symbol)
	if !found {
		setErrorResponse("handleChain: chain not found", 404, fmt.Errorf("unknown chain: %s", symbol), w)
		return
	}

	if err := setResponse(chain, w); err != nil {
		setErrorResponse("handleChain: failed to set response", 500, err, w)
	}
}

func handleOption(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(404)
		return
	}

	vars := mux.Vars(r)
	symbol := vars["symbol"]

	option, found := riskService.OptionSnapshot(eventmodels.InstrumentSymbol(symbol))
	if !found {
		setErrorResponse("handleOption: option not found", 404, fmt.Errorf("unknown option: %s", symbol), w)
		return
	}

	if err := setResponse(option, w); err != nil {
		setErrorResponse("handleOption: failed to set response", 500, err, w)
	}
}

func handleIVStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(404)
		return
	}

	req := new(ivStatsRequest)
	if err := schema.NewDecoder().Decode(req, r.URL.Query()); err != nil {
		setErrorResponse("handleIVStats: failed to decode query", 400, err, w)
		return
	}

	summary, found := riskService.ChainIVStats(req.Symbol)
	if !found {
		setErrorResponse("handleIVStats: chain not found", 404, fmt.Errorf("unknown chain: %s", req.Symbol), w)
		return
	}

	if err := setResponse(summary, w); err != nil {
		setErrorResponse("handleIVStats: failed to set response", 500, err, w)
	}
}

func SetupHandler(router *mux.Router, svc *services.RiskService) {
	riskService = svc

	// handleFunc is a replacement for mux.HandleFunc
	// which enriches the handler's HTTP instrumentation with the pattern as the http.route.
	handleFunc := func(pattern string, handlerFunc func(http.ResponseWriter, *http.Request)) {
		handler := otelhttp.WithRouteTag(pattern, http.HandlerFunc(handlerFunc))
		router.Handle(pattern, handler)
	}

	handleFunc("/portfolio", handlePortfolio)
	handleFunc("/chains", handleChains)
	handleFunc("/chains/{symbol}", handleChain)
	handleFunc("/options/{symbol}", handleOption)
	handleFunc("/iv", handleIVStats)
	handleFunc("/stream", handleStream)
}
