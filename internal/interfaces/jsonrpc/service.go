package jsonrpcinterface

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	log "github.com/sirupsen/logrus"

	"github.com/btcbank/bankd/internal/core/application"
	"github.com/btcbank/bankd/internal/core/domain"
)

// Service is the inbound JSON-RPC interface of the daemon.
type Service interface {
	Start() error
	Stop()
}

type service struct {
	authSvc    application.AuthService
	accountSvc application.AccountService
	paymentSvc application.PaymentService
	infoSvc    application.InfoService

	server  *http.Server
	methods map[string]method
}

func NewService(
	addr string,
	authSvc application.AuthService,
	accountSvc application.AccountService,
	paymentSvc application.PaymentService,
	infoSvc application.InfoService,
) Service {
	s := &service{
		authSvc:    authSvc,
		accountSvc: accountSvc,
		paymentSvc: paymentSvc,
		infoSvc:    infoSvc,
	}
	s.methods = s.methodTable()

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRequest)
	s.server = &http.Server{Addr: addr, Handler: mux}

	return s
}

func (s *service) Start() error {
	log.Infof("json-rpc interface is listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("json-rpc interface did not shut down cleanly")
	}
}

type response struct {
	Result interface{}  `json:"result"`
	Error  *errorObject `json:"error"`
	ID     interface{}  `json:"id"`
}

func (s *service) handleRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req btcjson.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeResponse(w, http.StatusBadRequest, response{
			Error: &errorObject{
				Code:    faultCodes[application.FaultInvalidRequest],
				Kind:    string(application.FaultInvalidRequest),
				Message: "malformed json-rpc request",
			},
		})
		return
	}

	m, ok := s.methods[req.Method]
	if !ok {
		writeResponse(w, http.StatusNotFound, response{
			ID: req.ID,
			Error: &errorObject{
				Code:    methodNotFoundCode,
				Kind:    string(application.FaultInvalidRequest),
				Message: "method not found",
			},
		})
		return
	}

	ctx := r.Context()

	// credentials are verified once here; everything below works with the
	// resolved user only
	user, fault := s.authenticate(ctx, r, m.needsAuth)
	if fault != nil {
		w.Header().Set("WWW-Authenticate", `Basic realm="bankd"`)
		writeResponse(w, http.StatusUnauthorized, response{
			ID:    req.ID,
			Error: newErrorObject(fault),
		})
		return
	}

	result, err := m.handler(ctx, user, params(req.Params))
	if err != nil {
		fault := application.TranslateError(err)
		if fault.Kind == application.FaultInternal {
			log.WithError(err).Errorf("method %s failed", req.Method)
		} else {
			log.Debugf("method %s failed: %s", req.Method, fault)
		}
		writeResponse(w, http.StatusOK, response{
			ID:    req.ID,
			Error: newErrorObject(fault),
		})
		return
	}

	writeResponse(w, http.StatusOK, response{ID: req.ID, Result: result})
}

func (s *service) authenticate(
	ctx context.Context, r *http.Request, required bool,
) (*domain.User, *application.Fault) {
	if !required {
		return nil, nil
	}

	username, password, ok := r.BasicAuth()
	if !ok {
		return nil, application.NewFault(
			application.FaultUnauthorized, "missing credentials",
		)
	}

	user, err := s.authSvc.Authenticate(ctx, username, password)
	if err != nil {
		return nil, application.TranslateError(err)
	}
	return user, nil
}

func writeResponse(w http.ResponseWriter, status int, res response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.WithError(err).Warn("failed to write json-rpc response")
	}
}
