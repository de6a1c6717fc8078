package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/commerceblock/mainstay-api/internal/attest"
	"github.com/commerceblock/mainstay-api/internal/logger"
)

// API holds the pipeline stages and read services behind the HTTP surface.
// Handlers keep no per-request state.
type API struct {
	auth        *attest.AuthGate
	verifier    *attest.SignatureVerifier
	commitments *attest.CommitmentStore
	classifier  *attest.IdentifierClassifier
	listing     *attest.ListingService
	signup      *attest.SignupService
	clients     attest.ClientDetailsStore
}

func NewAPI(auth *attest.AuthGate, verifier *attest.SignatureVerifier, commitments *attest.CommitmentStore,
	classifier *attest.IdentifierClassifier, listing *attest.ListingService, signup *attest.SignupService,
	clients attest.ClientDetailsStore) *API {
	return &API{
		auth:        auth,
		verifier:    verifier,
		commitments: commitments,
		classifier:  classifier,
		listing:     listing,
		signup:      signup,
		clients:     clients,
	}
}

// HandleLatestAttestation serves GET /ctrl/latestattestation.
func (a *API) HandleLatestAttestation(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	// Only the literal "true" drops the confirmed-only filter.
	includeUnconfirmed := r.URL.Query().Get("failed") == "true"

	result, err := a.listing.List(page, includeUnconfirmed)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleLatestAttestationInfo serves GET /ctrl/latestattestationinfo.
func (a *API) HandleLatestAttestationInfo(w http.ResponseWriter, r *http.Request) {
	rows, err := a.listing.LatestInfo()
	if err != nil {
		writeError(w, err)
		return
	}
	if len(rows) > 0 {
		logger.Info("latest attestation info served, newest funding amount", btcutil.Amount(rows[0].Amount))
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleLatestCommitment serves GET /ctrl/latestcommitment.
func (a *API) HandleLatestCommitment(w http.ResponseWriter, r *http.Request) {
	rows, err := a.listing.LatestCommitments()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleSendCommitment serves POST /ctrl/sendcommitment: authenticate,
// verify the signature when the client registered a pubkey, then persist.
// Each gate terminates the pipeline on failure; nothing is written before
// the final stage.
func (a *API) HandleSendCommitment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	var req SendCommitmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, attest.ErrAPI(err))
		return
	}
	if req.Position == nil {
		writeError(w, attest.Errf(attest.CodePosition))
		return
	}
	if req.Token == nil {
		writeError(w, attest.Errf(attest.CodeToken))
		return
	}
	if req.Commitment == nil {
		writeError(w, attest.Errf(attest.CodeCommitment))
		return
	}
	commitment := *req.Commitment
	if len(commitment) != chainhash.MaxHashStringSize {
		writeError(w, attest.Errf(attest.CodeCommitment))
		return
	}
	if _, err := chainhash.NewHashFromStr(commitment); err != nil {
		writeError(w, attest.Errf(attest.CodeCommitment))
		return
	}

	client, err := a.auth.Authenticate(*req.Position, *req.Token)
	if err != nil {
		writeError(w, err)
		return
	}

	var signature string
	if req.Signature != nil {
		signature = *req.Signature
	}
	if err := a.verifier.Verify(client, commitment, signature); err != nil {
		writeError(w, err)
		return
	}

	if err := a.commitments.Put(*req.Position, commitment); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandleClientSignup serves POST /ctrl/clientsignup.
func (a *API) HandleClientSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	var req attest.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: attest.CodeAPI, Message: err.Error()})
		return
	}

	user, err := a.signup.Signup(req)
	if err != nil {
		var ae *attest.Error
		if !errors.As(err, &ae) {
			ae = attest.ErrAPI(err)
		}
		// Validation failures and the duplicate-email rejection are the
		// caller's fault; only failures with an internal cause are 500s.
		status := http.StatusBadRequest
		if ae.Code == attest.CodeAPI && ae.Cause != nil {
			status = http.StatusInternalServerError
			logger.Error("signup failed:", ae.Cause)
		}
		writeJSON(w, status, ErrorResponse{Error: ae.Code, Message: ae.Message})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

// HandleType serves GET /ctrl/type. Every reply carries the elapsed
// wall-clock cost of the classification.
func (a *API) HandleType(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	values, ok := r.URL.Query()["value"]
	if !ok || len(values) == 0 {
		replyTypeError(w, attest.CodeParamUndefined, start)
		return
	}

	label, err := a.classifier.Classify(values[0])
	if err != nil {
		var ae *attest.Error
		if !errors.As(err, &ae) {
			ae = attest.ErrAPI(err)
		}
		if ae.Code == attest.CodeAPI && ae.Cause != nil {
			logger.Error("classification failed:", ae.Cause)
		}
		replyTypeError(w, ae.Code, start)
		return
	}
	replyType(w, label, start)
}
