package api

import "github.com/golang-jwt/jwt/v4"

// SendCommitmentRequest is the commitment submission payload. Pointer
// fields distinguish absent from empty, so each missing field can be
// reported with its own code before any gate runs.
type SendCommitmentRequest struct {
	Position   *int64  `json:"position"`
	Token      *string `json:"token"`
	Commitment *string `json:"commitment"`
	Signature  *string `json:"signature"`
}

// ErrorResponse is the shared error shape of every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Allowance carries the elapsed processing cost of a classification call,
// in microseconds.
type Allowance struct {
	Cost int64 `json:"cost"`
}

// TypeResponse is the /ctrl/type reply. Exactly one of Type and Error is
// set; timing fields are present on every outcome.
type TypeResponse struct {
	Type      string    `json:"type,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp int64     `json:"timestamp"`
	Allowance Allowance `json:"allowance"`
}

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued admin session token.
type LoginResponse struct {
	Token string `json:"token"`
}

// ClientDetailsRow is one admin listing entry. Auth tokens never leave the
// storage layer.
type ClientDetailsRow struct {
	Position   int64  `json:"client_position"`
	ClientName string `json:"client_name"`
	Pubkey     string `json:"pubkey"`
}

// Claims is the admin JWT claim set.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
