package attest

import (
	"regexp"
	"strings"

	"github.com/commerceblock/mainstay-api/internal/logger"
	"github.com/commerceblock/mainstay-api/internal/models"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Notifier delivers the post-signup admin notification.
type Notifier interface {
	NotifySignup(signup *models.ClientSignup) error
}

// SignupRequest is the raw signup form input before trimming/validation.
type SignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Pubkey    string `json:"pubkey"`
}

// SignupService validates and persists signup submissions. Records created
// here are what the commitment pipeline later trusts, so the pubkey point
// check lives at this boundary rather than in the runtime verifier.
type SignupService struct {
	signups ClientSignupStore
	notify  Notifier
}

func NewSignupService(signups ClientSignupStore, notify Notifier) *SignupService {
	return &SignupService{signups: signups, notify: notify}
}

// Signup validates req, rejects duplicate emails before any write, inserts
// the record and fires the admin notification on a detached goroutine. A
// notification failure is logged and otherwise ignored; the signup has
// already committed.
func (s *SignupService) Signup(req SignupRequest) (*models.ClientSignup, error) {
	firstName := strings.TrimSpace(req.FirstName)
	if firstName == "" {
		return nil, Errf(CodeFirstName)
	}
	lastName := strings.TrimSpace(req.LastName)
	if lastName == "" {
		return nil, Errf(CodeLastName)
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || !emailShape.MatchString(email) {
		return nil, Errf(CodeEmail)
	}
	company := strings.TrimSpace(req.Company)

	pubkey := strings.TrimSpace(req.Pubkey)
	if pubkey != "" && !ValidPubkey(pubkey) {
		return nil, &Error{Code: CodePubkey, Message: "Invalid Public Key"}
	}

	existing, err := s.signups.FindByEmail(email)
	if err != nil {
		return nil, ErrAPI(err)
	}
	if existing != nil {
		return nil, &Error{Code: CodeAPI, Message: "A user with this email already exists."}
	}

	signup := &models.ClientSignup{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Company:   company,
		Pubkey:    pubkey,
	}
	if err := s.signups.Create(signup); err != nil {
		return nil, ErrAPI(err)
	}

	if s.notify != nil {
		go func(u models.ClientSignup) {
			if err := s.notify.NotifySignup(&u); err != nil {
				logger.Error("signup notification failed:", err)
			}
		}(*signup)
	}
	return signup, nil
}
