package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/codersbeyondborders/aac-backend-sub001/internal/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// PrincipalStore is the subset of the user repository the issuer needs.
type PrincipalStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// TokenResult is what the issuer hands the operator. Tokens are printed,
// never written to disk.
type TokenResult struct {
	Token     string
	UserID    string
	ExpiresIn time.Duration
	// Existing is true when the principal was already registered and its
	// identifier was fetched instead of created.
	Existing bool
}

// VerifyStatus classifies a liveness check of a freshly issued token.
type VerifyStatus string

const (
	VerifyValid VerifyStatus = "valid"
	VerifyWarn  VerifyStatus = "warn"
)

type VerifyResult struct {
	Status VerifyStatus
	Detail string
}

// Issuer obtains short-lived bearer tokens for manual API testing, either by
// signing in against the API's password-grant endpoint or by minting a custom
// token server-side.
type Issuer struct {
	store       PrincipalStore
	apiBaseURL  string
	expiryHours int
	client      *http.Client
}

func NewIssuer(store PrincipalStore, apiBaseURL string, expiryHours int) *Issuer {
	if expiryHours <= 0 {
		expiryHours = 24
	}
	return &Issuer{
		store:       store,
		apiBaseURL:  strings.TrimRight(apiBaseURL, "/"),
		expiryHours: expiryHours,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"`
	UserID    string `json:"userId"`
	Error     string `json:"error"`
}

// SignIn exchanges an email/password pair for a bearer token via the API's
// password-grant endpoint.
func (i *Issuer) SignIn(ctx context.Context, email, password string) (*TokenResult, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.apiBaseURL+"/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sign-in request failed: %w", err)
	}
	defer resp.Body.Close()

	var parsed loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("sign-in response was not JSON: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sign-in rejected (%d): %s", resp.StatusCode, parsed.Error)
	}

	return &TokenResult{
		Token:     parsed.Token,
		UserID:    parsed.UserID,
		ExpiresIn: time.Duration(parsed.ExpiresIn) * time.Second,
	}, nil
}

// Mint creates-or-fetches a principal directly in the database and signs a
// custom token for it. An already-registered email is success: the existing
// principal's identifier is reused.
func (i *Issuer) Mint(ctx context.Context, email, password, name string) (*TokenResult, error) {
	email = strings.ToLower(email)

	user, err := i.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("principal lookup failed: %w", err)
	}

	existing := user != nil
	if !existing {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user = &model.User{
			ID:             uuid.New(),
			Email:          email,
			Name:           name,
			HashedPassword: string(hash),
		}
		if err := i.store.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("principal creation failed: %w", err)
		}
	}

	token, err := GenerateToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("token mint failed: %w", err)
	}

	return &TokenResult{
		Token:     token,
		UserID:    user.ID.String(),
		ExpiresIn: time.Duration(i.expiryHours) * time.Hour,
		Existing:  existing,
	}, nil
}

// Verify performs a liveness check: one authenticated call with the fresh
// token. 200 means valid; 404 on the empty-state listing is still valid; any
// other status is a warning, not a failure.
func (i *Issuer) Verify(ctx context.Context, token string) (*VerifyResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.apiBaseURL+"/api/v1/boards", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verification request failed: %w", err)
	}
	defer resp.Body.Close()
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	switch {
	case resp.StatusCode == http.StatusOK:
		return &VerifyResult{Status: VerifyValid, Detail: "token accepted by the API"}, nil
	case resp.StatusCode == http.StatusNotFound:
		// No boards yet; auth still passed.
		return &VerifyResult{Status: VerifyValid, Detail: "token accepted, no resources yet"}, nil
	default:
		return &VerifyResult{
			Status: VerifyWarn,
			Detail: fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		}, nil
	}
}
