package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// PaystackVerification is the engine-facing result of a verification call
type PaystackVerification struct {
	Verified          bool
	AuthorizationCode string
}

// PaystackClient verifies third-party payments before a wallet top-up is
// allowed to proceed. The call is a single blocking round trip; any non-200
// response or non-"success" status counts as unverified, with no retry.
type PaystackClient struct {
	BaseURL    string
	SecretKey  string
	HTTPClient *http.Client
}

// NewPaystackClient builds a client from the environment
func NewPaystackClient() *PaystackClient {
	return &PaystackClient{
		BaseURL:    "https://api.paystack.co",
		SecretKey:  os.Getenv("PAYSTACK_SECRET_KEY"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type paystackVerifyResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Status        string `json:"status"`
		Authorization struct {
			AuthorizationCode string `json:"authorization_code"`
		} `json:"authorization"`
	} `json:"data"`
}

// VerifyTransaction confirms a payment reference with Paystack
func (p *PaystackClient) VerifyTransaction(reference string) (*PaystackVerification, error) {
	url := fmt.Sprintf("%s/transaction/verify/%s", p.BaseURL, reference)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.SecretKey)

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &PaystackVerification{Verified: false}, nil
	}

	var body paystackVerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	return &PaystackVerification{
		Verified:          body.Data.Status == "success",
		AuthorizationCode: body.Data.Authorization.AuthorizationCode,
	}, nil
}
