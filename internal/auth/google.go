package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var ErrGoogleNotConfigured = errors.New("google oauth is not configured")

// GoogleProfile is the subset of the userinfo payload the app cares about.
type GoogleProfile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type GoogleVerifier struct {
	config *oauth2.Config
}

func NewGoogleVerifier(clientID, clientSecret, redirectURL string) *GoogleVerifier {
	if clientID == "" || clientSecret == "" {
		return &GoogleVerifier{}
	}
	return &GoogleVerifier{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (v *GoogleVerifier) AuthURL(state string) (string, error) {
	if v.config == nil {
		return "", ErrGoogleNotConfigured
	}
	return v.config.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// Exchange trades an authorization code for the Google profile behind it.
func (v *GoogleVerifier) Exchange(ctx context.Context, code string) (GoogleProfile, error) {
	if v.config == nil {
		return GoogleProfile{}, ErrGoogleNotConfigured
	}
	token, err := v.config.Exchange(ctx, code)
	if err != nil {
		return GoogleProfile{}, fmt.Errorf("exchange code: %w", err)
	}
	client := v.config.Client(ctx, token)
	resp, err := client.Get(userinfoURL)
	if err != nil {
		return GoogleProfile{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return GoogleProfile{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}
	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return GoogleProfile{}, fmt.Errorf("decode userinfo: %w", err)
	}
	if profile.Email == "" {
		return GoogleProfile{}, errors.New("userinfo missing email")
	}
	return profile, nil
}
