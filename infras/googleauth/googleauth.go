package googleauth

//go:generate go run go.uber.org/mock/mockgen -source=./googleauth.go -destination=./mocks/googleauth_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"reserva/config"
	"reserva/infras/otel"
	"reserva/shared/constant"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"

// Profile is the subset of the Google userinfo payload the platform needs.
// Email and Picture may be empty when the account withholds them.
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Provider wraps the Google OAuth consent flow.
type Provider interface {
	AuthURL(state string) string
	FetchProfile(ctx context.Context, code string) (Profile, error)
}

type providerImpl struct {
	conf *oauth2.Config
	otel otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Provider {
	return &providerImpl{
		conf: &oauth2.Config{
			ClientID:     cfg.Auth.Google.ClientID,
			ClientSecret: cfg.Auth.Google.ClientSecret,
			RedirectURL:  cfg.Auth.Google.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		otel: otl,
	}
}

func (p *providerImpl) AuthURL(state string) string {
	return p.conf.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// FetchProfile exchanges the authorization code and pulls the userinfo
// profile with the resulting token.
func (p *providerImpl) FetchProfile(ctx context.Context, code string) (profile Profile, err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".googleauth.FetchProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return profile, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userinfoEndpoint, nil)
	if err != nil {
		return profile, fmt.Errorf("failed to build userinfo request: %w", err)
	}

	resp, err := p.conf.Client(ctx, token).Do(req)
	if err != nil {
		return profile, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return profile, fmt.Errorf("userinfo request returned status %d", resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return profile, fmt.Errorf("failed to decode userinfo response: %w", err)
	}

	if profile.ID == constant.Empty {
		return profile, fmt.Errorf("userinfo response is missing the account id")
	}

	return profile, nil
}
