package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// oauthClient talks to the external identity provider. The application
// stores no credentials; sign-in is fully delegated.
type oauthClient struct {
	http         *resty.Client
	clientID     string
	clientSecret string
	authURL      string
	tokenURL     string
	userInfoURL  string
}

func newOAuthClient(clientID, clientSecret string) *oauthClient {
	return &oauthClient{
		http:         resty.New().SetTimeout(15 * time.Second),
		clientID:     clientID,
		clientSecret: clientSecret,
		authURL:      googleAuthURL,
		tokenURL:     googleTokenURL,
		userInfoURL:  googleUserInfoURL,
	}
}

// authRedirectURL builds the provider's authorization-code URL.
func (o *oauthClient) authRedirectURL(redirectURI, state string) string {
	params := url.Values{}
	params.Set("client_id", o.clientID)
	params.Set("redirect_uri", redirectURI)
	params.Set("response_type", "code")
	params.Set("scope", "openid email profile")
	params.Set("access_type", "offline")
	if state != "" {
		params.Set("state", state)
	}
	return o.authURL + "?" + params.Encode()
}

// exchangeCode trades an authorization code for an access token.
func (o *oauthClient) exchangeCode(ctx context.Context, code, redirectURI string) (string, error) {
	var result struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	resp, err := o.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"code":          code,
			"client_id":     o.clientID,
			"client_secret": o.clientSecret,
			"redirect_uri":  redirectURI,
			"grant_type":    "authorization_code",
		}).
		SetResult(&result).
		Post(o.tokenURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() || result.Error != "" {
		return "", fmt.Errorf("google: token exchange failed (%s)", firstNonEmpty(result.Error, resp.Status()))
	}
	return result.AccessToken, nil
}

// identity is the provider-reported user.
type identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// fetchIdentity resolves the signed-in user's profile.
func (o *oauthClient) fetchIdentity(ctx context.Context, accessToken string) (*identity, error) {
	var user identity
	resp, err := o.http.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&user).
		Get(o.userInfoURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("google: userinfo failed (%s)", resp.Status())
	}
	if strings.TrimSpace(user.Email) == "" {
		return nil, fmt.Errorf("google: userinfo returned no email")
	}
	return &user, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
