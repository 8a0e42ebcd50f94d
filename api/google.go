package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// GoogleTokenInfo es la respuesta del endpoint tokeninfo de Google.
type GoogleTokenInfo struct {
	Aud        string `json:"aud"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
	Sub        string `json:"sub"`
}

// VerifyGoogleIDToken valida el idToken del cliente contra Google y
// comprueba que el token fue emitido para nuestro client id.
func VerifyGoogleIDToken(idToken string) (*GoogleTokenInfo, error) {
	endpoint := "https://oauth2.googleapis.com/tokeninfo?id_token=" + url.QueryEscape(idToken)

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Google: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Google rejected the token: %s", body)
	}

	var info GoogleTokenInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to parse Google response: %w", err)
	}

	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	if clientID != "" && info.Aud != clientID {
		return nil, fmt.Errorf("token issued for another client")
	}
	if info.Email == "" {
		return nil, fmt.Errorf("token has no email claim")
	}

	return &info, nil
}
