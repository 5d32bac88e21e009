package googletasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/natefinch/atomic"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"tasked/internal/config"
	"tasked/internal/remote"
)

// tokenCheckTimeout bounds the refresh done by TokenValid.
const tokenCheckTimeout = 10 * time.Second

// OAuthConfig reads the OAuth client from cfg's oauth_client.json.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", remote.ErrAuth, config.OAuthClientFile, err)
	}
	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s: %v", remote.ErrAuth, config.OAuthClientFile, err)
	}
	return oauthConfig, nil
}

// LoadToken reads the stored token.
func LoadToken(cfg *config.Config) (*oauth2.Token, error) {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("%w: not logged in (run: tasked login)", remote.ErrAuth)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("%w: invalid %s: %v", remote.ErrAuth, config.TokenFile, err)
	}
	return &token, nil
}

// SaveToken replaces the stored token, creating the config directory first.
func SaveToken(cfg *config.Config, token *oauth2.Token) error {
	if err := cfg.EnsureDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(cfg.TokenPath(), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// TokenValid reports whether the stored token carries a refresh token that
// the OAuth server still accepts.
func TokenValid(ctx context.Context, cfg *config.Config) bool {
	token, err := LoadToken(cfg)
	if err != nil || token.RefreshToken == "" {
		return false
	}
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, tokenCheckTimeout)
	defer cancel()
	_, err = oauthConfig.TokenSource(ctx, token).Token()
	return err == nil
}
