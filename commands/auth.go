package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

const (
	DRIVE  = drive.DriveScope
	SHEETS = sheets.SpreadsheetsScope
)

// authorize returns an HTTP client that authenticates with the token previously saved
// by 'authorise'. The token is refreshed (and saved) before the client is returned so
// that the client is not refreshing tokens while tabs are being updated concurrently.
func authorize(ctx context.Context, credentials, scope, dir string) (*http.Client, error) {
	config, err := oauthConfig(credentials, scope)
	if err != nil {
		return nil, err
	}

	tokens := tokenFile(credentials, scope, dir)

	token, err := tokenFromFile(tokens)
	if err != nil {
		return nil, fmt.Errorf("no valid authorisation token in %s - run '%s authorise' (%w)", tokens, APP, err)
	}

	source := &persistentTokenSource{
		file:   tokens,
		source: config.TokenSource(ctx, token),
		last:   token.AccessToken,
	}

	refreshed, err := source.Token()
	if err != nil {
		return nil, fmt.Errorf("unable to refresh authorisation token (%w)", err)
	}

	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(refreshed, source)), nil
}

func oauthConfig(credentials, scope string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	return google.ConfigFromJSON(b, scope)
}

// tokenFile returns the path of the token file for the credentials and scope e.g.
// <dir>/credentials.drive
func tokenFile(credentials, scope, dir string) string {
	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	switch {
	case strings.HasPrefix(scope, SHEETS):
		return filepath.Join(dir, fmt.Sprintf("%s.sheets", name))

	case strings.HasPrefix(scope, DRIVE):
		return filepath.Join(dir, fmt.Sprintf("%s.drive", name))

	default:
		return filepath.Join(dir, fmt.Sprintf("%s.tokens", name))
	}
}

// persistentTokenSource saves the token whenever the underlying token source
// issues a new access token.
type persistentTokenSource struct {
	sync.Mutex
	file   string
	source oauth2.TokenSource
	last   string
}

func (s *persistentTokenSource) Token() (*oauth2.Token, error) {
	s.Lock()
	defer s.Unlock()

	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}

	if token.AccessToken != s.last {
		if err := saveToken(s.file, token); err != nil {
			warnf("unable to save refreshed token (%v)", err)
		} else {
			s.last = token.AccessToken
		}
	}

	return token, nil
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	token := oauth2.Token{}
	if err := json.NewDecoder(f).Decode(&token); err != nil {
		return nil, err
	}

	return &token, nil
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache OAuth token (%w)", err)
	}

	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
