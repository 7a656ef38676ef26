package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrNoAPIKey = errors.New("missing API key")

// loadAPIKey reads the Google API key from a JSON file of the form {"apikey":"..."}.
func loadAPIKey(file string) (string, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w (no such file %s)", ErrNoAPIKey, file)
		}

		return "", err
	}

	apikey := struct {
		Key string `json:"apikey"`
	}{}

	if err := json.Unmarshal(b, &apikey); err != nil {
		return "", fmt.Errorf("invalid API key file %s (%w)", file, err)
	}

	if key := strings.TrimSpace(apikey.Key); key != "" {
		return key, nil
	}

	return "", fmt.Errorf("%w (%s)", ErrNoAPIKey, file)
}
