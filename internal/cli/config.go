package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL       string
	UserID          string
	Token           string
	CredentialsFile string
	Output          string
	Verbose         bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:       getEnvOrDefault("FDSAAS_SERVER", "http://localhost:8080"),
		UserID:          os.Getenv("FDSAAS_USER_ID"),
		Token:           os.Getenv("FDSAAS_TOKEN"),
		CredentialsFile: getEnvOrDefault("FDSAAS_CREDENTIALS_FILE", defaultCredentialsFile()),
		Output:          "text",
		Verbose:         false,
	}
}

// storedCredentials is the on-disk session file format
type storedCredentials struct {
	UserID   string `json:"user_id"`
	JWTToken string `json:"jwt_token"`
}

// LoadCredentials loads the saved session if none was given via flag/env
func (c *Config) LoadCredentials() error {
	if c.Token != "" && c.UserID != "" {
		return nil
	}

	data, err := os.ReadFile(c.CredentialsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No saved session is fine
		}
		return err
	}

	var creds storedCredentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return err
	}
	if c.UserID == "" {
		c.UserID = creds.UserID
	}
	if c.Token == "" {
		c.Token = creds.JWTToken
	}
	return nil
}

// SaveCredentials saves the session to the credentials file
func (c *Config) SaveCredentials(userID, token string) error {
	c.UserID = userID
	c.Token = token

	dir := filepath.Dir(c.CredentialsFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(storedCredentials{UserID: userID, JWTToken: token})
	if err != nil {
		return err
	}
	return os.WriteFile(c.CredentialsFile, data, 0600)
}

// ClearCredentials removes the saved session
func (c *Config) ClearCredentials() error {
	c.UserID = ""
	c.Token = ""

	if err := os.Remove(c.CredentialsFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func defaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fdsaas/session"
	}
	return filepath.Join(home, ".fdsaas", "session")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
