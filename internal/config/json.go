package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files. Durations
// are accepted either as strings ("30s") or as integer nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey           string   `json:"token_sign_key"`
		TokenIssuer            string   `json:"token_issuer"`
		TokenDuration          Duration `json:"token_duration"`
		PrincipalLookupTimeout Duration `json:"principal_lookup_timeout"`
		Version                string   `json:"version"`
	} `json:"app,omitempty"`

	Server struct {
		HTTPAddress        string   `json:"http_address"`
		GRPCAddress        string   `json:"grpc_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		CORSAllowedOrigins []string `json:"cors_allowed_origins"`
	} `json:"server,omitempty"`

	RateLimit struct {
		Limit         int      `json:"limit"`
		BlockDuration Duration `json:"block_duration"`
		ResetInterval Duration `json:"reset_interval"`
	} `json:"rate_limit,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Adapter struct {
		LogSink struct {
			URL            string   `json:"url"`
			Index          string   `json:"index"`
			RequestTimeout Duration `json:"request_timeout"`
		} `json:"log_sink,omitempty"`
		OAuth struct {
			Provider       string   `json:"provider"`
			ClientID       string   `json:"client_id"`
			ClientSecret   string   `json:"client_secret"`
			RedirectURL    string   `json:"redirect_url"`
			TokenURL       string   `json:"token_url"`
			UserInfoURL    string   `json:"user_info_url"`
			RequestTimeout Duration `json:"request_timeout"`
		} `json:"oauth,omitempty"`
	} `json:"adapter,omitempty"`

	Workers struct {
		AccessLogQueueSize int `json:"access_log_queue_size"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:           jsonCfg.App.TokenSignKey,
			TokenIssuer:            jsonCfg.App.TokenIssuer,
			TokenDuration:          time.Duration(jsonCfg.App.TokenDuration),
			PrincipalLookupTimeout: time.Duration(jsonCfg.App.PrincipalLookupTimeout),
			Version:                jsonCfg.App.Version,
		},
		Server: Server{
			HTTPAddress:        jsonCfg.Server.HTTPAddress,
			GRPCAddress:        jsonCfg.Server.GRPCAddress,
			RequestTimeout:     time.Duration(jsonCfg.Server.RequestTimeout),
			CORSAllowedOrigins: jsonCfg.Server.CORSAllowedOrigins,
		},
		RateLimit: RateLimit{
			Limit:         jsonCfg.RateLimit.Limit,
			BlockDuration: time.Duration(jsonCfg.RateLimit.BlockDuration),
			ResetInterval: time.Duration(jsonCfg.RateLimit.ResetInterval),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Adapter: Adapter{
			LogSink: LogSink{
				URL:            jsonCfg.Adapter.LogSink.URL,
				Index:          jsonCfg.Adapter.LogSink.Index,
				RequestTimeout: time.Duration(jsonCfg.Adapter.LogSink.RequestTimeout),
			},
			OAuth: OAuth{
				Provider:       jsonCfg.Adapter.OAuth.Provider,
				ClientID:       jsonCfg.Adapter.OAuth.ClientID,
				ClientSecret:   jsonCfg.Adapter.OAuth.ClientSecret,
				RedirectURL:    jsonCfg.Adapter.OAuth.RedirectURL,
				TokenURL:       jsonCfg.Adapter.OAuth.TokenURL,
				UserInfoURL:    jsonCfg.Adapter.OAuth.UserInfoURL,
				RequestTimeout: time.Duration(jsonCfg.Adapter.OAuth.RequestTimeout),
			},
		},
		Workers: Workers{
			AccessLogQueueSize: jsonCfg.Workers.AccessLogQueueSize,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
