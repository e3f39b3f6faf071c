package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type structuredJSONConfig struct {
	Notion struct {
		Token          string   `json:"token"`
		DatabaseID     string   `json:"database_id"`
		RequestTimeout Duration `json:"request_timeout"`

		Properties struct {
			Title     string `json:"title"`
			Area      string `json:"area"`
			Tipo      string `json:"tipo"`
			Estado    string `json:"estado"`
			Fecha     string `json:"fecha"`
			Prioridad string `json:"prioridad"`
		} `json:"properties,omitempty"`
	} `json:"notion,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		CaptureToken   string   `json:"capture_token"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Workers struct {
		SyncInterval       Duration `json:"sync_interval"`
		RetryDelay         Duration `json:"retry_delay"`
		MaxUnknownAttempts int64    `json:"max_unknown_attempts"`
	} `json:"workers,omitempty"`

	Processor struct {
		APIKey         string   `json:"api_key"`
		BaseURL        string   `json:"base_url"`
		Model          string   `json:"model"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"processor,omitempty"`

	Defaults struct {
		Area      string `json:"area"`
		Tipo      string `json:"tipo"`
		Estado    string `json:"estado"`
		Prioridad string `json:"prioridad"`
	} `json:"defaults,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg structuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Notion: Notion{
			Token:          jsonCfg.Notion.Token,
			DatabaseID:     jsonCfg.Notion.DatabaseID,
			RequestTimeout: time.Duration(jsonCfg.Notion.RequestTimeout),
			Properties: Properties{
				Title:     jsonCfg.Notion.Properties.Title,
				Area:      jsonCfg.Notion.Properties.Area,
				Tipo:      jsonCfg.Notion.Properties.Tipo,
				Estado:    jsonCfg.Notion.Properties.Estado,
				Fecha:     jsonCfg.Notion.Properties.Fecha,
				Prioridad: jsonCfg.Notion.Properties.Prioridad,
			},
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			CaptureToken:   jsonCfg.Server.CaptureToken,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval:       time.Duration(jsonCfg.Workers.SyncInterval),
			RetryDelay:         time.Duration(jsonCfg.Workers.RetryDelay),
			MaxUnknownAttempts: jsonCfg.Workers.MaxUnknownAttempts,
		},
		Processor: Processor{
			APIKey:         jsonCfg.Processor.APIKey,
			BaseURL:        jsonCfg.Processor.BaseURL,
			Model:          jsonCfg.Processor.Model,
			RequestTimeout: time.Duration(jsonCfg.Processor.RequestTimeout),
		},
		Defaults: Defaults{
			Area:      jsonCfg.Defaults.Area,
			Tipo:      jsonCfg.Defaults.Tipo,
			Estado:    jsonCfg.Defaults.Estado,
			Prioridad: jsonCfg.Defaults.Prioridad,
		},
		JSONFilePath: "",
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
