package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a capture API address in format [host]:[port]
//	-d database DSN (SQLite path or postgres:// URI)
//	-c/-config json file path with configs
//	-notion-token Notion integration token
//	-notion-database Notion database id
//	-capture-token static bearer token for the capture API
//	-sync-interval background sync interval (e.g., "5m")
//	-retry-delay delay before a failed note is retried (e.g., "60s")
//	-max-unknown-attempts attempt cap for unclassified failures
//	-request-timeout outbound Notion request timeout (e.g., "15s")
func ParseFlags() *StructuredConfig {
	var captureAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var notionToken string
	var notionDatabase string
	var captureToken string
	var syncInterval time.Duration
	var retryDelay time.Duration
	var maxUnknownAttempts int64
	var requestTimeout time.Duration

	flag.Var(&captureAddress, "a", "Capture API net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&notionToken, "notion-token", "", "Notion integration token")
	flag.StringVar(&notionDatabase, "notion-database", "", "Notion database id")
	flag.StringVar(&captureToken, "capture-token", "", "Capture API bearer token")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")
	flag.DurationVar(&retryDelay, "retry-delay", 0, "Retry delay for failed notes (e.g., 60s)")
	flag.Int64Var(&maxUnknownAttempts, "max-unknown-attempts", 0, "Attempt cap for unclassified failures")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Notion request timeout (e.g., 15s)")

	flag.Parse()

	return &StructuredConfig{
		Notion: Notion{
			Token:          notionToken,
			DatabaseID:     notionDatabase,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:  captureAddress.String(),
			CaptureToken: captureToken,
		},
		Workers: Workers{
			SyncInterval:       syncInterval,
			RetryDelay:         retryDelay,
			MaxUnknownAttempts: maxUnknownAttempts,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
