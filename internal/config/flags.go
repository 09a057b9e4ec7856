package config

import (
	"errors"
	"flag"
	"fmt"
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

// parseFlags parses all configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc health server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-lookup-timeout principal lookup timeout (e.g., "2s")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-cors-origins comma separated list of allowed CORS origins
//	-rate-limit requests admitted per identity per reset cycle
//	-block-duration penalty applied to identities over the limit
//	-reset-interval period of the rate limit reset
//	-log-sink-url base URL of the access log store
//	-log-sink-index index name of the access log store
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)

	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var lookupTimeout time.Duration
	var requestTimeout time.Duration
	var corsOrigins string
	var rateLimit int
	var blockDuration time.Duration
	var resetInterval time.Duration
	var logSinkURL string
	var logSinkIndex string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc health server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&lookupTimeout, "lookup-timeout", 0, "Principal lookup timeout (e.g., 2s)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&corsOrigins, "cors-origins", "", "Comma separated allowed CORS origins")
	fs.IntVar(&rateLimit, "rate-limit", 0, "Requests admitted per identity per reset cycle")
	fs.DurationVar(&blockDuration, "block-duration", 0, "Block duration for identities over the limit")
	fs.DurationVar(&resetInterval, "reset-interval", 0, "Rate limit reset interval")
	fs.StringVar(&logSinkURL, "log-sink-url", "", "Access log store base URL")
	fs.StringVar(&logSinkIndex, "log-sink-index", "", "Access log store index")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:           tokenSignKey,
			TokenIssuer:            tokenIssuer,
			TokenDuration:          tokenDuration,
			PrincipalLookupTimeout: lookupTimeout,
		},
		Server: Server{
			HTTPAddress:        serverAddress.String(),
			GRPCAddress:        grpcServerAddress.String(),
			RequestTimeout:     requestTimeout,
			CORSAllowedOrigins: splitList(corsOrigins),
		},
		RateLimit: RateLimit{
			Limit:         rateLimit,
			BlockDuration: blockDuration,
			ResetInterval: resetInterval,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Adapter: Adapter{
			LogSink: LogSink{
				URL:   logSinkURL,
				Index: logSinkIndex,
			},
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
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
