package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// NetAddress is a host:port pair implementing flag.Value.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses command-line arguments into a partial config.
//
// Flags:
//
//	-a                 HTTP listen address host:port
//	-grpc-address      gRPC listen address host:port
//	-d                 database DSN
//	-images-dir        product image directory
//	-c, -config        JSON config file path
//	-token-sign-key    JWT signing key
//	-token-issuer      JWT issuer
//	-token-duration    JWT lifetime (e.g. 24h)
//	-bcrypt-cost       bcrypt work factor
//	-request-timeout   request timeout (e.g. 30s)
//	-hash-key          cart merge HMAC key
//	-server-url        base URL of the API (client)
//	-sync-interval     local cart sync period (client)
//	-order-ttl         pending order lifetime
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("ferrari-store", flag.ContinueOnError)

	var serverAddress, grpcServerAddress NetAddress
	cfg := &StructuredConfig{}

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Database DSN")
	fs.StringVar(&cfg.Storage.Files.ImagesDir, "images-dir", "", "Product image directory")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "Token duration (e.g., 24h)")
	fs.IntVar(&cfg.App.BcryptCost, "bcrypt-cost", 0, "bcrypt cost")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s)")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "Cart merge hash key")
	fs.StringVar(&cfg.Adapter.HTTPAddress, "server-url", "", "Storefront API base URL")
	fs.DurationVar(&cfg.Workers.SyncInterval, "sync-interval", 0, "Local cart sync interval")
	fs.DurationVar(&cfg.Workers.PendingOrderTTL, "order-ttl", 0, "Pending order lifetime")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = serverAddress.String()
	cfg.Server.GRPCAddress = grpcServerAddress.String()

	return cfg, nil
}

// String returns host:port, or an empty string for an unset address.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses host:port. The host must be "localhost", empty or an IP.
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
