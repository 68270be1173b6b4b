// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"os"
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

func flagArgs() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return os.Args[1:]
}

// ParseFlags parses configuration flags from args.
//
// Flags:
//
//	-a sync service listen address in format [host]:[port]
//	-d service database URI
//	-dsn client SQLite file
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout inbound request timeout
//	-adapter-timeout outbound request timeout
//	-scope sync scope name
//	-service-uri sync service base URL
//	-batch-size upload row cap per session
//	-download-batch-size rows per download page
//	-sync-interval sync job period
//	-conflict-policy server-wins | client-wins | merge
//	-log-file client log file
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("sync", flag.ContinueOnError)

	var (
		serverAddress     NetAddress
		databaseURI       string
		dsn               string
		jsonConfigPath    string
		tokenSignKey      string
		tokenIssuer       string
		tokenDuration     time.Duration
		requestTimeout    time.Duration
		adapterTimeout    time.Duration
		scope             string
		serviceURI        string
		batchSize         int
		downloadBatchSize int
		syncInterval      time.Duration
		conflictPolicy    string
		logFile           string
	)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseURI, "d", "", "Service database URI")
	fs.StringVar(&dsn, "dsn", "", "Client SQLite file")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Inbound request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&adapterTimeout, "adapter-timeout", 0, "Outbound request timeout (e.g., 30s)")
	fs.StringVar(&scope, "scope", "", "Sync scope name")
	fs.StringVar(&serviceURI, "service-uri", "", "Sync service base URL")
	fs.IntVar(&batchSize, "batch-size", 0, "Upload row cap per session")
	fs.IntVar(&downloadBatchSize, "download-batch-size", 0, "Rows per download page")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Sync job period")
	fs.StringVar(&conflictPolicy, "conflict-policy", "", "server-wins | client-wins | merge")
	fs.StringVar(&logFile, "log-file", "", "Client log file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Storage: Storage{
			DB: DB{
				DSN:         dsn,
				DatabaseURI: databaseURI,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{RequestTimeout: adapterTimeout},
		Workers: Workers{SyncInterval: syncInterval},
		Sync: Sync{
			Scope:             scope,
			ServiceURI:        serviceURI,
			BatchSize:         batchSize,
			DownloadBatchSize: downloadBatchSize,
			ConflictPolicy:    conflictPolicy,
		},
		Log:          Log{File: logFile},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
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

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
