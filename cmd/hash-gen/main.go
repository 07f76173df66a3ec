package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"f1-bets.backend/internal/config"
	"f1-bets.backend/pkg/crypto"
)

var (
	printfFn       = fmt.Printf
	generateHashFn = generateHash
	fatalfFn       = log.Fatalf
)

type options struct {
	iterations int
	verify     string
	password   string
}

func parseOptions(args []string, defaultIterations int) (options, error) {
	fs := flag.NewFlagSet("hash-gen", flag.ContinueOnError)
	opts := options{}
	fs.IntVar(&opts.iterations, "iterations", defaultIterations, "PBKDF2 iteration count for new credentials")
	fs.StringVar(&opts.verify, "verify", "", "stored credential to check the password against")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	opts.password = resolvePassword(fs.Args())
	return opts, nil
}

func resolvePassword(args []string) string {
	password := "Abcdef1"
	if len(args) > 0 {
		return args[0]
	}
	return password
}

// generateHash encodes password the way the credential store persists it
func generateHash(password string, iterations int) (string, error) {
	return crypto.NewHasher(iterations).Hash(password)
}

func main() {
	opts, err := parseOptions(os.Args[1:], config.Load().Security.PasswordHashIterations)
	if err != nil {
		fatalfFn("Invalid arguments: %v", err)
		return
	}

	if opts.verify != "" {
		// Verify reads the iteration count from the credential itself
		printfFn("Credential matches: %t\n", crypto.NewHasher(opts.iterations).Verify(opts.verify, opts.password))
		return
	}

	printfFn("Generating hash for password: %s\n", opts.password)

	hash, err := generateHashFn(opts.password, opts.iterations)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
		return
	}

	printfFn("PBKDF2 Credential: %s\n", hash)
}
