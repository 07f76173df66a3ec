package main

import (
	"flag"
	"fmt"
	"log"

	"f1-bets.backend/pkg/crypto"
)

const minSecretBytes = 16

func main() {
	size := flag.Int("bytes", 32, "random bytes in the secret (hex output is twice as long)")
	flag.Parse()

	line, err := buildSecretLine(*size)
	if err != nil {
		log.Fatalf("failed to generate secret: %v", err)
	}

	fmt.Println("Generated JWT signing secret")
	fmt.Println(line)
}

func validateSize(size int) error {
	if size < minSecretBytes {
		return fmt.Errorf("invalid bytes: %d (minimum %d)", size, minSecretBytes)
	}
	return nil
}

// buildSecretLine renders a JWT_SECRET entry ready for a .env file
func buildSecretLine(size int) (string, error) {
	if err := validateSize(size); err != nil {
		return "", err
	}
	secret, err := crypto.GenerateRandomToken(size)
	if err != nil {
		return "", err
	}
	return "JWT_SECRET=" + secret, nil
}
