// Command hash-generator prints bcrypt hashes for the passwords given as
// arguments, for seeding users directly into a store.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/wanderlist-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Usage: %s [-cost N] password [password ...]\n", os.Args[0])
		os.Exit(2)
	}

	if failed := hashPasswords(os.Stdout, *cost, flag.Args()); failed > 0 {
		os.Exit(1)
	}
}

// hashPasswords writes one "Password/Hash" block per input and returns the
// number of inputs that could not be hashed. Passwords outside the length
// bounds accepted at registration are rejected.
func hashPasswords(w io.Writer, cost int, passwords []string) int {
	failed := 0
	for _, password := range passwords {
		if len(password) < domain.MinPasswordLength || len(password) > domain.MaxPasswordLength {
			fmt.Fprintf(w, "Error: password %q must be %d-%d bytes\n\n",
				password, domain.MinPasswordLength, domain.MaxPasswordLength)
			failed++
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			fmt.Fprintf(w, "Error generating hash for %s: %v\n\n", password, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "Password: %s\nHash: %s\n\n", password, string(hash))
	}
	return failed
}
