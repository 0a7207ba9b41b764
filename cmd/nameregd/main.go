package main

import (
	"context"
	"fmt"
	"os"

	"namereg/cmd/nameregd/cmd"
	"namereg/crypto/pqc/dilithium"
)

func init() {
	if name := dilithium.Default().Name(); name != dilithium.AlgoDilithium3 {
		panic("security: invalid PQC scheme linked: " + name)
	}
}

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
