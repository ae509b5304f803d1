//go:build mage
// +build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var (
	binDir  = "bin"
	appName = "orderpayment-api"
)

var Default = Run

// Run starts the API on :8080 (or PORT).
func Run() error {
	mg.Deps(Tidy)
	fmt.Println("Running (go run) ...")
	return sh.RunV("go", "run", "./cmd/api")
}

// Build compiles the API binary into bin/.
func Build() error {
	mg.Deps(Tidy)
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}
	out := filepath.Join(binDir, appName)
	if runtime.GOOS == "windows" {
		out += ".exe"
	}
	fmt.Println("Building", out, "...")
	return sh.RunV("go", "build", "-o", out, "./cmd/api")
}

// Test runs the whole test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs golangci-lint when installed, go vet otherwise.
func Lint() error {
	if _, err := exec.LookPath("golangci-lint"); err == nil {
		return sh.RunV("golangci-lint", "run", "./...")
	}
	fmt.Println("golangci-lint not found, falling back to go vet")
	return sh.RunV("go", "vet", "./...")
}

// Tidy syncs go.mod/go.sum.
func Tidy() error {
	return sh.RunV("go", "mod", "tidy")
}

// Migrate bootstraps the database schema.
func Migrate() error {
	return sh.RunV("go", "run", "./cmd/tools/createtable")
}

// Seed loads demo data.
func Seed() error {
	return sh.RunV("go", "run", "./cmd/tools/seed")
}
