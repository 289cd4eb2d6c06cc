// Command generate_samples writes a sample Kobo database and O'Reilly
// annotations export built from public domain books.
// Usage: go run ./cmd/generate_samples [--kobo path] [--oreilly path]
package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/mrlokans/highlights-export/internal/logger"
	"github.com/mrlokans/highlights-export/internal/samples"
)

const (
	defaultKoboPath    = "./samples/KoboReader.sqlite"
	defaultOReillyPath = "./samples/oreilly-annotations.json"
)

func main() {
	koboPath := pflag.String("kobo", defaultKoboPath, "path of the Kobo database to write (empty to skip)")
	oreillyPath := pflag.String("oreilly", defaultOReillyPath, "path of the O'Reilly export to write (empty to skip)")
	pflag.Parse()

	log := logger.New(logger.DefaultConfig())

	if *koboPath != "" {
		if err := writeKobo(*koboPath); err != nil {
			log.Error("failed to generate kobo database", "path", *koboPath, "err", err)
			os.Exit(1)
		}
		log.Info("generated kobo database", "path", *koboPath, "volumes", len(samples.DefaultKoboVolumes()))
	}

	if *oreillyPath != "" {
		if err := writeOReilly(*oreillyPath); err != nil {
			log.Error("failed to generate o'reilly export", "path", *oreillyPath, "err", err)
			os.Exit(1)
		}
		log.Info("generated o'reilly export", "path", *oreillyPath, "annotations", len(samples.DefaultOReillyAnnotations()))
	}
}

func writeKobo(path string) error {
	if err := prepare(path); err != nil {
		return err
	}
	return samples.WriteKoboDatabase(path, samples.DefaultKoboVolumes())
}

func writeOReilly(path string) error {
	if err := prepare(path); err != nil {
		return err
	}
	return samples.WriteOReillyExport(path, samples.DefaultOReillyAnnotations())
}

// prepare creates the parent directory and removes an existing file so the
// output starts fresh.
func prepare(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
