package env

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// Load reads a dotenv file (e.g. ".env") and exports each KEY=VALUE into the process
// environment. Variables that are already set win over the file. A missing file is not an error.
// Returns the keys that were exported.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	vars, err := Parse(f)
	if err != nil {
		return nil, err
	}
	var set []string
	for _, kv := range vars {
		if _, exists := os.LookupEnv(kv[0]); exists {
			continue
		}
		if err := os.Setenv(kv[0], kv[1]); err != nil {
			return set, err
		}
		set = append(set, kv[0])
	}
	return set, nil
}

// Parse reads KEY=VALUE lines in file order. Empty lines, lines starting with # and lines
// without a key are skipped. An optional "export " prefix and matching surrounding quotes are
// removed.
func Parse(r io.Reader) ([][2]string, error) {
	var out [][2]string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		i := strings.Index(line, "=")
		if i <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		value := strings.TrimSpace(line[i+1:])
		if key == "" {
			continue
		}
		if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
		out = append(out, [2]string{key, value})
	}
	return out, scanner.Err()
}
