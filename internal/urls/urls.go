package urls

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Read parses a newline-delimited list of storefront base URLs. Blank lines
// are skipped; any line that is not an absolute URL is an error.
func Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url list: %w", err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		if err := validate(raw); err != nil {
			return nil, fmt.Errorf("url list %s line %d: %w", path, line, err)
		}
		out = append(out, raw)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read url list: %w", err)
	}
	return out, nil
}

func validate(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid URL (missing scheme/host): %q", raw)
	}
	return nil
}
