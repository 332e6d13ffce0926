package news

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const ManualSource = "manual"

// LoadHeadlines reads one headline per line. Blank lines are skipped.
func LoadHeadlines(r io.Reader) ([]Item, error) {
	var items []Item
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		items = append(items, Item{Title: line, Source: ManualSource})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read headlines: %w", err)
	}
	return items, nil
}

func LoadHeadlinesFile(path string) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open headlines file: %w", err)
	}
	defer f.Close()
	return LoadHeadlines(f)
}
