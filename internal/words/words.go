// Package words supplies the fixed ordered sequence of words shown during a run.
package words

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptySource   = errors.New("word source is empty")
	ErrDuplicateWord = errors.New("duplicate word")
	ErrBlankWord     = errors.New("blank word")
	ErrUnknownSet    = errors.New("unknown word set")
)

// Source is an ordered, duplicate-free list of words
type Source struct {
	words []string
}

// New validates words and builds a Source from them
func New(words []string) (*Source, error) {
	if len(words) == 0 {
		return nil, ErrEmptySource
	}

	seen := make(map[string]struct{}, len(words))
	cleaned := make([]string, 0, len(words))
	for i, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			return nil, fmt.Errorf("word %d: %w", i, ErrBlankWord)
		}
		if _, ok := seen[w]; ok {
			return nil, fmt.Errorf("%q: %w", w, ErrDuplicateWord)
		}
		seen[w] = struct{}{}
		cleaned = append(cleaned, w)
	}

	return &Source{words: cleaned}, nil
}

// Words returns a copy of the words in presentation order
func (s *Source) Words() []string {
	out := make([]string, len(s.words))
	copy(out, s.words)
	return out
}

// Len returns the number of words
func (s *Source) Len() int {
	return len(s.words)
}

// Builtin returns one of the word sets compiled into the binary ("dev" or "full")
func Builtin(set string) (*Source, error) {
	switch strings.ToLower(strings.TrimSpace(set)) {
	case "dev":
		return New(devWords)
	case "full", "":
		return New(fullWords)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSet, set)
	}
}

type fileFormat struct {
	Words []string `yaml:"words"`
}

// LoadFile reads a YAML document of the form `words: [...]`
func LoadFile(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word file: %w", err)
	}

	var doc fileFormat
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse word file %s: %w", path, err)
	}

	return New(doc.Words)
}

// Load picks the word file when one is configured, otherwise the named builtin set
func Load(file, set string) (*Source, error) {
	if strings.TrimSpace(file) != "" {
		return LoadFile(file)
	}
	return Builtin(set)
}
