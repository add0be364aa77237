package naivebayes

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Label is the outcome class of a dataset row. The file tokens decide it, not the declaration order.
type Label uint8

const (
	Negative Label = 0
	Positive Label = 1
)

const (
	positiveToken = "positive"
	negativeToken = "negative"
	separator     = ","
)

var (
	ErrMalformedRow = errors.New("malformed dataset row")
	ErrEmptyDataset = errors.New("dataset is empty")
)

func (that Label) String() string {
	if that == Positive {
		return positiveToken
	}
	return negativeToken
}

// Row is a flattened row-major board snapshot with its outcome label.
type Row struct {
	Cells [entity.Size]entity.Cell
	Label Label
}

type Dataset []Row

// ParseRow decodes "x,o,b,...,positive".
func ParseRow(line string) (Row, error) {
	tokens := strings.Split(strings.TrimSpace(line), separator)
	if len(tokens) != entity.Size+1 {
		return Row{}, fmt.Errorf("%w: expected %d tokens, got %d", ErrMalformedRow, entity.Size+1, len(tokens))
	}

	var row Row
	for i, token := range tokens[:entity.Size] {
		cell, err := parseCell(strings.TrimSpace(token))
		if err != nil {
			return Row{}, fmt.Errorf("%w: cell %d: %w", ErrMalformedRow, i, err)
		}
		row.Cells[i] = cell
	}

	switch label := strings.TrimSpace(tokens[entity.Size]); label {
	case positiveToken:
		row.Label = Positive
	case negativeToken:
		row.Label = Negative
	default:
		return Row{}, fmt.Errorf("%w: unknown label %q", ErrMalformedRow, label)
	}

	return row, nil
}

func parseCell(token string) (entity.Cell, error) {
	switch token {
	case "x":
		return entity.MarkA, nil
	case "o":
		return entity.MarkB, nil
	case "b":
		return entity.Empty, nil
	default:
		return entity.Empty, fmt.Errorf("unknown tile %q", token)
	}
}

func formatCell(cell entity.Cell) string {
	switch cell {
	case entity.MarkA:
		return "x"
	case entity.MarkB:
		return "o"
	default:
		return "b"
	}
}

func (that Row) String() string {
	tokens := make([]string, 0, entity.Size+1)
	for _, cell := range that.Cells {
		tokens = append(tokens, formatCell(cell))
	}

	return strings.Join(append(tokens, that.Label.String()), separator)
}

// Load reads one row per line. Blank lines are skipped, any other bad line fails the load.
func Load(reader io.Reader) (Dataset, error) {
	var dataset Dataset

	scanner := bufio.NewScanner(reader)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		row, err := ParseRow(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		dataset = append(dataset, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	if len(dataset) == 0 {
		return nil, ErrEmptyDataset
	}

	return dataset, nil
}

func LoadFile(path string) (Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	dataset, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %s: %w", path, err)
	}

	return dataset, nil
}

// Positives counts the rows labelled Positive.
func (that Dataset) Positives() int {
	count := 0
	for _, row := range that {
		if row.Label == Positive {
			count++
		}
	}

	return count
}

// Fingerprint hashes the rows in their current order.
func (that Dataset) Fingerprint() uint64 {
	digest := xxhash.New()
	for _, row := range that {
		_, _ = digest.WriteString(row.String())
		_, _ = digest.WriteString("\n")
	}

	return digest.Sum64()
}

// CacheKey identifies a model trained from this dataset with the given seed and fraction.
func (that Dataset) CacheKey(seed int64, fraction float64) string {
	var buf [8]byte
	digest := xxhash.New()
	binary.LittleEndian.PutUint64(buf[:], that.Fingerprint())
	_, _ = digest.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(seed))
	_, _ = digest.Write(buf[:])
	_, _ = digest.WriteString(fmt.Sprintf("%g", fraction))

	return fmt.Sprintf("%016x", digest.Sum64())
}
