package persistence

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// LoginRecord is one entry of the append-only login audit file.
type LoginRecord struct {
	Username   string
	At         time.Time
	Successful bool
}

const (
	loginResultSuccess = "success"
	loginResultFailure = "failure"
)

// FileActivityLog appends login records to a plain text file, one record per
// line: RFC 3339 timestamp, username, and result, tab separated. The file is
// created on first append.
type FileActivityLog struct {
	mu   sync.Mutex
	path string
}

// NewFileActivityLog returns a log writing to path.
func NewFileActivityLog(path string) *FileActivityLog {
	return &FileActivityLog{path: path}
}

// Append writes one record to the end of the file.
func (l *FileActivityLog) Append(ctx context.Context, record LoginRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open activity log: %w", err)
	}

	result := loginResultFailure
	if record.Successful {
		result = loginResultSuccess
	}
	line := fmt.Sprintf("%s\t%s\t%s\n", record.At.UTC().Format(time.RFC3339), record.Username, result)
	if _, err := file.WriteString(line); err != nil {
		file.Close()
		return fmt.Errorf("write activity log: %w", err)
	}
	return file.Close()
}

// List reads every record in file order. A missing file yields an empty
// list. Malformed lines are skipped.
func (l *FileActivityLog) List(ctx context.Context) ([]LoginRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open activity log: %w", err)
	}
	defer file.Close()

	var records []LoginRecord
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) != 3 {
			continue
		}
		at, err := time.Parse(time.RFC3339, fields[0])
		if err != nil {
			continue
		}
		records = append(records, LoginRecord{
			Username:   fields[1],
			At:         at,
			Successful: fields[2] == loginResultSuccess,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read activity log: %w", err)
	}
	return records, nil
}
