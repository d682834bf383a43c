// Package betlog provides append-only sinks for the engine's per-bet
// record stream.
package betlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/dicemate/dicemate/internal/domain"
)

// JSONLWriter appends one JSON object per bet record to a file. Writes are
// buffered and serialized; call Close to flush.
type JSONLWriter struct {
	mu   sync.Mutex
	file *os.File
	buf  *bufio.Writer
	enc  *json.Encoder
}

// NewJSONLWriter opens (or creates) the log file for appending.
func NewJSONLWriter(path string) (*JSONLWriter, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open bet log %s: %w", path, err)
	}
	buf := bufio.NewWriter(file)
	return &JSONLWriter{
		file: file,
		buf:  buf,
		enc:  json.NewEncoder(buf),
	}, nil
}

// Write appends one record. Encoder adds the trailing newline, keeping the
// file one record per line.
func (w *JSONLWriter) Write(rec *domain.BetRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.enc.Encode(rec); err != nil {
		return fmt.Errorf("append bet record: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying file.
func (w *JSONLWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return fmt.Errorf("flush bet log: %w", err)
	}
	return w.file.Close()
}

// MultiSink fans one record out to several sinks in order. The first error
// wins but all sinks still see the record.
type MultiSink []interface {
	Write(rec *domain.BetRecord) error
}

// Write delivers rec to every sink.
func (m MultiSink) Write(rec *domain.BetRecord) error {
	var first error
	for _, sink := range m {
		if err := sink.Write(rec); err != nil && first == nil {
			first = err
		}
	}
	return first
}
