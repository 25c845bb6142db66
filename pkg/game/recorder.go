package game

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// Frame is one recorded snapshot.
type Frame struct {
	Seq   int       `json:"seq"`
	Time  time.Time `json:"time"`
	State GameState `json:"state"`
}

// Recorder writes every snapshot it is given to a JSONL trace in the
// background. It is write-only; traces are for inspection, not for resuming.
type Recorder struct {
	path       string
	file       *os.File
	writer     *bufio.Writer
	recordChan chan Frame
	wg         sync.WaitGroup
	mu         sync.Mutex
	closed     bool
	seq        int
	dropped    int
	log        *slog.Logger
}

// NewRecorder creates dir if needed and opens game_{sessionID}_{unix}.jsonl in it.
func NewRecorder(dir, sessionID string, logger *slog.Logger) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create records dir: %w", err)
	}

	filename := fmt.Sprintf("game_%s_%d.jsonl", sessionID, time.Now().Unix())
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create record file: %w", err)
	}

	r := &Recorder{
		path:       path,
		file:       f,
		writer:     bufio.NewWriter(f),
		recordChan: make(chan Frame, 1000),
		log:        logger,
	}

	r.wg.Add(1)
	go r.writeLoop()

	return r, nil
}

// Path returns the trace file location.
func (r *Recorder) Path() string {
	return r.path
}

// Record queues a snapshot. It never blocks the game loop; frames are dropped
// when the queue is full. Record matches Subscriber.
func (r *Recorder) Record(st GameState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	r.seq++
	select {
	case r.recordChan <- Frame{Seq: r.seq, Time: time.Now(), State: st}:
	default:
		r.dropped++
	}
}

// Close flushes pending frames and closes the file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	dropped := r.dropped
	r.mu.Unlock()

	close(r.recordChan)
	r.wg.Wait()

	if dropped > 0 {
		r.log.Warn("recorder dropped frames", "dropped", dropped, "path", r.path)
	}
	if err := r.writer.Flush(); err != nil {
		r.file.Close()
		return fmt.Errorf("failed to flush record file: %w", err)
	}
	return r.file.Close()
}

func (r *Recorder) writeLoop() {
	defer r.wg.Done()

	encoder := json.NewEncoder(r.writer)
	for frame := range r.recordChan {
		if err := encoder.Encode(frame); err != nil {
			r.log.Error("failed to record frame", "seq", frame.Seq, "error", err)
		}
	}
}

// ReadTrace decodes the frames of a trace written by a Recorder.
func ReadTrace(r io.Reader) ([]Frame, error) {
	var frames []Frame
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var fr Frame
		if err := json.Unmarshal(scanner.Bytes(), &fr); err != nil {
			return frames, fmt.Errorf("bad frame on line %d: %w", line, err)
		}
		frames = append(frames, fr)
	}
	if err := scanner.Err(); err != nil {
		return frames, fmt.Errorf("failed to read trace: %w", err)
	}
	return frames, nil
}

// TraceFile describes a trace found by ListTraces.
type TraceFile struct {
	Name      string
	Path      string
	Size      int64
	Time      time.Time
	SessionID string
}

// ListTraces returns the .jsonl traces in dir, newest first.
func ListTraces(dir string) ([]TraceFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list records dir: %w", err)
	}

	var traces []TraceFile
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".jsonl" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		// game_{sessionID}_{unix}.jsonl
		var sessionID string
		if parts := strings.Split(strings.TrimSuffix(e.Name(), ".jsonl"), "_"); len(parts) == 3 {
			sessionID = parts[1]
		}
		traces = append(traces, TraceFile{
			Name:      e.Name(),
			Path:      filepath.Join(dir, e.Name()),
			Size:      info.Size(),
			Time:      info.ModTime(),
			SessionID: sessionID,
		})
	}

	sort.Slice(traces, func(i, j int) bool {
		return traces[i].Time.After(traces[j].Time)
	})
	return traces, nil
}
