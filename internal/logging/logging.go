package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level is the severity of a log entry.
type Level int

const (
	Debug Level = iota
	Info
	Warn
	Err
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Err:
		return "ERR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel maps names like "debug" or "warn" to a Level. Unknown names yield Warn.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info":
		return Info
	case "err", "error":
		return Err
	default:
		return Warn
	}
}

// Logger is the single sink every tiler component reports through.
type Logger interface {
	Log(level Level, msg string)
}

// Logf formats a message and sends it to l. A nil Logger is ignored.
func Logf(l Logger, level Level, format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.Log(level, fmt.Sprintf(format, args...))
}

type discard struct{}

func (discard) Log(Level, string) {}

// Discard drops every entry.
var Discard Logger = discard{}

// Sink writes entries to a log file when one is configured, otherwise it
// writes only errors to the console.
//
// With a file, entries at or above the minimum level go to the file and the
// console stays quiet. Without a file, only Err entries reach the console.
type Sink struct {
	mu      sync.Mutex
	file    *log.Logger
	closer  io.Closer
	console *log.Logger
	min     Level
	path    string
	count   int
}

// NewSink returns a console-only sink.
func NewSink(console io.Writer) *Sink {
	return &Sink{
		console: log.New(console, "", log.Ldate|log.Ltime),
		min:     Warn,
	}
}

// OpenSink returns a sink that records to the file at path, truncating it.
func OpenSink(path string, console io.Writer, min Level) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	s := NewSink(console)
	s.file = log.New(f, "", log.Ldate|log.Ltime)
	s.closer = f
	s.min = min
	s.path = path
	return s, nil
}

func (s *Sink) Log(level Level, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := level.String() + ": " + msg
	if s.file != nil {
		if level < s.min {
			return
		}
		s.file.Println(line)
		s.count++
		return
	}
	if level == Err {
		s.console.Println(line)
		s.count++
	}
}

// Path returns the log file path, or "" for a console-only sink.
func (s *Sink) Path() string {
	return s.path
}

// Count returns the number of entries written so far.
func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

// Close closes the log file, if any.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}

// Entry is one recorded log line.
type Entry struct {
	Level   Level  `json:"-"`
	Message string `json:"message"`
}

// Memory keeps every entry in order. It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

func (m *Memory) Log(level Level, msg string) {
	m.mu.Lock()
	m.entries = append(m.entries, Entry{Level: level, Message: msg})
	m.mu.Unlock()
}

// Entries returns a copy of the recorded entries.
func (m *Memory) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Messages returns the messages logged at or above min, formatted as "LEVEL: msg".
func (m *Memory) Messages(min Level) []string {
	var out []string
	for _, e := range m.Entries() {
		if e.Level >= min {
			out = append(out, e.Level.String()+": "+e.Message)
		}
	}
	return out
}

// Count returns how many entries were logged at exactly level.
func (m *Memory) Count(level Level) int {
	n := 0
	for _, e := range m.Entries() {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Tee fans every entry out to all of ls.
func Tee(ls ...Logger) Logger {
	return tee(ls)
}

type tee []Logger

func (t tee) Log(level Level, msg string) {
	for _, l := range t {
		if l != nil {
			l.Log(level, msg)
		}
	}
}
