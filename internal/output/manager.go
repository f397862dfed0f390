package output

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// ProgressSource reports bytes done and bytes expected. It is polled from the
// display goroutine, so it must be safe for concurrent use and never block.
type ProgressSource func() (done, total uint64)

type TransferOutput struct {
	ID          string
	Name        string
	Status      string
	Message     string
	Source      ProgressSource
	Complete    bool
	StartTime   time.Time
	LastUpdated time.Time
	Error       error
	Index       int
}

type ErrorReport struct {
	Name  string
	Error error
	Time  time.Time
}

type Manager struct {
	outputs     map[string]*TransferOutput
	mutex       sync.RWMutex
	numLines    int
	errors      []ErrorReport
	doneCh      chan struct{}
	displayTick time.Duration
	count       int
	displayWg   sync.WaitGroup
	interactive bool
	stopOnce    sync.Once
}

func NewManager() *Manager {
	return &Manager{
		outputs:     make(map[string]*TransferOutput),
		doneCh:      make(chan struct{}),
		displayTick: 300 * time.Millisecond,
		interactive: isTerminal(),
	}
}

// Register adds a row for a transfer and returns its key.
func (m *Manager) Register(id, name string, source ProgressSource) string {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.count++
	if id == "" {
		id = fmt.Sprint(m.count)
	}
	m.outputs[id] = &TransferOutput{
		ID:          id,
		Name:        name,
		Status:      "pending",
		Source:      source,
		StartTime:   time.Now(),
		LastUpdated: time.Now(),
		Index:       m.count,
	}
	return id
}

func (m *Manager) SetMessage(id string, message string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if info, exists := m.outputs[id]; exists {
		info.Message = message
		info.LastUpdated = time.Now()
	}
}

func (m *Manager) SetStatus(id string, status string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if info, exists := m.outputs[id]; exists {
		info.Status = status
		info.LastUpdated = time.Now()
	}
}

func (m *Manager) GetStatus(id string) string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if info, exists := m.outputs[id]; exists {
		return info.Status
	}
	return "unknown"
}

func (m *Manager) Complete(id string, message string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if info, exists := m.outputs[id]; exists {
		if message == "" {
			info.Message = fmt.Sprintf("Completed %s", info.Name)
		} else {
			info.Message = message
		}
		info.Complete = true
		info.Status = "success"
		info.LastUpdated = time.Now()
	}
}

func (m *Manager) ReportError(id string, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if info, exists := m.outputs[id]; exists {
		info.Complete = true
		info.Status = "error"
		info.Error = err
		info.Message = fmt.Sprintf("Failed %s", info.Name)
		info.LastUpdated = time.Now()
		m.errors = append(m.errors, ErrorReport{
			Name:  info.Name,
			Error: err,
			Time:  time.Now(),
		})
	}
}

// Counts returns succeeded, failed and total rows.
func (m *Manager) Counts() (int, int, int) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	var success, failures int
	for _, info := range m.outputs {
		switch info.Status {
		case "success":
			success++
		case "error":
			failures++
		}
	}
	return success, failures, len(m.outputs)
}

func (m *Manager) GetStatusIndicator(status string) string {
	switch status {
	case "success":
		return successStyle.Render(StyleSymbols["pass"])
	case "error":
		return errorStyle.Render(StyleSymbols["fail"])
	case "warning":
		return warningStyle.Render(StyleSymbols["warning"])
	case "pending":
		return pendingStyle.Render(StyleSymbols["pending"])
	default:
		return infoStyle.Render(StyleSymbols["bullet"])
	}
}

func (m *Manager) sorted() []*TransferOutput {
	var all []*TransferOutput
	for _, info := range m.outputs {
		all = append(all, info)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].Index < all[j].Index
	})
	return all
}

func (m *Manager) render(info *TransferOutput) []string {
	elapsed := time.Since(info.StartTime)
	if info.Complete {
		elapsed = info.LastUpdated.Sub(info.StartTime)
	}
	var styledMessage string
	switch info.Status {
	case "success":
		styledMessage = successStyle.Render(info.Message)
	case "error":
		styledMessage = errorStyle.Render(info.Message)
	case "warning":
		styledMessage = warningStyle.Render(info.Message)
	default:
		styledMessage = pendingStyle.Render(info.Message)
	}
	lines := []string{fmt.Sprintf("%s%s %s %s", strings.Repeat(" ", 2), m.GetStatusIndicator(info.Status),
		debugStyle.Render(elapsed.Round(time.Second).String()), styledMessage)}
	if info.Source != nil && !info.Complete {
		done, total := info.Source()
		lines = append(lines, strings.Repeat(" ", 2+4)+progressLine(done, total, elapsed.Seconds()))
	}
	return lines
}

func (m *Manager) updateDisplay() {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	availableLines := getTerminalHeight() - 3
	if m.numLines > 0 {
		fmt.Fprintf(Out, "\033[%dA\033[J", m.numLines)
	}
	var lines []string
	for _, info := range m.sorted() {
		lines = append(lines, m.render(info)...)
	}
	if len(lines) > availableLines && availableLines > 0 {
		lines = lines[len(lines)-availableLines:]
	}
	for _, line := range lines {
		fmt.Fprintln(Out, line)
	}
	m.numLines = len(lines)
}

// StartDisplay redraws all rows on a ticker while attached to a terminal.
func (m *Manager) StartDisplay() {
	m.displayWg.Add(1)
	go func() {
		defer m.displayWg.Done()
		ticker := time.NewTicker(m.displayTick)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if m.interactive {
					m.updateDisplay()
				}
			case <-m.doneCh:
				if m.interactive {
					m.updateDisplay()
				}
				m.ShowSummary()
				return
			}
		}
	}()
}

func (m *Manager) StopDisplay() {
	m.stopOnce.Do(func() { close(m.doneCh) })
	m.displayWg.Wait()
}

func (m *Manager) displayErrors() {
	if len(m.errors) == 0 {
		return
	}
	fmt.Fprintln(Out)
	fmt.Fprintln(Out, strings.Repeat(" ", 2)+errorStyle.Bold(true).Render("Errors:"))
	for i, err := range m.errors {
		fmt.Fprintf(Out, "%s%s %s %s\n",
			strings.Repeat(" ", 2+2),
			errorStyle.Render(fmt.Sprintf("%d.", i+1)),
			debugStyle.Render(fmt.Sprintf("[%s]", err.Time.Format("15:04:05"))),
			errorStyle.Render(fmt.Sprintf("Transfer: %s", err.Name)))
		fmt.Fprintf(Out, "%s%s\n", strings.Repeat(" ", 2+4), errorStyle.Render(fmt.Sprintf("Error: %v", err.Error)))
	}
}

func (m *Manager) ShowSummary() {
	success, failures, total := m.Counts()
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if total == 0 {
		return
	}
	fmt.Fprintln(Out)
	fmt.Fprintln(Out, strings.Repeat(" ", 2)+success2Style.Render(fmt.Sprintf("Completed %d of %d", success, total)))
	if failures > 0 {
		fmt.Fprintln(Out, strings.Repeat(" ", 2)+errorStyle.Render(fmt.Sprintf("Failed %d of %d", failures, total)))
	}
	m.displayErrors()
	fmt.Fprintln(Out)
}
