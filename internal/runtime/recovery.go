package runtime

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
)

// PanicHandler receives recovered panics from instance frame ticks.
type PanicHandler interface {
	HandlePanic(r interface{}, stack []byte)
}

// Recovery catches panics out of an instance's frame work so one
// misbehaving instance cannot take the whole process down: the instance
// is quiesced (suspended, its frame loop stops ticking), the panic is
// logged with a stack trace, and registered handlers run.
type Recovery struct {
	mu           sync.RWMutex
	handlers     []PanicHandler
	inst         *Instance
	panicLogFile *os.File
	logWriter    io.Writer
}

// NewRecovery creates a recovery manager for inst.
func NewRecovery(inst *Instance) *Recovery {
	return &Recovery{
		inst:      inst,
		handlers:  make([]PanicHandler, 0),
		logWriter: os.Stderr,
	}
}

// AddHandler registers a panic handler.
func (r *Recovery) AddHandler(h PanicHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, h)
}

// Handle processes one recovered panic value.
func (r *Recovery) Handle(panicValue interface{}) {
	stack := debug.Stack()

	// 1. Quiesce the instance so a half-mutated tree is never ticked.
	if r.inst != nil {
		r.inst.Suspend()
	}

	// 2. Record the panic.
	r.logPanic(panicValue, stack)

	// 3. Run handlers.
	r.mu.RLock()
	for _, h := range r.handlers {
		h.HandlePanic(panicValue, stack)
	}
	r.mu.RUnlock()
}

// SafeFrame runs one frame's work, routing any panic through Handle.
// Returns false if the frame panicked.
func (r *Recovery) SafeFrame(frame func()) (ok bool) {
	defer func() {
		if v := recover(); v != nil {
			r.Handle(v)
			ok = false
		}
	}()
	frame()
	return true
}

func (r *Recovery) logPanic(panicValue interface{}, stack []byte) {
	name := "?"
	if r.inst != nil {
		name = r.inst.Name
	}
	msg := fmt.Sprintf("\n\n=== PANIC (instance %s) ===\nValue: %v\n\nStack:\n%s\n\n",
		name, panicValue, stack)

	if r.logWriter != nil {
		r.logWriter.Write([]byte(msg))
	}
	if r.panicLogFile != nil {
		r.panicLogFile.WriteString(msg)
		r.panicLogFile.Sync()
	}
}

// EnablePanicLog mirrors panic reports into a file.
func (r *Recovery) EnablePanicLog(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	if r.panicLogFile != nil {
		r.panicLogFile.Close()
	}
	r.panicLogFile = f
	return nil
}

// SetLogWriter redirects panic output.
func (r *Recovery) SetLogWriter(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logWriter = w
}

// Close releases the panic log file, if any.
func (r *Recovery) Close() error {
	if r.panicLogFile != nil {
		err := r.panicLogFile.Close()
		r.panicLogFile = nil
		return err
	}
	return nil
}
