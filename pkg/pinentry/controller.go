package pinentry

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// CellCount is the number of single-digit input cells in the PIN form.
const CellCount = 4

var (
	ErrCellIndex      = errors.New("cell index out of range")
	ErrIncomplete     = errors.New("pin entry incomplete")
	ErrSubmitInFlight = errors.New("submission already in flight")
	ErrSuperseded     = errors.New("submission superseded by a later edit")
)

// State describes where a pairing attempt currently stands.
type State int

const (
	StateIdle State = iota
	StateReady
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Submitter delivers a completed PIN to the pairing endpoint. A nil error
// means the endpoint accepted the PIN.
type Submitter interface {
	SubmitPin(ctx context.Context, deviceID, pin string) error
}

// Controller mediates between the segmented PIN input cells and one logical
// PIN value: it sanitizes keystrokes, moves focus, gates submission, and
// tracks which of the two feedback banners is showing.
//
// All state is guarded by an internal mutex that is released for the duration
// of the network call, so input events arriving while a submission is
// outstanding are processed immediately. A submission whose result arrives
// after a later edit is discarded rather than allowed to flip the banners.
type Controller struct {
	mu         sync.Mutex
	deviceID   string
	submitter  Submitter
	cells      [CellCount]string
	focused    int
	selection  int
	state      State
	submitting bool
	generation uint64
	success    bool
	failure    bool
}

// New returns a controller with all cells empty and focus on the first cell.
func New(deviceID string, submitter Submitter) *Controller {
	return &Controller{
		deviceID:  deviceID,
		submitter: submitter,
		state:     StateIdle,
	}
}

// sanitize strips everything that is not a decimal digit and keeps at most
// the first digit, so a stored cell value always matches ^[0-9]?$.
func sanitize(raw string) string {
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			return string(r)
		}
	}
	return ""
}

// Input records a keystroke in cell index. The raw value is sanitized before
// it is stored; a non-empty result advances focus to the next cell. Any edit
// clears the feedback banners and abandons an outstanding submission.
func (c *Controller) Input(index int, raw string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= CellCount {
		return ErrCellIndex
	}

	value := sanitize(raw)
	c.cells[index] = value

	// Editing invalidates any terminal outcome and any in-flight request.
	c.success = false
	c.failure = false
	c.generation++

	if value != "" && index < CellCount-1 {
		c.focusLocked(index + 1)
	}

	c.refreshStateLocked()
	return nil
}

// Focus moves input focus to cell index and selects its full current content,
// so the next keystroke replaces rather than appends.
func (c *Controller) Focus(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= CellCount {
		return ErrCellIndex
	}
	c.focusLocked(index)
	return nil
}

func (c *Controller) focusLocked(index int) {
	c.focused = index
	c.selection = len(c.cells[index])
}

// Submit assembles the PIN and delivers it to the pairing endpoint. It is a
// no-op (ErrIncomplete) while any cell is empty and refuses to start a second
// request while one is outstanding. On completion exactly one banner is set,
// unless the attempt was superseded by an edit, in which case the stale
// result is dropped and ErrSuperseded returned.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if !c.canSubmitLocked() {
		c.mu.Unlock()
		return ErrIncomplete
	}

	pin := strings.Join(c.cells[:], "")
	gen := c.generation
	c.submitting = true
	c.state = StateSubmitting
	c.mu.Unlock()

	err := c.submitter.SubmitPin(ctx, c.deviceID, pin)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if gen != c.generation {
		// The user edited the cells while this request was outstanding;
		// its outcome no longer describes the current PIN.
		c.refreshStateLocked()
		return ErrSuperseded
	}

	if err != nil {
		c.success = false
		c.failure = true
		c.state = StateError
		return err
	}

	c.success = true
	c.failure = false
	c.state = StateSuccess
	return nil
}

func (c *Controller) canSubmitLocked() bool {
	for _, v := range c.cells {
		if v == "" {
			return false
		}
	}
	return true
}

func (c *Controller) refreshStateLocked() {
	if c.canSubmitLocked() {
		c.state = StateReady
	} else {
		c.state = StateIdle
	}
}

// Pin returns the ordered concatenation of the cell values. It is only a
// complete PIN when CanSubmit reports true.
func (c *Controller) Pin() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.cells[:], "")
}

// Cell returns the current value of cell index ("" or one digit).
func (c *Controller) Cell(index int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= CellCount {
		return "", ErrCellIndex
	}
	return c.cells[index], nil
}

// CanSubmit reports whether every cell holds a digit.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmitLocked()
}

// FocusedCell returns the index of the cell that currently has input focus.
func (c *Controller) FocusedCell() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focused
}

// Selection returns the length of the selected content in the focused cell.
func (c *Controller) Selection() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

// State returns the current position in the pairing attempt lifecycle.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ShowSuccess reports whether the success banner is visible.
func (c *Controller) ShowSuccess() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.success
}

// ShowError reports whether the error banner is visible.
func (c *Controller) ShowError() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure
}
