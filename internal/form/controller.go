package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	models "github.com/chrisdamba/schedulo/internal"
	"github.com/chrisdamba/schedulo/internal/ports"
	"github.com/chrisdamba/schedulo/pkg/schedulo"
)

type Mode int

const (
	Creating Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "creating"
}

type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeTransport
	NoticeApplication
)

type Notice struct {
	Kind    NoticeKind
	Message string
}

const (
	MsgSaved        = "Booking saved successfully! ✅"
	MsgUpdated      = "Booking updated successfully! ✅"
	MsgUnreachable  = "Cannot reach the server. Is the backend running?"
	MsgSaveFailed   = "Something went wrong saving your booking."
	MsgDeleteFailed = "Error deleting booking."
	MsgStatusFailed = "Error updating status."
	MsgLoadFailed   = "Could not load bookings."

	DeletePrompt = "Are you sure you want to delete this booking?"
)

var ErrBusy = errors.New("a submission is already in flight")

// AppState is the client's view of the store. Bookings is a cache that is replaced
// wholesale on every refresh.
type AppState struct {
	Bookings []models.Booking
	Notice   Notice
}

type Controller struct {
	store     ports.BookingStore
	confirmer ports.Confirmer
	log       *slog.Logger

	mu         sync.Mutex
	state      AppState
	draft      Draft
	submitting bool
}

type Option func(*Controller)

func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

func NewController(store ports.BookingStore, confirmer ports.Confirmer, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		confirmer: confirmer,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		draft:     NewDraft(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() AppState {
	c.mu.Lock()
	defer c.mu.Unlock()
	bookings := make([]models.Booking, len(c.state.Bookings))
	copy(bookings, c.state.Bookings)
	return AppState{Bookings: bookings, Notice: c.state.Notice}
}

func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.clone()
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.draft.Editing() {
		return Editing
	}
	return Creating
}

// Input applies a user edit to the draft. The edit reference is preserved.
func (c *Controller) Input(fn func(*Draft)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.draft.EditingID
	fn(&c.draft)
	c.draft.EditingID = id
}

// Load refreshes the cached list. On failure the previous cache is kept.
func (c *Controller) Load(ctx context.Context) error {
	bookings, err := c.store.List(ctx)
	if err != nil {
		c.log.Error("loading bookings", "err", err)
		c.setNotice(failureNotice(err, MsgLoadFailed))
		return fmt.Errorf("loading bookings: %w", err)
	}

	c.mu.Lock()
	c.state.Bookings = bookings
	c.mu.Unlock()
	return nil
}

func (c *Controller) Edit(b models.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = DraftFromBooking(b)
}

func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = NewDraft()
}

// Submit creates or updates depending on the mode. A failure leaves the draft and
// mode untouched so the user can retry.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrBusy
	}
	c.submitting = true
	draft := c.draft.clone()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	fields := draft.Fields()
	var (
		err error
		msg = MsgSaved
	)
	if draft.Editing() {
		msg = MsgUpdated
		err = c.store.Update(ctx, *draft.EditingID, fields)
	} else {
		_, err = c.store.Create(ctx, fields)
	}
	if err != nil {
		c.log.Error("submitting booking", "mode", modeOf(draft), "err", err)
		c.setNotice(failureNotice(err, MsgSaveFailed))
		return fmt.Errorf("submitting booking: %w", err)
	}

	c.mu.Lock()
	c.draft = NewDraft()
	c.state.Notice = Notice{Kind: NoticeSuccess, Message: msg}
	c.mu.Unlock()

	c.log.Info("booking submitted", "mode", modeOf(draft), "service", *fields.Service)
	return c.refresh(ctx)
}

// Delete asks for confirmation first. A declined prompt sends nothing.
func (c *Controller) Delete(ctx context.Context, id string) (bool, error) {
	ok, err := c.confirmer.Confirm(ctx, DeletePrompt)
	if err != nil {
		return false, fmt.Errorf("confirming delete: %w", err)
	}
	if !ok {
		return false, nil
	}

	if err := c.store.Delete(ctx, id); err != nil {
		c.log.Error("deleting booking", "id", id, "err", err)
		c.setNotice(failureNotice(err, MsgDeleteFailed))
		return true, fmt.Errorf("deleting booking: %w", err)
	}

	c.log.Info("booking deleted", "id", id)
	return true, c.refresh(ctx)
}

// ToggleStatus flips a booking between Pending and Confirmed without touching the draft.
func (c *Controller) ToggleStatus(ctx context.Context, b models.Booking) error {
	next := b.Status.OrDefault().Toggle()
	if err := c.store.Update(ctx, b.ID, models.Fields{Status: &next}); err != nil {
		c.log.Error("updating booking status", "id", b.ID, "err", err)
		c.setNotice(failureNotice(err, MsgStatusFailed))
		return fmt.Errorf("toggling status: %w", err)
	}

	c.log.Info("booking status changed", "id", b.ID, "status", next)
	return c.refresh(ctx)
}

func (c *Controller) refresh(ctx context.Context) error {
	bookings, err := c.store.List(ctx)
	if err != nil {
		c.log.Error("refreshing bookings", "err", err)
		return fmt.Errorf("refreshing bookings: %w", err)
	}

	c.mu.Lock()
	c.state.Bookings = bookings
	c.mu.Unlock()
	return nil
}

func (c *Controller) setNotice(n Notice) {
	c.mu.Lock()
	c.state.Notice = n
	c.mu.Unlock()
}

func failureNotice(err error, appMsg string) Notice {
	if errors.Is(err, schedulo.ErrTransport) {
		return Notice{Kind: NoticeTransport, Message: MsgUnreachable}
	}
	return Notice{Kind: NoticeApplication, Message: appMsg}
}

func modeOf(d Draft) Mode {
	if d.Editing() {
		return Editing
	}
	return Creating
}
