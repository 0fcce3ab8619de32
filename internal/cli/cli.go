// Package cli is the terminal front end for the booking form controller.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	models "github.com/chrisdamba/schedulo/internal"
	"github.com/chrisdamba/schedulo/internal/form"
)

var ErrUsage = errors.New("usage: schedulo <list|create|edit|delete|toggle> [flags]")

// PromptConfirmer asks a yes/no question on a terminal.
type PromptConfirmer struct {
	In  *bufio.Reader
	Out io.Writer
	// AssumeYes skips the prompt.
	AssumeYes bool
}

func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{In: bufio.NewReader(in), Out: out}
}

func (p *PromptConfirmer) Confirm(_ context.Context, prompt string) (bool, error) {
	if p.AssumeYes {
		return true, nil
	}
	fmt.Fprintf(p.Out, "%s [y/N]: ", prompt)
	line, err := p.In.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

type Runner struct {
	ctrl      *form.Controller
	confirmer *PromptConfirmer
	out       io.Writer
}

func NewRunner(ctrl *form.Controller, confirmer *PromptConfirmer, out io.Writer) *Runner {
	return &Runner{ctrl: ctrl, confirmer: confirmer, out: out}
}

func (r *Runner) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	cmd, rest := args[0], args[1:]

	if err := r.ctrl.Load(ctx); err != nil && cmd != "create" {
		r.printNotice()
		return err
	}

	var err error
	switch cmd {
	case "list":
		r.printBookings()
		return nil
	case "create":
		err = r.create(ctx, rest)
	case "edit":
		err = r.edit(ctx, rest)
	case "delete":
		err = r.delete(ctx, rest)
	case "toggle":
		err = r.toggle(ctx, rest)
	default:
		return ErrUsage
	}
	r.printNotice()
	if err == nil {
		r.printBookings()
	}
	return err
}

type draftFlags struct {
	fs      *flag.FlagSet
	name    *string
	phone   *string
	service *string
	custom  *string
	date    *string
	time    *string
	notes   *string
	status  *string
}

func newDraftFlags(name string, out io.Writer) *draftFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return &draftFlags{
		fs:      fs,
		name:    fs.String("name", "", "customer name"),
		phone:   fs.String("phone", "", "customer phone"),
		service: fs.String("service", "", "preset service, or \"custom\""),
		custom:  fs.String("custom", "", "custom service text"),
		date:    fs.String("date", "", "date (YYYY-MM-DD)"),
		time:    fs.String("time", "", "time (HH:MM)"),
		notes:   fs.String("notes", "", "notes"),
		status:  fs.String("status", "", "Pending or Confirmed"),
	}
}

// apply copies only the flags that were set on the command line.
func (f *draftFlags) apply(d *form.Draft) error {
	var err error
	f.fs.Visit(func(fl *flag.Flag) {
		v := fl.Value.String()
		switch fl.Name {
		case "name":
			d.Name = v
		case "phone":
			d.Phone = v
		case "service":
			switch {
			case v == models.CustomSentinel:
				d.ServiceChoice = v
			case models.IsPreset(v):
				d.ServiceChoice = v
				d.CustomService = ""
			default:
				d.ServiceChoice = models.CustomSentinel
				d.CustomService = v
			}
		case "custom":
			d.ServiceChoice = models.CustomSentinel
			d.CustomService = v
		case "date":
			d.Date = v
		case "time":
			d.Time = v
		case "notes":
			d.Notes = v
		case "status":
			s, perr := models.ParseStatus(v)
			if perr != nil {
				err = perr
				return
			}
			d.Status = s
		}
	})
	return err
}

func (r *Runner) create(ctx context.Context, args []string) error {
	f := newDraftFlags("create", r.out)
	if err := f.fs.Parse(args); err != nil {
		return err
	}
	var applyErr error
	r.ctrl.Input(func(d *form.Draft) { applyErr = f.apply(d) })
	if applyErr != nil {
		return applyErr
	}
	return r.ctrl.Submit(ctx)
}

func (r *Runner) edit(ctx context.Context, args []string) error {
	f := newDraftFlags("edit", r.out)
	if err := f.fs.Parse(args); err != nil {
		return err
	}
	booking, err := r.find(f.fs.Args())
	if err != nil {
		return err
	}

	r.ctrl.Edit(booking)
	var applyErr error
	r.ctrl.Input(func(d *form.Draft) { applyErr = f.apply(d) })
	if applyErr != nil {
		r.ctrl.Cancel()
		return applyErr
	}
	return r.ctrl.Submit(ctx)
}

func (r *Runner) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.SetOutput(r.out)
	yes := fs.Bool("y", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}
	booking, err := r.find(fs.Args())
	if err != nil {
		return err
	}

	r.confirmer.AssumeYes = *yes
	confirmed, err := r.ctrl.Delete(ctx, booking.ID)
	if err == nil && !confirmed {
		fmt.Fprintln(r.out, "Delete cancelled.")
	}
	return err
}

func (r *Runner) toggle(ctx context.Context, args []string) error {
	booking, err := r.find(args)
	if err != nil {
		return err
	}
	return r.ctrl.ToggleStatus(ctx, booking)
}

func (r *Runner) find(args []string) (models.Booking, error) {
	if len(args) != 1 {
		return models.Booking{}, ErrUsage
	}
	for _, b := range r.ctrl.State().Bookings {
		if b.ID == args[0] {
			return b, nil
		}
	}
	return models.Booking{}, fmt.Errorf("%w: %s", models.ErrBookingNotFound, args[0])
}

func (r *Runner) printNotice() {
	if n := r.ctrl.State().Notice; n.Kind != form.NoticeNone {
		fmt.Fprintln(r.out, n.Message)
	}
}

func (r *Runner) printBookings() {
	bookings := r.ctrl.State().Bookings
	if len(bookings) == 0 {
		fmt.Fprintln(r.out, "No bookings yet.")
		return
	}
	tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPHONE\tSERVICE\tDATE\tTIME\tSTATUS\tNOTES")
	for _, b := range bookings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.Name, b.Phone, b.Service, b.Date, b.Time, b.Status.OrDefault(), b.Notes)
	}
	tw.Flush()
}
