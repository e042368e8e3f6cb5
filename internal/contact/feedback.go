package contact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/metalldk/storefront/internal/auth"
	pkgerrors "github.com/metalldk/storefront/pkg/errors"
	"github.com/metalldk/storefront/pkg/logger"
)

// MaxAttachments is how many files one feedback message may carry.
const MaxAttachments = 5

const (
	MsgTooManyFiles = "You can attach at most 5 files."
	MsgFeedbackSent = "Feedback sent! Thank you for your response."
)

var validate = auth.NewValidator()

type Attachment struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// AttachmentFromFile describes a file on disk.
func AttachmentFromFile(path string) (Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("attachment %s: %w", path, err)
	}
	if info.IsDir() {
		return Attachment{}, fmt.Errorf("attachment %s is a directory", path)
	}
	return Attachment{Name: filepath.Base(path), Size: info.Size()}, nil
}

type FeedbackForm struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,storefront_email"`
	Message     string `json:"message" validate:"required"`
	attachments []Attachment
}

// AddAttachments appends files. A batch that would take the form past
// MaxAttachments is rejected whole.
func (f *FeedbackForm) AddAttachments(files ...Attachment) error {
	if len(f.attachments)+len(files) > MaxAttachments {
		return pkgerrors.New(pkgerrors.CodeValidation, MsgTooManyFiles).
			WithDetails(map[string]any{"attached": len(f.attachments), "added": len(files)})
	}
	f.attachments = append(f.attachments, files...)
	return nil
}

func (f *FeedbackForm) RemoveAttachment(i int) error {
	if i < 0 || i >= len(f.attachments) {
		return fmt.Errorf("no attachment at position %d", i)
	}
	f.attachments = append(f.attachments[:i], f.attachments[i+1:]...)
	return nil
}

func (f *FeedbackForm) Attachments() []Attachment {
	out := make([]Attachment, len(f.attachments))
	copy(out, f.attachments)
	return out
}

func (f *FeedbackForm) reset() {
	*f = FeedbackForm{}
}

// Notifier shows a blocking message.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// FeedbackDesk accepts feedback messages. Nothing is posted anywhere: the
// message is acknowledged locally and the form is cleared.
type FeedbackDesk struct {
	notifier Notifier
	logg     *logger.Logger
}

func NewFeedbackDesk(notifier Notifier, logg *logger.Logger) *FeedbackDesk {
	if logg == nil {
		logg = logger.Nop()
	}
	return &FeedbackDesk{notifier: notifier, logg: logg}
}

func (d *FeedbackDesk) Submit(ctx context.Context, form *FeedbackForm) error {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Message = strings.TrimSpace(form.Message)
	if err := auth.FormError(validate.Struct(form)); err != nil {
		return err
	}
	d.logg.Info(d.logg.WithField(ctx, "attachments", len(form.attachments)), "contact.feedback.accepted")
	if d.notifier != nil {
		d.notifier.Notify(ctx, MsgFeedbackSent)
	}
	form.reset()
	return nil
}
