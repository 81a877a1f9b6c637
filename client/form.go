package client

import (
	"errors"
	"sync"
)

// FormState is the lifecycle of one create/edit/delete dialog.
type FormState int

const (
	FormClosed FormState = iota
	FormOpenCreate
	FormOpenEdit
	FormOpenDeleteConfirm
	FormSubmitting
)

var (
	ErrFormNotOpen    = errors.New("form: no dialog is open")
	ErrFormSubmitting = errors.New("form: submission already in flight")
)

// FormSession drives one modal dialog:
//
//	Closed -> OpenCreate | OpenEdit | OpenDeleteConfirm -> Submitting -> Closed
//
// Submitting serializes submission; a second Submit while one is in
// flight is rejected. A failed submit reopens the prior state so the
// operator can correct and retry.
type FormSession[T any] struct {
	mu sync.Mutex

	state FormState
	prior FormState

	// target seeds the edit form or identifies the delete candidate.
	target *T
}

func NewFormSession[T any]() *FormSession[T] {
	return &FormSession[T]{state: FormClosed}
}

func (f *FormSession[T]) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Target returns the entity an edit or delete dialog was opened for.
func (f *FormSession[T]) Target() *T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target
}

func (f *FormSession[T]) OpenCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return
	}
	f.state = FormOpenCreate
	f.target = nil
}

func (f *FormSession[T]) OpenEdit(target T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return
	}
	f.state = FormOpenEdit
	f.target = &target
}

func (f *FormSession[T]) OpenDeleteConfirm(target T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return
	}
	f.state = FormOpenDeleteConfirm
	f.target = &target
}

func (f *FormSession[T]) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == FormSubmitting {
		return
	}
	f.state = FormClosed
	f.target = nil
}

// Submit runs the mutation for whichever dialog is open. On success the
// dialog closes and resets; on failure it returns to its prior open
// state with the target intact.
func (f *FormSession[T]) Submit(action func() error) error {
	f.mu.Lock()
	switch f.state {
	case FormClosed:
		f.mu.Unlock()
		return ErrFormNotOpen
	case FormSubmitting:
		f.mu.Unlock()
		return ErrFormSubmitting
	}
	f.prior = f.state
	f.state = FormSubmitting
	f.mu.Unlock()

	err := action()

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = f.prior
		return err
	}
	f.state = FormClosed
	f.target = nil
	return nil
}
