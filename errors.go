package main

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/gotk3/gotk3/gtk"
)

// CatchPanicToContext recovers a panic in a host callback and cancels ctxCancel with it.
// It must be deferred directly.
func CatchPanicToContext(ctxCancel context.CancelCauseFunc) {
	if v := recover(); v != nil {
		err, ok := v.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", v)
		}
		err = fmt.Errorf("%w\n%v", err, string(debug.Stack()))
		if ctxCancel != nil {
			ctxCancel(err)
		}
	}
}

func NewErrorDialog(
	parent *gtk.ApplicationWindow,
	err error,
) {
	dialog := gtk.MessageDialogNew(
		parent,
		gtk.DIALOG_DESTROY_WITH_PARENT|gtk.DIALOG_MODAL,
		gtk.MESSAGE_ERROR,
		gtk.BUTTONS_CLOSE,
		"%s",
		err.Error(),
	)

	dialog.SetKeepAbove(true)
	dialog.Run()
	dialog.Destroy()
}
