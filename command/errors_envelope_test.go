package command

import (
	"context"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/catalyst-wireless/activation/core"
)

func TestSubmitActivationCommand_NilServiceReturnsRichError(t *testing.T) {
	var cmd *SubmitActivationCommand
	err := cmd.Execute(context.Background(), SubmitActivationMessage{})
	if err == nil {
		t.Fatalf("expected dependency error")
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected internal category, got %q", rich.Category)
	}
	if rich.TextCode != core.ActivationErrorInternal {
		t.Fatalf("expected %q text code, got %q", core.ActivationErrorInternal, rich.TextCode)
	}
	if rich.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d code, got %d", http.StatusInternalServerError, rich.Code)
	}
}

func TestCommandInvalidInputError_CarriesBadInputEnvelope(t *testing.T) {
	err := commandInvalidInputError("command: malformed request")
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryBadInput {
		t.Fatalf("expected bad input category, got %q", rich.Category)
	}
	if rich.TextCode != core.ActivationErrorBadInput {
		t.Fatalf("expected %q text code, got %q", core.ActivationErrorBadInput, rich.TextCode)
	}
	if rich.Code != http.StatusBadRequest {
		t.Fatalf("expected %d code, got %d", http.StatusBadRequest, rich.Code)
	}
}
