package service

import (
	"errors"
	"testing"

	"github.com/storefront-next/internal/models"
)

func mustMoney(value string) models.Money {
	return models.MustMoney(value)
}

func TestWrapStorageErrorKeepsBusinessErrors(t *testing.T) {
	if got := wrapStorageError(ErrEmptyCart); got != ErrEmptyCart {
		t.Fatalf("business error must pass through, got %v", got)
	}
	cause := errors.New("disk I/O error")
	wrapped := wrapStorageError(cause)
	if !errors.Is(wrapped, ErrTransactionFailure) {
		t.Fatalf("storage error must become ErrTransactionFailure")
	}
	if !errors.Is(wrapped, cause) {
		t.Fatalf("cause must be preserved")
	}
	if KindOf(wrapped) != KindTransaction {
		t.Fatalf("unexpected kind: %s", KindOf(wrapped))
	}
	if wrapStorageError(nil) != nil {
		t.Fatalf("nil stays nil")
	}
}

func TestBlockedAccountIsDistinctFromAuth(t *testing.T) {
	if KindOf(ErrBlockedAccount) == KindOf(ErrUnauthorized) {
		t.Fatalf("blocked account must not share the auth kind")
	}
}
