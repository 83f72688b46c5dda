package view

import (
	"context"
	"fmt"
	"time"
)

const storeTimeout = 5 * time.Second

// FormatMoney renders a currency amount with two decimals.
func FormatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

func FormatDateTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// StoreCtx returns a context bounded by the standard store timeout.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
