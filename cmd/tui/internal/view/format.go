package view

import (
	"context"
	"time"
)

const dbTimeout = 5 * time.Second

// FormatDate formats a date the way the web pages do (DD/MM/YYYY).
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
