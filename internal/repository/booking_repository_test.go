package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/field-reservation/internal/booking"
)

func TestMapLockContention(t *testing.T) {
	for _, num := range []uint16{mysqlErrDeadlock, mysqlErrLockWaitTimeout} {
		err := mapLockContention(&mysql.MySQLError{Number: num, Message: "lock"}, "10:00", "12:00")
		var conflictErr *booking.ConflictError
		if !errors.As(err, &conflictErr) {
			t.Fatalf("error %d: expected ConflictError, got %v", num, err)
		}
		if !conflictErr.Concurrent {
			t.Errorf("error %d: Concurrent not set", num)
		}
		if conflictErr.Conflict.Start != "10:00" || conflictErr.Conflict.End != "12:00" {
			t.Errorf("error %d: conflict interval = %+v", num, conflictErr.Conflict)
		}
	}
}

func TestMapLockContentionPassThrough(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "duplicate entry"}
	if got := mapLockContention(dup, "10:00", "11:00"); got != error(dup) {
		t.Errorf("duplicate-key error rewritten to %v", got)
	}

	wrapped := fmt.Errorf("insert booking: %w", &mysql.MySQLError{Number: mysqlErrDeadlock})
	var conflictErr *booking.ConflictError
	if !errors.As(mapLockContention(wrapped, "10:00", "11:00"), &conflictErr) {
		t.Error("wrapped deadlock not recognized")
	}

	plain := errors.New("connection reset")
	if got := mapLockContention(plain, "10:00", "11:00"); got != plain {
		t.Errorf("plain error rewritten to %v", got)
	}
}
