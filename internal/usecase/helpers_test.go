package usecase

import (
	"testing"
	"time"

	"office-records-backend/internal/notify"
	"office-records-backend/internal/testutil"

	"go.uber.org/zap"
)

func newNotifier(t *testing.T) (*notify.Notifier, *testutil.Mailbox) {
	t.Helper()
	box := &testutil.Mailbox{}
	return notify.NewNotifier(box, zap.NewNop()), box
}

func fixedClock(day string) func() time.Time {
	at, err := time.Parse(dateLayout, day)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return at.Add(10 * time.Hour) }
}
