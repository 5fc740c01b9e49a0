package stride

import (
	"context"
	"testing"
)

func TestNotifierFunc(t *testing.T) {
	var got string
	n := NotifierFunc(func(_ context.Context, msg string) { got = msg })
	n.Notify(context.Background(), NoticeStarted)
	if got != "Tracking Started" {
		t.Errorf("expected 'Tracking Started', got %q", got)
	}
}

func TestNoticeRecorder_ReturnsCopy(t *testing.T) {
	r := &NoticeRecorder{}
	r.Notify(context.Background(), NoticeStopped)
	r.Notify(context.Background(), NoticeReset)

	notices := r.Notices()
	if len(notices) != 2 || notices[0] != "Tracking Stopped" || notices[1] != "Tracking Reset" {
		t.Fatalf("unexpected notices %v", notices)
	}

	notices[0] = "mutated"
	if r.Notices()[0] != "Tracking Stopped" {
		t.Error("Notices should return a copy")
	}
}
