package stride

import (
	"testing"
	"time"
)

func TestKeyState(t *testing.T) {
	field := KeyState.Field("tracking")
	if field.Key().Name() != "state" {
		t.Errorf("expected key 'state', got %q", field.Key().Name())
	}
}

func TestKeyOldState(t *testing.T) {
	field := KeyOldState.Field("idle")
	if field.Key().Name() != "old_state" {
		t.Errorf("expected key 'old_state', got %q", field.Key().Name())
	}
}

func TestKeyNewState(t *testing.T) {
	field := KeyNewState.Field("tracking")
	if field.Key().Name() != "new_state" {
		t.Errorf("expected key 'new_state', got %q", field.Key().Name())
	}
}

func TestKeySession(t *testing.T) {
	if name := KeySession.Field("abc").Key().Name(); name != "session_id" {
		t.Errorf("expected key 'session_id', got %q", name)
	}
	if name := KeyOldSession.Field("abc").Key().Name(); name != "old_session_id" {
		t.Errorf("expected key 'old_session_id', got %q", name)
	}
}

func TestKeyError(t *testing.T) {
	field := KeyError.Field("something went wrong")
	if field.Key().Name() != "error" {
		t.Errorf("expected key 'error', got %q", field.Key().Name())
	}
}

func TestFixKeys(t *testing.T) {
	names := map[string]string{
		KeyReason.Field("jitter").Key().Name():     "reason",
		KeyDisplay.Field("0 meters").Key().Name():  "display",
		KeyFix.Field("0,0").Key().Name():           "fix",
		KeyDistance.Field("1.11").Key().Name():     "distance",
		KeyBatchSize.Field(3).Key().Name():         "batch_size",
		KeyPriority.Field("passive").Key().Name():  "priority",
		KeyProviderType.Field("x").Key().Name():    "provider_type",
	}
	for got, want := range names {
		if got != want {
			t.Errorf("expected key %q, got %q", want, got)
		}
	}
}

func TestKeyIntervals(t *testing.T) {
	if name := KeyInterval.Field(10 * time.Second).Key().Name(); name != "interval" {
		t.Errorf("expected key 'interval', got %q", name)
	}
	if name := KeyFastestInterval.Field(5 * time.Second).Key().Name(); name != "fastest_interval" {
		t.Errorf("expected key 'fastest_interval', got %q", name)
	}
}
