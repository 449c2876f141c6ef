//go:build linux

package notify

import (
	"os"
	"testing"
	"time"

	"github.com/llehouerou/songbrowser/internal/status"
)

func dialSession(t *testing.T) transport {
	t.Helper()
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}
	tr, err := dial()
	if err != nil {
		t.Skipf("session bus unreachable: %v", err)
	}
	t.Cleanup(func() { _ = tr.close() })
	return tr
}

func TestBusTransport_ProgressThenResult(t *testing.T) {
	tr := dialSession(t)

	id, err := tr.show(0, message{title: status.LoadingMessage, body: "12/40", percent: 30})
	if err != nil {
		t.Skipf("no notification server: %v", err)
	}
	if id == 0 {
		t.Fatal("show() returned id=0")
	}

	replaced, err := tr.show(id, message{title: "40 songs processed", percent: -1, expire: time.Second})
	if err != nil {
		t.Fatalf("replacing show() error: %v", err)
	}
	if replaced != id {
		t.Errorf("replacing notification got id=%d, want id=%d", replaced, id)
	}

	if err := tr.dismiss(replaced); err != nil {
		t.Errorf("dismiss() error: %v", err)
	}
}
