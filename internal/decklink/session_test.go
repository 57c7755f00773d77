package decklink

import (
	"errors"
	"strings"
	"testing"

	"github.com/strodow/plucky/internal/frame"
)

func newFrame(t *testing.T, w, h int) *frame.Buffer {
	t.Helper()
	b, err := frame.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func openSession(t *testing.T) (*Session, *Simulator) {
	t.Helper()
	sim := NewSimulator()
	sess := NewSession(sim, nil)
	if err := sess.Open(); err != nil {
		t.Fatalf("open: %v", err)
	}
	return sess, sim
}

func TestSessionOpenIdempotent(t *testing.T) {
	sess, _ := openSession(t)
	if err := sess.Open(); err != nil {
		t.Fatalf("second open: %v", err)
	}
	if got := sess.State(); got != APIReady {
		t.Errorf("state %s, want API_READY", got)
	}
}

func TestSelectDevicesAcceptsDistinctPair(t *testing.T) {
	sess, _ := openSession(t)
	if err := sess.SelectDevices(0, 1, DefaultMode); err != nil {
		t.Fatalf("select fill=0 key=1: %v", err)
	}
	if got := sess.State(); got != DeviceReady {
		t.Errorf("state %s, want DEVICE_READY", got)
	}
}

func TestSelectDevicesRejectsSameIndex(t *testing.T) {
	sess, _ := openSession(t)
	err := sess.SelectDevices(0, 0, DefaultMode)
	if err == nil {
		t.Fatal("fill=0 key=0 accepted")
	}
	if got := sess.State(); got != APIReady {
		t.Errorf("rejected transition left state %s, want API_READY", got)
	}
}

func TestSelectDevicesRejectsOutOfRange(t *testing.T) {
	sess, _ := openSession(t)
	if err := sess.SelectDevices(0, 5, DefaultMode); err == nil {
		t.Fatal("out-of-range key index accepted")
	}
	if got := sess.State(); got != APIReady {
		t.Errorf("state %s, want API_READY", got)
	}
}

func TestSelectDevicesNeedsTwoDevices(t *testing.T) {
	sim := NewSimulator()
	sim.Devices = sim.Devices[:1]
	sess := NewSession(sim, nil)
	if err := sess.Open(); err != nil {
		t.Fatal(err)
	}
	err := sess.SelectDevices(0, 1, DefaultMode)
	if err == nil {
		t.Fatal("single-device configuration accepted")
	}
	if !strings.Contains(err.Error(), "2 devices") {
		t.Errorf("unhelpful error: %v", err)
	}
}

func TestSelectDevicesRejectsDoubleInit(t *testing.T) {
	sess, _ := openSession(t)
	if err := sess.SelectDevices(0, 1, DefaultMode); err != nil {
		t.Fatal(err)
	}
	if err := sess.SelectDevices(0, 1, DefaultMode); err == nil {
		t.Fatal("second initialization accepted")
	}
	if got := sess.State(); got != DeviceReady {
		t.Errorf("state %s, want DEVICE_READY", got)
	}
}

func TestSelectDevicesHardwareFailure(t *testing.T) {
	sess, sim := openSession(t)
	sim.FailInitDevice = StatusFail
	if err := sess.SelectDevices(0, 1, DefaultMode); err == nil {
		t.Fatal("hardware failure not surfaced")
	}
	if got := sess.State(); got != Errored {
		t.Errorf("state %s, want ERROR", got)
	}
	// Recovery path: release, then retry.
	sim.FailInitDevice = 0
	if err := sess.ReleaseDevices(); err != nil {
		t.Fatalf("release after error: %v", err)
	}
	if err := sess.SelectDevices(0, 1, DefaultMode); err != nil {
		t.Fatalf("retry after release: %v", err)
	}
}

func TestSendFrameMovesToStreaming(t *testing.T) {
	sess, sim := openSession(t)
	mode := VideoMode{Width: 64, Height: 36, FrameRateNum: 30000, FrameRateDen: 1001}
	if err := sess.SelectDevices(0, 1, mode); err != nil {
		t.Fatal(err)
	}
	fb := newFrame(t, 64, 36)
	if err := sess.SendFrame(fb); err != nil {
		t.Fatalf("send: %v", err)
	}
	if got := sess.State(); got != Streaming {
		t.Errorf("state %s, want STREAMING", got)
	}
	if sim.FrameCount() != 1 {
		t.Errorf("simulator accepted %d frames, want 1", sim.FrameCount())
	}
	fill, key := sim.LastFrames()
	if len(fill) != 64*36*4 || len(key) != 64*36*4 {
		t.Errorf("pair sizes %d/%d, want %d", len(fill), len(key), 64*36*4)
	}
}

func TestSendFrameRejectsWrongResolution(t *testing.T) {
	sess, sim := openSession(t)
	mode := VideoMode{Width: 64, Height: 36, FrameRateNum: 30, FrameRateDen: 1}
	if err := sess.SelectDevices(0, 1, mode); err != nil {
		t.Fatal(err)
	}
	if err := sess.SendFrame(newFrame(t, 32, 18)); err == nil {
		t.Fatal("mismatched frame accepted")
	}
	if sim.FrameCount() != 0 {
		t.Error("rejected frame still reached the hardware")
	}
}

func TestSendFrameHardwareFailureEntersErrorState(t *testing.T) {
	sess, sim := openSession(t)
	mode := VideoMode{Width: 8, Height: 8, FrameRateNum: 30, FrameRateDen: 1}
	if err := sess.SelectDevices(0, 1, mode); err != nil {
		t.Fatal(err)
	}
	if err := sess.SendFrame(newFrame(t, 8, 8)); err != nil {
		t.Fatal(err)
	}

	sim.FailUpdate = StatusFail
	err := sess.SendFrame(newFrame(t, 8, 8))
	if err == nil {
		t.Fatal("hardware failure not surfaced")
	}
	var serr *StatusError
	if !errors.As(err, &serr) || serr.Code != StatusFail {
		t.Errorf("error %v does not carry the status code", err)
	}
	if got := sess.State(); got != Errored {
		t.Errorf("state %s, want ERROR", got)
	}
	// Validation rejections must not reach the hardware from ERROR.
	if err := sess.SendFrame(newFrame(t, 8, 8)); err == nil {
		t.Error("frame accepted in ERROR state")
	}
	// Release and renegotiate recovers.
	sim.FailUpdate = 0
	if err := sess.ReleaseDevices(); err != nil {
		t.Fatal(err)
	}
	if err := sess.SelectDevices(0, 1, mode); err != nil {
		t.Fatal(err)
	}
	if err := sess.SendFrame(newFrame(t, 8, 8)); err != nil {
		t.Fatalf("send after recovery: %v", err)
	}
}

func TestSendFrameRequiresDeviceReady(t *testing.T) {
	sess, _ := openSession(t)
	if err := sess.SendFrame(newFrame(t, 64, 36)); err == nil {
		t.Fatal("frame accepted without device pair")
	}
}

func TestKeyerControlsBelowDeviceReadyAreNoOps(t *testing.T) {
	sess, sim := openSession(t)
	if err := sess.EnableKeyer(); err != nil {
		t.Errorf("enable before device ready: %v", err)
	}
	if err := sess.SetKeyerLevel(128); err != nil {
		t.Errorf("level before device ready: %v", err)
	}
	if on, _ := sim.KeyerState(); on {
		t.Error("no-op enable reached the hardware")
	}
	if sess.KeyerActive() {
		t.Error("keyer reported active without a device")
	}
}

func TestKeyerControls(t *testing.T) {
	sess, sim := openSession(t)
	if err := sess.SelectDevices(0, 1, DefaultMode); err != nil {
		t.Fatal(err)
	}
	if err := sess.EnableKeyer(); err != nil {
		t.Fatal(err)
	}
	if !sess.KeyerActive() {
		t.Error("keyer not active after enable")
	}
	if err := sess.SetKeyerLevel(200); err != nil {
		t.Fatal(err)
	}
	if _, level := sim.KeyerState(); level != 200 {
		t.Errorf("level %d, want 200", level)
	}
	if err := sess.DisableKeyer(); err != nil {
		t.Fatal(err)
	}
	if sess.KeyerActive() {
		t.Error("keyer still active after disable")
	}
}

func TestCloseTeardownOrder(t *testing.T) {
	sess, sim := openSession(t)
	if err := sess.SelectDevices(0, 1, DefaultMode); err != nil {
		t.Fatal(err)
	}
	if err := sess.EnableKeyer(); err != nil {
		t.Fatal(err)
	}
	if err := sess.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := sess.State(); got != Uninitialized {
		t.Errorf("state %s after close, want UNINITIALIZED", got)
	}
	if on, _ := sim.KeyerState(); on {
		t.Error("keyer left enabled after close")
	}
	// Close on a closed session is fine.
	if err := sess.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}

func TestStatusCodeDecoding(t *testing.T) {
	cases := []struct {
		code StatusCode
		want string
	}{
		{StatusOK, "OK"},
		{StatusFalse, "S_FALSE"},
		{StatusFail, "E_FAIL"},
		{StatusInvalidArg, "E_INVALIDARG"},
		{StatusCode(0xDEADBEEF), "0xDEADBEEF"},
	}
	for _, c := range cases {
		if got := c.code.String(); got != c.want {
			t.Errorf("%#x: got %q, want %q", uint32(c.code), got, c.want)
		}
	}
	if !StatusFalse.Ok() {
		t.Error("S_FALSE must count as success")
	}
	if StatusFail.Ok() {
		t.Error("E_FAIL must not count as success")
	}
}

func TestAPIVersionString(t *testing.T) {
	v := APIVersion(12<<24 | 4<<16 | 1<<8)
	if got := v.String(); got != "12.4.1" {
		t.Errorf("got %q, want 12.4.1", got)
	}
}
