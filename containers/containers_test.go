// ABOUTME: Unit tests for container lifecycle calls against a fake engine
// ABOUTME: Covers create narrowing, start 304 tolerance, wait, and logs demux

package containers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"

	"github.com/Mr-Sunglasses/podman-py/client"
	"github.com/Mr-Sunglasses/podman-py/errdefs"
)

// fakeEngine is a scripted engine; handlers are keyed by "METHOD path"
// with the version prefix stripped.
type fakeEngine struct {
	t        *testing.T
	handlers map[string]http.HandlerFunc
}

func newFakeEngine(t *testing.T) (*fakeEngine, *client.Connection) {
	t.Helper()

	fe := &fakeEngine{t: t, handlers: make(map[string]http.HandlerFunc)}

	mux := http.NewServeMux()
	mux.HandleFunc("/_ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("/v1.41/", func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path[len("/v1.41"):]
		h, ok := fe.handlers[key]
		if !ok {
			t.Errorf("unexpected request %s", key)
			w.WriteHeader(http.StatusNotImplemented)
			return
		}
		h(w, r)
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	conn, err := client.New(context.Background(), "tcp://"+ts.Listener.Addr().String())
	if err != nil {
		t.Fatalf("client.New() error: %v", err)
	}
	return fe, conn
}

func (fe *fakeEngine) handle(method, path string, h http.HandlerFunc) {
	fe.handlers[method+" "+path] = h
}

// writeFrames writes multiplexed stdout/stderr payloads the way the
// engine's logs endpoint does.
func writeFrames(w http.ResponseWriter, stdout, stderr string) {
	if stdout != "" {
		_, _ = stdcopy.NewStdWriter(w, stdcopy.Stdout).Write([]byte(stdout))
	}
	if stderr != "" {
		_, _ = stdcopy.NewStdWriter(w, stdcopy.Stderr).Write([]byte(stderr))
	}
}

func TestCreate_Success(t *testing.T) {
	fe, conn := newFakeEngine(t)
	fe.handle(http.MethodPost, "/containers/create", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("name"); got != "worker" {
			t.Errorf("name = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"Id":"ctr123"}`))
	})

	ctr, err := Create(context.Background(), conn, CreateOptions{
		Name:   "worker",
		Config: &container.Config{Image: "alpine"},
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if ctr.ID() != "ctr123" {
		t.Errorf("ID() = %q", ctr.ID())
	}
	if ctr.Image() != "alpine" {
		t.Errorf("Image() = %q", ctr.Image())
	}
}

func TestCreate_MissingImageNarrows(t *testing.T) {
	fe, conn := newFakeEngine(t)
	fe.handle(http.MethodPost, "/containers/create", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cause":"image not known","message":"no such image: ghost","response":404}`))
	})

	_, err := Create(context.Background(), conn, CreateOptions{
		Config: &container.Config{Image: "ghost"},
	})
	if !errdefs.IsImageNotFound(err) {
		t.Fatalf("error is %T, want ImageNotFoundError", err)
	}
	// A missing image is not a generic not-found; the variants are siblings.
	if errdefs.IsNotFound(err) {
		t.Error("IsNotFound() = true, want false")
	}
}

func TestCreate_NoConfig(t *testing.T) {
	_, conn := newFakeEngine(t)

	_, err := Create(context.Background(), conn, CreateOptions{})
	var inv *errdefs.InvalidArgumentError
	if !errors.As(err, &inv) {
		t.Fatalf("error is %T, want InvalidArgumentError", err)
	}
}

func TestStart_AlreadyRunning(t *testing.T) {
	fe, conn := newFakeEngine(t)
	fe.handle(http.MethodPost, "/containers/ctr123/start", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	})

	ctr := &Container{id: "ctr123", image: "alpine", conn: conn}
	if err := ctr.Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
}

func TestStart_MissingContainer(t *testing.T) {
	fe, conn := newFakeEngine(t)
	fe.handle(http.MethodPost, "/containers/gone/start", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no such container: gone"}`))
	})

	ctr := &Container{id: "gone", conn: conn}
	err := ctr.Start(context.Background())
	if !errdefs.IsNotFound(err) {
		t.Fatalf("error is %T, want NotFoundError", err)
	}
	if errdefs.IsImageNotFound(err) {
		t.Error("container 404 must not narrow to ImageNotFoundError")
	}
}

func TestWait_ExitStatus(t *testing.T) {
	fe, conn := newFakeEngine(t)
	fe.handle(http.MethodPost, "/containers/ctr123/wait", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"StatusCode":42}`))
	})

	ctr := &Container{id: "ctr123", conn: conn}
	status, err := ctr.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if status != 42 {
		t.Errorf("status = %d, want 42", status)
	}
}

func TestWait_EngineError(t *testing.T) {
	fe, conn := newFakeEngine(t)
	fe.handle(http.MethodPost, "/containers/ctr123/wait", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"StatusCode":0,"Error":{"Message":"context deadline exceeded"}}`))
	})

	ctr := &Container{id: "ctr123", conn: conn}
	_, err := ctr.Wait(context.Background())

	var apiErr *errdefs.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, want APIError", err)
	}
	if apiErr.StatusCode() != 0 {
		t.Errorf("StatusCode() = %d, want 0", apiErr.StatusCode())
	}
}

func TestLogs_Demultiplexes(t *testing.T) {
	fe, conn := newFakeEngine(t)
	fe.handle(http.MethodGet, "/containers/ctr123/logs", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("stdout") != "1" || r.URL.Query().Get("stderr") != "1" {
			t.Errorf("query = %v", r.URL.Query())
		}
		writeFrames(w, "hello\nworld\n", "warning: low disk\n")
	})

	ctr := &Container{id: "ctr123", conn: conn}
	stdout, stderr, err := ctr.Logs(context.Background(), LogsOptions{Stdout: true, Stderr: true})
	if err != nil {
		t.Fatalf("Logs() error: %v", err)
	}
	if len(stdout) != 2 || stdout[0] != "hello" || stdout[1] != "world" {
		t.Errorf("stdout = %v", stdout)
	}
	if len(stderr) != 1 || stderr[0] != "warning: low disk" {
		t.Errorf("stderr = %v", stderr)
	}
}

func TestLogs_CorruptFrames(t *testing.T) {
	fe, conn := newFakeEngine(t)
	fe.handle(http.MethodGet, "/containers/ctr123/logs", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{7, 0, 0, 0, 0, 0, 0, 4, 'b', 'o', 'o', 'm'})
	})

	ctr := &Container{id: "ctr123", conn: conn}
	_, _, err := ctr.Logs(context.Background(), LogsOptions{Stdout: true})

	var spe *errdefs.StreamParseError
	if !errors.As(err, &spe) {
		t.Fatalf("error is %T, want StreamParseError", err)
	}
}

func TestRemove_Force(t *testing.T) {
	fe, conn := newFakeEngine(t)
	fe.handle(http.MethodDelete, "/containers/ctr123", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("force") != "1" || r.URL.Query().Get("v") != "1" {
			t.Errorf("query = %v", r.URL.Query())
		}
		w.WriteHeader(http.StatusNoContent)
	})

	ctr := &Container{id: "ctr123", conn: conn}
	if err := ctr.Remove(context.Background(), true); err != nil {
		t.Fatalf("Remove() error: %v", err)
	}
}
