package recommend

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/filmdesk/filmdesk/pkg/errors"
)

// fakeRunner stands in for the engine process. onRun simulates the
// engine's side of the exchange (writing the response artifact).
type fakeRunner struct {
	onRun  func(ctx context.Context) error
	stderr string
}

func (r *fakeRunner) Run(ctx context.Context) (string, error) {
	var err error
	if r.onRun != nil {
		err = r.onRun(ctx)
	}
	return r.stderr, err
}

func artifactPaths(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	return filepath.Join(dir, "target_user.json"), filepath.Join(dir, "recommendations.json")
}

func writeResponse(t *testing.T, path string, response Response) {
	t.Helper()
	data, err := json.Marshal(response)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRecommendExchange(t *testing.T) {
	reqPath, respPath := artifactPaths(t)

	runner := &fakeRunner{
		onRun: func(ctx context.Context) error {
			// Engine reads the request, then writes its response.
			data, err := os.ReadFile(reqPath)
			if err != nil {
				return err
			}
			var req Request
			if err := json.Unmarshal(data, &req); err != nil {
				return err
			}
			if req.Target != "alice" {
				t.Errorf("Engine saw target %q, want alice", req.Target)
			}
			writeResponse(t, respPath, Response{
				Target: req.Target,
				Recommendations: []Recommendation{
					{Title: "Dune"},
					{Title: "Blade Runner"},
				},
			})
			return nil
		},
	}

	bridge := NewBridge("./recommender", reqPath, respPath, WithRunner(runner))
	recs, err := bridge.Recommend(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if len(recs) != 2 || recs[0].Title != "Dune" || recs[1].Title != "Blade Runner" {
		t.Errorf("Unexpected recommendations: %v", recs)
	}
}

func TestRecommendEmptyListIsNotAnError(t *testing.T) {
	reqPath, respPath := artifactPaths(t)

	runner := &fakeRunner{
		onRun: func(ctx context.Context) error {
			writeResponse(t, respPath, Response{Target: "alice"})
			return nil
		},
	}

	bridge := NewBridge("./recommender", reqPath, respPath, WithRunner(runner))
	recs, err := bridge.Recommend(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if recs == nil {
		t.Error("Expected empty non-nil slice for no results")
	}
	if len(recs) != 0 {
		t.Errorf("Expected no recommendations, got %v", recs)
	}
}

func TestRecommendMissingResponseArtifact(t *testing.T) {
	reqPath, respPath := artifactPaths(t)

	// Engine exits cleanly but never writes the artifact.
	bridge := NewBridge("./recommender", reqPath, respPath, WithRunner(&fakeRunner{}))
	_, err := bridge.Recommend(context.Background(), "alice")
	if !errors.IsProtocol(err) {
		t.Errorf("Expected protocol error, got %v", err)
	}
}

func TestRecommendMalformedResponseArtifact(t *testing.T) {
	reqPath, respPath := artifactPaths(t)

	runner := &fakeRunner{
		onRun: func(ctx context.Context) error {
			return os.WriteFile(respPath, []byte("not json"), 0644)
		},
	}

	bridge := NewBridge("./recommender", reqPath, respPath, WithRunner(runner))
	_, err := bridge.Recommend(context.Background(), "alice")
	if !errors.IsProtocol(err) {
		t.Errorf("Expected protocol error, got %v", err)
	}
}

func TestRecommendProcessFailure(t *testing.T) {
	reqPath, respPath := artifactPaths(t)

	runner := &fakeRunner{
		stderr: "engine: no such user",
		onRun: func(ctx context.Context) error {
			return stderrors.New("exit status 1")
		},
	}

	bridge := NewBridge("./recommender", reqPath, respPath, WithRunner(runner))
	_, err := bridge.Recommend(context.Background(), "alice")
	if !errors.IsProcess(err) {
		t.Fatalf("Expected process error, got %v", err)
	}

	var procErr *errors.ProcessError
	if !stderrors.As(err, &procErr) {
		t.Fatalf("Expected *ProcessError, got %T", err)
	}
	if procErr.Output != "engine: no such user" {
		t.Errorf("Stderr not captured: %q", procErr.Output)
	}
}

func TestRecommendTimeout(t *testing.T) {
	reqPath, respPath := artifactPaths(t)

	runner := &fakeRunner{
		onRun: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	}

	bridge := NewBridge("./recommender", reqPath, respPath,
		WithRunner(runner),
		WithTimeout(10*time.Millisecond),
	)

	_, err := bridge.Recommend(context.Background(), "alice")
	if !errors.IsProcess(err) {
		t.Fatalf("Expected process error, got %v", err)
	}
	if !errors.IsTimeout(err) {
		t.Errorf("Expected timeout to be detectable, got %v", err)
	}
}

func TestSubmitRequestArtifact(t *testing.T) {
	reqPath, respPath := artifactPaths(t)

	bridge := NewBridge("./recommender", reqPath, respPath)
	if err := bridge.SubmitRequest("alice"); err != nil {
		t.Fatalf("SubmitRequest failed: %v", err)
	}

	data, err := os.ReadFile(reqPath)
	if err != nil {
		t.Fatalf("Request artifact not written: %v", err)
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		t.Fatalf("Request artifact is not valid JSON: %v", err)
	}
	if req.Target != "alice" {
		t.Errorf("Unexpected target: %q", req.Target)
	}
}
